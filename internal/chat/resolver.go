package chat

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/shashikiranbs2006/yoru-chatbot/internal/catalog"
)

// Resolver picks the best catalog file for a direct notes request. It
// narrows the catalog with the cheap structural filters first, then runs
// the fuzzy similarity pass only over the survivors, so the expensive step
// stays bounded even for large catalogs.
type Resolver struct{}

// Resolve returns the best-matching catalog path and its link. The filters
// are advisory: if applying them would leave zero candidates they are all
// discarded and the full catalog is scored instead, so a non-empty catalog
// always yields a match. Returns false only when the catalog is empty.
func (Resolver) Resolve(question string, filters Filters, cat *catalog.Catalog) (string, string, bool) {
	paths := cat.Paths()
	if len(paths) == 0 {
		return "", "", false
	}

	candidates := applyFilters(paths, filters)
	best := bestMatch(strings.ToLower(question), candidates)
	link, _ := cat.Resolve(best)
	return best, link, true
}

// applyFilters narrows paths step by step. Any step that would empty the
// set aborts the whole narrowing and returns the original set unfiltered.
func applyFilters(paths []string, f Filters) []string {
	candidates := paths

	if f.Module != nil {
		next := keep(candidates, func(p string) bool { return matchesModule(p, *f.Module) })
		if len(next) == 0 {
			return paths
		}
		candidates = next
	}

	if f.Semester != nil {
		next := keep(candidates, func(p string) bool { return matchesSemester(p, *f.Semester) })
		if len(next) == 0 {
			return paths
		}
		candidates = next
	}

	if f.Subject != "" {
		next := keep(candidates, func(p string) bool {
			return strings.Contains(strings.ToLower(p), strings.ToLower(f.Subject))
		})
		if len(next) == 0 {
			return paths
		}
		candidates = next
	}

	return candidates
}

func keep(paths []string, pred func(string) bool) []string {
	var out []string
	for _, p := range paths {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

// matchesModule reports whether the path carries a marker for module n in
// any of the naming conventions the corpus uses: "module n", "module_n",
// "mod n", or a bare "n." token.
func matchesModule(p string, n int) bool {
	re := regexp.MustCompile(fmt.Sprintf(`\b(?:module|mod)[\s_.\-]*%d\b|\b%d\.`, n, n))
	return re.MatchString(strings.ToLower(p))
}

// matchesSemester reports whether the path carries a semester marker for n
// with any ordinal suffix.
func matchesSemester(p string, n int) bool {
	re := regexp.MustCompile(fmt.Sprintf(`\b%d\s*(?:st|nd|rd|th)?\s*sem`, n))
	return re.MatchString(strings.ToLower(p))
}

// bestMatch scores every candidate against the query with normalized edit
// distance and returns the highest scorer. Candidates arrive in sorted
// order, so ties resolve deterministically to the first.
func bestMatch(query string, candidates []string) string {
	best := ""
	bestScore := -1.0
	for _, p := range candidates {
		score := similarity(query, strings.ToLower(p))
		if score > bestScore {
			best = p
			bestScore = score
		}
	}
	return best
}

// similarity maps levenshtein distance into [0, 1], 1 meaning identical.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len([]rune(a))
	if lb := len([]rune(b)); lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
