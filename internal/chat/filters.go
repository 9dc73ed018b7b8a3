package chat

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shashikiranbs2006/yoru-chatbot/internal/config"
)

// Filters holds the structured hints pulled out of a free-text request.
// Any combination may be present; each one narrows the file search.
type Filters struct {
	Module   *int
	Semester *int
	Subject  string
}

var (
	// "module 2", "module_2", "mod-2", "mod2"
	modulePattern = regexp.MustCompile(`\b(?:module|mod)[\s_.\-]*(\d+)`)
	// "3rd sem", "1st semester"
	semesterPattern = regexp.MustCompile(`\b(\d+)\s*(?:st|nd|rd|th)\s*sem`)
)

// ExtractFilters runs all three extractors over the question.
func ExtractFilters(question string, subjects []config.SubjectRule) Filters {
	q := strings.ToLower(question)
	return Filters{
		Module:   extractModule(q),
		Semester: extractSemester(q),
		Subject:  extractSubject(q, subjects),
	}
}

// extractModule finds "module"/"mod" followed by a number.
func extractModule(q string) *int {
	m := modulePattern.FindStringSubmatch(q)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

// extractSemester finds a number with an ordinal suffix next to "sem".
func extractSemester(q string) *int {
	m := semesterPattern.FindStringSubmatch(q)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

// extractSubject returns the first subject whose keyword list has any
// substring hit in the question, or "" when none match. Rule order in the
// table decides ties.
func extractSubject(q string, subjects []config.SubjectRule) string {
	for _, rule := range subjects {
		for _, kw := range rule.Keywords {
			if kw != "" && strings.Contains(q, strings.ToLower(kw)) {
				return rule.Name
			}
		}
	}
	return ""
}
