package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// NodeType distinguishes folders from files in the library tree.
type NodeType string

const (
	NodeFolder NodeType = "folder"
	NodeFile   NodeType = "file"
)

// Node is one entry in the derived library tree. Folder nodes carry
// children; file nodes carry the retrievable link.
type Node struct {
	Type     NodeType         `json:"type"`
	Name     string           `json:"name"`
	Link     string           `json:"link,omitempty"`
	Children map[string]*Node `json:"children,omitempty"`
}

// Tree derives the hierarchical library view from the flat catalog by
// splitting each path on "/" and inserting segments level by level. The
// tree is never the source of truth; it is always rebuildable from the
// flat mapping.
func (c *Catalog) Tree() map[string]*Node {
	root := map[string]*Node{}

	for _, fullPath := range c.paths {
		link := c.entries[fullPath]

		var parts []string
		for _, part := range strings.Split(fullPath, "/") {
			if p := strings.TrimSpace(part); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 {
			continue
		}

		current := root
		for i, part := range parts {
			isFile := i == len(parts)-1

			if isFile {
				if node, ok := current[part]; ok {
					// A folder segment can collide with a file name;
					// the file wins and the node updates in place.
					node.Type = NodeFile
					node.Link = link
				} else {
					current[part] = &Node{Type: NodeFile, Name: part, Link: link}
				}
				continue
			}

			node, ok := current[part]
			if !ok {
				node = &Node{Type: NodeFolder, Name: part, Children: map[string]*Node{}}
				current[part] = node
			}
			if node.Children == nil {
				node.Children = map[string]*Node{}
			}
			current = node.Children
		}
	}

	return root
}

// WriteTree writes the derived tree as indented JSON to the given path.
func (c *Catalog) WriteTree(file string) error {
	data, err := json.MarshalIndent(c.Tree(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling library tree: %w", err)
	}
	if err := os.WriteFile(file, data, 0644); err != nil {
		return fmt.Errorf("writing library tree to %s: %w", file, err)
	}
	return nil
}
