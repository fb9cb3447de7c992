package tree

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// doc is the on-disk YAML shape. It is deliberately flatter than Node:
// Kind is a single-letter code ("a" hot, "b" boolean, "c" static, or
// absent for a group), matching the single-character node-type field the
// tree format is descended from.
type doc struct {
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind"`
	Cmd      string `yaml:"cmd"`
	Val      string `yaml:"val"`
	Children []doc  `yaml:"children"`
}

func (d *doc) toNode(parent *Node) *Node {
	n := &Node{
		Name:   d.Name,
		Cmd:    d.Cmd,
		Val:    d.Val,
		Parent: parent,
	}
	switch d.Kind {
	case "a":
		n.Kind = KindHot
	case "b":
		n.Kind = KindBool
		if n.Val == "" {
			n.Val = "false"
		}
	case "c":
		n.Kind = KindStatic
	default:
		n.Kind = KindGroup
	}
	for i := range d.Children {
		n.Children = append(n.Children, d.Children[i].toNode(n))
	}
	return n
}

// Load reads a node tree from a YAML file at path.
func Load(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tree: reading %s: %w", path, err)
	}
	var root doc
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("tree: parsing %s: %w", path, err)
	}
	return root.toNode(nil), nil
}

func defaultDoc() doc {
	return doc{
		Name: "root",
		Children: []doc{
			{Name: "find a file", Kind: "a", Cmd: "find . -type f | fzy"},
			{Name: "pick a git branch", Kind: "a", Cmd: "git branch --format='%(refname:short)' | fzy"},
			{Name: "watch processes", Kind: "a", Cmd: "top"},
			{Name: "enable verbose output", Kind: "b"},
			{
				Name: "advanced",
				Children: []doc{
					{Name: "edit config", Kind: "a", Cmd: "${EDITOR:-vi}"},
				},
			},
		},
	}
}

// DefaultTree is built in memory when no tree file exists yet, so the
// browser always has something to show on first run.
func DefaultTree() *Node {
	d := defaultDoc()
	return d.toNode(nil)
}

// WriteDefaultTree writes DefaultTree's YAML form to path if nothing
// exists there yet.
func WriteDefaultTree(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	d := defaultDoc()
	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("tree: marshalling default: %w", err)
	}
	header := []byte("# nodeterm tree\n# kind: a = hot (opens popup), b = boolean toggle, c = static\n\n")
	return os.WriteFile(path, append(header, data...), 0644)
}
