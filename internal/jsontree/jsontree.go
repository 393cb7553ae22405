// Package jsontree reads and writes the neutral nested JSON bookmark
// format.
//
// Folders always carry a "children" array, urls never do; that presence is
// the variant discriminant on the wire. No other type tag is serialized.
package jsontree

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/roach88/bmconv/internal/bridge"
)

// jsonNode is the wire shape of one node. Children is a pointer so an
// empty folder still serializes an empty array while urls omit the key.
type jsonNode struct {
	GUID         string      `json:"guid,omitempty"`
	IDNo         int         `json:"id_no,omitempty"`
	Name         string      `json:"name"`
	DateAdded    string      `json:"date_added,omitempty"`
	DateModified string      `json:"date_modified,omitempty"`
	URL          string      `json:"url,omitempty"`
	Icon         string      `json:"icon,omitempty"`
	Keywords     string      `json:"keywords,omitempty"`
	Children     *[]jsonNode `json:"children,omitempty"`
}

// Write serializes the tree rooted at root as indented JSON.
func Write(w io.Writer, root *bridge.TreeNode) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(toJSON(root)); err != nil {
		return fmt.Errorf("encode json tree: %w", err)
	}
	return nil
}

// Read parses a nested JSON tree.
func Read(r io.Reader) (*bridge.TreeNode, error) {
	var j jsonNode
	if err := json.NewDecoder(r).Decode(&j); err != nil {
		return nil, fmt.Errorf("decode json tree: %w", err)
	}
	return fromJSON(j), nil
}

func toJSON(n *bridge.TreeNode) jsonNode {
	j := jsonNode{
		GUID:         n.GUID,
		IDNo:         n.IDNo,
		Name:         n.Name,
		DateAdded:    n.DateAdded,
		DateModified: n.DateModified,
		URL:          n.URL,
		Icon:         n.Icon,
		Keywords:     n.Keywords,
	}
	if n.Folder {
		kids := make([]jsonNode, 0, len(n.Children))
		for _, child := range n.Children {
			kids = append(kids, toJSON(child))
		}
		j.Children = &kids
	}
	return j
}

func fromJSON(j jsonNode) *bridge.TreeNode {
	n := &bridge.TreeNode{
		GUID:         j.GUID,
		IDNo:         j.IDNo,
		Name:         j.Name,
		DateAdded:    j.DateAdded,
		DateModified: j.DateModified,
		URL:          j.URL,
		Icon:         j.Icon,
		Keywords:     j.Keywords,
	}
	if j.Children != nil {
		n.Folder = true
		for _, child := range *j.Children {
			n.Children = append(n.Children, fromJSON(child))
		}
	}
	return n
}
