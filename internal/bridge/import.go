package bridge

import (
	"context"
	"fmt"

	"github.com/roach88/bmconv/internal/store"
)

// Import merges a decoded external tree into st. The external root maps
// onto the store's existing root; everything below it is inserted top-down
// so parent lookups always resolve. Every name is deduplicated against the
// names already in the store before its insert.
func Import(ctx context.Context, st *store.Store, root *TreeNode) error {
	ren := NewRenamer()
	if err := reserveExisting(ctx, st, ren, store.RootName); err != nil {
		return err
	}
	for _, child := range root.Children {
		if err := importSubtree(ctx, st, ren, store.RootName, child); err != nil {
			return err
		}
	}
	return nil
}

// reserveExisting walks the stored tree and reserves every name in it.
func reserveExisting(ctx context.Context, st *store.Store, ren *Renamer, name string) error {
	ren.Reserve(name)
	isFolder, children, err := st.GetChildren(ctx, name)
	if err != nil {
		return fmt.Errorf("import: walk existing tree: %w", err)
	}
	if !isFolder {
		return nil
	}
	for _, child := range children {
		if err := reserveExisting(ctx, st, ren, child); err != nil {
			return err
		}
	}
	return nil
}

func importSubtree(ctx context.Context, st *store.Store, ren *Renamer, parent string, n *TreeNode) error {
	name := ren.Claim(n.Name)
	attrs := store.NodeAttrs{
		GUID:         n.GUID,
		ParentName:   parent,
		IDNo:         n.IDNo,
		Name:         name,
		DateAdded:    n.DateAdded,
		DateModified: n.DateModified,
		URL:          n.URL,
		Icon:         n.Icon,
		Keywords:     n.Keywords,
	}
	if _, err := st.AddNode(ctx, attrs, n.Folder); err != nil {
		return fmt.Errorf("import %q: %w", name, err)
	}
	for _, child := range n.Children {
		if err := importSubtree(ctx, st, ren, name, child); err != nil {
			return err
		}
	}
	return nil
}

// Dedupe rewrites names in place so the whole tree is collision free,
// using the same scheme as Import. Used when the destination is a flat
// file rather than a store. The root keeps its name.
func Dedupe(root *TreeNode) {
	ren := NewRenamer()
	ren.Reserve(root.Name)
	var walk func(n *TreeNode)
	walk = func(n *TreeNode) {
		n.Name = ren.Claim(n.Name)
		for _, child := range n.Children {
			walk(child)
		}
	}
	for _, child := range root.Children {
		walk(child)
	}
}
