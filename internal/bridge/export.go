package bridge

import (
	"context"

	"github.com/roach88/bmconv/internal/store"
)

// Export rebuilds the nested tree form from the store, starting at the
// root folder.
func Export(ctx context.Context, st *store.Store) (*TreeNode, error) {
	return exportSubtree(ctx, st, store.RootName)
}

func exportSubtree(ctx context.Context, st *store.Store, name string) (*TreeNode, error) {
	n, err := st.GetNode(ctx, name)
	if err != nil {
		return nil, err
	}

	t := &TreeNode{
		GUID:      n.GUID,
		IDNo:      n.IDNo,
		Name:      n.Name,
		DateAdded: n.DateAdded,
	}
	if n.IsFolder() {
		t.Folder = true
		t.DateModified = n.Folder.DateModified
		t.Children = make([]*TreeNode, 0, len(n.Folder.Children))
		for _, child := range n.Folder.Children {
			sub, err := exportSubtree(ctx, st, child)
			if err != nil {
				return nil, err
			}
			t.Children = append(t.Children, sub)
		}
	} else {
		t.URL = n.URL.URL
		t.Icon = n.URL.Icon
		t.Keywords = n.URL.Keywords
	}
	return t, nil
}
