package bridge

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bmconv/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Create(filepath.Join(t.TempDir(), "bm.sqlite3"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestRenamer_Claim(t *testing.T) {
	ren := NewRenamer()

	assert.Equal(t, "a", ren.Claim("a"))
	assert.Equal(t, "a(1)", ren.Claim("a"))
	assert.Equal(t, "a(2)", ren.Claim("a"))
	assert.Equal(t, "b", ren.Claim("b"))
}

func TestRenamer_Reserve(t *testing.T) {
	ren := NewRenamer()
	ren.Reserve("roots")

	assert.Equal(t, "roots(1)", ren.Claim("roots"))
}

func TestRenamer_ClaimedSuffixBlocksLater(t *testing.T) {
	ren := NewRenamer()

	assert.Equal(t, "a(1)", ren.Claim("a(1)"))
	assert.Equal(t, "a", ren.Claim("a"))
	// "a(1)" is taken, so the next collision of "a" skips to "a(2)"
	assert.Equal(t, "a(2)", ren.Claim("a"))
}

func TestImport_BuildsTree(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	root := &TreeNode{
		Name:   store.RootName,
		Folder: true,
		Children: []*TreeNode{
			{
				Name:   "bar",
				Folder: true,
				Children: []*TreeNode{
					{Name: "github", URL: "https://github.com", Keywords: "git"},
				},
			},
			{Name: "lonely", URL: "http://x"},
		},
	}
	require.NoError(t, Import(ctx, st, root))

	isFolder, children, err := st.GetChildren(ctx, store.RootName)
	require.NoError(t, err)
	assert.True(t, isFolder)
	assert.ElementsMatch(t, []string{"bar", "lonely"}, children)

	n, err := st.GetNode(ctx, "github")
	require.NoError(t, err)
	require.NotNil(t, n.URL)
	assert.Equal(t, "https://github.com", n.URL.URL)
	assert.Equal(t, "git", n.URL.Keywords)
}

func TestImport_RenamesCollisions(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	root := &TreeNode{
		Name:   store.RootName,
		Folder: true,
		Children: []*TreeNode{
			{Name: "dup", URL: "http://a"},
			{Name: "dup", URL: "http://b"},
			// even the root's own name is taken
			{Name: store.RootName, URL: "http://c"},
		},
	}
	require.NoError(t, Import(ctx, st, root))

	_, children, err := st.GetChildren(ctx, store.RootName)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"dup", "dup(1)", "roots(1)"}, children)

	a, err := st.GetNode(ctx, "dup")
	require.NoError(t, err)
	b, err := st.GetNode(ctx, "dup(1)")
	require.NoError(t, err)
	assert.Equal(t, "http://a", a.URL.URL)
	assert.Equal(t, "http://b", b.URL.URL)
}

func TestImport_IntoPopulatedStore(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.AddNode(ctx, store.NodeAttrs{Name: "existing", ParentName: store.RootName}, true)
	require.NoError(t, err)

	root := &TreeNode{
		Name:   store.RootName,
		Folder: true,
		Children: []*TreeNode{
			{Name: "existing", URL: "http://x"},
		},
	}
	require.NoError(t, Import(ctx, st, root))

	n, err := st.GetNode(ctx, "existing(1)")
	require.NoError(t, err)
	assert.Equal(t, "http://x", n.URL.URL)
}

func TestExport_RoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	src := &TreeNode{
		Name:   store.RootName,
		Folder: true,
		Children: []*TreeNode{
			{
				Name:         "docs",
				Folder:       true,
				DateAdded:    "2022-02-02T02:02:02",
				DateModified: "2023-03-03T03:03:03",
				Children:     []*TreeNode{},
			},
			{Name: "site", URL: "http://site", Icon: "ic", Keywords: "kw", IDNo: 7},
		},
	}
	require.NoError(t, Import(ctx, st, src))

	out, err := Export(ctx, st)
	require.NoError(t, err)

	require.True(t, out.Folder)
	assert.Equal(t, store.RootName, out.Name)
	require.Len(t, out.Children, 2)

	byName := map[string]*TreeNode{}
	for _, c := range out.Children {
		byName[c.Name] = c
	}

	docs := byName["docs"]
	require.NotNil(t, docs)
	assert.True(t, docs.Folder)
	assert.Empty(t, docs.Children)
	assert.Equal(t, "2022-02-02T02:02:02", docs.DateAdded)
	assert.Equal(t, "2023-03-03T03:03:03", docs.DateModified)

	site := byName["site"]
	require.NotNil(t, site)
	assert.False(t, site.Folder)
	assert.Equal(t, "http://site", site.URL)
	assert.Equal(t, "ic", site.Icon)
	assert.Equal(t, "kw", site.Keywords)
	assert.Equal(t, 7, site.IDNo)
}

func TestDedupe_InMemory(t *testing.T) {
	root := &TreeNode{
		Name:   store.RootName,
		Folder: true,
		Children: []*TreeNode{
			{
				Name:   "f",
				Folder: true,
				Children: []*TreeNode{
					{Name: "x", URL: "http://1"},
				},
			},
			// global scope: collides with a name in a different folder
			{Name: "x", URL: "http://2"},
		},
	}
	Dedupe(root)

	assert.Equal(t, "f", root.Children[0].Name)
	assert.Equal(t, "x", root.Children[0].Children[0].Name)
	assert.Equal(t, "x(1)", root.Children[1].Name)
}
