package bridge

// TreeNode is the neutral nested node shape exchanged between source
// adapters, the export walk, and serializers. Folder is the variant tag;
// Children is meaningful for folders only.
type TreeNode struct {
	GUID         string
	IDNo         int
	Name         string
	DateAdded    string
	DateModified string
	URL          string
	Icon         string
	Keywords     string
	Folder       bool
	Children     []*TreeNode
}
