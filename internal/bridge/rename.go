package bridge

import "fmt"

// Renamer hands out tree-unique names during import. Claim returns the
// name itself when unused, otherwise the first free "name(i)" starting at
// i = 1.
type Renamer struct {
	used map[string]bool
}

// NewRenamer creates an empty Renamer.
func NewRenamer() *Renamer {
	return &Renamer{used: make(map[string]bool)}
}

// Reserve marks a name as taken without claiming it for a new node.
func (r *Renamer) Reserve(name string) {
	r.used[name] = true
}

// Claim returns a free variant of name and marks it used.
func (r *Renamer) Claim(name string) string {
	candidate := name
	for i := 1; r.used[candidate]; i++ {
		candidate = fmt.Sprintf("%s(%d)", name, i)
	}
	r.used[candidate] = true
	return candidate
}
