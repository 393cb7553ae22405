// Package chrome decodes Google Chrome bookmark exports into the neutral
// tree form.
//
// Chrome timestamps count microseconds from 1601-01-01 UTC (the Windows
// FILETIME epoch); they are converted to the store's 19-character
// second-precision stamps in UTC. Names are NFC-normalized at this
// boundary so that visually identical names collide predictably later.
package chrome

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/bmconv/internal/bridge"
	"github.com/roach88/bmconv/internal/store"
)

// FormatError reports a source that is not a Chrome bookmark export.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed chrome bookmarks: %s", e.Reason)
}

// chromeEpochOffset is the seconds between 1601-01-01 and the Unix epoch.
const chromeEpochOffset = 11644473600

// file mirrors the top level of a Chrome Bookmarks file. sync_metadata and
// per-node meta_info are dropped on the floor.
type file struct {
	Checksum *string            `json:"checksum"`
	Roots    map[string]rawNode `json:"roots"`
	Version  *int               `json:"version"`
}

type rawNode struct {
	Children     []rawNode `json:"children"`
	DateAdded    string    `json:"date_added"`
	DateModified string    `json:"date_modified"`
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	URL          string    `json:"url"`
}

// Decode parses a Chrome bookmarks JSON stream into a neutral tree whose
// root's children are the Chrome root folders (bookmark_bar, other, ...),
// in key order for determinism. Missing top-level structure fails with
// FormatError.
func Decode(r io.Reader) (*bridge.TreeNode, error) {
	var f file
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, &FormatError{Reason: err.Error()}
	}
	if f.Checksum == nil || f.Roots == nil || f.Version == nil {
		return nil, &FormatError{Reason: "missing checksum, roots or version"}
	}

	keys := make([]string, 0, len(f.Roots))
	for key := range f.Roots {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	root := &bridge.TreeNode{Name: store.RootName, Folder: true}
	for _, key := range keys {
		root.Children = append(root.Children, convert(f.Roots[key]))
	}
	return root, nil
}

func convert(n rawNode) *bridge.TreeNode {
	t := &bridge.TreeNode{
		Name:      norm.NFC.String(n.Name),
		IDNo:      parseID(n.ID),
		DateAdded: StampToString(n.DateAdded),
	}
	if n.Type == "folder" {
		t.Folder = true
		t.DateModified = StampToString(n.DateModified)
		for _, child := range n.Children {
			t.Children = append(t.Children, convert(child))
		}
	} else {
		t.URL = n.URL
	}
	return t
}

// parseID maps Chrome's string node id onto the ordinal id_no; anything
// unparsable becomes 0, the store default.
func parseID(s string) int {
	idNo, _ := strconv.Atoi(s)
	return idNo
}

// StampToString converts Chrome's decimal microsecond count into the
// canonical stamp. Empty or unparsable values yield "" so the store fills
// in the current time.
func StampToString(s string) string {
	if s == "" {
		return ""
	}
	micros, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return ""
	}
	secs := micros/1e6 - chromeEpochOffset
	rem := micros % 1e6
	return time.Unix(secs, rem*1000).UTC().Format(store.TimeFormat)
}
