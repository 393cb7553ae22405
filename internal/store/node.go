package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// NodeAttrs is the sparse attribute set accepted by AddNode. Zero values
// mean "not supplied": an empty GUID gets a fresh identifier, an empty
// DateAdded becomes the current time, an empty DateModified follows
// DateAdded. ParentName must name an existing node; Name is stored
// verbatim, with no collision handling at this layer.
type NodeAttrs struct {
	GUID         string
	ParentName   string
	IDNo         int
	Name         string
	DateAdded    string
	DateModified string // folders only
	URL          string // urls only, as are Icon and Keywords
	Icon         string
	Keywords     string
}

// NodePatch is the partial update accepted by UpdateNode. Nil fields keep
// their stored values; set fields win.
type NodePatch struct {
	Name     *string
	URL      *string
	Icon     *string
	Keywords *string
}

func (p NodePatch) empty() bool {
	return p.Name == nil && !p.hasURLFields()
}

func (p NodePatch) hasURLFields() bool {
	return p.URL != nil || p.Icon != nil || p.Keywords != nil
}

// Node is one tree entry joined with its variant row. Exactly one of
// Folder and URL is set; that pointer is the variant tag.
type Node struct {
	GUID       string
	ParentGUID string // empty for the root
	IDNo       int
	Name       string
	DateAdded  string
	Folder     *FolderAttrs
	URL        *URLAttrs
}

// IsFolder reports whether the node is a folder.
func (n Node) IsFolder() bool { return n.Folder != nil }

// FolderAttrs holds the folder extension row plus the child name list.
type FolderAttrs struct {
	DateModified string
	Children     []string
}

// URLAttrs holds the url extension row.
type URLAttrs struct {
	URL      string
	Icon     string
	Keywords string
}

// GetChildren looks a node up by name. For a url it returns (false, empty);
// for a folder, true and the names of its direct children in the order the
// engine returns them (no sort key - callers must not rely on more than
// set membership). Fails with NODE_NOT_EXISTS when the name misses.
func (s *Store) GetChildren(ctx context.Context, name string) (bool, []string, error) {
	var guid string
	var isFolder bool
	err := s.db.QueryRowContext(ctx, `
		SELECT guid, node_type FROM tree WHERE name = ?
	`, name).Scan(&guid, &isFolder)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil, newNodeNotExists(name)
	}
	if err != nil {
		return false, nil, fmt.Errorf("get children: %w", err)
	}

	if !isFolder {
		return false, []string{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM tree WHERE parent_guid = ?
	`, guid)
	if err != nil {
		return false, nil, fmt.Errorf("get children: query: %w", err)
	}
	defer rows.Close()

	children := []string{}
	for rows.Next() {
		var child string
		if err := rows.Scan(&child); err != nil {
			return false, nil, fmt.Errorf("get children: scan: %w", err)
		}
		children = append(children, child)
	}
	if err := rows.Err(); err != nil {
		return false, nil, fmt.Errorf("get children: iterate: %w", err)
	}

	return true, children, nil
}

// AddNode inserts a folder or url node and returns its guid. The main row
// and the variant extension row commit as one transaction; a duplicate
// name fails with CONSTRAINT_VIOLATION and nothing lands. The parent must
// already exist under its current name or the call fails with
// NODE_NOT_EXISTS.
func (s *Store) AddNode(ctx context.Context, attrs NodeAttrs, isFolder bool) (string, error) {
	guid := attrs.GUID
	if guid == "" {
		guid = s.guids.NewGUID()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("add node: begin tx: %w", err)
	}
	defer tx.Rollback()

	var parentGUID string
	err = tx.QueryRowContext(ctx, `
		SELECT guid FROM tree WHERE name = ?
	`, attrs.ParentName).Scan(&parentGUID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", newNodeNotExists(attrs.ParentName)
	}
	if err != nil {
		return "", fmt.Errorf("add node: resolve parent: %w", err)
	}

	dateAdded := attrs.DateAdded
	if dateAdded == "" {
		dateAdded = s.now()
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO tree (guid, parent_guid, id_no, name, date_added, node_type)
		VALUES (?, ?, ?, ?, ?, ?)
	`, guid, parentGUID, attrs.IDNo, attrs.Name, dateAdded, isFolder); err != nil {
		return "", wrapConstraint(err, "add node")
	}

	if isFolder {
		dateModified := attrs.DateModified
		if dateModified == "" {
			dateModified = dateAdded
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO folder (node_id, date_modified)
			VALUES (?, ?)
		`, guid, dateModified); err != nil {
			return "", wrapConstraint(err, "add node: folder row")
		}
	} else {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO url (node_id, url, icon, keywords)
			VALUES (?, ?, ?, ?)
		`, guid, attrs.URL, attrs.Icon, attrs.Keywords); err != nil {
			return "", wrapConstraint(err, "add node: url row")
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("add node: commit: %w", err)
	}
	return guid, nil
}

// UpdateNode applies a partial update to the named node. An empty patch is
// a no-op. A rename happens first and every later step of the same call
// resolves the new name. URL-row fields merge over the stored values. The
// parent folder's date_modified is stamped unconditionally. Everything
// commits as one transaction.
//
// Applying url fields to a folder is undefined, matching the storage
// contract; it is not guarded here.
func (s *Store) UpdateNode(ctx context.Context, name string, patch NodePatch) error {
	if patch.empty() {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("update node: begin tx: %w", err)
	}
	defer tx.Rollback()

	current := name
	if patch.Name != nil {
		if _, err := tx.ExecContext(ctx, `
			UPDATE tree SET name = ? WHERE name = ?
		`, *patch.Name, name); err != nil {
			return wrapConstraint(err, "update node: rename")
		}
		current = *patch.Name
	}

	if patch.hasURLFields() {
		// Merge over the stored url row; unset fields keep their values.
		var u URLAttrs
		var nodeID string
		err := tx.QueryRowContext(ctx, `
			SELECT url.url, url.icon, url.keywords, url.node_id
			FROM tree
			INNER JOIN url ON url.node_id = tree.guid
			WHERE name = ?
		`, current).Scan(&u.URL, &u.Icon, &u.Keywords, &nodeID)
		if errors.Is(err, sql.ErrNoRows) {
			return newNodeNotExists(current)
		}
		if err != nil {
			return fmt.Errorf("update node: read url row: %w", err)
		}

		if patch.URL != nil {
			u.URL = *patch.URL
		}
		if patch.Icon != nil {
			u.Icon = *patch.Icon
		}
		if patch.Keywords != nil {
			u.Keywords = *patch.Keywords
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE url SET url = ?, icon = ?, keywords = ?
			WHERE node_id = ?
		`, u.URL, u.Icon, u.Keywords, nodeID); err != nil {
			return fmt.Errorf("update node: write url row: %w", err)
		}
	}

	// The parent folder's date_modified moves on every child update. The
	// root has a NULL parent, so the stamp matches no row there.
	var parentGUID sql.NullString
	err = tx.QueryRowContext(ctx, `
		SELECT parent_guid FROM tree WHERE name = ?
	`, current).Scan(&parentGUID)
	if errors.Is(err, sql.ErrNoRows) {
		return newNodeNotExists(current)
	}
	if err != nil {
		return fmt.Errorf("update node: resolve parent: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE folder SET date_modified = ? WHERE node_id = ?
	`, s.now(), parentGUID); err != nil {
		return fmt.Errorf("update node: stamp parent: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update node: commit: %w", err)
	}
	return nil
}

// DeleteNode removes a url or an empty folder. Fails with NODE_NOT_EXISTS
// when the name misses and FOLDER_NOT_EMPTY when the folder still has
// children; a refused delete mutates nothing. The extension row goes with
// the cascade, not a second delete.
func (s *Store) DeleteNode(ctx context.Context, name string) error {
	isFolder, children, err := s.GetChildren(ctx, name)
	if err != nil {
		return err
	}
	if isFolder && len(children) > 0 {
		return newFolderNotEmpty(name)
	}

	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM tree WHERE name = ?
	`, name); err != nil {
		return fmt.Errorf("delete node: %w", err)
	}
	return nil
}

// GetNode returns the named node joined with its variant row. Folder nodes
// carry their child name list; url nodes carry the url fields. Fails with
// NODE_NOT_EXISTS when the name misses.
func (s *Store) GetNode(ctx context.Context, name string) (Node, error) {
	isFolder, children, err := s.GetChildren(ctx, name)
	if err != nil {
		return Node{}, err
	}

	var n Node
	var parent sql.NullString
	if isFolder {
		f := &FolderAttrs{Children: children}
		err = s.db.QueryRowContext(ctx, `
			SELECT guid, parent_guid, id_no, name, date_added, date_modified
			FROM tree
			INNER JOIN folder ON folder.node_id = tree.guid
			WHERE name = ?
		`, name).Scan(&n.GUID, &parent, &n.IDNo, &n.Name, &n.DateAdded, &f.DateModified)
		n.Folder = f
	} else {
		u := &URLAttrs{}
		err = s.db.QueryRowContext(ctx, `
			SELECT guid, parent_guid, id_no, name, date_added, url, icon, keywords
			FROM tree
			INNER JOIN url ON url.node_id = tree.guid
			WHERE name = ?
		`, name).Scan(&n.GUID, &parent, &n.IDNo, &n.Name, &n.DateAdded, &u.URL, &u.Icon, &u.Keywords)
		n.URL = u
	}
	if err != nil {
		return Node{}, fmt.Errorf("get node: %w", err)
	}

	n.ParentGUID = parent.String
	return n, nil
}
