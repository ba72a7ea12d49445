package scene

import (
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

// SQLite snapshot of a scene graph. This is host-side persistence for
// moving trees between runs; the search layer stays stateless and a
// loaded snapshot is just another host tree.
//
// Schema: one row per attached object, with parent_id NULL at the root
// and ord preserving child index order. Tags are stored row-per-pair so
// the registry survives even for tags no object currently carries.

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS nodes (
	id        INTEGER PRIMARY KEY,
	parent_id INTEGER,
	ord       INTEGER NOT NULL,
	name      TEXT NOT NULL,
	active    INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS tags (
	name TEXT PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS node_tags (
	node_id INTEGER NOT NULL,
	tag     TEXT NOT NULL,
	PRIMARY KEY (node_id, tag)
);
`

// Save writes the attached tree and the full tag registry to a SQLite
// file, replacing any existing snapshot at that path.
func Save(g *Graph, path string) error {
	// A snapshot is derived data — always rebuilt whole.
	_ = os.Remove(path) // best-effort cleanup

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open snapshot %s: %w", path, err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(snapshotSchema); err != nil {
		return fmt.Errorf("create snapshot schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin snapshot write: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op if committed

	tagStmt, err := tx.Prepare(`INSERT INTO tags (name) VALUES (?)`)
	if err != nil {
		return fmt.Errorf("prepare tags insert: %w", err)
	}
	defer func() { _ = tagStmt.Close() }()
	for _, tag := range g.Tags() {
		if _, err := tagStmt.Exec(tag); err != nil {
			return fmt.Errorf("insert tag %q: %w", tag, err)
		}
	}

	nodeStmt, err := tx.Prepare(`INSERT INTO nodes (id, parent_id, ord, name, active) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare nodes insert: %w", err)
	}
	defer func() { _ = nodeStmt.Close() }()

	pairStmt, err := tx.Prepare(`INSERT INTO node_tags (node_id, tag) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare node_tags insert: %w", err)
	}
	defer func() { _ = pairStmt.Close() }()

	var write func(o *Object, parent *Object, ord int) error
	write = func(o *Object, parent *Object, ord int) error {
		var parentID any
		if parent != nil {
			parentID = int64(parent.id)
		}
		activeInt := 0
		if o.active {
			activeInt = 1
		}
		if _, err := nodeStmt.Exec(int64(o.id), parentID, ord, o.name, activeInt); err != nil {
			return fmt.Errorf("insert node %q: %w", o.name, err)
		}
		for _, tag := range g.TagsOf(o) {
			if _, err := pairStmt.Exec(int64(o.id), tag); err != nil {
				return fmt.Errorf("insert node tag %q/%q: %w", o.name, tag, err)
			}
		}
		for i, k := range o.kids {
			if err := write(k, o, i); err != nil {
				return err
			}
		}
		return nil
	}
	if err := write(g.root, nil, 0); err != nil {
		return err
	}

	return tx.Commit()
}

// Load reads a snapshot written by Save and rebuilds the graph, with
// child order restored from the ord column.
func Load(path string) (*Graph, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", path, err)
	}
	defer func() { _ = db.Close() }()

	type row struct {
		id       int64
		parentID sql.NullInt64
		ord      int64
		name     string
		active   bool
	}

	rows, err := db.Query(`SELECT id, parent_id, ord, name, active FROM nodes ORDER BY ord`)
	if err != nil {
		return nil, fmt.Errorf("read nodes: %w", err)
	}
	defer rows.Close()

	var all []row
	for rows.Next() {
		var r row
		var activeInt int
		if err := rows.Scan(&r.id, &r.parentID, &r.ord, &r.name, &activeInt); err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		r.active = activeInt != 0
		all = append(all, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nodes: %w", err)
	}

	var rootRow *row
	children := make(map[int64][]row) // ORDER BY ord keeps these sorted
	for i := range all {
		r := all[i]
		if !r.parentID.Valid {
			if rootRow != nil {
				return nil, fmt.Errorf("snapshot %s has multiple roots", path)
			}
			rootRow = &all[i]
			continue
		}
		children[r.parentID.Int64] = append(children[r.parentID.Int64], r)
	}
	if rootRow == nil {
		return nil, fmt.Errorf("snapshot %s has no root node", path)
	}

	g := NewGraph(rootRow.name)
	g.root.SetActive(rootRow.active)
	byOldID := map[int64]*Object{rootRow.id: g.root}

	var attach func(oldID int64) error
	attach = func(oldID int64) error {
		parent := byOldID[oldID]
		for _, r := range children[oldID] {
			child := g.NewObject(r.name)
			child.SetActive(r.active)
			if err := parent.AddChild(child); err != nil {
				return err
			}
			byOldID[r.id] = child
			if err := attach(r.id); err != nil {
				return err
			}
		}
		return nil
	}
	if err := attach(rootRow.id); err != nil {
		return nil, err
	}

	tagRows, err := db.Query(`SELECT name FROM tags`)
	if err != nil {
		return nil, fmt.Errorf("read tags: %w", err)
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var name string
		if err := tagRows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		g.RegisterTag(name)
	}
	if err := tagRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}

	pairRows, err := db.Query(`SELECT node_id, tag FROM node_tags`)
	if err != nil {
		return nil, fmt.Errorf("read node tags: %w", err)
	}
	defer pairRows.Close()
	for pairRows.Next() {
		var nodeID int64
		var tag string
		if err := pairRows.Scan(&nodeID, &tag); err != nil {
			return nil, fmt.Errorf("scan node tag: %w", err)
		}
		o, ok := byOldID[nodeID]
		if !ok {
			return nil, fmt.Errorf("snapshot %s: tag %q on unknown node %d", path, tag, nodeID)
		}
		if err := g.Tag(o, tag); err != nil {
			return nil, err
		}
	}
	return g, pairRows.Err()
}
