// Package store provides the SQLite-backed bookmark tree engine.
//
// One Store owns one open database file holding three related tables:
//   - tree: the shared node header (guid, parent_guid, id_no, name,
//     date_added, node_type)
//   - folder: folder extension rows (date_modified)
//   - url: url extension rows (url, icon, keywords)
//
// Invariants enforced here:
//   - exactly one root folder named "roots" with no parent, seeded at
//     database creation
//   - node names are unique across the whole tree (UNIQUE constraint)
//   - a folder with children cannot be deleted directly; the cascade
//     applies only when an ancestor's removal forces it
//   - a folder's date_modified moves whenever a direct child is added,
//     removed, or updated
//
// Every mutation is a single transaction: the main row and its extension
// row land together or not at all. The store is single-writer with no
// internal locking; one database file must not be shared across handles
// or processes.
package store
