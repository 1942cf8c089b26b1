// Package store persists lines and stations in an embedded Badger database.
//
// Records are JSON encoded under two key prefixes:
//
//	line/<id>     a line with its sections in path order
//	station/<id>  a registry station
//
// Lines are rebuilt with section.Restore on read, so a corrupted record that no
// longer forms a single path surfaces as section.ErrBrokenPath instead of a
// silently broken line.
//
// Example:
//
//	db, err := store.Open(store.Options{InMemory: true})
//	if err != nil {
//	    // handle error
//	}
//	defer db.Close()
//	svc := line.NewService(db, line.Options{})
//
// Thread safety: Badger serializes transactions; Badger is safe for
// concurrent use.
package store
