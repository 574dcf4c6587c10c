// Package state owns the view state of a browsing session.
//
// # Overview
//
// A Store holds the loaded company collection, its load status, the search
// term and the selected record. The UI reads it through immutable snapshots;
// nothing outside this package can replace the collection.
//
// # Loading
//
// A Loader is the only writer of the collection and load status. Loading is
// split so the network call can run as a bubbletea command:
//
//	req := loader.Begin()                 // status = Loading, seq++
//	res := loader.Fetch(ctx, req)         // talks to the source only
//	loader.Apply(res)                     // commit or fail
//
// Every Begin hands out a new sequence number. Apply drops any result whose
// request has been superseded, so when a user hits reload twice only the
// latest request can change the store, whichever finishes first.
//
// On failure the previous collection is kept and the status carries a
// human-readable message. Re-invoking a load is the only recovery path.
//
// # Selection
//
// Select accepts only records present in the loaded collection and stores a
// copy. A later reload does not change or clear the selection; the detail view
// renders from that copy until Dismiss.
//
// # Concurrency Model
//
// The Store uses a readers-writer lock and clones on the way in and out:
//
//   - Snapshot(): read lock, deep copy of collection and selection
//   - SetSearch/Select/Dismiss and the loader hooks: write lock
//
// The lock is never held across I/O. The zero value is ready to use:
//
//	store := &state.Store{}
package state
