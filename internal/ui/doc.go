// Package ui provides the Bubble Tea terminal interface of registro.
//
// # Architecture Overview
//
// Model is the root tea.Model. It owns no company data of its own: every
// update re-reads a state.Snapshot from the Store, and the Loader is the only
// path that changes the collection. Slow work (fetching, sharing, insights,
// opening a browser) runs as tea.Cmds and reports back as messages, so all
// state changes happen on the event loop.
//
// # Package Structure
//
//   - app.go: Model, Options, Init/Update/View and key dispatch
//   - header.go: title bar counters and the search bar
//   - list.go: record cards, loading placeholder, failure banner, empty state
//   - detail.go: detail overlay for the selected record
//   - insight_view.go: insight overlay with its own request lifecycle
//   - help.go, keys.go: bindings and the help overlay
//   - toast.go: transient notices (share outcome, browser errors)
//   - theme.go, style_helpers.go: palettes and background-safe rendering
//
// # Overlays
//
// At most one overlay is open. The help overlay closes on any key; the
// detail and insight overlays close with esc. Closing the detail overlay
// dismisses the selection in the Store. Closing the insight overlay abandons
// its request, and a late answer is ignored by sequence number.
//
// # Key Bindings
//
//   - /: search (enter or esc to leave the input, c to clear)
//   - j/k, g/G, pgup/pgdown: move through the list
//   - enter: open the selected record
//   - s, o: share the record, open its website (inside the detail overlay)
//   - r: reload from the data source
//   - a: ask for insights about the whole loaded collection
//   - T: cycle theme (saved to prefs)
//   - ?: help
//   - q or Ctrl+C: quit
package ui
