// Package app is the composition root of registro.
//
// Every command opens a session: config.Load merges the TOML file with
// REGISTRO_* environment overrides, prefs.Load reads the saved theme and
// locale, telemetry.Setup builds the session logger, and source.Open picks
// the HTTP, Postgres or file backend. A state.Store and state.Loader sit on
// top of the source.
//
// Run hands the session to the Bubble Tea interface. List, Show and Insights
// load the collection once and print to a writer, for scripts and quick
// lookups without the TUI.
//
// The TUI never logs to stderr because the terminal belongs to the program.
// The print commands do so only with Options.Debug.
package app
