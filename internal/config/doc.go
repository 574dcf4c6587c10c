// Package config loads the registro configuration.
//
// # Resolution Order
//
//  1. Built-in defaults (Default)
//  2. The TOML file, ~/.config/registro/config.toml unless a path is given;
//     a missing file is not an error
//  3. Environment overrides, prefixed REGISTRO_ (REGISTRO_SOURCE_URL,
//     REGISTRO_SOURCE_DATABASE_URL, REGISTRO_LOG_DEBUG, ...)
//  4. Normalization (trimming, tilde expansion, scheme for bare host:port)
//  5. Validation; every problem is reported in one error
//
// The Gemini key is also read from GEMINI_API_KEY and, failing that, API_KEY.
//
// # TOML Format
//
//	[source]
//	kind = "http"              # http | postgres | file
//	url = "http://127.0.0.1:8787/companies"
//	database_url = ""          # required for postgres
//	table = "empresas"
//	path = ""                  # required for file (.json, .yaml, .yml)
//	timeout_seconds = 10
//
//	[insight]
//	api_key = ""
//	model = "gemini-2.5-flash"
//
//	[share]
//	command = []               # e.g. ["wl-copy"] or ["termux-share", "-a", "send"]
//
//	[log]
//	file = ""                  # empty disables the session log
//	debug = false
package config
