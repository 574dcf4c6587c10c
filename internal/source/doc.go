// Package source provides the read-only data sources that supply the company
// collection.
//
// # Overview
//
// Every source returns the whole collection in one call; filtering happens
// client-side. Three implementations exist:
//
//   - HTTP: GET on a JSON endpoint returning an array of records
//   - Postgres: one query over a table through a pgx pool
//   - File: a local JSON or YAML document, mostly for demos and tests
//
// # Usage
//
//	src, err := source.Open(ctx, source.Options{Kind: "http", URL: cfg.Source.URL})
//	if err != nil {
//		return err
//	}
//	defer src.Close()
//	companies, err := src.Fetch(ctx)
//
// # Errors
//
// A non-2xx HTTP response yields a *StatusError. Transport and decode failures
// are wrapped with the step that failed ("execute request", "decode response").
// Records with unexpected extra keys are never an error.
package source
