// Package registry holds the company record model and the pure functions that
// operate on it.
//
// # Records
//
// Company mirrors one entry of the data source. Wire keys are Portuguese
// (nome, setor, localizacao, ...). Keys the model does not know are kept in
// Company.Attributes so a record survives a decode/encode cycle intact.
// Missing fields decode to their zero value; nothing in this package fails on
// an incomplete record.
//
// # Filtering
//
// Filter derives the visible subset of a collection from a search term:
//
//	visible := registry.Filter(all, "tecno")
//
// Matching is a case-folded substring test on name, sector and location.
// DistinctSectors always counts over the unfiltered collection.
//
// # Detail views
//
// Renderer.Render projects a record into a DetailView where every absent value
// has already been replaced with its placeholder. ShareText produces the
// plain-text summary used by the share action.
package registry
