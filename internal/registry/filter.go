package registry

import (
	"strings"

	"golang.org/x/text/cases"
)

// Filter returns the records whose name, sector or location contains term,
// compared case-folded. An empty term returns the collection as is. Relative
// order is preserved and the input is never modified.
func Filter(companies []Company, term string) []Company {
	if term == "" {
		return companies
	}
	folder := cases.Fold()
	needle := folder.String(term)

	out := make([]Company, 0, len(companies))
	for _, c := range companies {
		if Matches(c, needle, folder) {
			out = append(out, c)
		}
	}
	return out
}

// Matches reports whether any searchable field of c contains the already
// folded needle. Empty fields never match a non-empty needle.
func Matches(c Company, needle string, folder cases.Caser) bool {
	if needle == "" {
		return true
	}
	for _, field := range [...]string{c.Name, c.Sector, c.Location} {
		if field == "" {
			continue
		}
		if strings.Contains(folder.String(field), needle) {
			return true
		}
	}
	return false
}

// DistinctSectors counts the unique sector values across the whole collection.
// Values are compared exactly; a missing sector counts as one value.
func DistinctSectors(companies []Company) int {
	seen := make(map[string]struct{}, len(companies))
	for _, c := range companies {
		seen[c.Sector] = struct{}{}
	}
	return len(seen)
}
