package events

import "sort"

// areaCodes maps region names to the integer area codes understood by the
// query protocol. The codes come from the source's own area table and are
// stable identifiers, not anything we assign.
var areaCodes = map[string]int{
	"costa-rica":  445,
	"panama":      446,
	"guatemala":   447,
	"mexico-city": 143,
	"colombia":    363,
	"berlin":      34,
	"london":      13,
	"amsterdam":   29,
	"barcelona":   20,
}

// ResolveRegion returns the area code for a region name.
// The second return value is false for unknown regions.
func ResolveRegion(name string) (int, bool) {
	code, ok := areaCodes[name]
	return code, ok
}

// KnownRegions returns the sorted list of region names the client can sync.
func KnownRegions() []string {
	names := make([]string, 0, len(areaCodes))
	for name := range areaCodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
