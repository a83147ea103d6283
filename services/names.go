package services

import "sort"

// uniqueNames deduplicates a requested name list while preserving order.
func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	unique := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, name)
	}
	return unique
}

// missingNames returns the requested names absent from found, sorted so error
// messages are stable.
func missingNames(requested, found []string) []string {
	present := make(map[string]struct{}, len(found))
	for _, name := range found {
		present[name] = struct{}{}
	}
	var missing []string
	for _, name := range requested {
		if _, ok := present[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}
