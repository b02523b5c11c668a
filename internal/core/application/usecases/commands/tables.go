package commands

import "strings"

// ParseTableList splits operator input such as "1, 2,3" into table identifiers.
// Empty entries are dropped.
func ParseTableList(input string) []string {
	parts := strings.Split(input, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}

// resolveTables keeps the identifiers that name a registered table, in order.
func resolveTables(resolver TableResolver, ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := resolver.ResolveTable(id); ok {
			names = append(names, name)
		}
	}
	return names
}
