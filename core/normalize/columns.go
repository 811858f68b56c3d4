package normalize

import "strings"

// Role is the meaning assigned to a column of a loosely structured table.
type Role string

// Column roles used by the market-cap normalizer.
const (
	RoleRank      Role = "rank"
	RoleName      Role = "name"
	RoleMarketCap Role = "market_cap"
	RoleChange    Role = "change"
)

// NoFallback marks a rule whose role is optional.
const NoFallback = -1

// ColumnRule assigns Role to the first column whose normalized header
// contains any of Keywords. When nothing matches, the column at Fallback is
// used instead (unless Fallback is NoFallback).
type ColumnRule struct {
	Role     Role
	Keywords []string
	Fallback int
}

// Columns maps roles to column indexes.
type Columns map[Role]int

// Index returns the column index for role and whether it was resolved.
func (c Columns) Index(role Role) (int, bool) {
	i, ok := c[role]
	return i, ok
}

// ResolveColumns evaluates rules in order against headers. Within a rule the
// earliest matching column wins, and a column claimed by an earlier rule is
// not matched again. Positional fallbacks apply only when a rule matches
// nothing and the fallback index exists.
func ResolveColumns(headers []string, rules []ColumnRule) Columns {
	norm := make([]string, len(headers))
	for i, h := range headers {
		norm[i] = NormalizeHeader(h)
	}

	claimed := make(map[int]bool, len(rules))
	out := make(Columns, len(rules))
	for _, rule := range rules {
		if i, ok := matchRule(norm, rule.Keywords, claimed); ok {
			out[rule.Role] = i
			claimed[i] = true
			continue
		}
		if rule.Fallback != NoFallback && rule.Fallback >= 0 && rule.Fallback < len(headers) {
			out[rule.Role] = rule.Fallback
			claimed[rule.Fallback] = true
		}
	}
	return out
}

func matchRule(headers []string, keywords []string, claimed map[int]bool) (int, bool) {
	for i, h := range headers {
		if claimed[i] || h == "" {
			continue
		}
		for _, kw := range keywords {
			if strings.Contains(h, kw) {
				return i, true
			}
		}
	}
	return 0, false
}

// NormalizeHeader trims, lowercases and removes spaces from a header name.
// A leading UTF-8 byte order mark is dropped as well.
func NormalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.Join(strings.Fields(h), "")
}
