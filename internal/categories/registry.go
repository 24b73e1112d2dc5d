package categories

import (
	"sort"
	"strings"
)

// Registry merges the immutable built-in tables with a user's custom
// categories. It holds no per-user state and is safe for concurrent use.
type Registry struct {
	builtin []Keywords
	groups  []Group
}

func NewRegistry() *Registry {
	return &Registry{builtin: builtinKeywords, groups: unifiedGroups}
}

// NewRegistryWith builds a registry over explicit tables. Keywords are
// lower-cased on the way in.
func NewRegistryWith(builtin []Keywords, groups []Group) *Registry {
	table := cloneKeywords(builtin)
	for i := range table {
		for j, kw := range table[i].Keywords {
			table[i].Keywords[j] = strings.ToLower(kw)
		}
	}
	return &Registry{builtin: table, groups: cloneGroups(groups)}
}

// Groups returns a copy of the group table the registry was built with.
func (r *Registry) Groups() []Group {
	return cloneGroups(r.groups)
}

// Match resolves text to a category by substring keyword containment,
// case-insensitively. Custom categories are consulted first and the
// strictly longest matching keyword wins; built-ins are only consulted when
// no custom keyword matched. Ties keep the first declared category.
func (r *Registry) Match(text string, custom []Custom) (Name, bool) {
	lower := strings.ToLower(text)

	var (
		best    Name
		bestLen int
	)
	for _, c := range custom {
		for _, kw := range c.Keywords {
			kw = strings.ToLower(kw)
			if kw != "" && len(kw) > bestLen && strings.Contains(lower, kw) {
				best, bestLen = c.Name, len(kw)
			}
		}
	}
	if bestLen > 0 {
		return best, true
	}

	for _, k := range r.builtin {
		for _, kw := range k.Keywords {
			if len(kw) > bestLen && strings.Contains(lower, kw) {
				best, bestLen = k.Category, len(kw)
			}
		}
	}
	return best, bestLen > 0
}

// Subcategories resolves group labels against the registry's own groups.
func (r *Registry) Subcategories(labels []string, custom []Custom) map[Name]struct{} {
	return SubcategoriesOfGroups(labels, r.groups, custom)
}

// Known reports whether name can be assigned to a transaction: a built-in,
// a member of the unified or per-direction group tables, or a custom name.
func (r *Registry) Known(name Name, custom []Custom) bool {
	if name == "" {
		return false
	}
	if name.IsPassThrough() || IsBuiltin(name) {
		return true
	}
	for _, k := range r.builtin {
		if k.Category == name {
			return true
		}
	}
	if inGroups(name, r.groups) || inGroups(name, expenseGroups) || inGroups(name, incomeGroups) {
		return true
	}
	for _, c := range custom {
		if c.Name == name {
			return true
		}
	}
	return false
}

func inGroups(name Name, groups []Group) bool {
	for _, g := range groups {
		for _, c := range g.Categories {
			if c == name {
				return true
			}
		}
	}
	return false
}

// OptionsOf lists category names for a picker: every member of groups and
// every custom name, sorted and de-duplicated, with cash and Turemoney
// appended last.
func OptionsOf(groups []Group, custom []Custom) []Name {
	set := make(map[Name]struct{})
	for _, g := range groups {
		for _, c := range g.Categories {
			set[c] = struct{}{}
		}
	}
	for _, c := range custom {
		set[c.Name] = struct{}{}
	}
	delete(set, Cash)
	delete(set, Turemoney)

	out := make([]Name, 0, len(set)+2)
	for n := range set {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return append(out, Cash, Turemoney)
}
