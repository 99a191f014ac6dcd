package decode

// ExtensionRequirement is a conjunction of disjunctions: every inner
// slice is a set of extensions any one of which suffices ("any of
// these"), and the outer slice's members are all simultaneously
// required. A singleton inner slice denotes a hard requirement.
//
// The canonical form keeps hard requirements (len(group) == 1) as a
// flat set and keeps a disjunctive group only when none of its members
// is already hard-required elsewhere in the same requirement.
type ExtensionRequirement struct {
	groups [][]*Extension
}

// None is the empty requirement ("no extensions needed").
var None = ExtensionRequirement{}

// Single builds a hard requirement on one extension.
func Single(ext *Extension) ExtensionRequirement {
	if ext == nil {
		return None
	}
	return ExtensionRequirement{groups: [][]*Extension{{ext}}}
}

// AnyOf builds a disjunctive requirement: at least one of the given
// extensions must be present.
func AnyOf(exts ...*Extension) ExtensionRequirement {
	if len(exts) == 0 {
		return None
	}
	return ExtensionRequirement{groups: [][]*Extension{exts}}
}

// IsEmpty reports whether the requirement has no constraints.
func (r ExtensionRequirement) IsEmpty() bool { return len(r.groups) == 0 }

// Groups returns the requirement's disjunctive groups, hard
// requirements first. Callers must not mutate the returned slices.
func (r ExtensionRequirement) Groups() [][]*Extension { return r.groups }

func containsExt(group []*Extension, ext *Extension) bool {
	for _, e := range group {
		if e == ext {
			return true
		}
	}
	return false
}

func isHard(group []*Extension) bool { return len(group) == 1 }

// Union combines any number of requirements: hard requirements are flattened
// first, then disjunctive groups are kept only if none of their
// members is already hard-required by the union.
func Union(reqs ...ExtensionRequirement) ExtensionRequirement {
	var hard []*Extension
	var disjunctive [][]*Extension

	addHard := func(ext *Extension) {
		for _, h := range hard {
			if h == ext {
				return
			}
		}
		hard = append(hard, ext)
	}

	for _, r := range reqs {
		for _, g := range r.groups {
			if isHard(g) {
				addHard(g[0])
			}
		}
	}

	for _, r := range reqs {
		for _, g := range r.groups {
			if isHard(g) {
				continue
			}
			satisfied := false
			for _, ext := range g {
				if containsExt(hard, ext) {
					satisfied = true
					break
				}
			}
			if !satisfied {
				disjunctive = append(disjunctive, g)
			}
		}
	}

	out := ExtensionRequirement{}
	for _, h := range hard {
		out.groups = append(out.groups, []*Extension{h})
	}
	out.groups = append(out.groups, disjunctive...)
	return out
}

// Satisfied reports whether every group has at least one member in
// the available set.
func (r ExtensionRequirement) Satisfied(available map[*Extension]bool) bool {
	for _, g := range r.groups {
		ok := false
		for _, ext := range g {
			if available[ext] {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// ShortNames renders each group's short names, in group order, for
// display purposes (e.g. CLI "requires: hw, (dwas|qwas)"): a hard
// requirement as its bare name, a disjunctive group parenthesized and
// joined with "|".
func (r ExtensionRequirement) ShortNames() []string {
	var out []string
	for _, g := range r.groups {
		if isHard(g) {
			out = append(out, g[0].ShortName)
		} else {
			name := "("
			for i, e := range g {
				if i > 0 {
					name += "|"
				}
				name += e.ShortName
			}
			name += ")"
			out = append(out, name)
		}
	}
	return out
}
