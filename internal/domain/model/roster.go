package model

import "strings"

// Roster is the closed set of pool members for a run. It is built once and
// never mutated afterwards.
type Roster struct {
	members []Member
	byName  map[string]int
}

// NewRoster builds a roster from ordered display names; the member at
// position i gets id i+1. Aliases map extra header spellings to ids.
func NewRoster(names []string, aliases map[string]int) *Roster {
	r := &Roster{
		members: make([]Member, 0, len(names)),
		byName:  make(map[string]int, len(names)+len(aliases)),
	}
	for i, name := range names {
		name = strings.TrimSpace(name)
		r.members = append(r.members, Member{ID: i + 1, Name: name})
		r.byName[name] = i + 1
	}
	for alias, id := range aliases {
		if id < 1 || id > len(r.members) {
			continue
		}
		r.byName[strings.TrimSpace(alias)] = id
	}
	return r
}

// Lookup resolves an exact (trimmed) display name or alias.
func (r *Roster) Lookup(name string) (int, bool) {
	id, ok := r.byName[strings.TrimSpace(name)]
	return id, ok
}

// Member returns the member with the given id.
func (r *Roster) Member(id int) (Member, bool) {
	if id < 1 || id > len(r.members) {
		return Member{}, false
	}
	return r.members[id-1], true
}

// Name returns the display name for id, or "" when unknown.
func (r *Roster) Name(id int) string {
	m, _ := r.Member(id)
	return m.Name
}

// Members returns a copy of the roster in id order.
func (r *Roster) Members() []Member {
	out := make([]Member, len(r.members))
	copy(out, r.members)
	return out
}

// Names returns every known spelling (names and aliases).
func (r *Roster) Names() []string {
	out := make([]string, 0, len(r.byName))
	for n := range r.byName {
		out = append(out, n)
	}
	return out
}

// Len returns the number of members.
func (r *Roster) Len() int { return len(r.members) }
