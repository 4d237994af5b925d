package match

import "slices"

// MemberSet is an insertion-ordered set of members. Adding a member that is
// alias-equal to one already present is a no-op, so the first occurrence wins.
type MemberSet struct {
	items []MemberDescriptor
}

// NewMemberSet creates a set holding the given members.
func NewMemberSet(members ...MemberDescriptor) *MemberSet {
	s := &MemberSet{}
	for _, m := range members {
		s.Add(m)
	}

	return s
}

// Add inserts d unless an alias-equal member is already present.
// Returns true if d was inserted.
func (s *MemberSet) Add(d MemberDescriptor) bool {
	if _, ok := s.Find(d); ok {
		return false
	}

	s.items = append(s.items, d)

	return true
}

// Find returns the member that is alias-equal to d.
func (s *MemberSet) Find(d MemberDescriptor) (MemberDescriptor, bool) {
	if s == nil {
		return MemberDescriptor{}, false
	}

	for _, item := range s.items {
		if item.Equal(d) {
			return item, true
		}
	}

	return MemberDescriptor{}, false
}

// Contains reports whether an alias-equal member is present.
func (s *MemberSet) Contains(d MemberDescriptor) bool {
	_, ok := s.Find(d)

	return ok
}

// Len returns the number of members.
func (s *MemberSet) Len() int {
	if s == nil {
		return 0
	}

	return len(s.items)
}

// Items returns the members in insertion order.
func (s *MemberSet) Items() []MemberDescriptor {
	if s == nil {
		return nil
	}

	return slices.Clone(s.items)
}

// Sorted returns the members ordered by name, then by type.
func (s *MemberSet) Sorted() []MemberDescriptor {
	out := s.Items()
	slices.SortFunc(out, compareDescriptors)

	return out
}

// Names returns the sorted member names.
func (s *MemberSet) Names() []string {
	sorted := s.Sorted()
	out := make([]string, len(sorted))

	for i, m := range sorted {
		out[i] = m.Name
	}

	return out
}
