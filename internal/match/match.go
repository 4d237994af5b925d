package match

import (
	"slices"

	"copy-generator/internal/analyze"
)

// ForeignReadOptions selects what is visible when reading from a type other
// than the one being generated: every member with a public getter.
var ForeignReadOptions = CollectOptions{
	IncludeNonPublic: false,
	IncludeReadOnly:  true,
	IncludeInitOnly:  true,
}

// Pair is a member that is written together with the alias-equal member its
// value is read from. The names differ when a field such as "_value" pairs
// with a property "Value".
type Pair struct {
	Write MemberDescriptor
	Read  MemberDescriptor
}

// Name returns the name of the written member.
func (p Pair) Name() string {
	return p.Write.Name
}

// Type returns the declared type shared by both sides.
func (p Pair) Type() analyze.TypeRef {
	return p.Write.Type
}

// Match returns the target members that have an alias-equal counterpart among
// the publicly readable members of source, ordered by name.
func Match(targetMembers *MemberSet, source *analyze.TypeInfo) []MemberDescriptor {
	return NewCollector().Match(targetMembers, source)
}

// Match is the cached form of the package-level Match.
func (c *Collector) Match(targetMembers *MemberSet, source *analyze.TypeInfo) []MemberDescriptor {
	pairs := c.MatchPairs(targetMembers, source)
	out := make([]MemberDescriptor, len(pairs))

	for i, p := range pairs {
		out[i] = p.Write
	}

	return out
}

// MatchPairs matches targetMembers against the publicly readable members of
// source and returns each match with the source member it reads.
func (c *Collector) MatchPairs(targetMembers *MemberSet, source *analyze.TypeInfo) []Pair {
	return Pairs(targetMembers, c.Collect(source, ForeignReadOptions))
}

// Pairs returns every writable member of write that has a readable
// alias-equal member in read, ordered by the written member's name. When read
// holds several candidates the first one in walk order is used.
func Pairs(write, read *MemberSet) []Pair {
	var out []Pair

	for _, w := range write.Items() {
		if !w.CanWrite {
			continue
		}

		r, ok := read.Find(w)
		if !ok || !r.CanRead {
			continue
		}

		out = append(out, Pair{Write: w, Read: r})
	}

	slices.SortFunc(out, func(a, b Pair) int {
		return compareDescriptors(a.Write, b.Write)
	})

	return out
}

// SelfPairs pairs every member of set with itself, ordered by name.
func SelfPairs(set *MemberSet) []Pair {
	sorted := set.Sorted()
	out := make([]Pair, len(sorted))

	for i, m := range sorted {
		out[i] = Pair{Write: m, Read: m}
	}

	return out
}
