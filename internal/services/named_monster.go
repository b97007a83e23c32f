package services

import (
	"strings"

	"github.com/codyseavey/padguide/internal/models"
)

// basenames that double as prefixes for the rest of their tree
var selfPrefixBasenames = map[string]bool{"ana": true, "ace": true}

// NamedMonster is the indexed form of one monster: its identifiers, the data
// used to rank it, and the nickname vocabulary that resolves to it. It is
// immutable once its index has been built.
type NamedMonster struct {
	MonsterID   int
	MonsterNoNA int
	MonsterNoJP int

	BaseMonsterID   int
	BaseMonsterNoNA int

	Series string // series display name, "" when unknown

	IsLowPriority bool
	GroupSize     int
	Rarity        int

	NameEN string
	NameJA string

	MonsterBasename       string
	GroupComputedBasename string
	GroupBasenames        []string

	prefixes         stringSet
	nicknames        stringSet
	twoWordNicknames stringSet

	// resolved in the second build pass, always contains the monster itself
	evolutionTree []*NamedMonster
}

// newNamedMonster synthesizes the nickname vocabulary for one monster. The
// prefixes set is owned by the new NamedMonster afterwards.
func newNamedMonster(m *models.Monster, group *NamedMonsterGroup, prefixes stringSet, extraNicknames []string, base *models.Monster) *NamedMonster {
	nm := &NamedMonster{
		MonsterID:             m.MonsterID,
		MonsterNoNA:           m.MonsterNoNA,
		MonsterNoJP:           m.MonsterNoJP,
		BaseMonsterID:         base.MonsterID,
		BaseMonsterNoNA:       base.MonsterNoNA,
		Series:                m.SeriesName(),
		IsLowPriority:         group.IsLowPriority || m.IsEquip,
		GroupSize:             group.GroupSize,
		Rarity:                m.Rarity,
		NameEN:                m.NameEN,
		NameJA:                m.NameJA,
		MonsterBasename:       group.MonsterBasenames[m.MonsterID],
		GroupComputedBasename: group.ComputedBasename,
		GroupBasenames:        group.Basenames,
		prefixes:              prefixes,
	}

	if selfPrefixBasenames[nm.MonsterBasename] {
		nm.prefixes.add(nm.MonsterBasename)
	}

	nm.nicknames = newStringSet(extraNicknames...)
	if m.RomaSubname != "" {
		nm.nicknames.add(strings.ToLower(m.RomaSubname))
	}
	for _, basename := range group.Basenames {
		nm.nicknames.add(basename)
		for prefix := range nm.prefixes {
			nm.nicknames.add(prefix+basename, prefix+" "+basename)
		}
	}

	nm.twoWordNicknames = newStringSet()
	for _, basename := range twoWordBasenames(group.Basenames) {
		nm.twoWordNicknames.add(basename)
		for prefix := range nm.prefixes {
			nm.twoWordNicknames.add(prefix+basename, prefix+" "+basename)
		}
	}

	return nm
}

// twoWordBasenames returns the second word of every two-word basename.
func twoWordBasenames(basenames []string) []string {
	seen := newStringSet()
	out := make([]string, 0)
	for _, basename := range basenames {
		words := strings.Fields(basename)
		if len(words) == 2 && !seen.has(words[1]) {
			seen.add(words[1])
			out = append(out, words[1])
		}
	}
	return out
}

// Prefixes returns the monster's prefixes in lexical order.
func (nm *NamedMonster) Prefixes() []string {
	return nm.prefixes.sorted()
}

// HasPrefixes reports whether every query prefix applies to the monster.
func (nm *NamedMonster) HasPrefixes(prefixes []string) bool {
	return nm.prefixes.containsAll(prefixes)
}

// Nicknames returns the monster's full nickname vocabulary in lexical order.
func (nm *NamedMonster) Nicknames() []string {
	return nm.nicknames.sorted()
}

// TwoWordNicknames returns the nicknames built from second words of basenames.
func (nm *NamedMonster) TwoWordNicknames() []string {
	return nm.twoWordNicknames.sorted()
}

// EvolutionTree returns every indexed member of the monster's tree, itself included.
func (nm *NamedMonster) EvolutionTree() []*NamedMonster {
	out := make([]*NamedMonster, len(nm.evolutionTree))
	copy(out, nm.evolutionTree)
	return out
}
