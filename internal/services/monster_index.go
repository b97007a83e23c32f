package services

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/codyseavey/padguide/internal/config"
	"github.com/codyseavey/padguide/internal/models"
)

// IndexOptions configures a single index build.
type IndexOptions struct {
	Tables    config.PrefixTables
	Overrides config.Overrides

	NicknameCutoff float64
	NameCutoff     float64
	Similarity     Similarity

	// AcceptFilter, when set, drops monsters it returns false for. Dropped
	// monsters still count towards their group's size and rarity.
	AcceptFilter func(m *models.Monster) bool
}

// OptionsFromSettings converts loaded configuration into build options.
func OptionsFromSettings(settings config.Settings) (IndexOptions, error) {
	sim, err := NewSimilarity(settings.Matching.Similarity)
	if err != nil {
		return IndexOptions{}, err
	}
	return IndexOptions{
		Tables:         settings.Tables,
		Overrides:      settings.Overrides,
		NicknameCutoff: settings.Matching.NicknameCutoff,
		NameCutoff:     settings.Matching.NameCutoff,
		Similarity:     sim,
	}, nil
}

// MonsterIndex resolves free-text queries to monsters. It is built once from
// a snapshot and is safe for concurrent readers.
type MonsterIndex struct {
	monsters []*NamedMonster // highest nickname precedence first

	byMonsterID map[int]*NamedMonster
	byNoNA      map[int]*NamedMonster
	byNoJP      map[int]*NamedMonster
	byName      map[string]*NamedMonster // lowercased NameEN

	nicknames        map[string]*NamedMonster
	twoWordNicknames map[string]*NamedMonster

	pantheonNickToName map[string]string          // nickname -> series name
	pantheons          map[string][]*NamedMonster // lowercased series name -> members

	allPrefixes stringSet

	sortedNicknames []string
	sortedNames     []string
	pantheonNicks   []string

	nicknameCutoff float64
	nameCutoff     float64
	similarity     Similarity

	contested int
}

// higherPrecedence orders monsters for nickname ownership: high priority
// first, then larger groups, then earlier groups, then newer monsters.
func higherPrecedence(a, b *NamedMonster) bool {
	if a.IsLowPriority != b.IsLowPriority {
		return !a.IsLowPriority
	}
	if a.GroupSize != b.GroupSize {
		return a.GroupSize > b.GroupSize
	}
	if a.BaseMonsterNoNA != b.BaseMonsterNoNA {
		return a.BaseMonsterNoNA < b.BaseMonsterNoNA
	}
	if a.MonsterNoNA != b.MonsterNoNA {
		return a.MonsterNoNA > b.MonsterNoNA
	}
	return a.MonsterID > b.MonsterID
}

// BuildMonsterIndex derives names for every monster in src and assembles the
// lookup tables. src must not change during the call.
func BuildMonsterIndex(src MonsterSource, opts IndexOptions) (*MonsterIndex, error) {
	start := time.Now()

	if opts.Tables.AttrShort == nil {
		opts.Tables = config.DefaultPrefixTables()
	}
	if opts.Similarity == nil {
		opts.Similarity, _ = NewSimilarity(config.DefaultSimilarity)
	}
	if opts.NicknameCutoff <= 0 {
		opts.NicknameCutoff = config.DefaultNicknameCutoff
	}
	if opts.NameCutoff <= 0 {
		opts.NameCutoff = config.DefaultNameCutoff
	}

	pantheonNickToName, err := validatePantheonOverrides(opts.Overrides.Pantheons)
	if err != nil {
		return nil, err
	}

	if err := validateBasenameOverrides(src, opts.Overrides.Basenames); err != nil {
		return nil, err
	}

	named, err := nameMonsters(src, opts)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(named, func(i, j int) bool {
		return higherPrecedence(named[i], named[j])
	})

	idx := &MonsterIndex{
		monsters:           named,
		byMonsterID:        make(map[int]*NamedMonster, len(named)),
		byNoNA:             make(map[int]*NamedMonster, len(named)),
		byNoJP:             make(map[int]*NamedMonster, len(named)),
		byName:             make(map[string]*NamedMonster, len(named)),
		nicknames:          make(map[string]*NamedMonster),
		twoWordNicknames:   make(map[string]*NamedMonster),
		pantheonNickToName: pantheonNickToName,
		pantheons:          make(map[string][]*NamedMonster),
		allPrefixes:        newStringSet(),
		nicknameCutoff:     opts.NicknameCutoff,
		nameCutoff:         opts.NameCutoff,
		similarity:         opts.Similarity,
	}

	for _, nm := range named {
		idx.byMonsterID[nm.MonsterID] = nm
	}

	pantheonNames := newStringSet()
	for _, name := range pantheonNickToName {
		pantheonNames.add(strings.ToLower(name))
	}

	// Overrides claim first so a computed nickname can never shadow them.
	idx.claimOverrideNicknames(opts.Overrides.Nicknames)

	for _, nm := range named {
		for nickname := range nm.nicknames {
			idx.claim(idx.nicknames, nickname, nm)
		}
		for nickname := range nm.twoWordNicknames {
			claimFirst(idx.twoWordNicknames, nickname, nm)
		}
		claimFirst(idx.byName, strings.ToLower(nm.NameEN), nm)
		claimFirst(idx.byNoNA, nm.MonsterNoNA, nm)
		claimFirst(idx.byNoJP, nm.MonsterNoJP, nm)

		for prefix := range nm.prefixes {
			idx.allPrefixes.add(prefix)
		}

		if series := strings.ToLower(nm.Series); series != "" && pantheonNames.has(series) {
			idx.pantheons[series] = append(idx.pantheons[series], nm)
		}
	}

	for _, nick := range sortedKeys(pantheonNickToName) {
		name := pantheonNickToName[nick]
		if len(idx.pantheons[strings.ToLower(name)]) == 0 {
			return nil, &OverrideError{Table: "pantheons", Key: nick, Message: fmt.Sprintf("series %q matches no monster", name)}
		}
	}

	idx.sortedNicknames = sortedKeys(idx.nicknames)
	idx.sortedNames = sortedKeys(idx.byName)
	idx.pantheonNicks = sortedKeys(pantheonNickToName)

	log.Printf("Monster index: named %d monsters, %d nicknames (%d contested), %d prefixes in %v",
		len(named), len(idx.nicknames), idx.contested, len(idx.allPrefixes), time.Since(start).Round(time.Millisecond))

	return idx, nil
}

// nameMonsters runs the per-group derivation for every evolution tree and
// links each monster to its indexed siblings.
func nameMonsters(src MonsterSource, opts IndexOptions) ([]*NamedMonster, error) {
	named := make([]*NamedMonster, 0)
	seen := make(map[int]bool)

	for _, baseID := range src.BaseMonsterIDs() {
		treeIDs := src.EvolutionTreeIDs(baseID)
		if len(treeIDs) == 0 || treeIDs[0] != baseID {
			return nil, fmt.Errorf("evolution tree of base monster %d does not start with it", baseID)
		}

		tree := make([]*models.Monster, 0, len(treeIDs))
		for _, id := range treeIDs {
			m := src.Monster(id)
			if m == nil {
				return nil, fmt.Errorf("evolution tree of base monster %d references unknown monster %d", baseID, id)
			}
			tree = append(tree, m)
		}

		group := newNamedMonsterGroup(tree, opts.Overrides.Basenames[baseID])

		namedTree := make([]*NamedMonster, 0, len(tree))
		for _, m := range tree {
			if seen[m.MonsterID] {
				log.Printf("Monster index: monster %d appears in more than one tree, keeping first", m.MonsterID)
				continue
			}
			if opts.AcceptFilter != nil && !opts.AcceptFilter(m) {
				continue
			}
			seen[m.MonsterID] = true

			prefixes := computePrefixes(m, tree, src, opts.Tables)
			nm := newNamedMonster(m, group, prefixes, opts.Overrides.Nicknames[m.MonsterID], src.BaseMonster(m))
			namedTree = append(namedTree, nm)
		}

		for _, nm := range namedTree {
			nm.evolutionTree = namedTree
		}
		named = append(named, namedTree...)
	}

	return named, nil
}

func validatePantheonOverrides(pantheons map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(pantheons))
	for nick, name := range pantheons {
		key := strings.ToLower(strings.TrimSpace(nick))
		if key == "" {
			return nil, &OverrideError{Table: "pantheons", Key: nick, Message: "empty pantheon nickname"}
		}
		if strings.TrimSpace(name) == "" {
			return nil, &OverrideError{Table: "pantheons", Key: nick, Message: "empty series name"}
		}
		out[key] = name
	}
	return out, nil
}

// validateBasenameOverrides rejects basename overrides keyed by a monster that
// does not start an evolution tree.
func validateBasenameOverrides(src MonsterSource, basenames map[int][]string) error {
	if len(basenames) == 0 {
		return nil
	}
	bases := make(map[int]bool)
	for _, id := range src.BaseMonsterIDs() {
		bases[id] = true
	}
	ids := make([]int, 0, len(basenames))
	for id := range basenames {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if !bases[id] {
			return &OverrideError{Table: "basenames", Key: strconv.Itoa(id), Message: "not a base monster"}
		}
	}
	return nil
}

func (idx *MonsterIndex) claimOverrideNicknames(overrides map[int][]string) {
	ids := make([]int, 0, len(overrides))
	for id := range overrides {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		nm := idx.byMonsterID[id]
		if nm == nil {
			log.Printf("Monster index: nickname override for unknown monster %d ignored", id)
			continue
		}
		for _, nickname := range overrides[id] {
			idx.claim(idx.nicknames, nickname, nm)
		}
	}
}

// claim records nm as the owner of nickname unless a higher precedence
// monster already owns it.
func (idx *MonsterIndex) claim(table map[string]*NamedMonster, nickname string, nm *NamedMonster) {
	if owner, ok := table[nickname]; ok {
		if owner != nm {
			idx.contested++
		}
		return
	}
	table[nickname] = nm
}

func claimFirst[K comparable](table map[K]*NamedMonster, key K, nm *NamedMonster) {
	if _, ok := table[key]; !ok {
		table[key] = nm
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MonsterCount returns the number of indexed monsters.
func (idx *MonsterIndex) MonsterCount() int {
	return len(idx.monsters)
}

// NicknameCount returns the number of distinct nicknames.
func (idx *MonsterIndex) NicknameCount() int {
	return len(idx.nicknames)
}

// ContestedNicknames returns how many nickname claims lost to a higher precedence monster.
func (idx *MonsterIndex) ContestedNicknames() int {
	return idx.contested
}

// Monsters returns every indexed monster, highest nickname precedence first.
func (idx *MonsterIndex) Monsters() []*NamedMonster {
	out := make([]*NamedMonster, len(idx.monsters))
	copy(out, idx.monsters)
	return out
}

func (idx *MonsterIndex) ByMonsterID(id int) *NamedMonster {
	return idx.byMonsterID[id]
}

// ByNumber looks a monster up by its global number.
func (idx *MonsterIndex) ByNumber(no int) *NamedMonster {
	return idx.byNoNA[no]
}

// ByNativeNumber looks a monster up by its native server number.
func (idx *MonsterIndex) ByNativeNumber(no int) *NamedMonster {
	return idx.byNoJP[no]
}

// NicknameOwner returns the monster an exact nickname resolves to.
func (idx *MonsterIndex) NicknameOwner(nickname string) *NamedMonster {
	return idx.nicknames[nickname]
}

// IsPrefix reports whether any monster carries the prefix.
func (idx *MonsterIndex) IsPrefix(prefix string) bool {
	return idx.allPrefixes.has(prefix)
}

// AllPrefixes returns every prefix produced by the build, sorted.
func (idx *MonsterIndex) AllPrefixes() []string {
	return idx.allPrefixes.sorted()
}

// PantheonNicknames returns the configured pantheon nicknames, sorted.
func (idx *MonsterIndex) PantheonNicknames() []string {
	out := make([]string, len(idx.pantheonNicks))
	copy(out, idx.pantheonNicks)
	return out
}

// Pantheon returns the members of the series a pantheon nickname refers to.
func (idx *MonsterIndex) Pantheon(nickname string) []*NamedMonster {
	name, ok := idx.pantheonNickToName[strings.ToLower(nickname)]
	if !ok {
		return nil
	}
	members := idx.pantheons[strings.ToLower(name)]
	out := make([]*NamedMonster, len(members))
	copy(out, members)
	return out
}
