package services

import (
	"strings"

	"github.com/codyseavey/padguide/internal/models"
)

const (
	lowPriorityMinRarity      = 2
	lowPriorityGroupMinRarity = 5
)

var (
	lowPriorityTypes = map[models.MonsterType]bool{
		models.MonsterTypeEvolve:  true,
		models.MonsterTypeEnhance: true,
		models.MonsterTypeAwoken:  true,
		models.MonsterTypeVendor:  true,
	}
	lowPrioritySubstrings = []string{"tamadra"}

	basenameStripPrefixes = []string{"awoken", "reincarnated"}
	basenameStripMarkers  = []string{"(comics)", "(film)"}
)

// NamedMonsterGroup holds the naming data shared by one evolution tree.
type NamedMonsterGroup struct {
	BaseMonsterID   int
	BaseMonsterNoNA int
	GroupSize       int
	IsLowPriority   bool

	MonsterBasenames  map[int]string // monster id -> its own basename
	ComputedBasename  string
	ComputedBasenames []string
	// Basenames are the names nicknames are built from: the override list when
	// one is configured, otherwise ComputedBasenames.
	Basenames []string
}

// newNamedMonsterGroup derives the group naming data for a non-empty tree
// whose first element is the base monster.
func newNamedMonsterGroup(evolutionTree []*models.Monster, basenameOverrides []string) *NamedMonsterGroup {
	base := evolutionTree[0]

	g := &NamedMonsterGroup{
		BaseMonsterID:    base.MonsterID,
		BaseMonsterNoNA:  base.MonsterNoNA,
		GroupSize:        len(evolutionTree),
		IsLowPriority:    isLowPriorityMonster(base) || isLowPriorityGroup(evolutionTree),
		MonsterBasenames: make(map[int]string, len(evolutionTree)),
	}

	for _, m := range evolutionTree {
		g.MonsterBasenames[m.MonsterID] = computeMonsterBasename(m)
	}

	g.ComputedBasename = g.computeGroupBasename(evolutionTree)
	g.ComputedBasenames = []string{g.ComputedBasename}
	if strings.Contains(g.ComputedBasename, "-") {
		g.ComputedBasenames = append(g.ComputedBasenames, strings.ReplaceAll(g.ComputedBasename, "-", " "))
	}

	if len(basenameOverrides) > 0 {
		g.Basenames = basenameOverrides
	} else {
		g.Basenames = g.ComputedBasenames
	}

	return g
}

// computeMonsterBasename strips qualifiers from a monster's global name.
func computeMonsterBasename(m *models.Monster) string {
	basename := strings.ToLower(m.NameEN)
	if strings.Contains(basename, ",") {
		parts := strings.Split(basename, ",")
		if strings.HasPrefix(strings.TrimSpace(parts[1]), "the ") {
			// "xxx, the yyy": xxx is the name
			basename = parts[0]
		} else {
			basename = parts[len(parts)-1]
		}
	}

	basename = strings.TrimSpace(basename)
	for _, prefix := range basenameStripPrefixes {
		basename = strings.TrimPrefix(basename, prefix)
	}

	for _, marker := range basenameStripMarkers {
		basename = strings.ReplaceAll(basename, marker, "")
	}

	return strings.TrimSpace(basename)
}

// computeGroupBasename picks the most common basename in the tree. Ties go to
// the basename whose highest monster id is lowest, which favors the names of
// the earliest members.
func (g *NamedMonsterGroup) computeGroupBasename(evolutionTree []*models.Monster) string {
	type basenameInfo struct {
		count int
		maxID int
	}

	infos := make(map[string]*basenameInfo)
	order := make([]string, 0)
	for _, m := range evolutionTree {
		basename := g.MonsterBasenames[m.MonsterID]
		info, ok := infos[basename]
		if !ok {
			info = &basenameInfo{}
			infos[basename] = info
			order = append(order, basename)
		}
		info.count++
		if m.MonsterID > info.maxID {
			info.maxID = m.MonsterID
		}
	}

	best := order[0]
	for _, basename := range order[1:] {
		cur, top := infos[basename], infos[best]
		switch {
		case cur.count != top.count:
			if cur.count > top.count {
				best = basename
			}
		case cur.maxID != top.maxID:
			if cur.maxID < top.maxID {
				best = basename
			}
		case basename > best:
			best = basename
		}
	}
	return best
}

func isLowPriorityMonster(m *models.Monster) bool {
	name := strings.ToLower(m.NameEN)

	failedType := lowPriorityTypes[m.Type1]
	failedSubstring := false
	for _, s := range lowPrioritySubstrings {
		if strings.Contains(name, s) {
			failedSubstring = true
			break
		}
	}
	failedRarity := m.Rarity < lowPriorityMinRarity
	failedChibi := name == m.NameEN && m.NameEN != m.NameJA

	return failedType || failedSubstring || failedRarity || failedChibi || m.IsEquip
}

func isLowPriorityGroup(evolutionTree []*models.Monster) bool {
	maxRarity := 0
	for _, m := range evolutionTree {
		if m.Rarity > maxRarity {
			maxRarity = m.Rarity
		}
	}
	return maxRarity < lowPriorityGroupMinRarity
}
