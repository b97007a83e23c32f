package services

import (
	"strings"

	"github.com/codyseavey/padguide/internal/config"
	"github.com/codyseavey/padguide/internal/models"
)

// Name markers used by the prefix heuristics. Japanese-only monsters carry
// their native name in NameEN, so both scripts are checked on that field.
const (
	markerAwoken      = "awoken"
	markerAwokenJA    = "覚醒"
	markerMega        = "mega awoken"
	markerMegaJA      = "極醒"
	markerSuperRevo   = "super reincarnated"
	markerSuperRevoJA = "超転生"
	markerMiniJA      = "ミニ"
	markerPixel       = "pixel"
	markerPixelJA     = "ドット"
)

// isPixel reports whether a monster is the pixel version of its tree.
func isPixel(m *models.Monster) bool {
	name := strings.ToLower(m.NameEN)
	return strings.HasPrefix(name, markerPixel) ||
		strings.HasPrefix(name, markerPixelJA) ||
		strings.HasPrefix(m.NameJA, markerPixelJA)
}

// isChibi reports whether m is a chibi: either its global name is already all
// lowercase while differing from the native name, or the native name has the
// mini marker. The second branch only runs when the names match so names
// like "gemini" can't trip it.
func isChibi(m *models.Monster) bool {
	if m.NameEN != m.NameJA {
		return strings.ToLower(m.NameEN) == m.NameEN
	}
	return strings.Contains(m.NameJA, markerMiniJA)
}

// computePrefixes derives every prefix that may qualify m's basename.
func computePrefixes(m *models.Monster, evolutionTree []*models.Monster, src MonsterSource, tables config.PrefixTables) stringSet {
	prefixes := newStringSet()

	attr1Short := tables.AttrShort[m.Attr1]
	prefixes.add(attr1Short...)
	prefixes.add(tables.AttrLong[m.Attr1]...)

	// No sub attribute still gets an "x" so "rx" style lookups work
	attr2Short := []string{"x"}
	if short, ok := tables.AttrShort[m.Attr2]; ok && m.HasSubAttribute() {
		attr2Short = short
	}
	for _, a1 := range attr1Short {
		for _, a2 := range attr2Short {
			prefixes.add(a1+a2, a1+"/"+a2)
		}
	}

	if isChibi(m) {
		prefixes.add("chibi")
	}

	lowerName := strings.ToLower(m.NameEN)
	awoken := strings.HasPrefix(lowerName, markerAwoken) || strings.Contains(lowerName, markerAwokenJA)
	revo := src.TrueEvoType(m) == models.InternalEvoReincarnated
	srevo := strings.HasPrefix(lowerName, markerSuperRevo) || strings.Contains(lowerName, markerSuperRevoJA)
	mega := strings.HasPrefix(lowerName, markerMega) || strings.Contains(lowerName, markerMegaJA)
	awokenOrRevoOrEquipOrMega := awoken || revo || m.IsEquip || mega

	// Kept separate: "Awoken Thoth" is a plain evo with awoken in the name
	if awoken {
		prefixes.add("a", "awoken")
	}
	if revo {
		prefixes.add("revo", "reincarnated")
	}
	if mega {
		prefixes.add("mega", "mega awoken", "awoken", "ma")
	}
	if srevo {
		prefixes.add("srevo", "super reincarnated")
	}

	switch src.CurEvoType(m) {
	case models.EvoTypeBase:
		prefixes.add("base")
	case models.EvoTypeEvo:
		prefixes.add("evo")
	case models.EvoTypeUvoAwoken:
		if !awokenOrRevoOrEquipOrMega {
			prefixes.add("uvo", "uevo")
		}
	case models.EvoTypeUuvoReincarnated:
		if !awokenOrRevoOrEquipOrMega {
			prefixes.add("uuvo", "uuevo")
		}
	}

	if src.IsFarmableEvo(m) {
		prefixes.add("farmable")
	}

	for _, member := range evolutionTree {
		if isPixel(member) {
			if isPixel(m) {
				prefixes.add("pixel")
			} else {
				prefixes.add("np", "nonpixel")
			}
			break
		}
	}

	if m.IsEquip {
		prefixes.add("assist", "equip")
	}

	prefixes.add(tables.Series[m.SeriesID]...)

	return prefixes
}
