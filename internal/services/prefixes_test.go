package services

import (
	"testing"

	"github.com/codyseavey/padguide/internal/config"
	"github.com/codyseavey/padguide/internal/models"
)

func treeOf(g *MonsterGraph, baseID int) []*models.Monster {
	ids := g.EvolutionTreeIDs(baseID)
	tree := make([]*models.Monster, 0, len(ids))
	for _, id := range ids {
		tree = append(tree, g.Monster(id))
	}
	return tree
}

func prefixesFor(g *MonsterGraph, id int) stringSet {
	m := g.Monster(id)
	return computePrefixes(m, treeOf(g, g.BaseMonster(m).MonsterID), g, config.DefaultPrefixTables())
}

func TestComputePrefixes(t *testing.T) {
	g := newTestGraph()

	tests := []struct {
		name    string
		id      int
		want    []string
		notWant []string
	}{
		{
			name:    "base monster",
			id:      100,
			want:    []string{"d", "dark", "dx", "d/x", "base", "farmable"},
			notWant: []string{"evo", "uvo", "revo", "np", "pixel"},
		},
		{
			name:    "plain evo inherits farmable",
			id:      101,
			want:    []string{"evo", "farmable"},
			notWant: []string{"base"},
		},
		{
			name:    "reincarnated skips uuvo",
			id:      102,
			want:    []string{"revo", "reincarnated", "dr", "d/r"},
			notWant: []string{"uuvo", "uuevo", "dx"},
		},
		{
			name:    "awoken skips uvo",
			id:      201,
			want:    []string{"a", "awoken", "db", "d/b", "np", "nonpixel"},
			notWant: []string{"uvo", "uevo", "pixel"},
		},
		{
			name:    "pixel form",
			id:      202,
			want:    []string{"pixel", "uvo", "uevo"},
			notWant: []string{"np", "nonpixel"},
		},
		{
			name:    "equip",
			id:      203,
			want:    []string{"assist", "equip", "np"},
			notWant: []string{"uvo", "uevo"},
		},
		{
			name:    "collab series and nil sub attribute",
			id:      300,
			want:    []string{"gh", "gungho", "l", "light", "lx", "l/x", "base"},
			notWant: []string{"np", "chibi"},
		},
		{
			name: "chibi",
			id:   400,
			want: []string{"chibi", "base"},
		},
		{
			name:    "transformed form inherits evo type",
			id:      702,
			want:    []string{"uvo", "g", "green", "wood", "gx"},
			notWant: []string{"base", "evo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := prefixesFor(g, tt.id)
			for _, p := range tt.want {
				if !got.has(p) {
					t.Errorf("prefixes of %d missing %q, got %v", tt.id, p, got.sorted())
				}
			}
			for _, p := range tt.notWant {
				if got.has(p) {
					t.Errorf("prefixes of %d unexpectedly contain %q", tt.id, p)
				}
			}
		})
	}
}

func TestComputePrefixesNameMarkers(t *testing.T) {
	monsters := []models.Monster{
		{MonsterID: 1, NameEN: "Zeus", NameJA: "ゼウス", Rarity: 6, Attr1: models.AttributeLight},
		{MonsterID: 2, NameEN: "Mega Awoken Zeus", NameJA: "極醒ゼウス", Rarity: 9, Attr1: models.AttributeLight},
		{MonsterID: 3, NameEN: "Super Reincarnated Zeus", NameJA: "超転生ゼウス", Rarity: 9, Attr1: models.AttributeLight},
		{MonsterID: 4, NameEN: "覚醒ゼウス", NameJA: "覚醒ゼウス", Rarity: 8, Attr1: models.AttributeLight},
	}
	evolutions := []models.Evolution{
		{FromID: 1, ToID: 2, EvolutionType: models.EvolutionUltimate},
		{FromID: 1, ToID: 3, EvolutionType: models.EvolutionSuperReincarnation},
		{FromID: 1, ToID: 4, EvolutionType: models.EvolutionUltimate},
	}
	g := NewMonsterGraph(monsters, nil, evolutions, nil)

	tests := []struct {
		id      int
		want    []string
		notWant []string
	}{
		{2, []string{"mega", "mega awoken", "awoken", "ma"}, []string{"uvo", "a"}},
		{3, []string{"srevo", "super reincarnated", "uuvo", "uuevo"}, []string{"revo"}},
		{4, []string{"a", "awoken"}, []string{"uvo"}},
	}

	for _, tt := range tests {
		got := prefixesFor(g, tt.id)
		for _, p := range tt.want {
			if !got.has(p) {
				t.Errorf("prefixes of %d missing %q, got %v", tt.id, p, got.sorted())
			}
		}
		for _, p := range tt.notWant {
			if got.has(p) {
				t.Errorf("prefixes of %d unexpectedly contain %q", tt.id, p)
			}
		}
	}
}

func TestIsChibi(t *testing.T) {
	tests := []struct {
		name   string
		nameEN string
		nameJA string
		want   bool
	}{
		{"lowercase global name", "hera mini", "ミニヘラ", true},
		{"untranslated mini", "ミニドラ", "ミニドラ", true},
		{"translated name containing mini", "Gemini", "ジェミニ", false},
		{"regular monster", "Hera", "ヘラ", false},
		{"untranslated regular", "ヘラ", "ヘラ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &models.Monster{NameEN: tt.nameEN, NameJA: tt.nameJA}
			if got := isChibi(m); got != tt.want {
				t.Errorf("isChibi(%q, %q) = %v, want %v", tt.nameEN, tt.nameJA, got, tt.want)
			}
		})
	}
}

func TestIsPixel(t *testing.T) {
	tests := []struct {
		nameEN string
		nameJA string
		want   bool
	}{
		{"Pixel Hera", "ドットヘラ", true},
		{"ドットヘラ", "ドットヘラ", true},
		{"Hera", "ドットヘラ", true},
		{"Hera", "ヘラ", false},
	}

	for _, tt := range tests {
		m := &models.Monster{NameEN: tt.nameEN, NameJA: tt.nameJA}
		if got := isPixel(m); got != tt.want {
			t.Errorf("isPixel(%q, %q) = %v, want %v", tt.nameEN, tt.nameJA, got, tt.want)
		}
	}
}
