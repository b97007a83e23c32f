package services

import (
	"testing"

	"github.com/codyseavey/padguide/internal/config"
	"github.com/codyseavey/padguide/internal/models"
)

const (
	seriesGreekGod = 10
	seriesGungHo   = 183
)

// testCatalog returns a small catalog covering the naming heuristics:
//
//	100 Lu Bu -> 101 Lu Bu -> 102 Reincarnated Lu Bu
//	200 Hera -> 201 Awoken Hera -> 203 Hera's Crown (equip)
//	        \-> 202 Pixel Hera
//	300 Hera-Is (GungHo collab)
//	400 hera mini (chibi)
//	500 Tamadra
//	700 Ilm -> 701 Awoken Ilm ~> 702 Transformed Ilm
func testCatalog() ([]models.Monster, []models.Series, []models.Evolution, []models.Transformation) {
	monsters := []models.Monster{
		{MonsterID: 100, MonsterNoNA: 100, MonsterNoJP: 100, NameEN: "Lu Bu", NameJA: "呂布", Rarity: 5, Attr1: models.AttributeDark, Type1: models.MonsterTypeDevil, Farmable: true},
		{MonsterID: 101, MonsterNoNA: 101, MonsterNoJP: 101, NameEN: "Lu Bu", NameJA: "呂布", Rarity: 6, Attr1: models.AttributeDark, Type1: models.MonsterTypeDevil},
		{MonsterID: 102, MonsterNoNA: 102, MonsterNoJP: 102, NameEN: "Reincarnated Lu Bu", NameJA: "転生呂布", Rarity: 7, Attr1: models.AttributeDark, Attr2: models.AttributeFire, Type1: models.MonsterTypeDevil, RomaSubname: "Tensei Ryofu"},

		{MonsterID: 200, MonsterNoNA: 200, MonsterNoJP: 200, NameEN: "Hera", NameJA: "ヘラ", Rarity: 5, Attr1: models.AttributeDark, Type1: models.MonsterTypeGod, SeriesID: seriesGreekGod},
		{MonsterID: 201, MonsterNoNA: 201, MonsterNoJP: 201, NameEN: "Awoken Hera", NameJA: "覚醒ヘラ", Rarity: 7, Attr1: models.AttributeDark, Attr2: models.AttributeWater, Type1: models.MonsterTypeGod, SeriesID: seriesGreekGod},
		{MonsterID: 202, MonsterNoNA: 202, MonsterNoJP: 202, NameEN: "Pixel Hera", NameJA: "ドットヘラ", Rarity: 6, Attr1: models.AttributeDark, Type1: models.MonsterTypeGod, SeriesID: seriesGreekGod},
		{MonsterID: 203, MonsterNoNA: 203, MonsterNoJP: 203, NameEN: "Hera's Crown", NameJA: "ヘラの冠", Rarity: 6, Attr1: models.AttributeDark, Type1: models.MonsterTypeGod, IsEquip: true, SeriesID: seriesGreekGod},

		{MonsterID: 300, MonsterNoNA: 300, MonsterNoJP: 300, NameEN: "Hera-Is", NameJA: "ヘライース", Rarity: 6, Attr1: models.AttributeLight, Attr2: models.AttributeNil, Type1: models.MonsterTypeGod, SeriesID: seriesGungHo},

		{MonsterID: 400, MonsterNoNA: 400, MonsterNoJP: 400, NameEN: "hera mini", NameJA: "ミニヘラ", Rarity: 3, Attr1: models.AttributeDark, Type1: models.MonsterTypeGod},

		{MonsterID: 500, MonsterNoNA: 500, MonsterNoJP: 500, NameEN: "Tamadra", NameJA: "たまドラ", Rarity: 3, Attr1: models.AttributeLight, Type1: models.MonsterTypeEnhance},

		{MonsterID: 700, MonsterNoNA: 700, MonsterNoJP: 700, NameEN: "Ilm", NameJA: "イルム", Rarity: 5, Attr1: models.AttributeWood, Type1: models.MonsterTypeDragon},
		{MonsterID: 701, MonsterNoNA: 701, MonsterNoJP: 701, NameEN: "Awoken Ilm", NameJA: "覚醒イルム", Rarity: 7, Attr1: models.AttributeWood, Type1: models.MonsterTypeDragon},
		{MonsterID: 702, MonsterNoNA: 702, MonsterNoJP: 702, NameEN: "Transformed Ilm", NameJA: "変身イルム", Rarity: 8, Attr1: models.AttributeWood, Type1: models.MonsterTypeDragon},
	}

	series := []models.Series{
		{SeriesID: seriesGreekGod, NameEN: "Greek God"},
		{SeriesID: seriesGungHo, NameEN: "GungHo Collab"},
	}

	evolutions := []models.Evolution{
		{FromID: 100, ToID: 101, EvolutionType: models.EvolutionNormal},
		{FromID: 101, ToID: 102, EvolutionType: models.EvolutionReincarnation},
		{FromID: 200, ToID: 201, EvolutionType: models.EvolutionUltimate},
		{FromID: 200, ToID: 202, EvolutionType: models.EvolutionPixel},
		{FromID: 201, ToID: 203, EvolutionType: models.EvolutionAssist},
		{FromID: 700, ToID: 701, EvolutionType: models.EvolutionUltimate},
	}

	transforms := []models.Transformation{
		{FromID: 701, ToID: 702},
	}

	return monsters, series, evolutions, transforms
}

func newTestGraph() *MonsterGraph {
	return NewMonsterGraph(testCatalog())
}

func newTestIndex(t *testing.T, overrides config.Overrides) *MonsterIndex {
	t.Helper()

	settings := config.DefaultSettings()
	if overrides.Nicknames != nil {
		settings.Overrides.Nicknames = overrides.Nicknames
	}
	if overrides.Basenames != nil {
		settings.Overrides.Basenames = overrides.Basenames
	}
	if overrides.Pantheons != nil {
		settings.Overrides.Pantheons = overrides.Pantheons
	}

	opts, err := OptionsFromSettings(settings)
	if err != nil {
		t.Fatalf("OptionsFromSettings() error: %v", err)
	}
	idx, err := BuildMonsterIndex(newTestGraph(), opts)
	if err != nil {
		t.Fatalf("BuildMonsterIndex() error: %v", err)
	}
	return idx
}

func defaultTestIndex(t *testing.T) *MonsterIndex {
	return newTestIndex(t, config.Overrides{
		Pantheons: map[string]string{"greek": "Greek God"},
	})
}
