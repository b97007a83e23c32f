package main

import (
	"os"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/codyseavey/padguide/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "import.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&models.Series{}, &models.Monster{}, &models.Evolution{}, &models.Transformation{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func sampleDump() *CatalogDump {
	return &CatalogDump{
		Series: []models.Series{{SeriesID: 10, NameEN: "Greek God"}},
		Monsters: []models.Monster{
			{MonsterID: 1, MonsterNoNA: 1, MonsterNoJP: 1, NameEN: "Hera", Attr1: models.AttributeDark, SeriesID: 10},
			{MonsterID: 2, MonsterNoNA: 2, MonsterNoJP: 2, NameEN: "Awoken Hera", NameJA: "覚醒ヘラ", Attr1: models.AttributeDark, SeriesID: 10},
			{MonsterID: 0, NameEN: "No ID"},
			{MonsterID: 2, NameEN: "Duplicate"},
		},
		Evolutions: []models.Evolution{
			{FromID: 1, ToID: 2},
			{FromID: 2, ToID: 99},
		},
		Transformations: []models.Transformation{
			{FromID: 2, ToID: 1},
		},
	}
}

func TestValidateDump(t *testing.T) {
	clean, skipped := validateDump(sampleDump())

	if len(clean.Monsters) != 2 {
		t.Errorf("monsters = %d, want 2", len(clean.Monsters))
	}
	if len(skipped) != 3 {
		t.Errorf("skipped = %v, want 3 entries", skipped)
	}
	if clean.Monsters[0].NameJA != "Hera" {
		t.Errorf("native name = %q, want fallback to the English name", clean.Monsters[0].NameJA)
	}
	if len(clean.Evolutions) != 1 || clean.Evolutions[0].EvolutionType != models.EvolutionNormal {
		t.Errorf("evolutions = %+v, want one Normal link", clean.Evolutions)
	}
}

func TestImportDumpUpserts(t *testing.T) {
	db := testDB(t)
	clean, _ := validateDump(sampleDump())

	result, err := importDump(db, clean)
	if err != nil {
		t.Fatalf("importDump() error: %v", err)
	}
	if result.Monsters != 2 || result.Evolutions != 1 || result.Transformations != 1 || result.Series != 1 {
		t.Errorf("result = %+v", result)
	}

	// A second import with a renamed monster and retyped link updates in place
	clean.Monsters[1].NameEN = "Awoken Hera (New)"
	clean.Evolutions[0].EvolutionType = models.EvolutionUltimate
	if _, err := importDump(db, clean); err != nil {
		t.Fatalf("second importDump() error: %v", err)
	}

	var monsterCount, evoCount int64
	db.Model(&models.Monster{}).Count(&monsterCount)
	db.Model(&models.Evolution{}).Count(&evoCount)
	if monsterCount != 2 || evoCount != 1 {
		t.Errorf("rows = %d monsters, %d evolutions; want 2 and 1", monsterCount, evoCount)
	}

	var awoken models.Monster
	if err := db.First(&awoken, "monster_id = ?", 2).Error; err != nil {
		t.Fatalf("failed to load monster: %v", err)
	}
	if awoken.NameEN != "Awoken Hera (New)" {
		t.Errorf("name = %q, want updated name", awoken.NameEN)
	}

	var evo models.Evolution
	if err := db.First(&evo, "from_id = ? AND to_id = ?", 1, 2).Error; err != nil {
		t.Fatalf("failed to load evolution: %v", err)
	}
	if evo.EvolutionType != models.EvolutionUltimate {
		t.Errorf("evolution type = %q, want Ultimate", evo.EvolutionType)
	}
}

func TestLoadDump(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.json")
	data := `{"monsters":[{"monster_id":7,"name_en":"Tamadra","attr1":"Light"}],"evolutions":[]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write dump: %v", err)
	}

	dump, err := loadDump(path)
	if err != nil {
		t.Fatalf("loadDump() error: %v", err)
	}
	if len(dump.Monsters) != 1 || dump.Monsters[0].NameEN != "Tamadra" {
		t.Errorf("dump = %+v", dump)
	}

	if _, err := loadDump(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("loadDump() should fail for a missing file")
	}
}
