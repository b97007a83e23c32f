package database

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm/logger"

	"github.com/codyseavey/padguide/internal/models"
)

func TestLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logger.LogLevel
	}{
		{"", logger.Warn},
		{"silent", logger.Silent},
		{" ERROR ", logger.Error},
		{"info", logger.Info},
		{"verbose", logger.Warn},
	}

	for _, tt := range tests {
		if got := LogLevel(tt.in); got != tt.want {
			t.Errorf("LogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInitializeRunsMigrations(t *testing.T) {
	t.Setenv("DB_LOG_LEVEL", "silent")
	dbPath := filepath.Join(t.TempDir(), "padguide.db")

	if err := Initialize(dbPath); err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}
	db := GetDB()

	rows := []string{
		`INSERT INTO monsters (monster_id, monster_no_na, monster_no_jp, name_en, name_ja, attr1, attr2) VALUES (1, 1, 1, 'Hera', '', 'Dark', 'None')`,
		`INSERT INTO monsters (monster_id, monster_no_na, monster_no_jp, name_en, name_ja, attr1, attr2) VALUES (2, 2, 2, 'Awoken Hera', '覚醒ヘラ', 'Dark', 'Water')`,
		`INSERT INTO evolutions (from_id, to_id, evolution_type) VALUES (1, 2, 'Ultimate')`,
		`INSERT INTO evolutions (from_id, to_id, evolution_type) VALUES (2, 99, 'Normal')`,
		`INSERT INTO transformations (from_id, to_id) VALUES (99, 1)`,
	}
	for _, sql := range rows {
		if err := db.Exec(sql).Error; err != nil {
			t.Fatalf("seed %q: %v", sql, err)
		}
	}

	if err := RunMigrations(db); err != nil {
		t.Fatalf("RunMigrations() error: %v", err)
	}

	var hera models.Monster
	if err := db.First(&hera, "monster_id = ?", 1).Error; err != nil {
		t.Fatalf("failed to load monster: %v", err)
	}
	if hera.NameJA != "Hera" {
		t.Errorf("native name = %q, want backfilled English name", hera.NameJA)
	}
	if hera.Attr2 != "" {
		t.Errorf("sub attribute = %q, want empty", hera.Attr2)
	}

	var evoCount, transformCount int64
	db.Model(&models.Evolution{}).Count(&evoCount)
	db.Model(&models.Transformation{}).Count(&transformCount)
	if evoCount != 1 || transformCount != 0 {
		t.Errorf("links = %d evolutions, %d transformations; want 1 and 0", evoCount, transformCount)
	}
}
