package database

import (
	"log"

	"gorm.io/gorm"
)

// cleanupDuplicateEvolutions removes duplicate evolution links before the unique
// constraint is added. This runs BEFORE AutoMigrate to prevent constraint violations.
func cleanupDuplicateEvolutions(db *gorm.DB) error {
	if !db.Migrator().HasTable("evolutions") {
		return nil
	}

	// Keep the most recently inserted row for every (from, to) pair
	result := db.Exec(`
		DELETE FROM evolutions
		WHERE id NOT IN (
			SELECT MAX(id)
			FROM evolutions
			GROUP BY from_id, to_id
		)
	`)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		log.Printf("Cleaned up %d duplicate evolution entries", result.RowsAffected)
	}

	return nil
}

// RunMigrations runs any custom data migrations after schema changes
func RunMigrations(db *gorm.DB) error {
	if err := migrateNativeNames(db); err != nil {
		return err
	}
	if err := migrateSubAttributes(db); err != nil {
		return err
	}
	return removeDanglingLinks(db)
}

// migrateNativeNames backfills native names for rows imported before the
// column was required. Untranslated monsters share one name in both columns.
func migrateNativeNames(db *gorm.DB) error {
	result := db.Exec(`UPDATE monsters SET name_ja = name_en WHERE name_ja IS NULL OR name_ja = ''`)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		log.Printf("Migrated %d monsters without a native name", result.RowsAffected)
	}
	return nil
}

// migrateSubAttributes normalizes the legacy "None" marker to an empty sub attribute.
func migrateSubAttributes(db *gorm.DB) error {
	result := db.Exec(`UPDATE monsters SET attr2 = '' WHERE attr2 IS NULL OR attr2 = 'None'`)
	if result.Error != nil {
		log.Printf("Warning: failed to normalize sub attributes: %v", result.Error)
	}
	return nil
}

// removeDanglingLinks drops evolution and transformation rows pointing at
// monsters that no longer exist.
func removeDanglingLinks(db *gorm.DB) error {
	for _, table := range []string{"evolutions", "transformations"} {
		result := db.Exec(`
			DELETE FROM ` + table + `
			WHERE from_id NOT IN (SELECT monster_id FROM monsters)
			   OR to_id NOT IN (SELECT monster_id FROM monsters)
		`)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			log.Printf("Removed %d dangling %s entries", result.RowsAffected, table)
		}
	}
	return nil
}
