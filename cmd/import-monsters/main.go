// import-monsters loads a monster catalog dump into the SQLite database used by
// the query server.
//
// Usage: go run ./cmd/import-monsters -db=<path> -file=<dump.json> [-dry-run] [-execute]
//
// The dump is a single JSON object:
//
//	{"series": [...], "monsters": [...], "evolutions": [...], "transformations": [...]}
//
// Rows are upserted by primary key (monsters, series) or by their from/to pair
// (evolutions, transformations), so re-importing a newer dump is safe.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/codyseavey/padguide/internal/database"
	"github.com/codyseavey/padguide/internal/models"
)

// CatalogDump is the on-disk format accepted by the importer.
type CatalogDump struct {
	Series          []models.Series         `json:"series"`
	Monsters        []models.Monster        `json:"monsters"`
	Evolutions      []models.Evolution      `json:"evolutions"`
	Transformations []models.Transformation `json:"transformations"`
}

// ImportResult counts what an import wrote, or would write in dry-run mode.
type ImportResult struct {
	Series          int
	Monsters        int
	Evolutions      int
	Transformations int
	Skipped         []string
}

const batchSize = 500

func main() {
	dbPath := flag.String("db", "", "Path to SQLite database (required)")
	dumpFile := flag.String("file", "", "Path to catalog dump JSON (required)")
	dryRun := flag.Bool("dry-run", false, "Validate the dump without modifying the database")
	execute := flag.Bool("execute", false, "Execute the import (required to make changes)")
	flag.Parse()

	if *dbPath == "" || *dumpFile == "" {
		fmt.Println("Usage: import-monsters -db=<path> -file=<dump.json> [options]")
		fmt.Println("")
		fmt.Println("Loads series, monsters, evolutions and transformations into the")
		fmt.Println("database read by the monster index.")
		fmt.Println("")
		fmt.Println("Options:")
		fmt.Println("  -db        Path to SQLite database (required)")
		fmt.Println("  -file      Path to catalog dump JSON (required)")
		fmt.Println("  -dry-run   Validate the dump without modifying the database")
		fmt.Println("  -execute   Execute the import (required to make changes)")
		os.Exit(1)
	}

	if !*dryRun && !*execute {
		fmt.Println("Error: Must specify either -dry-run or -execute")
		os.Exit(1)
	}

	log.Println("Loading catalog dump...")
	dump, err := loadDump(*dumpFile)
	if err != nil {
		log.Fatalf("Failed to load dump: %v", err)
	}
	log.Printf("Loaded %d monsters, %d series, %d evolutions, %d transformations",
		len(dump.Monsters), len(dump.Series), len(dump.Evolutions), len(dump.Transformations))

	dump, skipped := validateDump(dump)
	for _, reason := range skipped {
		fmt.Printf("  ⚠ %s\n", reason)
	}

	if *dryRun {
		printSummary(ImportResult{
			Series:          len(dump.Series),
			Monsters:        len(dump.Monsters),
			Evolutions:      len(dump.Evolutions),
			Transformations: len(dump.Transformations),
			Skipped:         skipped,
		}, true)
		return
	}

	if err := database.Initialize(*dbPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	result, err := importDump(database.GetDB(), dump)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	result.Skipped = skipped

	// Drop links the new dump left pointing at nothing
	if err := database.RunMigrations(database.GetDB()); err != nil {
		log.Printf("Warning: post-import cleanup failed: %v", err)
	}

	printSummary(result, false)
}

func loadDump(path string) (*CatalogDump, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var dump CatalogDump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &dump, nil
}

// validateDump drops rows the index could never use: monsters without an id or
// English name, and links whose endpoints are missing from the dump.
func validateDump(dump *CatalogDump) (*CatalogDump, []string) {
	var skipped []string
	clean := &CatalogDump{Series: dump.Series}

	known := make(map[int]bool, len(dump.Monsters))
	for _, m := range dump.Monsters {
		if m.MonsterID <= 0 || m.NameEN == "" {
			skipped = append(skipped, fmt.Sprintf("monster %d: missing id or name", m.MonsterID))
			continue
		}
		if known[m.MonsterID] {
			skipped = append(skipped, fmt.Sprintf("monster %d: duplicate row", m.MonsterID))
			continue
		}
		if m.NameJA == "" {
			m.NameJA = m.NameEN
		}
		known[m.MonsterID] = true
		clean.Monsters = append(clean.Monsters, m)
	}

	for _, e := range dump.Evolutions {
		if !known[e.FromID] || !known[e.ToID] {
			skipped = append(skipped, fmt.Sprintf("evolution %d -> %d: unknown monster", e.FromID, e.ToID))
			continue
		}
		if e.EvolutionType == "" {
			e.EvolutionType = models.EvolutionNormal
		}
		clean.Evolutions = append(clean.Evolutions, e)
	}

	for _, tr := range dump.Transformations {
		if !known[tr.FromID] || !known[tr.ToID] {
			skipped = append(skipped, fmt.Sprintf("transformation %d -> %d: unknown monster", tr.FromID, tr.ToID))
			continue
		}
		clean.Transformations = append(clean.Transformations, tr)
	}

	return clean, skipped
}

func importDump(db *gorm.DB, dump *CatalogDump) (ImportResult, error) {
	var result ImportResult

	err := db.Transaction(func(tx *gorm.DB) error {
		if len(dump.Series) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "series_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"name_en", "name_ja"}),
			}).CreateInBatches(dump.Series, batchSize).Error; err != nil {
				return fmt.Errorf("series: %w", err)
			}
			result.Series = len(dump.Series)
		}

		if len(dump.Monsters) > 0 {
			if err := tx.Omit("Series").Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "monster_id"}},
				UpdateAll: true,
			}).CreateInBatches(dump.Monsters, batchSize).Error; err != nil {
				return fmt.Errorf("monsters: %w", err)
			}
			result.Monsters = len(dump.Monsters)
		}

		if len(dump.Evolutions) > 0 {
			evolutions := withoutIDs(dump.Evolutions, func(e *models.Evolution) { e.ID = 0 })
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "from_id"}, {Name: "to_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"evolution_type", "reversible"}),
			}).CreateInBatches(evolutions, batchSize).Error; err != nil {
				return fmt.Errorf("evolutions: %w", err)
			}
			result.Evolutions = len(dump.Evolutions)
		}

		if len(dump.Transformations) > 0 {
			transformations := withoutIDs(dump.Transformations, func(tr *models.Transformation) { tr.ID = 0 })
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "from_id"}, {Name: "to_id"}},
				DoNothing: true,
			}).CreateInBatches(transformations, batchSize).Error; err != nil {
				return fmt.Errorf("transformations: %w", err)
			}
			result.Transformations = len(dump.Transformations)
		}

		return nil
	})

	return result, err
}

// withoutIDs copies link rows with their surrogate ids cleared so upserts
// conflict on the from/to pair rather than the primary key.
func withoutIDs[T any](rows []T, reset func(*T)) []T {
	out := make([]T, len(rows))
	copy(out, rows)
	for i := range out {
		reset(&out[i])
	}
	return out
}

func printSummary(result ImportResult, dryRun bool) {
	fmt.Println("\n========================================")
	if dryRun {
		fmt.Println("DRY RUN SUMMARY (no changes made)")
	} else {
		fmt.Println("IMPORT SUMMARY")
	}
	fmt.Println("========================================")
	fmt.Printf("Series:          %d\n", result.Series)
	fmt.Printf("Monsters:        %d\n", result.Monsters)
	fmt.Printf("Evolutions:      %d\n", result.Evolutions)
	fmt.Printf("Transformations: %d\n", result.Transformations)
	fmt.Printf("Skipped rows:    %d\n", len(result.Skipped))
}
