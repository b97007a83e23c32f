// monster-lookup resolves monster queries against a catalog database without
// running the server. Useful for checking how an override change affects
// resolution before deploying it.
//
// Usage: go run ./cmd/monster-lookup -db=<path> [-overrides=<file>] [-constrained] [query ...]
//
// With no query arguments, one query is read per line from stdin.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/codyseavey/padguide/internal/config"
	"github.com/codyseavey/padguide/internal/database"
	"github.com/codyseavey/padguide/internal/services"
)

type lookupResult struct {
	Query     string `json:"query"`
	MonsterID int    `json:"monster_id,omitempty"`
	Name      string `json:"name,omitempty"`
	Stage     string `json:"stage,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Error     string `json:"error,omitempty"`
}

func main() {
	dbPath := flag.String("db", "", "Path to SQLite database (required)")
	overridesPath := flag.String("overrides", os.Getenv("OVERRIDES_PATH"), "Path to overrides YAML")
	constrained := flag.Bool("constrained", false, "Use the prefix-constrained resolver")
	asJSON := flag.Bool("json", false, "Print one JSON object per query")
	flag.Parse()

	if *dbPath == "" {
		fmt.Println("Usage: monster-lookup -db=<path> [options] [query ...]")
		fmt.Println("")
		fmt.Println("Options:")
		fmt.Println("  -db           Path to SQLite database (required)")
		fmt.Println("  -overrides    Path to overrides YAML (defaults to $OVERRIDES_PATH)")
		fmt.Println("  -constrained  Use the prefix-constrained resolver")
		fmt.Println("  -json         Print one JSON object per query")
		os.Exit(1)
	}

	settings, err := config.LoadSettings(*overridesPath)
	if err != nil {
		log.Fatalf("Failed to load overrides: %v", err)
	}

	if err := database.Initialize(*dbPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	index, err := buildIndex(context.Background(), services.DatabaseSourceLoader(database.GetDB()), settings)
	if err != nil {
		log.Fatalf("Failed to build index: %v", err)
	}

	find := index.FindMonster
	if *constrained {
		find = index.FindMonsterConstrained
	}

	var queries io.Reader = os.Stdin
	if flag.NArg() > 0 {
		queries = strings.NewReader(strings.Join(flag.Args(), "\n"))
	}

	if err := lookupAll(queries, os.Stdout, find, *asJSON); err != nil {
		log.Fatalf("Lookup failed: %v", err)
	}
}

func buildIndex(ctx context.Context, loader services.SourceLoader, settings config.Settings) (*services.MonsterIndex, error) {
	opts, err := services.OptionsFromSettings(settings)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	src, err := loader(ctx)
	if err != nil {
		return nil, err
	}
	index, err := services.BuildMonsterIndex(src, opts)
	if err != nil {
		return nil, err
	}

	log.Printf("Built index: %d monsters, %d nicknames in %v",
		index.MonsterCount(), index.NicknameCount(), time.Since(start).Round(time.Millisecond))
	return index, nil
}

// lookupAll resolves every non-blank line of in and writes one result per line.
func lookupAll(in io.Reader, out io.Writer, find func(string) (*services.Match, error), asJSON bool) error {
	scanner := bufio.NewScanner(in)
	encoder := json.NewEncoder(out)

	for scanner.Scan() {
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}

		result := lookup(query, find)
		if asJSON {
			if err := encoder.Encode(result); err != nil {
				return err
			}
			continue
		}

		if result.Error != "" {
			fmt.Fprintf(out, "%-24s  ✗ %s\n", query, result.Error)
		} else {
			fmt.Fprintf(out, "%-24s  ✓ %d %s (%s)\n", query, result.MonsterID, result.Name, result.Reason)
		}
	}

	return scanner.Err()
}

func lookup(query string, find func(string) (*services.Match, error)) lookupResult {
	result := lookupResult{Query: query}

	match, err := find(query)
	if err != nil {
		var noMatch *services.NoMatchError
		if errors.As(err, &noMatch) {
			result.Error = noMatch.Message
		} else {
			result.Error = err.Error()
		}
		return result
	}

	result.MonsterID = match.Monster.MonsterID
	result.Name = match.Monster.NameEN
	result.Stage = string(match.Stage)
	result.Reason = match.Reason
	return result
}
