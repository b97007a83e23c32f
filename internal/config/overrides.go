// Package config loads the hand-maintained override tables and matching
// settings that feed the monster index.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultNicknameCutoff = 0.8
	DefaultNameCutoff     = 0.9
	DefaultSimilarity     = "levenshtein"
)

// Overrides are the manually curated tables applied during an index build.
type Overrides struct {
	Nicknames map[int][]string  `yaml:"nicknames"` // monster id -> extra nicknames
	Basenames map[int][]string  `yaml:"basenames"` // base monster id -> basenames
	Pantheons map[string]string `yaml:"pantheons"` // pantheon nickname -> series name
}

// Matching controls the near-miss stages of the resolver.
type Matching struct {
	NicknameCutoff float64 `yaml:"nickname_cutoff"`
	NameCutoff     float64 `yaml:"name_cutoff"`
	Similarity     string  `yaml:"similarity"`
}

// File is the on-disk layout of the overrides YAML file.
type File struct {
	Overrides      `yaml:",inline"`
	SeriesPrefixes map[int][]string `yaml:"series_prefixes"`
	Matching       Matching         `yaml:"matching"`
}

// Settings is everything the index builder needs from configuration.
type Settings struct {
	Overrides Overrides
	Tables    PrefixTables
	Matching  Matching
}

// DefaultSettings returns empty overrides with the built-in tables.
func DefaultSettings() Settings {
	return Settings{
		Overrides: Overrides{
			Nicknames: map[int][]string{},
			Basenames: map[int][]string{},
			Pantheons: map[string]string{},
		},
		Tables: DefaultPrefixTables(),
		Matching: Matching{
			NicknameCutoff: DefaultNicknameCutoff,
			NameCutoff:     DefaultNameCutoff,
			Similarity:     DefaultSimilarity,
		},
	}
}

// LoadSettings reads the overrides file at path. An empty path yields the defaults.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("failed to read overrides file: %w", err)
	}
	return ParseSettings(data)
}

// ParseSettings decodes an overrides document and normalizes it.
func ParseSettings(data []byte) (Settings, error) {
	settings := DefaultSettings()

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return settings, fmt.Errorf("failed to parse overrides: %w", err)
	}

	for id, nicknames := range file.Nicknames {
		settings.Overrides.Nicknames[id] = normalizeAll(nicknames)
	}
	for id, basenames := range file.Basenames {
		settings.Overrides.Basenames[id] = normalizeAll(basenames)
	}
	for nick, name := range file.Pantheons {
		settings.Overrides.Pantheons[strings.ToLower(strings.TrimSpace(nick))] = strings.TrimSpace(name)
	}

	settings.Tables = settings.Tables.WithSeries(file.SeriesPrefixes)

	if file.Matching.NicknameCutoff > 0 {
		settings.Matching.NicknameCutoff = file.Matching.NicknameCutoff
	}
	if file.Matching.NameCutoff > 0 {
		settings.Matching.NameCutoff = file.Matching.NameCutoff
	}
	if file.Matching.Similarity != "" {
		settings.Matching.Similarity = strings.ToLower(file.Matching.Similarity)
	}
	if settings.Matching.NicknameCutoff > 1 || settings.Matching.NameCutoff > 1 {
		return settings, fmt.Errorf("matching cutoffs must be within (0, 1]")
	}

	return settings, nil
}

// normalizeAll lowercases and trims entries, dropping blanks.
func normalizeAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
