package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Profile is one configured arXiv search feeding one destination.
type Profile struct {
	Categories           []string `toml:"categories"`
	SearchTitleWords     []string `toml:"search_title_words"`
	ExcludeTitleWords    []string `toml:"exclude_title_words"`
	SearchAbstractWords  []string `toml:"search_abstract_words"`
	ExcludeAbstractWords []string `toml:"exclude_abstract_words"`
	FilterByMainCategory bool     `toml:"filter_by_main_category"`
	Destination          string   `toml:"destination"`
	StarKeywords         []string `toml:"star_keywords"`
}

// Profiles is the parsed TOML profile file.
type Profiles struct {
	Arxiv []Profile `toml:"arxiv"`
}

func LoadProfiles(path string) (*Profiles, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile file %q: %w", path, err)
	}
	return ParseProfiles(raw)
}

func ParseProfiles(raw []byte) (*Profiles, error) {
	var profiles Profiles
	if err := toml.Unmarshal(raw, &profiles); err != nil {
		return nil, fmt.Errorf("parse profile TOML: %w", err)
	}
	if len(profiles.Arxiv) == 0 {
		return nil, fmt.Errorf("profile file defines no [[arxiv]] profiles")
	}
	for i, p := range profiles.Arxiv {
		if len(p.Categories) == 0 {
			return nil, fmt.Errorf("profile %d: categories must not be empty", i)
		}
		if strings.TrimSpace(p.Destination) == "" {
			return nil, fmt.Errorf("profile %d: destination is required", i)
		}
	}
	return &profiles, nil
}
