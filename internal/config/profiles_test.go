package config

import (
	"strings"
	"testing"
)

const profileFixture = `
[[arxiv]]
categories = ["cs.CL", "cs.LG"]
search_title_words = ["survey"]
exclude_title_words = ["demo"]
filter_by_main_category = true
destination = "https://hooks.example.com/services/T0/B0/xyz"
star_keywords = ["Accepted", "appear"]

[[arxiv]]
categories = ["stat.ML"]
destination = "https://hooks.example.com/services/T0/B1/abc"
`

func TestParseProfiles(t *testing.T) {
	t.Parallel()

	profiles, err := ParseProfiles([]byte(profileFixture))
	if err != nil {
		t.Fatalf("ParseProfiles failed: %v", err)
	}
	if len(profiles.Arxiv) != 2 {
		t.Fatalf("profiles = %d, want 2", len(profiles.Arxiv))
	}

	first := profiles.Arxiv[0]
	if len(first.Categories) != 2 || first.Categories[0] != "cs.CL" {
		t.Fatalf("categories = %v", first.Categories)
	}
	if !first.FilterByMainCategory {
		t.Fatal("filter_by_main_category not parsed")
	}
	if len(first.StarKeywords) != 2 {
		t.Fatalf("star_keywords = %v", first.StarKeywords)
	}

	second := profiles.Arxiv[1]
	if second.FilterByMainCategory {
		t.Fatal("filter_by_main_category should default to false")
	}
	if len(second.SearchTitleWords) != 0 {
		t.Fatalf("search_title_words = %v, want empty", second.SearchTitleWords)
	}
}

func TestParseProfilesRejectsEmptyFile(t *testing.T) {
	t.Parallel()

	if _, err := ParseProfiles([]byte("")); err == nil {
		t.Fatal("expected error for file without profiles")
	}
}

func TestParseProfilesRejectsMissingCategories(t *testing.T) {
	t.Parallel()

	raw := `
[[arxiv]]
destination = "https://hooks.example.com/services/T0/B0/xyz"
`
	_, err := ParseProfiles([]byte(raw))
	if err == nil || !strings.Contains(err.Error(), "categories") {
		t.Fatalf("expected categories error, got %v", err)
	}
}

func TestParseProfilesRejectsMissingDestination(t *testing.T) {
	t.Parallel()

	raw := `
[[arxiv]]
categories = ["cs.CL"]
`
	_, err := ParseProfiles([]byte(raw))
	if err == nil || !strings.Contains(err.Error(), "destination") {
		t.Fatalf("expected destination error, got %v", err)
	}
}
