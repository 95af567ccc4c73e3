package cityscout

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeSlug(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Omaha", "omaha"},
		{"new york", "new-york"},
		{"  NEW   York  City ", "new-york-city"},
		{"San\tDiego", "san-diego"},
		{"washington-dc", "washington-dc"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := NormalizeSlug(tt.in); got != tt.want {
			t.Errorf("NormalizeSlug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSuggestSlugs(t *testing.T) {
	s := mustStore(t)

	tests := []struct {
		query string
		want  string
	}{
		{"omha", "omaha"},         // Missing 'a'
		{"seatle", "seattle"},     // Missing 't'
		{"portlnd", "portland"},   // Missing 'a'
		{"denvr", "denver"},       // Missing 'e'
		{"bostn", "boston"},       // Missing 'o'
		{"chicgo", "chicago"},     // Missing 'a'
		{"nashvile", "nashville"}, // Missing 'l'
		{"new york", "new-york-city"},
		{"san diego", "san-diego"},
		{"Washington DC", "washington-dc"},
		{"tampa fl", "tampa"},
		{"phoenix az", "phoenix"},
		{"miam", "miami"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := s.SuggestSlugs(tt.query, 1)
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("SuggestSlugs(%q, 1) = %v, want [%s]", tt.query, got, tt.want)
			}
		})
	}
}

func TestSuggestSlugs_Ordering(t *testing.T) {
	s := mustStore(t)

	// Exact hit first, then nearest by edit distance with ties in dataset order.
	got := s.SuggestSlugs("austin", 3)
	if diff := cmp.Diff([]string{"austin", "boston", "miami"}, got); diff != "" {
		t.Errorf("SuggestSlugs(austin) mismatch (-want +got):\n%s", diff)
	}

	got = s.SuggestSlugs("a", 3)
	if diff := cmp.Diff([]string{"omaha", "miami", "tampa"}, got); diff != "" {
		t.Errorf("SuggestSlugs(a) mismatch (-want +got):\n%s", diff)
	}
}

func TestSuggestSlugs_Limits(t *testing.T) {
	s := mustStore(t)

	if got := s.SuggestSlugs("", 5); got != nil {
		t.Errorf("empty query = %v, want nil", got)
	}
	if got := s.SuggestSlugs("   ", 5); got != nil {
		t.Errorf("blank query = %v, want nil", got)
	}
	if got := s.SuggestSlugs("omaha", 0); got != nil {
		t.Errorf("zero limit = %v, want nil", got)
	}
	if got := s.SuggestSlugs("omaha", -3); got != nil {
		t.Errorf("negative limit = %v, want nil", got)
	}
	if got := s.SuggestSlugs("omaha", 1000); len(got) != s.Len() {
		t.Errorf("oversized limit returned %d slugs, want %d", len(got), s.Len())
	}
}

func TestSuggestSlugs_LongInput(t *testing.T) {
	s := mustStore(t)

	got := s.SuggestSlugs(strings.Repeat("x", 10_000), 2)
	if len(got) != 2 {
		t.Errorf("long query returned %v, want 2 slugs", got)
	}
}
