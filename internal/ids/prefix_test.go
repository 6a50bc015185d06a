package ids

import "testing"

func TestUniquePrefixLengths(t *testing.T) {
	ids := []string{"2u3iutfd", "2a9k1111", "abc12345"}
	lengths := UniquePrefixLengths(ids)

	if got := lengths["2u3iutfd"]; got != 2 {
		t.Fatalf("expected 2u3iutfd prefix length 2, got %d", got)
	}
	if got := lengths["2a9k1111"]; got != 2 {
		t.Fatalf("expected 2a9k1111 prefix length 2, got %d", got)
	}
	if got := lengths["abc12345"]; got != 1 {
		t.Fatalf("expected abc12345 prefix length 1, got %d", got)
	}
}

func TestUniquePrefixLengthsIsCaseInsensitive(t *testing.T) {
	ids := []string{"Abc", "aBD"}
	lengths := UniquePrefixLengths(ids)

	if got := lengths["abc"]; got != 3 {
		t.Fatalf("expected abc prefix length 3, got %d", got)
	}
	if got := lengths["abd"]; got != 3 {
		t.Fatalf("expected abd prefix length 3, got %d", got)
	}
}

func TestNormalizeUniqueIDs(t *testing.T) {
	got := NormalizeUniqueIDs([]string{"ABC", "", "abc", "Def"})
	if len(got) != 2 || got[0] != "abc" || got[1] != "def" {
		t.Fatalf("unexpected normalized ids %v", got)
	}
}

func TestMatchPrefixNormalized(t *testing.T) {
	ids := []string{"abc123", "abd456", "abc"}

	cases := []struct {
		name          string
		prefix        string
		wantMatch     string
		wantFound     bool
		wantAmbiguous bool
	}{
		{name: "unique prefix", prefix: "abd", wantMatch: "abd456", wantFound: true},
		{name: "case insensitive", prefix: "ABD4", wantMatch: "abd456", wantFound: true},
		{name: "exact match beats longer ids", prefix: "abc", wantMatch: "abc", wantFound: true},
		{name: "ambiguous", prefix: "ab", wantFound: true, wantAmbiguous: true},
		{name: "missing", prefix: "zz"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			match, found, ambiguous := MatchPrefixNormalized(ids, tc.prefix)
			if match != tc.wantMatch || found != tc.wantFound || ambiguous != tc.wantAmbiguous {
				t.Fatalf("MatchPrefixNormalized(%q) = (%q, %v, %v), want (%q, %v, %v)",
					tc.prefix, match, found, ambiguous, tc.wantMatch, tc.wantFound, tc.wantAmbiguous)
			}
		})
	}
}
