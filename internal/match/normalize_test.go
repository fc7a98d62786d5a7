package match

import (
	"reflect"
	"testing"
)

// TestNormalize verifies case folding, punctuation stripping, and
// whitespace collapsing.
func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  What   is  2+2?  ", "what is 2 2"},
		{"The capital of ___ is Paris.", "the capital of is paris"},
		{"HELLO, World!", "hello world"},
		{"", ""},
		{"?!...", ""},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// TestTokensDeduplicates verifies repeated tokens appear once.
func TestTokensDeduplicates(t *testing.T) {
	got := Tokens("the cat and the hat")
	want := []string{"the", "cat", "and", "hat"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokens = %v, want %v", got, want)
	}
}

// TestSimilarity verifies the overlap ratio on known inputs.
func TestSimilarity(t *testing.T) {
	if got := Similarity("red green blue", "red green blue"); got != 1 {
		t.Fatalf("identical texts should score 1, got %v", got)
	}
	if got := Similarity("red green", "yellow purple"); got != 0 {
		t.Fatalf("disjoint texts should score 0, got %v", got)
	}
	// 3 shared of 4 distinct tokens.
	if got := Similarity("red green blue", "red green yellow"); got != 0.5 {
		t.Fatalf("expected 0.5, got %v", got)
	}
	if got := Similarity("", "anything"); got != 0 {
		t.Fatalf("empty text should score 0, got %v", got)
	}
}
