package textutil

import (
	"reflect"
	"testing"
)

func TestFoldName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"Le Café de l'Homme", "le cafe de l'homme"},
		{"Crème Brûlée", "creme brulee"},
		{"Fish & Chips", "fish  and  chips"},
		{"SEPTIME", "septime"},
	}
	for _, tc := range cases {
		if got := FoldName(tc.in); got != tc.want {
			t.Fatalf("FoldName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTokenizeKeepsShortTokens(t *testing.T) {
	got := Tokenize("Le Cinq - Four Seasons")
	want := []string{"le", "cinq", "four", "seasons"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize = %v, want %v", got, want)
	}
	if Tokenize("   ") != nil {
		t.Fatal("blank input should tokenize to nil")
	}
}

func TestCosineSimilarityNil(t *testing.T) {
	if got := CosineSimilarity(nil, nil); got != 0 {
		t.Fatalf("CosineSimilarity(nil, nil) = %v, want 0", got)
	}
	if got := CosineSimilarity(nil, NewFingerprint("septime")); got != 0 {
		t.Fatalf("CosineSimilarity(nil, fp) = %v, want 0", got)
	}
}

func TestNameSimilarity(t *testing.T) {
	if got := NameSimilarity("Septime", "SEPTIME"); got != 1.0 {
		t.Fatalf("identical names should score 1.0, got %v", got)
	}
	if got := NameSimilarity("Le Café de l'Homme", "Cafe de l'Homme"); got < 0.8 {
		t.Fatalf("accent/article variants should score high, got %v", got)
	}
	if got := NameSimilarity("Septime", "Arpège"); got != 0 {
		t.Fatalf("unrelated names should score 0, got %v", got)
	}
	if got := NameSimilarity("", "Septime"); got != 0 {
		t.Fatalf("blank name should score 0, got %v", got)
	}
}

func TestNameSimilaritySymmetric(t *testing.T) {
	a, b := "Chez L'Ami Jean", "L'Ami Jean"
	if NameSimilarity(a, b) != NameSimilarity(b, a) {
		t.Fatal("similarity should be symmetric")
	}
}
