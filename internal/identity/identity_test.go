package identity

import "testing"

func TestNormalizeCrossRef(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  ", ""},
		{"undefined", ""},
		{"NULL", ""},
		{" null ", ""},
		{"ChIJN1t_tDeuEmsRUsoyG83frY4", "ChIJN1t_tDeuEmsRUsoyG83frY4"},
		{"  g-123  ", "g-123"},
	}
	for _, tc := range cases {
		if got := NormalizeCrossRef(tc.in); got != tc.want {
			t.Fatalf("NormalizeCrossRef(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSameCrossRef(t *testing.T) {
	if !SameCrossRef(" g1 ", "g1") {
		t.Fatal("trimmed equal ids should match")
	}
	if SameCrossRef("g1", "g2") {
		t.Fatal("distinct ids must not match")
	}
	// The absence sentinels must never compare equal, even to themselves.
	for _, sentinel := range []string{"", "undefined", "null"} {
		if SameCrossRef(sentinel, sentinel) {
			t.Fatalf("sentinel %q compared equal to itself", sentinel)
		}
	}
	if !SameCrossRef("g1", "g1") {
		t.Fatal("SameCrossRef should be reflexive for present ids")
	}
}

func TestSameCrossRefSymmetric(t *testing.T) {
	pairs := [][2]string{{"g1", "g1"}, {"g1", "g2"}, {"", "g1"}, {"null", "null"}}
	for _, p := range pairs {
		if SameCrossRef(p[0], p[1]) != SameCrossRef(p[1], p[0]) {
			t.Fatalf("SameCrossRef(%q, %q) is not symmetric", p[0], p[1])
		}
	}
}

func TestIsInternalID(t *testing.T) {
	if !IsInternalID("0b8f8a6e-9c1d-4df2-a8f5-2f15cbb4c8f0") {
		t.Fatal("canonical UUID should be detected as internal")
	}
	if IsInternalID("ChIJN1t_tDeuEmsRUsoyG83frY4") {
		t.Fatal("provider id misdetected as internal UUID")
	}
	if IsInternalID("0b8f8a6e9c1d4df2a8f52f15cbb4c8f0") {
		t.Fatal("undashed hex is not the canonical internal shape")
	}
	if IsInternalID(NewID()) != true {
		t.Fatal("freshly minted id should be internal-shaped")
	}
}

func TestLooksLikeCrossRef(t *testing.T) {
	if LooksLikeCrossRef("undefined") {
		t.Fatal("sentinel should never look like a cross-ref")
	}
	if LooksLikeCrossRef("7c9a78b2-3a02-4f4e-8d8b-6c8f2f1f9a11") {
		t.Fatal("internal UUID should never look like a cross-ref")
	}
	if !LooksLikeCrossRef("ChIJN1t_tDeuEmsRUsoyG83frY4") {
		t.Fatal("provider id should look like a cross-ref")
	}
}

func TestCrossRefFieldsFallbackOrder(t *testing.T) {
	f := CrossRefFields{PlaceIDSnake: "g-snake", GooglePlaceID: "g-legacy"}
	if got := f.CrossRef(); got != "g-snake" {
		t.Fatalf("CrossRef() = %q, want first populated alias", got)
	}

	f = CrossRefFields{PlaceID: "null", GooglePlaceID: "g-legacy"}
	if got := f.CrossRef(); got != "g-legacy" {
		t.Fatalf("CrossRef() = %q, want fall-through past sentinel", got)
	}

	f = CrossRefFields{PlaceID: "6f0f9f8e-58f7-4f7e-9f83-0a4f6a2b9c10"}
	if got := f.CrossRef(); got != "" {
		t.Fatalf("CrossRef() = %q, want internal UUID filtered out", got)
	}
}
