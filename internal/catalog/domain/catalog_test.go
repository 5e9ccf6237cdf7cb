package domain

import (
	"testing"

	"buildcare_site/platform/apperr"
)

func TestLoadEmbedded_CatalogIsWellFormed(t *testing.T) {
	c, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("expected embedded catalog to load, got %v", err)
	}

	ids := c.IDs()
	if len(ids) == 0 {
		t.Fatal("expected at least one service")
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
		if !c.Has(id) {
			t.Fatalf("expected Has(%q) to be true", id)
		}
	}

	if !c.Has("painting") {
		t.Fatal("expected painting to be offered")
	}

	for _, pt := range []string{"residential", "commercial", "renovation", "maintenance", "other"} {
		if !c.HasProjectType(pt) {
			t.Fatalf("expected project type %q", pt)
		}
	}
}

func TestHas_ExactMatchOnly(t *testing.T) {
	c := MustLoadEmbedded()
	for _, id := range []string{"", "Painting", " painting", "painting ", "unknown"} {
		if c.Has(id) {
			t.Fatalf("expected Has(%q) to be false", id)
		}
	}
}

func TestGet_UnknownIsNotFound(t *testing.T) {
	c := MustLoadEmbedded()
	_, err := c.Get("does-not-exist")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGet_ReturnsIndependentCopy(t *testing.T) {
	c := MustLoadEmbedded()
	entry, err := c.Get("painting")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entry.Process) == 0 {
		t.Fatal("expected process steps")
	}
	entry.Process[0] = "mutated"

	again, _ := c.Get("painting")
	if again.Process[0] == "mutated" {
		t.Fatal("expected catalog to be unaffected by caller mutation")
	}
}

func TestLoad_RejectsBrokenDocuments(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"empty", "services: []"},
		{"blank id", "services:\n  - id: ' '\n    title: X"},
		{"duplicate id", "services:\n  - id: a\n    title: A\n  - id: a\n    title: B"},
		{"missing title", "services:\n  - id: a"},
		{"duplicate project type", "services:\n  - id: a\n    title: A\nprojectTypes:\n  - id: x\n  - id: x"},
		{"not yaml", "services: [::"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load([]byte(tc.doc)); err == nil {
				t.Fatalf("expected %s to be rejected", tc.name)
			}
		})
	}
}

func TestIDs_PreserveDocumentOrder(t *testing.T) {
	c, err := Load([]byte("services:\n  - id: b\n    title: B\n  - id: a\n    title: A\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ids := c.IDs()
	if len(ids) != 2 || ids[0] != "b" || ids[1] != "a" {
		t.Fatalf("expected [b a], got %v", ids)
	}
}
