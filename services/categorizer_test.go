package services

import (
	"testing"

	"github.com/campus-watch/api-go/models"
)

func TestCategorize(t *testing.T) {
	cases := map[string]models.Category{
		"someone stole my laptop":                models.CategoryTheft,
		"there was a robbery in the hostel":      models.CategoryTheft,
		"I witnessed an attack near the gate":    models.CategoryAssault,
		"violence broke out at the cafeteria":    models.CategoryAssault,
		"a strange man is loitering outside":     models.CategorySuspicious,
		"unknown person on the third floor":      models.CategorySuspicious,
		"my door lock is broken":                 models.CategoryOther,
		"":                                       models.CategoryOther,
		"STOLEN bicycle from the rack":           models.CategoryTheft,
		"Suspicious Activity near the library":   models.CategorySuspicious,
	}
	for description, expect := range cases {
		if got := Categorize(description); got != expect {
			t.Fatalf("Categorize(%q) = %q, want %q", description, got, expect)
		}
	}
}

func TestCategorizePriorityOrder(t *testing.T) {
	// Theft keywords outrank assault and suspicious ones when several sets
	// match the same text.
	if got := Categorize("suspicious robbery"); got != models.CategoryTheft {
		t.Fatalf("expected Theft for overlapping keywords, got %q", got)
	}
	if got := Categorize("suspicious attack"); got != models.CategoryAssault {
		t.Fatalf("expected Assault to outrank Suspicious Activity, got %q", got)
	}
}

func TestCategorizeIsPure(t *testing.T) {
	const description = "a strange robbery attack"
	first := Categorize(description)
	for i := 0; i < 10; i++ {
		if got := Categorize(description); got != first {
			t.Fatalf("Categorize is not stable: got %q then %q", first, got)
		}
	}
}
