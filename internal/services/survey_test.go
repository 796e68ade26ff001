package services

import "testing"

func TestSurveyShape(t *testing.T) {
	if len(Questions) != 39 {
		t.Fatalf("expected 39 items, got %d", len(Questions))
	}
	counts := map[Category]int{}
	for i, q := range Questions {
		if q.ID != i+1 {
			t.Fatalf("item ids must be sequential: index %d has id %d", i, q.ID)
		}
		if q.StemI18n["ko"] == "" || q.StemI18n["en"] == "" {
			t.Fatalf("item %d missing a stem translation", q.ID)
		}
		counts[q.Category]++
	}
	want := map[Category]int{
		CategoryEmotional:      14,
		CategoryAccomplishment: 4,
		CategoryPhysical:       6,
		CategoryOrganizational: 11,
		CategoryImpersonal:     4,
	}
	for c, n := range want {
		if counts[c] != n {
			t.Fatalf("category %s has %d items, want %d", c, counts[c], n)
		}
	}
}

func TestSurveyReversedItems(t *testing.T) {
	reversed := map[int]bool{}
	for _, q := range Questions {
		if q.Reversed {
			reversed[q.ID] = true
		}
	}
	if len(reversed) != 2 || !reversed[12] || !reversed[14] {
		t.Fatalf("reversed items should be exactly 12 and 14, got %v", reversed)
	}
}

func TestQuestionByID(t *testing.T) {
	q, ok := QuestionByID(15)
	if !ok {
		t.Fatal("item 15 should exist")
	}
	if q.Category != CategoryAccomplishment {
		t.Fatalf("item 15 category=%s want pe", q.Category)
	}
	if _, ok := QuestionByID(40); ok {
		t.Fatal("item 40 should not exist")
	}
}

func TestCategoryMetadata(t *testing.T) {
	for _, c := range Categories {
		if CategoryNameI18n[c]["ko"] == "" || CategoryNameI18n[c]["en"] == "" {
			t.Fatalf("category %s missing name translation", c)
		}
		if CategoryDescriptionI18n[c]["ko"] == "" {
			t.Fatalf("category %s missing description", c)
		}
	}
}
