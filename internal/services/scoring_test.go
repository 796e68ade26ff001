package services

import (
	"math"
	"testing"
)

func answersAll(v int) map[int]int {
	out := map[int]int{}
	for _, q := range Questions {
		out[q.ID] = v
	}
	return out
}

func TestReverseScore(t *testing.T) {
	cases := []struct{ raw, points, want int }{
		{1, 5, 5},
		{2, 5, 4},
		{3, 5, 3},
		{4, 5, 2},
		{5, 5, 1},
		{0, 5, 5},  // clamped up to 1
		{9, 5, 1},  // clamped down to 5
		{1, 7, 7},
		{7, 7, 1},
	}
	for _, c := range cases {
		if got := ReverseScore(c.raw, c.points); got != c.want {
			t.Fatalf("ReverseScore(%d,%d)=%d want %d", c.raw, c.points, got, c.want)
		}
	}
}

func TestCalculateScoresUniform(t *testing.T) {
	// With every item answered v, reversed items score 6-v; for a category
	// without reversed items the mean is exactly v.
	cases := []struct {
		v    int
		want float64 // expected score for categories without reversed items
	}{
		{1, 0},
		{2, 25},
		{3, 50},
		{4, 75},
		{5, 100},
	}
	for _, c := range cases {
		scores := CalculateScores(answersAll(c.v))
		// pe, ph, or, im have no reversed items
		for _, cat := range []Category{CategoryAccomplishment, CategoryPhysical, CategoryOrganizational, CategoryImpersonal} {
			if got := scores.Get(cat); math.Abs(got-c.want) > 1e-9 {
				t.Fatalf("uniform %d: %s=%v want %v", c.v, cat, got, c.want)
			}
		}
	}
}

func TestCalculateScoresReversedItems(t *testing.T) {
	// em has 14 items, two reversed (12 and 14). Answering 5 everywhere gives
	// 12 items at 5 and 2 items at 1: mean 4.428..., score (mean-1)/4*100.
	scores := CalculateScores(answersAll(5))
	wantMean := (12.0*5 + 2.0*1) / 14.0
	want := (wantMean - 1) / 4 * 100
	if math.Abs(scores.Em-want) > 1e-9 {
		t.Fatalf("em=%v want %v", scores.Em, want)
	}
}

func TestCalculateScoresEmptyAndUnknown(t *testing.T) {
	scores := CalculateScores(nil)
	if scores != (CategoryScores{}) {
		t.Fatalf("empty answers should score zero, got %+v", scores)
	}
	// unknown ids are ignored
	scores = CalculateScores(map[int]int{999: 5, -1: 3})
	if scores != (CategoryScores{}) {
		t.Fatalf("unknown ids should be ignored, got %+v", scores)
	}
}

func TestCalculateScoresClampsOutOfRange(t *testing.T) {
	// item 15 is pe; a raw 99 clamps to 5, a raw -3 clamps to 1
	hi := CalculateScores(map[int]int{15: 99})
	if hi.Pe != 100 {
		t.Fatalf("clamp high: pe=%v want 100", hi.Pe)
	}
	lo := CalculateScores(map[int]int{15: -3})
	if lo.Pe != 0 {
		t.Fatalf("clamp low: pe=%v want 0", lo.Pe)
	}
}

func TestCalculateScoresPartialCategory(t *testing.T) {
	// only one ph item answered; the category mean is just that item
	scores := CalculateScores(map[int]int{19: 3})
	if scores.Ph != 50 {
		t.Fatalf("ph=%v want 50", scores.Ph)
	}
	if scores.Em != 0 || scores.Pe != 0 || scores.Or != 0 || scores.Im != 0 {
		t.Fatalf("unanswered categories must stay 0: %+v", scores)
	}
}

func TestCalculateABOIndexWeights(t *testing.T) {
	cases := []struct {
		scores CategoryScores
		want   int
	}{
		{CategoryScores{}, 0},
		{CategoryScores{Em: 100, Pe: 100, Ph: 100, Or: 100, Im: 100}, 100},
		{CategoryScores{Em: 100}, 30},
		{CategoryScores{Pe: 100}, 20},
		{CategoryScores{Im: 100}, 10},
		// 50*0.3 + 50*0.2 + 50*0.2 + 50*0.2 + 50*0.1 = 50
		{CategoryScores{Em: 50, Pe: 50, Ph: 50, Or: 50, Im: 50}, 50},
		// rounding half up: 25*0.3=7.5 -> 8
		{CategoryScores{Em: 25}, 8},
	}
	for _, c := range cases {
		if got := CalculateABOIndex(c.scores); got != c.want {
			t.Fatalf("index(%+v)=%d want %d", c.scores, got, c.want)
		}
	}
}

func TestCalculateABOIndexMonotonic(t *testing.T) {
	prev := -1
	for em := 0; em <= 100; em += 5 {
		got := CalculateABOIndex(CategoryScores{Em: float64(em)})
		if got < prev {
			t.Fatalf("index not monotonic at em=%d: %d < %d", em, got, prev)
		}
		prev = got
	}
}

func TestBurnoutLevelThresholds(t *testing.T) {
	cases := []struct {
		index int
		want  Level
	}{
		{0, LevelSafe},
		{29, LevelSafe},
		{30, LevelCaution},
		{49, LevelCaution},
		{50, LevelWarning},
		{69, LevelWarning},
		{70, LevelDanger},
		{100, LevelDanger},
	}
	for _, c := range cases {
		if got := BurnoutLevel(c.index); got != c.want {
			t.Fatalf("BurnoutLevel(%d)=%s want %s", c.index, got, c.want)
		}
	}
}

func TestFullAssessmentScenario(t *testing.T) {
	// all 3s: every category scores 50, index 50, warning band
	scores := CalculateScores(answersAll(3))
	for _, cat := range Categories {
		if got := scores.Get(cat); math.Abs(got-50) > 1e-9 {
			t.Fatalf("%s=%v want 50", cat, got)
		}
	}
	index := CalculateABOIndex(scores)
	if index != 50 {
		t.Fatalf("index=%d want 50", index)
	}
	if BurnoutLevel(index) != LevelWarning {
		t.Fatalf("level=%s want warning", BurnoutLevel(index))
	}
}
