package services

import (
	"math"
	"time"
)

// likertPoints is the number of points on the ABO survey's Likert scale.
const likertPoints = 5

// Level is the ordinal burnout risk band derived from the ABO index.
type Level string

const (
	LevelSafe    Level = "safe"
	LevelCaution Level = "caution"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// CategoryScores holds the five 0-100 category scores. A category with no
// answered items scores 0.
type CategoryScores struct {
	Em float64 `json:"em"`
	Pe float64 `json:"pe"`
	Ph float64 `json:"ph"`
	Or float64 `json:"or"`
	Im float64 `json:"im"`
}

// Get returns the score for a category.
func (cs CategoryScores) Get(c Category) float64 {
	switch c {
	case CategoryEmotional:
		return cs.Em
	case CategoryAccomplishment:
		return cs.Pe
	case CategoryPhysical:
		return cs.Ph
	case CategoryOrganizational:
		return cs.Or
	case CategoryImpersonal:
		return cs.Im
	}
	return 0
}

func (cs *CategoryScores) set(c Category, v float64) {
	switch c {
	case CategoryEmotional:
		cs.Em = v
	case CategoryAccomplishment:
		cs.Pe = v
	case CategoryPhysical:
		cs.Ph = v
	case CategoryOrganizational:
		cs.Or = v
	case CategoryImpersonal:
		cs.Im = v
	}
}

// Demographics are optional free-text tags attached to a result.
type Demographics struct {
	Gender   string `json:"gender,omitempty"`
	AgeGroup string `json:"ageGroup,omitempty"`
}

// AssessmentResult is the immutable outcome of one completed assessment.
type AssessmentResult struct {
	CategoryScores CategoryScores `json:"categoryScores"`
	ABOIndex       int            `json:"aboIndex"`
	Level          Level          `json:"level"`
	Timestamp      time.Time      `json:"timestamp"`
	Demographics   *Demographics  `json:"demographics,omitempty"`
}

// ReverseScore maps a raw Likert value to its reverse-scored value
// given the number of points in the scale (e.g., 5 or 7).
// raw is expected to be within [1, points]. Out-of-range values are clamped.
func ReverseScore(raw, points int) int {
	if points < 2 {
		return raw
	}
	if raw < 1 {
		raw = 1
	}
	if raw > points {
		raw = points
	}
	return (points + 1) - raw
}

func clampRaw(raw int) int {
	if raw < 1 {
		return 1
	}
	if raw > likertPoints {
		return likertPoints
	}
	return raw
}

// CalculateScores aggregates a sparse item-id to raw-response mapping into
// the five category scores. Unknown item ids are ignored, raw values are
// clamped to [1,5], reversed items are inverted, and each answered category's
// mean is rescaled from [1,5] to [0,100]. Categories without answers score 0.
func CalculateScores(answers map[int]int) CategoryScores {
	sums := map[Category]int{}
	counts := map[Category]int{}
	for id, raw := range answers {
		q, ok := QuestionByID(id)
		if !ok {
			continue
		}
		v := clampRaw(raw)
		if q.Reversed {
			v = ReverseScore(v, likertPoints)
		}
		sums[q.Category] += v
		counts[q.Category]++
	}

	var scores CategoryScores
	for _, c := range Categories {
		if counts[c] == 0 {
			continue
		}
		mean := float64(sums[c]) / float64(counts[c])
		scores.set(c, (mean-1)/4*100)
	}
	return scores
}

// indexWeights is the fixed linear combination producing the ABO index.
// The weights sum to 1.0.
var indexWeights = map[Category]float64{
	CategoryEmotional:      0.30,
	CategoryAccomplishment: 0.20,
	CategoryPhysical:       0.20,
	CategoryOrganizational: 0.20,
	CategoryImpersonal:     0.10,
}

// CalculateABOIndex reduces category scores to the 0-100 composite index,
// rounded half up.
func CalculateABOIndex(scores CategoryScores) int {
	var weighted float64
	for c, w := range indexWeights {
		weighted += scores.Get(c) * w
	}
	return int(math.Floor(weighted + 0.5))
}

// BurnoutLevel classifies an ABO index into a risk band. Thresholds are
// half-open with inclusive lower bounds; anything >= 70 is danger.
func BurnoutLevel(index int) Level {
	switch {
	case index < 30:
		return LevelSafe
	case index < 50:
		return LevelCaution
	case index < 70:
		return LevelWarning
	default:
		return LevelDanger
	}
}
