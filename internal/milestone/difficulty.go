package milestone

import (
	"fmt"
	"math"
)

// Confidence grades how much weight a difficulty recommendation carries,
// based purely on sample size.
type Confidence string

const (
	// ConfidenceNone means no attempts exist; the recommendation is undefined.
	ConfidenceNone Confidence = "none"
	// ConfidenceLow means fewer than 5 attempts.
	ConfidenceLow Confidence = "low"
	// ConfidenceMedium means fewer than 15 attempts.
	ConfidenceMedium Confidence = "medium"
	// ConfidenceHigh means 15 or more attempts.
	ConfidenceHigh Confidence = "high"
)

const (
	// raiseThreshold is the pass-rate percentage above which a scenario reads as too easy.
	raiseThreshold = 95.0
	// lowerThreshold is the pass-rate percentage below which a scenario reads as too hard.
	lowerThreshold = 60.0
)

// Suggestion directions for adjusting scenario difficulty.
const (
	SuggestRaise = "raise"
	SuggestLower = "lower"
	SuggestKeep  = "keep"
)

// Recommendation is the output of the difficulty band classifier. It is a
// two-threshold heuristic, not a statistical model.
type Recommendation struct {
	Suggestion   string     `json:"suggestion"`
	PassRate     float64    `json:"pass_rate"`
	AverageScore float64    `json:"average_score"`
	SampleSize   int        `json:"sample_size"`
	Confidence   Confidence `json:"confidence"`
	Explanation  string     `json:"explanation"`
}

// Recommend classifies aggregate pass/fail counts into a suggested difficulty
// direction for the scenario currently labelled with the given difficulty.
func Recommend(passCount, failCount int, averageScore float64, currentDifficulty string) Recommendation {
	sample := passCount + failCount
	rec := Recommendation{
		Suggestion:   SuggestKeep,
		AverageScore: averageScore,
		SampleSize:   sample,
		Confidence:   confidenceFor(sample),
	}

	if sample < 1 {
		rec.Explanation = "No attempts recorded; difficulty recommendation is undefined."
		return rec
	}

	rec.PassRate = math.Round(10000*float64(passCount)/float64(sample)) / 100

	switch {
	case rec.PassRate > raiseThreshold:
		rec.Suggestion = SuggestRaise
		rec.Explanation = fmt.Sprintf("Pass rate %.1f%% over %d attempts suggests the %s scenario is too easy.", rec.PassRate, sample, currentDifficulty)
	case rec.PassRate < lowerThreshold:
		rec.Suggestion = SuggestLower
		rec.Explanation = fmt.Sprintf("Pass rate %.1f%% over %d attempts suggests the %s scenario is too hard.", rec.PassRate, sample, currentDifficulty)
	default:
		rec.Explanation = fmt.Sprintf("Pass rate %.1f%% over %d attempts is within the expected band; keep the %s difficulty.", rec.PassRate, sample, currentDifficulty)
	}

	if rec.Confidence == ConfidenceLow {
		rec.Explanation += " Sample size is insufficient for a confident call."
	}

	return rec
}

func confidenceFor(sample int) Confidence {
	switch {
	case sample < 1:
		return ConfidenceNone
	case sample < 5:
		return ConfidenceLow
	case sample < 15:
		return ConfidenceMedium
	default:
		return ConfidenceHigh
	}
}
