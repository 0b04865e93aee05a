package milestone

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecommendRaiseWhenTooEasy(t *testing.T) {
	rec := Recommend(24, 1, 88.5, "moderate")
	require.Equal(t, SuggestRaise, rec.Suggestion)
	require.Equal(t, 96.0, rec.PassRate)
	require.Equal(t, ConfidenceHigh, rec.Confidence)
	require.Contains(t, rec.Explanation, "too easy")
}

func TestRecommendLowerWhenTooHard(t *testing.T) {
	rec := Recommend(5, 5, 61.0, "hard")
	require.Equal(t, SuggestLower, rec.Suggestion)
	require.Equal(t, 50.0, rec.PassRate)
	require.Equal(t, ConfidenceMedium, rec.Confidence)
	require.Contains(t, rec.Explanation, "too hard")
}

func TestRecommendKeepWithinBand(t *testing.T) {
	rec := Recommend(8, 2, 74.0, "moderate")
	require.Equal(t, SuggestKeep, rec.Suggestion)
	require.Equal(t, 80.0, rec.PassRate)
}

func TestRecommendNoSamplesIsUndefined(t *testing.T) {
	rec := Recommend(0, 0, 0, "easy")
	require.Equal(t, SuggestKeep, rec.Suggestion)
	require.Equal(t, ConfidenceNone, rec.Confidence)
	require.Zero(t, rec.PassRate)
	require.Contains(t, rec.Explanation, "undefined")
}

func TestRecommendSmallSampleFlagsLowConfidence(t *testing.T) {
	rec := Recommend(4, 0, 90.0, "easy")
	require.Equal(t, ConfidenceLow, rec.Confidence)
	require.Equal(t, SuggestRaise, rec.Suggestion)
	require.Contains(t, rec.Explanation, "insufficient")
}

func TestRecommendBoundariesAreExclusive(t *testing.T) {
	// Exactly 95% and exactly 60% both fall inside the keep band.
	require.Equal(t, SuggestKeep, Recommend(19, 1, 80, "moderate").Suggestion)
	require.Equal(t, SuggestKeep, Recommend(12, 8, 65, "moderate").Suggestion)
}
