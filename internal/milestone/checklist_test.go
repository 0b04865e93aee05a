package milestone

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSummarizeNineRequiredSixComplete(t *testing.T) {
	items := make([]Item, 0, 9)
	for i := 0; i < 9; i++ {
		items = append(items, Item{
			Key:      fmt.Sprintf("item_%d", i),
			Required: true,
			Complete: i < 6,
		})
	}

	summary := Summarize(items)
	require.Equal(t, 67, summary.Percent)
	require.False(t, summary.AllRequiredMet)
	require.Len(t, summary.MissingRequired, 3)
}

func TestSummarizeOptionalItemsDoNotBlockGate(t *testing.T) {
	items := []Item{
		{Key: "liability_form", Required: true, Complete: true},
		{Key: "background_check", Required: true, Complete: true},
		{Key: "headshot", Required: false, Complete: false},
	}

	summary := Summarize(items)
	require.True(t, summary.AllRequiredMet)
	require.Equal(t, 67, summary.Percent)
	require.Empty(t, summary.MissingRequired)
}

func TestSummarizeEmptyChecklist(t *testing.T) {
	summary := Summarize(nil)
	require.Equal(t, 0, summary.Percent)
	require.True(t, summary.AllRequiredMet)
	require.Empty(t, summary.MissingRequired)
}

func TestSummarizeAllComplete(t *testing.T) {
	items := []Item{
		{Key: "drug_screen", Required: true, Complete: true},
		{Key: "immunizations", Required: true, Complete: true},
	}

	summary := Summarize(items)
	require.Equal(t, 100, summary.Percent)
	require.True(t, summary.AllRequiredMet)
}

func TestDateItemCompleteness(t *testing.T) {
	require.True(t, DateItem("closeout_meeting", "Closeout meeting held", true, true).Complete)
	require.False(t, DateItem("closeout_meeting", "Closeout meeting held", true, false).Complete)
}

func TestCombineRequiredGatesAcrossChecklists(t *testing.T) {
	met := Summarize([]Item{{Key: "a", Required: true, Complete: true}})
	unmet := Summarize([]Item{{Key: "b", Required: true, Complete: false}})

	require.True(t, CombineRequired(met, met))
	require.False(t, CombineRequired(met, unmet))
	require.True(t, CombineRequired())
}
