package milestone

import "math"

// Item is one entry in a completion checklist. Completeness is resolved by the
// caller, either from a boolean field or the presence of a paired date.
type Item struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
	Complete bool   `json:"complete"`
}

// DateItem builds an item whose completeness is the presence of a date-ish value.
func DateItem(key, label string, required, hasDate bool) Item {
	return Item{Key: key, Label: label, Required: required, Complete: hasDate}
}

// Summary is the aggregated state of a checklist.
type Summary struct {
	Total           int    `json:"total"`
	Completed       int    `json:"completed"`
	Percent         int    `json:"percent"`
	AllRequiredMet  bool   `json:"all_required_met"`
	MissingRequired []Item `json:"missing_required"`
}

// Summarize folds a checklist into its completion percentage, the
// required-items gate, and the unmet required items for pending messaging.
// An empty checklist gates as met with zero percent.
func Summarize(items []Item) Summary {
	summary := Summary{
		Total:           len(items),
		AllRequiredMet:  true,
		MissingRequired: []Item{},
	}

	for _, item := range items {
		if item.Complete {
			summary.Completed++
			continue
		}
		if item.Required {
			summary.AllRequiredMet = false
			summary.MissingRequired = append(summary.MissingRequired, item)
		}
	}

	if summary.Total > 0 {
		summary.Percent = int(math.Round(100 * float64(summary.Completed) / float64(summary.Total)))
	}

	return summary
}

// CombineRequired applies the required-items gate across several checklists,
// such as the overall certification-exam clearance spanning placement, exam
// and phase checklists.
func CombineRequired(summaries ...Summary) bool {
	for _, summary := range summaries {
		if !summary.AllRequiredMet {
			return false
		}
	}
	return true
}
