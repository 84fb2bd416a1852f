package budget

import "github.com/custodia-labs/cleanfetch/internal/core/domain"

// Limit is the maximum number of words returned across one batch.
const Limit = 128000

// ErrorMessage is reported for every item dropped by the budget.
const ErrorMessage = "exceeded 128000 word limit, dropped by input order"

// LimitItems decides, in input order, which texts fit the word budget.
//
// An item is included when it fits on top of the words already included.
// Excluded items do not consume budget, so a later smaller item may still
// be included after a larger one was dropped.
func LimitItems(texts []string) []domain.LimitItem {
	items := make([]domain.LimitItem, len(texts))
	total := 0
	for i, text := range texts {
		count := CountWords(text)
		items[i].WordCount = count
		if count <= Limit-total {
			total += count
			items[i].Include = true
			continue
		}
		items[i].Error = ErrorMessage
	}
	return items
}
