package domain

// LimitItem is the word-budget decision for one item of a batch.
type LimitItem struct {
	// WordCount is the number of words counted in the item.
	WordCount int `json:"word_count"`

	// Include reports whether the item fits within the budget.
	Include bool `json:"include"`

	// Error is set to the fixed budget message when Include is false.
	Error string `json:"error,omitempty"`
}
