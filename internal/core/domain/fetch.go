package domain

// OutputFormat identifies what a fetched page is converted into.
type OutputFormat string

// Available output formats.
const (
	// FormatMarkdown renders the page as Markdown.
	FormatMarkdown OutputFormat = "markdown"

	// FormatText renders the page as reading-order plain text.
	FormatText OutputFormat = "text"

	// FormatURLs lists the links discovered in the page.
	FormatURLs OutputFormat = "urls"

	// FormatHTML returns the fetched HTML unchanged.
	FormatHTML OutputFormat = "html"
)

// IsValid returns true if the format is recognised.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatText, FormatURLs, FormatHTML:
		return true
	default:
		return false
	}
}

// Budgeted reports whether outputs of this format count against the word budget.
func (f OutputFormat) Budgeted() bool {
	return f == FormatMarkdown || f == FormatText
}

// String returns the string representation.
func (f OutputFormat) String() string {
	return string(f)
}

// AllOutputFormats returns every supported output format.
func AllOutputFormats() []OutputFormat {
	return []OutputFormat{FormatMarkdown, FormatText, FormatURLs, FormatHTML}
}

// FetchResult is the outcome of fetching and converting a single URL.
// Exactly one of Content or Error is meaningful.
type FetchResult struct {
	// URL is the URL as requested by the caller.
	URL string

	// Format is the requested output format.
	Format OutputFormat

	// Content is the converted output. Empty when Error is set.
	Content string

	// Error describes why no content was produced: a fetch failure
	// or the word-budget message.
	Error string

	// WordCount is the number of words in the converted output.
	// Only populated for budgeted formats.
	WordCount int
}

// OK reports whether the result carries content.
func (r FetchResult) OK() bool {
	return r.Error == ""
}
