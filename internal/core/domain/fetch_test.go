package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputFormat_IsValid(t *testing.T) {
	for _, f := range AllOutputFormats() {
		assert.True(t, f.IsValid(), f.String())
	}
	assert.False(t, OutputFormat("pdf").IsValid())
	assert.False(t, OutputFormat("").IsValid())
}

func TestOutputFormat_Budgeted(t *testing.T) {
	tests := []struct {
		format   OutputFormat
		expected bool
	}{
		{FormatMarkdown, true},
		{FormatText, true},
		{FormatURLs, false},
		{FormatHTML, false},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.Budgeted())
		})
	}
}

func TestFetchResult_OK(t *testing.T) {
	assert.True(t, FetchResult{URL: "https://a.com", Content: "x"}.OK())
	assert.True(t, FetchResult{URL: "https://a.com"}.OK())
	assert.False(t, FetchResult{URL: "https://a.com", Error: "boom"}.OK())
}
