package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	all := []error{
		ErrInvalidInput,
		ErrUnsupportedFormat,
		ErrFetchFailed,
		ErrNotHTML,
		ErrRendererUnavailable,
		ErrRenderTimeout,
		ErrUnauthorized,
	}

	for i, a := range all {
		for j, b := range all {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}

func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("fetching https://a.com: %w", ErrFetchFailed)
	assert.ErrorIs(t, wrapped, ErrFetchFailed)
	assert.Contains(t, wrapped.Error(), "fetch failed")
}
