package core

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestionErrorUnwrap(t *testing.T) {
	inner := fs.ErrNotExist
	err := &IngestionError{Source: "q1.csv", Err: inner}

	assert.Contains(t, err.Error(), "q1.csv")
	require.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestErrorMessages(t *testing.T) {
	assert.Contains(t, (&MissingColumnError{Column: "amount"}).Error(), `"amount"`)
	assert.Contains(t, (&InsufficientDataError{Points: 2, Needed: 3}).Error(), "at least 3")
	assert.Contains(t, (&UnsortedInputError{Index: 4}).Error(), "index 4")
}
