package store_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/curatorapp/curator-server/internal/store"
)

func TestError_Message(t *testing.T) {
	assert.Equal(t, "resource not found", store.ErrNotFound.Error())

	withCause := store.ErrAlreadyExists.WithCause(errors.New("UNIQUE constraint failed"))
	assert.Equal(t, "resource already exists: UNIQUE constraint failed", withCause.Error())
}

func TestError_IsMatchesDerivedErrors(t *testing.T) {
	err := store.ErrNotFound.WithMessage("item item-1 not found")
	wrapped := fmt.Errorf("load: %w", err)

	assert.ErrorIs(t, wrapped, store.ErrNotFound)
	assert.NotErrorIs(t, wrapped, store.ErrAlreadyExists)
}
