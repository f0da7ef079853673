package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestErrorIsComparesKind(t *testing.T) {
	err := notFoundError("Recipe not found")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrConflict)

	wrapped := fmt.Errorf("loading: %w", conflictError("a", "b"))
	assert.ErrorIs(t, wrapped, ErrConflict)
	assert.Equal(t, "loading: a, b", wrapped.Error())
}

func TestTranslateStoreError(t *testing.T) {
	assert.NoError(t, translateStoreError(nil, "x"))
	assert.ErrorIs(t, translateStoreError(gorm.ErrRecordNotFound, "User not found"), ErrNotFound)
	assert.Equal(t, "User not found", translateStoreError(gorm.ErrRecordNotFound, "User not found").Error())
	assert.ErrorIs(t, translateStoreError(gorm.ErrDuplicatedKey, "x"), ErrConflict)
	assert.ErrorIs(t, translateStoreError(gorm.ErrForeignKeyViolated, "x"), ErrValidation)

	other := errors.New("connection reset")
	assert.Same(t, other, translateStoreError(other, "x"))
}
