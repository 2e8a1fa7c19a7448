package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDuplicate(t *testing.T) {
	assert.False(t, isDuplicate(nil, ""))
	assert.False(t, isDuplicate(errors.New("connection refused"), ""))

	dup := errors.New("Error 1062 (23000): Duplicate entry '2-2026-09-01-cancelled' for key 'reservations.uniq_slot'")
	assert.True(t, isDuplicate(dup, ""))
	assert.True(t, isDuplicate(dup, "uniq_slot"))
	assert.False(t, isDuplicate(dup, "uniq_email"))
}
