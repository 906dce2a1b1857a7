package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	SoftDelete
	Name string
}

func TestSoftDelete_Lifecycle(t *testing.T) {
	r := &record{Name: "ring"}
	assert.False(t, IsDeleted(r))

	first := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.True(t, MarkDeleted(r, first))
	require.NotNil(t, r.DeletedAt)
	assert.Equal(t, first, *r.DeletedAt)

	t.Run("delete is idempotent and keeps first timestamp", func(t *testing.T) {
		assert.False(t, MarkDeleted(r, first.Add(time.Hour)))
		assert.Equal(t, first, *r.DeletedAt)
	})

	t.Run("restore clears the timestamp", func(t *testing.T) {
		assert.True(t, Restore(r))
		assert.False(t, IsDeleted(r))
	})

	t.Run("restoring an active record is a no-op", func(t *testing.T) {
		assert.False(t, Restore(r))
		assert.Nil(t, r.DeletedAt)
	})
}
