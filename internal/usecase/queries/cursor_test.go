package queries_test

import (
	"encoding/base64"
	"testing"
	"time"

	"parking-core/internal/pkg/errs"
	"parking-core/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor(t *testing.T) {
	t.Run("round trips at microsecond precision", func(t *testing.T) {
		at := time.Date(2024, 7, 1, 9, 30, 0, 123456789, time.UTC)
		id := uuid.New()

		c, err := queries.DecodeAfterCursor(queries.EncodeAfterCursor(at, id))
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.True(t, c.StartedAt.Equal(at.Truncate(time.Microsecond)))
		assert.Equal(t, id, c.ID)
	})

	t.Run("empty cursor means first page", func(t *testing.T) {
		c, err := queries.DecodeAfterCursor("")
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	invalid := []string{
		"%%%",
		base64.URLEncoding.EncodeToString([]byte("v0:1-" + uuid.NewString())),
		base64.URLEncoding.EncodeToString([]byte("v1:abc-" + uuid.NewString())),
		base64.URLEncoding.EncodeToString([]byte("v1:123-nope")),
	}
	for _, raw := range invalid {
		_, err := queries.DecodeAfterCursor(raw)
		assert.True(t, errs.Is(err, queries.ErrInvalidCursor), raw)
		assert.Equal(t, errs.KindInvalidInput, errs.KindOf(err))
	}
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(0))
	assert.Equal(t, 10, queries.ValidateLimit(10))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(10_000))
}
