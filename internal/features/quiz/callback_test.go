package quiz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streak-bot/internal/common"
)

func TestCallbackRoundTrip(t *testing.T) {
	id := uuid.New()
	data := FormatCallback(id, 3)
	assert.LessOrEqual(t, len(data), 64)

	gotID, gotIdx, err := ParseCallback(data)
	require.NoError(t, err)
	assert.Equal(t, id, gotID)
	assert.Equal(t, 3, gotIdx)
}

func TestParseCallbackRejectsMalformed(t *testing.T) {
	id := uuid.NewString()
	for _, data := range []string{
		"",
		"quiz:",
		"quiz:" + id,
		"quiz:" + id + ":",
		"quiz:" + id + ":-1",
		"quiz:" + id + ":x",
		"quiz:not-a-uuid:1",
		"other:" + id + ":1",
	} {
		_, _, err := ParseCallback(data)
		assert.ErrorIs(t, err, common.ErrBadCallback, data)
	}
}
