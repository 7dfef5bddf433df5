package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameRoundTrip(t *testing.T) {
	t.Parallel()

	names := []string{"Haaland", "M.Salah", "Son"}
	assert.Equal(t, "Haaland, M.Salah, Son", joinNames(names))
	assert.Equal(t, names, splitNames(joinNames(names)))

	assert.Empty(t, joinNames(nil))
	assert.Nil(t, splitNames(""))
}

func TestIDRoundTrip(t *testing.T) {
	t.Parallel()

	ids := []int64{11, 302, 540}
	assert.Equal(t, "11,302,540", joinIDs(ids))

	parsed, err := splitIDs(joinIDs(ids))
	require.NoError(t, err)
	assert.Equal(t, ids, parsed)

	parsed, err = splitIDs("")
	require.NoError(t, err)
	assert.Nil(t, parsed)

	_, err = splitIDs("1,two,3")
	assert.Error(t, err)
}

func TestTimeRoundTrip(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 8, 15, 17, 30, 0, 0, time.UTC)
	parsed, err := parseTime(formatTime(ts))
	require.NoError(t, err)
	assert.True(t, ts.Equal(parsed))
}
