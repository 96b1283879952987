package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateKey(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC.
	loc := time.FixedZone("UTC-5", -5*3600)
	ts := time.Date(2024, 3, 1, 23, 30, 0, 0, loc)
	assert.Equal(t, "2024-03-02", DateKey(ts))
}

func TestCodeIndex_Deterministic(t *testing.T) {
	ts := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)

	a := CodeIndex(ts, "salt", 1296)
	b := CodeIndex(ts, "salt", 1296)
	assert.Equal(t, a, b)
	assert.GreaterOrEqual(t, a, 0)
	assert.Less(t, a, 1296)

	// Same date, later hour: same index.
	later := time.Date(2024, 3, 2, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, a, CodeIndex(later, "salt", 1296))

	// Different salt: (almost certainly) different index; at minimum the
	// function must not depend on wall-clock time within the day.
	assert.NotEqual(t, CodeIndex(ts, "salt", 1296), CodeIndex(ts, "other-salt", 1296))
}

func TestCodeIndex_DegenerateSpace(t *testing.T) {
	assert.Equal(t, 0, CodeIndex(time.Now(), "salt", 0))
}
