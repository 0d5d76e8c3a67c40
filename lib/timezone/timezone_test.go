package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNowIsInCampusTimezone(t *testing.T) {
	now := Now()
	require.Equal(t, "Asia/Shanghai", now.Location().String())
}

func TestLocationOffset(t *testing.T) {
	// CST has no daylight saving, the offset is stable year round
	_, offset := time.Date(2024, time.July, 1, 0, 0, 0, 0, Location).Zone()
	require.Equal(t, 8*60*60, offset)
	_, offset = time.Date(2024, time.December, 1, 0, 0, 0, 0, Location).Zone()
	require.Equal(t, 8*60*60, offset)
}
