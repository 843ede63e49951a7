package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), ts)

	for _, invalid := range []string{"9:30", "24:00", "09:60", "0930", "morning", ""} {
		_, err := NewTimeStringFromString(invalid)
		assert.Error(t, err, invalid)
	}
}

func TestTimeStringMinutes(t *testing.T) {
	minutes, err := TimeString("09:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 570, minutes)

	minutes, err = TimeString("00:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 0, minutes)

	_, err = TimeString("garbage").Minutes()
	assert.Error(t, err)
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts, err := TimeString("09:30").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), ts)

	ts, err = TimeString("09:30").AddMinutes(-30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:00"), ts)

	// Выход за границы суток
	_, err = TimeString("23:50").AddMinutes(10)
	assert.Error(t, err)
	_, err = TimeString("00:05").AddMinutes(-10)
	assert.Error(t, err)
}

func TestTimeStringOrdering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.True(t, TimeString("09:59").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:00").IsAfter("09:59"))
}

func TestTimeStringAt(t *testing.T) {
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC), TimeString("09:30").At(day))

	// Дата с ненулевым временем дня не влияет на результат
	noon := day.Add(12 * time.Hour)
	assert.Equal(t, time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC), TimeString("09:30").At(noon))
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan("09:30"))
	assert.Equal(t, TimeString("09:30"), ts)

	require.NoError(t, ts.Scan([]byte("10:00")))
	assert.Equal(t, TimeString("10:00"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 1, 5, 11, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("11:15"), ts)

	assert.Error(t, ts.Scan(42))
}
