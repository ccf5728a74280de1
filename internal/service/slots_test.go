package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		raw     string
		want    TimeOfDay
		wantErr bool
	}{
		{raw: "09:00", want: TimeOfDay{Hour: 9}},
		{raw: "9:05", want: TimeOfDay{Hour: 9, Minute: 5}},
		{raw: "23:59", want: TimeOfDay{Hour: 23, Minute: 59}},
		{raw: "14:30:00", want: TimeOfDay{Hour: 14, Minute: 30}},
		{raw: " 08:15 ", want: TimeOfDay{Hour: 8, Minute: 15}},
		{raw: "", wantErr: true},
		{raw: "junk", wantErr: true},
		{raw: "24:00", wantErr: true},
		{raw: "09:60", wantErr: true},
		{raw: "-1:00", wantErr: true},
		{raw: "ab:cd", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.raw)
		if tc.wantErr {
			assert.Error(t, err, tc.raw)
			continue
		}
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}

func TestTimeOfDayStringZeroPads(t *testing.T) {
	assert.Equal(t, "09:05", TimeOfDay{Hour: 9, Minute: 5}.String())
	assert.Equal(t, "23:30", TimeOfDay{Hour: 23, Minute: 30}.String())
}

func TestTimeOfDayAddRollsMinutesIntoHours(t *testing.T) {
	assert.Equal(t, TimeOfDay{Hour: 10, Minute: 15}, TimeOfDay{Hour: 9, Minute: 45}.Add(30))
	assert.Equal(t, TimeOfDay{Hour: 11, Minute: 0}, TimeOfDay{Hour: 9, Minute: 30}.Add(90))
}

func TestGenerateSlotsCoversRange(t *testing.T) {
	slots := GenerateSlots(TimeOfDay{Hour: 9}, TimeOfDay{Hour: 10}, 30)
	assert.Equal(t, []string{"09:00", "09:30"}, slots)
}

func TestGenerateSlotsEmptyWhenInverted(t *testing.T) {
	assert.Empty(t, GenerateSlots(TimeOfDay{Hour: 10}, TimeOfDay{Hour: 9}, 30))
	assert.Empty(t, GenerateSlots(TimeOfDay{Hour: 9}, TimeOfDay{Hour: 9}, 30))
}

// A slot is a bookable start: 09:00-09:45 at a 30 minute increment
// still emits 09:30 even though its nominal end passes 09:45. Duration
// checks belong to the booking flow, not the generator.
func TestGenerateSlotsFinalSlotMayOverrunRangeEnd(t *testing.T) {
	slots := GenerateSlots(TimeOfDay{Hour: 9}, TimeOfDay{Hour: 9, Minute: 45}, 30)
	assert.Equal(t, []string{"09:00", "09:30"}, slots)
}

func TestGenerateSlotsUnevenStart(t *testing.T) {
	slots := GenerateSlots(TimeOfDay{Hour: 9, Minute: 50}, TimeOfDay{Hour: 11}, 30)
	assert.Equal(t, []string{"09:50", "10:20", "10:50"}, slots)
}

func TestGenerateSlotsGuardsNonPositiveIncrement(t *testing.T) {
	assert.Empty(t, GenerateSlots(TimeOfDay{Hour: 9}, TimeOfDay{Hour: 17}, 0))
	assert.Empty(t, GenerateSlots(TimeOfDay{Hour: 9}, TimeOfDay{Hour: 17}, -15))
}
