package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testWindow = SlotWindow{StartHour: 8, Hours: 10, RowPx: 80, PaddingPx: 2}

func TestComputeSlotGeometry(t *testing.T) {
	a := Appointment{ID: 1, Time: "09:30", Duration: 45}

	slot, err := ComputeSlot(&a, testWindow)
	require.NoError(t, err)

	// (9-8)*80 + 30/60*80 = 120; 45/60*80 - 2 = 58
	assert.InDelta(t, 120, slot.TopPx, 0.001)
	assert.InDelta(t, 58, slot.HeightPx, 0.001)
	assert.Equal(t, int64(1), slot.AppointmentID)
}

func TestComputeSlotAtWindowStart(t *testing.T) {
	a := Appointment{ID: 2, Time: "08:00", Duration: 60}

	slot, err := ComputeSlot(&a, testWindow)
	require.NoError(t, err)

	assert.InDelta(t, 0, slot.TopPx, 0.001)
	assert.InDelta(t, 78, slot.HeightPx, 0.001)
}

func TestComputeSlotRejectsBadInput(t *testing.T) {
	_, err := ComputeSlot(&Appointment{Time: "not-a-time", Duration: 30}, testWindow)
	assert.Error(t, err)

	_, err = ComputeSlot(&Appointment{Time: "09:00", Duration: 0}, testWindow)
	assert.Error(t, err)
}

func TestLayoutDayWithoutOverlapUsesSingleColumn(t *testing.T) {
	appointments := []Appointment{
		{ID: 1, Time: "09:00", Duration: 45},
		{ID: 2, Time: "10:00", Duration: 60},
		{ID: 3, Time: "11:30", Duration: 30},
	}

	slots := LayoutDay(appointments, testWindow)
	require.Len(t, slots, 3)
	for _, s := range slots {
		assert.Equal(t, 0, s.Column)
		assert.Equal(t, 1, s.Columns)
	}
}

func TestLayoutDayPacksOverlappingIntoColumns(t *testing.T) {
	appointments := []Appointment{
		{ID: 1, Time: "09:00", Duration: 60},
		{ID: 2, Time: "09:30", Duration: 60},
		{ID: 3, Time: "12:00", Duration: 30},
	}

	slots := LayoutDay(appointments, testWindow)
	require.Len(t, slots, 3)

	byID := map[int64]Slot{}
	for _, s := range slots {
		byID[s.AppointmentID] = s
	}

	assert.Equal(t, 0, byID[1].Column)
	assert.Equal(t, 2, byID[1].Columns)
	assert.Equal(t, 1, byID[2].Column)
	assert.Equal(t, 2, byID[2].Columns)

	// The later appointment is its own cluster at full width.
	assert.Equal(t, 0, byID[3].Column)
	assert.Equal(t, 1, byID[3].Columns)
}

func TestLayoutDayReusesFreedColumns(t *testing.T) {
	// Third appointment starts after the first ends but still overlaps the
	// second, so it can reuse column 0.
	appointments := []Appointment{
		{ID: 1, Time: "09:00", Duration: 30},
		{ID: 2, Time: "09:15", Duration: 60},
		{ID: 3, Time: "09:45", Duration: 30},
	}

	slots := LayoutDay(appointments, testWindow)
	require.Len(t, slots, 3)

	byID := map[int64]Slot{}
	for _, s := range slots {
		byID[s.AppointmentID] = s
	}

	assert.Equal(t, 0, byID[1].Column)
	assert.Equal(t, 1, byID[2].Column)
	assert.Equal(t, 0, byID[3].Column)
	for _, s := range slots {
		assert.Equal(t, 2, s.Columns)
	}
}

func TestLayoutDaySkipsUnparseableTimes(t *testing.T) {
	appointments := []Appointment{
		{ID: 1, Time: "09:00", Duration: 30},
		{ID: 2, Time: "garbage", Duration: 30},
	}

	slots := LayoutDay(appointments, testWindow)
	require.Len(t, slots, 1)
	assert.Equal(t, int64(1), slots[0].AppointmentID)
}
