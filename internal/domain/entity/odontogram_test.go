package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOdontogram(t *testing.T) {
	chart := NewOdontogram()

	require.Len(t, chart, ToothCount)
	for i := 1; i <= ToothCount; i++ {
		tooth, ok := chart[i]
		require.True(t, ok, "tooth %d missing", i)
		assert.Equal(t, i, tooth.ID)
		assert.Equal(t, ToothStatusHealthy, tooth.Status)
	}
}

func TestOdontogramCycleOrder(t *testing.T) {
	want := []ToothStatus{
		ToothStatusCaries,
		ToothStatusFilling,
		ToothStatusCrown,
		ToothStatusImplant,
		ToothStatusExtraction,
		ToothStatusHealthy,
	}

	chart := NewOdontogram()
	for _, status := range want {
		next, err := chart.Cycle(7)
		require.NoError(t, err)
		assert.Equal(t, status, next[7].Status)
		chart = next
	}
}

func TestOdontogramCycleLeavesOtherTeethAlone(t *testing.T) {
	chart := NewOdontogram()
	next, err := chart.Cycle(1)
	require.NoError(t, err)

	for i := 2; i <= ToothCount; i++ {
		assert.Equal(t, ToothStatusHealthy, next[i].Status)
	}
	require.Len(t, next, ToothCount)
}

func TestOdontogramCycleDoesNotMutateReceiver(t *testing.T) {
	chart := NewOdontogram()
	_, err := chart.Cycle(12)
	require.NoError(t, err)

	assert.Equal(t, ToothStatusHealthy, chart[12].Status)
}

func TestOdontogramCycleRejectsInvalidTooth(t *testing.T) {
	chart := NewOdontogram()

	for _, id := range []int{0, -1, 33, 100} {
		_, err := chart.Cycle(id)
		assert.ErrorIs(t, err, ErrInvalidToothID, "tooth id %d", id)
	}
}

func TestOdontogramScanNilYieldsFreshChart(t *testing.T) {
	var chart Odontogram
	require.NoError(t, chart.Scan(nil))
	assert.Len(t, chart, ToothCount)
	assert.Equal(t, ToothStatusHealthy, chart[1].Status)
}

func TestOdontogramValueScanRoundTrip(t *testing.T) {
	chart := NewOdontogram()
	chart[3] = Tooth{ID: 3, Status: ToothStatusCaries}

	raw, err := chart.Value()
	require.NoError(t, err)

	var restored Odontogram
	require.NoError(t, restored.Scan(raw))
	assert.Equal(t, ToothStatusCaries, restored[3].Status)
	assert.Len(t, restored, ToothCount)
}
