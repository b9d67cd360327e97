package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinuteOfDay(t *testing.T) {
	tests := []struct {
		clock   string
		want    int
		wantErr bool
	}{
		{clock: "00:00", want: 0},
		{clock: "09:30", want: 570},
		{clock: "23:59", want: 1439},
		{clock: "24:00", wantErr: true},
		{clock: "09:60", wantErr: true},
		{clock: "0930", wantErr: true},
		{clock: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := MinuteOfDay(tt.clock)
		if tt.wantErr {
			assert.Error(t, err, "clock %q", tt.clock)
			continue
		}
		require.NoError(t, err, "clock %q", tt.clock)
		assert.Equal(t, tt.want, got, "clock %q", tt.clock)
	}
}

func TestAppointmentOverlaps(t *testing.T) {
	base := Appointment{Date: "2026-09-01", Time: "09:00", Duration: 60, Status: AppointmentStatusConfirmed}

	tests := []struct {
		name  string
		other Appointment
		want  bool
	}{
		{
			name:  "same window",
			other: Appointment{Date: "2026-09-01", Time: "09:00", Duration: 60, Status: AppointmentStatusConfirmed},
			want:  true,
		},
		{
			name:  "partial overlap",
			other: Appointment{Date: "2026-09-01", Time: "09:30", Duration: 60, Status: AppointmentStatusConfirmed},
			want:  true,
		},
		{
			name:  "back to back",
			other: Appointment{Date: "2026-09-01", Time: "10:00", Duration: 30, Status: AppointmentStatusConfirmed},
			want:  false,
		},
		{
			name:  "different day",
			other: Appointment{Date: "2026-09-02", Time: "09:00", Duration: 60, Status: AppointmentStatusConfirmed},
			want:  false,
		},
		{
			name:  "cancelled never overlaps",
			other: Appointment{Date: "2026-09-01", Time: "09:00", Duration: 60, Status: AppointmentStatusCancelled},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(&tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(&base), "overlap must be symmetric")
		})
	}
}

func TestAppointmentStatusTransitions(t *testing.T) {
	a := Appointment{Status: AppointmentStatusConfirmed}
	assert.True(t, a.IsConfirmed())

	a.Complete()
	assert.True(t, a.IsCompleted())

	a.Cancel()
	assert.True(t, a.IsCancelled())
}
