package entity

import (
	"fmt"
	"sort"
)

// SlotWindow describes the visible calendar grid: hour rows of a fixed pixel
// height starting at StartHour.
type SlotWindow struct {
	StartHour int // first visible hour, e.g. 8 for an 08:00 grid
	Hours     int // number of one-hour rows
	RowPx     int // pixel height of one hour row
	PaddingPx int // vertical padding subtracted from each slot
}

// Slot is the computed geometry for one appointment inside a SlotWindow.
// Column/Columns describe side-by-side packing of overlapping appointments:
// this slot occupies column Column out of Columns in its overlap cluster.
type Slot struct {
	AppointmentID int64   `json:"appointment_id"`
	TopPx         float64 `json:"top_px"`
	HeightPx      float64 `json:"height_px"`
	Column        int     `json:"column"`
	Columns       int     `json:"columns"`
}

// ComputeSlot maps (time, duration) to the vertical slot geometry:
// top = (h - H0)*P + (m/60)*P, height = (d/60)*P - padding.
func ComputeSlot(a *Appointment, w SlotWindow) (Slot, error) {
	start, err := a.StartMinute()
	if err != nil {
		return Slot{}, err
	}
	if a.Duration <= 0 {
		return Slot{}, fmt.Errorf("appointment %d has non-positive duration", a.ID)
	}

	hour := start / 60
	minute := start % 60
	p := float64(w.RowPx)

	return Slot{
		AppointmentID: a.ID,
		TopPx:         float64(hour-w.StartHour)*p + float64(minute)/60*p,
		HeightPx:      float64(a.Duration)/60*p - float64(w.PaddingPx),
		Column:        0,
		Columns:       1,
	}, nil
}

// LayoutDay computes slots for one day of appointments and packs overlapping
// ones into side-by-side columns instead of drawing them on top of each
// other. Appointments are processed in start order; each takes the lowest
// column free at its start time, and every member of an overlap cluster
// reports the cluster's full column count so widths line up.
// Appointments whose time cannot be parsed are skipped.
func LayoutDay(appointments []Appointment, w SlotWindow) []Slot {
	type placed struct {
		slot    Slot
		start   int
		end     int
		cluster int
	}

	ordered := make([]*Appointment, 0, len(appointments))
	for i := range appointments {
		ordered = append(ordered, &appointments[i])
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		si, erri := ordered[i].StartMinute()
		sj, errj := ordered[j].StartMinute()
		if erri != nil || errj != nil {
			return erri == nil
		}
		if si != sj {
			return si < sj
		}
		return ordered[i].ID < ordered[j].ID
	})

	var out []placed
	clusterEnd := -1
	clusterID := -1
	clusterColumns := map[int]int{}

	for _, a := range ordered {
		slot, err := ComputeSlot(a, w)
		if err != nil {
			continue
		}
		start, _ := a.StartMinute()
		end := start + a.Duration

		// A new cluster begins when this appointment starts at or after
		// everything placed so far has ended.
		if start >= clusterEnd {
			clusterID++
			clusterEnd = end
		} else if end > clusterEnd {
			clusterEnd = end
		}

		// Lowest column free at this start time within the cluster.
		used := map[int]bool{}
		for _, p := range out {
			if p.cluster == clusterID && p.end > start {
				used[p.slot.Column] = true
			}
		}
		col := 0
		for used[col] {
			col++
		}
		slot.Column = col
		if col+1 > clusterColumns[clusterID] {
			clusterColumns[clusterID] = col + 1
		}

		out = append(out, placed{slot: slot, start: start, end: end, cluster: clusterID})
	}

	slots := make([]Slot, 0, len(out))
	for _, p := range out {
		p.slot.Columns = clusterColumns[p.cluster]
		slots = append(slots, p.slot)
	}
	return slots
}
