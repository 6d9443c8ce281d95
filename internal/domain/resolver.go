package domain

import (
	"fmt"
	"math"
	"time"
)

// The run is built around local midnight sweeping across this calendar day.
const (
	TargetMonth = time.December
	TargetDay   = 25
)

// graceMinutes keeps the final minute of the target day in candidacy:
// a station at exactly 00:00 the following day still reports 1 minute left.
const graceMinutes = 1

// Phase describes where the run stands relative to the station table.
type Phase string

const (
	PhasePreMission Phase = "pre-mission"
	PhaseActive     Phase = "active"
	PhaseInTransit  Phase = "in-transit"
	PhaseComplete   Phase = "complete"
)

// ResolvedState is the derived view of the run at one instant. It is recomputed
// on every tick and never persisted.
type ResolvedState struct {
	Phase            Phase     `json:"phase"`
	Current          Station   `json:"current"`
	MinutesRemaining int       `json:"minutes_remaining"`
	LocalTime        string    `json:"local_time"`
	Visited          []Geo     `json:"visited"`
	Route            []Geo     `json:"route"`
	Speed            float64   `json:"speed_km_s"`
	TargetDayGlobal  bool      `json:"is_target_day_globally"`
	ResolvedAt       time.Time `json:"resolved_at"`
}

type dayStatus int

const (
	dayBefore dayStatus = iota
	dayDuring
	dayAfter
)

// Resolve derives the run state for now. It is pure and safe for concurrent use.
//
// A station is current when its local clock is on the target day; among those,
// the one closest to local midnight wins, with earlier east-to-west entries
// winning ties. Stations whose local day has moved past the target are visited.
func (t *StationTable) Resolve(now time.Time) ResolvedState {
	state := ResolvedState{
		Phase:           PhasePreMission,
		Current:         HomeBase,
		Visited:         []Geo{HomeBase.Geo},
		Route:           t.Route(),
		TargetDayGlobal: isTargetDay(now),
		ResolvedAt:      now,
	}

	current, best, finished := -1, 0, 0
	started := false
	for i, st := range t.order {
		status, remaining := stationStatus(now, st.Offset)
		if i == 0 {
			started = status != dayBefore
		}
		switch status {
		case dayDuring:
			if current < 0 || remaining < best {
				current, best = i, remaining
			}
		case dayAfter:
			finished++
		}
	}

	switch {
	case current >= 0:
		state.Phase = PhaseActive
		state.Current = t.order[current]
		state.MinutesRemaining = best
		state.Visited = t.visitedThrough(current + 1)
		state.Speed = t.legSpeed(current)
	case !started:
		// The easternmost station has not reached the target day, or the table is empty.
	case finished == len(t.order):
		state.Phase = PhaseComplete
		state.Visited = t.Route()
	default:
		// Sparse tables can leave a gap where no station is on the target day.
		state.Phase = PhaseInTransit
		state.Current = t.order[finished-1]
		state.Visited = t.visitedThrough(finished)
		state.Speed = t.legSpeed(finished - 1)
	}

	state.LocalTime = LocalTimeLabel(now, state.Current.Offset)
	return state
}

// MinutesRemaining reports how many minutes of the target day are left at the
// given offset, including the grace minute. ok is false when the offset is not
// on the target day at now.
func MinutesRemaining(now time.Time, offset float64) (minutes int, ok bool) {
	status, remaining := stationStatus(now, offset)
	return remaining, status == dayDuring
}

// LocalTimeLabel formats now shifted by offset hours as HH:MM, wrapped into one day.
func LocalTimeLabel(now time.Time, offset float64) string {
	u := now.UTC()
	total := u.Hour()*60 + u.Minute() + int(math.Round(offset*60))
	total = ((total % 1440) + 1440) % 1440
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// visitedThrough returns home base followed by the first n stations.
func (t *StationTable) visitedThrough(n int) []Geo {
	visited := make([]Geo, 0, n+1)
	visited = append(visited, HomeBase.Geo)
	for _, st := range t.order[:n] {
		visited = append(visited, st.Geo)
	}
	return visited
}

// legSpeed is the velocity in km/s over the leg ending at station i. Leg time
// is the offset gap between its endpoints, at least one hour.
func (t *StationTable) legSpeed(i int) float64 {
	from := HomeBase
	if i > 0 {
		from = t.order[i-1]
	}
	to := t.order[i]

	hours := math.Max(math.Abs(from.Offset-to.Offset), 1)
	return DistanceKM(from.Geo, to.Geo) / (hours * 3600)
}

// stationStatus places now on the local calendar of a station at offset.
// The local year is used, so the target day never wraps across years.
func stationStatus(now time.Time, offset float64) (dayStatus, int) {
	local := now.In(time.FixedZone("", int(math.Round(offset*3600))))
	end := time.Date(local.Year(), TargetMonth, TargetDay+1, 0, 0, 0, 0, local.Location())
	start := end.AddDate(0, 0, -1)

	switch {
	case local.Before(start):
		return dayBefore, 0
	case local.After(end):
		return dayAfter, 0
	default:
		return dayDuring, int(end.Sub(local)/time.Minute) + graceMinutes
	}
}

func isTargetDay(now time.Time) bool {
	return now.Month() == TargetMonth && now.Day() == TargetDay
}
