// Command replay steps a fake clock across the target-day window and prints the
// resolved run state at each step. It uses the same resolver as the service,
// so the output shows exactly what the tracker would report at those instants.
//
// Usage:
//
//	go run ./cmd/replay -year 2024 -step 30m
//	go run ./cmd/replay -stations deploy/stations.yaml -from 2024-12-25T09:00:00Z -hours 6 -json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/couchcryptid/courier-tracker/internal/catalog"
	"github.com/couchcryptid/courier-tracker/internal/domain"
	"github.com/jonboulle/clockwork"
)

// step is one line of replay output.
type step struct {
	At        time.Time    `json:"at"`
	Phase     domain.Phase `json:"phase"`
	Current   string       `json:"current"`
	LocalTime string       `json:"local_time"`
	Remaining int          `json:"minutes_remaining"`
	Visited   int          `json:"visited"`
	Speed     float64      `json:"speed_km_s"`
	Message   string       `json:"message,omitempty"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	path := flag.String("stations", "", "YAML station table (empty = built-in)")
	year := flag.Int("year", time.Now().Year(), "year to replay when -from is not set")
	from := flag.String("from", "", "RFC3339 start instant (default: Dec 24 00:00 UTC of -year)")
	hours := flag.Int("hours", 72, "length of the replay window in hours")
	stepDur := flag.Duration("step", time.Hour, "clock advance per step")
	asJSON := flag.Bool("json", false, "emit JSON lines instead of a table")
	flag.Parse()

	if *stepDur <= 0 || *hours <= 0 {
		flag.Usage()
		return fmt.Errorf("-step and -hours must be positive")
	}

	table, err := catalog.Load(*path)
	if err != nil {
		return err
	}

	start := time.Date(*year, domain.TargetMonth, domain.TargetDay-1, 0, 0, 0, 0, time.UTC)
	if *from != "" {
		start, err = time.Parse(time.RFC3339, *from)
		if err != nil {
			return fmt.Errorf("parse -from: %w", err)
		}
	}

	// Drive the package clock so every resolution sees the replayed instant.
	fake := clockwork.NewFakeClockAt(start)
	domain.SetClock(fake)
	defer domain.SetClock(nil)

	enc := json.NewEncoder(os.Stdout)
	end := start.Add(time.Duration(*hours) * time.Hour)
	last := ""
	for !domain.Now().After(end) {
		state := table.Resolve(domain.Now())
		s := step{
			At:        domain.Now(),
			Phase:     state.Phase,
			Current:   state.Current.Name,
			LocalTime: state.LocalTime,
			Remaining: state.MinutesRemaining,
			Visited:   len(state.Visited),
			Speed:     state.Speed,
		}
		if last != "" && last != s.Current {
			s.Message = domain.ArrivalMessage(state)
		}
		last = s.Current

		if *asJSON {
			if err := enc.Encode(s); err != nil {
				return err
			}
		} else {
			fmt.Printf("%s  %-11s %-18s %s  %4dm  visited=%-3d %7.2f km/s  %s\n",
				s.At.Format("Jan 02 15:04Z"), s.Phase, s.Current, s.LocalTime,
				s.Remaining, s.Visited, s.Speed, s.Message)
		}
		fake.Advance(*stepDur)
	}
	return nil
}
