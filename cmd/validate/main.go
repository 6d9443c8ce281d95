// Command validate checks a YAML station table and prints its east-to-west
// traversal order, the closed-loop route length and the UTC instants at which
// each station starts and finishes the target day.
//
// Usage:
//
//	go run ./cmd/validate -stations deploy/stations.yaml
//	go run ./cmd/validate            # checks the built-in table
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/courier-tracker/internal/catalog"
	"github.com/couchcryptid/courier-tracker/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	path := flag.String("stations", "", "YAML station table (empty = built-in)")
	year := flag.Int("year", time.Now().Year(), "year used for the target-day window")
	flag.Parse()

	table, err := catalog.Load(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL load: %v\n", err)
		os.Exit(1)
	}

	phases := []*phase{
		checkRoute(table),
		checkCoverage(table, *year),
	}

	printOrder(table, *year)

	failed := false
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS %s\n", p.name)
			continue
		}
		failed = true
		fmt.Printf("FAIL %s\n", p.name)
		for _, e := range p.errors {
			fmt.Printf("  - %s\n", e)
		}
	}
	if failed {
		os.Exit(1)
	}
}

// checkRoute verifies the closed loop starts and ends at home base.
func checkRoute(table *domain.StationTable) *phase {
	p := &phase{name: "route"}
	route := table.Route()
	if len(route) != table.Len()+2 {
		p.errorf("route has %d points, want %d", len(route), table.Len()+2)
	}
	if route[0] != domain.HomeBase.Geo || route[len(route)-1] != domain.HomeBase.Geo {
		p.errorf("route is not anchored at home base")
	}
	return p
}

// checkCoverage reports gaps where no station is on the target day, which
// puts the run in transit between stations.
func checkCoverage(table *domain.StationTable, year int) *phase {
	p := &phase{name: "coverage"}
	stations := table.Stations()
	for i := 1; i < len(stations); i++ {
		gap := stations[i-1].Offset - stations[i].Offset
		if gap > 24 {
			p.errorf("%.2fh gap between %s and %s", gap, stations[i-1].Name, stations[i].Name)
		}
	}

	start := time.Date(year, domain.TargetMonth, domain.TargetDay-1, 0, 0, 0, 0, time.UTC)
	for now := start; now.Before(start.AddDate(0, 0, 3)); now = now.Add(time.Hour) {
		if table.Resolve(now).Phase == domain.PhaseInTransit {
			p.errorf("in transit at %s", now.Format(time.RFC3339))
			break
		}
	}
	return p
}

func printOrder(table *domain.StationTable, year int) {
	fmt.Printf("%-3s %-18s %7s %-12s %-20s %s\n", "#", "STATION", "OFFSET", "REGION", "STARTS (UTC)", "FINISHES (UTC)")
	fmt.Println(strings.Repeat("-", 84))
	for i, st := range table.Stations() {
		shift := time.Duration(math.Round(st.Offset*3600)) * time.Second
		start := time.Date(year, domain.TargetMonth, domain.TargetDay, 0, 0, 0, 0, time.UTC).Add(-shift)
		fmt.Printf("%-3d %-18s %+7.2f %-12s %-20s %s\n",
			i+1, st.Name, st.Offset, st.Region,
			start.Format("Jan 02 15:04"), start.Add(24*time.Hour).Format("Jan 02 15:04"))
	}
	fmt.Printf("route points: %d\n", len(table.Route()))
}
