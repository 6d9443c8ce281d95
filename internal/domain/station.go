package domain

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-playground/validator/v10"
)

const earthRadiusKM = 6371.0

// validate is shared across table constructions; validator caches struct metadata.
var validate = validator.New()

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat" yaml:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" yaml:"lon" validate:"gte=-180,lte=180"`
}

// Station is a named waypoint with a fixed UTC offset in hours.
// Offsets may be fractional, e.g. 5.5 for India or 5.75 for Nepal.
type Station struct {
	Name   string  `json:"name" yaml:"name" validate:"required"`
	Offset float64 `json:"utc_offset" yaml:"utc_offset" validate:"gte=-12,lte=14"`
	Region string  `json:"region" yaml:"region" validate:"required"`
	Geo    Geo     `json:"geo" yaml:"geo"`
}

// HomeBase is the placeholder location used before the run starts and after it completes.
var HomeBase = Station{
	Name:   "NORTH POLE",
	Offset: 0,
	Region: "HOME",
	Geo:    Geo{Lat: 90, Lon: 0},
}

// stationList wraps the raw table so uniqueness can be checked with a single tag.
type stationList struct {
	Stations []Station `validate:"unique=Name,dive"`
}

// StationTable is an immutable set of stations held in east-to-west order.
type StationTable struct {
	order []Station
	route []Geo
}

// NewStationTable validates stations and sorts them by offset descending.
// Ties keep their input order. An empty table is valid.
func NewStationTable(stations []Station) (*StationTable, error) {
	if err := validate.Struct(stationList{Stations: stations}); err != nil {
		return nil, fmt.Errorf("invalid station table: %w", err)
	}
	for _, st := range stations {
		if st.Name == HomeBase.Name {
			return nil, fmt.Errorf("invalid station table: %q is reserved for home base", st.Name)
		}
	}

	order := make([]Station, len(stations))
	copy(order, stations)
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Offset > order[j].Offset
	})

	route := make([]Geo, 0, len(order)+2)
	route = append(route, HomeBase.Geo)
	for _, st := range order {
		route = append(route, st.Geo)
	}
	route = append(route, HomeBase.Geo)

	return &StationTable{order: order, route: route}, nil
}

// Stations returns a copy of the table in east-to-west order.
func (t *StationTable) Stations() []Station {
	out := make([]Station, len(t.order))
	copy(out, t.order)
	return out
}

// Len reports the number of stations, excluding home base.
func (t *StationTable) Len() int { return len(t.order) }

// Route returns the closed loop: home base, every station east to west, home base.
func (t *StationTable) Route() []Geo {
	out := make([]Geo, len(t.route))
	copy(out, t.route)
	return out
}

// DistanceKM returns the great-circle distance between two points.
func DistanceKM(a, b Geo) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKM * math.Asin(math.Min(1, math.Sqrt(h)))
}
