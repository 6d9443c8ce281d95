// Package catalog supplies the station table, either the built-in set or one
// read from a YAML file.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/couchcryptid/courier-tracker/internal/domain"
	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a station table.
type File struct {
	Stations []domain.Station `yaml:"stations"`
}

// builtin is listed roughly by region; NewStationTable fixes the traversal order.
var builtin = []domain.Station{
	{Name: "KIRITIMATI", Offset: 14, Region: "OCEANIA", Geo: domain.Geo{Lat: 1.87, Lon: -157.36}},
	{Name: "AUCKLAND", Offset: 13, Region: "OCEANIA", Geo: domain.Geo{Lat: -36.85, Lon: 174.76}},
	{Name: "SUVA", Offset: 12, Region: "OCEANIA", Geo: domain.Geo{Lat: -18.14, Lon: 178.44}},
	{Name: "SYDNEY", Offset: 11, Region: "OCEANIA", Geo: domain.Geo{Lat: -33.87, Lon: 151.21}},
	{Name: "ADELAIDE", Offset: 10.5, Region: "OCEANIA", Geo: domain.Geo{Lat: -34.93, Lon: 138.60}},
	{Name: "TOKYO", Offset: 9, Region: "ASIA", Geo: domain.Geo{Lat: 35.68, Lon: 139.69}},
	{Name: "SEOUL", Offset: 9, Region: "ASIA", Geo: domain.Geo{Lat: 37.57, Lon: 126.98}},
	{Name: "BEIJING", Offset: 8, Region: "ASIA", Geo: domain.Geo{Lat: 39.90, Lon: 116.41}},
	{Name: "SINGAPORE", Offset: 8, Region: "ASIA", Geo: domain.Geo{Lat: 1.35, Lon: 103.82}},
	{Name: "BANGKOK", Offset: 7, Region: "ASIA", Geo: domain.Geo{Lat: 13.76, Lon: 100.50}},
	{Name: "DHAKA", Offset: 6, Region: "ASIA", Geo: domain.Geo{Lat: 23.81, Lon: 90.41}},
	{Name: "KATHMANDU", Offset: 5.75, Region: "ASIA", Geo: domain.Geo{Lat: 27.72, Lon: 85.32}},
	{Name: "NEW DELHI", Offset: 5.5, Region: "ASIA", Geo: domain.Geo{Lat: 28.61, Lon: 77.21}},
	{Name: "DUBAI", Offset: 4, Region: "MIDDLE_EAST", Geo: domain.Geo{Lat: 25.20, Lon: 55.27}},
	{Name: "TEHRAN", Offset: 3.5, Region: "MIDDLE_EAST", Geo: domain.Geo{Lat: 35.69, Lon: 51.39}},
	{Name: "MOSCOW", Offset: 3, Region: "EUROPE", Geo: domain.Geo{Lat: 55.76, Lon: 37.62}},
	{Name: "NAIROBI", Offset: 3, Region: "AFRICA", Geo: domain.Geo{Lat: -1.29, Lon: 36.82}},
	{Name: "CAIRO", Offset: 2, Region: "AFRICA", Geo: domain.Geo{Lat: 30.04, Lon: 31.24}},
	{Name: "JOHANNESBURG", Offset: 2, Region: "AFRICA", Geo: domain.Geo{Lat: -26.20, Lon: 28.05}},
	{Name: "PARIS", Offset: 1, Region: "EUROPE", Geo: domain.Geo{Lat: 48.86, Lon: 2.35}},
	{Name: "BERLIN", Offset: 1, Region: "EUROPE", Geo: domain.Geo{Lat: 52.52, Lon: 13.40}},
	{Name: "LAGOS", Offset: 1, Region: "AFRICA", Geo: domain.Geo{Lat: 6.52, Lon: 3.38}},
	{Name: "LONDON", Offset: 0, Region: "EUROPE", Geo: domain.Geo{Lat: 51.51, Lon: -0.13}},
	{Name: "REYKJAVIK", Offset: 0, Region: "EUROPE", Geo: domain.Geo{Lat: 64.15, Lon: -21.94}},
	{Name: "PRAIA", Offset: -1, Region: "AFRICA", Geo: domain.Geo{Lat: 14.93, Lon: -23.51}},
	{Name: "RIO DE JANEIRO", Offset: -3, Region: "AMERICAS", Geo: domain.Geo{Lat: -22.91, Lon: -43.17}},
	{Name: "ST. JOHN'S", Offset: -3.5, Region: "AMERICAS", Geo: domain.Geo{Lat: 47.56, Lon: -52.71}},
	{Name: "NEW YORK", Offset: -5, Region: "AMERICAS", Geo: domain.Geo{Lat: 40.71, Lon: -74.01}},
	{Name: "CHICAGO", Offset: -6, Region: "AMERICAS", Geo: domain.Geo{Lat: 41.88, Lon: -87.63}},
	{Name: "MEXICO CITY", Offset: -6, Region: "AMERICAS", Geo: domain.Geo{Lat: 19.43, Lon: -99.13}},
	{Name: "DENVER", Offset: -7, Region: "AMERICAS", Geo: domain.Geo{Lat: 39.74, Lon: -104.99}},
	{Name: "LOS ANGELES", Offset: -8, Region: "AMERICAS", Geo: domain.Geo{Lat: 34.05, Lon: -118.24}},
	{Name: "ANCHORAGE", Offset: -9, Region: "AMERICAS", Geo: domain.Geo{Lat: 61.22, Lon: -149.90}},
	{Name: "HONOLULU", Offset: -10, Region: "OCEANIA", Geo: domain.Geo{Lat: 21.31, Lon: -157.86}},
	{Name: "PAGO PAGO", Offset: -11, Region: "OCEANIA", Geo: domain.Geo{Lat: -14.28, Lon: -170.70}},
}

// Default returns the built-in station table.
func Default() *domain.StationTable {
	table, err := domain.NewStationTable(builtin)
	if err != nil {
		panic(fmt.Sprintf("built-in station table: %v", err))
	}
	return table
}

// LoadFile reads and validates a YAML station table.
func LoadFile(path string) (*domain.StationTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read station table: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML station table. Unknown keys are rejected.
func Parse(data []byte) (*domain.StationTable, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse station table: %w", err)
	}
	if f.Stations == nil {
		return nil, errors.New("parse station table: missing stations key")
	}
	return domain.NewStationTable(f.Stations)
}

// Load returns the table at path, or the built-in table when path is empty.
func Load(path string) (*domain.StationTable, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
