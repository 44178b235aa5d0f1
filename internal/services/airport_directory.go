package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"skycast/internal/logging"
)

// AirportRecord is one row of the reference dataset, immutable after load.
type AirportRecord struct {
	IATA      string
	ICAO      string
	Name      string
	Latitude  float64
	Longitude float64
}

// AirportDirectory is the in-memory IATA lookup table, built once at
// startup and shared read-only by all requests.
type AirportDirectory struct {
	records map[string]AirportRecord
}

// NewEmptyDirectory returns a directory with no records. Startup degrades
// to this when the reference dataset cannot be loaded.
func NewEmptyDirectory() *AirportDirectory {
	return &AirportDirectory{records: map[string]AirportRecord{}}
}

// LoadAirportDirectory reads the iata-icao reference CSV. Duplicate IATA
// codes keep the first occurrence; rows with non-numeric coordinates are
// skipped with a warning so the table never holds NaN coordinates.
func LoadAirportDirectory(path string) (*AirportDirectory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open airport dataset: %w", err)
	}
	defer f.Close()

	return loadAirportDirectory(f)
}

func loadAirportDirectory(r io.Reader) (*AirportDirectory, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read airport dataset header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"iata", "latitude", "longitude", "airport"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("airport dataset missing column %q", required)
		}
	}

	records := map[string]AirportRecord{}
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read airport dataset row %d: %w", line, err)
		}

		iata := strings.ToUpper(strings.TrimSpace(field(row, cols["iata"])))
		if iata == "" {
			continue
		}
		if _, exists := records[iata]; exists {
			// keep first occurrence
			continue
		}

		lat, latErr := strconv.ParseFloat(strings.TrimSpace(field(row, cols["latitude"])), 64)
		lon, lonErr := strconv.ParseFloat(strings.TrimSpace(field(row, cols["longitude"])), 64)
		if latErr != nil || lonErr != nil {
			logging.Warn("Skipping airport row with non-numeric coordinates",
				"iata", iata,
				"line", line,
			)
			continue
		}

		rec := AirportRecord{
			IATA:      iata,
			Name:      strings.TrimSpace(field(row, cols["airport"])),
			Latitude:  lat,
			Longitude: lon,
		}
		if idx, ok := cols["icao"]; ok {
			rec.ICAO = strings.ToUpper(strings.TrimSpace(field(row, idx)))
		}
		records[iata] = rec
	}

	return &AirportDirectory{records: records}, nil
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// Lookup resolves an IATA code case-insensitively.
func (d *AirportDirectory) Lookup(code string) (AirportRecord, bool) {
	rec, ok := d.records[strings.ToUpper(strings.TrimSpace(code))]
	return rec, ok
}

// Count returns the number of loaded airports.
func (d *AirportDirectory) Count() int {
	return len(d.records)
}
