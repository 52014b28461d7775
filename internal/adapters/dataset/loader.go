// Package dataset loads city indicator records from the CSV hand-off
// produced by the data collection side.
package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/okian/riskradar/internal/domain/model"
)

// Required column names, matching the published dataset schema.
const (
	colCity         = "city"
	colCountry      = "country"
	colRegion       = "region"
	colLatitude     = "latitude"
	colLongitude    = "longitude"
	colPopulation   = "population_millions"
	colRoadQuality  = "road_quality_index"
	colGrid         = "power_grid_stability"
	colWater        = "water_security"
	colHealthcare   = "healthcare_capacity"
	colPreparedness = "disaster_preparedness_score"
	colGDP          = "gdp_per_capita_usd"
)

func requiredColumns() []string {
	return []string{
		colCity, colCountry, colRegion, colLatitude, colLongitude,
		colPopulation, colRoadQuality, colGrid, colWater, colHealthcare,
		colPreparedness, colGDP,
	}
}

// DroppedRow reports one row removed under PolicyDrop.
type DroppedRow struct {
	Line   int    `json:"line"`
	City   string `json:"city,omitempty"`
	Reason string `json:"reason"`
}

// Result is a completed load: the accepted records plus, under PolicyDrop,
// the rows that were rejected.
type Result struct {
	Records []model.IndicatorRecord
	Dropped []DroppedRow
}

// Loader parses indicator CSVs into typed records.
type Loader struct {
	policy RowPolicy
}

// New creates a Loader. The default policy rejects the whole dataset on the
// first bad row.
func New(opts ...Option) *Loader {
	l := &Loader{
		policy: PolicyReject,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// LoadFile reads and parses the CSV at path.
func (l *Loader) LoadFile(ctx context.Context, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	return l.Load(ctx, f)
}

// Load parses CSV content from r. The header row must contain every
// required column; a missing column fails with ErrSchema before any row is
// parsed. Row failures follow the configured RowPolicy; a row repeating an
// earlier record's id counts as a row failure, so a dataset never yields
// the same city twice.
func (l *Loader) Load(ctx context.Context, r io.Reader) (Result, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return Result{}, fmt.Errorf("%w: read header: %v", ErrSchema, err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns() {
		if _, ok := cols[name]; !ok {
			return Result{}, fmt.Errorf("%w: missing column %q", ErrSchema, name)
		}
	}

	var out Result
	seen := make(map[string]struct{})
	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("load cancelled: %w", err)
		}

		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			if rerr := l.rejectRow(&out, line, "", err); rerr != nil {
				return Result{}, rerr
			}
			continue
		}

		rec, err := parseRow(row, cols)
		if err != nil {
			if rerr := l.rejectRow(&out, line, field(row, cols, colCity), err); rerr != nil {
				return Result{}, rerr
			}
			continue
		}
		if _, dup := seen[rec.ID]; dup {
			cause := fmt.Errorf("duplicate record id %q", rec.ID)
			if rerr := l.rejectRow(&out, line, rec.City, cause); rerr != nil {
				return Result{}, rerr
			}
			continue
		}
		seen[rec.ID] = struct{}{}
		out.Records = append(out.Records, rec)
	}

	if len(out.Records) == 0 {
		return Result{}, ErrEmptyDataset
	}
	return out, nil
}

// Policy returns the active bad-row policy.
func (l *Loader) Policy() RowPolicy {
	return l.policy
}

// rejectRow applies the row policy: under PolicyReject it returns an error
// that aborts the load, under PolicyDrop it records the drop and continues.
func (l *Loader) rejectRow(out *Result, line int, city string, cause error) error {
	if l.policy == PolicyReject {
		return fmt.Errorf("%w: line %d: %v", ErrRow, line, cause)
	}
	out.Dropped = append(out.Dropped, DroppedRow{
		Line:   line,
		City:   city,
		Reason: cause.Error(),
	})
	return nil
}

func parseRow(row []string, cols map[string]int) (model.IndicatorRecord, error) {
	city := field(row, cols, colCity)
	country := field(row, cols, colCountry)
	if city == "" || country == "" {
		return model.IndicatorRecord{}, fmt.Errorf("%w: missing city or country", ErrRow)
	}

	rec := model.IndicatorRecord{
		ID:      recordID(city, country),
		City:    city,
		Country: country,
		Region:  field(row, cols, colRegion),
	}

	numeric := []struct {
		col string
		dst *float64
	}{
		{colLatitude, &rec.Latitude},
		{colLongitude, &rec.Longitude},
		{colPopulation, &rec.PopulationMillions},
		{colRoadQuality, &rec.RoadQuality},
		{colGrid, &rec.GridStability},
		{colWater, &rec.WaterSecurity},
		{colHealthcare, &rec.HealthcareCapacity},
		{colPreparedness, &rec.Preparedness},
		{colGDP, &rec.GDPPerCapita},
	}
	for _, n := range numeric {
		v, err := strconv.ParseFloat(field(row, cols, n.col), 64)
		if err != nil {
			return model.IndicatorRecord{}, fmt.Errorf("%w: column %q: %v", ErrRow, n.col, err)
		}
		*n.dst = v
	}
	return rec, nil
}

func field(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// recordID derives a stable identifier like "tokyo-japan" from the city and
// country names.
func recordID(city, country string) string {
	slug := func(s string) string {
		s = strings.ToLower(strings.TrimSpace(s))
		return strings.ReplaceAll(s, " ", "-")
	}
	return slug(city) + "-" + slug(country)
}
