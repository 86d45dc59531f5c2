/*
Package factory provides JSON/YAML to Go band table conversion.

PURPOSE:
  Converts deadline band definitions into payroll.BandTables. Operations can
  retune the business-day offsets per service model without a code change;
  the factory validates the result before the engine ever sees it.

JSON SCHEMA:
  {
    "Core": [
      {"min_employees": 0,  "max_employees": 29, "business_days_offset": 17},
      {"min_employees": 30, "max_employees": 73, "business_days_offset": 22}
    ],
    "Preferred": [
      {"min_employees": 0,  "max_employees": 73, "business_days_offset": 22}
    ]
  }

  The same document in YAML is accepted by ParseYAML.

RULES:
  - Service model keys are matched case-insensitively
  - A model missing from the document keeps its default table
  - Bands are sorted by min_employees, then must start at 0, be contiguous
    and carry positive offsets (payroll.BandTables.Validate)
  - max_employees of the last band + 1 is the custom-timeline threshold

USAGE:
  f := NewBandFactory()
  tables, err := f.ParseYAML(data)
  result := payroll.Compute(in, payroll.WithBandTables(tables))

SEE ALSO:
  - payroll/types.go: BandTable, DefaultBandTables
  - payroll/deadline.go: BandTable.Validate
  - config/config.go: bands section of the server config
*/
package factory

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	json "github.com/goccy/go-json"
	yaml "go.yaml.in/yaml/v3"

	"github.com/warp/paperwork-calendar/payroll"
)

// =============================================================================
// SCHEMA TYPES
// =============================================================================

// BandJSON is one employee-count tier.
type BandJSON struct {
	MinEmployees       int `json:"min_employees" yaml:"min_employees"`
	MaxEmployees       int `json:"max_employees" yaml:"max_employees"`
	BusinessDaysOffset int `json:"business_days_offset" yaml:"business_days_offset"`
}

// BandTablesJSON maps a service model name to its tiers.
type BandTablesJSON map[string][]BandJSON

// =============================================================================
// BAND FACTORY
// =============================================================================

// BandFactory converts band documents to payroll.BandTables.
type BandFactory struct{}

// NewBandFactory creates a new band factory.
func NewBandFactory() *BandFactory {
	return &BandFactory{}
}

// ParseJSON strictly decodes a JSON band document. Unknown fields and
// trailing data are rejected.
func (f *BandFactory) ParseJSON(data []byte) (payroll.BandTables, error) {
	var bj BandTablesJSON
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&bj); err != nil {
		return nil, fmt.Errorf("failed to parse band JSON: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("failed to parse band JSON: trailing data")
		}
		return nil, fmt.Errorf("failed to parse band JSON: %w", err)
	}
	return f.FromJSON(bj)
}

// ParseYAML decodes a YAML band document. It is converted to JSON first so
// both formats share the strict decoder.
func (f *BandFactory) ParseYAML(data []byte) (payroll.BandTables, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse band YAML: %w", err)
	}
	j, err := json.Marshal(NormalizeYAML(v))
	if err != nil {
		return nil, fmt.Errorf("band yaml->json: %w", err)
	}
	return f.ParseJSON(j)
}

// FromJSON converts a decoded document into validated band tables.
func (f *BandFactory) FromJSON(bj BandTablesJSON) (payroll.BandTables, error) {
	tables := payroll.DefaultBandTables()

	for name, bands := range bj {
		model, err := payroll.ParseServiceModel(name)
		if err != nil {
			return nil, fmt.Errorf("band tables: %w", err)
		}
		table := make(payroll.BandTable, 0, len(bands))
		for _, b := range bands {
			table = append(table, payroll.DeadlineBand{
				MinEmployees:       b.MinEmployees,
				MaxEmployees:       b.MaxEmployees,
				BusinessDaysOffset: b.BusinessDaysOffset,
			})
		}
		sort.SliceStable(table, func(i, j int) bool {
			return table[i].MinEmployees < table[j].MinEmployees
		})
		tables[model] = table
	}

	if err := tables.Validate(); err != nil {
		return nil, err
	}
	return tables, nil
}

// ToJSON converts band tables back to the document form.
func (f *BandFactory) ToJSON(tables payroll.BandTables) BandTablesJSON {
	bj := make(BandTablesJSON, len(tables))
	for model, table := range tables {
		bands := make([]BandJSON, 0, len(table))
		for _, b := range table {
			bands = append(bands, BandJSON{
				MinEmployees:       b.MinEmployees,
				MaxEmployees:       b.MaxEmployees,
				BusinessDaysOffset: b.BusinessDaysOffset,
			})
		}
		bj[string(model)] = bands
	}
	return bj
}

// =============================================================================
// YAML HELPERS
// =============================================================================

// NormalizeYAML makes every map key a string so the value can be marshaled
// as JSON.
func NormalizeYAML(in any) any {
	switch x := in.(type) {
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, v := range x {
			m[fmt.Sprint(k)] = NormalizeYAML(v)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, v := range x {
			m[k] = NormalizeYAML(v)
		}
		return m
	case []any:
		for i := range x {
			x[i] = NormalizeYAML(x[i])
		}
		return x
	default:
		return in
	}
}
