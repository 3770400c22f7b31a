package standards

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a standards or building document.
type Format string

const (
	// FormatJSON is the JSON encoding used by the upstream standards data.
	FormatJSON Format = "json"
	// FormatYAML is the YAML encoding used for hand-maintained tables.
	FormatYAML Format = "yaml"
)

// FormatForPath picks the document format from a file extension.
//
// Returns:
//   - Format: FormatJSON for .json, FormatYAML for .yaml or .yml
//   - error: ErrUnsupportedFormat for anything else
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Decode unmarshals data in the given format into v.
// Both formats reject unknown fields so that misspelled columns surface as
// errors instead of silently zeroed demand. An empty YAML document decodes
// to the zero value.
func Decode(data []byte, format Format, v any) error {
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("decoding json: %w", err)
		}
		return nil
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("decoding yaml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// scheduleKey indexes schedules by name and raw day type tag.
type scheduleKey struct {
	name    string
	dayType string
}

// Tables is the immutable, indexed form of a standards Document.
//
// Thread Safety:
//   - Tables is read-only after construction and safe for concurrent use.
type Tables struct {
	spaceTypes map[string]SpaceType
	schedules  map[scheduleKey]Schedule
}

// Load reads and indexes a standards file.
//
// Parameters:
//   - path: Path to a .json, .yaml or .yml standards document
//
// Returns:
//   - *Tables: Indexed tables ready for lookup
//   - error: If the file cannot be read, decoded, or fails validation
func Load(path string) (*Tables, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading standards file: %w", err)
	}

	var doc Document
	if err := Decode(data, format, &doc); err != nil {
		return nil, fmt.Errorf("parsing standards file %s: %w", path, err)
	}

	return NewTables(doc)
}

// NewTables validates a Document and builds its lookup indexes.
//
// Validation rejects rows without names and duplicate keys. Schedule value
// counts are not checked here: a short schedule is only an error for the
// buildings that reference it, which the aggregator reports.
func NewTables(doc Document) (*Tables, error) {
	t := &Tables{
		spaceTypes: make(map[string]SpaceType, len(doc.SpaceTypes)),
		schedules:  make(map[scheduleKey]Schedule, len(doc.Schedules)),
	}

	var errs []string

	for i, st := range doc.SpaceTypes {
		if strings.TrimSpace(st.BuildingType) == "" || strings.TrimSpace(st.SpaceType) == "" {
			errs = append(errs, fmt.Sprintf("space_types[%d]: building_type and space_type are required", i))
			continue
		}
		name := st.Name()
		if _, dup := t.spaceTypes[name]; dup {
			errs = append(errs, fmt.Sprintf("space_types[%d]: duplicate space type %q", i, name))
			continue
		}
		t.spaceTypes[name] = st
	}

	for i, s := range doc.Schedules {
		if strings.TrimSpace(s.Name) == "" {
			errs = append(errs, fmt.Sprintf("schedules[%d]: name is required", i))
			continue
		}
		key := scheduleKey{name: s.Name, dayType: strings.TrimSpace(s.DayTypes)}
		if _, dup := t.schedules[key]; dup {
			errs = append(errs, fmt.Sprintf("schedules[%d]: duplicate schedule %q for %q", i, s.Name, s.DayTypes))
			continue
		}
		values := make([]float64, len(s.Values))
		copy(values, s.Values)
		s.Values = values
		t.schedules[key] = s
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTable, strings.Join(errs, "; "))
	}

	return t, nil
}

// SpaceType returns the row whose combined name matches name.
func (t *Tables) SpaceType(name string) (SpaceType, bool) {
	st, ok := t.spaceTypes[name]
	return st, ok
}

// DaySchedule returns the named schedule for a day type.
// The returned Values slice is a copy and may be modified by the caller.
func (t *Tables) DaySchedule(name string, day DayType) (Schedule, bool) {
	s, ok := t.schedules[scheduleKey{name: name, dayType: day.String()}]
	if !ok {
		return Schedule{}, false
	}
	values := make([]float64, len(s.Values))
	copy(values, s.Values)
	s.Values = values
	return s, true
}

// SpaceTypeCount returns the number of indexed space types.
func (t *Tables) SpaceTypeCount() int {
	return len(t.spaceTypes)
}

// ScheduleCount returns the number of indexed (schedule, day type) rows.
func (t *Tables) ScheduleCount() int {
	return len(t.schedules)
}
