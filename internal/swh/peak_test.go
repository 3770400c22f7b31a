package swh

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/nerrad567/gray-logic-swh/internal/standards"
)

func TestSuccessor(t *testing.T) {
	tests := []struct {
		name     string
		day      standards.DayType
		hour     int
		wantDay  standards.DayType
		wantHour int
	}{
		{name: "mid day", day: standards.Weekday, hour: 7, wantDay: standards.Weekday, wantHour: 8},
		{name: "weekday to saturday", day: standards.Weekday, hour: 23, wantDay: standards.Saturday, wantHour: 0},
		{name: "saturday to sunday", day: standards.Saturday, hour: 23, wantDay: standards.SundayOrHoliday, wantHour: 0},
		{name: "sunday wraps to weekday", day: standards.SundayOrHoliday, hour: 23, wantDay: standards.Weekday, wantHour: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, h := Successor(tt.day, tt.hour)
			if d != tt.wantDay || h != tt.wantHour {
				t.Errorf("Successor(%v, %d) = (%v, %d), want (%v, %d)", tt.day, tt.hour, d, h, tt.wantDay, tt.wantHour)
			}
		})
	}
}

func TestLocatePeak(t *testing.T) {
	tests := []struct {
		name     string
		cells    map[[2]int]float64
		wantPeak Cell
		wantNext Cell
	}{
		{
			name:     "single peak",
			cells:    map[[2]int]float64{{0, 8}: 5, {0, 9}: 2},
			wantPeak: Cell{Day: standards.Weekday, Hour: 8, Value: 5},
			wantNext: Cell{Day: standards.Weekday, Hour: 9, Value: 2},
		},
		{
			name: "tie broken by larger successor",
			cells: map[[2]int]float64{
				{0, 8}: 5, {0, 9}: 1,
				{1, 12}: 5, {1, 13}: 3,
				{2, 6}: 5, {2, 7}: 2,
			},
			wantPeak: Cell{Day: standards.Saturday, Hour: 12, Value: 5},
			wantNext: Cell{Day: standards.Saturday, Hour: 13, Value: 3},
		},
		{
			name: "equal successors keep earliest",
			cells: map[[2]int]float64{
				{1, 10}: 5, {1, 11}: 2,
				{0, 20}: 5, {0, 21}: 2,
			},
			wantPeak: Cell{Day: standards.Weekday, Hour: 20, Value: 5},
			wantNext: Cell{Day: standards.Weekday, Hour: 21, Value: 2},
		},
		{
			name:     "sunday 23 wraps to weekday 0",
			cells:    map[[2]int]float64{{2, 23}: 7, {0, 0}: 4},
			wantPeak: Cell{Day: standards.SundayOrHoliday, Hour: 23, Value: 7},
			wantNext: Cell{Day: standards.Weekday, Hour: 0, Value: 4},
		},
		{
			name:     "zero successors keep first peak",
			cells:    map[[2]int]float64{{0, 3}: 1, {1, 3}: 1},
			wantPeak: Cell{Day: standards.Weekday, Hour: 3, Value: 1},
			wantNext: Cell{Day: standards.Weekday, Hour: 4, Value: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProfile()
			for k, v := range tt.cells {
				p.Add(standards.DayType(k[0]), k[1], v)
			}
			got := LocatePeak(p)
			if got.Peak != tt.wantPeak {
				t.Errorf("Peak = %+v, want %+v", got.Peak, tt.wantPeak)
			}
			if got.Next != tt.wantNext {
				t.Errorf("Next = %+v, want %+v", got.Next, tt.wantNext)
			}
		})
	}
}

func TestExposureFraction(t *testing.T) {
	got, err := ExposureFraction(100.0/24, 100)
	if err != nil {
		t.Fatalf("ExposureFraction() error: %v", err)
	}
	if !approxEqual(got, 23.0/24, 1e-12) {
		t.Errorf("ExposureFraction() = %v, want 23/24", got)
	}

	if _, err := ExposureFraction(0, 0); !errors.Is(err, ErrData) {
		t.Errorf("zero total: error = %v, want ErrData", err)
	}
}

func TestAggregate(t *testing.T) {
	tables := testTables(t)
	records := []DemandRecord{
		{Space: "A", PeakFlowGalPerHour: 48, Schedule: "Uniform"},
		{Space: "B", PeakFlowGalPerHour: 24, Schedule: "Uniform"},
	}

	p, total, err := Aggregate(records, tables)
	if err != nil {
		t.Fatalf("Aggregate() error: %v", err)
	}
	if total != 72 {
		t.Errorf("total = %v, want 72", total)
	}
	for _, d := range standards.DayTypes() {
		for h := 0; h < standards.HoursPerDay; h++ {
			if !approxEqual(p.At(d, h), 3, 1e-12) {
				t.Fatalf("At(%v, %d) = %v, want 3", d, h, p.At(d, h))
			}
		}
	}
	if !approxEqual(p.Sum(), 3*72, 1e-9) {
		t.Errorf("Sum() = %v, want %v", p.Sum(), 3*72)
	}
}

func TestAggregate_ScheduleErrors(t *testing.T) {
	short := []standards.Schedule{
		{Name: "Short", DayTypes: "Default|Wkdy", Values: make([]float64, 24)},
		{Name: "Short", DayTypes: "Sat", Values: make([]float64, 23)},
		{Name: "Short", DayTypes: "Sun|Hol", Values: make([]float64, 24)},
	}
	tables, err := standards.NewTables(standards.Document{Schedules: short})
	if err != nil {
		t.Fatalf("NewTables: %v", err)
	}

	tests := []struct {
		name     string
		schedule string
	}{
		{name: "missing schedule", schedule: "Nope"},
		{name: "23 values", schedule: "Short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Aggregate([]DemandRecord{{Space: "A", PeakFlowGalPerHour: 1, Schedule: tt.schedule}}, tables)
			if !errors.Is(err, ErrData) {
				t.Errorf("Aggregate() error = %v, want ErrData", err)
			}
		})
	}
}

func TestProfile_JSON(t *testing.T) {
	p := NewProfile()
	p.Add(standards.SundayOrHoliday, 23, 2.5)

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var back Profile
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.At(standards.SundayOrHoliday, 23) != 2.5 {
		t.Errorf("At(Sun|Hol, 23) = %v, want 2.5", back.At(standards.SundayOrHoliday, 23))
	}
	if back.Max() != 2.5 {
		t.Errorf("Max() = %v, want 2.5", back.Max())
	}
}
