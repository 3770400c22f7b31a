package standards

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDayType_Next(t *testing.T) {
	tests := []struct {
		day  DayType
		want DayType
	}{
		{Weekday, Saturday},
		{Saturday, SundayOrHoliday},
		{SundayOrHoliday, Weekday},
	}

	for _, tt := range tests {
		t.Run(tt.day.String(), func(t *testing.T) {
			if got := tt.day.Next(); got != tt.want {
				t.Errorf("%v.Next() = %v, want %v", tt.day, got, tt.want)
			}
		})
	}
}

func TestParseDayType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    DayType
		wantErr error
	}{
		{name: "weekday tag", input: "Default|Wkdy", want: Weekday},
		{name: "saturday tag", input: "Sat", want: Saturday},
		{name: "sunday tag", input: "Sun|Hol", want: SundayOrHoliday},
		{name: "case and space insensitive", input: "  sun|hol ", want: SundayOrHoliday},
		{name: "unknown", input: "WntrDsn", wantErr: ErrUnknownDayType},
		{name: "empty", input: "", wantErr: ErrUnknownDayType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDayType(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseDayType(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDayType(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDayType(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDayType_TextRoundTripAsMapKey(t *testing.T) {
	in := map[DayType]int{Weekday: 1, SundayOrHoliday: 3}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"Default|Wkdy":1,"Sun|Hol":3}` {
		t.Errorf("Marshal = %s", data)
	}

	var out map[DayType]int
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out[SundayOrHoliday] != 3 || out[Weekday] != 1 {
		t.Errorf("Unmarshal = %v", out)
	}
}

func TestSpaceType_HasServiceWaterHeating(t *testing.T) {
	tests := []struct {
		name string
		st   SpaceType
		want bool
	}{
		{
			name: "per area flow with schedule",
			st:   SpaceType{PeakFlowPerArea: 0.01, Schedule: "SWH-A"},
			want: true,
		},
		{
			name: "absolute flow with schedule",
			st:   SpaceType{PeakFlowRate: 5, Schedule: "SWH-A"},
			want: true,
		},
		{
			name: "no flow",
			st:   SpaceType{Schedule: "SWH-A"},
			want: false,
		},
		{
			name: "flow without schedule",
			st:   SpaceType{PeakFlowPerArea: 0.01},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.st.HasServiceWaterHeating(); got != tt.want {
				t.Errorf("HasServiceWaterHeating() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpaceType_Name(t *testing.T) {
	st := SpaceType{BuildingType: "Office", SpaceType: "WholeBuilding"}
	if got := st.Name(); got != "Office WholeBuilding" {
		t.Errorf("Name() = %q", got)
	}
}
