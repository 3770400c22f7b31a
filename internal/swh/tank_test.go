package swh

import (
	"errors"
	"testing"

	"github.com/nerrad567/gray-logic-swh/internal/standards"
)

func TestSizeTank_UniformSchedule(t *testing.T) {
	event := PeakEvent{
		Peak: Cell{Day: standards.Weekday, Hour: 0, Value: 100.0 / 24},
		Next: Cell{Day: standards.Weekday, Hour: 1, Value: 100.0 / 24},
	}

	got, err := SizeTank(event, 100, 60, DefaultOptions())
	if err != nil {
		t.Fatalf("SizeTank() error: %v", err)
	}

	checks := []struct {
		name string
		got  float64
		want float64
		tol  float64
	}{
		{"volume gal", got.VolumeGal, 100.0 / 24, 1e-9},
		{"volume m3", got.VolumeM3, 0.0157725491, 1e-9},
		{"exposure", got.ExposureFraction, 23.0 / 24, 1e-12},
		{"capacity", got.CapacityW, 859.9468074521739, 1e-6},
		{"parasitic", got.ParasiticLossW, 6.092850447080852, 1e-6},
		{"loop flow", got.LoopPeakFlowM3PerS, 0.00010515032733333334, 1e-12},
	}
	for _, c := range checks {
		if !approxEqual(c.got, c.want, c.tol) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if got.NextHourIncluded {
		t.Error("NextHourIncluded = true, want false")
	}
}

func TestSizeTank_ShortExposureIncludesNextHour(t *testing.T) {
	event := PeakEvent{
		Peak: Cell{Value: 90},
		Next: Cell{Value: 40},
	}

	got, err := SizeTank(event, 100, 60, DefaultOptions())
	if err != nil {
		t.Fatalf("SizeTank() error: %v", err)
	}
	if got.VolumeGal != 130 {
		t.Errorf("VolumeGal = %v, want 130", got.VolumeGal)
	}
	if got.ExposureFraction != 1 {
		t.Errorf("ExposureFraction = %v, want 1", got.ExposureFraction)
	}
	if !got.NextHourIncluded {
		t.Error("NextHourIncluded = false, want true")
	}
}

func TestSizeTank_ThresholdBoundary(t *testing.T) {
	// Exposure exactly at the threshold includes the next hour.
	event := PeakEvent{Peak: Cell{Value: 80}, Next: Cell{Value: 10}}
	opts := DefaultOptions()
	opts.ExposureThreshold = 0.25

	got, err := SizeTank(event, 100, 60, opts)
	if err != nil {
		t.Fatalf("SizeTank() error: %v", err)
	}
	if got.VolumeGal != 90 {
		t.Errorf("VolumeGal = %v, want 90", got.VolumeGal)
	}
}

func TestSizeTank_VolumeMonotonic(t *testing.T) {
	prev := 0.0
	for _, peak := range []float64{1, 5, 10, 20, 40, 70} {
		event := PeakEvent{Peak: Cell{Value: peak}, Next: Cell{Value: peak / 2}}
		got, err := SizeTank(event, 100, 60, DefaultOptions())
		if err != nil {
			t.Fatalf("SizeTank(peak=%v) error: %v", peak, err)
		}
		if got.VolumeM3 <= prev {
			t.Errorf("VolumeM3 at peak %v = %v, not above %v", peak, got.VolumeM3, prev)
		}
		prev = got.VolumeM3
	}
}

func TestSizeTank_ZeroTotal(t *testing.T) {
	if _, err := SizeTank(PeakEvent{}, 0, 60, DefaultOptions()); !errors.Is(err, ErrData) {
		t.Errorf("SizeTank() error = %v, want ErrData", err)
	}
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Options) {}},
		{name: "threshold one", mutate: func(o *Options) { o.ExposureThreshold = 1 }, wantErr: true},
		{name: "zero diameter", mutate: func(o *Options) { o.Pipe.DiameterM = 0 }, wantErr: true},
		{name: "zero viscosity", mutate: func(o *Options) { o.Pipe.KinematicViscosity = 0 }, wantErr: true},
		{name: "negative roughness", mutate: func(o *Options) { o.Pipe.RoughnessM = -1 }, wantErr: true},
		{name: "bad fuel", mutate: func(o *Options) { o.FuelType = "Oil" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			tt.mutate(&o)
			err := o.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
