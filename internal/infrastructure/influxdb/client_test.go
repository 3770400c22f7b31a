package influxdb

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/nerrad567/gray-logic-swh/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-swh/internal/standards"
	"github.com/nerrad567/gray-logic-swh/internal/swh"
)

// fakeWriter records points instead of sending them.
type fakeWriter struct {
	mu      sync.Mutex
	points  []*write.Point
	flushes int
}

func (f *fakeWriter) WritePoint(p *write.Point) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.points = append(f.points, p)
}

func (f *fakeWriter) Flush() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flushes++
}

var fixedTime = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestClient() (*Client, *fakeWriter) {
	w := &fakeWriter{}
	return &Client{writeAPI: w, connected: true, now: func() time.Time { return fixedTime }}, w
}

func tagValue(p *write.Point, key string) string {
	for _, tag := range p.TagList() {
		if tag.Key == key {
			return tag.Value
		}
	}
	return ""
}

func fieldValue(p *write.Point, key string) (interface{}, bool) {
	for _, f := range p.FieldList() {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

func TestConnect_Disabled(t *testing.T) {
	_, err := Connect(config.InfluxDBConfig{Enabled: false})
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
}

func TestConnect_Unreachable(t *testing.T) {
	_, err := Connect(config.InfluxDBConfig{
		Enabled: true,
		URL:     "http://127.0.0.1:59999",
		Token:   "token",
		Org:     "graylogic",
		Bucket:  "swh",
	})
	if !errors.Is(err, ErrConnectionFailed) {
		t.Errorf("Connect() error = %v, want ErrConnectionFailed", err)
	}
}

func TestWriteDemandProfile(t *testing.T) {
	c, w := newTestClient()

	profile := swh.NewProfile()
	profile.Add(standards.Saturday, 7, 42.5)

	c.WriteDemandProfile("Clinic", profile)

	want := len(standards.DayTypes()) * standards.HoursPerDay
	if len(w.points) != want {
		t.Fatalf("wrote %d points, want %d", len(w.points), want)
	}

	found := false
	for _, p := range w.points {
		if p.Name() != MeasurementDemand {
			t.Fatalf("measurement = %q, want %q", p.Name(), MeasurementDemand)
		}
		if tagValue(p, "building") != "Clinic" {
			t.Fatalf("building tag = %q", tagValue(p, "building"))
		}
		if !p.Time().Equal(fixedTime) {
			t.Fatalf("time = %v, want %v", p.Time(), fixedTime)
		}
		if tagValue(p, "day_type") == standards.Saturday.String() && tagValue(p, "hour") == "7" {
			found = true
			v, _ := fieldValue(p, "flow_gal_per_hour")
			if v != 42.5 {
				t.Errorf("flow = %v, want 42.5", v)
			}
		}
	}
	if !found {
		t.Error("no point for Saturday hour 7")
	}
}

func TestWriteSizing(t *testing.T) {
	c, w := newTestClient()

	c.WriteSizing(&swh.Result{
		Building:     "Clinic",
		BuildingType: "Outpatient",
		Tank:         swh.TankSizing{VolumeM3: 0.5, CapacityW: 12000},
		Pump:         swh.PumpSizing{HeadPa: 179352, AutoSized: false},
		Heater:       swh.HeaterRating{FuelType: "NaturalGas"},
		Warnings:     []swh.Warning{{Subject: "Lobby", Message: "unknown space type"}},
	})

	if len(w.points) != 1 {
		t.Fatalf("wrote %d points, want 1", len(w.points))
	}
	p := w.points[0]
	if p.Name() != MeasurementSizing {
		t.Errorf("measurement = %q, want %q", p.Name(), MeasurementSizing)
	}
	if got := tagValue(p, "fuel_type"); got != "NaturalGas" {
		t.Errorf("fuel_type tag = %q", got)
	}
	if v, _ := fieldValue(p, "volume_m3"); v != 0.5 {
		t.Errorf("volume_m3 = %v, want 0.5", v)
	}
	if v, _ := fieldValue(p, "pump_auto_sized"); v != false {
		t.Errorf("pump_auto_sized = %v, want false", v)
	}
	if v, _ := fieldValue(p, "warnings"); v != int64(1) {
		t.Errorf("warnings = %v (%T), want int64(1)", v, v)
	}
}

func TestWrites_NotConnected(t *testing.T) {
	c, w := newTestClient()
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if w.flushes != 1 {
		t.Errorf("Close() flushes = %d, want 1", w.flushes)
	}

	c.WriteSizing(&swh.Result{Building: "Clinic"})
	c.WriteDemandProfile("Clinic", swh.NewProfile())
	c.Flush()

	if len(w.points) != 0 {
		t.Errorf("wrote %d points after Close, want 0", len(w.points))
	}
	if w.flushes != 1 {
		t.Errorf("Flush() after Close flushed; flushes = %d", w.flushes)
	}
	if err := c.HealthCheck(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("HealthCheck() error = %v, want ErrNotConnected", err)
	}
}

func TestHandleWriteErrors(t *testing.T) {
	c, _ := newTestClient()

	var got []error
	var mu sync.Mutex
	c.SetOnError(func(err error) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, err)
	})

	ch := make(chan error, 2)
	ch <- errors.New("write timeout")
	ch <- errors.New("unauthorized")
	close(ch)
	c.handleWriteErrors(ch)

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 2 {
		t.Errorf("callback received %d errors, want 2", len(got))
	}
}
