package app

import (
	"testing"
	"time"

	"github.com/dshills/tasktable/internal/selection"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()

	m.RecordSelection(selection.ActionID)
	m.RecordSelection(selection.ActionAll)
	m.RecordSort()
	m.RecordRejected()
	m.RecordHookError()

	s := m.Snapshot()
	if s.SelectChanges != 2 || s.ToggleAlls != 1 {
		t.Errorf("select counters = %d/%d, want 2/1", s.SelectChanges, s.ToggleAlls)
	}
	if s.SortChanges != 1 || s.Rejected != 1 || s.HookErrors != 1 {
		t.Errorf("snapshot = %+v", s)
	}
}

func TestMetrics_Timing(t *testing.T) {
	m := NewMetrics()

	m.RecordRender(10 * time.Millisecond)
	m.RecordRender(20 * time.Millisecond)
	m.RecordEvent(4 * time.Millisecond)

	s := m.Snapshot()
	if s.RenderCount != 2 || s.AvgRenderNs != int64(15*time.Millisecond) {
		t.Errorf("render = %d / %d ns", s.RenderCount, s.AvgRenderNs)
	}
	if s.EventCount != 1 || s.AvgEventNs != int64(4*time.Millisecond) {
		t.Errorf("event = %d / %d ns", s.EventCount, s.AvgEventNs)
	}
	if got := s.LogValues()["avgRenderUs"]; got != int64(15000) {
		t.Errorf("avgRenderUs = %v, want 15000", got)
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := NewMetrics()
	m.RecordSort()
	m.RecordRender(time.Millisecond)
	m.Reset()

	if s := m.Snapshot(); s.SortChanges != 0 || s.RenderCount != 0 || s.AvgRenderNs != 0 {
		t.Errorf("after Reset = %+v", s)
	}
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(2 * time.Millisecond)
	if d := timer.Stop(); d < 2*time.Millisecond {
		t.Errorf("Stop() = %v, want >= 2ms", d)
	}
	if timer.Elapsed() > time.Second {
		t.Error("Stop should reset the timer")
	}
}
