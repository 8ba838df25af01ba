package vlist

import (
	"fmt"
	"testing"
)

func sequentialKeys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("task-%d", i)
	}
	return keys
}

func TestUniformWindowSize(t *testing.T) {
	const (
		n        = 1000
		estimate = 30
		gap      = 8
		overscan = 5
		viewport = 600
	)
	v := New(Options{EstimateSize: estimate, Gap: gap, Overscan: overscan})
	v.SetKeys(sequentialKeys(n))

	// With uniform rows the visible count is viewport/step rounded up,
	// plus the overscan margin on both sides, give or take the boundary
	// row.
	step := estimate + gap
	wantVisible := (viewport + step - 1) / step

	for _, scrollTop := range []int{0, 123, 5000, 17000} {
		start, end := v.Range(scrollTop, viewport)
		got := end - start

		min := wantVisible - 1
		max := wantVisible + 2*overscan + 1
		if got < min || got > max {
			t.Errorf("Range(%d, %d) returned %d rows, want within [%d, %d]",
				scrollTop, viewport, got, min, max)
		}
	}
}

func TestTotalSizeAndLastOffset(t *testing.T) {
	const (
		n        = 1000
		estimate = 30
		gap      = 8
	)
	v := New(Options{EstimateSize: estimate, Gap: gap})
	v.SetKeys(sequentialKeys(n))

	step := estimate + gap
	if got, want := v.TotalSize(), n*step; got != want {
		t.Errorf("TotalSize() = %d, want %d", got, want)
	}
	if got, want := v.Offset(n-1), (n-1)*step; got != want {
		t.Errorf("Offset(last) = %d, want %d", got, want)
	}
}

func TestMeasureShiftsSubsequentOffsets(t *testing.T) {
	v := New(Options{EstimateSize: 30, Gap: 8})
	v.SetKeys(sequentialKeys(10))

	before := v.Offset(5)
	v.Measure("task-2", 90)
	after := v.Offset(5)

	if after != before+60 {
		t.Errorf("Offset(5) after measure = %d, want %d", after, before+60)
	}
	if v.Size(2) != 90 {
		t.Errorf("Size(2) = %d, want measured 90", v.Size(2))
	}
	if v.Size(3) != 30 {
		t.Errorf("Size(3) = %d, want estimate 30", v.Size(3))
	}
}

func TestMeasureIgnoresInvalid(t *testing.T) {
	v := New(Options{EstimateSize: 30})
	v.SetKeys(sequentialKeys(3))

	v.Measure("", 50)
	v.Measure("task-0", 0)
	v.Measure("task-0", -5)

	if v.Size(0) != 30 {
		t.Errorf("Size(0) = %d, want estimate after invalid measurements", v.Size(0))
	}
}

func TestMeasurementSurvivesReorder(t *testing.T) {
	v := New(Options{EstimateSize: 30})
	v.SetKeys([]string{"a", "b", "c"})
	v.Measure("b", 75)

	// Refetch reorders and temporarily drops the measured row.
	v.SetKeys([]string{"c", "a"})
	v.SetKeys([]string{"b", "c", "a"})

	if v.Size(0) != 75 {
		t.Errorf("Size(0) = %d, want measurement keyed to %q", v.Size(0), "b")
	}
}

func TestEmptyCollection(t *testing.T) {
	v := New(Options{EstimateSize: 30})

	if start, end := v.Range(0, 600); start != 0 || end != 0 {
		t.Errorf("Range on empty = [%d, %d), want [0, 0)", start, end)
	}
	if v.TotalSize() != 0 {
		t.Errorf("TotalSize() = %d, want 0", v.TotalSize())
	}
	if rows := v.Rows(0, 600); rows != nil {
		t.Errorf("Rows on empty = %v, want nil", rows)
	}
}

func TestBypassReturnsAllRows(t *testing.T) {
	v := New(Options{EstimateSize: 30, BypassCount: 100})
	v.SetKeys(sequentialKeys(50))

	start, end := v.Range(99999, 10)
	if start != 0 || end != 50 {
		t.Errorf("Range below bypass = [%d, %d), want [0, 50)", start, end)
	}
}

func TestOverscanClampedAtEdges(t *testing.T) {
	v := New(Options{EstimateSize: 30, Overscan: 10})
	v.SetKeys(sequentialKeys(20))

	start, _ := v.Range(0, 60)
	if start != 0 {
		t.Errorf("start = %d, want clamped to 0", start)
	}
	_, end := v.Range(20*30-60, 60)
	if end != 20 {
		t.Errorf("end = %d, want clamped to 20", end)
	}
}

func TestRowsAreContiguous(t *testing.T) {
	v := New(Options{EstimateSize: 30, Gap: 8, Overscan: 3})
	v.SetKeys(sequentialKeys(200))
	v.Measure("task-10", 90)
	v.Measure("task-11", 45)

	rows := v.Rows(300, 400)
	if len(rows) == 0 {
		t.Fatal("Rows returned nothing")
	}
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if cur.Index != prev.Index+1 {
			t.Errorf("rows not consecutive at %d: %d then %d", i, prev.Index, cur.Index)
		}
		if cur.Start != prev.Start+prev.Size+8 {
			t.Errorf("row %d starts at %d, want %d", cur.Index, cur.Start, prev.Start+prev.Size+8)
		}
	}
}
