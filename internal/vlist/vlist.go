// Package vlist implements a windowing engine for large ordered lists:
// given per-row measured or estimated sizes it computes which rows
// intersect a scrolled viewport, so callers instantiate only those rows
// plus a fixed overscan margin.
//
// Rows are identified by a stable key (the task id), so measured sizes
// and scroll position survive refetches and reordering of the backing
// collection.
package vlist

import (
	"sort"
)

// Options configure a Virtualizer.
type Options struct {
	// EstimateSize seeds the size cache for rows that have not been
	// measured yet. Must be positive.
	EstimateSize int

	// Gap is the space between consecutive rows.
	Gap int

	// Overscan is the number of extra rows instantiated on each side of
	// the visible range to avoid blank flashes during fast scrolling.
	Overscan int

	// BypassCount disables windowing for collections of at most this
	// many rows; all rows are returned. Zero always virtualizes.
	BypassCount int
}

// Row describes one instantiated row of the window.
type Row struct {
	// Index is the row's position in the backing collection.
	Index int

	// Key is the row's stable identity.
	Key string

	// Start is the row's offset from the top of the scrolled content.
	Start int

	// Size is the row's measured size, or the estimate if unmeasured.
	// It excludes the inter-row gap.
	Size int
}

// Virtualizer windows an ordered collection into the subset of rows
// intersecting a viewport. It is not safe for concurrent use.
type Virtualizer struct {
	opts  Options
	keys  []string
	sizes map[string]int

	// offsets[i] is the start of row i; offsets[len(keys)] is the total
	// content size. Rebuilt lazily after key or size changes.
	offsets []int
	dirty   bool
}

// New creates a Virtualizer.
func New(opts Options) *Virtualizer {
	if opts.EstimateSize <= 0 {
		opts.EstimateSize = 1
	}
	if opts.Gap < 0 {
		opts.Gap = 0
	}
	if opts.Overscan < 0 {
		opts.Overscan = 0
	}
	return &Virtualizer{
		opts:  opts,
		sizes: make(map[string]int),
		dirty: true,
	}
}

// SetKeys replaces the backing collection's row identities, in display
// order. Measured sizes of keys that disappear are retained so a row
// returning in a later refetch keeps its measurement.
func (v *Virtualizer) SetKeys(keys []string) {
	v.keys = append(v.keys[:0:0], keys...)
	v.dirty = true
}

// Len returns the number of rows in the backing collection.
func (v *Virtualizer) Len() int {
	return len(v.keys)
}

// Measure records the true rendered size of the row identified by key,
// correcting subsequent offset calculations. Non-positive sizes and
// unchanged values are ignored.
func (v *Virtualizer) Measure(key string, size int) {
	if key == "" || size <= 0 {
		return
	}
	if current, ok := v.sizes[key]; ok && current == size {
		return
	}
	v.sizes[key] = size
	v.dirty = true
}

// Size returns the measured or estimated size of row i.
func (v *Virtualizer) Size(i int) int {
	if size, ok := v.sizes[v.keys[i]]; ok {
		return size
	}
	return v.opts.EstimateSize
}

// TotalSize returns the full content size: the sum of all row sizes
// plus gaps. Zero for an empty collection.
func (v *Virtualizer) TotalSize() int {
	v.rebuild()
	return v.offsets[len(v.keys)]
}

// Range returns the half-open index interval [start, end) of rows to
// instantiate for a viewport of the given height scrolled to scrollTop,
// including the overscan margin. Small collections covered by
// BypassCount return the full interval.
func (v *Virtualizer) Range(scrollTop, viewportHeight int) (start, end int) {
	n := len(v.keys)
	if n == 0 {
		return 0, 0
	}
	if n <= v.opts.BypassCount {
		return 0, n
	}
	v.rebuild()

	if scrollTop < 0 {
		scrollTop = 0
	}
	if viewportHeight < 0 {
		viewportHeight = 0
	}

	// First row whose extent ends below scrollTop, then first row
	// starting at or past the viewport bottom.
	start = sort.Search(n, func(i int) bool {
		return v.offsets[i+1] > scrollTop
	})
	end = sort.Search(n, func(i int) bool {
		return v.offsets[i] >= scrollTop+viewportHeight
	})

	start -= v.opts.Overscan
	if start < 0 {
		start = 0
	}
	end += v.opts.Overscan
	if end > n {
		end = n
	}
	return start, end
}

// Rows materializes the row descriptors for the given viewport. The
// returned rows have monotonically increasing, contiguous offsets.
// An empty collection yields no rows.
func (v *Virtualizer) Rows(scrollTop, viewportHeight int) []Row {
	start, end := v.Range(scrollTop, viewportHeight)
	if start >= end {
		return nil
	}
	v.rebuild()

	rows := make([]Row, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, Row{
			Index: i,
			Key:   v.keys[i],
			Start: v.offsets[i],
			Size:  v.Size(i),
		})
	}
	return rows
}

// Offset returns the start position of row i.
func (v *Virtualizer) Offset(i int) int {
	v.rebuild()
	return v.offsets[i]
}

// rebuild recomputes cumulative offsets when keys or sizes changed.
// Each row's step is its size plus the inter-row gap.
func (v *Virtualizer) rebuild() {
	if !v.dirty && v.offsets != nil {
		return
	}
	n := len(v.keys)
	if cap(v.offsets) < n+1 {
		v.offsets = make([]int, n+1)
	} else {
		v.offsets = v.offsets[:n+1]
	}
	v.offsets[0] = 0
	for i := 0; i < n; i++ {
		v.offsets[i+1] = v.offsets[i] + v.Size(i) + v.opts.Gap
	}
	v.dirty = false
}
