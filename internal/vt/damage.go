package vt

import "sort"

// damageTracker accumulates which rows changed during a single process()
// call plus whether a full redraw (buffer swap, full reset) occurred. It is
// not thread safe; callers serialize access via the owning pane's single
// ingest task.
type damageTracker struct {
	height int
	full   bool
	dirty  map[int]bool
}

func newDamageTracker(height int) *damageTracker {
	return &damageTracker{height: height, dirty: make(map[int]bool)}
}

func (d *damageTracker) resize(height int) {
	d.height = height
	d.full = true
	d.dirty = make(map[int]bool)
}

func (d *damageTracker) markAll() {
	d.full = true
}

func (d *damageTracker) markRow(y int) {
	if d.full || y < 0 || y >= d.height {
		return
	}
	d.dirty[y] = true
}

func (d *damageTracker) markRange(top, bottom int) {
	if d.full {
		return
	}
	for y := top; y <= bottom; y++ {
		d.markRow(y)
	}
}

// consume returns the accumulated changed rows (sorted, distinct) and
// whether a full redraw was requested, then resets the tracker.
func (d *damageTracker) consume() ([]int, bool) {
	full := d.full
	var rows []int
	if full {
		rows = make([]int, d.height)
		for i := range rows {
			rows[i] = i
		}
	} else {
		rows = make([]int, 0, len(d.dirty))
		for y := range d.dirty {
			rows = append(rows, y)
		}
		sort.Ints(rows)
	}
	d.full = false
	d.dirty = make(map[int]bool)
	return rows, full
}
