// Package filters keeps the state behind the mobile search filter drawer.
package filters

import (
	"strings"
	"sync"
)

// Facet is a search refinement option.
type Facet struct {
	Label     string
	Value     string
	Count     int
	IsRefined bool
}

// CountActive returns the number of refined facets, plus one when a month is selected.
func CountActive(facets []Facet, selectedMonth string) int {
	count := 0
	for _, facet := range facets {
		if facet.IsRefined {
			count++
		}
	}
	if strings.TrimSpace(selectedMonth) != "" {
		count++
	}
	return count
}

// Breakpoints maps viewport widths onto the base/lg responsive split.
type Breakpoints struct {
	// Large is the first width, in CSS pixels, of the lg breakpoint.
	Large int
}

// DefaultBreakpoints matches the 62em lg breakpoint at a 16px root font size.
func DefaultBreakpoints() Breakpoints {
	return Breakpoints{Large: 992}
}

// IsMobile reports whether width falls below the lg breakpoint. Unknown
// widths (<= 0) resolve to the base value, which is mobile.
func (b Breakpoints) IsMobile(width int) bool {
	if width <= 0 || b.Large <= 0 {
		return true
	}
	return width < b.Large
}

// DrawerState is what the drawer component renders.
type DrawerState struct {
	IsOpen       bool
	FiltersCount int
}

// Drawer tracks whether the filter drawer is open. It is safe for concurrent use.
type Drawer struct {
	mu            sync.RWMutex
	breakpoints   Breakpoints
	open          bool
	width         int
	facets        []Facet
	selectedMonth string
}

// DrawerOption configures a Drawer.
type DrawerOption func(*Drawer)

// WithBreakpoints overrides DefaultBreakpoints.
func WithBreakpoints(b Breakpoints) DrawerOption {
	return func(d *Drawer) {
		d.breakpoints = b
	}
}

// WithViewport sets the initial viewport width.
func WithViewport(width int) DrawerOption {
	return func(d *Drawer) {
		d.width = width
	}
}

// NewDrawer returns a closed drawer.
func NewDrawer(opts ...DrawerOption) *Drawer {
	d := &Drawer{breakpoints: DefaultBreakpoints()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Open marks the drawer open. Calling it repeatedly has no further effect.
func (d *Drawer) Open() {
	d.mu.Lock()
	d.open = true
	d.mu.Unlock()
}

// Close marks the drawer closed. Calling it repeatedly has no further effect.
func (d *Drawer) Close() {
	d.mu.Lock()
	d.open = false
	d.mu.Unlock()
}

// SetViewport records the current viewport width.
func (d *Drawer) SetViewport(width int) {
	d.mu.Lock()
	d.width = width
	d.mu.Unlock()
}

// Refine replaces the facets and selected month used to count active filters.
func (d *Drawer) Refine(facets []Facet, selectedMonth string) {
	copied := append([]Facet(nil), facets...)
	d.mu.Lock()
	d.facets = copied
	d.selectedMonth = selectedMonth
	d.mu.Unlock()
}

// IsMobile reports whether the current viewport is below the lg breakpoint.
func (d *Drawer) IsMobile() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.breakpoints.IsMobile(d.width)
}

// State returns the rendered state. The drawer only reports open on mobile
// viewports; the open flag itself survives viewport changes.
func (d *Drawer) State() DrawerState {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return DrawerState{
		IsOpen:       d.open && d.breakpoints.IsMobile(d.width),
		FiltersCount: CountActive(d.facets, d.selectedMonth),
	}
}
