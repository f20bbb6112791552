package layout

import (
	"fmt"
	"slices"
	"sync"
)

const (
	Turtle  = "turtle"
	Pyramid = "pyramid"
)

// turtleRuns is the classic 144-position turtle.
//
//	layer 0: 87 (8 rows + 3 wing tiles between rows 3 and 4)
//	layer 1: 40, offset +0.5
//	layer 2: 14, offset +1
//	layer 3: 2
//	layer 4: 1 (peak)
func turtleRuns() []Run {
	runs := []Run{
		{Z: 0, Y: 0, From: 1, To: 12},
		{Z: 0, Y: 1, From: 3, To: 10},
		{Z: 0, Y: 2, From: 2, To: 11},
		{Z: 0, Y: 3, From: 1, To: 12},
		{Z: 0, Y: 4, From: 1, To: 12},
		{Z: 0, Y: 5, From: 2, To: 11},
		{Z: 0, Y: 6, From: 3, To: 10},
		{Z: 0, Y: 7, From: 1, To: 12},
		{Z: 0, Y: 3.5, From: -1, To: 0},
		{Z: 0, Y: 3.5, From: 13, To: 13},
	}
	for _, r := range [][3]int{{3, 8, 0}, {3, 8, 1}, {2, 9, 2}, {2, 9, 3}, {3, 8, 4}, {3, 8, 5}} {
		runs = append(runs, Run{Z: 1, Y: float64(r[2]) + 0.5, From: r[0], To: r[1], Offset: 0.5})
	}
	for _, r := range [][3]int{{4, 7, 1}, {3, 8, 2}, {4, 7, 3}} {
		runs = append(runs, Run{Z: 2, Y: float64(r[2]) + 1, From: r[0], To: r[1], Offset: 1})
	}
	return append(runs,
		Run{Z: 3, Y: 3, From: 6, To: 7},
		Run{Z: 4, Y: 3, From: 6, To: 6, Offset: 0.5},
	)
}

// pyramidRuns is a small 64-position board: 8x5 base, 5x4 middle, 2x2 cap.
func pyramidRuns() []Run {
	var runs []Run
	for y := 0; y < 5; y++ {
		runs = append(runs, Run{Z: 0, Y: float64(y), From: 0, To: 7})
	}
	for y := 0; y < 4; y++ {
		runs = append(runs, Run{Z: 1, Y: float64(y) + 0.5, From: 1, To: 5, Offset: 0.5})
	}
	return append(runs,
		Run{Z: 2, Y: 1.5, From: 3, To: 4},
		Run{Z: 2, Y: 2.5, From: 3, To: 4},
	)
}

// Catalog holds the named layout variants available to a process.
type Catalog struct {
	mu   sync.RWMutex
	defs map[string][]Run
}

func NewCatalog() *Catalog {
	return &Catalog{
		defs: map[string][]Run{
			Turtle:  turtleRuns(),
			Pyramid: pyramidRuns(),
		},
	}
}

// Register adds a layout built from row runs.
func (c *Catalog) Register(name string, runs []Run) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidLayout)
	}
	if err := Validate(expand(runs)); err != nil {
		return fmt.Errorf("layout %q: %w", name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.defs[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateLayout, name)
	}
	c.defs[name] = slices.Clone(runs)
	return nil
}

func (c *Catalog) Build(name string) (Layout, error) {
	c.mu.RLock()
	runs, ok := c.defs[name]
	c.mu.RUnlock()
	if !ok {
		return Layout{}, fmt.Errorf("%w: %s", ErrUnknownLayout, name)
	}
	return Layout{Name: name, Positions: expand(runs)}, nil
}

func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.defs))
	for name := range c.defs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Build returns one of the built-in layouts.
func Build(name string) (Layout, error) {
	return NewCatalog().Build(name)
}

func expand(runs []Run) []Position {
	var out []Position
	for _, r := range runs {
		out = append(out, r.positions()...)
	}
	return out
}
