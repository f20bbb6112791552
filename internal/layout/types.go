package layout

import "errors"

var (
	ErrInvalidLayout   = errors.New("invalid layout")
	ErrUnknownLayout   = errors.New("unknown layout")
	ErrDuplicateLayout = errors.New("layout already registered")
)

// Position is a single grid cell that may host one tile. Upper layers use
// half-integer X/Y so a tile can sit centered over the four tiles below it.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z int     `json:"z"` // layer, 0 = table surface
}

// Layout is a named, ordered set of positions. The index of a position is its
// id for the lifetime of the layout.
type Layout struct {
	Name      string     `json:"name"`
	Positions []Position `json:"positions"`
}

func (l Layout) Len() int { return len(l.Positions) }

// Bounds is only used to size the rendering space.
type Bounds struct {
	MinX   float64 `json:"minX"`
	MaxX   float64 `json:"maxX"`
	MinY   float64 `json:"minY"`
	MaxY   float64 `json:"maxY"`
	MaxZ   int     `json:"maxZ"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Layers int     `json:"layers"`
}

// Run is a contiguous horizontal row of positions on one layer. It expands to
// x = i + Offset for every i in [From, To].
type Run struct {
	Z      int     `json:"z" mapstructure:"z"`
	Y      float64 `json:"y" mapstructure:"y"`
	From   int     `json:"from" mapstructure:"from"`
	To     int     `json:"to" mapstructure:"to"`
	Offset float64 `json:"offset" mapstructure:"offset"`
}

func (r Run) positions() []Position {
	out := make([]Position, 0, r.To-r.From+1)
	for x := r.From; x <= r.To; x++ {
		out = append(out, Position{X: float64(x) + r.Offset, Y: r.Y, Z: r.Z})
	}
	return out
}

// Validate reports ErrInvalidLayout when the positions cannot be dealt as pairs.
func Validate(positions []Position) error {
	if len(positions) == 0 {
		return ErrInvalidLayout
	}
	if len(positions)%2 != 0 {
		return errors.Join(ErrInvalidLayout, errors.New("odd number of positions"))
	}
	return nil
}

// GetBounds scans the positions once.
func GetBounds(positions []Position) (Bounds, error) {
	if len(positions) == 0 {
		return Bounds{}, ErrInvalidLayout
	}
	b := Bounds{
		MinX: positions[0].X, MaxX: positions[0].X,
		MinY: positions[0].Y, MaxY: positions[0].Y,
	}
	for _, p := range positions {
		b.MinX = min(b.MinX, p.X)
		b.MaxX = max(b.MaxX, p.X)
		b.MinY = min(b.MinY, p.Y)
		b.MaxY = max(b.MaxY, p.Y)
		b.MaxZ = max(b.MaxZ, p.Z)
	}
	b.Width = b.MaxX - b.MinX + 1
	b.Height = b.MaxY - b.MinY + 1
	b.Layers = b.MaxZ + 1
	return b, nil
}
