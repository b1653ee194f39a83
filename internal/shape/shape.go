// Package shape models plane figures behind a single Area capability.
package shape

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNegativeDimension is returned when a dimension is below zero.
	ErrNegativeDimension  = errors.New("dimension must not be negative")
	ErrNonFiniteDimension = errors.New("dimension must be a finite number")
	ErrUnknownShape       = errors.New("unknown shape")
	ErrMissingDimension   = errors.New("missing dimension")
	// ErrAreaOverflow is returned when finite dimensions produce an area
	// beyond float64 range.
	ErrAreaOverflow = errors.New("area is too large")
)

// Shape is any figure that can report its area.
type Shape interface {
	Name() string
	Area() float64
}

type Circle struct {
	Radius float64
}

type Rectangle struct {
	Width, Height float64
}

type Triangle struct {
	Base, Height float64
}

func NewCircle(radius float64) (Circle, error) {
	if err := checkDimension("radius", radius); err != nil {
		return Circle{}, err
	}
	return Circle{Radius: radius}, nil
}

func NewRectangle(width, height float64) (Rectangle, error) {
	if err := checkDimension("width", width); err != nil {
		return Rectangle{}, err
	}
	if err := checkDimension("height", height); err != nil {
		return Rectangle{}, err
	}
	return Rectangle{Width: width, Height: height}, nil
}

func NewTriangle(base, height float64) (Triangle, error) {
	if err := checkDimension("base", base); err != nil {
		return Triangle{}, err
	}
	if err := checkDimension("height", height); err != nil {
		return Triangle{}, err
	}
	return Triangle{Base: base, Height: height}, nil
}

func (Circle) Name() string {
	return "circle"
}

func (c Circle) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}

func (Rectangle) Name() string {
	return "rectangle"
}

func (r Rectangle) Area() float64 {
	return r.Width * r.Height
}

func (Triangle) Name() string {
	return "triangle"
}

func (t Triangle) Area() float64 {
	return t.Base * t.Height / 2
}

// TotalArea sums the area of every shape.
func TotalArea(shapes ...Shape) float64 {
	var total float64
	for _, s := range shapes {
		total += s.Area()
	}
	return total
}

// Parse builds a shape of the given kind from named dimensions.
func Parse(kind string, dims map[string]float64) (Shape, error) {
	s, err := parse(kind, dims)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func parse(kind string, dims map[string]float64) (Shape, error) {
	get := func(name string) (float64, error) {
		v, ok := dims[name]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrMissingDimension, name)
		}
		return v, nil
	}

	switch kind {
	case "circle":
		r, err := get("radius")
		if err != nil {
			return nil, err
		}
		return NewCircle(r)
	case "rectangle":
		w, err := get("width")
		if err != nil {
			return nil, err
		}
		h, err := get("height")
		if err != nil {
			return nil, err
		}
		return NewRectangle(w, h)
	case "triangle":
		b, err := get("base")
		if err != nil {
			return nil, err
		}
		h, err := get("height")
		if err != nil {
			return nil, err
		}
		return NewTriangle(b, h)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, kind)
	}
}

// FiniteArea returns the area of s, or ErrAreaOverflow when it does not fit
// in a float64.
func FiniteArea(s Shape) (float64, error) {
	a := s.Area()
	if math.IsInf(a, 0) || math.IsNaN(a) {
		return 0, fmt.Errorf("%s: %w", s.Name(), ErrAreaOverflow)
	}
	return a, nil
}

func checkDimension(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s %g: %w", name, v, ErrNonFiniteDimension)
	}
	if v < 0 {
		return fmt.Errorf("%s %g: %w", name, v, ErrNegativeDimension)
	}
	return nil
}
