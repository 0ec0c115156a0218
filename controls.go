package pixkern

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/soypat/geometry/ms2"
)

// Control represents an editable parameter of a filter.
// A successful ChangeValue takes effect on the next Process call.
type Control interface {
	// Display/human readable name and description.
	Describe() (name, description string)
	// ActualValue returns the current value of the control.
	ActualValue() any
	// ChangeValue attempts to update the ActualValue to newValue.
	ChangeValue(newValue any) error
}

// ControlOrdered is a bounded numeric control such as a scale factor or a threshold level.
type ControlOrdered[T cmp.Ordered] struct {
	Name        string
	Description string
	Value       T
	Min         T
	Max         T
	Step        T
	OnChange    func(T) error
}

func (co *ControlOrdered[T]) Describe() (name, description string) {
	return co.Name, co.Description
}

func (co *ControlOrdered[T]) ActualValue() any { return co.Value }

func (co *ControlOrdered[T]) ChangeValue(newValue any) error {
	v, err := assertControl[T](newValue, co.Value)
	if err != nil {
		return err
	} else if v < co.Min || v > co.Max {
		return fmt.Errorf("%s: value %v outside %v..%v", co.Name, v, co.Min, co.Max)
	}
	return commitControl(&co.Value, v, co.OnChange)
}

type integer interface {
	~int | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int8 | ~int16 | ~int32 | ~int64
}

type enum interface {
	integer
	fmt.Stringer
}

// ControlEnum maps to dropdown kind of list.
type ControlEnum[T enum] struct {
	Name        string
	Description string
	Value       T
	ValidValues []T
	OnChange    func(T) error
}

func (ce *ControlEnum[T]) Describe() (name, description string) {
	return ce.Name, ce.Description
}

func (ce *ControlEnum[T]) ActualValue() any { return ce.Value }

func (ce *ControlEnum[T]) ChangeValue(newValue any) error {
	v, err := assertControl[T](newValue, ce.Value)
	if err != nil {
		return err
	} else if !slices.Contains(ce.ValidValues, v) {
		return fmt.Errorf("%s: %v is not a valid option", ce.Name, v)
	}
	return commitControl(&ce.Value, v, ce.OnChange)
}

// CurvePoint is a tone curve control point.
// X is the input level and Y the output level, both normalized to 0..1.
type CurvePoint = ms2.Vec

// ControlCurve is a piecewise curve control with editable control points.
type ControlCurve struct {
	Name        string
	Description string
	Points      []CurvePoint
	OnChange    func([]CurvePoint) error
}

func (cc *ControlCurve) Describe() (name, description string) {
	return cc.Name, cc.Description
}

func (cc *ControlCurve) ActualValue() any { return cc.Points }

func (cc *ControlCurve) ChangeValue(newValue any) error {
	pts, err := assertControl[[]CurvePoint](newValue, cc.Points)
	if err != nil {
		return err
	}
	return commitControl(&cc.Points, pts, cc.OnChange)
}

func assertControl[T any](newValue any, current T) (T, error) {
	v, ok := newValue.(T)
	if !ok {
		return v, fmt.Errorf("new value %T not of type %T", newValue, current)
	}
	return v, nil
}

// commitControl stores v only if onChange accepts it. A nil onChange always accepts.
func commitControl[T any](dst *T, v T, onChange func(T) error) error {
	if onChange != nil {
		if err := onChange(v); err != nil {
			return err
		}
	}
	*dst = v
	return nil
}
