package filters

import (
	"errors"
	"fmt"
	"strings"

	"github.com/soypat/pixkern"
)

// ErrUnknownOperator is returned by [ParseOperator] for names outside the operator set.
var ErrUnknownOperator = errors.New("unknown operator")

// Operator names one of the fixed image operators.
type Operator uint8

const (
	opUndefined Operator = iota
	OpBrighten
	OpDarken
	OpGrayscale
	OpInvert
	OpThreshold
	OpBlur
	OpGradient
	opEnd
)

var opNames = [...]string{
	opUndefined: "undefined",
	OpBrighten:  "brighten",
	OpDarken:    "darken",
	OpGrayscale: "grayscale",
	OpInvert:    "invert",
	OpThreshold: "threshold",
	OpBlur:      "blur",
	OpGradient:  "gradient",
}

func (op Operator) String() string {
	if op >= opEnd {
		return fmt.Sprintf("Operator(%d)", uint8(op))
	}
	return opNames[op]
}

// Operators returns every defined operator in declaration order.
func Operators() []Operator {
	ops := make([]Operator, 0, opEnd-1)
	for op := opUndefined + 1; op < opEnd; op++ {
		ops = append(ops, op)
	}
	return ops
}

// ParseOperator returns the operator named s. Matching is case-insensitive.
func ParseOperator(s string) (Operator, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for op := opUndefined + 1; op < opEnd; op++ {
		if opNames[op] == s {
			return op, nil
		}
	}
	return opUndefined, fmt.Errorf("%w %q", ErrUnknownOperator, s)
}

// Filter returns a new filter instance implementing op.
func (op Operator) Filter() (pixkern.Filter, error) {
	switch op {
	case OpBrighten:
		return NewBrighten(), nil
	case OpDarken:
		return NewDarken(), nil
	case OpGrayscale:
		return NewGrayscale(), nil
	case OpInvert:
		return NewInvertedPerPixel(), nil
	case OpThreshold:
		return NewThreshold(), nil
	case OpBlur:
		return NewBlur(), nil
	case OpGradient:
		return NewGradient(), nil
	}
	return nil, fmt.Errorf("%w %v", ErrUnknownOperator, op)
}

// Apply runs op over src and returns the result in a new buffer.
func Apply(op Operator, src *pixkern.Buffer) (*pixkern.Buffer, error) {
	f, err := op.Filter()
	if err != nil {
		return nil, err
	}
	return pixkern.Apply(f, src)
}
