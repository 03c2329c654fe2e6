package energycalc

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSurfaceResistance = errors.New("surface heat transfer coefficient must be a number greater than zero")
	ErrInvalidConstructionType  = errors.New("invalid construction type")
	ErrInvalidLobbyType         = errors.New("invalid lobby type")
	ErrInvalidVentilationType   = errors.New("invalid ventilation type")
	ErrInvalidOrientation       = errors.New("invalid orientation")
	ErrInvalidNumber            = errors.New("value is not a number")
	ErrInvalidParameter         = errors.New("invalid parameter")
	ErrZeroDivision             = errors.New("division by zero")
	ErrOutOfRange               = errors.New("value out of range")
	ErrUnknownCity              = errors.New("unknown city")
	ErrUnknownMaterial          = errors.New("unknown material")
)

// ParamError ties a validation failure to the envelope element or input
// section and field it came from, so a caller can show it next to that input.
type ParamError struct {
	Element string
	Field   string
	Err     error
}

func (e *ParamError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", e.Element, e.Err)
	}
	return fmt.Sprintf("%s.%s: %v", e.Element, e.Field, e.Err)
}

func (e *ParamError) Unwrap() error {
	return e.Err
}

func paramError(element, field string, err error) error {
	if err == nil {
		return nil
	}
	var pe *ParamError
	if errors.As(err, &pe) {
		return err
	}
	return &ParamError{Element: element, Field: field, Err: err}
}
