package ordering

import "errors"

// ErrEmptySelection is returned when a maximum is requested from an empty sequence.
var ErrEmptySelection = errors.New("cannot select from an empty sequence")
