package utils

import (
	"fmt"
)

var (
	ErrMalformedInstance  = fmt.Errorf("Malformed instance")
	ErrInvariantViolation = fmt.Errorf("Scheduling invariant violated")
	ErrNotFound           = fmt.Errorf("Not found")
	ErrParse              = fmt.Errorf("Parse error")
)
