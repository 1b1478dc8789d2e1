package advance

import "errors"

var (
	ErrAdvanceNotFound         = errors.New("advance not found")
	ErrAdvanceAlreadyAllocated = errors.New("advance already used in payroll, cannot modify")
)
