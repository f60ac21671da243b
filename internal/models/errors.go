package models

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrNetwork ErrorType = iota
	ErrDecode
	ErrEmptyQuery
	ErrPackageQuery
	ErrInstall
	ErrFileOp
	ErrInvalidConfig
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrNetwork:
		return "Network"
	case ErrDecode:
		return "Decode"
	case ErrEmptyQuery:
		return "EmptyQuery"
	case ErrPackageQuery:
		return "PackageQuery"
	case ErrInstall:
		return "Install"
	case ErrFileOp:
		return "FileOp"
	case ErrInvalidConfig:
		return "InvalidConfig"
	default:
		return "Unknown"
	}
}

// DriverError represents an error while looking up or installing a driver
type DriverError struct {
	Type   ErrorType
	Device string
	Err    error
}

// Error implements the error interface
func (e *DriverError) Error() string {
	if e.Device != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Device, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *DriverError) Unwrap() error {
	return e.Err
}

// IsErrorType reports whether err carries a DriverError of type t
func IsErrorType(err error, t ErrorType) bool {
	var de *DriverError
	if errors.As(err, &de) {
		return de.Type == t
	}
	return false
}
