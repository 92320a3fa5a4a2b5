package cli

import (
	"fmt"
	"strings"
)

// ErrorCode classifies a parse failure.
type ErrorCode int

const (
	// ErrCodeMalformed means the argument vector could not be tokenized:
	// an unknown option in strict mode, a missing value, bad flag syntax.
	ErrCodeMalformed ErrorCode = iota + 1
	// ErrCodeMissingRequired means a required option was absent or empty.
	ErrCodeMissingRequired
	// ErrCodeInvalidNumber means a number option got a non-integer value.
	ErrCodeInvalidNumber
	// ErrCodeInvalidEnum means an enum option got a value outside its set.
	ErrCodeInvalidEnum
)

func (c ErrorCode) String() string {
	switch c {
	case ErrCodeMalformed:
		return "malformed"
	case ErrCodeMissingRequired:
		return "missing_required"
	case ErrCodeInvalidNumber:
		return "invalid_number"
	case ErrCodeInvalidEnum:
		return "invalid_enum"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
}

// ParseError is the failure variant of a Parse call. Message is meant to be
// shown to the user as-is.
type ParseError struct {
	Code    ErrorCode
	Message string
}

func (e *ParseError) Error() string { return e.Message }

func malformed(err error) *ParseError {
	return &ParseError{Code: ErrCodeMalformed, Message: err.Error()}
}

func missingRequired(name string) *ParseError {
	return &ParseError{
		Code:    ErrCodeMissingRequired,
		Message: fmt.Sprintf("Missing required option: --%s", name),
	}
}

func invalidNumber(name, raw string) *ParseError {
	return &ParseError{
		Code:    ErrCodeInvalidNumber,
		Message: fmt.Sprintf("Invalid number for --%s: \"%s\"", name, raw),
	}
}

func invalidEnum(opt Option, raw string) *ParseError {
	return &ParseError{
		Code: ErrCodeInvalidEnum,
		Message: fmt.Sprintf("Invalid value for --%s: \"%s\". Valid values: %s",
			opt.Name, raw, strings.Join(opt.Values, ", ")),
	}
}
