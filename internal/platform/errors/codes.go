// Package errors provides structured, coded errors for dice notation.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Notation errors
	CodeNotationSyntax     Code = "NOTATION_SYNTAX"
	CodeNotationValidation Code = "NOTATION_VALIDATION"

	// Random/seed errors
	CodeSeedUnavailable Code = "SEED_UNAVAILABLE"
)

// Kind groups codes into the two failure families callers branch on.
type Kind int

const (
	KindUnknown Kind = iota
	// KindSyntax means the input does not match the notation grammar.
	KindSyntax
	// KindValidation means the input parsed but broke a rule while rolling.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Kind reports the failure family of the code.
func (c Code) Kind() Kind {
	switch c {
	case CodeNotationSyntax:
		return KindSyntax
	case CodeNotationValidation:
		return KindValidation
	default:
		return KindUnknown
	}
}

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - the caller sent notation that cannot be rolled
	case CodeNotationSyntax,
		CodeNotationValidation:
		return codes.InvalidArgument

	// Unavailable - entropy source failed; the call may be retried
	case CodeSeedUnavailable:
		return codes.Unavailable

	default:
		return codes.Internal
	}
}
