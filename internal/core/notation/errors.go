package notation

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"
	apperrors "github.com/louisbranch/dicenotation/internal/platform/errors"
)

// ErrDivisionByZero indicates a "/" whose right operand evaluated to zero.
var ErrDivisionByZero = errors.New("division by zero")

var (
	// ErrSyntax matches every syntax error with errors.Is.
	ErrSyntax = apperrors.New(apperrors.CodeNotationSyntax, "notation syntax error")
	// ErrValidation matches every validation error with errors.Is.
	ErrValidation = apperrors.New(apperrors.CodeNotationValidation, "notation validation error")
)

// IsSyntaxError reports whether err is a grammar mismatch.
func IsSyntaxError(err error) bool {
	return errors.Is(err, ErrSyntax)
}

// IsValidationError reports whether err is a semantic failure raised while
// evaluating a roll.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

func newSyntaxError(input string, pos lexer.Position, message string) error {
	metadata := map[string]string{
		"input":  input,
		"offset": strconv.Itoa(pos.Offset),
	}
	if pos.Line == 0 {
		return apperrors.WithMetadata(apperrors.CodeNotationSyntax,
			fmt.Sprintf("syntax error in %q: %s", input, message), metadata)
	}
	metadata["line"] = strconv.Itoa(pos.Line)
	metadata["column"] = strconv.Itoa(pos.Column)
	return apperrors.WithMetadata(apperrors.CodeNotationSyntax,
		fmt.Sprintf("syntax error in %q at %d:%d: %s", input, pos.Line, pos.Column, message), metadata)
}

func newValidationError(node Expr, cause error) error {
	return apperrors.WrapWithMetadata(apperrors.CodeNotationValidation,
		fmt.Sprintf("invalid roll %q at offset %d: %v", node.String(), node.Pos(), cause),
		map[string]string{
			"roll":   node.String(),
			"offset": strconv.Itoa(node.Pos()),
		},
		cause,
	)
}
