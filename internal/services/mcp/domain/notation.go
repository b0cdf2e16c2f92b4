package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/dicenotation/internal/core/check"
	"github.com/louisbranch/dicenotation/internal/core/notation"
	apperrors "github.com/louisbranch/dicenotation/internal/platform/errors"
	"github.com/louisbranch/dicenotation/internal/random"
)

const (
	tracerName = "github.com/louisbranch/dicenotation/internal/services/mcp/domain"

	// MaxRollTimes caps how many rolls a single roll_notation call may request.
	MaxRollTimes = 100
)

// RollNotationInput represents the MCP tool input for rolling notation.
type RollNotationInput struct {
	Notation string `json:"notation" jsonschema:"dice notation such as 4d6best3 + 2 or 2d[1,3,5]adv"`
	Seed     *int64 `json:"seed,omitempty" jsonschema:"optional seed for deterministic rolls"`
	Times    int    `json:"times,omitempty" jsonschema:"number of rolls to make, 1 to 100, defaults to 1"`
	// Difficulty turns each roll into a check; ties succeed.
	Difficulty *int64 `json:"difficulty,omitempty" jsonschema:"optional difficulty each total is checked against"`
}

// CheckResult represents one total compared against the requested difficulty.
type CheckResult struct {
	Success bool  `json:"success" jsonschema:"whether the total met the difficulty"`
	Margin  int64 `json:"margin" jsonschema:"total minus difficulty"`
}

// RngResult represents RNG details used for a roll.
type RngResult struct {
	SeedUsed   int64  `json:"seed_used" jsonschema:"seed value used for the rolls"`
	RngAlgo    string `json:"rng_algo" jsonschema:"rng algorithm identifier"`
	SeedSource string `json:"seed_source" jsonschema:"seed source (CLIENT or SERVER)"`
}

// RollNotationResult represents the MCP tool output for rolling notation.
type RollNotationResult struct {
	Notation string        `json:"notation" jsonschema:"canonical form of the rolled notation"`
	Totals   []int64       `json:"totals" jsonschema:"one total per roll, in order"`
	Rng      RngResult     `json:"rng" jsonschema:"rng details"`
	Checks   []CheckResult `json:"checks,omitempty" jsonschema:"one check per total when a difficulty was given"`
}

// ParseNotationInput represents the MCP tool input for parsing notation.
type ParseNotationInput struct {
	Notation string `json:"notation" jsonschema:"dice notation to check"`
}

// ParseNotationResult represents the MCP tool output for parsing notation.
type ParseNotationResult struct {
	Notation  string `json:"notation" jsonschema:"notation as submitted"`
	Canonical string `json:"canonical" jsonschema:"canonical form, which parses back to the same tree"`
}

// RollNotationTool defines the MCP tool schema for rolling notation.
func RollNotationTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_notation",
		Description: "Rolls a dice notation expression and returns the totals",
	}
}

// ParseNotationTool defines the MCP tool schema for parsing notation.
func ParseNotationTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "parse_notation",
		Description: "Checks dice notation syntax and returns its canonical form",
	}
}

// RollNotationHandler rolls notation. seedFunc generates seeds when the
// caller does not pass one; nil uses crypto/rand.
func RollNotationHandler(seedFunc func() (int64, error)) mcp.ToolHandlerFor[RollNotationInput, RollNotationResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RollNotationInput) (*mcp.CallToolResult, RollNotationResult, error) {
		ctx, span := otel.Tracer(tracerName).Start(ctx, "roll_notation",
			trace.WithAttributes(attribute.String("dice.notation", input.Notation)))
		defer span.End()

		result, err := rollNotation(ctx, input, seedFunc)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, RollNotationResult{}, toolError(err)
		}
		span.SetAttributes(
			attribute.Int64("dice.seed", result.Rng.SeedUsed),
			attribute.Int("dice.times", len(result.Totals)),
		)

		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, RollNotationResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		return CallToolResultWithInvocation(invocationID), result, nil
	}
}

func rollNotation(ctx context.Context, input RollNotationInput, seedFunc func() (int64, error)) (RollNotationResult, error) {
	times := input.Times
	if times == 0 {
		times = 1
	}
	if times < 0 || times > MaxRollTimes {
		return RollNotationResult{}, apperrors.WithMetadata(apperrors.CodeNotationValidation,
			fmt.Sprintf("times must be between 1 and %d, got %d", MaxRollTimes, input.Times),
			map[string]string{"times": fmt.Sprint(input.Times)})
	}

	expr, err := notation.Parse(input.Notation)
	if err != nil {
		return RollNotationResult{}, err
	}

	seed, source, err := random.ResolveSeed(input.Seed, seedFunc)
	if err != nil {
		return RollNotationResult{}, apperrors.Wrap(apperrors.CodeSeedUnavailable, "seed dice generator", err)
	}
	rng := random.NewRand(seed)

	totals := make([]int64, 0, times)
	for range times {
		if err := ctx.Err(); err != nil {
			return RollNotationResult{}, err
		}
		total, err := notation.Evaluate(expr, rng)
		if err != nil {
			return RollNotationResult{}, err
		}
		totals = append(totals, total)
	}

	var checks []CheckResult
	if input.Difficulty != nil {
		checks = make([]CheckResult, len(totals))
		for i, total := range totals {
			result := check.Check(total, *input.Difficulty)
			checks[i] = CheckResult{Success: result.Success, Margin: result.Margin}
		}
	}

	return RollNotationResult{
		Notation: expr.String(),
		Totals:   totals,
		Checks:   checks,
		Rng: RngResult{
			SeedUsed:   seed,
			RngAlgo:    random.RngAlgoMathRandV1,
			SeedSource: source,
		},
	}, nil
}

// ParseNotationHandler checks notation and reports its canonical form.
func ParseNotationHandler() mcp.ToolHandlerFor[ParseNotationInput, ParseNotationResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ParseNotationInput) (*mcp.CallToolResult, ParseNotationResult, error) {
		_, span := otel.Tracer(tracerName).Start(ctx, "parse_notation",
			trace.WithAttributes(attribute.String("dice.notation", input.Notation)))
		defer span.End()

		expr, err := notation.Parse(input.Notation)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, ParseNotationResult{}, toolError(err)
		}
		return nil, ParseNotationResult{
			Notation:  input.Notation,
			Canonical: expr.String(),
		}, nil
	}
}
