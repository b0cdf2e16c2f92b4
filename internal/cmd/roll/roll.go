// Package roll parses roll command flags and prints dice notation results.
package roll

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/alecthomas/repr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"

	"github.com/louisbranch/dicenotation/internal/core/check"
	"github.com/louisbranch/dicenotation/internal/core/dice"
	"github.com/louisbranch/dicenotation/internal/core/notation"
	"github.com/louisbranch/dicenotation/internal/core/roll"
	entrypoint "github.com/louisbranch/dicenotation/internal/platform/cmd"
	"github.com/louisbranch/dicenotation/internal/random"
)

const tracerName = "github.com/louisbranch/dicenotation/internal/cmd/roll"

// Config holds roll command configuration.
type Config struct {
	// Seed fixes the generator when non-empty; otherwise a fresh seed is drawn.
	Seed  string `env:"DICENOTATION_SEED"`
	Times int    `env:"DICENOTATION_TIMES" envDefault:"1"`
	Tree  bool   `env:"DICENOTATION_TREE"`
	// DC, when non-empty, is the difficulty every total is checked against.
	DC string `env:"DICENOTATION_DC"`

	Notations []string
}

// ParseConfig parses environment and flags into a Config. Positional
// arguments are the notations to roll.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Seed, "seed", cfg.Seed, "seed for reproducible rolls")
	fs.IntVar(&cfg.Times, "times", cfg.Times, "number of times to roll each notation")
	fs.BoolVar(&cfg.Tree, "tree", cfg.Tree, "print the parse tree before rolling")
	fs.StringVar(&cfg.DC, "dc", cfg.DC, "difficulty to check each total against")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.Notations = fs.Args()
	return cfg, nil
}

// Run rolls every notation in cfg and writes one "[notation: total]" line
// per roll to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceRoll, func(ctx context.Context) error {
		return run(ctx, cfg, out)
	})
}

func run(ctx context.Context, cfg Config, out io.Writer) error {
	if len(cfg.Notations) == 0 {
		return errors.New("at least one notation is required")
	}
	if cfg.Times < 1 {
		return fmt.Errorf("times must be at least 1, got %d", cfg.Times)
	}

	requested, err := parseInt(cfg.Seed, "seed")
	if err != nil {
		return err
	}
	difficulty, err := parseInt(cfg.DC, "difficulty")
	if err != nil {
		return err
	}
	seed, source, err := random.ResolveSeed(requested, nil)
	if err != nil {
		return fmt.Errorf("seed dice generator: %w", err)
	}
	log.Printf("rolling with seed %d (%s)", seed, strings.ToLower(source))
	rng := random.NewRand(seed)

	for _, input := range cfg.Notations {
		if err := rollNotation(ctx, input, cfg.Times, cfg.Tree, difficulty, rng, out); err != nil {
			return err
		}
	}
	return nil
}

func rollNotation(ctx context.Context, input string, times int, tree bool, difficulty *int64, rng dice.Source, out io.Writer) error {
	_, span := otel.Tracer(tracerName).Start(ctx, "roll")
	defer span.End()
	span.SetAttributes(
		attribute.String("dice.notation", input),
		attribute.Int("dice.times", times),
	)

	fail := func(err error) error {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("roll %q: %w", input, err)
	}

	if tree {
		expr, err := notation.Parse(input)
		if err != nil {
			return fail(err)
		}
		if _, err := fmt.Fprintln(out, repr.String(expr, repr.Indent("  "))); err != nil {
			return err
		}
	}

	roller, err := roll.NewWithSource(input, rng)
	if err != nil {
		return fail(err)
	}
	if err := printRoll(out, roller, difficulty); err != nil {
		return err
	}
	for i := 1; i < times; i++ {
		if _, err := roller.RerollOrFail(); err != nil {
			return fail(err)
		}
		if err := printRoll(out, roller, difficulty); err != nil {
			return err
		}
	}
	return nil
}

func printRoll(out io.Writer, roller *roll.Roller, difficulty *int64) error {
	if difficulty == nil {
		_, err := fmt.Fprintln(out, roller)
		return err
	}
	_, err := fmt.Fprintf(out, "%s %s\n", roller, check.Check(roller.Total(), *difficulty))
	return err
}

// parseInt reads an optional integer setting; empty means unset.
func parseInt(raw, name string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return &value, nil
}
