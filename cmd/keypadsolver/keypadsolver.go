// Command keypadsolver computes the shortest press sequences for door codes typed through
// a chain of robot-operated directional keypads.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-ricrob/keypadsolver/internal/config"
	"github.com/go-ricrob/keypadsolver/internal/cost"
	"github.com/go-ricrob/keypadsolver/internal/keypad"
	"github.com/go-ricrob/keypadsolver/internal/solver"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

type options struct {
	depth      int
	workers    int
	configPath string
	verbose    bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := new(options)

	cmd := &cobra.Command{
		Use:   "keypadsolver <file>",
		Short: "Shortest keypad press sequences through robot indirection",
		Long: `keypadsolver reads one door code per line (digits 0-9 and A) and prints, per code,
the shortest number of presses a human needs when the numeric keypad is operated through
--depth robot-operated directional keypads, and the code complexity (numeric value times
press count). The last line is the sum of all complexities.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return &usageError{msg: fmt.Sprintf("expected 1 argument (filename), got %d", len(args))}
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(stderr, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			return solve(stdout, logger, cfg, args[0])
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})

	flags := cmd.Flags()
	flags.IntVarP(&opts.depth, "depth", "d", config.DefaultDepth, "number of robot-operated directional keypads")
	flags.IntVarP(&opts.workers, "workers", "w", 0, "codes evaluated in parallel (0: one per CPU)")
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

// config merges defaults, the optional config file and explicitly set flags.
func (o *options) config(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return nil, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("depth") {
		cfg.Depth = o.depth
	}
	if flags.Changed("workers") {
		cfg.Workers = o.workers
	}
	if o.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg *config.Config) (*zap.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), level)
	return zap.New(core), nil
}

func solve(w io.Writer, logger *zap.Logger, cfg *config.Config, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("error reading from %s: %w", filename, err)
	}
	defer f.Close()

	codes, err := keypad.ReadCodes(f)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	logger.Debug("codes read", zap.String("file", filename), zap.Int("codes", len(codes)))

	engine := cost.New(keypad.Directional, logger)
	ev := solver.NewEvaluator(keypad.Numeric, engine, logger)
	report, err := solver.New(ev, cfg.Depth, cfg.Workers).Run(codes)
	if err != nil {
		return err
	}

	for _, r := range report.Results {
		fmt.Fprintf(w, "Code: %s, Shortest: %d, Complexity: %d\n", r.Code, r.Length, r.Complexity)
	}
	fmt.Fprintf(w, "Sum: %d\n", report.Sum)
	return nil
}

func run(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{} // keep cobra from falling back to os.Args
	}
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return exitOK
	}

	var uerr *usageError
	if errors.As(err, &uerr) {
		fmt.Fprintf(stderr, "Error: %v\n%s", err, cmd.UsageString())
		return exitUsage
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitError
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
