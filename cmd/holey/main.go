package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/vito/holey/pkg/holey"
	"github.com/vito/holey/pkg/ioctx"
	"github.com/vito/holey/pkg/oracle"
	"golang.org/x/sync/errgroup"
)

// Config holds the application configuration
type Config struct {
	Debug     bool
	Files     []string
	OracleCmd string
	Script    string
	Record    string
	MaxSteps  int
	Jobs      int
	Run       bool
}

func main() {
	var cfg Config

	rootCmd := &cobra.Command{
		Use:   "holey",
		Short: "Grow programs by filling typed holes",
		Long: `holey starts from a hole of the goal type and fills it one decision at a
time, asking an oracle to pick among well-typed candidates until the program
is complete.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&cfg.Debug, "debug", "d", false, "Enable debug logging")

	rootCmd.AddCommand(synthCmd(&cfg), serveCmd(&cfg))

	ctx := ioctx.WithStdio(context.Background(), os.Stdin, os.Stdout, os.Stderr)
	if err := fang.Execute(ctx, rootCmd,
		fang.WithVersion("v0.1.0"),
		fang.WithCommit("dev"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func synthCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "synth [flags] [problem...]",
		Short: "Synthesize programs for problem files",
		Example: `  # Synthesize using the problem's scripted oracle
  holey synth predict.toml

  # Ask a JSON-RPC oracle process, record its answers, then run the result
  holey synth --oracle-cmd "holey serve predict.toml" --record answers.yaml --run predict.toml

  # Replay recorded answers
  holey synth --script answers.yaml predict.toml

  # Synthesize several problems, two at a time
  holey synth --jobs 2 a.toml b.toml c.toml

  # Use holey.toml from the current directory or a parent
  holey synth`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Files = args
			return synth(cmd.Context(), *cfg)
		},
	}
	cmd.Flags().StringVar(&cfg.OracleCmd, "oracle-cmd", "", "Command serving the oracle over JSON-RPC on stdio")
	cmd.Flags().StringVar(&cfg.Script, "script", "", "Replay oracle answers from a .toml or .yaml script")
	cmd.Flags().StringVar(&cfg.Record, "record", "", "Write the oracle's answers to a .toml or .yaml script")
	cmd.Flags().IntVar(&cfg.MaxSteps, "max-steps", 64, "Maximum number of holes to fill (0 for no limit)")
	cmd.Flags().IntVarP(&cfg.Jobs, "jobs", "j", 1, "Number of problems to synthesize at once")
	cmd.Flags().BoolVar(&cfg.Run, "run", false, "Evaluate and run the synthesized program")
	return cmd
}

func serveCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve [problem]",
		Short: "Serve a problem's scripted oracle over JSON-RPC on stdio",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) == 1 {
				file = args[0]
			}
			return serve(cmd.Context(), *cfg, file)
		},
	}
}

// serve answers JSON-RPC oracle calls on the context's stdin and stdout using
// the problem's scripted answers.
func serve(ctx context.Context, cfg Config, file string) error {
	setupLogging(cfg)

	_, problem, err := loadProblem(file)
	if err != nil {
		return err
	}
	if problem.Oracle == nil {
		return fmt.Errorf("problem has no [oracle] script to serve")
	}
	return oracle.Serve(ctx, oracle.NewScript(*problem.Oracle),
		ioctx.StdinFromContext(ctx), ioctx.StdoutFromContext(ctx))
}

func setupLogging(cfg Config) {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// loadProblem loads file, or finds holey.toml when file is empty.
func loadProblem(file string) (string, *holey.Problem, error) {
	if file != "" {
		problem, err := holey.LoadProblem(file)
		return file, problem, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", nil, err
	}
	path, problem, err := holey.FindProblem(cwd)
	if err != nil {
		return "", nil, err
	}
	if problem == nil {
		return "", nil, fmt.Errorf("no problem given and no %s found", holey.ProblemFile)
	}
	slog.Debug("found problem", "path", path)
	return path, problem, nil
}

func synth(ctx context.Context, cfg Config) error {
	setupLogging(cfg)

	if len(cfg.Files) <= 1 {
		file := ""
		if len(cfg.Files) == 1 {
			file = cfg.Files[0]
		}
		return synthProblem(ctx, cfg, file)
	}

	if cfg.Record != "" {
		return fmt.Errorf("--record needs a single problem, got %d", len(cfg.Files))
	}

	// each problem prints into its own buffer so output stays in argument
	// order
	outputs := make([]bytes.Buffer, len(cfg.Files))

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(cfg.Jobs, 1))
	for i, file := range cfg.Files {
		eg.Go(func() error {
			pctx := ioctx.StdoutToContext(gctx, &outputs[i])
			if err := synthProblem(pctx, cfg, file); err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			return nil
		})
	}
	err := eg.Wait()

	stdout := ioctx.StdoutFromContext(ctx)
	for i := range outputs {
		_, _ = outputs[i].WriteTo(stdout)
	}
	return err
}

func synthProblem(ctx context.Context, cfg Config, file string) error {
	path, problem, err := loadProblem(file)
	if err != nil {
		return err
	}
	logger := slog.Default().With("problem", path)

	o, closeOracle, err := dialOracle(ctx, cfg, problem)
	if err != nil {
		return err
	}
	defer closeOracle()

	var rec *oracle.Recorder
	if cfg.Record != "" {
		rec = oracle.Record(o)
		o = rec
	}
	o = oracle.Instrument(o, logger)

	term, root, err := problem.Start()
	if err != nil {
		return err
	}

	synthesizer := &holey.Synthesizer{
		Oracle:   o,
		MaxSteps: cfg.MaxSteps,
		Logger:   logger,
	}
	term, err = synthesizer.Complete(ctx, problem.Description, term, root)
	if err != nil {
		return err
	}

	stdout := ioctx.StdoutFromContext(ctx)
	_, _ = fmt.Fprintln(stdout, styled(termStyle, term.String()))

	if cfg.Run {
		val, err := holey.Evaluate(ctx, term, root.Env)
		if err != nil {
			return err
		}
		result, err := holey.Run(ctx, o, val)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(stdout, styled(resultStyle, result))
	}

	if rec != nil {
		if err := oracle.WriteScript(rec.Script(), cfg.Record); err != nil {
			return err
		}
		logger.Info("recorded oracle answers", "path", cfg.Record)
	}
	return nil
}

// dialOracle picks the oracle process if one is configured, then a script
// file, falling back to the problem's own script. Ask goes to the terminal
// when stdin is interactive.
func dialOracle(ctx context.Context, cfg Config, problem *holey.Problem) (oracle.Oracle, func(), error) {
	var o oracle.Oracle
	closeOracle := func() {}

	switch {
	case cfg.OracleCmd != "":
		proc, err := oracle.Dial(ctx, strings.Fields(cfg.OracleCmd))
		if err != nil {
			return nil, nil, err
		}
		o = proc
		closeOracle = func() {
			if err := proc.Close(); err != nil {
				slog.Warn("closing oracle process", "error", err)
			}
		}
	case cfg.Script != "":
		script, err := oracle.ReadScript(cfg.Script)
		if err != nil {
			return nil, nil, err
		}
		o = oracle.NewScript(script)
	case problem.Oracle != nil:
		o = oracle.NewScript(*problem.Oracle)
	default:
		return nil, nil, fmt.Errorf("no oracle: pass --oracle-cmd or --script, or add an [oracle] script to the problem")
	}

	if isatty.IsTerminal(os.Stdin.Fd()) {
		o = &oracle.Console{Oracle: o}
	}
	return o, closeOracle, nil
}

var (
	termStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
)

func styled(style lipgloss.Style, s string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return s
	}
	return style.Render(s)
}
