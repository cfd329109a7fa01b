package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"dualnum"
	"dualnum/sweep"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

// app 命令行共享状态
type app struct {
	configPath string
	logLevel   string
	logJSON    bool

	config FileConfig
	logger *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "dualnum",
		Short:        "Evaluate expressions and their exact derivatives with dual numbers",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.logger = newLogger(cmd.ErrOrStderr(), a.logLevel, a.logJSON)
			cfg, err := LoadConfig(a.configPath)
			if err != nil {
				return err
			}
			a.config = cfg
			a.logger.Debug("configuration loaded", "path", a.configPath)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&a.logJSON, "log-json", false, "Emit logs as JSON")

	root.AddCommand(
		a.evalCmd(),
		a.sweepCmd(),
		a.solveCmd(),
		a.serveCmd(),
	)
	return root
}

// newLogger 按级别构建日志器
func newLogger(w io.Writer, level string, asJSON bool) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if asJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func (a *app) evalCmd() *cobra.Command {
	var at []float64
	cmd := &cobra.Command{
		Use:   "eval EXPR",
		Short: "Print f(x), f'(x) and the dual result at one or more points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, x := range at {
				d, err := dualnum.Evaluate(args[0], x)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "x=%s\tf=%s\tf'=%s\t%s\n", formatFloat(x), formatFloat(d.Real()), formatFloat(d.Dual()), d.Inspect())
			}
			return nil
		},
	}
	cmd.Flags().Float64SliceVar(&at, "at", []float64{0}, "Point(s) at which to evaluate")
	return cmd
}

func (a *app) sweepCmd() *cobra.Command {
	var (
		from, to                 float64
		steps                    int
		title                    string
		jsonPath, htmlPath, plot string
		table                    bool
	)
	cmd := &cobra.Command{
		Use:   "sweep EXPR",
		Short: "Sample f and f' over a range and render them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.config.Sweep
			flags := cmd.Flags()
			if flags.Changed("from") {
				cfg.From = from
			}
			if flags.Changed("to") {
				cfg.To = to
			}
			if flags.Changed("steps") {
				cfg.Steps = steps
			}
			if flags.Changed("title") {
				cfg.Title = title
			}
			charts := new(sweep.Charts)
			if err := dualnum.Sweep(args[0], cfg, charts); err != nil {
				return err
			}
			a.logger.Info("sweep finished", "expr", args[0], "samples", len(charts.Samples), "undefined", len(charts.Errors))

			if jsonPath != "" {
				if err := writeTo(cmd, jsonPath, charts.Record.Render); err != nil {
					return err
				}
			}
			if htmlPath != "" {
				if err := writeTo(cmd, htmlPath, charts.Render); err != nil {
					return err
				}
			}
			if plot != "" {
				if err := sweep.Plot(&charts.Record, plot); err != nil {
					return err
				}
				a.logger.Info("plot written", "path", plot)
			}
			if table {
				fmt.Fprintf(cmd.OutOrStdout(), "%v\n", mat.Formatted(charts.Dense(), mat.Squeeze()))
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.Float64Var(&from, "from", 0, "Range start (overrides config)")
	flags.Float64Var(&to, "to", 0, "Range end (overrides config)")
	flags.IntVar(&steps, "steps", 0, "Number of steps (overrides config)")
	flags.StringVar(&title, "title", "", "Chart title")
	flags.StringVar(&jsonPath, "json", "", "Write samples as JSON (\"-\" for stdout)")
	flags.StringVar(&htmlPath, "html", "", "Write an HTML chart page (\"-\" for stdout)")
	flags.StringVar(&plot, "plot", "", "Write an image; format from extension (png, svg, pdf)")
	flags.BoolVar(&table, "table", false, "Print the x, f, f' table")
	return cmd
}

func (a *app) solveCmd() *cobra.Command {
	var (
		x0      float64
		tol     float64
		maxIter int
		maxStep float64
	)
	cmd := &cobra.Command{
		Use:   "solve EXPR",
		Short: "Find a root of f with Newton's method",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.config.Newton
			flags := cmd.Flags()
			if flags.Changed("tol") {
				cfg.Tolerance = tol
			}
			if flags.Changed("max-iter") {
				cfg.MaxIterations = maxIter
			}
			if flags.Changed("max-step") {
				cfg.MaxStep = maxStep
			}
			res, err := dualnum.Solve(args[0], x0, cfg)
			if err != nil {
				a.logger.Warn("newton failed", "expr", args[0], "x0", x0, "iterations", res.Iterations, "error", err)
				return err
			}
			a.logger.Debug("newton converged", "iterations", res.Iterations)
			fmt.Fprintf(cmd.OutOrStdout(), "root=%s\tf=%s\tf'=%s\titerations=%d\n",
				formatFloat(res.Root), formatFloat(res.Value), formatFloat(res.Slope), res.Iterations)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.Float64Var(&x0, "x0", 0, "Starting point")
	flags.Float64Var(&tol, "tol", 0, "Convergence tolerance (overrides config)")
	flags.IntVar(&maxIter, "max-iter", 0, "Maximum iterations (overrides config)")
	flags.Float64Var(&maxStep, "max-step", 0, "Maximum step per iteration, 0 disables (overrides config)")
	return cmd
}

func (a *app) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve EXPR",
		Short: "Serve the chart page of f and f' over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			charts := new(sweep.Charts)
			if err := dualnum.Sweep(args[0], a.config.Sweep, charts); err != nil {
				return err
			}
			mux := http.NewServeMux()
			mux.HandleFunc("/", charts.Handler)
			srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()
			a.logger.Info("serving chart", "addr", addr, "expr", args[0])

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}
			a.logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	return cmd
}

// writeTo 渲染到文件，"-" 表示标准输出
func writeTo(cmd *cobra.Command, path string, render func(io.Writer) error) error {
	if path == "-" {
		return render(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	return f.Close()
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
