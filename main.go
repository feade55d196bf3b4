package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// app wires the command line to a check-in run. Fields are swapped in tests.
type app struct {
	open        opener
	wait        waitPolicy
	stdout      io.Writer
	stderr      io.Writer
	interactive func() bool
}

func main() {
	a := app{
		open:        openChrome,
		wait:        defaultWaitPolicy(),
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		interactive: stdoutIsTerminal,
	}
	os.Exit(a.execute(os.Args[1:]))
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// execute runs the command and returns the process exit code: 0 when
// attendance is marked, 1 otherwise.
func (a app) execute(args []string) int {
	exitCode := 1
	cmd := a.rootCmd(&exitCode)
	cmd.SetArgs(args)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(a.stderr, redStyle.Render("✗ Error: "+err.Error()))
		return 1
	}
	return exitCode
}

func (a app) rootCmd(exitCode *int) *cobra.Command {
	var (
		debug   bool
		envFile string
	)
	cmd := &cobra.Command{
		Use:           "autocheckin",
		Short:         "Marks today's attendance on the Razorpay payroll portal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// to get debug info use:  autocheckin --debug
			// track logged data with: tail -f /tmp/autocheckin_debug.log
			closeLog := logInit(debug, a.stderr)
			defer closeLog()

			v, err := newViper(envFile)
			if err != nil {
				return err
			}
			for key, flag := range map[string]string{
				keyHeadless:     "headless",
				keyArtifactsDir: "artifacts",
				keyChromePath:   "chrome",
			} {
				if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
					return err
				}
			}

			cfg, err := loadConfig(v)
			if errors.Is(err, errMissingCredentials) {
				fmt.Fprintln(a.stdout, redStyle.Render("✗ Error: "+err.Error()))
				*exitCode = 1
				return nil
			}
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			fmt.Fprintln(a.stdout, buildBanner())
			ok := a.checkIn(ctx, stop, cfg)
			fmt.Fprintln(a.stdout, "\n"+buildSummary(ok, cfg.ArtifactsDir))
			if ok {
				*exitCode = 0
			} else {
				*exitCode = 1
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "write a debug log to the OS temp folder")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file with RAZORPAY_EMAIL and RAZORPAY_PASSWORD")
	cmd.Flags().Bool("headless", false, "run the browser without a window (implied by CI=true)")
	cmd.Flags().String("artifacts", ".", "directory for screenshots and page dumps")
	cmd.Flags().String("chrome", "", "Chrome/Chromium executable (default: search PATH)")
	return cmd
}

// checkIn runs the check-in behind the spinner view in an interactive
// visible session, or behind plain progress lines otherwise.
func (a app) checkIn(ctx context.Context, interrupt context.CancelFunc, cfg config) bool {
	var out reporter
	if !cfg.Headless && a.interactive != nil && a.interactive() {
		view := startProgressView(a.stdout, interrupt)
		defer view.Stop()
		out = view
	} else {
		out = newLineReporter(a.stdout)
	}

	r := newCheckInRunner(a.open, out, cfg.ArtifactsDir)
	r.wait = a.wait
	return r.CheckIn(ctx, cfg.Credentials, browserOptions{
		Headless: cfg.Headless,
		ExecPath: resolveChromium(cfg.ChromePath),
	})
}
