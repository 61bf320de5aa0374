// Command vtdemo is an explicit non-core harness: it spawns a PTY running
// the user's shell, feeds the PTY's output through a vtcore.Console, and
// periodically snapshots the grid to a PNG via the render package. None of
// the core packages (vtcore, vte, render) import this command or its
// dependencies (cobra, pflag, creack/pty); it exists purely to exercise the
// full pipeline end to end the way the teacher's examples/ directory
// demonstrates headlessterm (examples/basic, examples/screenshot).
package main

import (
	"fmt"
	"os"

	"github.com/inkterm/vtcore/cmd/vtdemo/internal/run"
	"github.com/spf13/cobra"
)

var (
	rows, cols int
	shell      string
	snapshot   string
	interval   int
)

var rootCmd = &cobra.Command{
	Use:   "vtdemo",
	Short: "Run a shell inside vtcore and periodically snapshot the grid to PNG",
	Long: `vtdemo spawns a PTY running a shell, drives a vtcore.Console with its
output, and writes a PNG snapshot of the resulting text grid on a timer.

It is a demonstration harness, not part of the core library: process/PTY
plumbing and image encoding are explicitly out of the core's scope.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run.Demo(run.Config{
			Rows:           rows,
			Cols:           cols,
			Shell:          shell,
			SnapshotPath:   snapshot,
			SnapshotPeriod: interval,
		})
	},
}

func init() {
	rootCmd.Flags().IntVar(&rows, "rows", 24, "terminal rows")
	rootCmd.Flags().IntVar(&cols, "cols", 80, "terminal columns")
	rootCmd.Flags().StringVar(&shell, "shell", "", "shell to run (defaults to $SHELL or /bin/sh)")
	rootCmd.Flags().StringVar(&snapshot, "snapshot", "vtdemo.png", "path to write the periodic PNG snapshot")
	rootCmd.Flags().IntVar(&interval, "interval-ms", 500, "snapshot period in milliseconds")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "vtdemo: %v\n", err)
		os.Exit(1)
	}
}
