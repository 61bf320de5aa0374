// Package run holds the PTY-driving loop for cmd/vtdemo, kept out of main
// so the flag-parsing shell stays small, matching the teacher examples'
// split between examples/basic (direct WriteString) and examples/screenshot
// (Screenshot/ScreenshotWithConfig) — here generalized to a real PTY.
package run

import (
	"image/png"
	"os"
	"os/exec"
	"time"

	"github.com/creack/pty"

	"github.com/inkterm/vtcore"
	"github.com/inkterm/vtcore/render"
)

// Config controls one vtdemo run.
type Config struct {
	Rows, Cols     int
	Shell          string
	SnapshotPath   string
	SnapshotPeriod int // milliseconds
}

// Demo spawns the configured shell under a PTY, feeds its output into a
// Console backed by a render.TextOnGraphic, and writes a PNG snapshot of the
// grid every SnapshotPeriod until the shell exits.
func Demo(cfg Config) error {
	shell := cfg.Shell
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}

	font := render.DefaultFont()
	target := render.NewImageTarget(cfg.Cols*font.CellWidth, cfg.Rows*font.CellHeight)
	renderer := render.NewTextOnGraphic(target, font)

	term, err := vtcore.New(vtcore.WithRenderer(renderer), vtcore.WithLogger(vtcore.NopLogger{}))
	if err != nil {
		return err
	}

	cmd := exec.Command(shell)
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(term.Rows()),
		Cols: uint16(term.Columns()),
	})
	if err != nil {
		return err
	}
	defer ptmx.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		buf := make([]byte, 4096)
		for {
			n, err := ptmx.Read(buf)
			if n > 0 {
				term.Write(buf[:n])
			}
			if err != nil {
				return
			}
		}
	}()

	period := time.Duration(cfg.SnapshotPeriod) * time.Millisecond
	if period <= 0 {
		period = 500 * time.Millisecond
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return writeSnapshot(cfg.SnapshotPath, target, renderer, term)
		case <-ticker.C:
			if err := writeSnapshot(cfg.SnapshotPath, target, renderer, term); err != nil {
				return err
			}
		}
	}
}

// writeSnapshot redraws every cell from the Console's cache through the
// renderer (the cache is the source of truth; the renderer's own pixels may
// be stale for rows the ring rotation skipped, per the cache's NewLine
// contract) and encodes the result as a PNG.
func writeSnapshot(path string, target *render.ImageTarget, renderer *render.TextOnGraphic, term *vtcore.Console) error {
	for row := 0; row < term.Rows(); row++ {
		for col := 0; col < term.Columns(); col++ {
			cell, ok := term.Cell(row, col)
			if !ok {
				continue
			}
			renderer.Write(row, col, cell)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, target.Img)
}
