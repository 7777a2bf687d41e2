package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mondrian/pkg/config"
	errs "github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/observability"
	"github.com/matzehuels/mondrian/pkg/pipeline"
	"github.com/matzehuels/mondrian/pkg/render/sink"
	"github.com/matzehuels/mondrian/pkg/seed"
)

// Reseed triggers reported to the seed hooks.
const (
	triggerKey   = "key"
	triggerMouse = "mouse"
)

// Terminal size assumed until the first WindowSizeMsg arrives.
const (
	defaultViewWidth  = 80
	defaultViewHeight = 24

	// statusLines is the number of rows below the canvas.
	statusLines = 2
)

var (
	viewHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	viewStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	viewErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

func (c *CLI) viewCommand() *cobra.Command {
	var (
		seedStr string
		plain   bool
	)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse compositions in the terminal",
		Long: `View draws a composition in the terminal and redraws it on every frame.

The default seed 42 leaves the canvas whole, so the first frame is a plain
white square. Press n or click for a seed that splits.

Keys:
  n, click   new random seed
  s          save a PNG snapshot named after the current seed
  q, ctrl+c  quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			initial, err := errs.ParseSeed(seedStr)
			if err != nil {
				return err
			}
			m, err := newViewModel(cmd.Context(), cfg, seed.New(initial), plain)
			if err != nil {
				return err
			}

			p := tea.NewProgram(m,
				tea.WithContext(cmd.Context()),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
			)
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("viewer: %w", err)
			}
			if vm, ok := final.(viewModel); ok {
				printInfo("Last seed %s", StyleNumber.Render(fmt.Sprint(vm.state.Current())))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&seedStr, "seed", fmt.Sprint(seed.Default), "initial seed")
	cmd.Flags().BoolVar(&plain, "plain", false, "draw letters instead of coloured blocks")

	return cmd
}

// =============================================================================
// viewModel - Interactive viewer
// =============================================================================

// viewModel is the bubbletea model behind the view command. It owns the
// seed state; every View call regenerates the layout from the current seed.
type viewModel struct {
	ctx    context.Context
	state  *seed.State
	opts   pipeline.Options
	runner *pipeline.Runner
	snap   config.SnapshotConfig
	plain  bool

	width  int
	height int
	status string
	err    error
}

// snapshotMsg reports the outcome of a snapshot command.
type snapshotMsg struct {
	path string
	err  error
}

func newViewModel(ctx context.Context, cfg config.Config, state *seed.State, plain bool) (viewModel, error) {
	opts := cfg.Options(state.Current())
	opts.Formats = []string{pipeline.FormatPNG}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return viewModel{}, err
	}
	return viewModel{
		ctx:   ctx,
		state: state,
		opts:  opts,
		// Logging would corrupt the alternate screen.
		runner: pipeline.NewRunner(log.New(io.Discard)),
		snap:   cfg.Snapshot,
		plain:  plain,
		width:  defaultViewWidth,
		height: defaultViewHeight,
	}, nil
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "n":
			return m.reseed(triggerKey), nil
		case "s":
			return m, m.snapshot()
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			return m.reseed(triggerMouse), nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case snapshotMsg:
		m.err = msg.err
		if msg.err == nil {
			m.status = "saved " + msg.path
		}
	}
	return m, nil
}

// reseed draws a new seed. A failed draw keeps the current seed and shows
// the error.
func (m viewModel) reseed(trigger string) viewModel {
	s, err := m.state.Reseed()
	if err != nil {
		m.err = fmt.Errorf("reseed: %w", err)
		return m
	}
	observability.Seed().OnReseed(m.ctx, trigger, s)
	m.err = nil
	m.status = ""
	return m
}

// snapshot returns a command that writes a PNG of the current seed. The seed
// is captured when the key is pressed, not when the command runs.
func (m viewModel) snapshot() tea.Cmd {
	s := m.state.Current()
	opts := m.opts
	opts.Seed = s
	path := filepath.Join(m.snap.Dir, seed.SnapshotName(m.snap.Prefix, s, pipeline.FormatPNG))

	return func() tea.Msg {
		data, err := m.renderSnapshot(opts)
		if err == nil {
			err = writeArtifact(path, data)
		}
		observability.Seed().OnSnapshot(m.ctx, s, len(data), err)
		return snapshotMsg{path: path, err: err}
	}
}

func (m viewModel) renderSnapshot(opts pipeline.Options) ([]byte, error) {
	l, err := m.runner.GenerateLayout(m.ctx, opts)
	if err != nil {
		return nil, err
	}
	artifacts, err := m.runner.Render(m.ctx, l, opts)
	if err != nil {
		return nil, err
	}
	return artifacts[pipeline.FormatPNG], nil
}

func (m viewModel) View() string {
	opts := m.opts
	opts.Seed = m.state.Current()

	var b strings.Builder
	l, err := m.runner.GenerateLayout(m.ctx, opts)
	if err != nil {
		b.WriteString(viewErrorStyle.Render(err.Error()))
	} else {
		cols, rows := canvasCells(m.width, m.height)
		textOpts := []sink.TextOption{sink.WithTextTheme(*opts.Theme)}
		if m.plain {
			textOpts = append(textOpts, sink.WithTextPlain())
		}
		b.WriteString(sink.RenderText(l, cols, rows, textOpts...))
	}
	b.WriteString("\n")

	line := fmt.Sprintf("seed %d · %d rectangles", opts.Seed, len(l.Rects))
	switch {
	case m.err != nil:
		line += " · " + viewErrorStyle.Render(m.err.Error())
	case m.status != "":
		line += " · " + m.status
	}
	b.WriteString(viewStatusStyle.Render(line))
	b.WriteString("\n")
	b.WriteString(viewHelpStyle.Render("n/click new seed  s snapshot  q quit"))
	return b.String()
}

// canvasCells fits a square canvas into a width×height terminal, leaving
// room for the status lines. Cells are about twice as tall as wide, so the
// canvas uses two columns per row.
func canvasCells(width, height int) (cols, rows int) {
	rows = height - statusLines
	if rows < 1 {
		rows = 1
	}
	cols = 2 * rows
	if cols > width {
		cols = width
		rows = cols / 2
	}
	if rows < 1 || cols < 1 {
		return 0, 0
	}
	return cols, rows
}
