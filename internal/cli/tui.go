package cli

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/packforce/pkg/core/geom"
	"github.com/matzehuels/packforce/pkg/core/layout"
	"github.com/matzehuels/packforce/pkg/graph"
	"github.com/matzehuels/packforce/pkg/pipeline"
)

const (
	defaultTickInterval = 30 * time.Millisecond
	defaultCanvasCols   = 72
	defaultCanvasRows   = 22
)

// Canvas glyphs
const (
	glyphNode   = '●'
	glyphFixed  = '■'
	glyphParent = '◯'
	glyphEmpty  = ' '
)

var (
	canvasStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim)
	statusKeyStyle = lipgloss.NewStyle().Foreground(colorGray)
	helpStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// watchCommand creates the interactive watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		flags    simulateFlags
		interval time.Duration
		perTick  int
	)

	cmd := &cobra.Command{
		Use:   "watch [chart]",
		Short: "Step a simulation interactively in the terminal",
		Long: `Step a simulation interactively in the terminal.

The chart is simulated a few iterations per tick and drawn as a character
canvas. Keys: space pauses, s steps once, r resets placement, R restarts
cooling from the current positions, q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			return c.runWatch(cmd.Context(), args[0], opts, interval, perTick)
		},
	}

	flags.addChartFlags(cmd, c.kindNames())
	cmd.Flags().DurationVar(&interval, "interval", defaultTickInterval, "time between ticks")
	cmd.Flags().IntVar(&perTick, "steps", 1, "iterations per tick")

	return cmd
}

// runWatch builds the engine and hands it to the bubbletea program.
func (c *CLI) runWatch(ctx context.Context, input string, opts pipeline.Options, interval time.Duration, perTick int) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	chart, err := runner.Parse(ctx, input)
	if err != nil {
		return fmt.Errorf("load chart %s: %w", input, err)
	}
	engine, prepared, err := runner.Build(chart, opts)
	if err != nil {
		return err
	}

	m := newWatchModel(engine, prepared, interval, perTick)
	_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}

// =============================================================================
// watchModel - interactive stepping
// =============================================================================

type tickMsg time.Time

// watchModel is the bubbletea model driving an engine on a timer.
type watchModel struct {
	engine   *layout.Engine
	title    string
	last     layout.StepResult
	paused   bool
	interval time.Duration
	perTick  int
	cols     int
	rows     int
}

func newWatchModel(e *layout.Engine, c graph.Chart, interval time.Duration, perTick int) watchModel {
	if interval <= 0 {
		interval = defaultTickInterval
	}
	if perTick < 1 {
		perTick = 1
	}
	title := c.Title
	if title == "" {
		title = e.Kind()
	}
	return watchModel{
		engine:   e,
		title:    title,
		last:     layout.StepResult{State: e.State(), Temperature: e.Temperature()},
		interval: interval,
		perTick:  perTick,
		cols:     defaultCanvasCols,
		rows:     defaultCanvasRows,
	}
}

func (m watchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m watchModel) Init() tea.Cmd {
	return m.tick()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if !m.paused && !m.last.Done() {
			for i := 0; i < m.perTick && !m.last.Done(); i++ {
				m.last = m.engine.Step()
			}
		}
		return m, m.tick()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "s":
			m.last = m.engine.Step()
		case "r":
			m.engine.Reset()
			m.last = m.snapshot()
		case "R":
			m.engine.Restart()
			m.last = m.snapshot()
		}
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width-4, 10)
		m.rows = max(msg.Height-6, 5)
	}
	return m, nil
}

// snapshot reports the engine's current state without stepping it.
func (m watchModel) snapshot() layout.StepResult {
	return layout.StepResult{
		State:       m.engine.State(),
		Iteration:   m.engine.Iteration(),
		Temperature: m.engine.Temperature(),
		Energy:      m.engine.Energy(),
	}
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("  ")
	b.WriteString(m.status())
	b.WriteString("\n")
	b.WriteString(canvasStyle.Render(strings.Join(renderCanvas(m.engine.Nodes(), m.engine.Box(), m.cols, m.rows), "\n")))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space pause  s step  r reset  R restart  q quit"))

	return b.String()
}

func (m watchModel) status() string {
	state := m.last.State.String()
	switch {
	case m.paused:
		state = StyleWarning.Render("paused")
	case m.last.State == layout.Stable:
		state = StyleSuccess.Render(state)
	}
	parts := []string{
		statusKeyStyle.Render("state ") + state,
		statusKeyStyle.Render("iter ") + StyleNumber.Render(fmt.Sprintf("%d", m.last.Iteration)),
		statusKeyStyle.Render("T ") + StyleNumber.Render(fmt.Sprintf("%.4f", m.last.Temperature)),
		statusKeyStyle.Render("energy ") + StyleNumber.Render(fmt.Sprintf("%.2f", m.last.Energy)),
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

// renderCanvas draws node centres onto a cols×rows character grid scaled
// from box. Later nodes overwrite earlier ones in the same cell; parents
// never overwrite children.
func renderCanvas(nodes []layout.NodeState, box geom.Box, cols, rows int) []string {
	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(string(glyphEmpty), cols))
	}
	if box.Width <= 0 || box.Height <= 0 {
		return toLines(grid)
	}

	for _, n := range nodes {
		col := cell(n.Position.X-box.X, box.Width, cols)
		row := cell(n.Position.Y-box.Y, box.Height, rows)
		glyph := glyphNode
		switch {
		case n.IsParent:
			if grid[row][col] != glyphEmpty {
				continue
			}
			glyph = glyphParent
		case n.Fixed:
			glyph = glyphFixed
		}
		grid[row][col] = glyph
	}
	return toLines(grid)
}

// cell maps an offset within size onto one of n cells.
func cell(offset, size float64, n int) int {
	i := int(math.Floor(offset / size * float64(n)))
	return min(max(i, 0), n-1)
}

func toLines(grid [][]rune) []string {
	lines := make([]string, len(grid))
	for i, row := range grid {
		lines[i] = string(row)
	}
	return lines
}
