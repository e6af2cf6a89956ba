package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/TFMV/springgraph/config"
	"github.com/TFMV/springgraph/ingest"
	"github.com/TFMV/springgraph/models"
	"github.com/TFMV/springgraph/render"
	"github.com/TFMV/springgraph/sim"
)

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	styleStatus = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleError  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// frameMsg asks the model to advance and redraw.
type frameMsg time.Time

// watchModel is the bubbletea host loop: every frame advances the graph by
// the wall time since the previous frame, clamps it and redraws.
type watchModel struct {
	name     string
	result   *ingest.Result
	runner   *sim.Runner
	clock    *sim.Clock
	cfg      config.Config
	interval time.Duration
	ascii    *render.ASCIIRenderer

	cols, rows int
	paused     bool
	last       sim.StepInfo
	err        error
}

func newWatchModel(name string, res *ingest.Result, cfg config.Config, clock *sim.Clock, runner *sim.Runner) watchModel {
	return watchModel{
		name:     name,
		result:   res,
		runner:   runner,
		clock:    clock,
		cfg:      cfg,
		interval: time.Second / time.Duration(cfg.Run.FPS),
		ascii:    &render.ASCIIRenderer{},
		cols:     80,
		rows:     24,
	}
}

func (m watchModel) frame() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m watchModel) Init() tea.Cmd {
	m.clock.Restart()
	return m.frame()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
			if !m.paused {
				// Time spent paused must not turn into one giant step.
				m.clock.Restart()
			}
		}
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width, 10)
		m.rows = max(msg.Height-3, 5)
	case frameMsg:
		if m.paused || m.err != nil {
			return m, m.frame()
		}
		info, err := m.runner.Step()
		if err != nil {
			m.err = err
			return m, m.frame()
		}
		m.last = info
		return m, m.frame()
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("springgraph · " + m.name))
	b.WriteString("\n")

	snap := models.Snapshot(m.name, m.result.Graph, m.result.Labels, m.cfg.Viewport.Width, m.cfg.Viewport.Height)
	opts := render.NewDefaultOptions("ascii")
	opts.Width = m.cfg.Viewport.Width
	opts.Height = m.cfg.Viewport.Height
	opts.Columns = m.cols
	opts.Rows = m.rows
	if out, err := m.ascii.Render(snap, opts); err == nil {
		b.Write(out)
	}

	if m.err != nil {
		b.WriteString(styleError.Render("error: " + m.err.Error()))
		return b.String()
	}

	state := "running"
	if m.paused {
		state = "paused"
	}
	b.WriteString(styleStatus.Render(fmt.Sprintf("%s  step %d  dt %.4fs  max move %.3f  ·  space pause  q quit",
		state, m.last.Step, m.last.Delta, m.last.Stats.MaxDisplacement)))
	return b.String()
}

func (c *CLI) watchCommand() *cobra.Command {
	var (
		flags simFlags
		fps   int
	)

	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Animate the simulation in the terminal using wall-clock time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("fps") {
				cfg.Run.FPS = fps
			}
			if err := flags.apply(cmd, &cfg); err != nil {
				return err
			}

			res, err := c.load(args[0], cfg)
			if err != nil {
				return err
			}
			defer res.Graph.Destroy()

			clock := sim.NewClock()
			runner := sim.NewRunner(res.Graph, clock, viewportFor(cfg), c.Logger)
			m := newWatchModel(args[0], res, cfg, clock, runner)

			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return err
			}
			if fm, ok := final.(watchModel); ok {
				c.Logger.Info("watch finished", "steps", fm.runner.Steps())
				return fm.err
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&fps, "fps", 0, "frames per second (default from config)")
	flags.register(cmd)
	return cmd
}
