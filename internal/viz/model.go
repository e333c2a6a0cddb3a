package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/walksim/internal/playback"
	"github.com/san-kum/walksim/internal/walk"
)

const (
	minChartWidth = 20
	panelWidth    = 44
)

type TickMsg time.Time

// Model is the interactive playback screen. Keys drive the session; the
// chart is redrawn from the frame sink on every tick.
type Model struct {
	ctx       context.Context
	session   *playback.Session
	sink      *FrameSink
	frameRate int
	theme     Theme
	styles    styles
	frame     playback.Frame
	haveFrame bool
	width     int
	height    int
	status    string
	showHelp  bool
}

// NewModel wires a sink into the session's controller and returns the screen.
func NewModel(ctx context.Context, session *playback.Session, frameRate int) Model {
	if frameRate < 1 {
		frameRate = 30
	}
	sink := NewFrameSink()
	session.Controller().AddObserver(sink)
	m := Model{
		ctx:       ctx,
		session:   session,
		sink:      sink,
		frameRate: frameRate,
		theme:     ThemeDefault,
		styles:    newStyles(ThemeDefault),
		width:     defaultChartWidth + panelWidth,
		height:    defaultChartHeight + 8,
	}
	if f, ok := session.Controller().Frame(); ok {
		m.frame, m.haveFrame = f, true
	}
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles keys and redraw ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		ctrl := m.session.Controller()
		m.status = ""
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			ctrl.Pause()
			return m, tea.Quit
		case " ", "p":
			m.report(ctrl.Toggle())
		case "r":
			ctrl.Reset()
		case "n":
			m.report(m.session.Regenerate(m.ctx))
		case "d":
			p := m.session.Params()
			p.Kind = p.Kind.Next()
			m.report(m.session.SetParams(m.ctx, p))
		case "m":
			mode := walk.Average
			if m.session.Mode() == walk.Average {
				mode = walk.Cumulative
			}
			m.report(m.session.SetMode(m.ctx, mode))
		case "up", "k":
			p := m.session.Params()
			p.Steps *= 2
			m.report(m.session.SetParams(m.ctx, p))
		case "down", "j":
			p := m.session.Params()
			p.Steps /= 2
			m.report(m.session.SetParams(m.ctx, p))
		case "+", "=":
			m.report(ctrl.SetSpeed(clampSpeed(ctrl.State().Interval / 2)))
		case "-", "_":
			m.report(ctrl.SetSpeed(clampSpeed(ctrl.State().Interval * 2)))
		case "t":
			m.theme = NextTheme(m.theme)
			m.styles = newStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
		m.refresh()
	case TickMsg:
		m.refresh()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) report(err error) {
	if err != nil {
		m.status = err.Error()
	}
}

func (m *Model) refresh() {
	if f, ok := m.sink.Latest(); ok {
		m.frame, m.haveFrame = f, true
	}
}

func clampSpeed(d time.Duration) time.Duration {
	return playback.ClampInterval(int(d / time.Millisecond))
}

// View renders the chart next to the status panel.
func (m Model) View() string {
	if !m.haveFrame {
		return "building trajectory...\n"
	}
	f := m.frame
	s := m.styles

	chartWidth := m.width - panelWidth - 12
	if chartWidth < minChartWidth {
		chartWidth = minChartWidth
	}
	chartHeight := m.height - 8
	if chartHeight < 5 {
		chartHeight = 5
	}
	chart := s.chart.Render(Chart(f.Points, ChartOptions{
		Width:   chartWidth,
		Height:  chartHeight,
		Caption: Caption(f.Params, f.Presenting, f.Cursor),
		Color:   true,
	}))

	var b strings.Builder
	b.WriteString(s.header.Render(strings.ToUpper(f.Params.Kind.Label())+" WALK") + "\n")
	b.WriteString(s.status(f.Mode).Render(strings.ToUpper(f.Mode.String())) + "\n\n")

	state := m.session.Controller().State()
	row := func(label, value string) {
		b.WriteString(s.label.Render(label) + s.value.Render(value) + "\n")
	}
	row("Law", f.Params.Kind.Description())
	row("Mode", f.Presenting.String())
	row("Step", fmt.Sprintf("%d / %d", f.Cursor, f.Steps))
	row("Interval", state.Interval.String())
	row("Mean", fmt.Sprintf("%.4f", f.Mean))
	if n := len(f.Points); n > 0 {
		last := f.Points[n-1]
		row("Walk", s.walk.Render(fmt.Sprintf("%.4f", last.Statistic)))
		row("Expected", s.expected.Render(fmt.Sprintf("%.4f", last.Reference)))
		row("Deviation", fmt.Sprintf("%.4f", last.Statistic-last.Reference))
	}
	if m.status != "" {
		b.WriteString("\n" + s.err.Render(m.status) + "\n")
	}
	b.WriteString(s.help.Render("─────────────────────\nSP:Play/Pause R:Reset Q:Quit\nD:Law M:Mode N:New ?:Help"))

	main := lipgloss.JoinHorizontal(lipgloss.Top, chart, s.panel.Render(b.String()))
	if m.showHelp {
		return helpText + "\n\n" + main
	}
	return main
}

// Run starts the interactive program and blocks until the user quits.
func Run(ctx context.Context, session *playback.Session, frameRate int) error {
	p := tea.NewProgram(NewModel(ctx, session, frameRate), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	session.Controller().Pause()
	return err
}

var helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space/P  - Play/Pause               ║
║  R        - Reset to step 0          ║
║  N        - Draw a new path          ║
║  D        - Next distribution        ║
║  M        - Sum / running average    ║
║  Up/K     - Double the steps         ║
║  Down/J   - Halve the steps          ║
║  +/-      - Faster / slower          ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`
