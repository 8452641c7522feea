// Package viz renders the curtain live in the terminal: a braille canvas for
// the cloth, a lipgloss stats panel, and mouse input mapped onto the
// simulation pointer (left button drags, right button tears).
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/curtain/internal/cloth"
	"github.com/san-kum/curtain/internal/config"
	"github.com/san-kum/curtain/internal/metrics"
)

const (
	defaultCols     = 80
	defaultRows     = 24
	historyCapacity = 300
	panelCells      = 40 // terminal columns reserved for the stats panel
)

type TickMsg time.Time

// Model is the bubbletea model for the live curtain view.
type Model struct {
	cfg  *config.Config
	grid *cloth.Grid

	canvas *Canvas
	view   Viewport

	pointer  cloth.Pointer
	running  bool
	showHelp bool
	t        float64

	// tuned parameter values; they take effect when the grid is rebuilt
	params    map[string]float64
	paramKeys []string
	selected  int

	stretchHist []float64
}

// NewModel builds the grid from cfg and sizes the canvas to the default
// terminal footprint; WindowSizeMsg resizes it later. The config is copied:
// parameter tuning never touches the caller's.
func NewModel(cfg *config.Config) (Model, error) {
	own := *cfg
	cfg = &own
	grid, err := cloth.NewGrid(cfg.Params())
	if err != nil {
		return Model{}, err
	}
	canvas := NewCanvas(defaultCols-panelCells, defaultRows)
	return Model{
		cfg:    cfg,
		grid:   grid,
		canvas: canvas,
		view:   Viewport{WorldW: cfg.Width, WorldH: cfg.Height, Canvas: canvas},
		params: map[string]float64{
			"gravity":   cfg.Gravity,
			"stiffness": cfg.Stiffness,
		},
		paramKeys:   []string{"gravity", "stiffness"},
		running:     true,
		stretchHist: make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	fps := m.cfg.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "?":
			m.showHelp = !m.showHelp
		}

	case tea.MouseMsg:
		m.pointer.X, m.pointer.Y = m.view.CellToWorld(msg.X, msg.Y)
		switch msg.Action {
		case tea.MouseActionPress:
			switch msg.Button {
			case tea.MouseButtonLeft:
				m.pointer.Drag = true
			case tea.MouseButtonRight:
				m.pointer.Tear = true
			}
		case tea.MouseActionRelease:
			m.pointer.Drag = false
			m.pointer.Tear = false
		}

	case tea.WindowSizeMsg:
		cols := msg.Width - panelCells
		if cols < 20 {
			cols = 20
		}
		rows := msg.Height - 1
		if rows < 8 {
			rows = 8
		}
		m.canvas = NewCanvas(cols, rows)
		m.view.Canvas = m.canvas

	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// step advances the simulation one frame with the current pointer sample.
func (m *Model) step() {
	m.grid.Step(m.cfg.Dt(), m.pointer)
	m.t += m.cfg.Dt()

	sum, n := metrics.FrameStretch(m.grid)
	mean := 0.0
	if n > 0 {
		mean = sum / float64(n)
	}
	m.stretchHist = append(m.stretchHist, mean)
	if len(m.stretchHist) > historyCapacity {
		m.stretchHist = m.stretchHist[1:]
	}
}

func (m *Model) cycleParam() {
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

// adjustParam scales the selected tuned value. Link stiffness is fixed at
// construction, so nothing changes until the next reset.
func (m *Model) adjustParam(factor float64) {
	key := m.paramKeys[m.selected]
	val := m.params[key] * factor
	if key == "stiffness" && val > 1 {
		val = 1
	}
	m.params[key] = val
}

// reset rebuilds the grid with the tuned parameters; torn links come back.
func (m *Model) reset() {
	m.cfg.Gravity = m.params["gravity"]
	m.cfg.Stiffness = m.params["stiffness"]
	grid, err := cloth.NewGrid(m.cfg.Params())
	if err != nil {
		return
	}
	m.grid = grid
	m.t = 0
	m.stretchHist = m.stretchHist[:0]
}

func (m *Model) draw() {
	m.canvas.Clear()
	for _, s := range m.grid.Segments() {
		x0, y0 := m.view.ToPixel(s.X1, s.Y1)
		x1, y1 := m.view.ToPixel(s.X2, s.Y2)
		m.canvas.Line(x0, y0, x1, y1)
	}
	for i := range m.grid.Points {
		m.canvas.Set(m.view.ToPixel(m.grid.Points[i].X, m.grid.Points[i].Y))
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("CURTAIN") + "\n")
	if m.running {
		s.WriteString("RUNNING\n\n")
	} else {
		s.WriteString("PAUSED\n\n")
	}

	if len(m.stretchHist) > 1 {
		chart := asciigraph.Plot(m.stretchHist,
			asciigraph.Height(4),
			asciigraph.Width(28),
			asciigraph.Caption("mean stretch"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	torn := m.grid.InitialLinkCount() - m.grid.LinkCount()
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.1fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Points") + valueStyle.Render(fmt.Sprintf("%d", len(m.grid.Points))) + "\n")
	s.WriteString(labelStyle.Render("Links") + valueStyle.Render(fmt.Sprintf("%d", m.grid.LinkCount())) + "\n")
	if torn > 0 {
		s.WriteString(labelStyle.Render("Torn") + alertStyle.Render(fmt.Sprintf("%d", torn)) + "\n")
	} else {
		s.WriteString(labelStyle.Render("Torn") + valueStyle.Render("0") + "\n")
	}
	s.WriteString("\nPARAMETERS (applied on reset)\n")
	for i, k := range m.paramKeys {
		line := fmt.Sprintf("%-10s %.2f", k, m.params[k])
		if i == m.selected {
			s.WriteString(activeStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("\n──────────────────────\nmouse-L: drag  mouse-R: tear\ntab: select  ↑/↓: tune\nSP: pause  R: reset  Q: quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelStyle.Render(s.String()))

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD / MOUSE            ║
╠══════════════════════════════════════╣
║  Left drag   - pull cloth            ║
║  Right drag  - tear cloth            ║
║  Space       - pause/resume          ║
║  Tab         - cycle parameters      ║
║  Up/K        - raise parameter (+5%) ║
║  Down/J      - lower parameter (-5%) ║
║  R           - reset (applies tuning)║
║  Q           - quit                  ║
║  ?           - toggle this help      ║
╚══════════════════════════════════════╝
` + "\n" + mainView
	}
	return mainView
}

// Run starts the live view with mouse reporting enabled.
func Run(cfg *config.Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}
