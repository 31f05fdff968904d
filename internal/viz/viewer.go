package viz

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/san-kum/orbitals/internal/cloud"
	"github.com/san-kum/orbitals/internal/quantum"
)

const (
	MinPoints  = 100
	MaxPoints  = 20000
	PointsStep = 500
	CutoffStep = 0.01
	rotateStep = 0.15
)

// SnapshotFunc persists the current view and returns where it went.
type SnapshotFunc func(points []cloud.Point, state quantum.State, cam *Camera) (string, error)

// ViewerOptions configures a Viewer.
type ViewerOptions struct {
	State       quantum.State
	Points      int
	Cutoff      float64
	Seed        uint64
	Sampler     cloud.Options
	Theme       string
	FPS         int
	RotateSpeed float64
	Width       int
	Height      int
	Snapshot    SnapshotFunc
	Logger      zerolog.Logger
}

type tickMsg time.Time

type cloudMsg struct {
	gen    int
	state  quantum.State
	report cloud.Report
	err    error
	took   time.Duration
}

// Viewer is the interactive electron cloud browser. It generates clouds
// off the UI goroutine and renders them on a braille canvas.
type Viewer struct {
	opts    ViewerOptions
	log     zerolog.Logger
	states  []quantum.State
	cursor  int
	state   quantum.State
	points  []cloud.Point
	visible []cloud.Point
	report  cloud.Report
	summary cloud.Summary
	radial  []float64

	numPoints int
	cutoff    float64
	gen       int
	loading   bool

	cam      *Camera
	canvas   *Canvas
	mode     Mode
	axes     bool
	rotating bool
	theme    Theme
	styles   Styles

	width, height int
	status        string
	failed        bool
	showHelp      bool
}

var _ cloud.Presenter = (*Viewer)(nil)

func NewViewer(opts ViewerOptions) *Viewer {
	if opts.Points <= 0 {
		opts.Points = 3000
	}
	if opts.FPS <= 0 {
		opts.FPS = 20
	}
	if opts.Width <= 0 {
		opts.Width = 100
	}
	if opts.Height <= 0 {
		opts.Height = 36
	}
	if opts.State.Label == "" {
		opts.State = *quantum.Get(2, 1, 0)
	}
	theme := GetTheme(opts.Theme)
	v := &Viewer{
		opts:      opts,
		log:       opts.Logger,
		states:    quantum.All(),
		state:     opts.State,
		numPoints: clampInt(opts.Points, 1, MaxPoints),
		cutoff:    clampFloat(opts.Cutoff, 0, 1),
		cam:       NewCamera(),
		axes:      true,
		rotating:  true,
		theme:     theme,
		styles:    NewStyles(theme),
	}
	for i, s := range v.states {
		if s.Label == opts.State.Label {
			v.cursor = i
		}
	}
	v.resize(opts.Width, opts.Height)
	return v
}

// SetData replaces the displayed cloud.
func (v *Viewer) SetData(points []cloud.Point, state quantum.State) {
	v.state = state
	v.points = points
	v.visible = cloud.ApplyCutoff(points, v.cutoff)
	v.summary = cloud.Summarize(points)
	v.radial = cloud.RadialHistogram(points, 30).Counts
	v.cam.Fit(points)
	for i, s := range v.states {
		if s.Label == state.Label {
			v.cursor = i
		}
	}
}

// State is the state currently displayed.
func (v *Viewer) State() quantum.State { return v.state }

// Visible returns the points that pass the current cutoff.
func (v *Viewer) Visible() []cloud.Point { return v.visible }

func (v *Viewer) Init() tea.Cmd {
	return tea.Batch(v.generate(v.state), v.tick())
}

func (v *Viewer) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(v.opts.FPS), func(t time.Time) tea.Msg { return tickMsg(t) })
}

// generate samples a cloud off the UI goroutine. Each generation gets its
// own sampler, and stale results are dropped on arrival.
func (v *Viewer) generate(state quantum.State) tea.Cmd {
	v.gen++
	v.loading = true
	gen, seed, opts := v.gen, v.opts.Seed+uint64(v.gen), v.opts.Sampler
	req := cloud.RequestFor(state, v.numPoints, v.cutoff)
	return func() tea.Msg {
		start := time.Now()
		rep, err := cloud.NewSeeded(seed, opts).GenerateReport(context.Background(), req)
		return cloudMsg{gen: gen, state: state, report: rep, err: err, took: time.Since(start)}
	}
}

func (v *Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v, v.handleKey(msg)
	case tea.WindowSizeMsg:
		v.resize(msg.Width-42, msg.Height-6)
	case tickMsg:
		if v.rotating {
			v.cam.RotateY(v.opts.RotateSpeed)
		}
		return v, v.tick()
	case cloudMsg:
		v.receive(msg)
	}
	return v, nil
}

func (v *Viewer) receive(msg cloudMsg) {
	if msg.gen != v.gen {
		return
	}
	v.loading = false
	if msg.err != nil {
		v.setError(fmt.Sprintf("generation failed: %v", msg.err))
		v.log.Error().Err(msg.err).Str("state", msg.state.Label).Msg("cloud generation failed")
		return
	}
	v.report = msg.report
	v.SetData(msg.report.Points, msg.state)
	v.log.Debug().
		Str("state", msg.state.Label).
		Int("requested", msg.report.Requested).
		Int("accepted", msg.report.Accepted).
		Int("attempts", msg.report.Attempts).
		Int("padded", msg.report.Padded).
		Dur("took", msg.took).
		Msg("cloud generated")
	if len(msg.report.Points) == 0 {
		v.setError("no data to display")
		return
	}
	v.setStatus(fmt.Sprintf("%s: %d points in %s", msg.state.Label, len(msg.report.Points), msg.took.Round(time.Millisecond)))
}

func (v *Viewer) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case "n", "]", "tab":
		return v.selectState(v.cursor + 1)
	case "p", "[", "shift+tab":
		return v.selectState(v.cursor - 1)
	case "left", "h":
		v.cam.RotateY(-rotateStep)
	case "right", "l":
		v.cam.RotateY(rotateStep)
	case "up", "k":
		v.cam.RotateX(-rotateStep)
	case "down", "j":
		v.cam.RotateX(rotateStep)
	case "+", "=":
		v.cam.ZoomIn()
	case "-", "_":
		v.cam.ZoomOut()
	case ">", ".":
		return v.setPoints(v.numPoints + PointsStep)
	case "<", ",":
		return v.setPoints(v.numPoints - PointsStep)
	case "c":
		v.setCutoff(v.cutoff + CutoffStep)
	case "x":
		v.setCutoff(v.cutoff - CutoffStep)
	case "m":
		v.mode = (v.mode + 1) % 2
		v.setStatus("mode: " + v.mode.String())
	case "a":
		v.axes = !v.axes
	case " ":
		v.rotating = !v.rotating
	case "t":
		v.theme = NextTheme(v.theme.Name)
		v.styles = NewStyles(v.theme)
		v.setStatus("theme: " + v.theme.Name)
	case "r":
		v.cam.Reset()
		v.setStatus("view reset")
	case "g":
		return v.generate(v.state)
	case "s":
		v.snapshot()
	case "?":
		v.showHelp = !v.showHelp
	}
	return nil
}

func (v *Viewer) selectState(i int) tea.Cmd {
	n := len(v.states)
	v.cursor = ((i % n) + n) % n
	return v.generate(v.states[v.cursor])
}

func (v *Viewer) setPoints(n int) tea.Cmd {
	n = clampInt(n, MinPoints, MaxPoints)
	if n == v.numPoints {
		return nil
	}
	v.numPoints = n
	return v.generate(v.state)
}

// setCutoff refilters the current cloud without resampling.
func (v *Viewer) setCutoff(c float64) {
	v.cutoff = clampFloat(c, 0, 1)
	v.visible = cloud.ApplyCutoff(v.points, v.cutoff)
	v.setStatus(fmt.Sprintf("cutoff %.2f: %d of %d points", v.cutoff, len(v.visible), len(v.points)))
}

func (v *Viewer) snapshot() {
	if v.opts.Snapshot == nil {
		v.setError("snapshots are disabled")
		return
	}
	path, err := v.opts.Snapshot(v.visible, v.state, v.cam)
	if err != nil {
		v.setError(fmt.Sprintf("snapshot failed: %v", err))
		v.log.Error().Err(err).Msg("snapshot failed")
		return
	}
	v.setStatus("saved " + path)
	v.log.Info().Str("path", path).Str("state", v.state.Label).Msg("snapshot saved")
}

func (v *Viewer) setStatus(s string) { v.status, v.failed = s, false }
func (v *Viewer) setError(s string)  { v.status, v.failed = s, true }

func (v *Viewer) resize(w, h int) {
	v.width, v.height = max(w, 20), max(h, 8)
	v.canvas = NewCanvas(v.width, v.height)
}

func (v *Viewer) draw() {
	v.canvas.Clear()
	if v.axes {
		RenderAxes(v.canvas, v.cam.Extent*0.8, v.cam, v.theme)
	}
	RenderCloud(v.canvas, v.visible, v.cam, v.mode, v.theme)
}

func (v *Viewer) View() string {
	v.draw()
	s := v.styles

	var b strings.Builder
	b.WriteString(s.Title.Render(v.state.Name) + "\n")
	b.WriteString(s.Subtle.Render(v.state.Description) + "\n\n")
	v.row(&b, "n, l, m", fmt.Sprintf("%d, %d, %d", v.state.N, v.state.L, v.state.M))
	v.row(&b, "shape", quantum.ShapeDescription(v.state.L))
	v.row(&b, "magnetic", quantum.MagneticDescription(v.state.L, v.state.M))
	b.WriteString("\n")
	v.row(&b, "points", fmt.Sprintf("%d / %d", len(v.visible), v.numPoints))
	v.row(&b, "cutoff", fmt.Sprintf("%.2f", v.cutoff))
	v.row(&b, "mode", v.mode.String())
	v.row(&b, "zoom", fmt.Sprintf("%.2fx", v.cam.Zoom))
	rate := v.report.AcceptanceRate()
	v.row(&b, "acceptance", s.ProgressBar(rate, 14)+fmt.Sprintf(" %.0f%%", rate*100))
	if len(v.points) > 0 {
		v.row(&b, "mean r", fmt.Sprintf("%.2f ± %.2f", v.summary.MeanRadius, v.summary.StdRadius))
		b.WriteString("\n" + s.Label.Render("radial") + s.Sparkline(v.radial, 22) + "\n")
	}

	b.WriteString("\n")
	for i, st := range v.states {
		line := fmt.Sprintf("%-8s %s", st.Label, quantum.OrbitalName(st.L))
		if i == v.cursor {
			b.WriteString(s.Active.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + s.Subtle.Render(line) + "\n")
		}
	}

	status := v.status
	if v.loading {
		status = "generating " + v.states[v.cursor].Label + "..."
	}
	if v.failed {
		b.WriteString("\n" + s.Error.Render(status) + "\n")
	} else {
		b.WriteString("\n" + s.Status.Render(status) + "\n")
	}
	b.WriteString(s.KeyHint.Render("n/p state  ←↑↓→ rotate  +/- zoom\n</> points  c/x cutoff  m mode\nspace spin  s save  ? help  q quit"))

	main := lipgloss.JoinHorizontal(lipgloss.Top, v.canvas.Render(), s.Panel.Render(b.String()))
	if v.showHelp {
		return helpText + "\n" + main
	}
	return main
}

func (v *Viewer) row(b *strings.Builder, label, value string) {
	b.WriteString(v.styles.Label.Render(label) + v.styles.Value.Render(value) + "\n")
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  n / ]     - Next orbital            ║
║  p / [     - Previous orbital        ║
║  Arrows    - Rotate                  ║
║  + / -     - Zoom in / out           ║
║  > / <     - More / fewer points     ║
║  c / x     - Raise / lower cutoff    ║
║  m         - Points / density mode   ║
║  a         - Toggle axes             ║
║  Space     - Toggle auto-rotation    ║
║  t         - Cycle themes            ║
║  r         - Reset view              ║
║  g         - Resample                ║
║  s         - Save SVG snapshot       ║
║  q         - Quit                    ║
╚══════════════════════════════════════╝`

func clampInt(v, lo, hi int) int { return min(max(v, lo), hi) }

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return min(max(v, lo), hi)
}
