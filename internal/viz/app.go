package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/qsim/internal/config"
	"github.com/san-kum/qsim/internal/quantum"
)

type keyMap struct {
	Up, Down, Left, Right key.Binding
	Control, NextControl  key.Binding
	Apply, Reset, Measure key.Binding
	MoreShots, LessShots  key.Binding
	Qubits                key.Binding
	Matrix, Help, Quit    key.Binding
}

var keys = keyMap{
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev gate")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next gate")),
	Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "target -")),
	Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "target +")),
	Control:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "controlled")),
	NextControl: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "control qubit")),
	Apply:       key.NewBinding(key.WithKeys("enter", "a"), key.WithHelp("enter", "apply")),
	Reset:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Measure:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "measure")),
	MoreShots:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "shots")),
	LessShots:   key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "shots")),
	Qubits:      key.NewBinding(key.WithKeys("1", "2", "3"), key.WithHelp("1-3", "qubits")),
	Matrix:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "matrix")),
	Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Apply, k.Control, k.Reset, k.Measure, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Control, k.NextControl, k.Apply, k.Reset},
		{k.Measure, k.MoreShots, k.LessShots, k.Qubits},
		{k.Matrix, k.Help, k.Quit},
	}
}

// App is the interactive circuit builder.
type App struct {
	sim        *quantum.Simulator
	seed       int64
	gates      []quantum.Gate
	cursor     int
	target     int
	controlled bool
	control    int
	shots      int
	counts     []int
	showMatrix bool
	status     string
	err        error
	help       help.Model
	width      int
}

// NewApp starts an empty register of numQubits (clamped to 1..3). A zero
// seed picks one from the clock.
func NewApp(numQubits int, shots int, seed int64) (App, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	a := App{
		seed:  seed,
		gates: quantum.Gates(),
		shots: config.ClampShots(shots),
		help:  help.New(),
		width: 80,
	}
	if err := a.newRegister(clampQubits(numQubits)); err != nil {
		return App{}, err
	}
	return a, nil
}

func clampQubits(n int) int {
	if n < 1 {
		return 1
	}
	if n > config.MaxUIQubits {
		return config.MaxUIQubits
	}
	return n
}

func (a *App) newRegister(n int) error {
	sim, err := quantum.New(n, quantum.WithSeed(a.seed))
	if err != nil {
		return err
	}
	a.sim = sim
	a.target = 0
	a.control = 0
	if n > 1 {
		a.control = 1
	} else {
		a.controlled = false
	}
	a.err = nil
	return a.sample()
}

func (a *App) sample() error {
	counts, err := a.sim.Counts(a.shots)
	if err != nil {
		return err
	}
	a.counts = counts
	return nil
}

// Simulator exposes the register the app is driving.
func (a App) Simulator() *quantum.Simulator { return a.sim }

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.help.Width = msg.Width
	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (App, tea.Cmd) {
	n := a.sim.NumQubits()
	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, keys.Up):
		a.cursor = (a.cursor - 1 + len(a.gates)) % len(a.gates)
	case key.Matches(msg, keys.Down):
		a.cursor = (a.cursor + 1) % len(a.gates)
	case key.Matches(msg, keys.Left):
		a.target = (a.target - 1 + n) % n
		a.moveControlOffTarget()
	case key.Matches(msg, keys.Right):
		a.target = (a.target + 1) % n
		a.moveControlOffTarget()
	case key.Matches(msg, keys.Control):
		if n < 2 {
			a.status = "controlled gates need at least 2 qubits"
			break
		}
		a.controlled = !a.controlled
	case key.Matches(msg, keys.NextControl):
		if n < 2 {
			break
		}
		a.control = (a.control + 1) % n
		if a.control == a.target {
			a.control = (a.control + 1) % n
		}
	case key.Matches(msg, keys.Apply):
		a.apply()
	case key.Matches(msg, keys.Reset):
		a.sim.Reset()
		a.err = nil
		a.status = "register reset"
		a.setErr(a.sample())
	case key.Matches(msg, keys.Measure):
		a.setErr(a.sample())
		a.status = fmt.Sprintf("sampled %d shots", a.shots)
	case key.Matches(msg, keys.MoreShots):
		a.shots = config.ClampShots(a.shots + config.ShotsStep)
		a.setErr(a.sample())
	case key.Matches(msg, keys.LessShots):
		a.shots = config.ClampShots(a.shots - config.ShotsStep)
		a.setErr(a.sample())
	case key.Matches(msg, keys.Qubits):
		q := int(msg.String()[0] - '0')
		if q != n {
			a.setErr(a.newRegister(q))
			a.status = fmt.Sprintf("new %d-qubit register", q)
		}
	case key.Matches(msg, keys.Matrix):
		a.showMatrix = !a.showMatrix
	case key.Matches(msg, keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	}
	return a, nil
}

// moveControlOffTarget keeps the control on a different qubit than the target.
func (a *App) moveControlOffTarget() {
	n := a.sim.NumQubits()
	if n > 1 && a.control == a.target {
		a.control = (a.target + 1) % n
	}
}

func (a *App) apply() {
	g := a.gates[a.cursor]
	var ctrl *int
	if a.controlled {
		c := a.control
		ctrl = &c
	}
	if err := a.sim.ApplyGate(g.Name, a.target, ctrl); err != nil {
		a.err = err
		return
	}
	a.err = nil
	ops := a.sim.Circuit()
	a.status = "applied " + ops[len(ops)-1].String()
	a.setErr(a.sample())
}

func (a *App) setErr(err error) {
	if err != nil {
		a.err = err
	}
}

func (a App) View() string {
	n := a.sim.NumQubits()
	var b strings.Builder

	b.WriteString(Title.Render("⚛  quantum circuit simulator"))
	b.WriteString(Subtle.Render(fmt.Sprintf("   %d qubits · %d shots", n, a.shots)))
	b.WriteString("\n\n")

	var gates strings.Builder
	for i, g := range a.gates {
		line := fmt.Sprintf("%s %-14s", g.Glyph, g.Title)
		if i == a.cursor {
			gates.WriteString(Selected.Render("▸ "+line) + "\n")
		} else {
			gates.WriteString("  " + line + "\n")
		}
	}
	gates.WriteString("\n" + MetricLabel.Render("target  ") + MetricValue.Render(fmt.Sprintf("Q%d", a.target)) + "\n")
	if a.controlled {
		gates.WriteString(MetricLabel.Render("control ") + MetricValue.Render(fmt.Sprintf("Q%d", a.control)) + "\n")
	} else {
		gates.WriteString(MetricLabel.Render("control ") + Subtle.Render("off") + "\n")
	}
	gates.WriteString("\n" + Subtle.Render(a.gates[a.cursor].Description))

	var circuit strings.Builder
	circuit.WriteString(Title.Render("circuit") + "\n")
	lines := CircuitLines(a.sim.Circuit())
	if len(lines) == 0 {
		circuit.WriteString(Subtle.Render("No gates applied yet") + "\n")
	}
	for _, l := range lines {
		circuit.WriteString(l + "\n")
	}
	circuit.WriteString("\n" + Title.Render("state") + "\n")
	for _, l := range StateLines(a.sim.State().Amplitudes(), n) {
		circuit.WriteString(l + "\n")
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, Panel.Render(gates.String()), Panel.Render(circuit.String())))
	b.WriteString("\n")

	barW := 30
	if a.width > 0 && a.width < 3*barW {
		barW = a.width / 3
	}
	b.WriteString(Title.Render("probabilities") + "\n")
	b.WriteString(ProbabilityBars(a.sim.State().Probabilities(), n, barW))
	b.WriteString(Title.Render("measurements") + "\n")
	b.WriteString(CountBars(a.counts, n, a.shots, barW))

	if a.showMatrix {
		g := a.gates[a.cursor]
		b.WriteString("\n" + Title.Render(g.Title+" matrix") + "\n")
		b.WriteString(FormatMatrix(g.Matrix))
	}

	b.WriteString("\n")
	switch {
	case a.err != nil:
		b.WriteString(StatusError.Render("error: "+a.err.Error()) + "\n")
	case a.status != "":
		b.WriteString(StatusOK.Render(a.status) + "\n")
	}
	b.WriteString(a.help.View(keys))
	return b.String()
}

// RunInteractive opens the circuit builder full screen.
func RunInteractive(numQubits, shots int, seed int64) error {
	app, err := NewApp(numQubits, shots, seed)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}
