package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	giiker "github.com/SeamusWaldron/giiker_ble_library"
	"github.com/SeamusWaldron/giiker_ble_library/internal/store"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch cube state changes live",
	Long: `Start a live TUI that follows the cube as you turn it: the colored
net updates with every move, alongside the last moves, battery level
and lifetime move counter.

Keyboard shortcuts:
  b       - Refresh the battery level
  r       - Re-read the cube state
  q/Esc   - Quit

A session row is recorded around the connection.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	solvedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Messages
type connectedMsg struct {
	cube    *giiker.Cube
	battery int // -1 when the initial query failed
}
type connectErrMsg struct{ err error }
type moveCountMsg struct{ count uint32 }
type errMsg struct{ err error }

// cubeEventMsg wraps driver callback events delivered over the event
// channel, so exactly one listener command drains it.
type cubeEventMsg struct{ event tea.Msg }

type stateMsg struct{ state giiker.CubeState }
type moveMsg struct{ move giiker.Move }
type batteryMsg struct{ level int }
type solvedMsg struct{}
type disconnectedMsg struct{ err error }

// Model
type watchModel struct {
	// BLE
	cube       *giiker.Cube
	connected  bool
	deviceName string
	events     chan tea.Msg

	// Database
	db        *store.DB
	sessionID string

	// Cube state
	facelets  string
	solved    bool
	moves     []giiker.Move
	solves    int
	battery   int
	moveCount uint32

	// UI
	spinner  spinner.Model
	err      error
	quitting bool
}

func newWatchModel(db *store.DB) *watchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &watchModel{
		db:      db,
		battery: -1,
		events:  make(chan tea.Msg, 100),
		spinner: sp,
	}
}

func (m *watchModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.connect(),
		m.listenForEvents(),
	)
}

// listenForEvents delivers the next driver callback event. It re-arms
// itself from the cubeEventMsg case in Update.
func (m *watchModel) listenForEvents() tea.Cmd {
	return func() tea.Msg {
		return cubeEventMsg{event: <-m.events}
	}
}

func (m *watchModel) connect() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		opts := []giiker.Option{giiker.WithLogger(newLogger())}

		var cube *giiker.Cube
		var err error
		if deviceAddr == "" {
			cube, err = giiker.ConnectFirst(ctx, opts...)
		} else {
			cube, err = giiker.Connect(ctx, giiker.Device{Address: deviceAddr}, opts...)
		}
		if err != nil {
			return connectErrMsg{err: err}
		}

		// Wire driver callbacks into the event channel. Full when the
		// TUI falls behind; drop rather than block the BLE stack.
		push := func(event tea.Msg) {
			select {
			case m.events <- event:
			default:
			}
		}
		cube.OnState(func(s giiker.CubeState) { push(stateMsg{state: s}) })
		cube.OnMove(func(mv giiker.Move) { push(moveMsg{move: mv}) })
		cube.OnBattery(func(level int) { push(batteryMsg{level: level}) })
		cube.OnSolved(func() { push(solvedMsg{}) })
		cube.OnDisconnect(func(err error) { push(disconnectedMsg{err: err}) })

		battery := -1
		if level, err := cube.Battery(ctx); err == nil {
			battery = level
		}

		return connectedMsg{cube: cube, battery: battery}
	}
}

func (m *watchModel) queryBattery() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// The refreshed level arrives through the OnBattery event.
		if _, err := m.cube.Battery(ctx); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func (m *watchModel) queryMoveCount() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		count, err := m.cube.MoveCount(ctx)
		if err != nil {
			return errMsg{err: err}
		}
		return moveCountMsg{count: count}
	}
}

func (m *watchModel) refreshState() tea.Cmd {
	return func() tea.Msg {
		// The fresh state arrives through the OnState event.
		if _, err := m.cube.RequestState(); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			m.finish()
			return m, tea.Quit

		case "b":
			if m.connected {
				return m, m.queryBattery()
			}

		case "r":
			if m.connected {
				return m, tea.Batch(m.refreshState(), m.queryMoveCount())
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case connectedMsg:
		m.connected = true
		m.cube = msg.cube
		m.deviceName = msg.cube.DeviceName()
		m.battery = msg.battery
		if facelets, err := msg.cube.Facelets(); err == nil {
			m.facelets = facelets
			m.solved = msg.cube.IsSolved()
		}
		m.startSession()
		return m, m.queryMoveCount()

	case connectErrMsg:
		m.err = msg.err

	case moveCountMsg:
		m.moveCount = msg.count

	case errMsg:
		m.err = msg.err

	case cubeEventMsg:
		m.handleEvent(msg.event)
		return m, m.listenForEvents()
	}

	return m, nil
}

// handleEvent applies one driver callback event to the model.
func (m *watchModel) handleEvent(event tea.Msg) {
	switch event := event.(type) {
	case stateMsg:
		m.solved = event.state.IsSolved()
		projected, err := giiker.ProjectState(event.state)
		if err != nil {
			m.err = err
			return
		}
		m.facelets = projected.FaceletString()

	case moveMsg:
		m.moves = append(m.moves, event.move)
		if m.moveCount > 0 {
			m.moveCount++
		}

	case batteryMsg:
		m.battery = event.level

	case solvedMsg:
		m.solves++

	case disconnectedMsg:
		m.connected = false
		m.err = event.err
	}
}

// startSession records the device and opens a session row for it.
func (m *watchModel) startSession() {
	device := m.cube.Device()

	registry := store.NewDeviceRepository(m.db)
	if err := registry.Upsert(device.Address, m.cube.DeviceName(), int(device.RSSI)); err != nil {
		m.err = err
		return
	}

	var batteryStart *int
	if m.battery >= 0 {
		level := m.battery
		batteryStart = &level
	}

	id, err := store.NewSessionRepository(m.db).Start(device.Address, batteryStart)
	if err != nil {
		m.err = err
		return
	}
	m.sessionID = id
}

// finish closes the session, stores the final snapshot and disconnects.
// Errors are dropped; the program is exiting.
func (m *watchModel) finish() {
	if m.sessionID != "" {
		var batteryEnd *int
		if m.battery >= 0 {
			level := m.battery
			batteryEnd = &level
		}
		store.NewSessionRepository(m.db).End(m.sessionID, batteryEnd)

		if m.facelets != "" {
			var moveCount *int64
			if m.moveCount > 0 {
				mc := int64(m.moveCount)
				moveCount = &mc
			}
			store.NewSnapshotRepository(m.db).Save(
				m.cube.Device().Address, m.facelets, m.solved, batteryEnd, moveCount)
		}
	}

	if m.cube != nil {
		m.cube.Close()
	}
}

func (m *watchModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("GiiKER Watch"))
	b.WriteString("\n\n")

	if !m.connected {
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(m.spinner.View())
			b.WriteString(" Scanning for GiiKER cubes...")
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("Keys: q=quit"))
		b.WriteString("\n")
		return b.String()
	}

	status := fmt.Sprintf("Connected: %s", m.deviceName)
	if m.battery >= 0 {
		status += fmt.Sprintf("  Battery: %d%%", m.battery)
	}
	if m.moveCount > 0 {
		status += fmt.Sprintf("  Lifetime moves: %d", m.moveCount)
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteString("\n\n")

	b.WriteString(RenderNet(m.facelets))
	b.WriteString("\n")

	if m.solved {
		b.WriteString(solvedStyle.Render("SOLVED"))
		b.WriteString("\n")
	}

	if len(m.moves) > 0 {
		b.WriteString(fmt.Sprintf("Moves this session: %d\n", len(m.moves)))
		start := 0
		if len(m.moves) > 12 {
			start = len(m.moves) - 12
			b.WriteString("... ")
		}
		var notations []string
		for i := start; i < len(m.moves); i++ {
			notations = append(notations, m.moves[i].Notation())
		}
		b.WriteString(moveStyle.Render(strings.Join(notations, " ")))
		b.WriteString("\n")
	}

	if m.solves > 0 {
		b.WriteString(fmt.Sprintf("Solves this session: %d\n", m.solves))
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Keys: b=battery  r=refresh  q=quit"))
	b.WriteString("\n")

	return b.String()
}

func runWatch(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	model := newWatchModel(db)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
