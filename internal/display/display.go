// Package display is the terminal front end: a Bubble Tea program that
// keeps a status bar and a prompt pinned to the bottom of the screen while
// views and notifications scroll above it.
//
// Output goes through tea.Program.Println so background writers (export
// jobs reporting failures) never tear the prompt.
package display

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	prompt = "deliciously> "

	// historySize bounds the up/down recall buffer.
	historySize = 100
)

var (
	barBg = lipgloss.NewStyle().
		Background(lipgloss.Color("#27272a")).
		Foreground(lipgloss.Color("#a1a1aa"))

	routeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	adminStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	guestStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a")).
			Italic(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	sepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	// BannerStyle colours the startup banner and its tagline.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	chatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	urgentOutputStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fca5a5"))

	echoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))
)

// Status is what the bar shows.
type Status struct {
	Route     string
	Admin     string // username, empty when logged out
	Favorites int
	View      string
}

// StatusFunc reports the current status. It is polled from the UI
// goroutine, so it must not block on anything the REPL goroutine holds.
type StatusFunc func() Status

// UI owns the terminal while Run is active. Print methods are safe from
// any goroutine; before Run starts or after it returns they fall back to
// stdout.
type UI struct {
	program *tea.Program
	lines   chan string
	ready   chan struct{}
	status  StatusFunc
	stopped atomic.Bool
}

// NewUI creates the display. Call Run to start it.
func NewUI(status StatusFunc) *UI {
	return &UI{
		status: status,
		lines:  make(chan string, 16),
		ready:  make(chan struct{}),
	}
}

func (u *UI) live() bool { return u.program != nil && !u.stopped.Load() }

// Println prints above the prompt.
func (u *UI) Println(a ...interface{}) {
	if u.live() {
		u.program.Println(a...)
		return
	}
	fmt.Println(a...)
}

// Printf prints one formatted line above the prompt.
func (u *UI) Printf(format string, a ...interface{}) {
	if u.live() {
		u.program.Printf(format, a...)
		return
	}
	fmt.Printf(format+"\n", a...)
}

// InputChan delivers each line the user submits.
func (u *UI) InputChan() <-chan string { return u.lines }

func (u *UI) PrintChat(text string)   { u.Println(chatStyle.Render("  " + text)) }
func (u *UI) PrintHint(text string)   { u.Println(secondaryStyle.Render("  " + text)) }
func (u *UI) PrintUrgent(text string) { u.Println(urgentOutputStyle.Render("  " + text)) }

// PrintView prints a rendered view block.
func (u *UI) PrintView(block string) {
	u.Println(strings.TrimRight(block, "\n"))
}

// PrintUserInput echoes a submitted command into the scrollback.
func (u *UI) PrintUserInput(text string) {
	u.Println(promptStyle.Render(strings.TrimSpace(prompt)) + " " + echoStyle.Render(text))
}

// WaitReady blocks until the event loop is running.
func (u *UI) WaitReady() { <-u.ready }

// Quit asks the event loop to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// Run starts the event loop and blocks until quit.
func (u *UI) Run() error {
	in := textinput.New()
	// A plain prompt string keeps textinput's width math right; ANSI
	// escapes would count toward the offset.
	in.Prompt = prompt
	in.PromptStyle = promptStyle
	in.TextStyle = echoStyle
	in.Cursor.Style = promptStyle
	in.CharLimit = 2000
	in.Width = 60
	in.Focus()

	m := model{
		input:  in,
		status: u.status,
		submit: u.lines,
		ready:  u.ready,
		echo:   u.PrintUserInput,
	}
	m.poll()

	u.program = tea.NewProgram(m)
	_, err := u.program.Run()
	u.stopped.Store(true)
	return err
}

type tickMsg time.Time

type model struct {
	input  textinput.Model
	status StatusFunc
	submit chan<- string
	ready  chan struct{}
	echo   func(string)

	bar   Status
	width int

	history []string
	// cursor indexes history while recalling; len(history) means the
	// line being typed.
	cursor int
}

func (m model) Init() tea.Cmd {
	ready := m.ready
	return tea.Batch(textinput.Blink, tick(), func() tea.Msg {
		close(ready)
		return nil
	})
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.enter()
		case tea.KeyUp:
			m.recall(-1)
			return m, nil
		case tea.KeyDown:
			m.recall(+1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > len(prompt) {
			m.input.Width = msg.Width - len(prompt)
		}
		return m, nil

	case tickMsg:
		m.poll()
		return m, tea.Batch(tick(), tea.SetWindowTitle("deliciously "+m.bar.Route))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) enter() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()
	if strings.TrimSpace(line) == "" {
		return m, nil
	}
	m.remember(line)
	m.submit <- line

	// The echo runs as a Cmd: Println from inside Update would deadlock.
	echo := m.echo
	return m, func() tea.Msg {
		echo(line)
		return nil
	}
}

func (m *model) remember(line string) {
	if n := len(m.history); n == 0 || m.history[n-1] != line {
		m.history = append(m.history, line)
	}
	if len(m.history) > historySize {
		m.history = m.history[len(m.history)-historySize:]
	}
	m.cursor = len(m.history)
}

// recall moves through history by step and loads the entry into the prompt.
func (m *model) recall(step int) {
	next := m.cursor + step
	if next < 0 || next > len(m.history) {
		return
	}
	m.cursor = next
	if next == len(m.history) {
		m.input.SetValue("")
		return
	}
	m.input.SetValue(m.history[next])
	m.input.CursorEnd()
}

func (m *model) poll() {
	if m.status != nil {
		m.bar = m.status()
	}
}

func (m model) View() string {
	return renderBar(m.bar, m.width) + "\n\n" + m.input.View()
}

func renderBar(s Status, width int) string {
	who := guestStyle.Render("guest")
	if s.Admin != "" {
		who = adminStyle.Render("admin: " + s.Admin)
	}
	parts := []string{
		labelStyle.Render("at ") + routeStyle.Render(s.Route),
		who,
		labelStyle.Render("♥ ") + primaryStyle.Render(strconv.Itoa(s.Favorites)),
	}
	if s.View != "" {
		parts = append(parts, labelStyle.Render("view ")+primaryStyle.Render(s.View))
	}
	content := " " + strings.Join(parts, sepStyle.Render("  │  ")) + " "

	if width <= 0 {
		width = 80
	}
	return barBg.Width(width).Render(content)
}
