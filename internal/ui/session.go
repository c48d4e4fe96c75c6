package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Messages the session loop feeds into the view with Session.Send.
type (
	// CodeUpdateMsg carries the peer's latest editor contents.
	CodeUpdateMsg struct{ Code string }

	// ConnStateMsg reports a peer connection state change.
	ConnStateMsg struct{ State string }

	// PeerLeftMsg tells the view the other participant disconnected.
	PeerLeftMsg struct{}

	// SessionErrorMsg surfaces a relay error in the status line.
	SessionErrorMsg struct{ Text string }

	tickMsg time.Time
)

// SessionOptions describe the room being rendered.
type SessionOptions struct {
	RoomID        string
	QuestionTitle string
	Difficulty    string
	PeerEmail     string
	ExpiresAt     time.Time
}

// SessionOutcome is what the view reports back when it exits.
type SessionOutcome struct {
	Solved bool
}

// Session wraps the live bubbletea view. The session loop pushes events in
// with Send while Run blocks until the user leaves or the room ends.
type Session struct {
	program *tea.Program
}

// NewSession creates the live session view.
func NewSession(opts SessionOptions) *Session {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	model := sessionModel{
		opts:      opts,
		spinner:   s,
		connState: "connecting",
	}
	return &Session{program: tea.NewProgram(model)}
}

// Send forwards an event into the view. Safe from any goroutine.
func (s *Session) Send(msg tea.Msg) {
	s.program.Send(msg)
}

// Quit asks the view to exit.
func (s *Session) Quit() {
	s.program.Send(tea.Quit())
}

// Run blocks until the session view exits and reports the outcome.
func (s *Session) Run() (SessionOutcome, error) {
	final, err := s.program.Run()
	if err != nil {
		return SessionOutcome{}, fmt.Errorf("session view: %w", err)
	}
	model, ok := final.(sessionModel)
	if !ok {
		return SessionOutcome{}, nil
	}
	return SessionOutcome{Solved: model.solved}, nil
}

type sessionModel struct {
	opts SessionOptions

	spinner   spinner.Model
	connState string
	code      string
	status    string
	solved    bool
	peerGone  bool
	now       time.Time
}

func (m sessionModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tick())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "s":
			m.solved = !m.solved
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tickMsg:
		m.now = time.Time(msg)
		if !m.opts.ExpiresAt.IsZero() && m.now.After(m.opts.ExpiresAt) {
			// The room is gone server-side; nothing left to do here.
			return m, tea.Quit
		}
		return m, tick()

	case CodeUpdateMsg:
		m.code = msg.Code

	case ConnStateMsg:
		m.connState = msg.State

	case PeerLeftMsg:
		m.peerGone = true
		m.status = "peer left the session"

	case SessionErrorMsg:
		m.status = msg.Text

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m sessionModel) View() string {
	var b strings.Builder

	header := fmt.Sprintf("%s %s  %s %s (%s)",
		IconRoom, BoldStyle.Render(m.opts.RoomID),
		IconCode, m.opts.QuestionTitle, m.opts.Difficulty)
	b.WriteString(TitleStyle.Render(header))
	b.WriteString("\n")

	peer := m.opts.PeerEmail
	if m.peerGone {
		peer = ErrorStyle.Render(peer + " (left)")
	}
	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		IconPeer, peer,
		IconConnect, m.connStateView(),
		IconTime, m.remainingView()))

	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Peer's editor"))
	b.WriteString("\n")
	if m.code == "" {
		b.WriteString(MutedStyle.Render("(nothing shared yet)"))
	} else {
		b.WriteString(codePanelStyle.Render(m.code))
	}
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(WarningStyle.Render(m.status))
		b.WriteString("\n")
	}

	result := "unsolved"
	if m.solved {
		result = SuccessStyle.Render("solved")
	}
	b.WriteString(MutedStyle.Render(fmt.Sprintf("\nresult: %s   s: toggle solved • q: leave", result)))
	b.WriteString("\n")

	return b.String()
}

func (m sessionModel) connStateView() string {
	switch m.connState {
	case "connected":
		return SuccessStyle.Render(m.connState)
	case "failed", "disconnected", "closed":
		return ErrorStyle.Render(m.connState)
	default:
		return m.spinner.View() + m.connState
	}
}

func (m sessionModel) remainingView() string {
	if m.opts.ExpiresAt.IsZero() || m.now.IsZero() {
		return "--:--"
	}
	left := m.opts.ExpiresAt.Sub(m.now).Round(time.Second)
	if left < 0 {
		left = 0
	}
	mins := int(left.Minutes())
	secs := int(left.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", mins, secs)
}

var codePanelStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder()).
	BorderForeground(Muted).
	Padding(0, 1)
