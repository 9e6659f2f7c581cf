package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type mode int

const (
	modeList mode = iota
	modeNewProject
	modeLogPrompt
)

// tickMsg drives the live elapsed-time display while the timer runs.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the interactive tracker screen: a project list, a manual
// timer bound to one project at a time, and inputs for registering
// projects and logging prompts.
type Model struct {
	store *Store
	timer *Timer

	names   []string
	cursor  int
	timing  string // project the running timer is bound to
	lastErr string

	mode        mode
	nameInput   textinput.Model
	promptInput textinput.Model

	width    int
	height   int
	quitting bool
}

// NewModel builds the tracker screen over an opened store.
func NewModel(store *Store) Model {
	ni := textinput.New()
	ni.Placeholder = "project name..."
	ni.CharLimit = 100

	pi := textinput.New()
	pi.Placeholder = "prompt text..."
	pi.CharLimit = 500

	return Model{
		store:       store,
		timer:       NewTimer(),
		names:       store.ProjectNames(),
		nameInput:   ni,
		promptInput: pi,
		width:       100,
		height:      30,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) selected() string {
	if m.cursor < 0 || m.cursor >= len(m.names) {
		return ""
	}
	return m.names[m.cursor]
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if m.timer.State() == StateRunning {
			return m, tick()
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeList:
			return m.updateList(msg)
		case modeNewProject:
			return m.updateNewProject(msg)
		case modeLogPrompt:
			return m.updateLogPrompt(msg)
		}
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.lastErr = ""

	switch msg.String() {
	case "q", "ctrl+c":
		// A running timer is banked before exit so no time is lost.
		if m.timer.State() == StateRunning {
			if iv, err := m.timer.Stop(); err == nil {
				m.store.AddSession(m.timing, iv) //nolint:errcheck
			}
		}
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}

	case "n":
		m.nameInput.SetValue("")
		m.nameInput.Focus()
		m.mode = modeNewProject

	case "p":
		if m.selected() == "" {
			break
		}
		m.promptInput.SetValue("")
		m.promptInput.Focus()
		m.mode = modeLogPrompt

	case "enter", "s":
		return m.toggleTimer()
	}

	return m, nil
}

func (m Model) toggleTimer() (tea.Model, tea.Cmd) {
	name := m.selected()

	if m.timer.State() == StateRunning {
		iv, err := m.timer.Stop()
		if err != nil {
			m.lastErr = err.Error()
			return m, nil
		}
		if err := m.store.AddSession(m.timing, iv); err != nil {
			m.lastErr = err.Error()
		}
		m.timing = ""
		return m, nil
	}

	if name == "" {
		return m, nil
	}
	if err := m.timer.Start(); err != nil {
		m.lastErr = err.Error()
		return m, nil
	}
	m.timing = name
	return m, tick()
}

func (m Model) updateNewProject(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.nameInput.Blur()
		m.mode = modeList
		return m, nil

	case "enter":
		name := strings.TrimSpace(m.nameInput.Value())
		if name != "" {
			if err := m.store.CreateProject(name); err != nil {
				m.lastErr = err.Error()
			} else {
				m.names = m.store.ProjectNames()
				for i, n := range m.names {
					if n == name {
						m.cursor = i
					}
				}
			}
		}
		m.nameInput.Blur()
		m.mode = modeList
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m Model) updateLogPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.promptInput.Blur()
		m.mode = modeList
		return m, nil

	case "enter":
		text := strings.TrimSpace(m.promptInput.Value())
		if text != "" {
			if _, err := m.store.LogPrompt(m.selected(), text); err != nil {
				m.lastErr = err.Error()
			}
		}
		m.promptInput.Blur()
		m.mode = modeList
		return m, nil
	}

	var cmd tea.Cmd
	m.promptInput, cmd = m.promptInput.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := titleStyle.Render("cursorstats tracker")
	info := dimStyle.Render(fmt.Sprintf("  %d projects", len(m.names)))
	b.WriteString(title + info + "\n\n")

	if len(m.names) == 0 {
		b.WriteString(dimStyle.Render("  no projects yet - press n to create one") + "\n")
	}

	for i, name := range m.names {
		var suffix string
		if name == m.timing && m.timer.State() == StateRunning {
			suffix = "  " + runningTag.Render("▶ "+formatElapsed(m.timer.Elapsed()))
		} else if p, err := m.store.Project(name); err == nil {
			suffix = dimStyle.Render(fmt.Sprintf("  %s tracked, %d prompts",
				formatElapsed(time.Duration(p.TotalTime)*time.Second), p.TotalPrompts))
		}
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> "+name) + suffix + "\n")
		} else {
			b.WriteString(normalStyle.Render("  "+name) + suffix + "\n")
		}
	}

	b.WriteString("\n")
	if name := m.selected(); name != "" {
		if p, err := m.store.Project(name); err == nil {
			b.WriteString(m.renderStats(name, p))
		}
	}

	if m.lastErr != "" {
		b.WriteString(errStyle.Render("error: "+m.lastErr) + "\n")
	}

	switch m.mode {
	case modeNewProject:
		b.WriteString(statusBarStyle.Render("New project: ") + m.nameInput.View() + "\n")
		b.WriteString(helpStyle.Render("  Enter: create  Esc: cancel"))
	case modeLogPrompt:
		b.WriteString(statusBarStyle.Render("Log prompt: ") + m.promptInput.View() + "\n")
		b.WriteString(helpStyle.Render("  Enter: log  Esc: cancel"))
	default:
		b.WriteString(helpStyle.Render("  ↑/↓: select  s/Enter: start/stop timer  p: log prompt  n: new project  q: quit"))
	}

	return b.String()
}

func (m Model) renderStats(name string, p *Project) string {
	var b strings.Builder
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s: created %s", name, p.CreatedAt.Format("2006-01-02"))) + "\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  sessions: %d  total time: %s",
		len(p.Sessions), formatElapsed(time.Duration(p.TotalTime)*time.Second))) + "\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  prompts: %d  words: %d  avg words: %.1f",
		p.TotalPrompts, p.TotalWordCount, p.AvgWords())) + "\n\n")
	return b.String()
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	min := int(d.Minutes()) % 60
	sec := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, min, sec)
	}
	return fmt.Sprintf("%02d:%02d", min, sec)
}

// Run opens the tracker screen and blocks until the user quits.
func Run(store *Store) error {
	p := tea.NewProgram(NewModel(store), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tracker: %w", err)
	}
	return nil
}
