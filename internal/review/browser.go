package review

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/coldreach/internal/model"
)

var (
	browserTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Padding(1, 0, 1, 2)

	browserItemStyle = lipgloss.NewStyle().
				Padding(0, 0, 0, 4)

	browserSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 0, 0, 2)

	browserFailedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("160")).
				Padding(0, 0, 0, 4)

	browserHintStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(1, 0, 0, 2)

	detailHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Padding(1, 0, 0, 2)

	detailMetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 0, 1, 2)

	detailBodyStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	statusLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)
)

type browserView int

const (
	viewJobList browserView = iota
	viewEmail
)

type browserModel struct {
	result   *model.RunResult
	cursor   int
	view     browserView
	viewport viewport.Model
	width    int
	height   int
	ready    bool
	status   string
}

func (m browserModel) Init() tea.Cmd {
	return nil
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport = viewport.New(msg.Width-6, msg.Height-8)
		m.ready = true
		if m.view == viewEmail {
			m.viewport.SetContent(m.currentBody())
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.view == viewEmail {
				m.view = viewJobList
				m.status = ""
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.view == viewJobList && m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.view == viewJobList && m.cursor < len(m.result.Jobs)-1 {
				m.cursor++
			}
		case "enter":
			if m.view == viewJobList && len(m.result.Jobs) > 0 {
				m.view = viewEmail
				if m.ready {
					m.viewport.SetContent(m.currentBody())
					m.viewport.GotoTop()
				}
			}
		case "c":
			if m.view == viewEmail {
				jr := m.result.Jobs[m.cursor]
				if jr.Err == nil {
					if err := copyToClipboard(jr.Email); err != nil {
						m.status = fmt.Sprintf("copy failed: %v", err)
					} else {
						m.status = "copied to clipboard"
					}
				}
			}
		case "esc":
			if m.view == viewEmail {
				m.view = viewJobList
				m.status = ""
			}
		}
	}

	if m.view == viewEmail && m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m browserModel) currentBody() string {
	jr := m.result.Jobs[m.cursor]
	if jr.Err != nil {
		return fmt.Sprintf("This job failed: %v", jr.Err)
	}
	return jr.Email
}

func (m browserModel) View() string {
	if m.view == viewEmail {
		return m.emailView()
	}
	return m.listView()
}

func (m browserModel) listView() string {
	s := browserTitleStyle.Render(fmt.Sprintf("Drafts for %s", m.result.URL))
	s += "\n"

	for i, jr := range m.result.Jobs {
		label := jr.Job.Title
		if len(jr.Job.Skills) > 0 {
			label += fmt.Sprintf("  (%s)", strings.Join(jr.Job.Skills, ", "))
		}
		switch {
		case i == m.cursor:
			s += browserSelectedStyle.Render("> "+label) + "\n"
		case jr.Err != nil:
			s += browserFailedStyle.Render(label+"  [failed]") + "\n"
		default:
			s += browserItemStyle.Render(label) + "\n"
		}
	}

	s += browserHintStyle.Render("↑/↓/j/k navigate  enter open  q quit")
	return s
}

func (m browserModel) emailView() string {
	jr := m.result.Jobs[m.cursor]

	s := detailHeaderStyle.Render(jr.Job.Title) + "\n"
	meta := fmt.Sprintf("job %d of %d", m.cursor+1, len(m.result.Jobs))
	if len(jr.Links) > 0 {
		meta += "  ·  links: " + strings.Join(jr.Links, " ")
	}
	s += detailMetaStyle.Render(meta) + "\n"

	if m.ready {
		s += detailBodyStyle.Render(m.viewport.View()) + "\n"
	} else {
		s += detailBodyStyle.Render(m.currentBody()) + "\n"
	}

	hint := "esc back  c copy  q list"
	if m.status != "" {
		hint = m.status + "  ·  " + hint
	}
	s += statusLineStyle.Render(hint)
	return s
}

// copyToClipboard shells out to the platform clipboard tool.
func copyToClipboard(text string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("pbcopy")
	case "linux":
		cmd = exec.Command("xclip", "-selection", "clipboard")
	default:
		return fmt.Errorf("clipboard not supported on %s", runtime.GOOS)
	}
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// RunBrowser opens the interactive result browser for a completed run.
func RunBrowser(result *model.RunResult) error {
	m := browserModel{result: result}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
