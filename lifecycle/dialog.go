package lifecycle

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	dialogBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF6B6B")).
			Padding(1, 2)

	dialogTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#C0392B")).
				Padding(0, 1)

	dialogTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	dialogHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const dialogMaxWidth = 72

// TerminalDialog shows a modal error box in the terminal and waits for the
// user to dismiss it.
type TerminalDialog struct {
	in  io.Reader
	out io.Writer
}

// NewTerminalDialog creates a dialog on the given terminal streams.
// Nil streams default to stdin and stderr.
func NewTerminalDialog(in io.Reader, out io.Writer) *TerminalDialog {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stderr
	}
	return &TerminalDialog{in: in, out: out}
}

// Show blocks until the dialog is dismissed.
func (d *TerminalDialog) Show(title, message string) error {
	p := tea.NewProgram(newDialogModel(title, message),
		tea.WithInput(d.in),
		tea.WithOutput(d.out),
	)
	_, err := p.Run()
	return err
}

type dialogKeys struct {
	Dismiss key.Binding
}

func defaultDialogKeys() dialogKeys {
	return dialogKeys{
		Dismiss: key.NewBinding(
			key.WithKeys("enter", "esc", "q", "ctrl+c"),
			key.WithHelp("enter", "dismiss"),
		),
	}
}

type dialogModel struct {
	title   string
	message string
	keys    dialogKeys
	width   int
	done    bool
}

func newDialogModel(title, message string) dialogModel {
	return dialogModel{
		title:   title,
		message: message,
		keys:    defaultDialogKeys(),
		width:   dialogMaxWidth,
	}
}

func (m dialogModel) Init() tea.Cmd {
	return nil
}

func (m dialogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Dismiss) {
			m.done = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = min(msg.Width-4, dialogMaxWidth)
	}
	return m, nil
}

func (m dialogModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(dialogTitleStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(dialogTextStyle.Render(m.message))

	help := m.keys.Dismiss.Help()
	return dialogBoxStyle.Width(max(m.width, 20)).Render(b.String()) + "\n" +
		dialogHelpStyle.Render(help.Key+" "+help.Desc) + "\n"
}
