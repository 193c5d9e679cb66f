package params

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/eduardofuncao/pgx/internal/parser"
	"github.com/eduardofuncao/pgx/internal/styles"
)

var ErrAborted = fmt.Errorf("parameter input aborted")

type InputModel struct {
	sql        string
	markers    []int
	inputs     []textinput.Model
	labelWidth int
	cursor     int
	aborted    bool
}

func NewInputModel(sql string, markers []int) InputModel {
	inputs := make([]textinput.Model, len(markers))
	labelWidth := 0
	for i, m := range markers {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = "value"
		if i == 0 {
			ti.Focus()
		}
		inputs[i] = ti

		if w := runewidth.StringWidth(label(m)); w > labelWidth {
			labelWidth = w
		}
	}

	return InputModel{
		sql:        sql,
		markers:    markers,
		inputs:     inputs,
		labelWidth: labelWidth,
	}
}

func label(marker int) string {
	return "$" + strconv.Itoa(marker)
}

func (m InputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m InputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, tea.Quit
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit

		case "enter":
			if m.cursor == len(m.inputs)-1 {
				return m, tea.Quit
			}
			cmd := m.focus(m.cursor + 1)
			return m, cmd

		case "down", "tab":
			if m.cursor < len(m.inputs)-1 {
				cmd := m.focus(m.cursor + 1)
				return m, cmd
			}
			return m, nil

		case "up", "shift+tab":
			if m.cursor > 0 {
				cmd := m.focus(m.cursor - 1)
				return m, cmd
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.cursor], cmd = m.inputs[m.cursor].Update(msg)
	return m, cmd
}

func (m *InputModel) focus(i int) tea.Cmd {
	m.inputs[m.cursor].Blur()
	m.cursor = i
	return m.inputs[i].Focus()
}

func (m InputModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Enter values for positional markers"))
	b.WriteString("\n")
	b.WriteString(parser.HighlightSQL(parser.FormatSQLWithLineBreaks(m.sql)))
	b.WriteString("\n\n")

	for i, marker := range m.markers {
		name := runewidth.FillRight(label(marker), m.labelWidth)
		if i == m.cursor {
			b.WriteString(styles.FocusedLabel.Render(name+" > ") + m.inputs[i].View() + "\n")
		} else {
			b.WriteString(styles.Label.Render(name+"   ") + styles.Label.Render(m.inputs[i].Value()) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.Faint.Render("↑/↓: move  Enter: next/submit  Esc: cancel"))
	b.WriteString("\n")

	return b.String()
}

// Values maps each marker to what was typed for it.
func (m InputModel) Values() map[int]string {
	values := make(map[int]string, len(m.markers))
	for i, marker := range m.markers {
		values[marker] = m.inputs[i].Value()
	}
	return values
}

func (m InputModel) WasAborted() bool {
	return m.aborted
}

// Collect asks for a value for each marker. The prompt is drawn on stderr so
// stdout stays clean for query output.
func Collect(sql string, markers []int) (map[int]string, error) {
	if len(markers) == 0 {
		return map[int]string{}, nil
	}

	program := tea.NewProgram(NewInputModel(sql, markers), tea.WithOutput(os.Stderr))
	finalModel, err := program.Run()
	if err != nil {
		return nil, err
	}

	inputModel := finalModel.(InputModel)
	if inputModel.WasAborted() {
		return nil, ErrAborted
	}
	return inputModel.Values(), nil
}
