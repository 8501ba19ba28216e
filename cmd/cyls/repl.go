package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"

	"github.com/rlch/cyls"
	"github.com/rlch/cyls/completion"
)

// ErrNotATerminal is returned when the repl is started without a TTY.
var ErrNotATerminal = errors.New("repl requires a terminal")

var (
	replTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	replItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#DDDDDD"))

	replKindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			PaddingLeft(1)

	replDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

func replCommand() *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "Interactive completion playground",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "schema",
				Usage: "schema YAML file to complete against",
			},
		},
		Action: runRepl,
	}
}

func runRepl(_ context.Context, cmd *cli.Command) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return ErrNotATerminal
	}

	schema, err := replSchema(cmd.String("schema"))
	if err != nil {
		return err
	}

	input := textinput.New()
	input.Placeholder = "MATCH (n:"
	input.Focus()

	m := replModel{
		engine: completion.New(),
		schema: schema,
		input:  input,
	}
	_, err = tea.NewProgram(m).Run()

	return err
}

// replSchema loads a schema from the flag, or from the workspace config, or
// falls back to an empty one so keyword completion still works.
func replSchema(path string) (*cyls.Schema, error) {
	if path != "" {
		return cyls.LoadSchema(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return &cyls.Schema{}, nil
	}
	cfg, _, err := cyls.FindConfig(wd)
	if err != nil || cfg.SchemaFile == "" {
		return &cyls.Schema{}, nil
	}

	return cyls.LoadSchema(cfg.SchemaFile)
}

type replModel struct {
	engine *completion.Engine
	schema *cyls.Schema
	input  textinput.Model

	items     []cyls.Item
	noOpinion bool
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	text := m.input.Value()
	caret := completion.Caret{Line: 0, Column: uint32(m.input.Position())}
	items, ok := m.engine.Resolve(text, caret, m.schema)
	m.items = items
	m.noOpinion = !ok

	return m, cmd
}

func (m replModel) View() string {
	s := replTitleStyle.Render("cyls") + "\n\n"
	s += m.input.View() + "\n\n"

	switch {
	case m.noOpinion:
		s += replDimStyle.Render("(no opinion)") + "\n"
	case len(m.items) == 0:
		s += replDimStyle.Render("(no completions)") + "\n"
	default:
		const maxShown = 15
		for i, item := range m.items {
			if i == maxShown {
				s += replDimStyle.Render(fmt.Sprintf("… %d more", len(m.items)-maxShown)) + "\n"
				break
			}
			s += replItemStyle.Render(item.Label) +
				replKindStyle.Render("["+item.Kind.String()+"]") + "\n"
		}
	}

	s += "\n" + replDimStyle.Render("esc to quit")

	return s
}
