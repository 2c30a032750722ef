package main

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/example/go-meddl/internal/dialect"
)

const chatHistoryLimit = 50

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Translate sentences interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			svc, err := dialect.NewService(cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			m := newChatModel(func(s string) (string, error) {
				return svc.Translate(ctx, s, 0)
			})

			_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()
			return err
		},
	}
}

type chatEntry struct {
	input  string
	output string
	err    error
}

// chatModel is the bubbletea model behind the chat command.
type chatModel struct {
	translate func(string) (string, error)
	input     []rune
	history   []chatEntry
}

func newChatModel(translate func(string) (string, error)) chatModel {
	return chatModel{translate: translate}
}

func (m chatModel) Init() tea.Cmd {
	return nil
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		line := strings.TrimSpace(string(m.input))
		if line == "" {
			return m, nil
		}
		out, err := m.translate(line)
		m.history = append(m.history, chatEntry{input: line, output: out, err: err})
		if len(m.history) > chatHistoryLimit {
			m.history = m.history[len(m.history)-chatHistoryLimit:]
		}
		m.input = nil
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, key.Runes...)
	}
	return m, nil
}

func (m chatModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Meddl"))
	b.WriteString("\n")
	b.WriteString(styleDim.Render("⏎ translate  esc quit"))
	b.WriteString("\n\n")

	for _, e := range m.history {
		b.WriteString(styleInput.Render("  " + e.input))
		b.WriteString("\n")
		if e.err != nil {
			b.WriteString(styleError.Render("✗ " + e.err.Error()))
		} else {
			b.WriteString(styleOutput.Render("→ " + e.output))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n> ")
	b.WriteString(string(m.input))
	b.WriteString("█\n")

	return b.String()
}
