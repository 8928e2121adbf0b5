package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/joinpreview/pkg/templates"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// templateBlurbs describe each template in the picker and `templates`.
var templateBlurbs = map[templates.Kind]string{
	templates.Modern:  "blurred backdrop, gradient title, image card with shadow",
	templates.Minimal: "plain background, primary title, image fading to primary",
	templates.Bold:    "full-bleed image under a diagonal color overlay",
}

// =============================================================================
// TemplatePickerModel - Interactive template selection
// =============================================================================

// TemplatePickerModel is the bubbletea model behind `render --pick`.
type TemplatePickerModel struct {
	Kinds    []templates.Kind
	Cursor   int
	Selected templates.Kind // "" until enter is pressed
	World    string
	Players  int
}

// NewTemplatePickerModel starts the cursor on current, or on the default
// template when current is empty or unknown.
func NewTemplatePickerModel(current, world string, players int) TemplatePickerModel {
	m := TemplatePickerModel{Kinds: templates.All(), World: world, Players: players}
	want := templates.Default
	if k, err := templates.Parse(current); err == nil {
		want = k
	}
	for i, k := range m.Kinds {
		if k == want {
			m.Cursor = i
		}
	}
	return m
}

func (m TemplatePickerModel) Init() tea.Cmd {
	return nil
}

func (m TemplatePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Kinds)-1 {
			m.Cursor++
		}
	case "1", "2", "3":
		if i := int(key.String()[0] - '1'); i < len(m.Kinds) {
			m.Cursor = i
		}
	case "enter":
		m.Selected = m.Kinds[m.Cursor]
		return m, tea.Quit
	}
	return m, nil
}

func (m TemplatePickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Template"))
	if m.World != "" {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  %s · %d players", m.World, m.Players)))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, k := range m.Kinds {
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		line := fmt.Sprintf("%s%d. %-8s", cursor, i+1, k.Title())
		b.WriteString(style.Render(line))
		b.WriteString("  ")
		b.WriteString(listDimStyle.Render(templateBlurbs[k]))
		b.WriteString("\n")
	}
	return b.String()
}

// pickTemplate runs the picker and returns the chosen template, or ""
// when the user quit without choosing.
func pickTemplate(current, world string, players int, opts ...tea.ProgramOption) (templates.Kind, error) {
	final, err := tea.NewProgram(NewTemplatePickerModel(current, world, players), opts...).Run()
	if err != nil {
		return "", err
	}
	return final.(TemplatePickerModel).Selected, nil
}
