package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learntype/internal/ui/theme"
)

// ChoiceOption is one selectable answer.
type ChoiceOption struct {
	ID   string
	Text string
}

// Choice is a single-answer selector. Options can be picked with the
// arrow keys and Enter, or directly by their id letter or position number.
type Choice struct {
	Prompt   string
	Options  []ChoiceOption
	Selected int
	// Chosen is the index picked by the user, or -1.
	Chosen int
}

// NewChoice creates a selector with the first option highlighted.
func NewChoice(prompt string, options []ChoiceOption) Choice {
	return Choice{
		Prompt:  prompt,
		Options: options,
		Chosen:  -1,
	}
}

// Init returns nil.
func (c Choice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	if c.Done() {
		return c, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
		return c, nil
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
		return c, nil
	case "enter":
		if len(c.Options) > 0 {
			c.Chosen = c.Selected
		}
		return c, nil
	}

	if i := c.indexForKey(key); i >= 0 {
		c.Selected = i
		c.Chosen = i
	}
	return c, nil
}

// indexForKey maps "a".."z" to an option id and "1".."9" to a position.
func (c Choice) indexForKey(key string) int {
	if len(key) != 1 {
		return -1
	}
	if key[0] >= '1' && key[0] <= '9' {
		if i := int(key[0] - '1'); i < len(c.Options) {
			return i
		}
		return -1
	}
	for i, o := range c.Options {
		if strings.EqualFold(o.ID, key) {
			return i
		}
	}
	return -1
}

// Done reports whether an option has been chosen.
func (c Choice) Done() bool {
	return c.Chosen >= 0
}

// Value returns the id of the chosen option.
func (c Choice) Value() (string, bool) {
	if !c.Done() {
		return "", false
	}
	return c.Options[c.Chosen].ID, true
}

// View renders the prompt and options.
func (c Choice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Prompt))
	b.WriteString("\n\n")

	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected && !c.Done() {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, opt.ID, opt.Text)

		var style lipgloss.Style
		switch {
		case c.Done() && i == c.Chosen:
			style = theme.Chosen
		case c.Done():
			style = theme.Faded
		case i == c.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
