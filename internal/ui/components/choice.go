package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/ui/theme"
)

// ChoiceOption is one entry of a Choice list.
type ChoiceOption struct {
	Value string
	Label string
	Tip   string
}

// Choice is a single- or multi-select option list. Single mode keeps at most
// one value chosen; multi mode toggles values with space or enter.
type Choice struct {
	Options []ChoiceOption
	Multi   bool
	Cursor  int
	chosen  map[string]bool
}

// NewChoice creates a choice list with the given values already chosen.
func NewChoice(options []ChoiceOption, multi bool, chosen ...string) Choice {
	c := Choice{Options: options, Multi: multi, chosen: make(map[string]bool)}
	for _, v := range chosen {
		if v != "" {
			c.chosen[v] = true
		}
	}
	for i, o := range options {
		if c.chosen[o.Value] {
			c.Cursor = i
			break
		}
	}
	return c
}

// Update moves the cursor and toggles choices. changed reports whether the
// set of chosen values changed.
func (c Choice) Update(msg tea.Msg) (Choice, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(c.Options) == 0 {
		return c, false
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "space", " ", "enter", "x":
		c.toggle(c.Options[c.Cursor].Value)
		return c, true
	}
	return c, false
}

func (c *Choice) toggle(v string) {
	chosen := make(map[string]bool, len(c.chosen))
	if c.Multi {
		for k := range c.chosen {
			chosen[k] = true
		}
		if chosen[v] {
			delete(chosen, v)
		} else {
			chosen[v] = true
		}
	} else {
		chosen[v] = true
	}
	c.chosen = chosen
}

// Chosen returns the chosen values in option order.
func (c Choice) Chosen() []string {
	var out []string
	for _, o := range c.Options {
		if c.chosen[o.Value] {
			out = append(out, o.Value)
		}
	}
	return out
}

// Value returns the single chosen value, or "".
func (c Choice) Value() string {
	if v := c.Chosen(); len(v) > 0 {
		return v[0]
	}
	return ""
}

// View renders the options. The tip of the option under the cursor is shown
// beneath the list.
func (c Choice) View(width int) string {
	var b strings.Builder
	for i, o := range c.Options {
		mark := "( )"
		if c.Multi {
			mark = "[ ]"
		}
		if c.chosen[o.Value] {
			mark = "(•)"
			if c.Multi {
				mark = "[x]"
			}
		}
		prefix := "  "
		style := theme.Unselected
		if i == c.Cursor {
			prefix = "▸ "
			style = theme.Selected
		}
		b.WriteString(style.Width(width).Render(prefix + mark + " " + o.Label))
		b.WriteString("\n")
	}
	if c.Cursor < len(c.Options) {
		if tip := c.Options[c.Cursor].Tip; tip != "" {
			b.WriteString("\n")
			b.WriteString(theme.Hint.Width(width).Render(tip))
			b.WriteString("\n")
		}
	}
	return b.String()
}
