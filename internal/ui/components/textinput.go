package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/ui/theme"
)

// TextInput wraps bubbles/textinput for single-line answers. NumericOnly
// restricts typed characters to digits and the decimal/thousands marks
// accepted for amounts.
type TextInput struct {
	Model       textinput.Model
	NumericOnly bool
	errText     string
}

// NewTextInput creates a new focused text input.
func NewTextInput(placeholder string, numericOnly bool, width int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if width > 0 {
		ti.SetWidth(width)
	}
	ti.Focus()

	return TextInput{
		Model:       ti,
		NumericOnly: numericOnly,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.NumericOnly {
		if kmsg, ok := msg.(tea.KeyMsg); ok {
			if key := kmsg.String(); len(key) == 1 && !numericKey(key[0]) {
				return t, nil
			}
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func numericKey(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.' || c == ',' || c == '-'
}

// View renders the text input with the last validation error, if any.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.errText != "" {
		view += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render("✗ "+t.errText)
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
	t.Model.CursorEnd()
}

// Focus focuses the input.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus from the input.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// SetError shows err under the input; nil clears it.
func (t *TextInput) SetError(err error) {
	if err == nil {
		t.errText = ""
		return
	}
	t.errText = err.Error()
}
