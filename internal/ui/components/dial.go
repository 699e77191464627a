package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/ui/theme"
)

// Dial is a bounded integer selector drawn as a row of symbols, used for the
// impact and answer-length controls.
type Dial struct {
	Label  string
	Symbol string
	Min    int
	Max    int
	Value  int
	// Keys decrement and increment the value.
	DecKey string
	IncKey string
}

// NewDial creates a dial with value clamped into [min, max].
func NewDial(label, symbol string, lo, hi, value int, dec, inc string) Dial {
	d := Dial{Label: label, Symbol: symbol, Min: lo, Max: hi, DecKey: dec, IncKey: inc}
	d.Value = d.clamp(value)
	return d
}

func (d Dial) clamp(v int) int {
	return max(d.Min, min(d.Max, v))
}

// Update adjusts the value on the dial's keys. changed reports whether the
// value moved.
func (d Dial) Update(msg tea.Msg) (Dial, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, false
	}
	old := d.Value
	switch kmsg.String() {
	case d.DecKey:
		d.Value = d.clamp(d.Value - 1)
	case d.IncKey:
		d.Value = d.clamp(d.Value + 1)
	}
	return d, d.Value != old
}

// View renders the dial, e.g. "Impact ★★★☆☆☆ 3/6 [-/+]".
func (d Dial) View() string {
	var filled, empty int
	if d.Value > 0 {
		filled = d.Value
	}
	empty = d.Max - filled

	on := lipgloss.NewStyle().Foreground(theme.Accent).Render(strings.Repeat(d.Symbol, filled))
	off := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat(d.Symbol, empty))
	label := lipgloss.NewStyle().Foreground(theme.Text).Render(d.Label)
	hint := theme.Hint.Render(fmt.Sprintf("%d/%d [%s/%s]", d.Value, d.Max, d.DecKey, d.IncKey))
	return label + "  " + on + off + "  " + hint
}
