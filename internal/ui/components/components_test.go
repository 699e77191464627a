package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

var options = []ChoiceOption{
	{Value: "gp", Label: "GP registration"},
	{Value: "hc1", Label: "HC1", Tip: "Help with health costs"},
	{Value: "other", Label: "Other"},
}

func TestChoice_Single(t *testing.T) {
	c := NewChoice(options, false, "hc1")
	assert.Equal(t, 1, c.Cursor)
	assert.Equal(t, "hc1", c.Value())

	c, changed := c.Update(specialKey(tea.KeyDown))
	assert.False(t, changed)
	c, changed = c.Update(specialKey(tea.KeyEnter))
	assert.True(t, changed)
	assert.Equal(t, []string{"other"}, c.Chosen())
}

func TestChoice_Multi(t *testing.T) {
	c := NewChoice(options, true)
	assert.Empty(t, c.Chosen())

	c, _ = c.Update(keyPress('x'))
	c, _ = c.Update(keyPress('j'))
	c, _ = c.Update(keyPress('j'))
	c, _ = c.Update(keyPress('x'))
	assert.Equal(t, []string{"gp", "other"}, c.Chosen())

	c, _ = c.Update(keyPress('k'))
	c, _ = c.Update(keyPress('k'))
	c, _ = c.Update(keyPress('x'))
	assert.Equal(t, []string{"other"}, c.Chosen())
}

func TestChoice_CopiesOnToggle(t *testing.T) {
	a := NewChoice(options, true, "gp")
	b, _ := a.Update(keyPress('x'))
	assert.Equal(t, []string{"gp"}, a.Chosen())
	assert.Empty(t, b.Chosen())
}

func TestChoice_ViewShowsTip(t *testing.T) {
	c := NewChoice(options, false, "hc1")
	assert.Contains(t, c.View(60), "Help with health costs")
}

func TestDial(t *testing.T) {
	d := NewDial("Impact", "★", 0, 6, 9, "-", "+")
	assert.Equal(t, 6, d.Value)

	d, changed := d.Update(keyPress('+'))
	assert.False(t, changed)
	d, changed = d.Update(keyPress('-'))
	assert.True(t, changed)
	assert.Equal(t, 5, d.Value)

	for range 10 {
		d, _ = d.Update(keyPress('-'))
	}
	assert.Equal(t, 0, d.Value)
	assert.Contains(t, d.View(), "0/6")
}

func TestMenu_SkipsDisabled(t *testing.T) {
	var picked string
	m := NewMenu([]MenuItem{
		{Label: "a", Disabled: true},
		{Label: "b", Action: func() tea.Cmd {
			picked = "b"
			return nil
		}},
		{Label: "c", Disabled: true},
		{Label: "d", Action: func() tea.Cmd {
			picked = "d"
			return nil
		}},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(specialKey(tea.KeyDown))
	assert.Equal(t, 3, m.Selected)
	m, _ = m.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, "d", picked)
}

func TestStepProgress(t *testing.T) {
	p := StepProgress("", 3, 4, 40)
	assert.InDelta(t, 0.75, p.Percent, 1e-9)
	assert.Contains(t, p.View(), "75%")
	assert.Zero(t, StepProgress("", 0, 0, 40).Percent)
}
