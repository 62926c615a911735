package grove

import (
	"fmt"
	"math"
)

// FieldKind identifies what a panel entry is bound to.
type FieldKind uint8

const (
	FieldNumber FieldKind = iota // *float64 with min/max/step
	FieldBool                    // *bool
	FieldColor                   // *Color
	FieldAction                  // zero-argument trigger
)

// PanelEntry is one row of a Panel, bound directly to a live value.
type PanelEntry struct {
	Name string
	Kind FieldKind

	Min, Max, Step float64

	number *float64
	flag   *bool
	color  *Color
	action func()
}

// Value formats the bound value for display.
func (e *PanelEntry) Value() string {
	switch e.Kind {
	case FieldNumber:
		return fmt.Sprintf("%.3f", *e.number)
	case FieldBool:
		return fmt.Sprintf("%t", *e.flag)
	case FieldColor:
		return e.color.Hex()
	case FieldAction:
		return "[run]"
	}
	return ""
}

// Panel is a debug parameter table. Numeric, bool and color fields write
// straight through to the bound values; actions are zero-argument triggers.
type Panel struct {
	Title   string
	Visible bool

	entries []*PanelEntry
}

// NewPanel creates an empty, visible panel.
func NewPanel(title string) *Panel {
	return &Panel{Title: title, Visible: true}
}

// AddNumber binds v as a number clamped to [min, max]. A positive step snaps
// values set through the panel to multiples of step from min.
func (p *Panel) AddNumber(name string, v *float64, min, max, step float64) *PanelEntry {
	return p.add(&PanelEntry{Name: name, Kind: FieldNumber, Min: min, Max: max, Step: step, number: v})
}

// AddBool binds v as a toggle.
func (p *Panel) AddBool(name string, v *bool) *PanelEntry {
	return p.add(&PanelEntry{Name: name, Kind: FieldBool, flag: v})
}

// AddColor binds c as a color field.
func (p *Panel) AddColor(name string, c *Color) *PanelEntry {
	return p.add(&PanelEntry{Name: name, Kind: FieldColor, color: c})
}

// AddAction adds a zero-argument trigger.
func (p *Panel) AddAction(name string, fn func()) *PanelEntry {
	return p.add(&PanelEntry{Name: name, Kind: FieldAction, action: fn})
}

// add replaces an existing entry with the same name, keeping its position.
func (p *Panel) add(e *PanelEntry) *PanelEntry {
	for i, old := range p.entries {
		if old.Name == e.Name {
			p.entries[i] = e
			return e
		}
	}
	p.entries = append(p.entries, e)
	return e
}

// Entries returns the panel rows in insertion order. The returned slice MUST
// NOT be mutated.
func (p *Panel) Entries() []*PanelEntry {
	return p.entries
}

// Actions returns the names of the action entries in insertion order.
func (p *Panel) Actions() []string {
	var names []string
	for _, e := range p.entries {
		if e.Kind == FieldAction {
			names = append(names, e.Name)
		}
	}
	return names
}

// Lookup returns the entry called name, or nil.
func (p *Panel) Lookup(name string) *PanelEntry {
	for _, e := range p.entries {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// Trigger runs the action called name. Returns false if there is none.
func (p *Panel) Trigger(name string) bool {
	e := p.Lookup(name)
	if e == nil || e.Kind != FieldAction || e.action == nil {
		return false
	}
	e.action()
	return true
}

// SetNumber clamps and snaps v, then writes it to the field called name.
func (p *Panel) SetNumber(name string, v float64) bool {
	e := p.Lookup(name)
	if e == nil || e.Kind != FieldNumber {
		return false
	}
	if e.Step > 0 {
		v = e.Min + math.Round((v-e.Min)/e.Step)*e.Step
	}
	*e.number = math.Max(e.Min, math.Min(e.Max, v))
	return true
}

// Nudge moves the number field called name by steps increments.
func (p *Panel) Nudge(name string, steps int) bool {
	e := p.Lookup(name)
	if e == nil || e.Kind != FieldNumber {
		return false
	}
	step := e.Step
	if step <= 0 {
		step = (e.Max - e.Min) / 100
	}
	return p.SetNumber(name, *e.number+float64(steps)*step)
}

// Toggle flips the bool field called name.
func (p *Panel) Toggle(name string) bool {
	e := p.Lookup(name)
	if e == nil || e.Kind != FieldBool {
		return false
	}
	*e.flag = !*e.flag
	return true
}

// SetColor parses hex and writes it to the color field called name.
func (p *Panel) SetColor(name, hex string) error {
	e := p.Lookup(name)
	if e == nil || e.Kind != FieldColor {
		return fmt.Errorf("panel: no color field %q", name)
	}
	c, err := ParseHexColor(hex)
	if err != nil {
		return err
	}
	*e.color = c
	return nil
}

// Lines renders the panel as text rows for overlays.
func (p *Panel) Lines() []string {
	lines := make([]string, 0, len(p.entries)+1)
	if p.Title != "" {
		lines = append(lines, p.Title)
	}
	for _, e := range p.entries {
		lines = append(lines, fmt.Sprintf("%-14s %s", e.Name, e.Value()))
	}
	return lines
}
