package pagetext

// State is the derived selection/highlight state of a Word, Line or Tree.
type State uint8

const (
	Clean State = iota
	Selected
	Highlighted
	Both
)

func (s State) String() string {
	switch s {
	case Clean:
		return "clean"
	case Selected:
		return "selected"
	case Highlighted:
		return "highlighted"
	case Both:
		return "selected+highlighted"
	}
	return "unknown"
}

// SelectionHost is the selection and highlight protocol shared by every
// level of the hierarchy.
type SelectionHost interface {
	SelectAll()
	ClearSelected()
	ClearHighlighted()
	SelectedText() string

	Selected() bool
	Highlighted() bool
	HasSelected() bool
	HasHighlighted() bool
	State() State
}

var (
	_ SelectionHost = (*Word)(nil)
	_ SelectionHost = (*Line)(nil)
	_ SelectionHost = (*Tree)(nil)
)

// flags is embedded by Word, Line and Tree.
type flags struct {
	selected       bool
	highlighted    bool
	hasSelected    bool
	hasHighlighted bool
}

// Selected reports whether the element itself was selected as a whole.
func (f *flags) Selected() bool { return f.selected }

// Highlighted reports whether the element itself was highlighted as a whole.
func (f *flags) Highlighted() bool { return f.highlighted }

// HasSelected reports whether the element or any descendant is selected.
// Renderers use it to skip elements with nothing to paint.
func (f *flags) HasSelected() bool { return f.hasSelected }

// HasHighlighted reports whether the element or any descendant is highlighted.
func (f *flags) HasHighlighted() bool { return f.hasHighlighted }

// State derives the element's state from its flags.
func (f *flags) State() State {
	sel := f.selected || f.hasSelected
	hl := f.highlighted || f.hasHighlighted
	switch {
	case sel && hl:
		return Both
	case sel:
		return Selected
	case hl:
		return Highlighted
	}
	return Clean
}

func (f *flags) markAllSelected() {
	f.selected = true
	f.hasSelected = true
}

func (f *flags) clearSelected() {
	f.selected = false
	f.hasSelected = false
}

func (f *flags) clearHighlighted() {
	f.highlighted = false
	f.hasHighlighted = false
}
