package listing

// Style is a rendering hint attached to a row.
type Style int

const (
	StyleNormal Style = iota
	StyleEmphasized
)

func (s Style) String() string {
	if s == StyleEmphasized {
		return "emphasized"
	}
	return "normal"
}

// Displayable is implemented by everything a view can list.
type Displayable interface {
	RenderText() string
	StyleHint() Style
}

// Row is a precomputed line of the display projection.
type Row struct {
	Text  string
	Style Style
}

// Rows renders items once so painting never calls back into the model.
func Rows[T Displayable](items []T) []Row {
	rows := make([]Row, len(items))
	for i, it := range items {
		rows[i] = Row{Text: it.RenderText(), Style: it.StyleHint()}
	}
	return rows
}

// Project builds a projection list from a backing list, copying its cursor.
func Project[T Displayable](src *List[T]) List[Row] {
	out := New(Rows(src.Items()))
	out.SetCursor(src.Cursor())
	return out
}
