// Package listing provides the cursor-carrying list that backs every view.
package listing

// List is an ordered sequence with an attached cursor.
// The cursor is always in [0, Len()) unless the list is empty, where it is 0.
type List[T any] struct {
	items  []T
	cursor int
}

// New returns a list over items with the cursor on the first element.
func New[T any](items []T) List[T] {
	return List[T]{items: items}
}

func (l *List[T]) Items() []T  { return l.items }
func (l *List[T]) Len() int    { return len(l.items) }
func (l *List[T]) Cursor() int { return l.cursor }

// Current returns the element under the cursor. ok is false for an empty list.
func (l *List[T]) Current() (T, bool) {
	var zero T
	if len(l.items) == 0 {
		return zero, false
	}
	return l.items[l.cursor], true
}

// At returns a pointer to the element at i, or nil when out of range.
func (l *List[T]) At(i int) *T {
	if i < 0 || i >= len(l.items) {
		return nil
	}
	return &l.items[i]
}

// Shift moves the cursor by offset, wrapping around both ends.
func (l *List[T]) Shift(offset int) {
	n := len(l.items)
	if n == 0 {
		return
	}
	l.cursor = ((l.cursor+offset)%n + n) % n
}

func (l *List[T]) Home() { l.cursor = 0 }

func (l *List[T]) End() {
	if len(l.items) > 0 {
		l.cursor = len(l.items) - 1
	}
}

// SetCursor places the cursor at i, clamped into range.
func (l *List[T]) SetCursor(i int) {
	l.cursor = i
	l.clamp()
}

// Replace swaps the contents, keeping the cursor where it still fits.
func (l *List[T]) Replace(items []T) {
	l.items = items
	l.clamp()
}

func (l *List[T]) Append(items ...T) {
	l.items = append(l.items, items...)
}

func (l *List[T]) clamp() {
	switch {
	case len(l.items) == 0 || l.cursor < 0:
		l.cursor = 0
	case l.cursor >= len(l.items):
		l.cursor = len(l.items) - 1
	}
}
