package vt

// Cell is one grapheme plus the style it was written with. Width is the
// number of terminal columns the grapheme occupies (2 for East-Asian wide
// characters, 0 for the trailing slot of a wide cell).
type Cell struct {
	Grapheme string
	Width    int
	Style    Style
}

// blankCell is what ED/EL/scrolling reveal: a single space with the given
// style's background carried through (real terminals paint erased regions
// with the current background color).
func blankCell(style Style) Cell {
	return Cell{Grapheme: " ", Width: 1, Style: Style{Background: style.Background}}
}

func (c Cell) isZero() bool {
	return c.Grapheme == "" && c.Width == 0 && c.Style.IsZero()
}
