package main

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/fwojciec/docpeek"
)

// Text surface defaults, roughly a tooltip in a 13px sans-serif font.
const (
	defaultViewportWidth = 1024
	charWidth            = 7
	maxTooltipWidth      = 320
	tooltipPadding       = 16
)

// textSurface is a docpeek.Surface that prints each visible change to w.
// The tooltip's width is estimated from its text.
type textSurface struct {
	w        io.Writer
	viewport int
	text     string
	visible  bool
}

func newTextSurface(w io.Writer, viewport int) *textSurface {
	if viewport <= 0 {
		viewport = defaultViewportWidth
	}
	return &textSurface{w: w, viewport: viewport}
}

func (s *textSurface) Show(text string) {
	s.text = text
	s.visible = true
	fmt.Fprintf(s.w, "show %q\n", text)
}

func (s *textSurface) Hide() {
	if !s.visible {
		return
	}
	s.visible = false
	fmt.Fprintln(s.w, "hide")
}

func (s *textSurface) MoveTo(p docpeek.Point) {
	fmt.Fprintf(s.w, "move %d,%d\n", p.X, p.Y)
}

func (s *textSurface) TooltipWidth() int {
	return min(utf8.RuneCountInString(s.text)*charWidth+tooltipPadding, maxTooltipWidth)
}

func (s *textSurface) ViewportWidth() int {
	return s.viewport
}
