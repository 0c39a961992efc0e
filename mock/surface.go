package mock

import "github.com/fwojciec/docpeek"

var _ docpeek.Surface = (*Surface)(nil)

// Surface is a mock implementation of docpeek.Surface.
type Surface struct {
	ShowFn          func(text string)
	HideFn          func()
	MoveToFn        func(p docpeek.Point)
	TooltipWidthFn  func() int
	ViewportWidthFn func() int
}

func (s *Surface) Show(text string) {
	s.ShowFn(text)
}

func (s *Surface) Hide() {
	s.HideFn()
}

func (s *Surface) MoveTo(p docpeek.Point) {
	s.MoveToFn(p)
}

func (s *Surface) TooltipWidth() int {
	return s.TooltipWidthFn()
}

func (s *Surface) ViewportWidth() int {
	return s.ViewportWidthFn()
}
