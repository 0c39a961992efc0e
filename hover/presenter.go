package hover

import (
	"context"
	"sync"

	"github.com/fwojciec/docpeek"
)

// TooltipState is a snapshot of the tooltip as the presenter last left it.
type TooltipState struct {
	Visible  bool
	Text     string
	Position docpeek.Point
}

// Presenter shows previews in a single tooltip in response to pointer
// events. The tooltip is either hidden or visible; it starts hidden and
// every PointerLeave returns it to hidden.
//
// Each PointerEnter starts a new hover and hides whatever the previous
// hover was showing. A preview that arrives after its
// hover has ended, either by PointerLeave or by a later PointerEnter, is
// dropped; the previewer still caches it, so the next hover over the same
// link shows it without fetching again.
//
// Presenter is safe for concurrent use by multiple goroutines.
type Presenter struct {
	previewer docpeek.Previewer
	surface   docpeek.Surface

	mu      sync.Mutex
	seq     uint64 // last hover started
	hover   uint64 // hover in progress, 0 when the pointer is outside every link
	pointer docpeek.Point
	state   TooltipState
}

// NewPresenter creates a Presenter drawing on surface.
// The presenter owns the surface from then on.
func NewPresenter(previewer docpeek.Previewer, surface docpeek.Surface) *Presenter {
	return &Presenter{
		previewer: previewer,
		surface:   surface,
	}
}

// PointerEnter starts a hover over the link identified by key and blocks
// until its preview is resolved. A tooltip still showing the previous
// link's preview is hidden first. The new preview is shown only if the
// hover is still in progress by then and the preview is non-empty.
func (p *Presenter) PointerEnter(ctx context.Context, key docpeek.PreviewKey, pos docpeek.Point) {
	p.mu.Lock()
	p.seq++
	hover := p.seq
	p.hover = hover
	p.pointer = pos
	if p.state.Visible {
		p.state = TooltipState{}
		p.surface.Hide()
	}
	p.mu.Unlock()

	text, err := p.previewer.Preview(ctx, key)
	if err != nil || text == "" {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.hover != hover {
		return
	}
	p.state.Text = text
	p.state.Visible = true
	p.surface.Show(text)
	p.place()
}

// PointerMove records the pointer position and repositions the tooltip
// if it is visible.
func (p *Presenter) PointerMove(pos docpeek.Point) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pointer = pos
	if p.state.Visible {
		p.place()
	}
}

// PointerLeave ends the current hover and hides the tooltip, whether or
// not its preview has arrived.
func (p *Presenter) PointerLeave() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.hover = 0
	p.state.Visible = false
	p.surface.Hide()
}

// State returns the current tooltip state.
func (p *Presenter) State() TooltipState {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state
}

// Run applies events until the channel is closed or ctx is done.
// Each PointerEnter is resolved on its own goroutine so that moves and
// leaves are applied while a fetch is pending. Run returns once every
// resolution it started has finished.
func (p *Presenter) Run(ctx context.Context, events <-chan docpeek.PointerEvent) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev.Kind {
			case docpeek.PointerEnter:
				wg.Go(func() {
					p.PointerEnter(ctx, ev.Key, ev.Position)
				})
			case docpeek.PointerMove:
				p.PointerMove(ev.Position)
			case docpeek.PointerLeave:
				p.PointerLeave()
			}
		}
	}
}

// place positions the tooltip next to the pointer. p.mu must be held.
func (p *Presenter) place() {
	at := docpeek.PlaceTooltip(p.pointer, p.surface.TooltipWidth(), p.surface.ViewportWidth())
	p.state.Position = at
	p.surface.MoveTo(at)
}
