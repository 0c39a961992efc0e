package mock

import (
	"context"

	"github.com/fwojciec/docpeek"
)

var _ docpeek.Previewer = (*Previewer)(nil)

// Previewer is a mock implementation of docpeek.Previewer.
type Previewer struct {
	PreviewFn func(ctx context.Context, key docpeek.PreviewKey) (string, error)
}

func (p *Previewer) Preview(ctx context.Context, key docpeek.PreviewKey) (string, error) {
	return p.PreviewFn(ctx, key)
}
