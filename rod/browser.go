package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of pages a browser renders before it is
// replaced by a fresh one.
const DefaultMaxPages = 75

// browser owns a headless Chrome process and recycles it after maxPages
// renders, since Chrome's resident memory only grows under load.
type browser struct {
	mu       sync.Mutex
	b        *rod.Browser
	l        *launcher.Launcher
	pages    int
	maxPages int
}

func newBrowser(maxPages int) (*browser, error) {
	b := &browser{maxPages: maxPages}
	if err := b.launch(); err != nil {
		return nil, err
	}
	return b, nil
}

// acquire returns the browser to render the next page with, replacing the
// current one first if it has reached its page budget. It returns nil once
// the browser is closed.
func (b *browser) acquire() *rod.Browser {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.b == nil {
		return nil
	}
	if b.maxPages > 0 && b.pages >= b.maxPages {
		b.recycle()
	}
	b.pages++
	return b.b
}

func (b *browser) close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shutdown()
}

func (b *browser) pid() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.l == nil {
		return 0
	}
	return b.l.PID()
}

func (b *browser) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	rb := rod.New().ControlURL(u)
	if err := rb.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	b.b = rb
	b.l = l
	return nil
}

// shutdown must be called with mu held.
func (b *browser) shutdown() error {
	var err error
	if b.b != nil {
		err = b.b.Close()
		b.b = nil
	}
	if b.l != nil {
		b.l.Kill()
		b.l = nil
	}
	return err
}

// recycle keeps the old browser if a new one cannot be launched.
// Must be called with mu held.
func (b *browser) recycle() {
	oldB, oldL := b.b, b.l
	if err := b.launch(); err != nil {
		b.b, b.l = oldB, oldL
		return
	}
	_ = oldB.Close()
	oldL.Kill()
	b.pages = 0
}
