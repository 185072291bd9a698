package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultRecycleAfter is the number of pages a browser serves before it is
// replaced.
const DefaultRecycleAfter = 50

// browser owns one headless Chrome process and replaces it after a page
// budget is spent or after a storefront served a block page. A new process
// starts with empty cookies, which is what clears most soft blocks.
type browser struct {
	proxy  string
	budget int64

	mu       sync.Mutex
	current  *rod.Browser
	launcher *launcher.Launcher
	served   int64
	stale    bool
}

func newBrowser(proxy string, budget int64) (*browser, error) {
	b := &browser{proxy: proxy, budget: budget}
	if err := b.launch(); err != nil {
		return nil, err
	}
	return b, nil
}

// get returns the live browser, replacing it first when it is stale.
func (b *browser) get() (*rod.Browser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current == nil {
		return nil, fmt.Errorf("browser is closed")
	}
	if b.stale || (b.budget > 0 && b.served >= b.budget) {
		b.replace()
	}
	return b.current, nil
}

// done records a served page. A blocked page marks the browser stale.
func (b *browser) done(blocked bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.served++
	if blocked {
		b.stale = true
	}
}

func (b *browser) pid() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.launcher == nil {
		return 0
	}
	return b.launcher.PID()
}

func (b *browser) close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shutdown(b.current, b.launcher)
}

// launch starts Chrome. Must be called with mu held or before b is shared.
func (b *browser) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-blink-features", "AutomationControlled").
		Leakless(true).
		Headless(true)
	if b.proxy != "" {
		l = l.Proxy(b.proxy)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	r := rod.New().ControlURL(u)
	if err := r.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	b.current, b.launcher = r, l
	b.served, b.stale = 0, false
	return nil
}

// replace swaps in a fresh process. The old one stays in use if the new
// one fails to start. Must be called with mu held.
func (b *browser) replace() {
	oldBrowser, oldLauncher := b.current, b.launcher
	if err := b.launch(); err != nil {
		b.current, b.launcher = oldBrowser, oldLauncher
		return
	}
	_ = b.shutdown(oldBrowser, oldLauncher)
}

func (b *browser) shutdown(r *rod.Browser, l *launcher.Launcher) error {
	var err error
	if r != nil {
		err = r.Close()
	}
	if l != nil {
		l.Kill()
	}
	if r == b.current {
		b.current, b.launcher = nil, nil
	}
	return err
}
