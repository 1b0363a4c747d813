// ABOUTME: Controller mirrors SearchState into the URL through a Navigator
// ABOUTME: Search edits are debounced; filter and page changes navigate immediately

package urlstate

import (
	"sync"
	"time"

	"recipe-finder-api/core/domain"
	"recipe-finder-api/core/interfaces"
	"recipe-finder-api/core/query"
)

// DefaultDebounce is the trailing delay applied to search edits
const DefaultDebounce = 300 * time.Millisecond

// Option configures a Controller
type Option func(*Controller)

// WithDebounce sets the search debounce window. Non-positive values are ignored.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.delay = d
		}
	}
}

// WithLogger sets the logger used for navigation traces
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Controller owns the debounce timer and all SearchState transitions.
// Methods must not be called from inside a navigation callback.
type Controller struct {
	nav    Navigator
	delay  time.Duration
	logger interfaces.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending uint64
	closed  bool
}

// NewController creates a controller over nav
func NewController(nav Navigator, opts ...Option) *Controller {
	c := &Controller{
		nav:    nav,
		delay:  DefaultDebounce,
		logger: interfaces.NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State decodes the current URL
func (c *Controller) State() domain.SearchState {
	return query.Decode(c.nav.Query())
}

// SetSearch schedules a navigation to a state holding only text. A later
// call or any immediate transition inside the window supersedes it.
func (c *Controller) SetSearch(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.stopLocked()
	c.pending++
	seq := c.pending

	next := domain.DefaultSearchState()
	next.Search = text
	c.timer = time.AfterFunc(c.delay, func() {
		c.fire(seq, next)
	})
}

func (c *Controller) fire(seq uint64, next domain.SearchState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || seq != c.pending || c.timer == nil {
		return
	}
	c.timer = nil
	c.replaceLocked(next)
}

// ToggleCategory adds or removes name and resets the page
func (c *Controller) ToggleCategory(name string) {
	c.update(func(s *domain.SearchState) {
		s.Categories = toggle(s.Categories, name)
		s.Page = domain.DefaultPage
	})
}

// ToggleArea adds or removes name and resets the page
func (c *Controller) ToggleArea(name string) {
	c.update(func(s *domain.SearchState) {
		s.Areas = toggle(s.Areas, name)
		s.Page = domain.DefaultPage
	})
}

// RemoveCategory drops name if selected and resets the page
func (c *Controller) RemoveCategory(name string) {
	c.update(func(s *domain.SearchState) {
		s.Categories = remove(s.Categories, name)
		s.Page = domain.DefaultPage
	})
}

// RemoveArea drops name if selected and resets the page
func (c *Controller) RemoveArea(name string) {
	c.update(func(s *domain.SearchState) {
		s.Areas = remove(s.Areas, name)
		s.Page = domain.DefaultPage
	})
}

// SetPage changes the page and keeps the filters
func (c *Controller) SetPage(page int) {
	c.update(func(s *domain.SearchState) {
		if page < domain.DefaultPage {
			page = domain.DefaultPage
		}
		s.Page = page
	})
}

// ClearFilters drops all categories and areas, keeping the search text
func (c *Controller) ClearFilters() {
	c.update(func(s *domain.SearchState) {
		s.Categories = []string{}
		s.Areas = []string{}
		s.Page = domain.DefaultPage
	})
}

// NavigateTo pushes target, for moves between screens
func (c *Controller) NavigateTo(target string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.stopLocked()
	c.logger.Debug("Navigating", map[string]interface{}{"target": target, "mode": "push"})
	c.nav.Push(target)
}

// BackLink is the canonical list location for the current URL. Keys the
// list does not use are dropped.
func (c *Controller) BackLink() string {
	return query.Path(c.State())
}

// Close cancels any pending search navigation. Later calls are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.closed = true
}

func (c *Controller) update(mutate func(*domain.SearchState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.stopLocked()
	next := c.State()
	mutate(&next)
	c.replaceLocked(next)
}

func (c *Controller) replaceLocked(next domain.SearchState) {
	target := query.Path(next)
	c.logger.Debug("Navigating", map[string]interface{}{"target": target, "mode": "replace"})
	c.nav.Replace(target)
}

func (c *Controller) stopLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.pending++
}

func toggle(list []string, name string) []string {
	for _, item := range list {
		if item == name {
			return remove(list, name)
		}
	}
	return append(append(make([]string, 0, len(list)+1), list...), name)
}

// remove returns a new slice without name; list is never modified
func remove(list []string, name string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if item != name {
			out = append(out, item)
		}
	}
	return out
}
