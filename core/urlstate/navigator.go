// ABOUTME: Navigator abstracts the URL the list state is mirrored into
// ABOUTME: MemoryNavigator is an observable in-process implementation with history

package urlstate

import (
	"net/url"
	"sync"
)

// Navigator reads the current query and moves to a new location.
// Replace overwrites the current history entry; Push adds one.
type Navigator interface {
	Query() url.Values
	Replace(target string)
	Push(target string)
}

// MemoryNavigator keeps the location and history in memory
type MemoryNavigator struct {
	mu           sync.Mutex
	history      []*url.URL
	replacements int
	nextID       int
	listeners    map[int]func(location string)
}

// NewMemoryNavigator starts at location, "/" when empty or unparsable
func NewMemoryNavigator(location string) *MemoryNavigator {
	return &MemoryNavigator{
		history:   []*url.URL{parseLocation(location)},
		listeners: make(map[int]func(string)),
	}
}

func parseLocation(location string) *url.URL {
	u, err := url.Parse(location)
	if err != nil || location == "" {
		return &url.URL{Path: "/"}
	}
	if u.Path == "" {
		u.Path = "/"
	}
	return u
}

// Query returns a copy of the current query values
func (n *MemoryNavigator) Query() url.Values {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current().Query()
}

// Location returns the current path and query
func (n *MemoryNavigator) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current().String()
}

// Path returns the current path without the query
func (n *MemoryNavigator) Path() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current().Path
}

// Replace swaps the current entry for target
func (n *MemoryNavigator) Replace(target string) {
	n.mu.Lock()
	n.history[len(n.history)-1] = parseLocation(target)
	n.replacements++
	location := n.current().String()
	listeners := n.snapshot()
	n.mu.Unlock()

	notify(listeners, location)
}

// Push appends target to the history
func (n *MemoryNavigator) Push(target string) {
	n.mu.Lock()
	n.history = append(n.history, parseLocation(target))
	location := n.current().String()
	listeners := n.snapshot()
	n.mu.Unlock()

	notify(listeners, location)
}

// Back pops the current entry. It reports false at the first entry.
func (n *MemoryNavigator) Back() bool {
	n.mu.Lock()
	if len(n.history) < 2 {
		n.mu.Unlock()
		return false
	}
	n.history = n.history[:len(n.history)-1]
	location := n.current().String()
	listeners := n.snapshot()
	n.mu.Unlock()

	notify(listeners, location)
	return true
}

// Len is the number of history entries
func (n *MemoryNavigator) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.history)
}

// Replacements counts Replace calls
func (n *MemoryNavigator) Replacements() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.replacements
}

// OnChange registers fn to run after every location change, outside the
// navigator's lock. The returned func unregisters it.
func (n *MemoryNavigator) OnChange(fn func(location string)) func() {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.listeners[id] = fn
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		delete(n.listeners, id)
		n.mu.Unlock()
	}
}

func (n *MemoryNavigator) current() *url.URL {
	return n.history[len(n.history)-1]
}

func (n *MemoryNavigator) snapshot() []func(string) {
	listeners := make([]func(string), 0, len(n.listeners))
	for _, fn := range n.listeners {
		listeners = append(listeners, fn)
	}
	return listeners
}

func notify(listeners []func(string), location string) {
	for _, fn := range listeners {
		fn(location)
	}
}
