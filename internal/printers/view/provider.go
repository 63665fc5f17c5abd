package view

import "sync"

// Provider holds the overlay state: a floating button that opens a log view
// anchored to the bottom of the screen.
type Provider struct {
	mu             sync.RWMutex
	buttonShown    bool
	logViewOpen    bool
	onStateChanged func(State)
}

type State struct {
	FloatingButton bool `json:"floating_button"`
	LogView        bool `json:"log_view"`
}

func NewProvider() *Provider {
	return &Provider{}
}

// OnStateChanged registers a callback invoked after every transition.
func (p *Provider) OnStateChanged(fn func(State)) {
	p.mu.Lock()
	p.onStateChanged = fn
	p.mu.Unlock()
}

func (p *Provider) ShowFloatingButton() {
	p.transition(func() bool {
		if p.buttonShown {
			return false
		}
		p.buttonShown = true
		return true
	})
}

// CloseFloatingButton removes the button. An open log view stays open.
func (p *Provider) CloseFloatingButton() {
	p.transition(func() bool {
		if !p.buttonShown {
			return false
		}
		p.buttonShown = false
		return true
	})
}

// ShowLogView is what a tap on the floating button does; it is a no-op
// while the view is already open.
func (p *Provider) ShowLogView() {
	p.transition(func() bool {
		if p.logViewOpen {
			return false
		}
		p.logViewOpen = true
		return true
	})
}

func (p *Provider) CloseLogView() {
	p.transition(func() bool {
		if !p.logViewOpen {
			return false
		}
		p.logViewOpen = false
		return true
	})
}

func (p *Provider) IsOpen() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.logViewOpen
}

func (p *Provider) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return State{FloatingButton: p.buttonShown, LogView: p.logViewOpen}
}

func (p *Provider) transition(apply func() bool) {
	p.mu.Lock()
	changed := apply()
	state := State{FloatingButton: p.buttonShown, LogView: p.logViewOpen}
	cb := p.onStateChanged
	p.mu.Unlock()

	if changed && cb != nil {
		cb(state)
	}
}
