package view

import (
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/olusolaa/hilog/internal/core/domain"
	"github.com/olusolaa/hilog/internal/core/format"
	"github.com/olusolaa/hilog/internal/core/ports"
)

const PrinterTypeView = "view"

const (
	DefaultCapacity = 200
	floatingLabel   = "HiLog"
)

type Config struct {
	Capacity int `yaml:"capacity" mapstructure:"capacity" validate:"gte=0"`
	Width    int `yaml:"width" mapstructure:"width" validate:"gte=0"`
}

// Printer keeps the most recent records for the on-screen overlay. Older
// items are dropped once Capacity is reached.
type Printer struct {
	config   Config
	mu       sync.RWMutex
	items    []Item
	provider *Provider
}

var _ ports.OverlayController = (*Printer)(nil)

func NewPrinter(cfg Config) *Printer {
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	if cfg.Width <= 0 {
		cfg.Width = 80
	}
	return &Printer{
		config:   cfg,
		items:    make([]Item, 0, cfg.Capacity),
		provider: NewProvider(),
	}
}

func (p *Printer) Print(record domain.Record) {
	item := Item{
		Time:  record.Time,
		Level: record.Level,
		Tag:   record.Tag,
		Log:   format.Body(record),
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.items) == p.config.Capacity {
		copy(p.items, p.items[1:])
		p.items = p.items[:len(p.items)-1]
	}
	p.items = append(p.items, item)
}

// Items returns the buffered items, oldest first.
func (p *Printer) Items() []Item {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]Item(nil), p.items...)
}

func (p *Printer) Clear() {
	p.mu.Lock()
	p.items = p.items[:0]
	p.mu.Unlock()
}

func (p *Printer) ViewProvider() *Provider { return p.provider }

func (p *Printer) ShowFloatingButton()  { p.provider.ShowFloatingButton() }
func (p *Printer) CloseFloatingButton() { p.provider.CloseFloatingButton() }
func (p *Printer) ShowLogView()         { p.provider.ShowLogView() }
func (p *Printer) CloseLogView()        { p.provider.CloseLogView() }
func (p *Printer) IsOpen() bool         { return p.provider.IsOpen() }

// Render draws the overlay as it currently looks: nothing, the floating
// button, or the open log panel.
func (p *Printer) Render(w io.Writer) error {
	state := p.provider.State()
	if !state.FloatingButton && !state.LogView {
		return nil
	}

	r := lipgloss.NewRenderer(w)
	var out string
	if state.LogView {
		out = p.renderPanel(r)
	} else {
		out = r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#000000")).
			Padding(0, 1).
			Render(floatingLabel)
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}

func (p *Printer) renderPanel(r *lipgloss.Renderer) string {
	items := p.Items()
	inner := p.config.Width - 4

	closeStyle := r.NewStyle().Foreground(lipgloss.Color("#bbbbbb"))
	header := r.NewStyle().Width(inner).Align(lipgloss.Right).Render(closeStyle.Render("Close"))

	rows := make([]string, 0, len(items)+1)
	rows = append(rows, header)
	for _, it := range items {
		style := r.NewStyle().Foreground(lipgloss.Color(HighlightColor(it.Level))).Width(inner)
		rows = append(rows, style.Render(it.AssembleVisualLog()))
	}

	return r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(strings.Join(rows, "\n"))
}
