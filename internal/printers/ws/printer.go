package ws

import (
	"github.com/olusolaa/hilog/internal/core/domain"
)

const PrinterTypeWS = "ws"

// Printer streams records to the websocket clients registered on its hub.
type Printer struct {
	hub *Hub
}

func NewPrinter(hub *Hub) *Printer {
	if hub == nil {
		hub = NewHub()
	}
	return &Printer{hub: hub}
}

func (p *Printer) Hub() *Hub { return p.hub }

func (p *Printer) Print(record domain.Record) {
	p.hub.Broadcast(record.Level, Message{Type: TypeRecord, Payload: newRecordPayload(record)})
}

func (p *Printer) Close() error {
	p.hub.CloseAll()
	return nil
}
