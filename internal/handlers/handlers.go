// Package handlers implements the help desk's HTML endpoints.
package handlers

import "it-helpdesk/internal/models"

// AssetStore is the asset collection the handlers read and replace.
type AssetStore interface {
	ReplaceAssets(assets []models.Asset) int
	Assets() []models.Asset
}

// TicketStore is the ticket collection the handlers append to and list.
type TicketStore interface {
	AddTicket(t models.Ticket) int
	Tickets() []models.Ticket
}

// Recorder receives domain events for metrics.
type Recorder interface {
	AssetsImported(n int)
	TicketCreated()
}

type nopRecorder struct{}

func (nopRecorder) AssetsImported(int) {}
func (nopRecorder) TicketCreated()     {}

func recorderOrNop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}
