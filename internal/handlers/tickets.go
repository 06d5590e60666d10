package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"it-helpdesk/internal/models"
)

const maxTicketFormBytes = 1 << 20

// TicketsHandler handles ticket creation and listing
type TicketsHandler struct {
	Store   TicketStore
	Views   *Views
	Log     logrus.FieldLogger
	Metrics Recorder
}

// TicketsPage is the view model for the ticket table.
type TicketsPage struct {
	Tickets []models.Ticket
}

// NewTicketsHandler creates a new tickets handler
func NewTicketsHandler(store TicketStore, views *Views, log logrus.FieldLogger) *TicketsHandler {
	return &TicketsHandler{Store: store, Views: views, Log: log}
}

// TicketForm serves the ticket creation form.
func (h *TicketsHandler) TicketForm(w http.ResponseWriter, r *http.Request) {
	h.Views.Render(w, http.StatusOK, "ticket_form", nil)
}

// CreateTicket appends an open ticket and redirects to the listing.
// title and email are required; asset_code is optional.
func (h *TicketsHandler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxTicketFormBytes)

	// accepts both urlencoded and multipart bodies
	if err := r.ParseMultipartForm(maxTicketFormBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		http.Error(w, "invalid form: "+err.Error(), http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(r.PostFormValue("title"))
	email := strings.TrimSpace(r.PostFormValue("email"))
	assetCode := strings.TrimSpace(r.PostFormValue("asset_code"))

	if title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}
	if email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	total := h.Store.AddTicket(models.NewTicket(title, email, assetCode))
	recorderOrNop(h.Metrics).TicketCreated()

	h.Log.WithFields(logrus.Fields{
		"asset_code": assetCode,
		"tickets":    total,
	}).Info("Ticket created")

	http.Redirect(w, r, "/tickets", http.StatusSeeOther)
}

// ListTickets renders all tickets, oldest first.
func (h *TicketsHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	h.Views.Render(w, http.StatusOK, "tickets", TicketsPage{Tickets: h.Store.Tickets()})
}
