package models

// StatusOpen is the status every ticket is created with.
const StatusOpen = "Open"

// Ticket represents a support request filed against an optional asset code
type Ticket struct {
	Title     string `json:"title"`
	Email     string `json:"email"`
	AssetCode string `json:"asset_code,omitempty"`
	Status    string `json:"status"`
}

// NewTicket creates an open ticket. The asset code is not checked
// against the imported assets.
func NewTicket(title, email, assetCode string) Ticket {
	return Ticket{
		Title:     title,
		Email:     email,
		AssetCode: assetCode,
		Status:    StatusOpen,
	}
}
