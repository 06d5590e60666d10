// Package store holds the help desk's in-memory asset and ticket
// collections. Contents live for the lifetime of the process.
package store

import (
	"sync"

	"it-helpdesk/internal/models"
)

// Store owns the asset and ticket collections. Every read and mutation
// runs under a single lock so readers never observe a half-replaced
// asset list.
type Store struct {
	mu      sync.RWMutex
	assets  []models.Asset
	tickets []models.Ticket
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// ReplaceAssets discards the current assets and stores the given ones in
// order. It returns the number stored.
func (s *Store) ReplaceAssets(assets []models.Asset) int {
	next := make([]models.Asset, len(assets))
	copy(next, assets)

	s.mu.Lock()
	s.assets = next
	s.mu.Unlock()

	return len(next)
}

// Assets returns a snapshot of the assets in insertion order.
func (s *Store) Assets() []models.Asset {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Asset, len(s.assets))
	copy(out, s.assets)
	return out
}

// AddTicket appends a ticket and returns the new ticket count.
func (s *Store) AddTicket(t models.Ticket) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tickets = append(s.tickets, t)
	return len(s.tickets)
}

// Tickets returns a snapshot of the tickets, oldest first.
func (s *Store) Tickets() []models.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Ticket, len(s.tickets))
	copy(out, s.tickets)
	return out
}
