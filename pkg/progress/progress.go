// Package progress persists slide deck reading positions. Each deck has at
// most one progress record, keyed by deck id, carrying the current slide, the
// deck length, and a stable session identifier.
package progress

import "time"

// DeckProgress is the stored reading position for a single slide deck.
type DeckProgress struct {
	DeckID     string    `json:"deck_id"`
	SlideIndex int       `json:"slide_index"` // Zero-based index of the current slide
	SlideCount int       `json:"slide_count"` // Total slides in the deck (0 = unknown)
	SessionID  string    `json:"session_id"`  // Assigned on first write, stable afterwards
	UpdatedAt  time.Time `json:"updated_at"`
}

// PercentComplete reports reading progress in [0,100]. Unknown deck lengths
// report 0.
func (p DeckProgress) PercentComplete() float64 {
	if p.SlideCount <= 0 {
		return 0
	}
	return float64(p.SlideIndex+1) / float64(p.SlideCount) * 100
}

// Store persists deck progress records.
type Store interface {
	// Get retrieves the progress for a deck.
	// Returns utils.ErrProgressNotFound when the deck has no record.
	Get(deckID string) (*DeckProgress, error)

	// Set records the current slide for a deck, clamping the index into the
	// deck's bounds. The first write assigns a session id; later writes keep it.
	Set(deckID string, slideIndex, slideCount int) (*DeckProgress, error)

	// List returns all progress records ordered by deck id.
	List() ([]DeckProgress, error)

	// Reset removes a deck's progress record. Removing a missing record is not
	// an error.
	Reset(deckID string) error

	// Close cleanly closes the underlying database.
	Close() error
}
