package natsadapter

import (
	"time"

	"github.com/samirrijal/venuehub/internal/core/domain"
)

// Subjects used on the bus.
const (
	SubjectVenueActivated   = "venues.events.activated"
	SubjectAppConfig        = "venues.events.config"
	SubjectActivateRequest  = "venues.requests.activate"
	SubjectMapCommandPrefix = "venues.map."
	SubjectMapCommandAll    = "venues.map.>"

	streamEvents   = "VENUE_EVENTS"
	streamRequests = "VENUE_REQUESTS"
)

// Map command names, appended to SubjectMapCommandPrefix.
const (
	CommandSetVenue = "set_venue"
	CommandFitVenue = "fit_venue"
	CommandReturnTo = "return_to"
)

// MapCommand is the payload sent to map clients.
type MapCommand struct {
	Command string        `json:"command"`
	VenueID string        `json:"venue_id"`
	Venue   *domain.Venue `json:"venue,omitempty"`
	SentAt  time.Time     `json:"sent_at"`
}

// ActivationRequest asks the activator to make a venue current.
type ActivationRequest struct {
	VenueID string `json:"venue_id"`
	// ReloadConfig refreshes the app config before the venue is activated.
	ReloadConfig bool `json:"reload_config,omitempty"`
}
