package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// reportClock stamps reports; tests freeze it with SetClock.
var reportClock = clockwork.NewRealClock()

// SetClock swaps the time source used by NewReport. Pass nil to restore the
// real clock.
func SetClock(c clockwork.Clock) {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	reportClock = c
}

// Credentials identify the application to the venue-search API.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Venue is one validated element of the venue-search result array.
type Venue struct {
	Index    int    `json:"index"` // 0-based position in the venues array
	Name     string `json:"name"`
	Distance int64  `json:"distance"` // meters; 0 when the API omits it
}

// Report is the complete result of one successful query for one host instance.
type Report struct {
	InstanceID string    `json:"instance_id"`
	FetchedAt  time.Time `json:"fetched_at"`
	Venues     []Venue   `json:"venues"`
}

// NewReport stamps venues with the current time.
func NewReport(instanceID string, venues []Venue) Report {
	return Report{
		InstanceID: instanceID,
		FetchedAt:  reportClock.Now().UTC(),
		Venues:     venues,
	}
}
