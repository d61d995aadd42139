package foursquare

import (
	"fmt"

	"github.com/couchcryptid/venue-watch/internal/domain"
)

// Fixed search parameters: coffee shops within 20 km of Berkeley.
const (
	DefaultCoords     = "near=Berkeley, CA&radius=20000"
	DefaultCategoryID = "4bf58dd8d48988d1df941735"
	DefaultAPIVersion = "20131016"
)

// MaxURLLength bounds the formatted request URL.
const MaxURLLength = 255

// Query holds the positional values substituted into the search URL.
type Query struct {
	Coords       string
	CategoryID   string
	ClientID     string
	ClientSecret string
	APIVersion   string
}

// DefaultQuery returns the fixed query with the given credentials.
func DefaultQuery(creds domain.Credentials) Query {
	return Query{
		Coords:       DefaultCoords,
		CategoryID:   DefaultCategoryID,
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		APIVersion:   DefaultAPIVersion,
	}
}

// BuildURL formats the search URL. Values are substituted verbatim, without
// escaping. A result longer than MaxURLLength is rejected rather than truncated.
func BuildURL(base string, q Query) (string, error) {
	u := fmt.Sprintf("%s?%s&categoryId=%s&client_id=%s&client_secret=%s&v=%s",
		base, q.Coords, q.CategoryID, q.ClientID, q.ClientSecret, q.APIVersion)
	if len(u) > MaxURLLength {
		return "", fmt.Errorf("%d bytes exceeds %d: %w", len(u), MaxURLLength, domain.ErrURLTooLong)
	}
	return u, nil
}
