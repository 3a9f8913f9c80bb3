package models

// URLRecord is a single managed URL as returned by the backend.
type URLRecord struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

// URLCreate represents data for creating a new URL record
type URLCreate struct {
	URL    string `json:"url" binding:"required"`
	Active bool   `json:"active"`
}

// URLUpdate represents a partial update; nil fields are left untouched
type URLUpdate struct {
	URL    *string `json:"url,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// PublicURL is the payload of the unauthenticated random-URL endpoint.
type PublicURL struct {
	URL string `json:"url"`
}
