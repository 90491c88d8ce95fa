package domain

import (
	"bytes"
	"encoding/json"
)

// DefaultAppTitle is used when the solution does not configure a title.
const DefaultAppTitle = "MapsIndoors"

// AppSettings holds the typed UI settings of a solution.
type AppSettings struct {
	Title          string `json:"title"`
	DisplayAliases bool   `json:"display_aliases"`
}

// AppConfig is the application configuration published to subscribers.
type AppConfig struct {
	AppSettings AppSettings       `json:"app_settings"`
	VenueImages map[string]string `json:"venue_images"` // lowercased venue name -> image URL
}

// RawAppSettings is the settings block as stored by the provider.
// DisplayAliases is kept in its serialized form ("true", "false", "").
type RawAppSettings struct {
	Title          string     `json:"title"`
	DisplayAliases Serialized `json:"displayAliases"`
}

// Serialized holds a JSON value in text form. A JSON string is stored
// unquoted; any other literal is stored verbatim; null becomes "".
type Serialized string

func (s *Serialized) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*s = ""
	case len(b) > 0 && b[0] == '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = Serialized(str)
	default:
		*s = Serialized(b)
	}
	return nil
}

// RawAppConfig is the configuration exactly as the provider returns it.
type RawAppConfig struct {
	AppSettings RawAppSettings    `json:"appSettings"`
	VenueImages map[string]string `json:"venueImages"`
}
