package config

// DefaultAPIVersion is the Version header value sent with every API request.
const DefaultAPIVersion = "2021-07-28"

// Config holds location and output preferences, independent of profiles.
// It also carries the legacy default location used when no profile is active.
type Config struct {
	// LocationID is the default location/sub-account ID.
	LocationID string `json:"location_id,omitempty"`
	// APIVersion is the API version header value.
	APIVersion string `json:"api_version"`
	// OutputFormat is the default output format (table, json, csv, yaml, quiet).
	OutputFormat string `json:"output_format"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		APIVersion:   DefaultAPIVersion,
		OutputFormat: "table",
	}
}

// Profile is a named pair of API token and default location. The two fields
// are always written together; a profile never has one without the other.
type Profile struct {
	APIToken   string `json:"api_token"`
	LocationID string `json:"location_id"`
}

// ProfileInfo describes a profile for listing.
type ProfileInfo struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// profilesData is the on-disk shape of the profiles file.
type profilesData struct {
	Active   string             `json:"active,omitempty"`
	Profiles map[string]Profile `json:"profiles"`
}

// credentialsData is the on-disk shape of the legacy credentials file.
type credentialsData struct {
	APIToken string `json:"api_token"`
}
