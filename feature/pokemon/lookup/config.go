package lookup

// Config holds configuration for the PokeAPI client.
type Config struct {
	// BaseURL is the PokeAPI root, without trailing slash.
	BaseURL string `mapstructure:"base_url" default:"https://pokeapi.co/api/v2"`
	// TimeoutSeconds bounds a single lookup request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}
