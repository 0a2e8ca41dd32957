package truetabs

// Config holds the remote datasheet API settings.
type Config struct {
	// BaseURL is the API root without a trailing slash.
	BaseURL string `mapstructure:"base_url" default:"https://true.tabs.sale/fusion/v1"`
	// APIToken is sent as a bearer token.
	APIToken string `mapstructure:"api_token" default:""`
	// FieldKey tells the API whether field maps are keyed by "name" or "id".
	FieldKey string `mapstructure:"field_key" default:"name"`
	// TimeoutSeconds bounds one request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// RequestsPerSecond throttles outgoing requests. Zero disables throttling.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" default:"5"`
}
