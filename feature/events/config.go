package events

// Config holds configuration for the events API client.
type Config struct {
	// Endpoint is the URL of the events query endpoint.
	Endpoint string `mapstructure:"endpoint" default:"https://ra.co/graphql"`
	// PageSize is the number of listings requested per page.
	PageSize int `mapstructure:"page_size" default:"20"`
	// DelayMS is the courtesy delay between page fetches, in milliseconds.
	// There is no delay before the first page.
	DelayMS int `mapstructure:"delay_ms" default:"1000"`
	// Regions is a comma-separated list of region names to sync.
	Regions string `mapstructure:"regions" default:"costa-rica"`
	// WindowDays is the size of the listing date window, starting today.
	WindowDays int `mapstructure:"window_days" default:"365"`
	// TimeoutSeconds is the per-request HTTP timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"15"`
}
