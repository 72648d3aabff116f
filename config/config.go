package config

// AppConfig holds the application configuration
type AppConfig struct {
	DBURL        string
	RedisAddress string
	BearerToken  string

	// Engine tunables. DefaultBookingWindowDays applies when a doctor has
	// no configured window; ScarcityLookaheadDays bounds the window over
	// which slot supply is measured; EmergencySharePercent sizes the
	// emergency-only slot pool.
	DefaultBookingWindowDays int
	ScarcityLookaheadDays    int
	EmergencySharePercent    int
}

// GetBearerToken returns the BearerToken from the config
func (c *AppConfig) GetBearerToken() string {
	return c.BearerToken
}
