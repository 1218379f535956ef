package demosite

// Config holds configuration for the fixture site.
type Config struct {
	// Port is the port on which the fixture site listens.
	Port int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{Port: 9999}
}
