package domain

// ConfigVersion is the only config file schema version understood.
const ConfigVersion = "1"

// Config controls which tables are sorted and how they are annotated.
type Config struct {
	Marker string
	Tables []TableSpec
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Marker: DefaultMarker,
		Tables: DefaultTableSpecs(),
	}
}
