package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port                int `yaml:"port" validate:"gte=0,lte=65535"`
	ReadHeaderTimeoutMS int `yaml:"readHeaderTimeoutMS" validate:"gte=0"`
	ReadTimeoutMS       int `yaml:"readTimeoutMS" validate:"gte=0"`
	WriteTimeoutMS      int `yaml:"writeTimeoutMS" validate:"gte=0"`
	IdleTimeoutMS       int `yaml:"idleTimeoutMS" validate:"gte=0"`
}

// StorageConfig selects where lines and stations are persisted
type StorageConfig struct {
	Path     string `yaml:"path" validate:"required_unless=InMemory true"`
	InMemory bool   `yaml:"inMemory"`
}

// CacheConfig sizes the per-line station list cache
type CacheConfig struct {
	Size int `yaml:"size" validate:"gte=0"`
}

// LoggingConfig controls the default logger
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=text json"`
}

// GTFSConfig contains GTFS static feed configuration
type GTFSConfig struct {
	StaticURL string `yaml:"staticURL" validate:"omitempty,url"`
	AgencyID  string `yaml:"agency_id" validate:"omitempty"`
	// ShapeDistUnit is the unit of shape_dist_traveled in the feed: m or km.
	ShapeDistUnit string `yaml:"shapeDistUnit" validate:"omitempty,oneof=m km"`
}

// GTFSRTConfig contains GTFS-Realtime feed configuration
type GTFSRTConfig struct {
	VehiclePositionsURL string `yaml:"vehiclePositionsURL" validate:"omitempty,url"`
	TimeoutMS           int    `yaml:"timeoutMS" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
	GTFS    GTFSConfig    `yaml:"gtfs"`
	GTFSRT  GTFSRTConfig  `yaml:"gtfsrt"`
}
