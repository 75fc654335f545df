package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
	Workflow WorkflowConfig `yaml:"workflow"`
	Serial   SerialConfig   `yaml:"serial"`
	Revision RevisionConfig `yaml:"revision"`
	Notify   NotifyConfig   `yaml:"notify"`
	Storage  StorageConfig  `yaml:"storage"`
	CORS     CORSConfig     `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`

	// WritesPerMinute caps mutating API requests per actor. Zero disables the limit.
	WritesPerMinute int `yaml:"writes_per_minute" env:"SERVER_WRITES_PER_MINUTE" env-default:"120"`
}

// CORSConfig holds CORS settings for browser clients of the API.
type CORSConfig struct {
	AllowedOrigins string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
	AllowedMethods string `yaml:"allowed_methods" env:"CORS_ALLOWED_METHODS" env-default:"GET,POST,OPTIONS"`
	AllowedHeaders string `yaml:"allowed_headers" env:"CORS_ALLOWED_HEADERS" env-default:"Authorization,Content-Type,X-Request-Id"`
	MaxAge         int    `yaml:"max_age"         env:"CORS_MAX_AGE"         env-default:"86400"`
}

// DatabaseConfig holds PostgreSQL connection settings. Migrations on startup
// are opt-in: a false YAML value is indistinguishable from an unset one.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"false"`
}

// AuthConfig holds bearer-token verification settings. Tokens are minted by
// the identity provider; this service only verifies them.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	JWTIssuer string `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"doccontrol"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// WorkflowConfig holds workflow definition settings.
type WorkflowConfig struct {
	// DefinitionsDir optionally points at a directory of *.yaml definitions
	// loaded in addition to the built-in ones.
	DefinitionsDir string `yaml:"definitions_dir" env:"WORKFLOW_DEFINITIONS_DIR"`
}

// SerialConfig holds serial number issuance settings.
type SerialConfig struct {
	Prefix         string        `yaml:"prefix"          env:"SERIAL_PREFIX"          env-default:"IEMS"`
	ReservationTTL time.Duration `yaml:"reservation_ttl" env:"SERIAL_RESERVATION_TTL" env-default:"5m"`
	MaxRetries     int           `yaml:"max_retries"     env:"SERIAL_MAX_RETRIES"     env-default:"5"`
	CategoriesRaw  string        `yaml:"categories"      env:"SERIAL_CATEGORIES"      env-default:"NCR:1:4,RFI:1:3,DOC:1:4,DWG:1000:4,SUB:1:3,ITP:1:3"`

	// Categories is parsed from CategoriesRaw during validation.
	Categories []CategoryRule `yaml:"-" env:"-"`
}

// CategoryRule is the numbering rule for one serial category.
type CategoryRule struct {
	Code  string
	Start int64
	Width int
}

// RevisionConfig holds revision controller settings.
type RevisionConfig struct {
	MaxRetries int `yaml:"max_retries" env:"REVISION_MAX_RETRIES" env-default:"5"`
}

// NotifyConfig holds notification dispatch settings.
type NotifyConfig struct {
	QueueSize    int    `yaml:"queue_size"    env:"NOTIFY_QUEUE_SIZE"    env-default:"256"`
	Workers      int    `yaml:"workers"       env:"NOTIFY_WORKERS"       env-default:"2"`
	RedisAddr    string `yaml:"redis_addr"    env:"NOTIFY_REDIS_ADDR"`
	RedisChannel string `yaml:"redis_channel" env:"NOTIFY_REDIS_CHANNEL" env-default:"doccontrol.notifications"`
}

// StorageConfig holds cover-sheet archive settings. An empty bucket disables archiving.
type StorageConfig struct {
	Bucket string `yaml:"bucket" env:"STORAGE_BUCKET"`
}
