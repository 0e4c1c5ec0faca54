package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config enthält alle Konfigurationsparameter aus Umgebungsvariablen.
type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:"4350"`
	LogMode  string `envconfig:"LOG_MODE" default:"production"`

	// Artikel-Backend, das Persistenz, Duplikatprüfung, Dateiablage und Excel-Export übernimmt
	BackendURL     string        `envconfig:"BACKEND_URL" required:"true"`
	BackendAPIKey  string        `envconfig:"BACKEND_API_KEY"`
	BackendTimeout time.Duration `envconfig:"BACKEND_TIMEOUT" default:"0s"`

	ItemsPerPage int   `envconfig:"ITEMS_PER_PAGE" default:"25"`
	MaxUploadMB  int64 `envconfig:"MAX_UPLOAD_MB" default:"16"`

	SessionIdleTimeout   time.Duration `envconfig:"SESSION_IDLE_TIMEOUT" default:"12h"`
	SessionSweepSchedule string        `envconfig:"SESSION_SWEEP_SCHEDULE" default:"@every 15m"`

	// Snapshots der Artikelliste nach S3 (leer = deaktiviert)
	SnapshotSchedule string `envconfig:"SNAPSHOT_SCHEDULE"`
	KeepSnapshots    int    `envconfig:"KEEP_SNAPSHOTS" default:"7"`

	// Optionales S3-Archiv für Exporte und Snapshots
	ArchiveS3URL    string `envconfig:"ARCHIVE_S3_URL"`
	ArchiveS3Region string `envconfig:"ARCHIVE_S3_REGION" default:"eu-central-1"`
	ArchiveS3Key    string `envconfig:"ARCHIVE_S3_KEY"`
	ArchiveS3Secret string `envconfig:"ARCHIVE_S3_SECRET"`
	ArchiveS3Bucket string `envconfig:"ARCHIVE_S3_BUCKET"`
	ArchiveExports  bool   `envconfig:"ARCHIVE_EXPORTS" default:"false"`

	MetricsAPIKey      string `envconfig:"METRICS_API_KEY"`
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS"`
}

// ArchiveEnabled meldet, ob ein S3-Bucket konfiguriert ist.
func (c *Config) ArchiveEnabled() bool {
	return c.ArchiveS3Bucket != "" && c.ArchiveS3URL != ""
}

// MaxUploadBytes gibt die Obergrenze für Datei-Uploads in Bytes zurück.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB * 1024 * 1024
}

// AllowedOrigins zerlegt CORS_ALLOWED_ORIGINS in eine Liste.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return &c, err
}
