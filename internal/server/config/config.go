// Package config loads runtime settings for the development backend.
package config

// Config holds runtime settings for the development backend.
//
// StorageBackend selects where uploaded bytes live: "memory" keeps them in
// process (uploads go through the server's own /uploads endpoints), "s3"
// hands out presigned URLs for an S3-compatible store such as MinIO.
type Config struct {
	Addr          string
	PublicBaseURL string

	StorageBackend string

	S3BaseEndpoint string
	S3Region       string
	S3Bucket       string
	S3RootUser     string
	S3RootPassword string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.PublicBaseURL = "http://127.0.0.1:8080"
	c.StorageBackend = "memory"
	c.S3Region = "us-east-1"
	c.S3Bucket = "printdraft"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
