package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/printdraft/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-addr string     listen address (default from Config)
//	-public string   externally reachable base URL of this server
//	-storage string  storage backend, "memory" or "s3"
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-addr", "-public", "-storage"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&cfg.PublicBaseURL, "public", cfg.PublicBaseURL, "externally reachable base URL")
	fs.StringVar(&cfg.StorageBackend, "storage", cfg.StorageBackend, "storage backend (memory or s3)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
