// Package config defines configuration structures for the terrapull CLI.
//
// Configuration can be provided via:
//   - Command-line flags
//   - Environment variables (TERRAPULL_ prefix)
//   - YAML configuration file
//
// Precedence is flags over environment over file over defaults; the CLI
// applies overrides with [Config.Merge].
//
// # Structure
//
//	type Config struct {
//	    BaseURL     string        // tile URL template ({z}/{x}/{y})
//	    OutputDir   string        // local directory or bucket URL
//	    ZoomRange   string        // "min,max"
//	    Concurrency int
//	    Timeout     time.Duration // per-request
//	    Insecure    bool          // skip TLS verification
//	    Progress    bool
//	}
package config
