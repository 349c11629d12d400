// Package config defines configuration structures for the wikimirror CLI.
//
// Configuration can be provided via:
//   - Command-line flags
//   - Environment variables (WIKIMIRROR_ prefix)
//   - YAML configuration file
//
// Precedence is flags over environment over file over defaults. The
// resulting Config is built once at startup and never mutated during
// a run.
//
// # Structure
//
//	type Config struct {
//	    Manifest string        // manifest file path
//	    BaseURL  string        // wiki base URL for description exports
//	    Images   string        // asset destination (path or bucket URL)
//	    Descs    string        // description destination (path or bucket URL)
//	    ErrorLog string        // 404 log path
//	    Workers  int           // worker pool size
//	    Timeout  time.Duration // per-request HTTP timeout
//	    Progress bool          // live progress display
//	}
package config
