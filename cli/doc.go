// Package cli contains the command line interface for tagargs.
//
// # Usage
//
//	tagargs parse -s tags.yaml -v vars.yaml page.html
//	tagargs check -s tags.yaml page.html
//	tagargs describe -s tags.yaml card
//	tagargs init
//
// # Configuration
//
// Flags may also be set in a YAML file at [pkg.ConfigFile]. Keys are flag
// names, with hyphens or underscores:
//
//	log-level: debug
//	log_format: json
//
// Command-line flags override the file. The init command writes the current
// flag values to it. TAGARGS_DEBUG sets parse --debug.
//
// # Logging Options
//
//   - --log-level: minimum level (trace, debug, info, warn, error)
//   - --log-format: output format (text, json)
//   - --log-time-layout: timestamp layout (RFC3339, Kitchen, none, ...)
//   - --log-caller: include caller information
//   - --log-pretty: colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: enable profiling (cpu, heap, mutex, ...)
//   - --pprof-dir: profile output directory
package cli
