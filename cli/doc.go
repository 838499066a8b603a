// Package cli contains the command line interface for px.
//
// # Usage
//
//	px [flags] expr [expr ...]
//
// Each positional argument is one pipeline stage. Rows are read from
// standard input; when standard input is a terminal the pipeline runs once
// as a calculator. Use "--" before a stage that begins with a hyphen.
//
//	seq 5 | px int 'x * x'
//	px -e '5 / 0'
//	ls | px 'x.endswith(".go")' xargs len
//
// # Flags
//
//   - -e, --show-error: print row errors to standard error
//   - -b, --show-bool: print boolean results instead of filtering rows
//   - --symbols: YAML, TOML, JSON, or .env files of user symbols; also read
//     from PX_SYMBOL_FILEPATHS as an OS path list
//   - --seed: seed for the random library
//
// # Logging Options
//
//   - --log-level: minimum log level (trace, debug, info, warn, error)
//   - --log-format: log output format (json, text)
//   - --log-time-layout: timestamp format (RFC3339, Kitchen, none, ...)
//   - --[no-]log-caller: include caller information
//   - --[no-]log-pretty: colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: enable profiling (see [profile.Modes])
//   - --pprof-dir: profile output directory
//
// # Configuration
//
// Flag defaults are read from config.yaml and config.json in the px
// configuration directory ([pkg.ConfigDir]). Nested YAML mappings are joined
// with hyphens, so "log: {level: debug}" sets --log-level. Command line
// flags override configuration files.
package cli
