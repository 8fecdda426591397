package constants

// CLIName is the name used in user-facing output to refer to the CLI
const CLIName = "synchk"

// DefaultConfigFile is looked up in the working directory when --config is not given
const DefaultConfigFile = ".synchk.yaml"

// EnvPrefix prefixes environment variables that override configuration, e.g. SYNCHK_WORKERS
const EnvPrefix = "SYNCHK"

// MaxConcurrentChecks is the default number of files checked in parallel
const MaxConcurrentChecks = 8

// WatchDebounceMilliseconds delays re-checking after a burst of file events
const WatchDebounceMilliseconds = 300

// DefaultExtensions are the file extensions considered during directory walks
var DefaultExtensions = []string{".php", ".js", ".css", ".html", ".htm", ".json"}
