package runner

// Result holds the outcome of a command execution. The full output
// lives on disk at LogPath; only derived facts are kept in memory.
type Result struct {
	RunID    string // unique identifier for this run
	ExitCode int    // process exit code
	LogPath  string // log file with combined stdout and stderr
	Lines    int    // newline count of the log
}
