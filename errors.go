package textc

// UsageError marks a failure the caller can fix on the command line
// rather than in the input files, such as an unknown language key. The
// CLI maps it to a distinct exit code.
type UsageError struct {
	Reason string
	Err    error
}

func (e *UsageError) Error() string {
	if e.Err != nil {
		return "textc: " + e.Reason + ": " + e.Err.Error()
	}
	return "textc: " + e.Reason
}

func (e *UsageError) Unwrap() error { return e.Err }

// ConfigError reports an invalid Options field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "textc: invalid option " + e.Field + ": " + e.Reason
}
