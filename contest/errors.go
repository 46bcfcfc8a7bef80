package contest

import "fmt"

// ConfigurationError is a fatal pre-flight failure: an unknown contest name
// or a calendar rule that matches no weekend. It is surfaced before any row
// processing starts and carries enough scope context to retry or skip.
type ConfigurationError struct {
	Contest  string
	Year     int
	Callsign string
	Mode     string
	Reason   string
	Err      error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("contest: %s %d %s %s: %s", e.Contest, e.Year, e.Callsign, e.Mode, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// OwnCallsignError is fatal: the operator's own callsign cannot be
// geo-resolved, which invalidates every derived field in the scope.
type OwnCallsignError struct {
	Callsign string
}

func (e *OwnCallsignError) Error() string {
	return fmt.Sprintf("contest: own callsign %s cannot be resolved", e.Callsign)
}
