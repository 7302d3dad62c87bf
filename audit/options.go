package audit

import "log/slog"

// Option configures an Extension.
type Option func(*Extension)

// WithRecorder sets the audit backend. Default: a recorder that writes
// events through the extension's logger.
func WithRecorder(r Recorder) Option {
	return func(e *Extension) { e.recorder = r }
}

// WithActions restricts the extension to emit only the listed actions.
// By default all actions are enabled. Unknown actions are silently
// ignored.
func WithActions(actions ...string) Option {
	return func(e *Extension) {
		e.enabled = make(map[string]bool, len(actions))
		for _, a := range actions {
			e.enabled[a] = true
		}
	}
}

// WithLogger sets the logger used by the default recorder.
func WithLogger(l *slog.Logger) Option {
	return func(e *Extension) { e.logger = l }
}
