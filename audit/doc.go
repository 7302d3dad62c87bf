// Package audit provides a lifecycle extension that turns manager
// events into structured audit records. Every hook the manager emits
// (job scheduled, job finished, job failed, job skipped, manager
// resumed, manager closed) becomes one AuditEvent handed to a
// pluggable Recorder.
//
// The default recorder writes events through log/slog, which is enough
// for an operator tailing the manager's output. Deployments with a
// dedicated audit backend supply a RecorderFunc bridging to it.
//
//	mgr, err := crawl.NewManager(client,
//	    crawl.WithExtension(audit.New(
//	        audit.WithActions(audit.ActionJobFailed, audit.ActionManagerClosed),
//	    )),
//	)
package audit
