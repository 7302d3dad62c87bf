package audit

// Audit event actions. Each constant corresponds to one lifecycle hook
// and becomes the Action field of the audit event.
const (
	ActionJobScheduled   = "job.scheduled"
	ActionJobFinished    = "job.finished"
	ActionJobFailed      = "job.failed"
	ActionJobSkipped     = "job.skipped"
	ActionManagerResumed = "manager.resumed"
	ActionManagerClosed  = "manager.closed"
)

// Audit event categories group related actions.
const (
	CategoryJob     = "trawl.job"
	CategoryManager = "trawl.manager"
)

// Resource types used as the Resource field in audit events.
const (
	ResourceJob     = "job"
	ResourceManager = "manager"
)

// Severity constants.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
)

// AllActions returns every action this extension can emit.
func AllActions() []string {
	return []string{
		ActionJobScheduled,
		ActionJobFinished,
		ActionJobFailed,
		ActionJobSkipped,
		ActionManagerResumed,
		ActionManagerClosed,
	}
}
