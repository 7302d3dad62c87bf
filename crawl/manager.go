package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xraph/trawl"
	"github.com/xraph/trawl/hook"
	"github.com/xraph/trawl/id"
	"github.com/xraph/trawl/platform"
	"github.com/xraph/trawl/registry"
	"github.com/xraph/trawl/store"
)

// Option configures a Manager.
type Option func(*Manager) error

// WithConfig replaces the manager's configuration.
func WithConfig(cfg trawl.Config) Option {
	return func(m *Manager) error {
		m.cfg = cfg
		return nil
	}
}

// WithLogger sets the manager's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) error {
		m.logger = logger
		return nil
	}
}

// WithPolicy sets the scheduling policy. Default: OneShot.
func WithPolicy(p Policy) Option {
	return func(m *Manager) error {
		m.policy = p
		return nil
	}
}

// WithExtension registers a lifecycle extension.
func WithExtension(e hook.Extension) Option {
	return func(m *Manager) error {
		m.pendingExts = append(m.pendingExts, e)
		return nil
	}
}

// WithCheckpointStore enables checkpoint persistence. The generator
// policy snapshots its sequence counter and membership filter there
// after every tick.
func WithCheckpointStore(s store.Store) Option {
	return func(m *Manager) error {
		m.ckpt = s
		return nil
	}
}

// WithFlowID pins the flow identity checkpoints are keyed by. Use the
// same flow ID across restarts of the same logical workflow. Default:
// a freshly generated flow ID.
func WithFlowID(flowID string) Option {
	return func(m *Manager) error {
		m.flowID = flowID
		return nil
	}
}

// Manager runs the control loop for one logical crawl workflow. It owns
// all mutable scheduling state; drive it from a single goroutine.
type Manager struct {
	client platform.Client
	cfg    trawl.Config
	logger *slog.Logger
	policy Policy
	hooks  *hook.Registry
	ckpt   store.Store

	managerID id.ManagerID
	flowID    string

	reg    *registry.Registry
	failed trawl.OutcomeSet

	// closeReason latches the first failing outcome observed
	// by a policy that records one. Empty until then.
	closeReason trawl.Outcome

	pendingExts []hook.Extension
	running     bool
}

// NewManager creates a Manager for the given platform client.
func NewManager(client platform.Client, opts ...Option) (*Manager, error) {
	if client == nil {
		return nil, trawl.ErrNoClient
	}

	m := &Manager{
		client:    client,
		cfg:       trawl.DefaultConfig(),
		logger:    slog.Default(),
		managerID: id.NewManagerID(),
		reg:       registry.New(),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	if err := m.cfg.Validate(); err != nil {
		return nil, err
	}
	if m.policy == nil {
		m.policy = NewOneShot()
	}
	m.hooks = hook.NewRegistry(m.logger)
	for _, e := range m.pendingExts {
		m.hooks.Register(e)
	}
	m.pendingExts = nil
	m.failed = m.cfg.FailedOutcomeSet()
	if m.flowID == "" {
		m.flowID = id.NewFlowID().String()
	}
	if err := m.policy.attach(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Registry returns the running-job registry.
func (m *Manager) Registry() *registry.Registry { return m.reg }

// Config returns the manager's configuration.
func (m *Manager) Config() trawl.Config { return m.cfg }

// FlowID returns the flow identity checkpoints are keyed by.
func (m *Manager) FlowID() string { return m.flowID }

// ManagerID returns this process instance's identity.
func (m *Manager) ManagerID() id.ManagerID { return m.managerID }

// Policy returns the scheduling policy.
func (m *Manager) Policy() Policy { return m.policy }

// Hooks returns the lifecycle extension registry.
func (m *Manager) Hooks() *hook.Registry { return m.hooks }

// CloseReason returns the latched failing outcome, or empty when none
// was recorded.
func (m *Manager) CloseReason() trawl.Outcome { return m.closeReason }

// setCloseReason latches the close reason. First failure wins; later
// ones do not overwrite it.
func (m *Manager) setCloseReason(outcome trawl.Outcome) {
	if m.closeReason == "" {
		m.closeReason = outcome
	}
}

// Run executes the control loop until the policy signals Done, a tick
// fails, or ctx is cancelled. The first tick runs immediately; later
// ticks follow Config.LoopSchedule. In-flight remote jobs are never
// cancelled.
func (m *Manager) Run(ctx context.Context) error {
	if m.running {
		return trawl.ErrAlreadyRunning
	}
	m.running = true
	defer func() { m.running = false }()

	sched, err := ParseSchedule(m.cfg.LoopSchedule)
	if err != nil {
		return fmt.Errorf("%w: loop_schedule %q: %v", trawl.ErrInvalidConfig, m.cfg.LoopSchedule, err)
	}

	if err := m.resume(ctx); err != nil {
		return err
	}

	m.logger.Info("manager started",
		slog.String("manager_id", m.managerID.String()),
		slog.String("flow_id", m.flowID),
		slog.String("policy", m.policy.Name()),
		slog.String("schedule", m.cfg.LoopSchedule),
	)

	for {
		decision, err := m.Tick(ctx)
		if err != nil {
			m.close(ctx)
			return err
		}
		if decision == Done {
			break
		}

		timer := time.NewTimer(time.Until(sched.Next(time.Now())))
		select {
		case <-ctx.Done():
			timer.Stop()
			m.close(ctx)
			return ctx.Err()
		case <-timer.C:
		}
	}

	m.close(ctx)
	return nil
}

// Tick runs one control-loop round and persists a checkpoint when a
// store is configured. Exported so hosts that own their own cadence can
// drive the loop directly.
func (m *Manager) Tick(ctx context.Context) (Decision, error) {
	decision, err := m.policy.Tick(ctx, m)
	if err != nil {
		return decision, err
	}
	m.saveCheckpoint(ctx)
	return decision, nil
}

// Reconcile queries the platform outcome of every in-flight job,
// closing finished entries and routing failed outcomes through the
// policy's bad-outcome hook. Returns this round's resolved outcomes.
func (m *Manager) Reconcile(ctx context.Context) map[platform.Handle]trawl.Outcome {
	// Capture spiders up front; reconciliation drops finished entries.
	spiders := make(map[platform.Handle]string, m.reg.Len())
	for _, h := range m.reg.Handles() {
		if e, ok := m.reg.Get(h); ok {
			spiders[h] = e.Spider
		}
	}

	onBad := func(ctx context.Context, spider string, outcome trawl.Outcome, params trawl.JobParameters, h platform.Handle) {
		m.policy.BadOutcome(ctx, m, spider, outcome, params, h)
		m.hooks.EmitJobFailed(ctx, h, spider, outcome, params)
	}

	outcomes := m.reg.Reconcile(ctx, m.client, m.failed, onBad, m.logger)
	for h, outcome := range outcomes {
		m.hooks.EmitJobFinished(ctx, h, spiders[h], outcome)
	}
	return outcomes
}

// resolveParams merges the configured spider-argument, job-settings and
// unit defaults under the per-job override. The override wins on
// conflicts.
func (m *Manager) resolveParams(override trawl.JobParameters) trawl.JobParameters {
	resolved := make(trawl.JobParameters, len(m.cfg.SpiderArgs)+len(override))
	for k, v := range m.cfg.SpiderArgs {
		resolved[k] = v
	}
	for k, v := range override.Clone() {
		resolved[k] = v
	}

	settings := make(map[string]string, len(m.cfg.JobSettings))
	for k, v := range m.cfg.JobSettings {
		settings[k] = v
	}
	for k, v := range override.Settings() {
		settings[k] = v
	}
	if len(settings) > 0 {
		resolved[trawl.KeyJobSettings] = settings
	}

	if _, ok := override.Units(); !ok && m.cfg.Units > 0 {
		resolved[trawl.KeyUnits] = m.cfg.Units
	}
	return resolved
}

// scheduleSpider resolves the submission arguments and submits one job.
// A zero handle with a nil error means the platform declined; nothing
// is registered and the attempt is retried on a later tick.
func (m *Manager) scheduleSpider(ctx context.Context, spider string, override trawl.JobParameters) (platform.Handle, error) {
	if spider == "" {
		spider = m.cfg.Spider
	}
	if spider == "" {
		return "", trawl.ErrNoSpider
	}

	resolved := m.resolveParams(override)
	units, _ := resolved.Units()
	req := platform.SubmitRequest{
		Args:      resolved.SpiderArgs(),
		Tags:      resolved.Tags(),
		Units:     units,
		Settings:  resolved.Settings(),
		ProjectID: m.cfg.ProjectID,
	}

	h, err := m.client.Submit(ctx, spider, req)
	if err != nil {
		return "", fmt.Errorf("trawl: submit %s: %w", spider, err)
	}
	if h == "" {
		m.logger.Warn("platform declined submission", slog.String("spider", spider))
		return "", nil
	}

	m.reg.Add(h, spider, override)
	m.hooks.EmitJobScheduled(ctx, h, spider, override)
	m.logger.Info("job scheduled",
		slog.String("spider", spider),
		slog.String("handle", h.String()),
		slog.Int("running", m.reg.Len()),
	)
	return h, nil
}

// saveCheckpoint snapshots policy state to the checkpoint store, when
// both exist. Checkpoint trouble is logged, never fatal.
func (m *Manager) saveCheckpoint(ctx context.Context) {
	if m.ckpt == nil {
		return
	}
	cper, ok := m.policy.(checkpointer)
	if !ok {
		return
	}
	cp, err := cper.checkpoint(m)
	if err != nil {
		m.logger.Error("checkpoint snapshot failed", slog.String("error", err.Error()))
		return
	}
	cp.FlowID = m.flowID
	if err := m.ckpt.SaveCheckpoint(ctx, cp); err != nil {
		m.logger.Error("checkpoint save failed", slog.String("error", err.Error()))
	}
}

// close emits the manager-closed lifecycle event.
func (m *Manager) close(ctx context.Context) {
	m.saveCheckpoint(ctx)
	m.hooks.EmitManagerClosed(ctx, m.closeReason)
	m.logger.Info("manager closed",
		slog.String("flow_id", m.flowID),
		slog.String("close_reason", string(m.closeReason)),
	)
}
