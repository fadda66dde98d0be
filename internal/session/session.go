// Package session binds a data configuration to one dataset instance and
// exposes the dataset through its column roles.
//
// A Session caches the inferred state together with the fingerprint of the
// column set it was inferred from. Refresh recomputes the state only when
// the fingerprint changes, so role accessors stay cheap on repeated calls.
// A Session is not safe for concurrent use.
package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/smartframe/internal/logging"
	"github.com/mesh-intelligence/smartframe/internal/schema"
	"github.com/mesh-intelligence/smartframe/pkg/frame"
	"github.com/mesh-intelligence/smartframe/pkg/types"
)

// ErrRoleUnavailable is returned when a role view is read in a state where
// it has no meaning, such as model features of a raw dataset.
var ErrRoleUnavailable = errors.New("role not available in state")

// TransitionFunc observes state changes. It is not called for the initial
// inference.
type TransitionFunc func(prev, next types.State)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger. Degradations are logged at Warn.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = logging.OrNop(l) }
}

// WithValidator replaces the default schema engine.
func WithValidator(v schema.Validator) Option {
	return func(s *Session) { s.validator = v }
}

// WithTransitionHook registers fn to run after every state change.
func WithTransitionHook(fn TransitionFunc) Option {
	return func(s *Session) { s.onTransition = fn }
}

// Session is a dataset instance seen through a data configuration.
type Session struct {
	ID string

	cfg   *types.DataConfig
	frame *frame.Frame
	opts  []Option

	state       types.State
	fingerprint string

	logger       *zap.Logger
	validator    schema.Validator
	onTransition TransitionFunc
}

// New binds f to cfg and infers its initial state.
func New(cfg *types.DataConfig, f *frame.Frame, opts ...Option) *Session {
	s := &Session{
		ID:     newID(),
		cfg:    cfg,
		frame:  f,
		opts:   opts,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.validator == nil {
		s.validator = schema.NewEngine(s.logger)
	}
	s.logger = s.logger.With(zap.String("session", s.ID), zap.String("config", cfg.Name))

	s.fingerprint = f.Fingerprint()
	s.state = types.Infer(f.Names(), cfg)
	s.logger.Debug("dataset state inferred", zap.Stringer("state", s.state))
	if s.state.Degraded() {
		s.warnDegraded(s.state)
	}
	return s
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Config returns the bound data configuration.
func (s *Session) Config() *types.DataConfig { return s.cfg }

// Frame returns the bound dataset.
func (s *Session) Frame() *frame.Frame { return s.frame }

// State returns the state from the last refresh.
func (s *Session) State() types.State { return s.state }

// SetFrame rebinds the session to f. The state is recomputed on the next
// Refresh.
func (s *Session) SetFrame(f *frame.Frame) { s.frame = f }

// Refresh re-infers the state if the observed column set changed since the
// last inference, and reports whether the state changed.
func (s *Session) Refresh() (types.State, bool) {
	fp := s.frame.Fingerprint()
	if fp == s.fingerprint {
		return s.state, false
	}
	s.fingerprint = fp

	prev := s.state
	next := types.Infer(s.frame.Names(), s.cfg)
	if next == prev {
		return next, false
	}
	s.state = next
	s.logger.Debug("dataset state changed",
		zap.Stringer("from", prev),
		zap.Stringer("to", next),
	)
	if next.Degraded() && !prev.Degraded() {
		s.warnDegraded(next)
	}
	if s.onTransition != nil {
		s.onTransition(prev, next)
	}
	return next, true
}

func (s *Session) warnDegraded(state types.State) {
	fields := []zap.Field{zap.Stringer("state", state)}
	for tag, names := range types.MissingColumns(s.frame.Names(), s.cfg) {
		fields = append(fields, zap.Strings("missing_"+tag, names))
	}
	s.logger.Warn("dataset state degraded; validation is unavailable", fields...)
}

// Role returns the observed columns carrying the role view attr, in
// configuration order. Returns ErrRoleUnavailable when the current state
// forbids the view.
func (s *Session) Role(attr string) (*frame.Frame, error) {
	names, err := s.cfg.Role(attr)
	if err != nil {
		return nil, err
	}
	state, _ := s.Refresh()
	if !types.RoleAvailable(attr, state) {
		return nil, fmt.Errorf("%w: %s in state %s", ErrRoleUnavailable, attr, state)
	}

	observed := make([]string, 0, len(names))
	for _, name := range names {
		if s.frame.Has(name) {
			observed = append(observed, name)
		}
	}
	return s.frame.Select(observed...)
}

func (s *Session) RawFeatures() (*frame.Frame, error)     { return s.Role(types.AttrRawFeatures) }
func (s *Session) DerivedFeatures() (*frame.Frame, error) { return s.Role(types.AttrDerivedFeatures) }
func (s *Session) ModelFeatures() (*frame.Frame, error)   { return s.Role(types.AttrModelFeatures) }
func (s *Session) Target() (*frame.Frame, error)          { return s.Role(types.AttrTarget) }
func (s *Session) UniqueIdentifier() (*frame.Frame, error) {
	return s.Role(types.AttrUniqueIdentifier)
}
func (s *Session) Metadata() (*frame.Frame, error)     { return s.Role(types.AttrMetadata) }
func (s *Session) RowTimestamp() (*frame.Frame, error) { return s.Role(types.AttrRowTimestamp) }
func (s *Session) Weight() (*frame.Frame, error)       { return s.Role(types.AttrWeight) }

// Schema builds the validation schema for the current state.
func (s *Session) Schema() (*schema.Schema, error) {
	state, _ := s.Refresh()
	return schema.Build(s.cfg, state)
}

// Validate checks the dataset against the schema of its current state and
// returns a new Session bound to the coerced frame. It fails with a
// *types.StateError when the state is UNKNOWN or CORRUPTED.
func (s *Session) Validate() (*Session, error) {
	state, _ := s.Refresh()
	if state.Degraded() {
		return nil, &types.StateError{Op: "validate", State: state}
	}
	sch, err := schema.Build(s.cfg, state)
	if err != nil {
		return nil, err
	}
	validated, err := s.validator.Validate(s.frame, sch)
	if err != nil {
		return nil, fmt.Errorf("validate %s dataset: %w", state, err)
	}
	s.logger.Debug("dataset validated", zap.Int("rows", validated.Len()))
	return New(s.cfg, validated, s.opts...), nil
}
