package nvram

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/nvram/blobstore"
	"github.com/hupe1980/nvram/internal/block"
	"github.com/hupe1980/nvram/persistence"
)

// DefaultName is the store name used by the command line tool.
const DefaultName = "nvram.blk"

// Manager owns one persisted region of type T.
//
// T must start with a persistence.Header and satisfy the rules checked by
// persistence.LayoutOf. The value passed to New supplies the defaults,
// including the expected header, whose Format must be persistence.FormatTag.
type Manager[T any] struct {
	store   blobstore.BlobStore
	name    string
	region  T
	layout  persistence.Layout
	state   State
	hooks   *ExitHooks
	logger  *Logger
	metrics MetricsCollector
}

// New creates a Manager for the block called name in store.
func New[T any](store blobstore.BlobStore, name string, defaults T, optFns ...Option) (*Manager[T], error) {
	if store == nil {
		return nil, fmt.Errorf("%w: nil store", ErrInvalidArgument)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: empty store name", ErrInvalidArgument)
	}
	layout, err := persistence.LayoutOf[T]()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, layout.Size)
	if _, err := persistence.Encode(&defaults, buf); err != nil {
		return nil, err
	}
	hdr, err := persistence.DecodeHeader(buf)
	if err != nil {
		return nil, err
	}
	if hdr.Format != persistence.FormatTag {
		return nil, fmt.Errorf("%w: defaults carry format tag %#x, want %#x (use persistence.NewHeader)",
			ErrInvalidArgument, hdr.Format, persistence.FormatTag)
	}

	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	if o.hooks == nil {
		o.hooks = NewExitHooks()
	}

	return &Manager[T]{
		store:   store,
		name:    name,
		region:  defaults,
		layout:  layout,
		state:   StateUninitialized,
		hooks:   o.hooks,
		logger:  o.logger.WithStore(name),
		metrics: o.metricsCollector,
	}, nil
}

// Region returns the region. Fields may be read and written freely between
// Initialize and Close.
func (m *Manager[T]) Region() *T { return &m.region }

// State returns the current lifecycle state.
func (m *Manager[T]) State() State { return m.state }

// Name returns the store name.
func (m *Manager[T]) Name() string { return m.name }

// Layout returns the checked layout of T.
func (m *Manager[T]) Layout() persistence.Layout { return m.layout }

// Hooks returns the registry the save hook is registered on.
func (m *Manager[T]) Hooks() *ExitHooks { return m.hooks }

// Initialize loads the stored block, validates it and arms the save.
//
//   - OutcomeSuccess: the stored block replaced the defaults.
//   - OutcomeWarning: the block could not be read (missing, short, store
//     unavailable); the defaults stay and are saved on exit. The returned
//     error is a *TransferError.
//   - OutcomeFatal: the block belongs to another format or version, or the
//     save could not be armed. The region keeps its defaults, the store is
//     never written, and the caller should stop.
func (m *Manager[T]) Initialize(ctx context.Context) (Outcome, error) {
	if m.state != StateUninitialized {
		return OutcomeFatal, fmt.Errorf("%w: initialize called in state %s", ErrInvalidState, m.state)
	}

	buf := make([]byte, m.layout.Size)
	if _, err := persistence.Encode(&m.region, buf); err != nil {
		m.state = StateFailed
		return OutcomeFatal, err
	}
	expected, err := persistence.DecodeHeader(buf)
	if err != nil {
		m.state = StateFailed
		return OutcomeFatal, err
	}

	outcome := OutcomeSuccess
	loadErr := m.load(ctx, buf)
	m.state = StateLoaded
	if loadErr != nil {
		outcome = OutcomeWarning
	} else {
		loaded, _ := persistence.DecodeHeader(buf)
		err := persistence.Validate(expected, loaded)
		m.metrics.RecordValidation(err)
		m.logger.LogValidation(ctx, expected, loaded, err)
		if err != nil {
			m.state = StateFailed
			return OutcomeFatal, err
		}
		if _, err := persistence.Decode(buf, &m.region); err != nil {
			m.state = StateFailed
			return OutcomeFatal, err
		}
	}
	m.state = StateValidated

	if err := m.hooks.Register(m.save); err != nil {
		m.logger.LogArm(ctx, err)
		m.state = StateFailed
		return OutcomeFatal, err
	}
	m.logger.LogArm(ctx, nil)
	m.state = StateArmed

	return outcome, loadErr
}

// load reads the stored block into buf, which is scratch space: a short
// read never reaches the region.
func (m *Manager[T]) load(ctx context.Context, buf []byte) error {
	start := time.Now()
	err := block.Transfer(ctx, m.store, buf, m.layout.Size, m.name, block.Read)
	m.metrics.RecordLoad(m.layout.Size, time.Since(start), err)
	m.logger.LogLoad(ctx, m.layout.Size, err)
	return translateError(err)
}

// save writes the whole region once. It runs as the exit hook and from Close.
func (m *Manager[T]) save(ctx context.Context) error {
	if m.state != StateArmed {
		return nil
	}
	m.state = StateTerminating

	buf := make([]byte, m.layout.Size)
	if _, err := persistence.Encode(&m.region, buf); err != nil {
		return err
	}

	start := time.Now()
	err := block.Transfer(ctx, m.store, buf, m.layout.Size, m.name, block.Write)
	m.metrics.RecordSave(m.layout.Size, time.Since(start), err)
	m.logger.LogSave(ctx, m.layout.Size, err)
	return translateError(err)
}
