package console

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrMutationInFlight is returned when a write is submitted while another one
// is still pending. Callers disable their submit action while Busy reports
// true, but the coordinator stays safe even when that guard is bypassed.
var ErrMutationInFlight = errors.New("another operation is already in progress")

// MutationCoordinator serializes a single create/update/delete per manager
// and keeps the operation error separate from the store's load error. A
// failed write must never blank a correctly loaded table, so the two error
// channels are never unioned.
type MutationCoordinator struct {
	mu    sync.Mutex
	busy  bool
	opErr error
	log   *zap.Logger
}

// NewMutationCoordinator creates an idle coordinator
func NewMutationCoordinator(log *zap.Logger) *MutationCoordinator {
	return &MutationCoordinator{log: log}
}

// Run executes one mutation. On success the reload callback runs afterwards,
// so the subsequent list call observes the write; its outcome lands on the
// store's own error channel, not here. On failure the operation error is
// recorded and returned so the initiating dialog stays open for correction.
func (m *MutationCoordinator) Run(ctx context.Context, mutate func(context.Context) error, reload func(context.Context) error) error {
	m.mu.Lock()
	if m.busy {
		m.mu.Unlock()
		return ErrMutationInFlight
	}
	m.busy = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.busy = false
		m.mu.Unlock()
	}()

	if err := mutate(ctx); err != nil {
		m.log.Error("Mutation failed", zap.Error(err))
		m.mu.Lock()
		m.opErr = err
		m.mu.Unlock()
		return err
	}

	m.mu.Lock()
	m.opErr = nil
	m.mu.Unlock()

	// The write completed; reload the collection under the currently active
	// filter parameters. A reload failure is a load-channel concern.
	if reload != nil {
		if err := reload(ctx); err != nil {
			m.log.Warn("Reload after mutation failed", zap.Error(err))
		}
	}

	return nil
}

// ClearOperationErr discards the recorded mutation error. Managers call this
// when a collection load settles successfully, so a failure that has since
// been resolved does not keep rendering next to fresh rows.
func (m *MutationCoordinator) ClearOperationErr() {
	m.mu.Lock()
	m.opErr = nil
	m.mu.Unlock()
}

// Busy reports whether a mutation is currently in flight
func (m *MutationCoordinator) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy
}

// OperationErr returns the error of the last failed mutation, nil after a
// successful one
func (m *MutationCoordinator) OperationErr() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opErr
}
