package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"foodorder-be/internal/logger"
	"foodorder-be/internal/metrics"

	"go.uber.org/zap"
)

// Persistence is the storage port of the Store. Load of a missing snapshot
// returns an empty State and no error.
type Persistence interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, state State) error
}

var ErrPersistenceClosed = errors.New("cart persistence closed")

// Encode renders the persisted document: {"cartItems":[...]}.
func Encode(state State) ([]byte, error) {
	if state.CartItems == nil {
		state.CartItems = []LineItem{}
	}
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedSaveCart, err)
	}
	return data, nil
}

func Decode(data []byte) (State, error) {
	var state State
	if len(data) == 0 {
		return State{CartItems: []LineItem{}}, nil
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if state.CartItems == nil {
		state.CartItems = []LineItem{}
	}
	return state, nil
}

// ---------------- Memory ----------------

// MemoryPersistence keeps the encoded snapshot in process memory.
type MemoryPersistence struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{}
}

func (m *MemoryPersistence) Load(_ context.Context) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Decode(m.data)
}

func (m *MemoryPersistence) Save(_ context.Context, state State) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	m.saves++
	return nil
}

// Raw returns the last encoded snapshot.
func (m *MemoryPersistence) Raw() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}

func (m *MemoryPersistence) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// ---------------- File ----------------

// FilePersistence stores the snapshot as a JSON file, replaced atomically on save.
type FilePersistence struct {
	path string
}

func NewFilePersistence(path string) *FilePersistence {
	return &FilePersistence{path: path}
}

func (f *FilePersistence) Load(_ context.Context) (State, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return State{CartItems: []LineItem{}}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrFailedLoadCart, err)
	}
	return Decode(data)
}

func (f *FilePersistence) Save(_ context.Context, state State) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedSaveCart, err)
	}

	tmp, err := os.CreateTemp(dir, ".cart-*.json")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedSaveCart, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrFailedSaveCart, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedSaveCart, err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedSaveCart, err)
	}
	return nil
}

// ---------------- Async ----------------

// AsyncPersistence hands snapshots to a background writer so callers never wait
// on storage. Only the newest pending snapshot is kept; older ones are dropped.
type AsyncPersistence struct {
	next Persistence

	mu      sync.Mutex
	closed  bool
	pending chan State
	done    chan struct{}
}

func NewAsyncPersistence(next Persistence) *AsyncPersistence {
	a := &AsyncPersistence{
		next:    next,
		pending: make(chan State, 1),
		done:    make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *AsyncPersistence) Load(ctx context.Context) (State, error) {
	return a.next.Load(ctx)
}

func (a *AsyncPersistence) Save(_ context.Context, state State) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrPersistenceClosed
	}

	// Senders hold mu, so after a drain the slot is free.
	select {
	case a.pending <- state:
	default:
		select {
		case <-a.pending:
		default:
		}
		a.pending <- state
	}
	return nil
}

func (a *AsyncPersistence) run() {
	defer close(a.done)

	for state := range a.pending {
		if err := a.next.Save(context.Background(), state); err != nil {
			metrics.RecordPersistFailure("save")
			logger.L().Warn("background cart snapshot write failed",
				zap.Int("items", len(state.CartItems)),
				zap.Error(err),
			)
		}
	}
}

// Close stops accepting snapshots and waits for the pending one to be written.
func (a *AsyncPersistence) Close() error {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.pending)
	}
	a.mu.Unlock()

	<-a.done
	return nil
}
