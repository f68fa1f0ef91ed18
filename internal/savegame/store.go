package savegame

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"
)

var (
	// ErrSlotNotFound is returned by stores for a slot without data.
	ErrSlotNotFound = errors.New("save slot not found")
	// ErrLiveProfile is returned when restoring a profile whose auras or
	// items are still attached to a hero.
	ErrLiveProfile = errors.New("profile is attached to a live hero")
)

// SlotInfo describes one stored save.
type SlotInfo struct {
	Slot      string
	Size      int
	UpdatedAt time.Time
}

// Store persists encoded save files by slot name.
type Store interface {
	Put(ctx context.Context, slot string, data []byte) error
	// Get returns ErrSlotNotFound (possibly wrapped) for an empty slot.
	Get(ctx context.Context, slot string) ([]byte, error)
	// List returns every slot ordered by name.
	List(ctx context.Context) ([]SlotInfo, error)
	// Delete removes a slot. Deleting an empty slot is not an error.
	Delete(ctx context.Context, slot string) error
}

// MemoryStore keeps saves in memory. Used by tests and the "memory" driver.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string]memorySlot
	now   func() time.Time
}

type memorySlot struct {
	data      []byte
	updatedAt time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string]memorySlot), now: time.Now}
}

func (s *MemoryStore) Put(_ context.Context, slot string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[slot] = memorySlot{data: slices.Clone(data), updatedAt: s.now()}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, slot string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.slots[slot]
	if !ok {
		return nil, ErrSlotNotFound
	}
	return slices.Clone(m.data), nil
}

func (s *MemoryStore) List(_ context.Context) ([]SlotInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	infos := make([]SlotInfo, 0, len(s.slots))
	for name, m := range s.slots {
		infos = append(infos, SlotInfo{Slot: name, Size: len(m.data), UpdatedAt: m.updatedAt})
	}
	slices.SortFunc(infos, func(a, b SlotInfo) int {
		switch {
		case a.Slot < b.Slot:
			return -1
		case a.Slot > b.Slot:
			return 1
		}
		return 0
	})
	return infos, nil
}

func (s *MemoryStore) Delete(_ context.Context, slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, slot)
	return nil
}
