package memory

import (
	"sort"
	"sync"

	"deskbook/internal/model"
	"deskbook/internal/store"
)

var _ store.Store = (*Store)(nil)

type Store struct {
	mu sync.Mutex

	users   map[int64]model.User
	entries map[int64]model.ConnectionEntry

	userIDs  sequence
	entryIDs sequence
}

func NewStore() *Store {
	return &Store{
		users:   make(map[int64]model.User),
		entries: make(map[int64]model.ConnectionEntry),
	}
}

func (s *Store) Close() {}

type errWithCode string

func (e errWithCode) Error() string { return string(e) }

// sortedIDs returns map keys in insertion order, which for sequence ids is
// ascending order.
func sortedIDs[T any](m map[int64]T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
