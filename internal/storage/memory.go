package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"kira/internal/models"
)

// MemoryStorage keeps rooms and reservations in process memory. It backs
// tests and credential-free local runs.
type MemoryStorage struct {
	mu           sync.RWMutex
	rooms        []models.Room
	reservations map[string]models.Reservation
}

func NewMemoryStorage(rooms []models.Room) *MemoryStorage {
	return &MemoryStorage{
		rooms:        append([]models.Room(nil), rooms...),
		reservations: make(map[string]models.Reservation),
	}
}

func (s *MemoryStorage) ListRooms(ctx context.Context) ([]models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.Room(nil), s.rooms...), nil
}

func (s *MemoryStorage) CreateReservation(ctx context.Context, r models.Reservation) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	s.reservations[r.ID] = r
	return r.ID, nil
}

func (s *MemoryStorage) ReservationsInRange(ctx context.Context, room string, start, end time.Time) ([]models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.Reservation
	for _, r := range s.reservations {
		if r.Room != room {
			continue
		}
		if r.StartDateTime.Before(end) && r.EndDateTime.After(start) {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartDateTime.Before(result[j].StartDateTime)
	})
	return result, nil
}

func (s *MemoryStorage) Close() error {
	// Nothing to close for in-memory storage
	return nil
}
