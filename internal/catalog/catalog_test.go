package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"kira/internal/models"
	"kira/internal/storage"
)

type unreachableStore struct{}

func (unreachableStore) ListRooms(ctx context.Context) ([]models.Room, error) {
	return nil, errors.New("store unreachable")
}

func (unreachableStore) CreateReservation(ctx context.Context, r models.Reservation) (string, error) {
	return "", errors.New("store unreachable")
}

func (unreachableStore) ReservationsInRange(ctx context.Context, room string, start, end time.Time) ([]models.Reservation, error) {
	return nil, errors.New("store unreachable")
}

func (unreachableStore) Close() error { return nil }

func TestLoad(t *testing.T) {
	rooms := []models.Room{
		{ID: "R1", Name: "Lounge A", Location: "B1"},
		{ID: "R2", Name: "Creative Studio", Location: "5F"},
	}
	cat := Load(context.Background(), storage.NewMemoryStorage(rooms), zap.NewNop())

	if cat.Len() != 2 {
		t.Fatalf("Len = %d, want 2", cat.Len())
	}
	names := cat.Names()
	if names[0] != "Lounge A" || names[1] != "Creative Studio" {
		t.Errorf("Names = %v", names)
	}
}

func TestLoadFailureYieldsEmptyCatalog(t *testing.T) {
	cat := Load(context.Background(), unreachableStore{}, zap.NewNop())
	if cat.Len() != 0 {
		t.Fatalf("unreachable store must yield an empty catalog, got %d rooms", cat.Len())
	}
	if len(cat.Rooms()) != 0 || len(cat.Names()) != 0 {
		t.Error("empty catalog leaked rooms")
	}
}
