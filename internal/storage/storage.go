package storage

import (
	"context"
	"time"

	"kira/internal/models"
)

// Store is the persistent room/reservation gateway. Reservations are
// immutable once created; there is no update or cancel operation.
type Store interface {
	// ListRooms returns every reservable room.
	ListRooms(ctx context.Context) ([]models.Room, error)

	// CreateReservation persists a booking and returns its assigned id.
	CreateReservation(ctx context.Context, r models.Reservation) (string, error)

	// ReservationsInRange returns reservations for the named room that
	// overlap [start, end), ordered by start time.
	ReservationsInRange(ctx context.Context, room string, start, end time.Time) ([]models.Reservation, error)

	Close() error
}
