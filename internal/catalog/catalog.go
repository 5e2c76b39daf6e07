// Package catalog holds the session-lifetime snapshot of reservable rooms.
package catalog

import (
	"context"

	"go.uber.org/zap"

	"kira/internal/models"
	"kira/internal/storage"
)

// Catalog is the read-only room list loaded once at startup. There is no
// refresh; a room added to the store becomes visible on the next run.
type Catalog struct {
	rooms []models.Room
}

// Load fetches every room from the store. An unreachable store yields an
// empty catalog, not an error; the assistant still runs, it just has
// nothing to offer.
func Load(ctx context.Context, store storage.Store, logger *zap.Logger) *Catalog {
	rooms, err := store.ListRooms(ctx)
	if err != nil {
		logger.Warn("Failed to load room catalog, continuing with an empty one", zap.Error(err))
		return &Catalog{}
	}
	return &Catalog{rooms: rooms}
}

// New builds a catalog directly from a room list.
func New(rooms []models.Room) *Catalog {
	return &Catalog{rooms: append([]models.Room(nil), rooms...)}
}

// Rooms returns the rooms in store order.
func (c *Catalog) Rooms() []models.Room {
	return c.rooms
}

// Names returns every room name, for enum constraints and option lists.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.rooms))
	for _, room := range c.rooms {
		names = append(names, room.Name)
	}
	return names
}

func (c *Catalog) Len() int {
	return len(c.rooms)
}
