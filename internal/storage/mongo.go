package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"kira/internal/models"
)

const mongoOpTimeout = 5 * time.Second

type MongoConfig struct {
	URI      string
	Database string
}

// MongoStorage keeps rooms and reservations as documents. Reservation
// times are stored as epoch seconds and converted back to KST on read,
// matching the shape the original document store used.
type MongoStorage struct {
	client       *mongo.Client
	rooms        *mongo.Collection
	reservations *mongo.Collection
}

type roomDoc struct {
	ID       string `bson:"_id"`
	Name     string `bson:"name"`
	Location string `bson:"location"`
}

type reservationDoc struct {
	ID            string `bson:"_id"`
	Room          string `bson:"room"`
	StartDateTime int64  `bson:"startDateTime"`
	EndDateTime   int64  `bson:"endDateTime"`
	Purpose       string `bson:"purpose"`
	UserEmail     string `bson:"user_email"`
}

func NewMongoStorage(config MongoConfig) (*MongoStorage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.URI))
	if err != nil {
		return nil, fmt.Errorf("error connecting to mongodb: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("error pinging mongodb: %v", err)
	}

	db := client.Database(config.Database)
	return &MongoStorage{
		client:       client,
		rooms:        db.Collection("rooms"),
		reservations: db.Collection("reservations"),
	}, nil
}

func (s *MongoStorage) ListRooms(ctx context.Context) ([]models.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	cursor, err := s.rooms.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, fmt.Errorf("error querying rooms: %v", err)
	}
	defer cursor.Close(ctx)

	var docs []roomDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding rooms: %v", err)
	}

	rooms := make([]models.Room, 0, len(docs))
	for _, d := range docs {
		rooms = append(rooms, models.Room{ID: d.ID, Name: d.Name, Location: d.Location})
	}
	return rooms, nil
}

func (s *MongoStorage) CreateReservation(ctx context.Context, r models.Reservation) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	doc := reservationDoc{
		ID:            r.ID,
		Room:          r.Room,
		StartDateTime: r.StartDateTime.Unix(),
		EndDateTime:   r.EndDateTime.Unix(),
		Purpose:       r.Purpose,
		UserEmail:     r.UserEmail,
	}
	if _, err := s.reservations.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("error creating reservation: %v", err)
	}
	return r.ID, nil
}

func (s *MongoStorage) ReservationsInRange(ctx context.Context, room string, start, end time.Time) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	filter := bson.M{
		"room":          room,
		"startDateTime": bson.M{"$lt": end.Unix()},
		"endDateTime":   bson.M{"$gt": start.Unix()},
	}
	cursor, err := s.reservations.Find(ctx, filter, options.Find().SetSort(bson.M{"startDateTime": 1}))
	if err != nil {
		return nil, fmt.Errorf("error querying reservations: %v", err)
	}
	defer cursor.Close(ctx)

	var docs []reservationDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding reservations: %v", err)
	}

	reservations := make([]models.Reservation, 0, len(docs))
	for _, d := range docs {
		reservations = append(reservations, models.Reservation{
			ID:            d.ID,
			Room:          d.Room,
			StartDateTime: time.Unix(d.StartDateTime, 0).In(models.KST),
			EndDateTime:   time.Unix(d.EndDateTime, 0).In(models.KST),
			Purpose:       d.Purpose,
			UserEmail:     d.UserEmail,
		})
	}
	return reservations, nil
}

func (s *MongoStorage) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}
