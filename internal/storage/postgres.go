package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"kira/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(config DatabaseConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %v", err)
	}

	storage := &PostgresStorage{db: db}

	// Initialize database schema
	if err := storage.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %v", err)
	}

	return storage, nil
}

func (s *PostgresStorage) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %v", err)
	}

	_, err = s.db.Exec(string(migrationSQL))
	if err != nil {
		return fmt.Errorf("error executing migrations: %v", err)
	}

	return nil
}

func (s *PostgresStorage) ListRooms(ctx context.Context) ([]models.Room, error) {
	query := `
		SELECT id, name, location
		FROM rooms
		ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying rooms: %v", err)
	}
	defer rows.Close()

	var rooms []models.Room
	for rows.Next() {
		var room models.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Location); err != nil {
			return nil, fmt.Errorf("error scanning room: %v", err)
		}
		rooms = append(rooms, room)
	}

	return rooms, rows.Err()
}

func (s *PostgresStorage) CreateReservation(ctx context.Context, r models.Reservation) (string, error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}

	query := `
		INSERT INTO reservations (id, room, start_time, end_time, purpose, user_email)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.db.ExecContext(ctx, query,
		r.ID,
		r.Room,
		r.StartDateTime,
		r.EndDateTime,
		r.Purpose,
		r.UserEmail,
	)
	if err != nil {
		return "", fmt.Errorf("error creating reservation: %v", err)
	}

	return r.ID, nil
}

func (s *PostgresStorage) ReservationsInRange(ctx context.Context, room string, start, end time.Time) ([]models.Reservation, error) {
	query := `
		SELECT id, room, start_time, end_time, purpose, user_email
		FROM reservations
		WHERE room = $1 AND start_time < $3 AND end_time > $2
		ORDER BY start_time`

	rows, err := s.db.QueryContext(ctx, query, room, start, end)
	if err != nil {
		return nil, fmt.Errorf("error querying reservations: %v", err)
	}
	defer rows.Close()

	var reservations []models.Reservation
	for rows.Next() {
		var r models.Reservation
		err := rows.Scan(
			&r.ID,
			&r.Room,
			&r.StartDateTime,
			&r.EndDateTime,
			&r.Purpose,
			&r.UserEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning reservation: %v", err)
		}
		reservations = append(reservations, r)
	}

	return reservations, rows.Err()
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
