package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingerrors "roomly/internal/booking/errors"
	"roomly/pkg/config"
	"roomly/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Rooms"
)

// RoomStore persists Room aggregates. The booking service assumes no
// transactional guarantees beyond reads observing the caller's own prior
// Save; concurrent same-room writes are excluded by the per-room lock
// held in the service layer.
type RoomStore interface {
	FindByID(ctx context.Context, id string) (*model.Room, error)
	FindAll(ctx context.Context) ([]*model.Room, error)
	Save(ctx context.Context, room *model.Room) error
}

type mongoRoomStore struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoRoomStore(cfg *config.Config) RoomStore {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRoomStore{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

// withTimeout bounds a single store operation without shrinking a tighter
// deadline already present on the request context.
func (s *mongoRoomStore) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (s *mongoRoomStore) FindByID(ctx context.Context, id string) (*model.Room, error) {
	ctx, cancel := s.withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var room model.Room
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&room)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingerrors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to find room: %w", err)
	}

	return &room, nil
}

func (s *mongoRoomStore) FindAll(ctx context.Context) ([]*model.Room, error) {
	ctx, cancel := s.withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	// Stable enumeration order; callers rely on it being deterministic,
	// not on any particular sort.
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find rooms: %w", err)
	}
	defer cursor.Close(ctx)

	var rooms []*model.Room
	if err = cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode rooms: %w", err)
	}

	return rooms, nil
}

func (s *mongoRoomStore) Save(ctx context.Context, room *model.Room) error {
	ctx, cancel := s.withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	room.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	// Last-writer-wins replace; never called concurrently for the same
	// room under the service's per-room lock.
	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection.ReplaceOne(ctx, bson.M{"_id": room.ID}, room, opts); err != nil {
		return fmt.Errorf("failed to save room: %w", err)
	}

	return nil
}
