package repository

import (
	"context"
	"fmt"
	"time"

	"tranquilstay/pkg/config"
	mongotx "tranquilstay/pkg/db/mongo"
	"tranquilstay/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "feedback"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *model.Feedback) error
	FindAll(ctx context.Context) ([]*model.Feedback, error)
	FindByBookingID(ctx context.Context, bookingID string) ([]*model.Feedback, error)
}

type mongoFeedbackRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoFeedbackRepository(db *mongo.Database, cfg *config.Config) FeedbackRepository {
	return &mongoFeedbackRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

// NewestFirst orders feedback by timestamp descending, _id breaking ties.
func NewestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{
		{Key: "timestamp", Value: -1},
		{Key: "_id", Value: -1},
	})
}

func (r *mongoFeedbackRepository) Create(ctx context.Context, feedback *model.Feedback) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	feedback.ID = ""
	stamp := feedback.Timestamp.Time
	if stamp.IsZero() {
		stamp = time.Now().UTC()
	}
	feedback.Timestamp = model.NewTimestamp(stamp.Truncate(time.Millisecond))

	result, err := r.collection.InsertOne(ctx, feedback)
	if err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		feedback.ID = oid.Hex()
	}
	return nil
}

func (r *mongoFeedbackRepository) FindAll(ctx context.Context) ([]*model.Feedback, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoFeedbackRepository) FindByBookingID(ctx context.Context, bookingID string) ([]*model.Feedback, error) {
	return r.find(ctx, bson.M{"bookingId": bookingID})
}

func (r *mongoFeedbackRepository) find(ctx context.Context, filter bson.M) ([]*model.Feedback, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter, NewestFirst())
	if err != nil {
		return nil, fmt.Errorf("failed to find feedback: %w", err)
	}
	defer cursor.Close(ctx)

	feedback := []*model.Feedback{}
	if err = cursor.All(ctx, &feedback); err != nil {
		return nil, fmt.Errorf("failed to decode feedback: %w", err)
	}

	return feedback, nil
}
