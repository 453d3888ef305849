package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayurveda/iam-service/internal/core/domain"
	"github.com/ayurveda/iam-service/internal/core/ports"
)

const collectionAuthEvents = "auth_events"

// AuditRepository persists the login audit trail.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAuthEvents)}
}

func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuthEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"username":    event.Username,
		"result":      string(event.Result),
		"timestamp":   event.Timestamp.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if event.RemoteIP != "" {
		doc["remote_ip"] = event.RemoteIP
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("%w: insert auth event: %v", domain.ErrStorage, err)
	}
	return nil
}

// FindByUsername returns the most recent auth events for a user, newest first.
func (r *AuditRepository) FindByUsername(ctx context.Context, username string, limit int64) ([]domain.AuthEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cur, err := r.col.Find(ctx, bson.M{"username": username}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: list auth events: %v", domain.ErrStorage, err)
	}
	defer cur.Close(ctx)

	var docs []struct {
		Username  string    `bson:"username"`
		Result    string    `bson:"result"`
		Timestamp time.Time `bson:"timestamp"`
		RemoteIP  string    `bson:"remote_ip"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: decode auth events: %v", domain.ErrStorage, err)
	}

	events := make([]domain.AuthEvent, 0, len(docs))
	for _, d := range docs {
		events = append(events, domain.AuthEvent{
			Username:  d.Username,
			Result:    domain.AuthEventResult(d.Result),
			Timestamp: d.Timestamp,
			RemoteIP:  d.RemoteIP,
		})
	}
	return events, nil
}
