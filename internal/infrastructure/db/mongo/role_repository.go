package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayurveda/iam-service/internal/core/domain"
)

const collectionRoles = "roles"

// RoleRepository implements ports.RoleRepository using MongoDB. Roles are
// written only during bootstrap seeding.
type RoleRepository struct {
	col      *mongo.Collection
	counters *Counters
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{
		col:      db.Collection(collectionRoles),
		counters: NewCounters(db),
	}
}

type roleDoc struct {
	ID   int64  `bson:"_id"`
	Name string `bson:"name"`
}

func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.counters.Next(ctx, sequenceRoles)
	if err != nil {
		return nil, fmt.Errorf("%w: next role id: %v", domain.ErrStorage, err)
	}

	doc := roleDoc{ID: id, Name: role.Name}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateUser
		}
		return nil, fmt.Errorf("%w: insert role: %v", domain.ErrStorage, err)
	}

	return &domain.Role{ID: doc.ID, Name: doc.Name}, nil
}

func (r *RoleRepository) FindByID(ctx context.Context, id int64) (*domain.Role, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *RoleRepository) findOne(ctx context.Context, filter bson.M) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc roleDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("%w: find role: %v", domain.ErrStorage, err)
	}
	return &domain.Role{ID: doc.ID, Name: doc.Name}, nil
}

func (r *RoleRepository) FindAll(ctx context.Context) ([]domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%w: list roles: %v", domain.ErrStorage, err)
	}
	defer cur.Close(ctx)

	var docs []roleDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: decode roles: %v", domain.ErrStorage, err)
	}

	roles := make([]domain.Role, 0, len(docs))
	for _, d := range docs {
		roles = append(roles, domain.Role{ID: d.ID, Name: d.Name})
	}
	return roles, nil
}

// EnsureIndexes creates the unique name index keeping the role set closed.
func (r *RoleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
