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

const collectionUsers = "users"

// UserRepository implements ports.UserRepository using MongoDB. Numeric ids
// come from the counters collection; username and email uniqueness is
// enforced by unique indexes so concurrent creates cannot both succeed.
type UserRepository struct {
	col      *mongo.Collection
	counters *Counters
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		col:      db.Collection(collectionUsers),
		counters: NewCounters(db),
	}
}

type userDoc struct {
	ID               int64     `bson:"_id"`
	Username         string    `bson:"username"`
	Email            string    `bson:"email"`
	PasswordHash     string    `bson:"password_hash"`
	FirstName        string    `bson:"first_name,omitempty"`
	LastName         string    `bson:"last_name,omitempty"`
	Phone            string    `bson:"phone"`
	Department       string    `bson:"department,omitempty"`
	EmployeeID       string    `bson:"employee_id,omitempty"`
	ReportingManager string    `bson:"reporting_manager,omitempty"`
	Status           string    `bson:"status"`
	RoleID           int64     `bson:"role_id"`
	RoleName         string    `bson:"role_name"`
	CreatedAt        time.Time `bson:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at"`
}

func toUserDoc(u *domain.User) userDoc {
	return userDoc{
		ID:               u.ID,
		Username:         u.Username,
		Email:            u.Email,
		PasswordHash:     u.PasswordHash,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Phone:            u.Phone,
		Department:       u.Department,
		EmployeeID:       u.EmployeeID,
		ReportingManager: u.ReportingManager,
		Status:           string(u.Status),
		RoleID:           u.Role.ID,
		RoleName:         u.Role.Name,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func (d userDoc) toDomain() domain.User {
	return domain.User{
		ID:               d.ID,
		Username:         d.Username,
		Email:            d.Email,
		PasswordHash:     d.PasswordHash,
		FirstName:        d.FirstName,
		LastName:         d.LastName,
		Phone:            d.Phone,
		Department:       d.Department,
		EmployeeID:       d.EmployeeID,
		ReportingManager: d.ReportingManager,
		Status:           domain.UserStatus(d.Status),
		Role:             domain.Role{ID: d.RoleID, Name: d.RoleName},
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

// Create inserts a new user. Timestamps and the numeric id are assigned here,
// never by the caller. A unique-index collision maps to ErrDuplicateUser.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.counters.Next(ctx, sequenceUsers)
	if err != nil {
		return nil, fmt.Errorf("%w: next user id: %v", domain.ErrStorage, err)
	}

	now := time.Now().UTC()
	doc := toUserDoc(user)
	doc.ID = id
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateUser
		}
		return nil, fmt.Errorf("%w: insert user: %v", domain.ErrStorage, err)
	}

	created := doc.toDomain()
	return &created, nil
}

// Update replaces the stored document as a whole, preserving created_at and
// stamping updated_at. A full-document replace keeps the write atomic: no
// reader observes a partially updated user.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toUserDoc(user)
	doc.UpdatedAt = time.Now().UTC()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": user.ID}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateUser
		}
		return nil, fmt.Errorf("%w: update user: %v", domain.ErrStorage, err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrUserNotFound
	}

	updated := doc.toDomain()
	return &updated, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%w: delete user: %v", domain.ErrStorage, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: find user: %v", domain.ErrStorage, err)
	}

	user := doc.toDomain()
	return &user, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %v", domain.ErrStorage, err)
	}
	defer cur.Close(ctx)

	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: decode users: %v", domain.ErrStorage, err)
	}

	users := make([]domain.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toDomain())
	}
	return users, nil
}

// EnsureIndexes creates the unique indexes backing the identity invariants.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
