package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Adal612Git/miNegocioApp-backend/internal/auth/domain"
	"github.com/Adal612Git/miNegocioApp-backend/internal/platform/logger"
)

const (
	businessCollection      = "businesses"
	userCollection          = "users"
	passwordResetCollection = "password_resets"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrBusinessNotFound = errors.New("business not found")
	ErrEmailTaken       = errors.New("email already registered")
	ErrResetNotFound    = errors.New("password reset not found")
)

type AuthRepository interface {
	CreateBusiness(ctx context.Context, business *domain.Business) error
	FindBusinessByID(ctx context.Context, id string) (*domain.Business, error)
	CreateUser(ctx context.Context, user *domain.User) error
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByID(ctx context.Context, id string) (*domain.User, error)
	UpdateUserPassword(ctx context.Context, userID, passwordHash string) error
	CreatePasswordReset(ctx context.Context, reset *domain.PasswordReset) error
	FindPasswordResetByTokenHash(ctx context.Context, tokenHash string) (*domain.PasswordReset, error)
	DeletePasswordReset(ctx context.Context, id string) error
	DeleteExpiredPasswordResets(ctx context.Context, now time.Time) (int64, error)
}

type businessDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	CreatedAt time.Time          `bson:"created_at"`
}

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	BusinessID   primitive.ObjectID `bson:"business_id"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	CreatedAt    time.Time          `bson:"created_at"`
}

type passwordResetDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	TokenHash string             `bson:"token_hash"`
	ExpiresAt time.Time          `bson:"expires_at"`
}

func (doc *userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:           doc.ID.Hex(),
		BusinessID:   doc.BusinessID.Hex(),
		Name:         doc.Name,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt,
	}
}

type mongoAuthRepository struct {
	businesses     *mongo.Collection
	users          *mongo.Collection
	passwordResets *mongo.Collection
}

func NewMongoAuthRepository(db *mongo.Database) AuthRepository {
	repo := &mongoAuthRepository{
		businesses:     db.Collection(businessCollection),
		users:          db.Collection(userCollection),
		passwordResets: db.Collection(passwordResetCollection),
	}
	repo.ensureIndexes()
	return repo
}

// ensureIndexes backs the email uniqueness guarantee. Register pre-checks the
// email, but only this index closes the race between two concurrent inserts.
func (r *mongoAuthRepository) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		logger.Error("ensureIndexes: failed to create unique index on users.email", err)
	}
}

func (r *mongoAuthRepository) CreateBusiness(ctx context.Context, business *domain.Business) error {
	doc := businessDocument{
		ID:        primitive.NewObjectID(),
		Name:      business.Name,
		CreatedAt: business.CreatedAt,
	}
	if _, err := r.businesses.InsertOne(ctx, doc); err != nil {
		logger.Error("CreateBusiness: insert failed", err)
		return err
	}
	business.ID = doc.ID.Hex()
	return nil
}

func (r *mongoAuthRepository) FindBusinessByID(ctx context.Context, id string) (*domain.Business, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrBusinessNotFound
	}

	var doc businessDocument
	err = r.businesses.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		logger.Error("FindBusinessByID: query failed", err)
		return nil, err
	}
	return &domain.Business{ID: doc.ID.Hex(), Name: doc.Name, CreatedAt: doc.CreatedAt}, nil
}

func (r *mongoAuthRepository) CreateUser(ctx context.Context, user *domain.User) error {
	businessOID, err := primitive.ObjectIDFromHex(user.BusinessID)
	if err != nil {
		return err
	}

	doc := userDocument{
		ID:           primitive.NewObjectID(),
		BusinessID:   businessOID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}
	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		// a unique index on email turns a race between two registrations
		// into a duplicate-key error
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		logger.Error("CreateUser: insert failed", err)
		return err
	}
	user.ID = doc.ID.Hex()
	return nil
}

func (r *mongoAuthRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var doc userDocument
	err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		logger.Error("FindUserByEmail: query failed", err)
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *mongoAuthRepository) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	var doc userDocument
	err = r.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		logger.Error("FindUserByID: query failed", err)
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *mongoAuthRepository) UpdateUserPassword(ctx context.Context, userID, passwordHash string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrUserNotFound
	}

	result, err := r.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"password_hash": passwordHash}})
	if err != nil {
		logger.Error("UpdateUserPassword: update failed", err)
		return err
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *mongoAuthRepository) CreatePasswordReset(ctx context.Context, reset *domain.PasswordReset) error {
	userOID, err := primitive.ObjectIDFromHex(reset.UserID)
	if err != nil {
		return ErrUserNotFound
	}

	doc := passwordResetDocument{
		ID:        primitive.NewObjectID(),
		UserID:    userOID,
		TokenHash: reset.TokenHash,
		ExpiresAt: reset.ExpiresAt,
	}
	if _, err := r.passwordResets.InsertOne(ctx, doc); err != nil {
		logger.Error("CreatePasswordReset: insert failed", err)
		return err
	}
	reset.ID = doc.ID.Hex()
	return nil
}

func (r *mongoAuthRepository) FindPasswordResetByTokenHash(ctx context.Context, tokenHash string) (*domain.PasswordReset, error) {
	var doc passwordResetDocument
	err := r.passwordResets.FindOne(ctx, bson.M{"token_hash": tokenHash}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrResetNotFound
	}
	if err != nil {
		logger.Error("FindPasswordResetByTokenHash: query failed", err)
		return nil, err
	}
	return &domain.PasswordReset{
		ID:        doc.ID.Hex(),
		UserID:    doc.UserID.Hex(),
		TokenHash: doc.TokenHash,
		ExpiresAt: doc.ExpiresAt,
	}, nil
}

func (r *mongoAuthRepository) DeletePasswordReset(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrResetNotFound
	}
	if _, err := r.passwordResets.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		logger.Error("DeletePasswordReset: delete failed", err)
		return err
	}
	return nil
}

func (r *mongoAuthRepository) DeleteExpiredPasswordResets(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.passwordResets.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": now}})
	if err != nil {
		logger.Error("DeleteExpiredPasswordResets: delete failed", err)
		return 0, err
	}
	return result.DeletedCount, nil
}
