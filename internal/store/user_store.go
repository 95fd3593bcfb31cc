package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/models"
)

// UserStore persists users.
type UserStore struct {
	collection *mongo.Collection
}

func NewUserStore(client *mongo.Client, dbName string) *UserStore {
	return &UserStore{
		collection: client.Database(dbName).Collection("users"),
	}
}

// FindByID returns the user with the given id, nil if none.
func (s *UserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns the user with the given email, nil if none.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindByLogin resolves an email address or a student code to a user.
func (s *UserStore) FindByLogin(ctx context.Context, identifier string) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{
		"$or": bson.A{
			bson.M{"email": identifier},
			bson.M{"student_id": identifier},
		},
	}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Insert writes a new user.
func (s *UserStore) Insert(ctx context.Context, user models.User) (models.User, error) {
	user.ID = primitive.NewObjectID()
	if _, err := s.collection.InsertOne(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// UpdatePassword replaces the stored password hash.
func (s *UserStore) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	_, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"password": hash},
	})
	return err
}

// ListStudents returns students, optionally restricted to one section.
func (s *UserStore) ListStudents(ctx context.Context, section string) ([]models.User, error) {
	query := bson.M{"role": models.RoleStudent}
	if section != "" {
		query["section"] = section
	}
	cursor, err := s.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// DistinctSections returns every section that has at least one student.
func (s *UserStore) DistinctSections(ctx context.Context) ([]string, error) {
	values, err := s.collection.Distinct(ctx, "section", bson.M{"role": models.RoleStudent})
	if err != nil {
		return nil, err
	}
	sections := make([]string, 0, len(values))
	for _, v := range values {
		if str, ok := v.(string); ok {
			sections = append(sections, str)
		}
	}
	return sections, nil
}
