package handlers

import (
	"context"

	"github.com/contra19/book-search/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore is the slice of the store the handlers need. *store.DB
// satisfies it; tests use an in-memory fake.
type UserStore interface {
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	PushSavedBook(ctx context.Context, id primitive.ObjectID, book models.SavedBook) (*models.User, error)
	PullSavedBook(ctx context.Context, id primitive.ObjectID, bookID string) (*models.User, error)
}
