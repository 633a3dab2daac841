package handlers_test

import (
	"context"
	"errors"
	"sync"

	"github.com/contra19/book-search/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStore is an in-memory UserStore. It mimics the store contract the
// handlers rely on: lookups return nil for no match, and the push/pull
// helpers return the updated user or nil when the user is gone.
type fakeStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
	// fail makes every call return an error, for 500-path tests.
	fail bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[primitive.ObjectID]*models.User)}
}

var errStore = errors.New("store unavailable")

func (s *fakeStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, errStore
	}
	for _, u := range s.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) UserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, errStore
	}
	for _, u := range s.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) UserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, errStore
	}
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (s *fakeStore) CreateUser(_ context.Context, user *models.User) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return primitive.NilObjectID, errStore
	}
	id := primitive.NewObjectID()
	c := *user
	c.ID = id
	s.users[id] = &c
	return id, nil
}

func (s *fakeStore) PushSavedBook(_ context.Context, id primitive.ObjectID, book models.SavedBook) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, errStore
	}
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	u.SavedBooks = append(u.SavedBooks, book)
	c := *u
	return &c, nil
}

func (s *fakeStore) PullSavedBook(_ context.Context, id primitive.ObjectID, bookID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, errStore
	}
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	kept := u.SavedBooks[:0]
	for _, b := range u.SavedBooks {
		if b.BookID != bookID {
			kept = append(kept, b)
		}
	}
	u.SavedBooks = kept
	c := *u
	return &c, nil
}
