package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/contra19/book-search/middleware"
	"github.com/contra19/book-search/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UsersHandler struct {
	Store UserStore
}

type UserResponse struct {
	ID         string             `json:"id"`
	Username   string             `json:"username"`
	Email      string             `json:"email"`
	BookCount  int                `json:"bookCount"`
	SavedBooks []models.SavedBook `json:"savedBooks"`
	CreatedAt  string             `json:"createdAt"`
}

func userToResponse(u *models.User) UserResponse {
	books := u.SavedBooks
	if books == nil {
		books = []models.SavedBook{}
	}
	return UserResponse{
		ID:         u.ID.Hex(),
		Username:   u.Username,
		Email:      u.Email,
		BookCount:  u.BookCount(),
		SavedBooks: books,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
	}
}

// callerID pulls the authenticated identity out of the context and resolves
// its user id, writing the UNAUTHENTICATED response itself when absent.
func callerID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, CodeUnauthenticated, "could not authenticate user")
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(ident.ID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, CodeUnauthenticated, "could not authenticate user")
		return primitive.NilObjectID, false
	}
	return id, true
}

// Me returns the caller's full user record, password hash excluded.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := callerID(w, r)
	if !ok {
		return
	}
	user, err := h.Store.UserByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, CodeInternal, "failed to load user")
		return
	}
	if user == nil {
		// Valid token for a user that no longer exists.
		writeError(w, http.StatusUnauthorized, CodeUnauthenticated, "could not authenticate user")
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(user))
}

// SaveBook appends a book to the caller's saved list. It is an append, not
// an upsert: saving the same bookId twice yields two entries, and one
// RemoveBook cleans them all up.
func (h *UsersHandler) SaveBook(w http.ResponseWriter, r *http.Request) {
	id, ok := callerID(w, r)
	if !ok {
		return
	}
	var book models.SavedBook
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadUserInput, "invalid json")
		return
	}
	book.BookID = strings.TrimSpace(book.BookID)
	book.Title = strings.TrimSpace(book.Title)
	if book.BookID == "" || book.Title == "" {
		writeError(w, http.StatusBadRequest, CodeBadUserInput, "bookId and title required")
		return
	}
	book.Normalize()

	user, err := h.Store.PushSavedBook(r.Context(), id, book)
	if err != nil {
		writeError(w, http.StatusInternalServerError, CodeInternal, "failed to save book")
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, CodeUnauthenticated, "could not authenticate user")
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(user))
}

// RemoveBook removes every saved entry matching the bookId. Removing an id
// that was never saved is not an error; the unchanged user comes back.
func (h *UsersHandler) RemoveBook(w http.ResponseWriter, r *http.Request) {
	id, ok := callerID(w, r)
	if !ok {
		return
	}
	bookID := chi.URLParam(r, "bookId")
	if bookID == "" {
		writeError(w, http.StatusBadRequest, CodeBadUserInput, "bookId required")
		return
	}
	user, err := h.Store.PullSavedBook(r.Context(), id, bookID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, CodeInternal, "failed to remove book")
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, CodeUnauthenticated, "could not authenticate user")
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(user))
}
