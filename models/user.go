package models

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NoAuthorSentinel is stored in place of an empty authors list so the
// client always has something to render.
const NoAuthorSentinel = "No author to display"

// EmailRx accepts the local@domain.tld shape; anything stricter rejects
// addresses that real providers hand out.
var EmailRx = regexp.MustCompile(`^.+@.+\..+$`)

type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username   string             `bson:"username" json:"username"`
	Email      string             `bson:"email" json:"email"`
	Password   string             `bson:"password" json:"-"` // bcrypt hash
	SavedBooks []SavedBook        `bson:"savedBooks" json:"savedBooks"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// SavedBook is embedded in the user document; it is never addressed outside
// its owning user. BookID is the external catalog id, not a Mongo id.
type SavedBook struct {
	BookID      string   `bson:"bookId" json:"bookId"`
	Title       string   `bson:"title" json:"title"`
	Authors     []string `bson:"authors" json:"authors"`
	Description string   `bson:"description,omitempty" json:"description"`
	Image       string   `bson:"image,omitempty" json:"image"`
	Link        string   `bson:"link,omitempty" json:"link"`
}

// Normalize fills defaults on a book before it is persisted.
func (b *SavedBook) Normalize() {
	if len(b.Authors) == 0 {
		b.Authors = []string{NoAuthorSentinel}
	}
}

// BookCount returns the number of saved books.
func (u *User) BookCount() int {
	return len(u.SavedBooks)
}
