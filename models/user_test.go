package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailRx(t *testing.T) {
	valid := []string{"ana@x.com", "a.b+c@mail.example.org", "u@sub.domain.io"}
	for _, e := range valid {
		assert.True(t, EmailRx.MatchString(e), "expected %q to be valid", e)
	}

	invalid := []string{"", "ana", "ana@x", "@x.com", "ana@.", "ana x.com"}
	for _, e := range invalid {
		assert.False(t, EmailRx.MatchString(e), "expected %q to be invalid", e)
	}
}

func TestSavedBook_Normalize(t *testing.T) {
	b := SavedBook{BookID: "b1", Title: "T"}
	b.Normalize()
	assert.Equal(t, []string{NoAuthorSentinel}, b.Authors)

	b = SavedBook{BookID: "b1", Title: "T", Authors: []string{"A"}}
	b.Normalize()
	assert.Equal(t, []string{"A"}, b.Authors)
}

func TestUser_BookCount(t *testing.T) {
	u := User{}
	assert.Equal(t, 0, u.BookCount())

	u.SavedBooks = []SavedBook{{BookID: "a"}, {BookID: "b"}}
	assert.Equal(t, 2, u.BookCount())
}
