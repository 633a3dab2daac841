package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/contra19/book-search/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const volumesFixture = `{
	"totalItems": 2,
	"items": [
		{
			"id": "b1",
			"volumeInfo": {
				"title": "The Go Programming Language",
				"authors": ["Alan A. A. Donovan", "Brian W. Kernighan"],
				"description": "A book about Go.",
				"imageLinks": {"thumbnail": "http://img/b1.jpg"},
				"infoLink": "http://info/b1"
			}
		},
		{
			"id": "b2",
			"volumeInfo": {
				"title": "Anonymous Pamphlet"
			}
		}
	]
}`

func newStubCatalog(t *testing.T, handler http.HandlerFunc) *CatalogClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewCatalogClient()
	c.BaseURL = srv.URL
	return c
}

func TestCatalogClient_Search(t *testing.T) {
	var gotQuery string
	c := newStubCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(volumesFixture))
	})

	books, err := c.Search(context.Background(), "golang", 0)
	require.NoError(t, err)
	assert.Equal(t, "golang", gotQuery)
	require.Len(t, books, 2)

	assert.Equal(t, models.SavedBook{
		BookID:      "b1",
		Title:       "The Go Programming Language",
		Authors:     []string{"Alan A. A. Donovan", "Brian W. Kernighan"},
		Description: "A book about Go.",
		Image:       "http://img/b1.jpg",
		Link:        "http://info/b1",
	}, books[0])

	// Missing optional fields default; no authors means the sentinel.
	assert.Equal(t, "b2", books[1].BookID)
	assert.Equal(t, []string{models.NoAuthorSentinel}, books[1].Authors)
	assert.Empty(t, books[1].Description)
	assert.Empty(t, books[1].Image)
	assert.Empty(t, books[1].Link)
}

func TestCatalogClient_SearchNoResults(t *testing.T) {
	c := newStubCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totalItems": 0}`))
	})

	books, err := c.Search(context.Background(), "nothing matches this", 0)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestCatalogClient_SearchEmptyQuery(t *testing.T) {
	c := NewCatalogClient()
	_, err := c.Search(context.Background(), "", 0)
	require.Error(t, err)
}

func TestCatalogClient_SearchUpstreamError(t *testing.T) {
	c := newStubCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	})

	_, err := c.Search(context.Background(), "golang", 0)
	require.Error(t, err)
}

func TestCatalogClient_SearchLimitClamped(t *testing.T) {
	var gotMax string
	c := newStubCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		gotMax = r.URL.Query().Get("maxResults")
		w.Write([]byte(`{"totalItems": 0}`))
	})

	_, err := c.Search(context.Background(), "golang", 100)
	require.NoError(t, err)
	assert.Equal(t, "20", gotMax)

	_, err = c.Search(context.Background(), "golang", 5)
	require.NoError(t, err)
	assert.Equal(t, "5", gotMax)
}
