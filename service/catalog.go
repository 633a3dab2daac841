package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/contra19/book-search/models"
)

const googleBooksBase = "https://www.googleapis.com/books/v1/volumes"

const defaultSearchLimit = 20

// CatalogClient searches the Google Books volumes API and normalizes
// results into the saved-book shape.
type CatalogClient struct {
	// BaseURL defaults to the Google Books volumes endpoint; tests point it
	// at a local stub.
	BaseURL    string
	HTTPClient *http.Client
}

// NewCatalogClient returns a client with a short timeout so a slow upstream
// doesn't hang search requests.
func NewCatalogClient() *CatalogClient {
	return &CatalogClient{
		BaseURL:    googleBooksBase,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// volumesResp is the slice of the Google Books response this client reads.
type volumesResp struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		ID         string `json:"id"`
		VolumeInfo struct {
			Title       string   `json:"title"`
			Authors     []string `json:"authors"`
			Description string   `json:"description"`
			ImageLinks  struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
			InfoLink string `json:"infoLink"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// Search queries the catalog for query and returns up to limit normalized
// books. A query with no matches returns an empty slice, not an error.
func (c *CatalogClient) Search(ctx context.Context, query string, limit int) ([]models.SavedBook, error) {
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}
	if limit <= 0 || limit > 40 {
		limit = defaultSearchLimit
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("maxResults", fmt.Sprintf("%d", limit))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google books returned %d", resp.StatusCode)
	}

	var data volumesResp
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}

	books := make([]models.SavedBook, 0, len(data.Items))
	for _, item := range data.Items {
		book := models.SavedBook{
			BookID:      item.ID,
			Title:       item.VolumeInfo.Title,
			Authors:     item.VolumeInfo.Authors,
			Description: item.VolumeInfo.Description,
			Image:       item.VolumeInfo.ImageLinks.Thumbnail,
			Link:        item.VolumeInfo.InfoLink,
		}
		book.Normalize()
		books = append(books, book)
	}
	return books, nil
}
