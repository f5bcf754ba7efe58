package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/ruzzleleee/SoftDEVFinalProject-BookTrackingSystem-GoogleBooksAPI/pkg/config"
	"github.com/ruzzleleee/SoftDEVFinalProject-BookTrackingSystem-GoogleBooksAPI/pkg/errcodes"
	"github.com/ruzzleleee/SoftDEVFinalProject-BookTrackingSystem-GoogleBooksAPI/pkg/models"
	"github.com/segmentio/encoding/json"
	"golang.org/x/time/rate"
)

const (
	// DefaultMaxResults is how many volumes a search returns when the caller
	// doesn't say otherwise.
	DefaultMaxResults = 20

	unknownTitle  = "Unknown Title"
	unknownAuthor = "Unknown Author"
)

// Client talks to the Google Books volumes API. Requests are rate limited so
// that bursts of searches don't get the server IP throttled upstream.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        logger.Logger
}

// New creates a catalog client from config.
func New(cfg *config.Config) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.GoogleBooksBaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.GoogleBooksTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.GoogleBooksRateLimit), 1),
		log:     logger.New(),
	}
}

// volume mirrors the parts of the Google Books volume payload we care about.
type volume struct {
	ID         string `json:"id"`
	VolumeInfo struct {
		Title         string   `json:"title"`
		Authors       []string `json:"authors"`
		Description   string   `json:"description"`
		PageCount     int      `json:"pageCount"`
		PublishedDate string   `json:"publishedDate"`
		Categories    []string `json:"categories"`
		ImageLinks    struct {
			Thumbnail string `json:"thumbnail"`
		} `json:"imageLinks"`
	} `json:"volumeInfo"`
}

type searchResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []volume `json:"items"`
}

// Search queries the volumes endpoint. Lookup failures degrade to an empty
// result set with a logged warning, so a catalog outage doesn't take search
// down with it.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]*models.Book, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	u := fmt.Sprintf("%s/volumes?q=%s&maxResults=%d", c.baseURL, url.QueryEscape(query), maxResults)
	body, err := c.get(ctx, u)
	if err != nil {
		c.log.Err(err).Warn("book search failed", logger.Data{"query": query})
		return []*models.Book{}, nil
	}
	defer body.Close()

	resp := searchResponse{}
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		c.log.Err(errors.WithStack(err)).Warn("book search response malformed", logger.Data{"query": query})
		return []*models.Book{}, nil
	}

	books := make([]*models.Book, 0, len(resp.Items))
	for i := range resp.Items {
		books = append(books, normalizeVolume(&resp.Items[i]))
	}
	return books, nil
}

// GetByID fetches a single volume by its Google Books ID.
func (c *Client) GetByID(ctx context.Context, id string) (*models.Book, error) {
	u := fmt.Sprintf("%s/volumes/%s", c.baseURL, url.PathEscape(id))
	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	v := volume{}
	if err := json.NewDecoder(body).Decode(&v); err != nil {
		return nil, errors.WithStack(err)
	}
	return normalizeVolume(&v), nil
}

func (c *Client) get(ctx context.Context, u string) (io.ReadCloser, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, errcodes.NotFound("Book")
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.Errorf("unexpected status %d from catalog", resp.StatusCode)
	}
	return resp.Body, nil
}

// normalizeVolume converts a raw volume into a Book. Missing fields fall back
// to placeholder values instead of empty strings so lists always render
// something readable.
func normalizeVolume(v *volume) *models.Book {
	title := v.VolumeInfo.Title
	if title == "" {
		title = unknownTitle
	}

	authors := strings.Join(v.VolumeInfo.Authors, ", ")
	if authors == "" {
		authors = unknownAuthor
	}

	id := v.ID
	book := &models.Book{
		GoogleBooksID: &id,
		Title:         title,
		Authors:       authors,
		Description:   v.VolumeInfo.Description,
		CoverURL:      normalizeCoverURL(v.VolumeInfo.ImageLinks.Thumbnail),
		PageCount:     v.VolumeInfo.PageCount,
		PublishedDate: v.VolumeInfo.PublishedDate,
		Categories:    strings.Join(v.VolumeInfo.Categories, ", "),
	}
	if id == "" {
		book.GoogleBooksID = nil
	}
	return book
}

// normalizeCoverURL upgrades thumbnail links to https and requests the larger
// zoom level.
func normalizeCoverURL(u string) string {
	if u == "" {
		return ""
	}
	u = strings.Replace(u, "http://", "https://", 1)
	u = strings.Replace(u, "zoom=1", "zoom=2", 1)
	return u
}
