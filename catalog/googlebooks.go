// Package catalog resolves book references against the local store and a
// Google-Books-compatible volumes API.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/acuna/shelfwise/log"
	"github.com/acuna/shelfwise/model"
	"go.uber.org/zap"
)

const (
	unknownAuthor   = "Unknown Author"
	generalCategory = "General"
	noDescription   = "No description available."
)

// Client queries the external volumes API. Searches are pure reads; a
// transport failure or a non-2xx status degrades to an empty result so the
// callers can fall through to "not found" instead of erroring out.
type Client struct {
	endpoint string
	language string
	client   *http.Client
}

func NewClient(endpoint, language string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		language: language,
		client:   &http.Client{Timeout: timeout},
	}
}

// Search looks up volumes by title and optional author. Title and author go
// in as separate field-scoped terms so the provider matches them
// independently rather than as one free-text blob.
func (c *Client) Search(ctx context.Context, title, author string, maxResults int) []*model.Book {
	terms := []string{fmt.Sprintf("intitle:%s", strings.TrimSpace(title))}
	if a := strings.TrimSpace(author); a != "" {
		terms = append(terms, fmt.Sprintf("inauthor:%s", a))
	}

	params := url.Values{}
	params.Set("q", strings.Join(terms, "+"))
	params.Set("maxResults", fmt.Sprintf("%d", maxResults))
	if c.language != "" {
		// Missing language restriction degrades results, not an error.
		params.Set("langRestrict", c.language)
	}

	reqURL := fmt.Sprintf("%s?%s", c.endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		log.Error("Failed to build catalog request", zap.Error(err))
		return nil
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.Warn("Catalog search failed", zap.String("title", title), zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn("Catalog search returned non-OK status",
			zap.String("title", title),
			zap.Int("status_code", resp.StatusCode))
		return nil
	}

	var payload volumeList
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Warn("Failed to decode catalog response", zap.Error(err))
		return nil
	}

	books := make([]*model.Book, 0, len(payload.Items))
	for _, item := range payload.Items {
		books = append(books, normalizeVolume(item.VolumeInfo))
	}
	return books
}

type volumeList struct {
	Items []volumeItem `json:"items"`
}

type volumeItem struct {
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title               string               `json:"title"`
	Authors             []string             `json:"authors"`
	Publisher           string               `json:"publisher"`
	PublishedDate       string               `json:"publishedDate"`
	Description         string               `json:"description"`
	PageCount           int                  `json:"pageCount"`
	ImageLinks          imageLinks           `json:"imageLinks"`
	InfoLink            string               `json:"infoLink"`
	Categories          []string             `json:"categories"`
	IndustryIdentifiers []industryIdentifier `json:"industryIdentifiers"`
}

type imageLinks struct {
	Thumbnail string `json:"thumbnail"`
}

type industryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

// normalizeVolume flattens one provider item into a catalog record with the
// documented fallbacks for absent fields.
func normalizeVolume(vol volumeInfo) *model.Book {
	author := unknownAuthor
	if len(vol.Authors) > 0 {
		author = strings.Join(vol.Authors, ", ")
	}
	category := generalCategory
	if len(vol.Categories) > 0 {
		category = strings.Join(vol.Categories, ", ")
	}
	description := vol.Description
	if description == "" {
		description = noDescription
	}

	return &model.Book{
		ISBN:          ExtractIdentifier(vol.IndustryIdentifiers),
		Title:         vol.Title,
		Author:        author,
		Publisher:     vol.Publisher,
		PublishedDate: ParsePublishedDate(vol.PublishedDate),
		Description:   description,
		PageCount:     vol.PageCount,
		Category:      category,
		ImageURL:      vol.ImageLinks.Thumbnail,
		ExternalLink:  vol.InfoLink,
	}
}
