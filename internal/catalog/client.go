// Package catalog is a read-only client for the external exercise catalog
// API. It is consumed by the workout-builder flow; selected exercises are
// snapshotted into domain.ExerciseRef and never re-synced afterwards.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	log "github.com/sirupsen/logrus"
)

// Exercise is a catalog entry as served by the API.
type Exercise struct {
	ExerciseID    string   `json:"exerciseId"`
	Name          string   `json:"name"`
	GifURL        string   `json:"gifUrl,omitempty"`
	BodyParts     []string `json:"bodyParts,omitempty"`
	Equipments    []string `json:"equipments,omitempty"`
	TargetMuscles []string `json:"targetMuscles,omitempty"`
	Instructions  []string `json:"instructions,omitempty"`
}

// BodyPart is one entry of the catalog's body-part taxonomy.
type BodyPart struct {
	Name string `json:"name"`
}

// Suggestion is one autocomplete hit; only id and name come back, details
// are fetched per id.
type Suggestion struct {
	ExerciseID string `json:"exerciseId"`
	Name       string `json:"name"`
}

// ExercisePage is one page of a catalog listing.
type ExercisePage struct {
	Exercises  []Exercise `json:"exercises"`
	TotalPages int        `json:"totalPages"`
}

// Client calls the exercise catalog REST API. There is no retry and no
// caching here; a failed request is reported once to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a catalog client for the given base URL
// (e.g. "https://exercisedb-api.vercel.app/api/v1").
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// ListExercises fetches one page of the full catalog.
func (c *Client) ListExercises(ctx context.Context, page, pageSize int) (*ExercisePage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(pageSize))

	var envelope struct {
		Data ExercisePage `json:"data"`
	}
	if err := c.get(ctx, "/exercises?"+query.Encode(), &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// ListByBodyPart fetches one page of exercises for a body part.
func (c *Client) ListByBodyPart(ctx context.Context, bodyPart string, page, pageSize int) (*ExercisePage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(pageSize))

	var envelope struct {
		Data ExercisePage `json:"data"`
	}
	path := "/bodyparts/" + url.PathEscape(bodyPart) + "/exercises?" + query.Encode()
	if err := c.get(ctx, path, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// Autocomplete fetches name suggestions for a free-text query.
func (c *Client) Autocomplete(ctx context.Context, search string) ([]Suggestion, error) {
	query := url.Values{}
	query.Set("search", search)

	var envelope struct {
		Data []Suggestion `json:"data"`
	}
	if err := c.get(ctx, "/exercises/autocomplete?"+query.Encode(), &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// GetByID fetches a single exercise with full details.
func (c *Client) GetByID(ctx context.Context, exerciseID string) (*Exercise, error) {
	var envelope struct {
		Data Exercise `json:"data"`
	}
	if err := c.get(ctx, "/exercises/"+url.PathEscape(exerciseID), &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// ListBodyParts fetches the body-part taxonomy.
func (c *Client) ListBodyParts(ctx context.Context) ([]BodyPart, error) {
	var envelope struct {
		Data []BodyPart `json:"data"`
	}
	if err := c.get(ctx, "/bodyparts", &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Warnf("failed to close catalog response body: %v", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog request failed: unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("catalog response decode failed: %w", err)
	}
	return nil
}
