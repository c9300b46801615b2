// Package catalogapi implements the client for the third-party exercise API.
// Every failure mode — transport error, non-2xx status, unexpected response
// shape — is classified as common.ErrorUpstreamUnavailable so callers can
// degrade instead of failing the operation.
package catalogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dpavlenko/liftlog/internal/common"
	"github.com/dpavlenko/liftlog/internal/server/models"
)

// responses are small JSON arrays; cap reads to catch a misbehaving upstream
const maxResponseBytes = 4 << 20

// Query narrows an upstream catalog request. Zero values are omitted.
type Query struct {
	Muscle string
	Name   string
	Offset int
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a client for the exercise API at baseURL. The timeout
// bounds each request end to end.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// upstreamExercise mirrors the wire format of the exercise API, which is
// flatter than the local catalog model: single muscle, single equipment,
// instructions as one string.
type upstreamExercise struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Muscle       string `json:"muscle"`
	Equipment    string `json:"equipment"`
	Difficulty   string `json:"difficulty"`
	Instructions string `json:"instructions"`
}

// Fetch requests catalog entries matching q and converts them to the local
// model. The response body must be a JSON array of objects; anything else is
// treated as the upstream being unavailable.
func (c *Client) Fetch(ctx context.Context, q Query) ([]*models.Exercise, error) {

	reqURL, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: bad base url: %w", common.ErrorUpstreamUnavailable, err)
	}

	params := url.Values{}
	if q.Muscle != "" {
		params.Set("muscle", q.Muscle)
	}
	if q.Name != "" {
		params.Set("name", q.Name)
	}
	if q.Offset > 0 {
		params.Set("offset", strconv.Itoa(q.Offset))
	}
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorUpstreamUnavailable, err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", common.ErrorUpstreamUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorUpstreamUnavailable, err)
	}

	var entries []upstreamExercise
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("%w: unexpected response shape: %w", common.ErrorUpstreamUnavailable, err)
	}

	result := make([]*models.Exercise, 0, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		ex := &models.Exercise{
			ID:       models.SlugID(e.Name),
			Name:     e.Name,
			Category: e.Type,
		}
		if e.Equipment != "" {
			ex.Equipment = []string{e.Equipment}
		}
		if e.Muscle != "" {
			ex.PrimaryMuscles = []string{e.Muscle}
		}
		if e.Instructions != "" {
			ex.Instructions = []string{e.Instructions}
		}
		result = append(result, ex)
	}

	return result, nil
}
