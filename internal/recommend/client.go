package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ergasia-marketplace/internal/domain"
)

// Ranker produces personalised job recommendations for a payload.
type Ranker interface {
	Recommend(ctx context.Context, p Payload) ([]domain.Job, error)
}

// Response is the body returned by the ranking service.
type Response struct {
	Message string    `json:"message"`
	TopJobs []WireJob `json:"top_jobs"`
}

type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Recommend posts the payload once. Any non-2xx status is an error carrying
// the start of the response body.
func (c *HTTPClient) Recommend(ctx context.Context, p Payload) ([]domain.Job, error) {
	if c == nil || c.baseURL == "" {
		return nil, errors.New("recommend: ranking service not configured")
	}
	endpoint := c.baseURL + "/getRecommendation"

	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("recommend: ranking failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(rb)))
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("recommend: decode response: %w", err)
	}

	jobs := make([]domain.Job, 0, len(out.TopJobs))
	for _, w := range out.TopJobs {
		j, err := DecodeJob(w)
		if err != nil {
			return nil, fmt.Errorf("recommend: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

var _ Ranker = (*HTTPClient)(nil)
