// Package faceauth talks to the face recognition service.
package faceauth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"ergasia-marketplace/internal/domain"
)

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// StatusError is a non-2xx reply from the face service.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("face service: status=%d body=%s", e.StatusCode, e.Body)
}

func (c *Client) Register(ctx context.Context, principalID string, img domain.FaceImage) (*domain.FaceResult, error) {
	return c.post(ctx, "/register-face", map[string]string{"principal_id": principalID}, img)
}

func (c *Client) Verify(ctx context.Context, img domain.FaceImage) (*domain.FaceResult, error) {
	return c.post(ctx, "/verify-face", nil, img)
}

func (c *Client) post(ctx context.Context, path string, fields map[string]string, img domain.FaceImage) (*domain.FaceResult, error) {
	body, contentType, err := encodeForm(fields, img)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(rb))}
	}

	var out domain.FaceResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("face service: decode response: %w", err)
	}
	return &out, nil
}

func encodeForm(fields map[string]string, img domain.FaceImage) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}

	filename := img.Filename
	if filename == "" {
		filename = "face.jpg"
	}
	contentType := img.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(img.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

var _ domain.FaceClient = (*Client)(nil)
