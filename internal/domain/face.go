package domain

import "context"

// FaceImage is an uploaded face photo as received from the client.
type FaceImage struct {
	Filename    string
	ContentType string
	Data        []byte
}

// FaceResult is the face service's verdict.
type FaceResult struct {
	Status      string  `json:"status"`
	Message     string  `json:"message"`
	PrincipalID string  `json:"principal_id,omitempty"`
	Similarity  float64 `json:"similarity,omitempty"`
}

func (r FaceResult) Succeeded() bool {
	return r.Status == "success"
}

// FaceSession is returned after a successful verification.
type FaceSession struct {
	PrincipalID string  `json:"principal_id"`
	Similarity  float64 `json:"similarity"`
	Token       string  `json:"token"`
	ExpiresAt   int64   `json:"expires_at"`
}

type FaceClient interface {
	Register(ctx context.Context, principalID string, img FaceImage) (*FaceResult, error)
	Verify(ctx context.Context, img FaceImage) (*FaceResult, error)
}

type FaceUsecase interface {
	Register(ctx context.Context, userID string, img FaceImage) (*FaceResult, error)
	Verify(ctx context.Context, img FaceImage) (*FaceSession, error)
}
