package usecase

import (
	"context"
	"errors"
	"net/http"

	"ergasia-marketplace/internal/domain"
	"ergasia-marketplace/internal/faceauth"
	"ergasia-marketplace/pkg/apperror"
	"ergasia-marketplace/pkg/auth"
	"ergasia-marketplace/pkg/logger"
)

const faceJPEGQuality = 85

type faceUsecase struct {
	client domain.FaceClient
	tokens *auth.TokenService
	maxDim int
}

func NewFaceUsecase(client domain.FaceClient, tokens *auth.TokenService, maxDim int) domain.FaceUsecase {
	return &faceUsecase{client: client, tokens: tokens, maxDim: maxDim}
}

func (u *faceUsecase) Register(ctx context.Context, userID string, img domain.FaceImage) (*domain.FaceResult, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	prepared, err := u.prepare(img)
	if err != nil {
		return nil, err
	}

	res, err := u.client.Register(ctx, userID, prepared)
	if err != nil {
		return nil, faceError(err, http.StatusUnprocessableEntity)
	}
	if !res.Succeeded() {
		return nil, apperror.Unprocessable(faceMessage(res, "Face registration failed"), nil)
	}
	logger.Log.Info("Face registered", "user_id", userID)
	return res, nil
}

// Verify matches the image against registered faces and issues a session
// token for the matched principal.
func (u *faceUsecase) Verify(ctx context.Context, img domain.FaceImage) (*domain.FaceSession, error) {
	prepared, err := u.prepare(img)
	if err != nil {
		return nil, err
	}

	res, err := u.client.Verify(ctx, prepared)
	if err != nil {
		return nil, faceError(err, http.StatusUnauthorized)
	}
	if !res.Succeeded() || res.PrincipalID == "" {
		return nil, apperror.Unauthorized(faceMessage(res, "Face not recognized"))
	}

	token, expiresAt, err := u.tokens.Issue(res.PrincipalID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.FaceSession{
		PrincipalID: res.PrincipalID,
		Similarity:  res.Similarity,
		Token:       token,
		ExpiresAt:   expiresAt.Unix(),
	}, nil
}

func (u *faceUsecase) prepare(img domain.FaceImage) (domain.FaceImage, error) {
	if len(img.Data) == 0 {
		return img, apperror.BadRequest("Image file is required")
	}
	data, err := faceauth.CompressImage(img.Data, u.maxDim, faceJPEGQuality)
	if err != nil {
		return img, apperror.BadRequest("Unsupported image, upload a JPEG or PNG")
	}
	return domain.FaceImage{
		Filename:    "face.jpg",
		ContentType: "image/jpeg",
		Data:        data,
	}, nil
}

// faceError maps a rejected request to rejectCode and everything else to 502.
func faceError(err error, rejectCode int) error {
	var statusErr *faceauth.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode >= 400 && statusErr.StatusCode < 500 {
		if rejectCode == http.StatusUnauthorized {
			return apperror.Unauthorized("Face not recognized")
		}
		return apperror.Unprocessable("Face registration failed", nil)
	}
	return apperror.BadGateway("Face service unavailable", err)
}

func faceMessage(res *domain.FaceResult, fallback string) string {
	if res != nil && res.Message != "" {
		return res.Message
	}
	return fallback
}
