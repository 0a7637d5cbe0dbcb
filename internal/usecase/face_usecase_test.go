package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ergasia-marketplace/internal/domain"
	"ergasia-marketplace/internal/faceauth"
	"ergasia-marketplace/internal/usecase"
	"ergasia-marketplace/pkg/auth"
)

func pngFace(t *testing.T) domain.FaceImage {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for x := 0; x < 64; x++ {
		img.Set(x, x%48, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return domain.FaceImage{Filename: "me.png", ContentType: "image/png", Data: buf.Bytes()}
}

func TestFaceUsecase_Verify(t *testing.T) {
	ctx := context.Background()
	tokens := auth.NewTokenService("secret", "ergasia", time.Hour)
	jpeg := mock.MatchedBy(func(img domain.FaceImage) bool {
		return img.ContentType == "image/jpeg" && len(img.Data) > 0
	})

	t.Run("A match issues a token for the principal", func(t *testing.T) {
		client := new(MockFaceClient)
		client.On("Verify", ctx, jpeg).Return(&domain.FaceResult{Status: "success", PrincipalID: "p-1", Similarity: 0.93}, nil)

		session, err := usecase.NewFaceUsecase(client, tokens, 320).Verify(ctx, pngFace(t))
		require.NoError(t, err)
		assert.Equal(t, "p-1", session.PrincipalID)
		sub, err := tokens.Parse(session.Token)
		require.NoError(t, err)
		assert.Equal(t, "p-1", sub)
	})

	t.Run("A rejected face is unauthorized", func(t *testing.T) {
		client := new(MockFaceClient)
		client.On("Verify", ctx, jpeg).Return(&domain.FaceResult{Status: "fail", Message: "No match"}, nil)

		_, err := usecase.NewFaceUsecase(client, tokens, 320).Verify(ctx, pngFace(t))
		assert.Equal(t, http.StatusUnauthorized, appCode(t, err))
		assert.EqualError(t, err, "No match")
	})

	t.Run("Transport failures are bad gateway", func(t *testing.T) {
		client := new(MockFaceClient)
		client.On("Verify", ctx, jpeg).Return(nil, errors.New("connection refused"))

		_, err := usecase.NewFaceUsecase(client, tokens, 320).Verify(ctx, pngFace(t))
		assert.Equal(t, http.StatusBadGateway, appCode(t, err))
	})

	t.Run("A 4xx reply is unauthorized", func(t *testing.T) {
		client := new(MockFaceClient)
		client.On("Verify", ctx, jpeg).Return(nil, &faceauth.StatusError{StatusCode: 404, Body: "unknown face"})

		_, err := usecase.NewFaceUsecase(client, tokens, 320).Verify(ctx, pngFace(t))
		assert.Equal(t, http.StatusUnauthorized, appCode(t, err))
	})

	t.Run("Undecodable images never reach the service", func(t *testing.T) {
		client := new(MockFaceClient)

		_, err := usecase.NewFaceUsecase(client, tokens, 320).Verify(ctx, domain.FaceImage{Data: []byte("not an image")})
		assert.Equal(t, http.StatusBadRequest, appCode(t, err))
		client.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
	})
}

func TestFaceUsecase_Register(t *testing.T) {
	ctx := context.Background()
	tokens := auth.NewTokenService("secret", "ergasia", time.Hour)

	t.Run("Registers under the authenticated user", func(t *testing.T) {
		client := new(MockFaceClient)
		client.On("Register", ctx, "u1", mock.Anything).Return(&domain.FaceResult{Status: "success"}, nil)

		res, err := usecase.NewFaceUsecase(client, tokens, 320).Register(ctx, "u1", pngFace(t))
		require.NoError(t, err)
		assert.True(t, res.Succeeded())
	})

	t.Run("A refused registration is unprocessable", func(t *testing.T) {
		client := new(MockFaceClient)
		client.On("Register", ctx, "u1", mock.Anything).Return(&domain.FaceResult{Status: "fail", Message: "No face detected"}, nil)

		_, err := usecase.NewFaceUsecase(client, tokens, 320).Register(ctx, "u1", pngFace(t))
		assert.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))
	})
}
