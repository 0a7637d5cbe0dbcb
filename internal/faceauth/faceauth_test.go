package faceauth

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ergasia-marketplace/internal/domain"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCompressImage(t *testing.T) {
	t.Run("Large image is scaled down keeping the aspect ratio", func(t *testing.T) {
		out, err := CompressImage(pngBytes(t, 1200, 600), 640, 85)
		require.NoError(t, err)

		cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, 640, cfg.Width)
		assert.Equal(t, 320, cfg.Height)
	})

	t.Run("Small image keeps its size", func(t *testing.T) {
		out, err := CompressImage(pngBytes(t, 100, 200), 640, 85)
		require.NoError(t, err)

		cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, 100, cfg.Width)
		assert.Equal(t, 200, cfg.Height)
	})

	t.Run("Garbage is rejected", func(t *testing.T) {
		_, err := CompressImage([]byte("not an image"), 640, 85)
		assert.Error(t, err)
	})
}

func TestFitWithin(t *testing.T) {
	w, h := fitWithin(400, 1600, 640)
	assert.Equal(t, 160, w)
	assert.Equal(t, 640, h)

	w, h = fitWithin(5000, 1, 640)
	assert.Equal(t, 640, w)
	assert.Equal(t, 1, h)
}

func TestClient(t *testing.T) {
	ctx := context.Background()
	img := domain.FaceImage{Filename: "me.jpg", ContentType: "image/jpeg", Data: []byte("jpeg-bytes")}

	t.Run("Register sends principal id and file as multipart", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/register-face", r.URL.Path)
			if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
				return
			}
			assert.Equal(t, "p-1", r.FormValue("principal_id"))
			f, hdr, err := r.FormFile("file")
			if assert.NoError(t, err) {
				data, _ := io.ReadAll(f)
				assert.Equal(t, "jpeg-bytes", string(data))
				assert.Equal(t, "me.jpg", hdr.Filename)
			}
			_ = json.NewEncoder(w).Encode(domain.FaceResult{Status: "success", Message: "Face registered successfully"})
		}))
		defer srv.Close()

		res, err := NewClient(srv.URL, time.Second).Register(ctx, "p-1", img)
		require.NoError(t, err)
		assert.True(t, res.Succeeded())
	})

	t.Run("Verify decodes the match", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/verify-face", r.URL.Path)
			_, _ = w.Write([]byte(`{"status":"success","message":"ok","principal_id":"p-9","similarity":0.91}`))
		}))
		defer srv.Close()

		res, err := NewClient(srv.URL, time.Second).Verify(ctx, img)
		require.NoError(t, err)
		assert.Equal(t, "p-9", res.PrincipalID)
		assert.InDelta(t, 0.91, res.Similarity, 1e-9)
	})

	t.Run("Non-2xx becomes a StatusError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"detail":"Invalid image data"}`))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, time.Second).Verify(ctx, img)
		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusUnprocessableEntity, se.StatusCode)
		assert.Contains(t, se.Body, "Invalid image data")
	})
}
