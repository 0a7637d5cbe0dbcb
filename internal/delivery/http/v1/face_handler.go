package v1

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ergasia-marketplace/internal/delivery/http/middleware"
	"ergasia-marketplace/internal/delivery/http/response"
	"ergasia-marketplace/internal/domain"
	"ergasia-marketplace/pkg/apperror"
	"ergasia-marketplace/pkg/logger"
	"ergasia-marketplace/pkg/security"
)

// MaxFaceUploadBytes bounds the multipart body of the face endpoints.
const MaxFaceUploadBytes = 5 << 20

type FaceHandler struct {
	faceUC       domain.FaceUsecase
	guard        *security.LoginTracker
	secureCookie bool
}

// NewFaceHandler registers the face endpoints. guard may be nil, in which
// case failed logins are not tracked.
func NewFaceHandler(public *gin.RouterGroup, protected *gin.RouterGroup, faceUC domain.FaceUsecase, limit gin.HandlerFunc, guard *security.LoginTracker, secureCookie bool) {
	handler := &FaceHandler{faceUC: faceUC, guard: guard, secureCookie: secureCookie}
	public.POST("/auth/face/verify", limit, handler.Verify)
	protected.POST("/auth/face/register", limit, handler.Register)
}

// Register godoc
// @Summary      Register my face
// @Tags         auth
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Face photo (JPEG or PNG)"
// @Success      200   {object}  response.Response{data=domain.FaceResult}
// @Failure      400   {object}  response.Response
// @Failure      422   {object}  response.Response
// @Failure      502   {object}  response.Response
// @Router       /auth/face/register [post]
// @Security     BearerAuth
func (h *FaceHandler) Register(c *gin.Context) {
	img, err := readFaceImage(c)
	if err != nil {
		c.Error(err)
		return
	}
	result, err := h.faceUC.Register(c.Request.Context(), currentUserID(c), img)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Face registered", result)
}

// Verify godoc
// @Summary      Log in with a face photo
// @Description  Returns a session token and sets it as the auth_token cookie
// @Tags         auth
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Face photo (JPEG or PNG)"
// @Success      200   {object}  response.Response{data=domain.FaceSession}
// @Failure      400   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Failure      429   {object}  response.Response
// @Failure      502   {object}  response.Response
// @Router       /auth/face/verify [post]
func (h *FaceHandler) Verify(c *gin.Context) {
	ctx := c.Request.Context()
	ip := c.ClientIP()
	rid := c.GetString(middleware.RequestIDKey)

	if h.guard != nil {
		blocked, left, err := h.guard.IsBlocked(ctx, ip)
		if err != nil {
			logger.Log.Warn("Login tracker unavailable", "rid", rid, "error", err)
		} else if blocked {
			c.Header("Retry-After", strconv.Itoa(int(left.Seconds())+1))
			c.Error(apperror.New(http.StatusTooManyRequests,
				fmt.Sprintf("Too many failed face logins. Try again in %d minutes.", int(left.Minutes())+1), nil))
			return
		}
	}

	img, err := readFaceImage(c)
	if err != nil {
		c.Error(err)
		return
	}
	session, err := h.faceUC.Verify(ctx, img)
	if err != nil {
		var appErr *apperror.AppError
		if h.guard != nil && errors.As(err, &appErr) && appErr.Code == http.StatusUnauthorized {
			if _, _, trackErr := h.guard.RecordFailedAttempt(ctx, ip, rid); trackErr != nil {
				logger.Log.Warn("Failed to record face login attempt", "rid", rid, "error", trackErr)
			}
		}
		c.Error(err)
		return
	}
	if h.guard != nil {
		if err := h.guard.ClearAttempts(ctx, ip); err != nil {
			logger.Log.Warn("Failed to clear face login attempts", "rid", rid, "error", err)
		}
	}

	maxAge := int(time.Until(time.Unix(session.ExpiresAt, 0)).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookieName, session.Token, maxAge, "/", "", h.secureCookie, true)

	response.Success(c, http.StatusOK, "Face verified", session)
}

func readFaceImage(c *gin.Context) (domain.FaceImage, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxFaceUploadBytes)

	file, err := c.FormFile("file")
	if err != nil {
		return domain.FaceImage{}, apperror.BadRequest("No file uploaded")
	}
	src, err := file.Open()
	if err != nil {
		return domain.FaceImage{}, apperror.Internal(err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return domain.FaceImage{}, apperror.BadRequest("Failed to read file")
	}

	// Detect content type from file bytes (more reliable than header)
	contentType := http.DetectContentType(data)
	if res := security.ValidateImage(file.Filename, data, contentType); !res.Valid {
		return domain.FaceImage{}, apperror.BadRequest("Invalid image: " + res.Error)
	}
	return domain.FaceImage{Filename: file.Filename, ContentType: contentType, Data: data}, nil
}
