package delivery

import (
	"mime/multipart"
	"net/http"

	authdomain "vidtube-backend/internal/auth/domain"
	authdto "vidtube-backend/internal/auth/dto"
	"vidtube-backend/internal/auth/usecase"
	"vidtube-backend/pkg/apperrors"
	"vidtube-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	config      *config.Config
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		config:      cfg,
	}
}

// Register handles POST /register: multipart form with fullname, email,
// username, password and files avatar (required) plus coverImage (optional).
func (h *AuthHandler) Register(c *gin.Context) {
	var req authdto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, apperrors.ErrAllFieldsRequired)
		return
	}

	avatar, err := formUpload(c, "avatar")
	if err != nil {
		respondError(c, apperrors.ErrAvatarRequired)
		return
	}
	defer avatar.close()

	var coverUpload *usecase.Upload
	if cover, err := formUpload(c, "coverImage"); err == nil {
		defer cover.close()
		coverUpload = cover.Upload
	}

	user, err := h.authUsecase.Register(c.Request.Context(), &req, avatar.Upload, coverUpload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user, "message": "user registered"})
}

// Login handles POST /login: identifier (username or email) + password.
// Tokens are returned both as httpOnly cookies and in the body.
func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.InvalidArg("identifier and password are required"))
		return
	}

	resp, err := h.authUsecase.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setTokenCookies(c, resp)
	c.JSON(http.StatusOK, resp)
}

// RefreshToken handles POST /refresh-token: the token comes from the
// refreshToken cookie or the JSON body. On success the rotated pair replaces
// the cookies.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refreshToken, _ := c.Cookie(refreshTokenCookie)
	if refreshToken == "" {
		var req authdto.RefreshTokenRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}

	resp, err := h.authUsecase.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setTokenCookies(c, resp)
	c.JSON(http.StatusOK, resp)
}

// Logout handles POST /logout (gated): clears the stored refresh token and
// both cookies.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.authUsecase.Logout(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	h.clearTokenCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "user logged out"})
}

// Me handles GET /me (gated).
func (h *AuthHandler) Me(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		respondError(c, apperrors.ErrMissingAccessToken)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.(*authdomain.User)})
}

func (h *AuthHandler) setTokenCookies(c *gin.Context, resp *authdto.TokenResponse) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessTokenCookie, resp.AccessToken,
		int(h.config.AccessTokenExpiry.Seconds()), "/", "", h.config.CookieSecure, true)
	c.SetCookie(refreshTokenCookie, resp.RefreshToken,
		int(h.config.RefreshTokenExpiry.Seconds()), "/", "", h.config.CookieSecure, true)
}

func (h *AuthHandler) clearTokenCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessTokenCookie, "", -1, "/", "", h.config.CookieSecure, true)
	c.SetCookie(refreshTokenCookie, "", -1, "/", "", h.config.CookieSecure, true)
}

// respondError maps any error to the uniform envelope at the HTTP boundary.
func respondError(c *gin.Context, err error) {
	code := apperrors.CodeOf(err)
	c.JSON(apperrors.HTTPStatus(code), gin.H{"code": code, "error": apperrors.MessageOf(err)})
}

func abortWithError(c *gin.Context, err error) {
	code := apperrors.CodeOf(err)
	c.AbortWithStatusJSON(apperrors.HTTPStatus(code), gin.H{"code": code, "error": apperrors.MessageOf(err)})
}

// openedUpload pairs the usecase upload with the underlying multipart file so
// the handler can close it after the usecase is done reading.
type openedUpload struct {
	*usecase.Upload
	file multipart.File
}

func (o *openedUpload) close() { o.file.Close() }

func formUpload(c *gin.Context, field string) (*openedUpload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}

	return &openedUpload{
		Upload: &usecase.Upload{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
		},
		file: file,
	}, nil
}
