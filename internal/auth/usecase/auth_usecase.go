package usecase

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	authdomain "vidtube-backend/internal/auth/domain"
	authdto "vidtube-backend/internal/auth/dto"
	"vidtube-backend/internal/auth/repository"
	"vidtube-backend/pkg/apperrors"
	"vidtube-backend/pkg/config"
	"vidtube-backend/pkg/media"
	"vidtube-backend/pkg/token"
)

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo repository.UserRepository
	storage  media.ObjectStorage
	config   *config.Config

	// serializes rotation per user id, closing the read-then-write race
	// between concurrent refresh calls holding the same valid token
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, storage media.ObjectStorage, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		storage:  storage,
		config:   cfg,
		locks:    make(map[string]*sync.Mutex),
	}
}

func (u *authUsecase) Register(ctx context.Context, req *authdto.RegisterRequest, avatar, coverImage *Upload) (*authdomain.User, error) {
	if strings.TrimSpace(req.FullName) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Username) == "" ||
		strings.TrimSpace(req.Password) == "" {
		return nil, apperrors.ErrAllFieldsRequired
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))

	existing, err := u.userRepo.FindByUsernameOrEmail(username, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrUserExists
	}

	if avatar == nil {
		return nil, apperrors.ErrAvatarRequired
	}

	avatarURL, err := u.upload(ctx, "avatars", avatar)
	if err != nil {
		return nil, apperrors.ErrMediaUpload(err)
	}

	coverImageURL := ""
	if coverImage != nil {
		coverImageURL, err = u.upload(ctx, "covers", coverImage)
		if err != nil {
			return nil, apperrors.ErrMediaUpload(err)
		}
	}

	hashedPassword, err := repository.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &authdomain.User{
		Username:      username,
		Email:         req.Email,
		FullName:      req.FullName,
		Password:      hashedPassword,
		AvatarURL:     avatarURL,
		CoverImageURL: coverImageURL,
	}

	if err := u.userRepo.Create(user); err != nil {
		return nil, err
	}

	return user.Public(), nil
}

func (u *authUsecase) Login(ctx context.Context, identifier, password string) (*authdto.TokenResponse, error) {
	user, err := u.userRepo.FindByIdentifier(identifier)
	if err != nil {
		return nil, err
	}

	// Unknown identifier and wrong password return the same error so the
	// login surface can't be used to enumerate accounts.
	if user == nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !repository.CheckPasswordHash(password, user.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	u.lock(user.ID)
	defer u.unlock(user.ID)

	return u.issueTokens(user)
}

func (u *authUsecase) ValidateAccessToken(ctx context.Context, tokenString string) (*authdomain.User, error) {
	claims, err := token.Parse(tokenString, []byte(u.config.AccessTokenSecret))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeUnauthenticated, "invalid access token", err)
	}

	user, err := u.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrInvalidAccessToken
	}

	return user.Public(), nil
}

func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (*authdto.TokenResponse, error) {
	if refreshToken == "" {
		return nil, apperrors.ErrMissingRefresh
	}

	claims, err := token.Parse(refreshToken, []byte(u.config.RefreshTokenSecret))
	if err != nil {
		// surface the verification reason (expired, malformed, bad signature)
		return nil, apperrors.Wrap(apperrors.CodeUnauthenticated, err.Error(), err)
	}

	u.lock(claims.UserID)
	defer u.unlock(claims.UserID)

	user, err := u.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrStaleRefresh
	}

	// A signed, unexpired token that no longer matches the stored value was
	// rotated away or logged out; reuse is rejected.
	if user.RefreshToken != refreshToken {
		return nil, apperrors.ErrStaleRefresh
	}

	return u.issueTokens(user)
}

func (u *authUsecase) Logout(ctx context.Context, userID string) error {
	u.lock(userID)
	defer u.unlock(userID)

	return u.userRepo.ClearRefreshToken(userID)
}

// issueTokens signs a fresh access/refresh pair and persists the refresh token
// onto the user record, invalidating any previously issued one. Callers must
// hold the user's lock.
func (u *authUsecase) issueTokens(user *authdomain.User) (*authdto.TokenResponse, error) {
	accessToken, err := token.Generate(user.ID, user.Username, user.Email,
		[]byte(u.config.AccessTokenSecret), u.config.AccessTokenExpiry)
	if err != nil {
		return nil, apperrors.ErrTokenGeneration(err)
	}

	refreshToken, err := token.Generate(user.ID, "", "",
		[]byte(u.config.RefreshTokenSecret), u.config.RefreshTokenExpiry)
	if err != nil {
		return nil, apperrors.ErrTokenGeneration(err)
	}

	if err := u.userRepo.UpdateRefreshToken(user.ID, refreshToken); err != nil {
		return nil, apperrors.ErrTokenGeneration(err)
	}
	user.RefreshToken = refreshToken

	return &authdto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.Public(),
	}, nil
}

func (u *authUsecase) upload(ctx context.Context, prefix string, file *Upload) (string, error) {
	key := media.RandomStorageKey(prefix, filepath.Ext(file.FileName))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return u.storage.Upload(ctx, key, contentType, file.Body)
}

func (u *authUsecase) lock(userID string) {
	u.mu.Lock()
	l, ok := u.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		u.locks[userID] = l
	}
	u.mu.Unlock()
	l.Lock()
}

func (u *authUsecase) unlock(userID string) {
	u.mu.Lock()
	l := u.locks[userID]
	u.mu.Unlock()
	l.Unlock()
}
