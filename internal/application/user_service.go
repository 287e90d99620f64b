package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/astrocat-app/astrocat/internal/domain/entity"
	repo "github.com/astrocat-app/astrocat/internal/domain/repository"
	"github.com/astrocat-app/astrocat/pkg/helpers"
	"github.com/astrocat-app/astrocat/pkg/mailer"
)

// UserService owns registration, login and profile maintenance. Identity is
// always an explicit parameter; nothing here reads ambient request state.
type UserService struct {
	Repo        repo.UserRepository
	JWT         *helpers.JWTManager
	Redis       *redis.Client
	GCS         *storage.Client
	GCSBucket   string
	Logger      *logrus.Logger
	Pub         *helpers.RabbitPublisher
	MailEnabled bool
}

func NewUserService(r repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, gcs *storage.Client, gcsBucket string, logger *logrus.Logger, pub *helpers.RabbitPublisher, mailEnabled bool) *UserService {
	return &UserService{
		Repo:        r,
		JWT:         jwt,
		Redis:       rdb,
		GCS:         gcs,
		GCSBucket:   gcsBucket,
		Logger:      logger,
		Pub:         pub,
		MailEnabled: mailEnabled,
	}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Name     string
	Surname  string
	Age      *int
	About    string
}

// Register creates an account. The username/email pre-checks are best-effort
// friendliness; the unique indexes remain the race guard and surface as
// ErrConflict from the repository.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if _, err := s.Repo.GetByEmail(in.Email); err == nil {
		return nil, repo.ErrConflict
	}
	if _, err := s.Repo.GetByUsername(in.Username); err == nil {
		return nil, repo.ErrConflict
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Surname:      in.Surname,
		Age:          in.Age,
		About:        in.About,
	}
	if err := s.Repo.Create(u); err != nil {
		return nil, err
	}

	s.enqueueWelcome(ctx, u)
	return u, nil
}

func (s *UserService) enqueueWelcome(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: "welcome",
		Data:     map[string]any{"Name": u.Name, "Username": u.Username},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email enqueue failed")
	}
}

// Authenticate resolves the login field as email or username and verifies
// the password. Every failure maps to the same generic error.
func (s *UserService) Authenticate(ctx context.Context, login, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(login)
	if err != nil {
		u, err = s.Repo.GetByUsername(login)
	}
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueTokens generates access/refresh tokens and records a session in Redis.
func (s *UserService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID,
			"username":   u.Username,
			"email":      u.Email,
			"sid":        sid,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		})
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *UserService) Login(ctx context.Context, login, password string) (*entity.User, TokenPair, error) {
	u, err := s.Authenticate(ctx, login, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	u, err := s.Repo.GetByID(claims.UserID)
	if err != nil || u == nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	// The refresh token must carry the current session id.
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, sessionKey(u.ID)).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, ErrInvalidCredentials
		}
	}
	return s.IssueTokens(ctx, u)
}

func (s *UserService) Logout(ctx context.Context, userID string) {
	if s.Redis != nil && userID != "" {
		s.Redis.Del(ctx, sessionKey(userID))
	}
}

func (s *UserService) GetUser(id string) (*entity.User, error) {
	return s.Repo.GetByID(id)
}

func (s *UserService) ListUsers() ([]*entity.User, error) {
	return s.Repo.List()
}

type UpdateProfileInput struct {
	Username string
	Name     string
	Surname  string
	Age      *int
	About    string
	Password string
}

// UpdateProfile applies the non-empty fields of in to the user's own record.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if in.Username != "" && in.Username != u.Username {
		if _, err := s.Repo.GetByUsername(in.Username); err == nil {
			return nil, repo.ErrConflict
		}
		u.Username = in.Username
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Surname != "" {
		u.Surname = in.Surname
	}
	if in.Age != nil {
		u.Age = in.Age
	}
	if in.About != "" {
		u.About = in.About
	}
	if in.Password != "" {
		hash, err := helpers.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

// UploadAvatar stores the avatar in GCS and records its path on the profile.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return "", err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("blob storage not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := "avatars/" + userID + "/" + uuid.NewString() + ext
	path, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	u.AvatarURL = helpers.PublicURL(s.GCSBucket, path)
	if err := s.Repo.Update(u); err != nil {
		return "", err
	}
	return u.AvatarURL, nil
}
