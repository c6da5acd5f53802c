package services

import (
	"context"
	"strings"
	"time"

	"inkwell/internal/logger"
	"inkwell/internal/models"
	"inkwell/internal/utils"

	"go.uber.org/zap"
)

// UserRepo is what the auth service needs from the credential store.
type UserRepo interface {
	IsUsernameTaken(ctx context.Context, username string) (bool, error)
	IsEmailTaken(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	UpdateAccount(ctx context.Context, id int, input *models.UpdateAccountRequest) error
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	SaveRefreshToken(ctx context.Context, userID int, token string) error
	IsRefreshTokenValid(ctx context.Context, userID int, token string) (bool, error)
	DeleteRefreshToken(ctx context.Context, userID int, token string) error
}

type AuthService struct {
	repo UserRepo
}

func NewAuthService(repo UserRepo) *AuthService {
	return &AuthService{repo: repo}
}

func (s *AuthService) RegisterUser(ctx context.Context, input *models.User, plainPassword string) error {
	logger.Log.Info("registering user (service)", zap.String("username", input.Username), zap.String("email", input.Email))

	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	if len(plainPassword) < 8 {
		return ErrPasswordTooShort
	}
	if exists, err := s.repo.IsUsernameTaken(ctx, input.Username); exists || err != nil {
		if err != nil {
			logger.Log.Error("username check failed", zap.Error(err))
			return err
		}
		return ErrUsernameTaken
	}
	if exists, err := s.repo.IsEmailTaken(ctx, input.Email); exists || err != nil {
		if err != nil {
			logger.Log.Error("email check failed", zap.Error(err))
			return err
		}
		return ErrEmailTaken
	}

	hashed, err := utils.HashPassword(plainPassword)
	if err != nil {
		logger.Log.Error("password hashing failed", zap.Error(err))
		return err
	}

	input.PasswordHash = hashed
	input.ImageFile = models.DefaultImageFile

	if err := s.repo.CreateUser(ctx, input); err != nil {
		logger.Log.Error("user creation failed", zap.Error(err))
		return err
	}
	logger.Log.Info("user registered (service)", zap.String("username", input.Username))
	return nil
}

// Login checks the email/password pair and, on success, mints an access
// token and a persisted refresh token. Every failure collapses into
// ErrInvalidCredentials so callers cannot tell "no such account" from
// "wrong password".
func (s *AuthService) Login(
	ctx context.Context,
	email, password, jwtSecret string,
	accessTTL, refreshTTL time.Duration,
) (string, string, *models.User, error) {
	logger.Log.Info("login attempt (service)", zap.String("email", email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Warn("login: user not found (service)", zap.String("email", email), zap.Error(err))
		return "", "", nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Log.Warn("login: wrong password (service)", zap.Int("user_id", user.ID))
		return "", "", nil, ErrInvalidCredentials
	}

	accessToken, err := utils.GenerateToken(jwtSecret, user.ID, accessTTL, "access")
	if err != nil {
		logger.Log.Error("access token generation failed", zap.Error(err))
		return "", "", nil, err
	}

	refreshToken, err := utils.GenerateToken(jwtSecret, user.ID, refreshTTL, "refresh")
	if err != nil {
		logger.Log.Error("refresh token generation failed", zap.Error(err))
		return "", "", nil, err
	}

	if err := s.repo.SaveRefreshToken(ctx, user.ID, refreshToken); err != nil {
		logger.Log.Error("refresh token persistence failed", zap.Error(err))
		return "", "", nil, err
	}

	logger.Log.Info("login successful (service)", zap.String("username", user.Username))
	return accessToken, refreshToken, user, nil
}

func (s *AuthService) ValidateRefreshToken(ctx context.Context, userID int, token string) (bool, error) {
	return s.repo.IsRefreshTokenValid(ctx, userID, token)
}

func (s *AuthService) Logout(ctx context.Context, userID int, token string) error {
	logger.Log.Info("logout (service)", zap.Int("user_id", userID))
	return s.repo.DeleteRefreshToken(ctx, userID, token)
}

func (s *AuthService) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		logger.Log.Warn("user not found by id (service)", zap.Int("user_id", id), zap.Error(err))
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) UpdateAccount(ctx context.Context, id int, input *models.UpdateAccountRequest) error {
	logger.Log.Info("updating account (service)", zap.Int("user_id", id))

	if input.Username != nil {
		trimmed := strings.TrimSpace(*input.Username)
		input.Username = &trimmed
		if taken, err := s.isUsernameTakenByOther(ctx, id, trimmed); err != nil {
			return err
		} else if taken {
			return ErrUsernameTaken
		}
	}
	if input.Email != nil {
		normalized := strings.TrimSpace(strings.ToLower(*input.Email))
		input.Email = &normalized
		if taken, err := s.isEmailTakenByOther(ctx, id, normalized); err != nil {
			return err
		} else if taken {
			return ErrEmailTaken
		}
	}

	if err := s.repo.UpdateAccount(ctx, id, input); err != nil {
		logger.Log.Error("account update failed (service)", zap.Int("user_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *AuthService) isUsernameTakenByOther(ctx context.Context, id int, username string) (bool, error) {
	current, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return false, err
	}
	if current.Username == username {
		return false, nil
	}
	return s.repo.IsUsernameTaken(ctx, username)
}

func (s *AuthService) isEmailTakenByOther(ctx context.Context, id int, email string) (bool, error) {
	current, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return false, err
	}
	if strings.EqualFold(current.Email, email) {
		return false, nil
	}
	return s.repo.IsEmailTaken(ctx, email)
}
