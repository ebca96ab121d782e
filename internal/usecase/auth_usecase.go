package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"rewear/internal/domain/entity"
	"rewear/internal/domain/repository"
	"rewear/pkg/errors"
	"rewear/pkg/logger"
)

type AuthUseCase struct {
	userRepo    repository.UserRepository
	hasher      PasswordHasher
	tokens      TokenIssuer
	adminEmails map[string]struct{}
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	adminEmails []string,
) *AuthUseCase {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		admins[normalizeEmail(email)] = struct{}{}
	}
	return &AuthUseCase{
		userRepo:    userRepo,
		hasher:      hasher,
		tokens:      tokens,
		adminEmails: admins,
	}
}

type RegisterInput struct {
	Name     string
	Address  string
	Email    string
	Password string
}

type LoginResult struct {
	UserID  string
	Token   string
	Role    string
	IsAdmin bool
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (string, error) {
	email := normalizeEmail(input.Email)
	if strings.TrimSpace(input.Name) == "" {
		return "", errors.Validation("Name is required", nil)
	}
	if email == "" {
		return "", errors.Validation("Email is required", nil)
	}
	if input.Password == "" {
		return "", errors.Validation("Password is required", nil)
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.IsNotFound(err) {
		return "", errors.Wrap("Failed to check email", err)
	}
	if existing != nil {
		return "", errors.Validation("Email already registered", nil)
	}

	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return "", errors.Internal("Failed to hash password", err)
	}

	role := entity.RoleUser
	if _, ok := uc.adminEmails[email]; ok {
		role = entity.RoleAdmin
	}

	user := &entity.User{
		Name:         strings.TrimSpace(input.Name),
		Address:      strings.TrimSpace(input.Address),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		LikedItems:   []string{},
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return "", errors.Wrap("Failed to create user", err)
	}

	logger.FromContext(ctx).Info("User registered", zap.String("user_id", user.ID), zap.String("role", role))
	return user.ID, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.InvalidCredentials("Invalid email or password")
		}
		return nil, errors.Wrap("Failed to get user", err)
	}

	if !uc.hasher.Compare(user.PasswordHash, password) {
		logger.FromContext(ctx).Warn("Login rejected", zap.String("user_id", user.ID))
		return nil, errors.InvalidCredentials("Invalid email or password")
	}

	token, err := uc.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, errors.Internal("Failed to issue session token", err)
	}

	return &LoginResult{
		UserID:  user.ID,
		Token:   token,
		Role:    user.Role,
		IsAdmin: user.IsAdmin(),
	}, nil
}
