// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/ledgerflow/backend/internal/application/adapter"
	"github.com/ledgerflow/backend/internal/domain/entity"
	domainerror "github.com/ledgerflow/backend/internal/domain/error"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// RegisterInput represents the input for user registration.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
	Currency entity.Currency // Optional, defaults to USD
}

// RegisterOutput represents the output of user registration.
type RegisterOutput struct {
	User  *entity.User
	Token string
}

// RegisterUseCase handles user registration logic.
type RegisterUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewRegisterUseCase creates a new RegisterUseCase instance.
func NewRegisterUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute performs the user registration and signs the new user in.
func (uc *RegisterUseCase) Execute(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"a valid email address is required",
			domainerror.ErrInvalidCredentials,
		)
	}
	if len(input.Password) < MinPasswordLength {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeWeakPassword,
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength),
			domainerror.ErrWeakPassword,
		)
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeEmailAlreadyRegistered,
			"this email is already registered",
			domainerror.ErrEmailAlreadyRegistered,
		)
	}

	hash, err := uc.passwordService.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(email, input.Name, hash)
	if input.Currency != "" {
		user.Currency = input.Currency
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := uc.tokenService.GenerateAccessToken(ctx, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &RegisterOutput{User: user, Token: token}, nil
}
