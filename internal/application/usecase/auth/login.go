package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledgerflow/backend/internal/application/adapter"
	"github.com/ledgerflow/backend/internal/domain/entity"
	domainerror "github.com/ledgerflow/backend/internal/domain/error"
)

// LoginInput represents the input for user login.
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the output of a successful login.
type LoginOutput struct {
	User  *entity.User
	Token string
}

// LoginUseCase handles user login logic.
type LoginUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewLoginUseCase creates a new LoginUseCase instance.
func NewLoginUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute performs the login. Unknown email and wrong password produce the
// same error.
func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, invalidCredentials()
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !uc.passwordService.Verify(input.Password, user.PasswordHash) {
		return nil, invalidCredentials()
	}

	token, err := uc.tokenService.GenerateAccessToken(ctx, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginOutput{User: user, Token: token}, nil
}

func invalidCredentials() error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeInvalidCredentials,
		"invalid email or password",
		domainerror.ErrInvalidCredentials,
	)
}
