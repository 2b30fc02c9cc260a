package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/jcastell/milasset-api/internal/domain"
	"github.com/jcastell/milasset-api/internal/domain/entity"
	"github.com/jcastell/milasset-api/internal/domain/repository"
	pkgjwt "github.com/jcastell/milasset-api/pkg/jwt"
)

// JWTConfig signing parameters for issued tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase resolves username/password credentials into a signed bearer token
// carrying the role and base claims the scope filter consumes.
type UseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewUseCase builds the usecase.
func NewUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifies credentials and returns a token plus the user.
// Wrong username and wrong password are indistinguishable to the caller.
func (uc *UseCase) Login(ctx context.Context, username, password string) (string, *entity.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrUnauthorized
	}

	token, err := pkgjwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, user.BaseID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
