package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jcastell/milasset-api/internal/application/auth"
	"github.com/jcastell/milasset-api/internal/domain"
	"github.com/jcastell/milasset-api/internal/domain/entity"
	pkgjwt "github.com/jcastell/milasset-api/pkg/jwt"
)

type fakeUserRepo struct{ users map[string]*entity.User }

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.users[username], nil
}
func (r *fakeUserRepo) Create(_ context.Context, _ *entity.User) error { return nil }

func newFixture(t *testing.T) *auth.UseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("cmd123"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &fakeUserRepo{users: map[string]*entity.User{
		"commander1": {
			ID:           "00000000-0000-0000-0000-000000000001",
			Username:     "commander1",
			PasswordHash: string(hash),
			Role:         entity.RoleBaseCommander,
			BaseID:       1,
		},
	}}
	return auth.NewUseCase(repo, auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "milasset-test"})
}

func TestLogin_IssuesTokenWithScopeClaims(t *testing.T) {
	uc := newFixture(t)

	token, user, err := uc.Login(context.Background(), "commander1", "cmd123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, entity.RoleBaseCommander, user.Role)

	claims, err := pkgjwt.Parse("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, entity.RoleBaseCommander, claims.Role)
	assert.Equal(t, int64(1), claims.BaseID)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc := newFixture(t)
	_, _, err := uc.Login(context.Background(), "commander1", "wrong")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Unknown username and wrong password must be indistinguishable.
func TestLogin_UnknownUser(t *testing.T) {
	uc := newFixture(t)
	_, _, err := uc.Login(context.Background(), "nobody", "cmd123")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EmptyCredentials(t *testing.T) {
	uc := newFixture(t)
	_, _, err := uc.Login(context.Background(), "", "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
