package service

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_Register(t *testing.T) {
	t.Parallel()

	t.Run("hashes the password", func(t *testing.T) {
		t.Parallel()
		users := noopUserRepo()
		var created *models.User
		users.createFn = func(_ context.Context, u *models.User) error {
			created = u
			return nil
		}
		svc := NewUserService(users)

		user, err := svc.Register(context.Background(), RegisterInput{
			Username: "leo",
			Email:    "leo@example.com",
			Password: "correct horse",
		})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.NotEqual(t, "correct horse", user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("correct horse")))
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo())
		_, err := svc.Register(context.Background(), RegisterInput{Username: "leo", Email: "a@b.c", Password: "short"})
		assertValidationError(t, err)
	})

	t.Run("rejects taken username", func(t *testing.T) {
		t.Parallel()
		users := noopUserRepo()
		users.getByUsernameFn = func(context.Context, string) (*models.User, error) {
			return &models.User{ID: 1, Username: "leo"}, nil
		}
		svc := NewUserService(users)
		_, err := svc.Register(context.Background(), RegisterInput{Username: "leo", Email: "a@b.c", Password: "long enough"})
		assertValidationError(t, err)
	})
}

func TestUserService_Authenticate(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	withUser := func() *userRepoStub {
		users := noopUserRepo()
		users.getByUsernameFn = func(context.Context, string) (*models.User, error) {
			return &models.User{ID: 1, Username: "leo", Password: string(hash)}, nil
		}
		return users
	}

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(withUser())
		user, err := svc.Authenticate(context.Background(), "leo", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(withUser())
		_, err := svc.Authenticate(context.Background(), "leo", "wrong")
		assertUnauthorizedError(t, err)
	})

	t.Run("unknown username reports the same error as wrong password", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo())
		_, err := svc.Authenticate(context.Background(), "ghost", "whatever")
		assertUnauthorizedError(t, err)
	})
}
