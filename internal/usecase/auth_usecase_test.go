package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"job-portal-backend/internal/domain"
	"job-portal-backend/internal/usecase"
	"job-portal-backend/pkg/apperror"
	"job-portal-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func newAuth(repo *MockUserRepo, ttl time.Duration) domain.AuthUsecase {
	userUC := usecase.NewUserUsecase(repo, new(MockSkillRepo), validation.New())
	return usecase.NewAuthUsecase(repo, userUC, testSecret, ttl)
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject duplicate email", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)

		_, err := newAuth(repo, time.Hour).Register(ctx, domain.RegisterRequest{
			Email: "Taken@Example.com", Password: "secret1", FirstName: "Ann", LastName: "Lee",
		})
		assert.True(t, apperror.Is(err, apperror.KindEmailInUse))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should hash password and default role", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("ExistsByEmail", mock.Anything, "new@example.com").Return(false, nil)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 42
		})

		user, err := newAuth(repo, time.Hour).Register(ctx, domain.RegisterRequest{
			Email: "new@example.com", Password: "secret1", FirstName: "Ann", LastName: "Lee",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(42), user.ID)
		assert.Equal(t, domain.RoleJobSeeker, user.Role)
		assert.True(t, user.IsActive)
		assert.False(t, user.IsVerified)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")))
	})

	t.Run("Should refuse self-registration as admin", func(t *testing.T) {
		repo := new(MockUserRepo)
		_, err := newAuth(repo, time.Hour).Register(ctx, domain.RegisterRequest{
			Email: "boss@example.com", Password: "secret1", FirstName: "Ann", LastName: "Lee", Role: domain.RoleAdmin,
		})
		assert.True(t, apperror.Is(err, apperror.KindValidation))
		repo.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should accept employer registration", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("ExistsByEmail", mock.Anything, "hr@example.com").Return(false, nil)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

		user, err := newAuth(repo, time.Hour).Register(ctx, domain.RegisterRequest{
			Email: "hr@example.com", Password: "secret1", FirstName: "Ann", LastName: "Lee", Role: domain.RoleEmployer,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleEmployer, user.Role)
	})

	t.Run("Should fail validation for short password", func(t *testing.T) {
		repo := new(MockUserRepo)
		_, err := newAuth(repo, time.Hour).Register(ctx, domain.RegisterRequest{
			Email: "a@example.com", Password: "123", FirstName: "Ann", LastName: "Lee",
		})
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})

	t.Run("Should surface unique violation from repository", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("ExistsByEmail", mock.Anything, "race@example.com").Return(false, nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(apperror.New(apperror.KindEmailInUse, "Email is already in use", nil))

		_, err := newAuth(repo, time.Hour).Register(ctx, domain.RegisterRequest{
			Email: "race@example.com", Password: "secret1", FirstName: "Ann", LastName: "Lee",
		})
		assert.True(t, apperror.Is(err, apperror.KindEmailInUse))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: 7, Email: "ann@example.com", PasswordHash: hashed(t, "secret1"), Role: domain.RoleEmployer, IsActive: true, FirstName: "Ann"}

	t.Run("Should reject unknown email", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

		_, err := newAuth(repo, time.Hour).Login(ctx, "nobody@example.com", "secret1")
		assert.True(t, apperror.Is(err, apperror.KindInvalidCredentials))
	})

	t.Run("Should reject wrong password", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", mock.Anything, "ann@example.com").Return(user, nil)

		_, err := newAuth(repo, time.Hour).Login(ctx, "ann@example.com", "wrong")
		assert.True(t, apperror.Is(err, apperror.KindInvalidCredentials))
	})

	t.Run("Should reject inactive account", func(t *testing.T) {
		inactive := *user
		inactive.IsActive = false
		repo := new(MockUserRepo)
		repo.On("GetByEmail", mock.Anything, "ann@example.com").Return(&inactive, nil)

		_, err := newAuth(repo, time.Hour).Login(ctx, "ann@example.com", "secret1")
		assert.True(t, apperror.Is(err, apperror.KindForbidden))
	})

	t.Run("Should issue a token that parses back", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", mock.Anything, "ann@example.com").Return(user, nil)
		auth := newAuth(repo, time.Hour)

		token, err := auth.Login(ctx, " ANN@example.com ", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "Bearer", token.Type)
		assert.Equal(t, []string{"ROLE_EMPLOYER"}, token.Roles)
		assert.Equal(t, "ann@example.com", token.Username)

		claims, err := auth.ParseToken(token.Token)
		require.NoError(t, err)
		assert.Equal(t, int64(7), claims.UserID)
		assert.Equal(t, domain.RoleEmployer, claims.Role)
	})

	t.Run("Should surface repository failures as internal", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", mock.Anything, "ann@example.com").Return(nil, errors.New("db down"))

		_, err := newAuth(repo, time.Hour).Login(ctx, "ann@example.com", "secret1")
		assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
	})
}

func TestParseToken(t *testing.T) {
	user := &domain.User{ID: 7, Email: "ann@example.com", PasswordHash: hashed(t, "secret1"), Role: domain.RoleJobSeeker, IsActive: true}
	repo := new(MockUserRepo)
	repo.On("GetByEmail", mock.Anything, "ann@example.com").Return(user, nil)

	t.Run("Should reject garbage", func(t *testing.T) {
		_, err := newAuth(repo, time.Hour).ParseToken("not-a-token")
		assert.True(t, apperror.Is(err, apperror.KindUnauthorized))
	})

	t.Run("Should reject token signed with another secret", func(t *testing.T) {
		other := usecase.NewAuthUsecase(repo, nil, "other-secret", time.Hour)
		token, err := other.Login(context.Background(), "ann@example.com", "secret1")
		require.NoError(t, err)

		_, err = newAuth(repo, time.Hour).ParseToken(token.Token)
		assert.True(t, apperror.Is(err, apperror.KindUnauthorized))
	})

	t.Run("Should reject expired token", func(t *testing.T) {
		auth := newAuth(repo, -time.Minute)
		token, err := auth.Login(context.Background(), "ann@example.com", "secret1")
		require.NoError(t, err)

		_, err = auth.ParseToken(token.Token)
		assert.True(t, apperror.Is(err, apperror.KindUnauthorized))
	})
}

func TestGetCurrentUser(t *testing.T) {
	t.Run("Should fail safely when Context UserID is missing", func(t *testing.T) {
		repo := new(MockUserRepo)
		_, err := newAuth(repo, time.Hour).GetCurrentUser(context.Background())
		assert.True(t, apperror.Is(err, apperror.KindUnauthorized))
	})

	t.Run("Should fail when user no longer exists", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByID", mock.Anything, int64(9)).Return(nil, nil)
		ctx := context.WithValue(context.Background(), domain.KeyUserID, int64(9))

		_, err := newAuth(repo, time.Hour).GetCurrentUser(ctx)
		assert.True(t, apperror.Is(err, apperror.KindUnauthorized))
	})

	t.Run("Should load user from context id", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByID", mock.Anything, int64(9)).Return(&domain.User{ID: 9}, nil)
		ctx := context.WithValue(context.Background(), domain.KeyUserID, int64(9))

		user, err := newAuth(repo, time.Hour).GetCurrentUser(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(9), user.ID)
	})
}
