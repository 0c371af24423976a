package usecase_test

import (
	"context"
	"testing"

	"job-portal-backend/internal/domain"
	"job-portal-backend/internal/usecase"
	"job-portal-backend/pkg/apperror"
	"job-portal-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func adminCtx() context.Context {
	ctx := context.WithValue(context.Background(), domain.KeyUserID, int64(1))
	return context.WithValue(ctx, domain.KeyUserRole, domain.RoleAdmin)
}

func seekerCtx() context.Context {
	ctx := context.WithValue(context.Background(), domain.KeyUserID, int64(2))
	return context.WithValue(ctx, domain.KeyUserRole, domain.RoleJobSeeker)
}

func TestReplaceSkills(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject unknown id without touching the skill set", func(t *testing.T) {
		userRepo, skillRepo := new(MockUserRepo), new(MockSkillRepo)
		skillRepo.On("GetByIDs", mock.Anything, []int64{1, 99, 100}).
			Return([]domain.Skill{{ID: 1, Name: "Go"}}, nil)
		uc := usecase.NewUserUsecase(userRepo, skillRepo, validation.New())

		_, err := uc.ReplaceSkills(ctx, &domain.User{ID: 5}, []int64{1, 99, 100})
		require.Error(t, err)
		assert.True(t, apperror.Is(err, apperror.KindSkillNotFound))
		assert.Contains(t, err.Error(), "Skill not found: 99")
		userRepo.AssertNotCalled(t, "ReplaceSkills", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should dedupe ids and reload skills", func(t *testing.T) {
		userRepo, skillRepo := new(MockUserRepo), new(MockSkillRepo)
		skills := []domain.Skill{{ID: 1, Name: "Go"}, {ID: 2, Name: "SQL"}}
		skillRepo.On("GetByIDs", mock.Anything, []int64{2, 1}).Return(skills, nil)
		userRepo.On("ReplaceSkills", mock.Anything, int64(5), []int64{2, 1}).Return(nil)
		skillRepo.On("ListByUser", mock.Anything, int64(5)).Return(skills, nil)
		uc := usecase.NewUserUsecase(userRepo, skillRepo, validation.New())

		user, err := uc.ReplaceSkills(ctx, &domain.User{ID: 5}, []int64{2, 1, 2})
		require.NoError(t, err)
		assert.Len(t, user.Skills, 2)
		userRepo.AssertExpectations(t)
	})

	t.Run("Should clear skills for empty list", func(t *testing.T) {
		userRepo, skillRepo := new(MockUserRepo), new(MockSkillRepo)
		userRepo.On("ReplaceSkills", mock.Anything, int64(5), []int64{}).Return(nil)
		skillRepo.On("ListByUser", mock.Anything, int64(5)).Return([]domain.Skill{}, nil)
		uc := usecase.NewUserUsecase(userRepo, skillRepo, validation.New())

		user, err := uc.ReplaceSkills(ctx, &domain.User{ID: 5}, nil)
		require.NoError(t, err)
		assert.Empty(t, user.Skills)
		skillRepo.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
	})
}

func TestAddRemoveSkill(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject unknown skill on add", func(t *testing.T) {
		userRepo, skillRepo := new(MockUserRepo), new(MockSkillRepo)
		skillRepo.On("GetByID", mock.Anything, int64(9)).Return(nil, nil)
		uc := usecase.NewUserUsecase(userRepo, skillRepo, validation.New())

		_, err := uc.AddSkill(ctx, &domain.User{ID: 5}, 9)
		assert.True(t, apperror.Is(err, apperror.KindSkillNotFound))
		userRepo.AssertNotCalled(t, "AddSkill", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should add skill and reload", func(t *testing.T) {
		userRepo, skillRepo := new(MockUserRepo), new(MockSkillRepo)
		skill := &domain.Skill{ID: 3, Name: "Docker"}
		skillRepo.On("GetByID", mock.Anything, int64(3)).Return(skill, nil)
		userRepo.On("AddSkill", mock.Anything, int64(5), int64(3)).Return(nil)
		skillRepo.On("ListByUser", mock.Anything, int64(5)).Return([]domain.Skill{*skill}, nil)
		uc := usecase.NewUserUsecase(userRepo, skillRepo, validation.New())

		user, err := uc.AddSkill(ctx, &domain.User{ID: 5}, 3)
		require.NoError(t, err)
		assert.Equal(t, []domain.Skill{*skill}, user.Skills)
	})

	t.Run("Should remove skill and reload", func(t *testing.T) {
		userRepo, skillRepo := new(MockUserRepo), new(MockSkillRepo)
		skillRepo.On("GetByID", mock.Anything, int64(3)).Return(&domain.Skill{ID: 3}, nil)
		userRepo.On("RemoveSkill", mock.Anything, int64(5), int64(3)).Return(nil)
		skillRepo.On("ListByUser", mock.Anything, int64(5)).Return([]domain.Skill{}, nil)
		uc := usecase.NewUserUsecase(userRepo, skillRepo, validation.New())

		user, err := uc.RemoveSkill(ctx, &domain.User{ID: 5, Skills: []domain.Skill{{ID: 3}}}, 3)
		require.NoError(t, err)
		assert.Empty(t, user.Skills)
	})
}

func TestAdminOperations(t *testing.T) {
	t.Run("Should forbid listing for non-admins", func(t *testing.T) {
		uc := usecase.NewUserUsecase(new(MockUserRepo), new(MockSkillRepo), validation.New())

		_, err := uc.List(seekerCtx())
		assert.True(t, apperror.Is(err, apperror.KindForbidden))

		_, err = uc.ListByRole(context.Background(), domain.RoleEmployer)
		assert.True(t, apperror.Is(err, apperror.KindForbidden))
	})

	t.Run("Should list for admins", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("List", mock.Anything).Return([]domain.User{{ID: 1}, {ID: 2}}, nil)
		uc := usecase.NewUserUsecase(userRepo, new(MockSkillRepo), validation.New())

		users, err := uc.List(adminCtx())
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})

	t.Run("Should reject unknown role", func(t *testing.T) {
		uc := usecase.NewUserUsecase(new(MockUserRepo), new(MockSkillRepo), validation.New())

		_, err := uc.ListByRole(adminCtx(), domain.Role("RECRUITER"))
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})

	t.Run("Should verify existing user", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", mock.Anything, int64(8)).Return(&domain.User{ID: 8}, nil)
		userRepo.On("SetVerified", mock.Anything, int64(8), true).Return(nil)
		uc := usecase.NewUserUsecase(userRepo, new(MockSkillRepo), validation.New())

		user, err := uc.Verify(adminCtx(), 8)
		require.NoError(t, err)
		assert.True(t, user.IsVerified)
	})

	t.Run("Should report missing user on delete", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", mock.Anything, int64(8)).Return(nil, nil)
		uc := usecase.NewUserUsecase(userRepo, new(MockSkillRepo), validation.New())

		err := uc.Delete(adminCtx(), 8)
		assert.True(t, apperror.Is(err, apperror.KindUserNotFound))
		userRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject invalid url", func(t *testing.T) {
		uc := usecase.NewUserUsecase(new(MockUserRepo), new(MockSkillRepo), validation.New())

		_, err := uc.UpdateProfile(ctx, &domain.User{ID: 5}, domain.ProfileUpdate{
			FirstName: "Ann", LastName: "Lee", Website: "not a url",
		})
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})

	t.Run("Should reject digits in names", func(t *testing.T) {
		uc := usecase.NewUserUsecase(new(MockUserRepo), new(MockSkillRepo), validation.New())

		_, err := uc.UpdateProfile(ctx, &domain.User{ID: 5}, domain.ProfileUpdate{FirstName: "Ann2", LastName: "Lee"})
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})

	t.Run("Should persist changes", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
		uc := usecase.NewUserUsecase(userRepo, new(MockSkillRepo), validation.New())

		user, err := uc.UpdateProfile(ctx, &domain.User{ID: 5}, domain.ProfileUpdate{
			FirstName: " Ann ", LastName: "O'Neil", Bio: "Backend engineer", Website: "https://ann.dev",
		})
		require.NoError(t, err)
		assert.Equal(t, "Ann", user.FirstName)
		assert.Equal(t, "https://ann.dev", user.Website)
	})
}

func TestUpdatePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject short password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(userRepo, new(MockSkillRepo), validation.New())

		err := uc.UpdatePassword(ctx, &domain.User{ID: 5}, "12345")
		assert.True(t, apperror.Is(err, apperror.KindValidation))
		userRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should store bcrypt hash", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("UpdatePassword", mock.Anything, int64(5), mock.AnythingOfType("string")).Return(nil)
		uc := usecase.NewUserUsecase(userRepo, new(MockSkillRepo), validation.New())

		user := &domain.User{ID: 5}
		require.NoError(t, uc.UpdatePassword(ctx, user, "new-secret"))
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("new-secret")))
	})
}

func TestProfilePictureAndResumeSetters(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepo)
	userRepo.On("UpdateProfilePicture", mock.Anything, int64(5), mock.Anything).Return(nil)
	userRepo.On("UpdateResumeURL", mock.Anything, int64(5), mock.Anything).Return(nil)
	uc := usecase.NewUserUsecase(userRepo, new(MockSkillRepo), validation.New())

	user := &domain.User{ID: 5}
	_, err := uc.UpdateProfilePicture(ctx, user, "/api/files/download/p.jpg")
	require.NoError(t, err)
	assert.Equal(t, strPtr("/api/files/download/p.jpg"), user.ProfilePicture)

	_, err = uc.DeleteProfilePicture(ctx, user)
	require.NoError(t, err)
	assert.Nil(t, user.ProfilePicture)

	_, err = uc.UpdateResume(ctx, user, "/api/files/download/r.pdf")
	require.NoError(t, err)
	assert.Equal(t, strPtr("/api/files/download/r.pdf"), user.ResumeURL)

	_, err = uc.DeleteResume(ctx, user)
	require.NoError(t, err)
	assert.Nil(t, user.ResumeURL)
}
