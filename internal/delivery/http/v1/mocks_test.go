package v1_test

import (
	"context"

	"job-portal-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockAuthUC struct {
	mock.Mock
}

func (m *MockAuthUC) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}
func (m *MockAuthUC) Login(ctx context.Context, email, password string) (*domain.AuthToken, error) {
	args := m.Called(ctx, email, password)
	token, _ := args.Get(0).(*domain.AuthToken)
	return token, args.Error(1)
}
func (m *MockAuthUC) ParseToken(token string) (*domain.TokenClaims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(*domain.TokenClaims)
	return claims, args.Error(1)
}
func (m *MockAuthUC) GetCurrentUser(ctx context.Context) (*domain.User, error) {
	args := m.Called(ctx)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

type MockFileUC struct {
	mock.Mock
}

func (m *MockFileUC) UploadResume(ctx context.Context, upload domain.Upload) (*domain.UploadResult, error) {
	args := m.Called(ctx, upload)
	res, _ := args.Get(0).(*domain.UploadResult)
	return res, args.Error(1)
}
func (m *MockFileUC) UploadProfilePicture(ctx context.Context, upload domain.Upload) (*domain.UploadResult, error) {
	args := m.Called(ctx, upload)
	res, _ := args.Get(0).(*domain.UploadResult)
	return res, args.Error(1)
}
func (m *MockFileUC) DownloadFile(ctx context.Context, filename string) (*domain.FileDownload, error) {
	args := m.Called(ctx, filename)
	file, _ := args.Get(0).(*domain.FileDownload)
	return file, args.Error(1)
}
func (m *MockFileUC) DeleteResume(ctx context.Context) (*domain.User, error) {
	args := m.Called(ctx)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}
func (m *MockFileUC) DeleteProfilePicture(ctx context.Context) (*domain.User, error) {
	args := m.Called(ctx)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

type MockUserUC struct {
	mock.Mock
}

func (m *MockUserUC) user(args mock.Arguments) (*domain.User, error) {
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}
func (m *MockUserUC) users(args mock.Arguments) ([]domain.User, error) {
	users, _ := args.Get(0).([]domain.User)
	return users, args.Error(1)
}

func (m *MockUserUC) Create(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	return m.user(m.Called(ctx, req))
}
func (m *MockUserUC) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return m.user(m.Called(ctx, id))
}
func (m *MockUserUC) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.user(m.Called(ctx, email))
}
func (m *MockUserUC) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}
func (m *MockUserUC) List(ctx context.Context) ([]domain.User, error) {
	return m.users(m.Called(ctx))
}
func (m *MockUserUC) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	return m.users(m.Called(ctx, role))
}
func (m *MockUserUC) Verify(ctx context.Context, id int64) (*domain.User, error) {
	return m.user(m.Called(ctx, id))
}
func (m *MockUserUC) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockUserUC) UpdateProfile(ctx context.Context, user *domain.User, update domain.ProfileUpdate) (*domain.User, error) {
	return m.user(m.Called(ctx, user, update))
}
func (m *MockUserUC) UpdatePassword(ctx context.Context, user *domain.User, newPassword string) error {
	return m.Called(ctx, user, newPassword).Error(0)
}
func (m *MockUserUC) UpdateProfilePicture(ctx context.Context, user *domain.User, url string) (*domain.User, error) {
	return m.user(m.Called(ctx, user, url))
}
func (m *MockUserUC) DeleteProfilePicture(ctx context.Context, user *domain.User) (*domain.User, error) {
	return m.user(m.Called(ctx, user))
}
func (m *MockUserUC) UpdateResume(ctx context.Context, user *domain.User, url string) (*domain.User, error) {
	return m.user(m.Called(ctx, user, url))
}
func (m *MockUserUC) DeleteResume(ctx context.Context, user *domain.User) (*domain.User, error) {
	return m.user(m.Called(ctx, user))
}
func (m *MockUserUC) AddSkill(ctx context.Context, user *domain.User, skillID int64) (*domain.User, error) {
	return m.user(m.Called(ctx, user, skillID))
}
func (m *MockUserUC) RemoveSkill(ctx context.Context, user *domain.User, skillID int64) (*domain.User, error) {
	return m.user(m.Called(ctx, user, skillID))
}
func (m *MockUserUC) ReplaceSkills(ctx context.Context, user *domain.User, skillIDs []int64) (*domain.User, error) {
	return m.user(m.Called(ctx, user, skillIDs))
}

type MockSkillUC struct {
	mock.Mock
}

func (m *MockSkillUC) Create(ctx context.Context, skill *domain.Skill) (*domain.Skill, error) {
	args := m.Called(ctx, skill)
	s, _ := args.Get(0).(*domain.Skill)
	return s, args.Error(1)
}
func (m *MockSkillUC) GetByID(ctx context.Context, id int64) (*domain.Skill, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*domain.Skill)
	return s, args.Error(1)
}
func (m *MockSkillUC) List(ctx context.Context) ([]domain.Skill, error) {
	args := m.Called(ctx)
	skills, _ := args.Get(0).([]domain.Skill)
	return skills, args.Error(1)
}
func (m *MockSkillUC) Search(ctx context.Context, keyword string) ([]domain.Skill, error) {
	args := m.Called(ctx, keyword)
	skills, _ := args.Get(0).([]domain.Skill)
	return skills, args.Error(1)
}
func (m *MockSkillUC) ListByCategory(ctx context.Context, category string) ([]domain.Skill, error) {
	args := m.Called(ctx, category)
	skills, _ := args.Get(0).([]domain.Skill)
	return skills, args.Error(1)
}
