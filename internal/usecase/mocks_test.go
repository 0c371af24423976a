package usecase_test

import (
	"context"

	"job-portal-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}
func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]domain.User)
	return users, args.Error(1)
}
func (m *MockUserRepo) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	args := m.Called(ctx, role)
	users, _ := args.Get(0).([]domain.User)
	return users, args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}
func (m *MockUserRepo) UpdateProfilePicture(ctx context.Context, id int64, url *string) error {
	return m.Called(ctx, id, url).Error(0)
}
func (m *MockUserRepo) UpdateResumeURL(ctx context.Context, id int64, url *string) error {
	return m.Called(ctx, id, url).Error(0)
}
func (m *MockUserRepo) SetVerified(ctx context.Context, id int64, verified bool) error {
	return m.Called(ctx, id, verified).Error(0)
}
func (m *MockUserRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockUserRepo) AddSkill(ctx context.Context, userID, skillID int64) error {
	return m.Called(ctx, userID, skillID).Error(0)
}
func (m *MockUserRepo) RemoveSkill(ctx context.Context, userID, skillID int64) error {
	return m.Called(ctx, userID, skillID).Error(0)
}
func (m *MockUserRepo) ReplaceSkills(ctx context.Context, userID int64, skillIDs []int64) error {
	return m.Called(ctx, userID, skillIDs).Error(0)
}

type MockSkillRepo struct {
	mock.Mock
}

func (m *MockSkillRepo) Create(ctx context.Context, skill *domain.Skill) error {
	return m.Called(ctx, skill).Error(0)
}
func (m *MockSkillRepo) GetByID(ctx context.Context, id int64) (*domain.Skill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Skill), args.Error(1)
}
func (m *MockSkillRepo) GetByIDs(ctx context.Context, ids []int64) ([]domain.Skill, error) {
	args := m.Called(ctx, ids)
	skills, _ := args.Get(0).([]domain.Skill)
	return skills, args.Error(1)
}
func (m *MockSkillRepo) List(ctx context.Context) ([]domain.Skill, error) {
	args := m.Called(ctx)
	skills, _ := args.Get(0).([]domain.Skill)
	return skills, args.Error(1)
}
func (m *MockSkillRepo) Search(ctx context.Context, keyword string) ([]domain.Skill, error) {
	args := m.Called(ctx, keyword)
	skills, _ := args.Get(0).([]domain.Skill)
	return skills, args.Error(1)
}
func (m *MockSkillRepo) ListByCategory(ctx context.Context, category string) ([]domain.Skill, error) {
	args := m.Called(ctx, category)
	skills, _ := args.Get(0).([]domain.Skill)
	return skills, args.Error(1)
}
func (m *MockSkillRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Skill, error) {
	args := m.Called(ctx, userID)
	skills, _ := args.Get(0).([]domain.Skill)
	return skills, args.Error(1)
}

func strPtr(s string) *string {
	return &s
}
