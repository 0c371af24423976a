package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"
	"job-portal-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type userUsecase struct {
	userRepo  domain.UserRepository
	skillRepo domain.SkillRepository
	validate  *validator.Validate
}

func NewUserUsecase(userRepo domain.UserRepository, skillRepo domain.SkillRepository, validate *validator.Validate) domain.UserUsecase {
	return &userUsecase{
		userRepo:  userRepo,
		skillRepo: skillRepo,
		validate:  validate,
	}
}

func (u *userUsecase) Create(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest(validation.Message(err))
	}

	exists, err := u.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, emailInUse()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	role := req.Role
	if role == "" {
		role = domain.RoleJobSeeker
	}

	now := time.Now()
	user := &domain.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Phone:        req.Phone,
		Role:         role,
		IsActive:     true,
		IsVerified:   false,
		Skills:       []domain.Skill{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// Create maps a unique violation to email_in_use for concurrent registrations
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userUsecase) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, userNotFound()
	}
	return user, nil
}

func (u *userUsecase) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := u.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, userNotFound()
	}
	return user, nil
}

func (u *userUsecase) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return u.userRepo.ExistsByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (u *userUsecase) List(ctx context.Context) ([]domain.User, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return u.userRepo.List(ctx)
}

func (u *userUsecase) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, apperror.BadRequest("Invalid role: " + string(role))
	}
	return u.userRepo.ListByRole(ctx, role)
}

func (u *userUsecase) Verify(ctx context.Context, id int64) (*domain.User, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	user, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.userRepo.SetVerified(ctx, id, true); err != nil {
		return nil, apperror.Internal(err)
	}
	user.IsVerified = true
	user.UpdatedAt = time.Now()
	return user, nil
}

func (u *userUsecase) Delete(ctx context.Context, id int64) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	if _, err := u.GetByID(ctx, id); err != nil {
		return err
	}
	return u.userRepo.Delete(ctx, id)
}

func (u *userUsecase) UpdateProfile(ctx context.Context, user *domain.User, update domain.ProfileUpdate) (*domain.User, error) {
	if err := u.validate.Struct(update); err != nil {
		return nil, apperror.BadRequest(validation.Message(err))
	}

	user.FirstName = strings.TrimSpace(update.FirstName)
	user.LastName = strings.TrimSpace(update.LastName)
	user.Phone = update.Phone
	user.Bio = update.Bio
	user.Location = update.Location
	user.Website = update.Website
	user.LinkedinURL = update.LinkedinURL
	user.GithubURL = update.GithubURL
	user.UpdatedAt = time.Now()

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func (u *userUsecase) UpdatePassword(ctx context.Context, user *domain.User, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return apperror.BadRequest(fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperror.Internal(err)
	}
	if err := u.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return apperror.Internal(err)
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return nil
}

func (u *userUsecase) UpdateProfilePicture(ctx context.Context, user *domain.User, url string) (*domain.User, error) {
	return u.setProfilePicture(ctx, user, &url)
}

func (u *userUsecase) DeleteProfilePicture(ctx context.Context, user *domain.User) (*domain.User, error) {
	return u.setProfilePicture(ctx, user, nil)
}

func (u *userUsecase) setProfilePicture(ctx context.Context, user *domain.User, url *string) (*domain.User, error) {
	if err := u.userRepo.UpdateProfilePicture(ctx, user.ID, url); err != nil {
		return nil, apperror.Internal(err)
	}
	user.ProfilePicture = url
	user.UpdatedAt = time.Now()
	return user, nil
}

func (u *userUsecase) UpdateResume(ctx context.Context, user *domain.User, url string) (*domain.User, error) {
	return u.setResume(ctx, user, &url)
}

func (u *userUsecase) DeleteResume(ctx context.Context, user *domain.User) (*domain.User, error) {
	return u.setResume(ctx, user, nil)
}

func (u *userUsecase) setResume(ctx context.Context, user *domain.User, url *string) (*domain.User, error) {
	if err := u.userRepo.UpdateResumeURL(ctx, user.ID, url); err != nil {
		return nil, apperror.Internal(err)
	}
	user.ResumeURL = url
	user.UpdatedAt = time.Now()
	return user, nil
}

func (u *userUsecase) AddSkill(ctx context.Context, user *domain.User, skillID int64) (*domain.User, error) {
	if _, err := u.findSkill(ctx, skillID); err != nil {
		return nil, err
	}
	if err := u.userRepo.AddSkill(ctx, user.ID, skillID); err != nil {
		return nil, apperror.Internal(err)
	}
	return u.reloadSkills(ctx, user)
}

func (u *userUsecase) RemoveSkill(ctx context.Context, user *domain.User, skillID int64) (*domain.User, error) {
	if _, err := u.findSkill(ctx, skillID); err != nil {
		return nil, err
	}
	if err := u.userRepo.RemoveSkill(ctx, user.ID, skillID); err != nil {
		return nil, apperror.Internal(err)
	}
	return u.reloadSkills(ctx, user)
}

// ReplaceSkills validates every id before touching the user's skill set,
// reporting the first unknown id in request order.
func (u *userUsecase) ReplaceSkills(ctx context.Context, user *domain.User, skillIDs []int64) (*domain.User, error) {
	ids := dedupeIDs(skillIDs)

	found := make(map[int64]bool, len(ids))
	if len(ids) > 0 {
		skills, err := u.skillRepo.GetByIDs(ctx, ids)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		for _, s := range skills {
			found[s.ID] = true
		}
	}
	for _, id := range ids {
		if !found[id] {
			return nil, apperror.New(apperror.KindSkillNotFound, fmt.Sprintf("Skill not found: %d", id), nil)
		}
	}

	if err := u.userRepo.ReplaceSkills(ctx, user.ID, ids); err != nil {
		return nil, apperror.Internal(err)
	}
	return u.reloadSkills(ctx, user)
}

func (u *userUsecase) findSkill(ctx context.Context, id int64) (*domain.Skill, error) {
	skill, err := u.skillRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if skill == nil {
		return nil, apperror.New(apperror.KindSkillNotFound, "Skill not found", nil)
	}
	return skill, nil
}

func (u *userUsecase) reloadSkills(ctx context.Context, user *domain.User) (*domain.User, error) {
	skills, err := u.skillRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	user.Skills = skills
	user.UpdatedAt = time.Now()
	return user, nil
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// requireAdmin allows the call only for admins
func requireAdmin(ctx context.Context) error {
	if domain.RoleFromContext(ctx) != domain.RoleAdmin {
		return apperror.Forbidden("Admin access required")
	}
	return nil
}

func emailInUse() *apperror.AppError {
	return apperror.New(apperror.KindEmailInUse, "Email is already in use", nil)
}

func userNotFound() *apperror.AppError {
	return apperror.New(apperror.KindUserNotFound, "User not found", nil)
}
