package usecase

import (
	"context"
	"strings"

	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"
	"job-portal-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type skillUsecase struct {
	repo     domain.SkillRepository
	validate *validator.Validate
}

func NewSkillUsecase(repo domain.SkillRepository, validate *validator.Validate) domain.SkillUsecase {
	return &skillUsecase{
		repo:     repo,
		validate: validate,
	}
}

func (u *skillUsecase) Create(ctx context.Context, skill *domain.Skill) (*domain.Skill, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	skill.Name = strings.TrimSpace(skill.Name)
	skill.Category = strings.ToUpper(strings.TrimSpace(skill.Category))
	if err := u.validate.Struct(skill); err != nil {
		return nil, apperror.BadRequest(validation.Message(err))
	}

	if err := u.repo.Create(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

func (u *skillUsecase) GetByID(ctx context.Context, id int64) (*domain.Skill, error) {
	skill, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if skill == nil {
		return nil, apperror.New(apperror.KindSkillNotFound, "Skill not found", nil)
	}
	return skill, nil
}

func (u *skillUsecase) List(ctx context.Context) ([]domain.Skill, error) {
	return u.repo.List(ctx)
}

func (u *skillUsecase) Search(ctx context.Context, keyword string) ([]domain.Skill, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return u.repo.List(ctx)
	}
	return u.repo.Search(ctx, keyword)
}

func (u *skillUsecase) ListByCategory(ctx context.Context, category string) ([]domain.Skill, error) {
	return u.repo.ListByCategory(ctx, strings.ToUpper(strings.TrimSpace(category)))
}
