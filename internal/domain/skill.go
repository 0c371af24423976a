package domain

import "context"

type Skill struct {
	ID          int64  `json:"id"`
	Name        string `json:"name" validate:"required,max=100"`
	Category    string `json:"category" validate:"max=50"`
	Description string `json:"description" validate:"max=500"`
}

type SkillRepository interface {
	Create(ctx context.Context, skill *Skill) error
	GetByID(ctx context.Context, id int64) (*Skill, error)
	// GetByIDs returns the skills that exist among ids, in no particular order.
	GetByIDs(ctx context.Context, ids []int64) ([]Skill, error)
	List(ctx context.Context) ([]Skill, error)
	Search(ctx context.Context, keyword string) ([]Skill, error)
	ListByCategory(ctx context.Context, category string) ([]Skill, error)
	ListByUser(ctx context.Context, userID int64) ([]Skill, error)
}

type SkillUsecase interface {
	Create(ctx context.Context, skill *Skill) (*Skill, error)
	GetByID(ctx context.Context, id int64) (*Skill, error)
	List(ctx context.Context) ([]Skill, error)
	Search(ctx context.Context, keyword string) ([]Skill, error)
	ListByCategory(ctx context.Context, category string) ([]Skill, error)
}
