package postgres

import (
	"context"
	"errors"

	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const skillColumns = `id, name, category, description`

type skillRepo struct {
	db *pgxpool.Pool
}

func NewSkillRepository(db *pgxpool.Pool) domain.SkillRepository {
	return &skillRepo{db: db}
}

func (r *skillRepo) Create(ctx context.Context, skill *domain.Skill) error {
	query := `INSERT INTO skills (name, category, description) VALUES ($1, $2, $3) RETURNING id`
	err := r.db.QueryRow(ctx, query, skill.Name, skill.Category, skill.Description).Scan(&skill.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.New(apperror.KindValidation, "Skill already exists: "+skill.Name, err)
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *skillRepo) GetByID(ctx context.Context, id int64) (*domain.Skill, error) {
	var s domain.Skill
	err := r.db.QueryRow(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.Category, &s.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *skillRepo) GetByIDs(ctx context.Context, ids []int64) ([]domain.Skill, error) {
	return r.query(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = ANY($1::bigint[])`, pq.Array(ids))
}

func (r *skillRepo) List(ctx context.Context) ([]domain.Skill, error) {
	return r.query(ctx, `SELECT `+skillColumns+` FROM skills ORDER BY name`)
}

func (r *skillRepo) Search(ctx context.Context, keyword string) ([]domain.Skill, error) {
	return r.query(ctx, `SELECT `+skillColumns+` FROM skills WHERE name ILIKE '%' || $1 || '%' ORDER BY name`, keyword)
}

func (r *skillRepo) ListByCategory(ctx context.Context, category string) ([]domain.Skill, error) {
	return r.query(ctx, `SELECT `+skillColumns+` FROM skills WHERE category = $1 ORDER BY name`, category)
}

func (r *skillRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Skill, error) {
	return r.query(ctx, `
		SELECT s.id, s.name, s.category, s.description
		FROM skills s
		JOIN user_skills us ON us.skill_id = s.id
		WHERE us.user_id = $1
		ORDER BY s.name`, userID)
}

func (r *skillRepo) query(ctx context.Context, query string, args ...any) ([]domain.Skill, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := []domain.Skill{}
	for rows.Next() {
		var s domain.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Description); err != nil {
			return nil, err
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}
