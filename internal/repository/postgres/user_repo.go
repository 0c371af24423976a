package postgres

import (
	"context"
	"errors"
	"fmt"

	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

const userColumns = `id, email, password, first_name, last_name, phone, role, is_active, is_verified,
	profile_picture, resume_url, bio, location, website, linkedin_url, github_url, created_at, updated_at`

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (email, password, first_name, last_name, phone, role, is_active, is_verified,
	              profile_picture, resume_url, bio, location, website, linkedin_url, github_url, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
              RETURNING id`
	err := r.db.QueryRow(ctx, query,
		user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Phone, user.Role,
		user.IsActive, user.IsVerified, user.ProfilePicture, user.ResumeURL, user.Bio, user.Location,
		user.Website, user.LinkedinURL, user.GithubURL, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.New(apperror.KindEmailInUse, "Email is already in use", err)
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *userRepo) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	skills, err := r.skillsFor(ctx, []int64{user.ID})
	if err != nil {
		return nil, err
	}
	user.Skills = orEmpty(skills[user.ID])
	return user, nil
}

func (r *userRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *userRepo) List(ctx context.Context) ([]domain.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
}

func (r *userRepo) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY id`, role)
}

func (r *userRepo) list(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	ids := []int64{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
		ids = append(ids, user.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	skills, err := r.skillsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Skills = orEmpty(skills[users[i].ID])
	}
	return users, nil
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET first_name = $2, last_name = $3, phone = $4, bio = $5, location = $6,
	              website = $7, linkedin_url = $8, github_url = $9, updated_at = $10
              WHERE id = $1`
	_, err := r.db.Exec(ctx, query, user.ID, user.FirstName, user.LastName, user.Phone, user.Bio,
		user.Location, user.Website, user.LinkedinURL, user.GithubURL, user.UpdatedAt)
	return err
}

func (r *userRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET password = $2, updated_at = NOW() WHERE id = $1`, id, passwordHash)
	return err
}

func (r *userRepo) UpdateProfilePicture(ctx context.Context, id int64, url *string) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET profile_picture = $2, updated_at = NOW() WHERE id = $1`, id, url)
	return err
}

func (r *userRepo) UpdateResumeURL(ctx context.Context, id int64, url *string) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET resume_url = $2, updated_at = NOW() WHERE id = $1`, id, url)
	return err
}

func (r *userRepo) SetVerified(ctx context.Context, id int64, verified bool) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET is_verified = $2, updated_at = NOW() WHERE id = $1`, id, verified)
	return err
}

func (r *userRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.New(apperror.KindUserNotFound, "User not found", nil)
	}
	return nil
}

// AddSkill is idempotent
func (r *userRepo) AddSkill(ctx context.Context, userID, skillID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_skills (user_id, skill_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, userID, skillID)
	return err
}

func (r *userRepo) RemoveSkill(ctx context.Context, userID, skillID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM user_skills WHERE user_id = $1 AND skill_id = $2`, userID, skillID)
	return err
}

func (r *userRepo) ReplaceSkills(ctx context.Context, userID int64, skillIDs []int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM user_skills WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear skills: %w", err)
	}
	if len(skillIDs) > 0 {
		_, err := tx.Exec(ctx,
			`INSERT INTO user_skills (user_id, skill_id) SELECT $1, unnest($2::bigint[])`,
			userID, pq.Array(skillIDs))
		if err != nil {
			return fmt.Errorf("insert skills: %w", err)
		}
	}
	if _, err := tx.Exec(ctx, `UPDATE users SET updated_at = NOW() WHERE id = $1`, userID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// skillsFor loads the skills of every given user in one query
func (r *userRepo) skillsFor(ctx context.Context, userIDs []int64) (map[int64][]domain.Skill, error) {
	out := make(map[int64][]domain.Skill, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT us.user_id, s.id, s.name, s.category, s.description
		FROM user_skills us
		JOIN skills s ON s.id = us.skill_id
		WHERE us.user_id = ANY($1::bigint[])
		ORDER BY s.name`, pq.Array(userIDs))
	if err != nil {
		return nil, fmt.Errorf("load user skills: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID int64
		var s domain.Skill
		if err := rows.Scan(&userID, &s.ID, &s.Name, &s.Category, &s.Description); err != nil {
			return nil, err
		}
		out[userID] = append(out[userID], s)
	}
	return out, rows.Err()
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone, &u.Role,
		&u.IsActive, &u.IsVerified, &u.ProfilePicture, &u.ResumeURL, &u.Bio, &u.Location,
		&u.Website, &u.LinkedinURL, &u.GithubURL, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func orEmpty(skills []domain.Skill) []domain.Skill {
	if skills == nil {
		return []domain.Skill{}
	}
	return skills
}
