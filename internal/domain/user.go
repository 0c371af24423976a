package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleJobSeeker Role = "JOB_SEEKER"
	RoleEmployer  Role = "EMPLOYER"
	RoleAdmin     Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleJobSeeker, RoleEmployer, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Phone          string    `json:"phone"`
	Role           Role      `json:"role"`
	IsActive       bool      `json:"isActive"`
	IsVerified     bool      `json:"isVerified"`
	ProfilePicture *string   `json:"profilePicture"`
	ResumeURL      *string   `json:"resumeUrl"`
	Bio            string    `json:"bio"`
	Location       string    `json:"location"`
	Website        string    `json:"website"`
	LinkedinURL    string    `json:"linkedinUrl"`
	GithubURL      string    `json:"githubUrl"`
	Skills         []Skill   `json:"skills"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	FirstName   string `json:"firstName" validate:"required,max=100,valid_name,no_emoji"`
	LastName    string `json:"lastName" validate:"required,max=100,valid_name,no_emoji"`
	Phone       string `json:"phone" validate:"omitempty,valid_phone"`
	Bio         string `json:"bio" validate:"max=2000"`
	Location    string `json:"location" validate:"max=255"`
	Website     string `json:"website" validate:"omitempty,url"`
	LinkedinURL string `json:"linkedinUrl" validate:"omitempty,url"`
	GithubURL   string `json:"githubUrl" validate:"omitempty,url"`
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email" validate:"required,email"`
	Password  string `json:"password" binding:"required,min=6" validate:"required,min=6"`
	FirstName string `json:"firstName" binding:"required,valid_name" validate:"required,max=100,valid_name"`
	LastName  string `json:"lastName" binding:"required,valid_name" validate:"required,max=100,valid_name"`
	Phone     string `json:"phone" binding:"omitempty,valid_phone" validate:"omitempty,valid_phone"`
	Role      Role   `json:"role" binding:"omitempty,oneof=JOB_SEEKER EMPLOYER" validate:"omitempty,oneof=JOB_SEEKER EMPLOYER"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthToken is returned on a successful login.
type AuthToken struct {
	Token     string   `json:"token"`
	Type      string   `json:"type"`
	ID        int64    `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Role      Role     `json:"role"`
}

// TokenClaims are the claims carried by issued session tokens.
type TokenClaims struct {
	UserID int64
	Email  string
	Role   Role
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]User, error)
	ListByRole(ctx context.Context, role Role) ([]User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateProfilePicture(ctx context.Context, id int64, url *string) error
	UpdateResumeURL(ctx context.Context, id int64, url *string) error
	SetVerified(ctx context.Context, id int64, verified bool) error
	Delete(ctx context.Context, id int64) error
	AddSkill(ctx context.Context, userID, skillID int64) error
	RemoveSkill(ctx context.Context, userID, skillID int64) error
	ReplaceSkills(ctx context.Context, userID int64, skillIDs []int64) error
}

type AuthUsecase interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, email, password string) (*AuthToken, error)
	ParseToken(token string) (*TokenClaims, error)
	GetCurrentUser(ctx context.Context) (*User, error)
}

type UserUsecase interface {
	Create(ctx context.Context, req RegisterRequest) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]User, error)
	ListByRole(ctx context.Context, role Role) ([]User, error)
	Verify(ctx context.Context, id int64) (*User, error)
	Delete(ctx context.Context, id int64) error
	UpdateProfile(ctx context.Context, user *User, update ProfileUpdate) (*User, error)
	UpdatePassword(ctx context.Context, user *User, newPassword string) error
	UpdateProfilePicture(ctx context.Context, user *User, url string) (*User, error)
	DeleteProfilePicture(ctx context.Context, user *User) (*User, error)
	UpdateResume(ctx context.Context, user *User, url string) (*User, error)
	DeleteResume(ctx context.Context, user *User) (*User, error)
	AddSkill(ctx context.Context, user *User, skillID int64) (*User, error)
	RemoveSkill(ctx context.Context, user *User, skillID int64) (*User, error)
	ReplaceSkills(ctx context.Context, user *User, skillIDs []int64) (*User, error)
}
