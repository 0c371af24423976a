package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"
	"job-portal-backend/pkg/metrics"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenType = "Bearer"

type authUsecase struct {
	userRepo domain.UserRepository
	userUC   domain.UserUsecase
	secret   []byte
	tokenTTL time.Duration
}

// sessionClaims is the JWT payload; the subject holds the user id
type sessionClaims struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

func NewAuthUsecase(userRepo domain.UserRepository, userUC domain.UserUsecase, secret string, tokenTTL time.Duration) domain.AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		userUC:   userUC,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

func (u *authUsecase) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	return u.userUC.Create(ctx, req)
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (*domain.AuthToken, error) {
	user, err := u.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		metrics.RecordLogin("invalid_credentials")
		return nil, apperror.New(apperror.KindInvalidCredentials, "Invalid email or password", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		metrics.RecordLogin("invalid_credentials")
		return nil, apperror.New(apperror.KindInvalidCredentials, "Invalid email or password", nil)
	}

	if !user.IsActive {
		metrics.RecordLogin("inactive")
		return nil, apperror.Forbidden("Account is disabled")
	}

	token, err := u.issueToken(user)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	metrics.RecordLogin("success")

	return &domain.AuthToken{
		Token:     token,
		Type:      tokenType,
		ID:        user.ID,
		Username:  user.Email,
		Email:     user.Email,
		Roles:     []string{"ROLE_" + string(user.Role)},
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
	}, nil
}

func (u *authUsecase) ParseToken(tokenString string) (*domain.TokenClaims, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return u.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.New(apperror.KindUnauthorized, "Invalid token", err)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return nil, apperror.Unauthorized("Invalid token subject")
	}

	return &domain.TokenClaims{
		UserID: id,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context) (*domain.User, error) {
	userID, ok := domain.UserIDFromContext(ctx)
	if !ok {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.Unauthorized("User not found")
	}
	return user, nil
}

func (u *authUsecase) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(u.secret)
}
