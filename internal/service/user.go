package service

import (
	"errors"

	"cardlink/internal/apperr"
	"cardlink/internal/core/auth"
	"cardlink/internal/domain"
	"cardlink/internal/validate"
	"cardlink/pkg/utils"
)

type UserService struct {
	users domain.UserRepository
	jwter *auth.JWTer
}

func NewUserService(users domain.UserRepository, jwter *auth.JWTer) *UserService {
	return &UserService{users: users, jwter: jwter}
}

// Register 注册并签发会话令牌。email 唯一性先查后插，
// 并发撞车由唯一索引兜底，统一报 EMAIL_TAKEN。
func (s *UserService) Register(email, password string) (*domain.User, string, error) {
	email = validate.NormalizeEmail(email)
	if !validate.IsValidEmail(email) {
		return nil, "", apperr.BadRequest(apperr.CodeBadEmail, "Invalid email")
	}
	if len(password) < 8 {
		return nil, "", apperr.BadRequest(apperr.CodeBadPassword, "Password must be at least 8 characters")
	}

	existing, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, "", apperr.Internal("registration failed", err)
	}
	if existing != nil {
		return nil, "", apperr.Conflict(apperr.CodeEmailTaken, "Email already registered")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		if errors.Is(err, utils.ErrPasswordTooLong) {
			return nil, "", apperr.BadRequest(apperr.CodeBadPassword, "Password is too long")
		}
		return nil, "", apperr.Internal("registration failed", err)
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(u); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, "", apperr.Conflict(apperr.CodeEmailTaken, "Email already registered")
		}
		return nil, "", apperr.Internal("registration failed", err)
	}

	token, err := s.jwter.Issue(u.ID)
	if err != nil {
		return nil, "", apperr.Internal("issue token failed", err)
	}
	return u, token, nil
}

func (s *UserService) Login(email, password string) (*domain.User, string, error) {
	email = validate.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", apperr.BadRequest(apperr.CodeMissingFields, "Email and password required")
	}

	u, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, "", apperr.Internal("login failed", err)
	}
	// 查无此人和密码错误给同一个响应，不帮人探测账号
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, "", apperr.Unauthorized(apperr.CodeBadCredentials, "Invalid credentials")
	}

	token, err := s.jwter.Issue(u.ID)
	if err != nil {
		return nil, "", apperr.Internal("issue token failed", err)
	}
	return u, token, nil
}

func (s *UserService) Get(id string) (*domain.User, error) {
	u, err := s.users.FindByID(id)
	if err != nil {
		return nil, apperr.Internal("fetch user failed", err)
	}
	if u == nil {
		return nil, apperr.NotFound("User not found")
	}
	return u, nil
}
