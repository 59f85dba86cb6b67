package service

import (
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"fleetbooking/internal/auth"
	"fleetbooking/internal/db"
	"fleetbooking/internal/entities"
	apperrors "fleetbooking/internal/errors"
	"fleetbooking/internal/repository"
)

type AuthService struct {
	Repo *repository.UserRepository
}

func NewAuthService(repo *repository.UserRepository) *AuthService {
	return &AuthService{Repo: repo}
}

func (s *AuthService) Register(req entities.RegisterRequest) (*entities.UserResponse, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, apperrors.ErrBadRequest("name, email and password are required")
	}
	if len(req.Password) < 8 {
		return nil, apperrors.ErrBadRequest("password must be at least 8 characters")
	}
	role, err := auth.ParseRole(strings.ToLower(req.Role))
	if err != nil {
		return nil, apperrors.ErrBadRequest("invalid role")
	}
	if role == auth.RolePartner && req.CompanyID == nil {
		return nil, apperrors.ErrBadRequest("partner accounts need a company")
	}

	if _, err := s.Repo.GetByEmail(req.Email); err == nil {
		return nil, apperrors.ErrBadRequest("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &db.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         string(role),
		CompanyID:    req.CompanyID,
	}
	if err := s.Repo.Create(user); err != nil {
		logrus.WithError(err).Error("failed to create user")
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *AuthService) Login(req entities.LoginRequest) (*entities.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperrors.ErrBadRequest("email and password are required")
	}
	user, err := s.Repo.GetByEmail(req.Email)
	if err != nil {
		return nil, apperrors.ErrUnauthorized("invalid credentials")
	}
	if !user.Active {
		return nil, apperrors.ErrUnauthorized("account is deactivated")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, apperrors.ErrUnauthorized("invalid credentials")
	}

	role, err := auth.ParseRole(user.Role)
	if err != nil {
		return nil, apperrors.ErrUnauthorized("account role is invalid")
	}
	token, err := auth.CreateToken(user.ID, role, user.CompanyID)
	if err != nil {
		return nil, err
	}
	return &entities.LoginResponse{Token: token, User: toUserResponse(user)}, nil
}

func (s *AuthService) ListUsers(role string) ([]entities.UserResponse, error) {
	users, err := s.Repo.List(role)
	if err != nil {
		return nil, err
	}
	responses := make([]entities.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toUserResponse(u))
	}
	return responses, nil
}

func (s *AuthService) SetUserActive(id int, active bool) error {
	if _, err := s.Repo.GetByID(id); err != nil {
		return apperrors.ErrNotFound("user not found")
	}
	return s.Repo.SetActive(id, active)
}

func toUserResponse(u *db.User) entities.UserResponse {
	return entities.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		CompanyID: u.CompanyID,
		Active:    u.Active,
	}
}
