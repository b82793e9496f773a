package service

import (
	"context"
	"errors"
	"time"

	"clothingshop/internal/apierror"
	"clothingshop/internal/config"
	"clothingshop/internal/dto"
	"clothingshop/internal/model"
	"clothingshop/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// StaffService handles authentication and staff/role administration.
type StaffService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)

	CreateStaff(ctx context.Context, req dto.CreateStaffRequest) (*dto.StaffResponse, error)
	ListStaff(ctx context.Context) ([]dto.StaffResponse, error)
	UpdateStaff(ctx context.Context, id uuid.UUID, req dto.UpdateStaffRequest) (*dto.StaffResponse, error)
	DeactivateStaff(ctx context.Context, id uuid.UUID) error
	ReactivateStaff(ctx context.Context, id uuid.UUID) error
	ListRoles(ctx context.Context) ([]dto.RoleResponse, error)
}

type staffService struct {
	repo repository.UserRepository
	cfg  *config.Config
}

func NewStaffService(repo repository.UserRepository, cfg *config.Config) StaffService {
	return &staffService{repo: repo, cfg: cfg}
}

func (s *staffService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}
	if !user.Active {
		return nil, errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         userToStaffResponse(user),
	}, nil
}

func (s *staffService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalid or expired")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("malformed token")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("malformed token")
	}
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("malformed token")
	}

	user, err := s.repo.FindByID(ctx, uid)
	if err != nil || !user.Active {
		return nil, errors.New("user not found or inactive")
	}

	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	newRefresh, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         userToStaffResponse(user),
	}, nil
}

func (s *staffService) generateToken(user *model.User, ttl time.Duration) (string, error) {
	role := ""
	if len(user.Roles) > 0 {
		role = user.Roles[0].Name
	}
	claims := jwt.MapClaims{
		"user_id":   user.ID.String(),
		"email":     user.Email,
		"full_name": user.FullName,
		"role":      role,
		"exp":       time.Now().Add(ttl).Unix(),
		"iat":       time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ── Staff administration ────────────────────────────────────────────────────

func (s *staffService) CreateStaff(ctx context.Context, req dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New("email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Active:       true,
	}
	if req.Phone != "" {
		phone := req.Phone
		user.Phone = &phone
	}
	if req.Address != "" {
		addr := req.Address
		user.Address = &addr
	}

	roleIDs, err := parseRoleIDs(req.RoleIDs)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, user, roleIDs); err != nil {
		return nil, err
	}
	// Reload so the response carries the assigned roles.
	created, err := s.repo.FindByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	resp := userToStaffResponse(created)
	return &resp, nil
}

func (s *staffService) ListStaff(ctx context.Context) ([]dto.StaffResponse, error) {
	users, err := s.repo.ListWithRoles(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.StaffResponse, 0, len(users))
	for i := range users {
		resp = append(resp, userToStaffResponse(&users[i]))
	}
	return resp, nil
}

func (s *staffService) UpdateStaff(ctx context.Context, id uuid.UUID, req dto.UpdateStaffRequest) (*dto.StaffResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.ErrNotFound
	}
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Phone != "" {
		phone := req.Phone
		user.Phone = &phone
	}
	if req.Address != "" {
		addr := req.Address
		user.Address = &addr
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	if req.RoleIDs != nil {
		roleIDs, err := parseRoleIDs(req.RoleIDs)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceRoles(ctx, id, roleIDs); err != nil {
			return nil, err
		}
	}
	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := userToStaffResponse(updated)
	return &resp, nil
}

func (s *staffService) DeactivateStaff(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.ErrNotFound
	}
	return s.repo.SetActive(ctx, id, false)
}

func (s *staffService) ReactivateStaff(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.ErrNotFound
	}
	return s.repo.SetActive(ctx, id, true)
}

func (s *staffService) ListRoles(ctx context.Context) ([]dto.RoleResponse, error) {
	roles, err := s.repo.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		rr := dto.RoleResponse{ID: r.ID.String(), Name: r.Name}
		if r.Description != nil {
			rr.Description = *r.Description
		}
		resp = append(resp, rr)
	}
	return resp, nil
}

func parseRoleIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, errors.New("invalid role id")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func userToStaffResponse(u *model.User) dto.StaffResponse {
	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, r.Name)
	}
	resp := dto.StaffResponse{
		ID:       u.ID.String(),
		FullName: u.FullName,
		Email:    u.Email,
		Active:   u.Active,
		Roles:    roles,
	}
	if u.Phone != nil {
		resp.Phone = *u.Phone
	}
	if u.Address != nil {
		resp.Address = *u.Address
	}
	return resp
}
