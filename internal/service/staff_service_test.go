package service_test

import (
	"context"
	"errors"
	"testing"

	"clothingshop/internal/config"
	"clothingshop/internal/dto"
	"clothingshop/internal/model"
	"clothingshop/internal/repository"
	"clothingshop/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ── In-memory UserRepository ─────────────────────────────────────────────────

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
	roles []model.Role
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return u, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User, roleIDs []uuid.UUID) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	for _, id := range roleIDs {
		for _, role := range r.roles {
			if role.ID == id {
				u.Roles = append(u.Roles, role)
			}
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) ReplaceRoles(_ context.Context, userID uuid.UUID, roleIDs []uuid.UUID) error {
	u, ok := r.users[userID]
	if !ok {
		return errors.New("record not found")
	}
	u.Roles = nil
	for _, id := range roleIDs {
		for _, role := range r.roles {
			if role.ID == id {
				u.Roles = append(u.Roles, role)
			}
		}
	}
	return nil
}

func (r *stubUserRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	u, ok := r.users[id]
	if !ok {
		return errors.New("record not found")
	}
	u.Active = active
	return nil
}

func (r *stubUserRepo) ListWithRoles(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) ListRoles(_ context.Context) ([]model.Role, error) {
	return r.roles, nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

const testSecret = "test_jwt_secret_32_chars_minimum!"

func newTestCfg() *config.Config {
	return &config.Config{
		JWTSecret:          testSecret,
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
}

func seedStaff(t *testing.T, repo *stubUserRepo, email, password, roleName string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	require.NoError(t, err)
	u := &model.User{
		ID:           uuid.New(),
		FullName:     "Test Staff",
		Email:        email,
		PasswordHash: string(hash),
		Active:       true,
		Roles:        []model.Role{{ID: uuid.New(), Name: roleName}},
	}
	repo.users[u.ID] = u
	return u
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	repo := newStubUserRepo()
	seedStaff(t, repo, "staff@shop.test", "s3cretpass", "admin")
	svc := service.NewStaffService(repo, newTestCfg())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "staff@shop.test", Password: "s3cretpass"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, []string{"admin"}, resp.User.Roles)

	// The access token carries the role claim the middleware checks.
	token, err := jwt.Parse(resp.AccessToken, func(_ *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, "staff@shop.test", claims["email"])
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	seedStaff(t, repo, "staff@shop.test", "s3cretpass", "staff")
	svc := service.NewStaffService(repo, newTestCfg())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "staff@shop.test", Password: "wrong"})
	assert.Error(t, err)
}

func TestLogin_InactiveUser(t *testing.T) {
	repo := newStubUserRepo()
	u := seedStaff(t, repo, "staff@shop.test", "s3cretpass", "staff")
	u.Active = false
	svc := service.NewStaffService(repo, newTestCfg())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "staff@shop.test", Password: "s3cretpass"})
	assert.Error(t, err)
}

func TestRefresh_RoundTrip(t *testing.T) {
	repo := newStubUserRepo()
	seedStaff(t, repo, "staff@shop.test", "s3cretpass", "staff")
	svc := service.NewStaffService(repo, newTestCfg())

	login, err := svc.Login(context.Background(), dto.LoginRequest{Email: "staff@shop.test", Password: "s3cretpass"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefresh_GarbageToken(t *testing.T) {
	repo := newStubUserRepo()
	svc := service.NewStaffService(repo, newTestCfg())

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.Error(t, err)
}

// ── Staff administration ─────────────────────────────────────────────────────

func TestCreateStaff_AssignsRoles(t *testing.T) {
	repo := newStubUserRepo()
	staffRole := model.Role{ID: uuid.New(), Name: "staff"}
	repo.roles = []model.Role{staffRole}
	svc := service.NewStaffService(repo, newTestCfg())

	resp, err := svc.CreateStaff(context.Background(), dto.CreateStaffRequest{
		FullName: "New Member",
		Email:    "new@shop.test",
		Password: "longenough",
		RoleIDs:  []string{staffRole.ID.String()},
	})
	require.NoError(t, err)

	assert.Equal(t, "New Member", resp.FullName)
	assert.True(t, resp.Active)
	assert.Equal(t, []string{"staff"}, resp.Roles)

	// Password is stored hashed, never verbatim.
	stored, err := repo.FindByEmail(context.Background(), "new@shop.test")
	require.NoError(t, err)
	assert.NotEqual(t, "longenough", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("longenough")))
}

func TestCreateStaff_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	seedStaff(t, repo, "dup@shop.test", "s3cretpass", "staff")
	svc := service.NewStaffService(repo, newTestCfg())

	_, err := svc.CreateStaff(context.Background(), dto.CreateStaffRequest{
		FullName: "Duplicate",
		Email:    "dup@shop.test",
		Password: "longenough",
	})
	assert.Error(t, err)
}

func TestDeactivateAndReactivateStaff(t *testing.T) {
	repo := newStubUserRepo()
	u := seedStaff(t, repo, "staff@shop.test", "s3cretpass", "staff")
	svc := service.NewStaffService(repo, newTestCfg())

	require.NoError(t, svc.DeactivateStaff(context.Background(), u.ID))
	assert.False(t, repo.users[u.ID].Active)

	require.NoError(t, svc.ReactivateStaff(context.Background(), u.ID))
	assert.True(t, repo.users[u.ID].Active)
}
