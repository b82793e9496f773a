package dto

// ─── Auth ───────────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int           `json:"expires_in"`
	User         StaffResponse `json:"user"`
}

// ─── Staff administration ───────────────────────────────────────────────────

type CreateStaffRequest struct {
	FullName string   `json:"full_name" validate:"required,max=120"`
	Email    string   `json:"email"     validate:"required,email"`
	Password string   `json:"password"  validate:"required,min=8"`
	Phone    string   `json:"phone"     validate:"max=20"`
	Address  string   `json:"address"   validate:"max=300"`
	RoleIDs  []string `json:"role_ids"  validate:"dive,uuid"`
}

type UpdateStaffRequest struct {
	FullName string   `json:"full_name" validate:"max=120"`
	Phone    string   `json:"phone"     validate:"max=20"`
	Address  string   `json:"address"   validate:"max=300"`
	RoleIDs  []string `json:"role_ids"  validate:"dive,uuid"`
}

type StaffResponse struct {
	ID       string   `json:"id"`
	FullName string   `json:"full_name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone,omitempty"`
	Address  string   `json:"address,omitempty"`
	Active   bool     `json:"active"`
	Roles    []string `json:"roles"`
}

type RoleResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
