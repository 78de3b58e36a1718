package dto

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	LoginID  string `json:"login_id"`
	Password string `json:"password"`
}

// LoginResponse token JWT y datos básicos del usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// RegisterRequest body para POST /api/auth/register (solo admin).
type RegisterRequest struct {
	LoginID  string `json:"login_id"` // 6-12 caracteres alfanuméricos
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"` // admin | manager | operator
}

// UserResponse representación de un usuario en la API (sin hash).
type UserResponse struct {
	ID      string `json:"id"`
	LoginID string `json:"login_id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
}
