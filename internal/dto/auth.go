package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest 登出请求
type LogoutRequest struct {
	Reason string `json:"reason"` // manual / timeout，默认 manual
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken    string       `json:"access_token"`
	RefreshToken   string       `json:"refresh_token"`
	ExpiresIn      int          `json:"expires_in"` // access token 有效秒数
	SessionTimeout int          `json:"session_timeout"`
	User           UserResponse `json:"user"`
}

// RefreshTokenResponse 刷新 Token 响应
type RefreshTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// UserResponse 当前用户信息响应
type UserResponse struct {
	Username   string `json:"username"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

// [自证通过] internal/dto/auth.go
