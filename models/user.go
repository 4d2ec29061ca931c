package models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"user_id"`
	Login    string `gorm:"uniqueIndex" json:"login"`
	Password string `json:"-"`
	Role     string `gorm:"default:user" json:"user_role"`
}
