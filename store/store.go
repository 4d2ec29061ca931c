package store

import (
	"errors"

	"onlinestore/models"

	"gorm.io/gorm"
)

// Errors the handlers match with errors.Is to choose a status code. Anything
// else coming out of a Store method is a backend failure.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidProduct     = errors.New("invalid product data")
	ErrUnknownField       = errors.New("unknown product field")
)

// Store runs all SQL operations on an injected gorm handle. Multi-step
// operations open their own transaction and either commit or roll back on
// every exit path.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Authenticate looks up a user by login and compares the stored password.
// Passwords are kept in plain text, matching the schema this server fronts.
func (s *Store) Authenticate(login, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("login = ?", login).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.Password != password {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}
