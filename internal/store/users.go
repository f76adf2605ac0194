package store

import (
	"errors"
	"strings"

	"github.com/taskdock-dev/taskdock/internal/auth"
	"github.com/taskdock-dev/taskdock/internal/models"
	"gorm.io/gorm"
)

// ErrDuplicateEmail is returned when registration hits an email that
// is already taken.
var ErrDuplicateEmail = errors.New("email already registered")

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// NormalizeEmail lowercases and trims an email before it is stored or
// looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ByID returns the user with the given id, or nil if none exists.
func (s *UserStore) ByID(id uint) (*models.User, error) {
	var user models.User

	err := s.db.First(&user, id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &user, nil
}

// ByEmail returns the user with the given email, or nil if none exists.
func (s *UserStore) ByEmail(email string) (*models.User, error) {
	var user models.User

	err := s.db.Where("email = ?", email).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Create hashes the raw password and inserts a new user. The unique
// index on email stays authoritative: a race past the pre-check still
// surfaces as ErrDuplicateEmail.
func (s *UserStore) Create(email, fullName, password string) (*models.User, error) {
	email = NormalizeEmail(email)

	existing, err := s.ByEmail(email)

	if err != nil {
		return nil, err
	}

	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	passwordHash, err := auth.HashPassword(password)

	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		IsActive:     true,
	}

	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return &user, nil
}

// Delete removes a user and everything they own. The cascade is an
// explicit step so it holds even on databases migrated without the FK
// constraint. Administrative path only; not routed.
func (s *UserStore) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ?", id).Delete(&models.Todo{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}
