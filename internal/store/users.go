package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"machinery-gateway/internal/model"
)

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CreateUser inserts a new user. A supplied password is hashed before
// storage; the plain form is never persisted.
func (s *gormStore) CreateUser(ctx context.Context, u *model.User, password *string) error {
	tx := s.db.WithContext(ctx)

	var count int64
	if err := tx.Model(&model.User{}).Where("code = ?", u.Code).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check code uniqueness: %w", err)
	}
	if count > 0 {
		return ErrConflict
	}

	if password != nil && *password != "" {
		hash, err := hashPassword(*password)
		if err != nil {
			return err
		}
		u.HashedPassword = &hash
	}

	if err := tx.Create(u).Error; err != nil {
		return translateErr(err)
	}
	return nil
}

// ListUsers returns users matching the filter, windowed by skip/limit.
// Order is whatever the storage engine returns, which is stable enough for
// offset pagination within a session.
func (s *gormStore) ListUsers(ctx context.Context, f UserFilter) ([]model.User, error) {
	q := s.db.WithContext(ctx).Model(&model.User{})

	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("lower(name) LIKE ? OR lower(code) LIKE ?", like, like)
	}

	var users []model.User
	if err := q.Offset(f.Skip).Limit(f.Limit).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUser returns the user with the given id or ErrNotFound.
func (s *gormStore) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &u, nil
}

// UpdateUser applies the non-nil fields of up to the stored row. Changing
// code to a value held by a different user fails with ErrConflict.
func (s *gormStore) UpdateUser(ctx context.Context, id int64, up UserUpdate) (*model.User, error) {
	tx := s.db.WithContext(ctx)

	var u model.User
	if err := tx.First(&u, id).Error; err != nil {
		return nil, translateErr(err)
	}

	updates := map[string]any{}
	if up.Name != nil {
		updates["name"] = *up.Name
	}
	if up.Code != nil && *up.Code != u.Code {
		var count int64
		if err := tx.Model(&model.User{}).
			Where("code = ? AND id <> ?", *up.Code, id).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check code uniqueness: %w", err)
		}
		if count > 0 {
			return nil, ErrConflict
		}
		updates["code"] = *up.Code
	}
	if up.Role != nil {
		updates["role"] = *up.Role
	}
	if up.Password != nil && *up.Password != "" {
		hash, err := hashPassword(*up.Password)
		if err != nil {
			return nil, err
		}
		updates["hashed_password"] = hash
	}

	if len(updates) > 0 {
		if err := tx.Model(&u).Updates(updates).Error; err != nil {
			return nil, translateErr(err)
		}
	}

	if err := tx.First(&u, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &u, nil
}

// DeleteUser removes the user with the given id or fails with ErrNotFound.
func (s *gormStore) DeleteUser(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.User{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Authenticate looks the user up by name and compares the submitted code to
// the stored one. Both an unknown name and a wrong code yield
// ErrUnauthorized, so the response never reveals whether the name exists.
// The comparison is against the plain code column, not the password hash.
func (s *gormStore) Authenticate(ctx context.Context, name, code string) (*model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&u).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrUnauthorized
	case err != nil:
		return nil, fmt.Errorf("failed to look up user %q: %w", name, err)
	case u.Code != code:
		return nil, ErrUnauthorized
	}
	return &u, nil
}
