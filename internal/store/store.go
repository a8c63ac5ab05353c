package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"machinery-gateway/internal/model"
)

// Sentinel errors returned by the store. Handlers map these to status codes.
var (
	ErrNotFound     = errors.New("record not found")
	ErrConflict     = errors.New("unique value already in use")
	ErrUnauthorized = errors.New("invalid credentials")
)

// UserFilter narrows a user listing. Zero values mean "no filter".
type UserFilter struct {
	Role   string
	Search string
	Skip   int
	Limit  int
}

// MachineFilter narrows a machine listing.
type MachineFilter struct {
	Search string
	Skip   int
	Limit  int
}

// ReadingFilter narrows a reading listing. Nil bounds are open.
type ReadingFilter struct {
	MachineID *int64
	From      *time.Time
	To        *time.Time
	Skip      int
	Limit     int
}

// UserUpdate carries a partial user mutation. Nil means "leave untouched";
// a pointer to the zero value is applied like any other value.
type UserUpdate struct {
	Name     *string
	Code     *string
	Role     *string
	Password *string
}

// MachineUpdate carries a partial machine mutation.
type MachineUpdate struct {
	Name         *string
	Description  *string
	SerialNumber *string
	Engine       *string
}

// ReadingUpdate carries a partial reading mutation.
type ReadingUpdate struct {
	ReadingTimestamp *time.Time
	StartTimestamp   *time.Time
	Temperature      *float64
	Vibration        *float64
	Pressure         *float64
	EngineRPM        *int
}

// Store defines all database operations used by the gateway.
type Store interface {
	DB() *gorm.DB

	CreateUser(ctx context.Context, u *model.User, password *string) error
	ListUsers(ctx context.Context, f UserFilter) ([]model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	UpdateUser(ctx context.Context, id int64, up UserUpdate) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) error
	Authenticate(ctx context.Context, name, code string) (*model.User, error)

	CreateMachine(ctx context.Context, m *model.Machine) error
	ListMachines(ctx context.Context, f MachineFilter) ([]model.Machine, error)
	GetMachine(ctx context.Context, id int64) (*model.Machine, error)
	UpdateMachine(ctx context.Context, id int64, up MachineUpdate) (*model.Machine, error)
	DeleteMachine(ctx context.Context, id int64) error

	CreateReading(ctx context.Context, r *model.Reading) error
	ListReadings(ctx context.Context, f ReadingFilter) ([]model.Reading, error)
	GetReading(ctx context.Context, id int64) (*model.Reading, error)
	UpdateReading(ctx context.Context, id int64, up ReadingUpdate) (*model.Reading, error)
	DeleteReading(ctx context.Context, id int64) error
}

// gormStore implements the Store interface using GORM. Every method derives
// a request-scoped session from the caller's context, so the underlying
// connection is released on every exit path.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying handle for migrations and tests.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// translateErr maps GORM errors to store sentinels. Duplicated-key errors
// come from the storage engine's own unique constraint, which is the final
// authority behind the application-level pre-checks.
func translateErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return err
	}
}
