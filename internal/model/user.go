package model

// Role values accepted for a user. The column default matches RoleOperator.
const (
	RoleOperator      = "OPERADOR"
	RoleAdministrator = "ADMINISTRADOR"
)

// ValidRole reports whether r is one of the accepted role values.
func ValidRole(r string) bool {
	return r == RoleOperator || r == RoleAdministrator
}

// User represents an operator or administrator account.
// The code column doubles as the login credential.
type User struct {
	ID             int64   `gorm:"primaryKey" json:"id"`
	Name           string  `gorm:"size:100;not null" json:"name"`
	Code           string  `gorm:"uniqueIndex;size:100;not null" json:"code"`
	Role           string  `gorm:"size:20;not null;default:OPERADOR" json:"role"`
	HashedPassword *string `gorm:"column:hashed_password" json:"-"`
}

// TableName keeps the table name the rest of the system expects.
func (User) TableName() string { return "usuario" }
