package entity

import "time"

type Role int

const (
	RoleUser  Role = 0
	RoleAdmin Role = 1
)

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// User is a registered customer or admin. Password holds the bcrypt hash.
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Answer    string    `json:"-"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserProfile is the trimmed projection returned on login.
type UserProfile struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Role    Role   `json:"role"`
}

func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Address: u.Address,
		Role:    u.Role,
	}
}
