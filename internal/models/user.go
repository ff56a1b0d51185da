// internal/models/user.go
package models

// UserType selects which side of the marketplace a user is on.
type UserType string

const (
	UserTypeInvestor UserType = "investor"
	UserTypeStartup  UserType = "startup"
)

func (t UserType) Valid() bool {
	return t == UserTypeInvestor || t == UserTypeStartup
}

// Opposite returns the population a user of this type is matched against.
func (t UserType) Opposite() UserType {
	if t == UserTypeInvestor {
		return UserTypeStartup
	}
	return UserTypeInvestor
}

type User struct {
	ID        string   `json:"id"`
	UserType  UserType `json:"user_type"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone,omitempty"`
	FirstName string   `json:"first_name,omitempty"`
	LastName  string   `json:"last_name,omitempty"`
}

func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}
