package repository

import authdomain "vidtube-backend/internal/auth/domain"

// UserRepository is the credential store boundary. Lookups return (nil, nil)
// when no record matches.
type UserRepository interface {
	Create(user *authdomain.User) error
	FindByID(id string) (*authdomain.User, error)
	FindByIdentifier(usernameOrEmail string) (*authdomain.User, error)
	FindByUsernameOrEmail(username, email string) (*authdomain.User, error)

	// UpdateRefreshToken is a partial, single-column write: no other field of
	// the user row is read or validated.
	UpdateRefreshToken(userID, refreshToken string) error
	ClearRefreshToken(userID string) error
}
