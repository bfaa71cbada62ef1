package domain

import "time"

type User struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	Username      string    `json:"username" gorm:"uniqueIndex"`
	Email         string    `json:"email" gorm:"uniqueIndex"`
	FullName      string    `json:"fullname"`
	Password      string    `json:"-"` // Never return password hash in JSON
	AvatarURL     string    `json:"avatar"`
	CoverImageURL string    `json:"coverImage,omitempty"`
	RefreshToken  string    `json:"-"` // single outstanding refresh token per user
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Public returns the projection safe to hand to clients. JSON tags already
// hide the secret fields; zeroing them keeps them out of logs and context too.
func (u *User) Public() *User {
	p := *u
	p.Password = ""
	p.RefreshToken = ""
	return &p
}
