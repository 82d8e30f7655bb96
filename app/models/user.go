package models

// User is an administrator account. Password is compared verbatim and Token
// holds the single active session (nil until the first login).
type User struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Username string  `gorm:"size:255;uniqueIndex;not null" json:"username"`
	Password string  `gorm:"size:255;not null" json:"-"`
	Token    *string `gorm:"size:255;index" json:"-"`
}
