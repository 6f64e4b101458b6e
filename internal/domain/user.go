package domain

import "time"

type User struct {
	ID           string `gorm:"primaryKey"`
	FirstName    string
	LastName     string
	Email        string `gorm:"uniqueIndex"`
	Phone        string
	SocialHandle *string
	Profession   *int
	Age          *int
	Gender       *bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
