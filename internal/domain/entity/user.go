package entity

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	SwapRewardPoints = 10
	MaxBioLength     = 500
)

type User struct {
	ID                  string    `json:"id" firestore:"id" gorm:"primaryKey;size:64"`
	Name                string    `json:"name" firestore:"name"`
	Address             string    `json:"address" firestore:"address"`
	Email               string    `json:"email" firestore:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash        string    `json:"-" firestore:"passwordHash"`
	Role                string    `json:"role" firestore:"role" gorm:"size:16;default:user"`
	Bio                 string    `json:"bio" firestore:"bio"`
	Points              int64     `json:"points" firestore:"points"`
	SuccessfulSwaps     int64     `json:"successfulSwaps" firestore:"successfulSwaps"`
	TotalSoldItems      int64     `json:"totalSoldItems" firestore:"totalSoldItems"`
	TotalPurchasedItems int64     `json:"totalPurchasedItems" firestore:"totalPurchasedItems"`
	Earnings            float64   `json:"earnings" firestore:"earnings"`
	Spent               float64   `json:"spent" firestore:"spent"`
	LikedItems          []string  `json:"likedItems" firestore:"likedItems" gorm:"serializer:json"`
	CreatedAt           time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt" firestore:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) Likes(productID string) bool {
	for _, id := range u.LikedItems {
		if id == productID {
			return true
		}
	}
	return false
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// UserSummary is the public projection joined onto products and swap requests.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProfileUpdate carries optional profile fields; nil leaves a field unchanged.
type ProfileUpdate struct {
	Name    *string
	Address *string
	Bio     *string
}
