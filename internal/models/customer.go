package models

// Customer represents a storefront account.
// Accounts start unverified and can only log in after the emailed
// verification link has been redeemed.
type Customer struct {
	BaseModel
	Name         string `gorm:"uniqueIndex" json:"name"`
	Email        string `gorm:"uniqueIndex" json:"email"`
	PasswordHash string `json:"-"`
	IsVerified   bool   `json:"is_verified"`
}
