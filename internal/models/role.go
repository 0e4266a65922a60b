package models

// Role is an authority granted to a user, e.g. "ROLE_ADMIN".
type Role struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Authority string `json:"authority" gorm:"type:varchar(60);uniqueIndex;not null"`
}
