package models

// User represents an account that can authenticate against the API.
// Password holds the bcrypt hash only; it has no json tag so it can never
// leak into a response body.
type User struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	FirstName string `json:"firstName" gorm:"type:varchar(60);not null"`
	LastName  string `json:"lastName" gorm:"type:varchar(60);not null"`
	Email     string `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password  string `gorm:"type:varchar(255)"`
	Roles     []Role `json:"roles" gorm:"many2many:user_roles"`
}
