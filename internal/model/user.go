// File: internal/model/user.go
package model

type User struct {
	ID           int     `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	Email        string  `db:"email" json:"email"`
	Quotes       *string `db:"quotes" json:"quotes"`
	PasswordHash string  `db:"password_hash" json:"-"`
}
