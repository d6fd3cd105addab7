package repoargs

import "github.com/fsdevblog/adashi/internal/domain"

type CreateUser struct {
	Email             string
	FullName          string
	PhoneNumber       string
	AltPhoneNumber    string
	HomeAddress       string
	Role              domain.RoleType
	EncryptedPassword string
}
