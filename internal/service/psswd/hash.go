package psswd

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHash bcrypt реализация service.PasswordHasher.
type PasswordHash struct {
	cost int
}

func New() PasswordHash {
	return PasswordHash{cost: bcrypt.DefaultCost}
}

// NewWithCost нужен тестам, где DefaultCost слишком медленный.
func NewWithCost(cost int) PasswordHash {
	return PasswordHash{cost: cost}
}

func (p PasswordHash) HashPassword(password string) (string, error) {
	cost := p.cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %s", err.Error())
	}
	return string(bytes), nil
}

func (p PasswordHash) ComparePassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
