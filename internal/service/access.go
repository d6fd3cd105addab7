package service

import (
	"fmt"

	"github.com/fsdevblog/adashi/internal/domain"
	"github.com/google/uuid"
)

func requireAdmin(actor domain.Actor) error {
	if !actor.Authenticated() {
		return domain.ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: admin role required", domain.ErrForbidden)
	}
	return nil
}

// requireSelfOrAdmin участник видит только свои данные, админ - любые.
func requireSelfOrAdmin(actor domain.Actor, userID uuid.UUID) error {
	if !actor.Authenticated() {
		return domain.ErrUnauthenticated
	}
	if actor.IsAdmin() || actor.UserID == userID {
		return nil
	}
	return fmt.Errorf("%w: access to another member's ledger", domain.ErrForbidden)
}
