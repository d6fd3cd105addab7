package maturity

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/adashi/internal/domain"
	"github.com/google/uuid"
)

type Servicer interface {
	MaturedSchemes(ctx context.Context, limit uint) ([]domain.Scheme, error)
	CompleteMatured(ctx context.Context, schemeID uuid.UUID) (int64, error)
}
