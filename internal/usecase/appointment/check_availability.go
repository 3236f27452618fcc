package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barbershop-appointments/internal/domain/appointment"
)

// CheckAvailability is the advisory read behind the availability endpoint.
// Create and Update run the same query inside their own transaction.
type CheckAvailability struct {
	repo domain.Repository
}

func NewCheckAvailability(repo domain.Repository) *CheckAvailability {
	return &CheckAvailability{repo: repo}
}

func (uc *CheckAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (domain.AvailabilityResult, error) {

	slot, exclude, err := in.Validate()
	if err != nil {
		return domain.AvailabilityResult{}, err
	}

	conflict, err := uc.repo.FindSlotConflict(ctx, slot, exclude)
	if err != nil {
		return domain.AvailabilityResult{}, err
	}

	return domain.AvailabilityResult{
		Available: conflict == nil,
		Conflict:  conflict,
	}, nil
}
