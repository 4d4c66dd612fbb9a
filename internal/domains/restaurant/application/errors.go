package application

import (
	"errors"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/domain"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/ports"
	apperrors "github.com/Apurer/go-gin-restaurant-api/internal/shared/errors"
)

// mapError translates domain and persistence errors into the restaurant error taxonomy.
// Errors that are already a Failure, and errors nothing here recognises, pass through.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.AsFailure(err); ok {
		return err
	}
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return apperrors.ErrEntityNotFound.Wrap(err)
	case errors.Is(err, ports.ErrForeignKeyViolation):
		return apperrors.ErrImproperEntryData.WithMessage("A referenced entry does not exist or is still in use").Wrap(err)
	case errors.Is(err, ports.ErrDuplicateKey):
		return apperrors.ErrImproperEntryData.WithMessage("The entry already exists").Wrap(err)
	case errors.Is(err, domain.ErrSizeRequired):
		return apperrors.ErrMissingFoodSize.Wrap(err)
	case errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrEmptyCategory),
		errors.Is(err, domain.ErrEmptyType),
		errors.Is(err, domain.ErrEmptyPhone),
		errors.Is(err, domain.ErrEmptyPaymentMethod),
		errors.Is(err, domain.ErrEmptyOrderType),
		errors.Is(err, domain.ErrNoOrderItems):
		return apperrors.ErrMissingEntryData.WithMessageFrom(err).Wrap(err)
	case errors.Is(err, domain.ErrNegativePrice),
		errors.Is(err, domain.ErrDuplicateAddon):
		return apperrors.ErrImproperEntryData.WithMessageFrom(err).Wrap(err)
	}
	return err
}

func notFound(entity string, id int64) error {
	return apperrors.ErrEntityNotFound.WithMessagef("%s %d not found", entity, id).WithData("id", id)
}

// isNotFound reports whether err is an EntityNotFound failure.
func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrEntityNotFound)
}

// softNotFound turns EntityNotFound into a false outcome.
func softNotFound(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case isNotFound(err):
		return false, nil
	default:
		return false, err
	}
}
