package service

import "context"

// DeleteOutcome is the result of a guarded delete.
type DeleteOutcome string

const (
	Deleted     DeleteOutcome = "deleted"
	Deactivated DeleteOutcome = "deactivated"
	Cancelled   DeleteOutcome = "cancelled"
)

// DeleteFlow is the one delete policy shared by every record manager:
// records without dependents are removed after a single confirmation;
// records with dependents are deactivated by default, and hard-deleted with
// cascade only after a second explicit confirmation.
type DeleteFlow[ID any] struct {
	CountDependents func(ctx context.Context, id ID) (int64, error)
	Deactivate      func(ctx context.Context, id ID) error
	Delete          func(ctx context.Context, id ID) error
	DeleteCascade   func(ctx context.Context, id ID) error
}

// DeleteRequest carries the caller's confirmations. Confirmed covers the
// plain delete; CascadeConfirmed is the second step required before a
// cascade removes dependent rows as well.
type DeleteRequest struct {
	Confirmed        bool
	Deactivate       bool
	CascadeConfirmed bool
}

func (f DeleteFlow[ID]) Run(ctx context.Context, id ID, req DeleteRequest) (DeleteOutcome, error) {
	if !req.Confirmed {
		return Cancelled, nil
	}

	dependents := int64(0)
	if f.CountDependents != nil {
		n, err := f.CountDependents(ctx, id)
		if err != nil {
			return Cancelled, err
		}
		dependents = n
	}

	if dependents == 0 {
		if err := f.Delete(ctx, id); err != nil {
			return Cancelled, err
		}
		return Deleted, nil
	}

	if req.Deactivate || !req.CascadeConfirmed {
		if req.Deactivate {
			if err := f.Deactivate(ctx, id); err != nil {
				return Cancelled, err
			}
			return Deactivated, nil
		}
		// Dependents exist and the caller neither chose deactivation nor
		// confirmed the cascade.
		return Cancelled, nil
	}

	if err := f.DeleteCascade(ctx, id); err != nil {
		return Cancelled, err
	}
	return Deleted, nil
}
