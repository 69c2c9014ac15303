package service

import (
	"context"
	"fmt"

	"mediatracker/internal/microservices/http-api/repository"
)

// DeleteState is the outcome of a guarded delete.
type DeleteState string

const (
	AwaitingConfirmation DeleteState = "awaiting_confirmation"
	Executed             DeleteState = "executed"
)

// Dependent kinds, also used to name the count field in responses.
const (
	DependentMedia = "media"
	DependentLogs  = "logs"
)

// DeleteResult reports an executed delete and how many dependents went
// with it.
type DeleteResult struct {
	State          DeleteState
	DependentKind  string
	DependentCount int64
}

// ConfirmationRequiredError is returned instead of deleting when the target
// still has dependents and the caller did not confirm. Nothing is changed.
type ConfirmationRequiredError struct {
	Target         string
	DependentKind  string
	DependentCount int64
}

func (e *ConfirmationRequiredError) Error() string {
	return fmt.Sprintf("This %s has %d %s that will also be deleted. Please confirm deletion.",
		e.Target, e.DependentCount, dependentNoun(e.DependentKind, e.DependentCount))
}

func (e *ConfirmationRequiredError) Is(target error) bool {
	return target == ErrConfirmationRequired
}

// State is always AwaitingConfirmation; the caller has to resend the delete
// with confirmation.
func (e *ConfirmationRequiredError) State() DeleteState {
	return AwaitingConfirmation
}

func dependentNoun(kind string, n int64) string {
	if kind == DependentLogs && n == 1 {
		return "log"
	}
	return kind
}

// guardedDelete counts dependents and deletes only when there are none or
// the caller confirmed. Count and delete share one transaction.
type guardedDelete struct {
	target string
	kind   string
	count  func(ctx context.Context) (int64, error)
	remove func(ctx context.Context) error
}

func (g guardedDelete) run(ctx context.Context, tx repository.TxManager, confirm bool) (*DeleteResult, error) {
	var result *DeleteResult
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		n, err := g.count(ctx)
		if err != nil {
			return err
		}
		if n > 0 && !confirm {
			return &ConfirmationRequiredError{Target: g.target, DependentKind: g.kind, DependentCount: n}
		}
		if err := g.remove(ctx); err != nil {
			return err
		}
		result = &DeleteResult{State: Executed, DependentKind: g.kind, DependentCount: n}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
