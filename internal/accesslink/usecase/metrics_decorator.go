package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	linkDomain "github.com/afrireads/bookgate/internal/accesslink/domain"
	"github.com/afrireads/bookgate/internal/metrics"
)

// accessLinkUseCaseWithMetrics decorates AccessLinkUseCase with metrics instrumentation.
type accessLinkUseCaseWithMetrics struct {
	next    AccessLinkUseCase
	metrics metrics.BusinessMetrics
}

// NewAccessLinkUseCaseWithMetrics wraps an AccessLinkUseCase with metrics recording.
func NewAccessLinkUseCaseWithMetrics(useCase AccessLinkUseCase, m metrics.BusinessMetrics) AccessLinkUseCase {
	return &accessLinkUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for link issuance operations.
func (a *accessLinkUseCaseWithMetrics) Create(
	ctx context.Context,
	input *linkDomain.CreateAccessLinkInput,
) (*linkDomain.CreateAccessLinkOutput, error) {
	start := time.Now()
	output, err := a.next.Create(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "accesslink", "create", status)
	a.metrics.RecordDuration(ctx, "accesslink", "create", time.Since(start), status)

	return output, err
}

// Validate records metrics for validation operations. The status reflects the
// verdict so invalid tokens are visible on dashboards without being errors.
func (a *accessLinkUseCaseWithMetrics) Validate(
	ctx context.Context,
	plainToken string,
) (*linkDomain.ValidationResult, error) {
	start := time.Now()
	result, err := a.next.Validate(ctx, plainToken)

	status := "success"
	switch {
	case err != nil:
		status = "error"
	case !result.IsValid:
		status = "invalid"
	}

	a.metrics.RecordOperation(ctx, "accesslink", "validate", status)
	a.metrics.RecordDuration(ctx, "accesslink", "validate", time.Since(start), status)

	return result, err
}

// Revoke records metrics for revocation operations.
func (a *accessLinkUseCaseWithMetrics) Revoke(ctx context.Context, plainToken string) error {
	start := time.Now()
	err := a.next.Revoke(ctx, plainToken)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "accesslink", "revoke", status)
	a.metrics.RecordDuration(ctx, "accesslink", "revoke", time.Since(start), status)

	return err
}

// GetActiveForReader records metrics for live grant lookups.
func (a *accessLinkUseCaseWithMetrics) GetActiveForReader(
	ctx context.Context,
	userID, bookID uuid.UUID,
) (*linkDomain.AccessLink, error) {
	start := time.Now()
	link, err := a.next.GetActiveForReader(ctx, userID, bookID)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "accesslink", "get_active", status)
	a.metrics.RecordDuration(ctx, "accesslink", "get_active", time.Since(start), status)

	return link, err
}

// ListForUser records metrics for list operations.
func (a *accessLinkUseCaseWithMetrics) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*linkDomain.AccessLink, error) {
	start := time.Now()
	links, err := a.next.ListForUser(ctx, userID, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "accesslink", "list", status)
	a.metrics.RecordDuration(ctx, "accesslink", "list", time.Since(start), status)

	return links, err
}

// CountExpired records metrics for dry-run sweep counts.
func (a *accessLinkUseCaseWithMetrics) CountExpired(ctx context.Context) (int64, error) {
	start := time.Now()
	count, err := a.next.CountExpired(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "accesslink", "count_expired", status)
	a.metrics.RecordDuration(ctx, "accesslink", "count_expired", time.Since(start), status)

	return count, err
}

// CleanupExpired records metrics for sweep operations.
func (a *accessLinkUseCaseWithMetrics) CleanupExpired(ctx context.Context) (int64, error) {
	start := time.Now()
	deleted, err := a.next.CleanupExpired(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "accesslink", "cleanup_expired", status)
	a.metrics.RecordDuration(ctx, "accesslink", "cleanup_expired", time.Since(start), status)

	return deleted, err
}
