package shared

import (
	"context"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Lifecycle runs delete, restore and hard delete of one resource through
// the access policy. Hard delete is reserved to administrators.
type Lifecycle struct {
	policy   *access.Policy
	resource access.Resource
	repo     access.Lifecycle
	logger   *zap.Logger
}

// NewLifecycle creates a lifecycle runner for resource
func NewLifecycle(policy *access.Policy, resource access.Resource, repo access.Lifecycle, logger *zap.Logger) Lifecycle {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Lifecycle{policy: policy, resource: resource, repo: repo, logger: logger}
}

// Delete soft-deletes the record. Deleting a deleted record is a no-op.
func (l Lifecycle) Delete(ctx context.Context, p shared.Principal, id uuid.UUID) error {
	scope, err := l.policy.Authorize(p, l.resource)
	if err != nil {
		return err
	}
	if err := l.repo.Delete(ctx, scope, id); err != nil {
		return err
	}
	l.logger.Info("Record deleted", l.fields(p, id)...)
	return nil
}

// Restore clears the deletion mark. Restoring an active record is a no-op.
func (l Lifecycle) Restore(ctx context.Context, p shared.Principal, id uuid.UUID) error {
	scope, err := l.policy.Authorize(p, l.resource)
	if err != nil {
		return err
	}
	if err := l.repo.Restore(ctx, scope, id); err != nil {
		return err
	}
	l.logger.Info("Record restored", l.fields(p, id)...)
	return nil
}

// HardDelete removes the record permanently
func (l Lifecycle) HardDelete(ctx context.Context, p shared.Principal, id uuid.UUID) error {
	if err := l.policy.RequireAdmin(p); err != nil {
		return err
	}
	scope, err := l.policy.Authorize(p, l.resource)
	if err != nil {
		return err
	}
	if err := l.repo.HardDelete(ctx, scope, id); err != nil {
		return err
	}
	l.logger.Warn("Record permanently deleted", l.fields(p, id)...)
	return nil
}

func (l Lifecycle) fields(p shared.Principal, id uuid.UUID) []zap.Field {
	return []zap.Field{
		zap.String("resource", string(l.resource)),
		zap.String("id", id.String()),
		zap.String("user_id", p.UserID.String()),
	}
}
