package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	appshared "github.com/jewelry-erp/backend/internal/application/shared"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/inventory"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"github.com/jewelry-erp/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// TransferApprovedHook runs inside the approval transaction after the status
// change. Returning an error rolls the approval back.
type TransferApprovedHook func(ctx context.Context, repos appshared.Repositories, transfer *inventory.Transfer) error

// TransferService drives the Pending -> Approved | Rejected state machine
type TransferService struct {
	transferRepo    inventory.TransferRepository
	txScope         appshared.TransactionScope
	policy          *access.Policy
	logger          *zap.Logger
	onApproved      TransferApprovedHook
	businessMetrics *telemetry.BusinessMetrics
	now             func() time.Time
}

// NewTransferService creates a new TransferService. Approval changes state
// only until a hook is installed with SetApprovedHook.
func NewTransferService(
	transferRepo inventory.TransferRepository,
	txScope appshared.TransactionScope,
	policy *access.Policy,
	logger *zap.Logger,
) *TransferService {
	return &TransferService{
		transferRepo: transferRepo,
		txScope:      txScope,
		policy:       policy,
		logger:       logger,
		now:          time.Now,
	}
}

// SetApprovedHook installs the hook run on approval
func (s *TransferService) SetApprovedHook(hook TransferApprovedHook) {
	s.onApproved = hook
}

// SetBusinessMetrics sets the business metrics recorder
func (s *TransferService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// Create opens a pending transfer. The source warehouse must be visible to
// the caller; the destination may belong to any branch.
func (s *TransferService) Create(ctx context.Context, p shared.Principal, req CreateTransferRequest) (*TransferResponse, error) {
	scope, err := s.policy.Authorize(p, access.ResourceTransfer)
	if err != nil {
		return nil, err
	}
	transfer, err := inventory.NewTransfer(req.ItemName, req.FromWarehouseID, req.ToWarehouseID, req.Quantity, p.UserID, s.now())
	if err != nil {
		return nil, err
	}

	var created *inventory.Transfer
	err = s.txScope.Execute(ctx, func(repos appshared.Repositories) error {
		if _, err := repos.Warehouses().FindByID(ctx, scope, transfer.FromWarehouseID, false); err != nil {
			return err
		}
		if _, err := repos.Warehouses().FindByID(ctx, access.Unrestricted(), transfer.ToWarehouseID, false); err != nil {
			return err
		}
		if err := repos.Transfers().Create(ctx, transfer); err != nil {
			return err
		}
		var err error
		created, err = repos.Transfers().FindByID(ctx, scope, transfer.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Transfer requested",
		zap.String("transfer_id", created.ID.String()),
		zap.String("from_warehouse_id", created.FromWarehouseID.String()),
		zap.String("to_warehouse_id", created.ToWarehouseID.String()),
		zap.Int64("quantity", created.Quantity),
		zap.String("user_id", p.UserID.String()),
	)
	response := ToTransferResponse(created)
	return &response, nil
}

// Approve resolves a pending transfer as approved
func (s *TransferService) Approve(ctx context.Context, p shared.Principal, id uuid.UUID) (*TransferResponse, error) {
	return s.resolve(ctx, p, id, inventory.TransferApproved)
}

// Reject resolves a pending transfer as rejected
func (s *TransferService) Reject(ctx context.Context, p shared.Principal, id uuid.UUID) (*TransferResponse, error) {
	return s.resolve(ctx, p, id, inventory.TransferRejected)
}

// resolve relies on the status-guarded update of the repository: of two
// concurrent decisions exactly one sees a pending row.
func (s *TransferService) resolve(ctx context.Context, p shared.Principal, id uuid.UUID, status inventory.TransferStatus) (*TransferResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "transfer", "resolve",
		telemetry.WithAttribute(telemetry.SpanAttrTransferID, id.String()),
		telemetry.WithAttribute("transfer.decision", string(status)),
	)
	defer span.End()

	scope, err := s.policy.Authorize(p, access.ResourceTransfer)
	if err != nil {
		return nil, err
	}

	var transfer *inventory.Transfer
	err = s.txScope.Execute(ctx, func(repos appshared.Repositories) error {
		var err error
		transfer, err = repos.Transfers().Resolve(ctx, scope, id, status, p.UserID, s.now())
		if err != nil {
			return err
		}
		if status == inventory.TransferApproved && s.onApproved != nil {
			return s.onApproved(ctx, repos, transfer)
		}
		return nil
	})
	if err != nil {
		if shared.IsKind(err, shared.KindConflict) {
			s.logger.Info("Transfer already resolved", zap.String("transfer_id", id.String()), zap.String("requested", string(status)))
			telemetry.AddEvent(span, "transfer_already_resolved")
		} else {
			telemetry.RecordError(span, err)
		}
		return nil, err
	}

	if s.businessMetrics != nil {
		s.businessMetrics.RecordTransferDecision(ctx, string(status))
	}
	s.logger.Info("Transfer resolved",
		zap.String("transfer_id", transfer.ID.String()),
		zap.String("status", string(transfer.Status)),
		zap.String("user_id", p.UserID.String()),
	)
	response := ToTransferResponse(transfer)
	return &response, nil
}

// GetByID retrieves a transfer visible through either warehouse
func (s *TransferService) GetByID(ctx context.Context, p shared.Principal, id uuid.UUID) (*TransferResponse, error) {
	scope, err := s.policy.Authorize(p, access.ResourceTransfer)
	if err != nil {
		return nil, err
	}
	transfer, err := s.transferRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	response := ToTransferResponse(transfer)
	return &response, nil
}

// List retrieves visible transfers
func (s *TransferService) List(ctx context.Context, p shared.Principal, query appshared.ListQuery, filter TransferListFilter) ([]TransferResponse, int64, error) {
	scope, err := s.policy.Authorize(p, access.ResourceTransfer)
	if err != nil {
		return nil, 0, err
	}
	f := query.Filter()
	appshared.SetString(f, "status", filter.Status)
	appshared.SetUUID(f, "warehouse_id", filter.WarehouseID)

	transfers, total, err := s.transferRepo.FindAll(ctx, scope, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]TransferResponse, len(transfers))
	for i := range transfers {
		out[i] = ToTransferResponse(&transfers[i])
	}
	return out, total, nil
}
