package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"switchyard.app/platform/common/id"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/search"
	"switchyard.app/platform/internal/store"
)

// adminScanLimit caps how many organizations a text search ranks in memory.
const adminScanLimit = 2000

const (
	AuditOrganizationSuspended   = "organization.suspended"
	AuditOrganizationReactivated = "organization.reactivated"
	AuditBillingCycleRun         = "billing.cycle_run"
	AuditPlatformAdminGranted    = "user.platform_admin_granted"
	AuditPlatformAdminRevoked    = "user.platform_admin_revoked"
)

type OrganizationQuery struct {
	Query  string
	Status *model.OrganizationStatus
	Limit  int
	Offset int
}

type AdminService interface {
	ListOrganizations(ctx context.Context, q OrganizationQuery) (search.Page[model.Organization], error)
	Suspend(ctx context.Context, actorID *int64, orgID int64, reason string) (*model.Organization, error)
	Reactivate(ctx context.Context, actorID *int64, orgID int64) (*model.Organization, error)
	Stats(ctx context.Context) (*model.PlatformStats, error)
	RunBillingCycle(ctx context.Context, actorID *int64) (*CycleSummary, error)
	SetPlatformAdmin(ctx context.Context, actorID *int64, email string, admin bool) (*model.User, error)
	AuditLogs(ctx context.Context, orgID *int64, limit, offset int) ([]model.AuditLog, error)
}

type adminService struct {
	orgs          store.OrganizationStore
	users         store.UserStore
	contacts      store.ContactStore
	calls         store.CallRecordStore
	subscriptions store.SubscriptionStore
	auditLogs     store.AuditLogStore
	txRunner      TxRunner
	billing       BillingService
	userService   UserService
}

func NewAdminService(
	orgs store.OrganizationStore,
	users store.UserStore,
	contacts store.ContactStore,
	calls store.CallRecordStore,
	subscriptions store.SubscriptionStore,
	auditLogs store.AuditLogStore,
	txRunner TxRunner,
	billing BillingService,
	userService UserService,
) AdminService {
	return &adminService{
		orgs:          orgs,
		users:         users,
		contacts:      contacts,
		calls:         calls,
		subscriptions: subscriptions,
		auditLogs:     auditLogs,
		txRunner:      txRunner,
		billing:       billing,
		userService:   userService,
	}
}

func (s *adminService) ListOrganizations(ctx context.Context, q OrganizationQuery) (search.Page[model.Organization], error) {
	limit := search.ClampLimit(q.Limit)
	offset := max(q.Offset, 0)
	query := strings.TrimSpace(q.Query)

	if query == "" {
		orgs, err := s.orgs.List(ctx, q.Status, int32(limit)+1, int32(offset))
		if err != nil {
			return search.Page[model.Organization]{}, fmt.Errorf("listing organizations: %w", err)
		}
		hasMore := len(orgs) > limit
		if hasMore {
			orgs = orgs[:limit]
		}
		return search.Page[model.Organization]{
			Items:   orgs,
			Total:   offset + len(orgs),
			Limit:   limit,
			Offset:  offset,
			HasMore: hasMore,
		}, nil
	}

	var all []model.Organization
	for len(all) < adminScanLimit {
		batch, err := s.orgs.List(ctx, q.Status, search.MaxLimit, int32(len(all)))
		if err != nil {
			return search.Page[model.Organization]{}, fmt.Errorf("listing organizations: %w", err)
		}
		all = append(all, batch...)
		if len(batch) < search.MaxLimit {
			break
		}
	}

	matches := search.Filter(all, func(o model.Organization) bool {
		return search.MatchScore(query, organizationSearchFields(o)...) > 0
	})
	ranked := search.Rank(matches, query, organizationSearchFields)
	return search.Paginate(ranked, limit, offset), nil
}

func organizationSearchFields(o model.Organization) []string {
	return []string{o.Name, o.Slug, strconv.FormatInt(o.ID, 10)}
}

func (s *adminService) Suspend(ctx context.Context, actorID *int64, orgID int64, reason string) (*model.Organization, error) {
	return s.setOrgStatus(ctx, actorID, orgID, model.OrganizationStatusSuspended, AuditOrganizationSuspended, map[string]any{"reason": reason})
}

func (s *adminService) Reactivate(ctx context.Context, actorID *int64, orgID int64) (*model.Organization, error) {
	return s.setOrgStatus(ctx, actorID, orgID, model.OrganizationStatusActive, AuditOrganizationReactivated, nil)
}

func (s *adminService) setOrgStatus(ctx context.Context, actorID *int64, orgID int64, status model.OrganizationStatus, action string, meta map[string]any) (*model.Organization, error) {
	var updated *model.Organization
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		org, err := sp.Organizations().GetByID(ctx, orgID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrOrganizationNotFound
			}
			return fmt.Errorf("getting organization: %w", err)
		}
		if org.Status == status {
			updated = org
			return nil
		}
		updated, err = sp.Organizations().SetStatus(ctx, orgID, status)
		if err != nil {
			return fmt.Errorf("updating organization status: %w", err)
		}
		return writeAudit(ctx, sp.AuditLogs(), &orgID, actorID, action, "organization", strconv.FormatInt(orgID, 10), meta)
	})
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "organization status changed", "organization_id", orgID, "status", status)
	return updated, nil
}

func (s *adminService) Stats(ctx context.Context) (*model.PlatformStats, error) {
	var stats model.PlatformStats
	var err error
	if stats.Organizations, err = s.orgs.Count(ctx); err != nil {
		return nil, fmt.Errorf("counting organizations: %w", err)
	}
	if stats.Users, err = s.users.Count(ctx); err != nil {
		return nil, fmt.Errorf("counting users: %w", err)
	}
	if stats.Contacts, err = s.contacts.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("counting contacts: %w", err)
	}
	if stats.Calls, err = s.calls.Count(ctx); err != nil {
		return nil, fmt.Errorf("counting calls: %w", err)
	}
	if stats.MinutesUsed, err = s.subscriptions.SumMinutesUsed(ctx); err != nil {
		return nil, fmt.Errorf("summing minutes: %w", err)
	}
	return &stats, nil
}

func (s *adminService) RunBillingCycle(ctx context.Context, actorID *int64) (*CycleSummary, error) {
	summary, err := s.billing.RunCycle(ctx)
	if err != nil {
		return summary, err
	}
	meta := map[string]any{
		"processed": summary.Processed,
		"invoices":  summary.Invoices,
		"failed":    summary.Failed,
	}
	if err := writeAudit(ctx, s.auditLogs, nil, actorID, AuditBillingCycleRun, "billing", "cycle", meta); err != nil {
		slog.WarnContext(ctx, "failed to write audit log", "error", err)
	}
	return summary, nil
}

func (s *adminService) SetPlatformAdmin(ctx context.Context, actorID *int64, email string, admin bool) (*model.User, error) {
	user, err := s.userService.SetPlatformAdmin(ctx, email, admin)
	if err != nil {
		return nil, err
	}
	action := AuditPlatformAdminGranted
	if !admin {
		action = AuditPlatformAdminRevoked
	}
	if err := writeAudit(ctx, s.auditLogs, nil, actorID, action, "user", strconv.FormatInt(user.ID, 10), map[string]any{"email": user.Email}); err != nil {
		slog.WarnContext(ctx, "failed to write audit log", "error", err)
	}
	return user, nil
}

func (s *adminService) AuditLogs(ctx context.Context, orgID *int64, limit, offset int) ([]model.AuditLog, error) {
	l, o := pageBounds(limit, offset)
	logs, err := s.auditLogs.List(ctx, orgID, l, o)
	if err != nil {
		return nil, fmt.Errorf("listing audit logs: %w", err)
	}
	return logs, nil
}

func writeAudit(ctx context.Context, logs store.AuditLogStore, orgID, actorID *int64, action, targetType, targetID string, meta map[string]any) error {
	entry := &model.AuditLog{
		ID:             id.New(),
		OrganizationID: orgID,
		ActorUserID:    actorID,
		Action:         action,
		TargetType:     targetType,
		TargetID:       targetID,
	}
	if meta != nil {
		raw, err := json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("encoding audit metadata: %w", err)
		}
		entry.Metadata = raw
	}
	if err := logs.Create(ctx, entry); err != nil {
		return fmt.Errorf("writing audit log: %w", err)
	}
	return nil
}
