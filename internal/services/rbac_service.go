package services

import (
	"context"

	"catalog/internal/common"
	"catalog/internal/models"
	"catalog/internal/observability/metrics"

	"go.uber.org/zap"
)

// DenyReason explains an authorization denial.
type DenyReason string

const (
	ReasonRoleMismatch      DenyReason = "role_mismatch"
	ReasonOwnershipMismatch DenyReason = "ownership_mismatch"
	ReasonTargetIsAdmin     DenyReason = "target_is_admin"
	ReasonUnknownAction     DenyReason = "unknown_action"
)

// AuthTarget carries the attributes of the entity an action applies to.
// A nil target asks for the role-only part of a rule.
type AuthTarget struct {
	SupplierID *int64
	IsAdmin    bool
}

type Decision struct {
	Allowed bool
	Reason  DenyReason
}

func allow() Decision                 { return Decision{Allowed: true} }
func deny(reason DenyReason) Decision { return Decision{Reason: reason} }

// Authorize is the authorization matrix. It is a pure function of its arguments.
func Authorize(actor models.Actor, action models.Action, target *AuthTarget) Decision {
	switch action {
	case models.ActionCategoryWrite, models.ActionReviewDelete, models.ActionPermissionToggle:
		if actor.IsAdmin() {
			return allow()
		}
		return deny(ReasonRoleMismatch)

	case models.ActionProductCreate:
		if actor.IsAdmin() || actor.IsSupplier() {
			return allow()
		}
		return deny(ReasonRoleMismatch)

	case models.ActionProductUpdate, models.ActionProductDelete:
		if actor.IsAdmin() {
			return allow()
		}
		if !actor.IsSupplier() {
			return deny(ReasonRoleMismatch)
		}
		if target == nil {
			return allow()
		}
		if target.SupplierID == nil || *target.SupplierID != actor.ID() {
			return deny(ReasonOwnershipMismatch)
		}
		return allow()

	case models.ActionReviewCreate:
		if actor.IsAdmin() || actor.IsCustomer() {
			return allow()
		}
		return deny(ReasonRoleMismatch)

	case models.ActionUserDeactivate:
		if !actor.IsAdmin() {
			return deny(ReasonRoleMismatch)
		}
		if target != nil && target.IsAdmin {
			return deny(ReasonTargetIsAdmin)
		}
		return allow()
	}
	return deny(ReasonUnknownAction)
}

type RBACService interface {
	// Check returns a Forbidden error carrying the deny reason, or nil when allowed.
	Check(ctx context.Context, actor models.Actor, action models.Action, target *AuthTarget) error
}

type rbacService struct {
	logger *zap.Logger
}

func NewRBACService(logger *zap.Logger) RBACService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &rbacService{logger: logger}
}

func (s *rbacService) Check(ctx context.Context, actor models.Actor, action models.Action, target *AuthTarget) error {
	decision := Authorize(actor, action, target)
	if decision.Allowed {
		return nil
	}

	s.logger.Info("authorization denied",
		zap.String("action", string(action)),
		zap.Int64("actor_id", actor.ID()),
		zap.Stringer("roles", actor.Roles()),
		zap.String("reason", string(decision.Reason)),
		zap.String("request_id", common.GetRequestIDFromContext(ctx)),
	)
	metrics.ObserveDenial(string(action), string(decision.Reason))
	return common.Forbidden(string(decision.Reason))
}
