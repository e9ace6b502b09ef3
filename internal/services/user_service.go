package services

import (
	"context"

	"catalog/internal/common"
	"catalog/internal/models"
	"catalog/internal/repositories"

	"go.uber.org/zap"
)

type UserService interface {
	GetActive(ctx context.Context, id int64) (*models.User, error)

	// TogglePermission swaps the target's commerce role between supplier and customer.
	// Exactly one of the two is set afterwards.
	TogglePermission(ctx context.Context, actor models.Actor, userID int64) (*models.User, error)
	Deactivate(ctx context.Context, actor models.Actor, userID int64) error
}

type userService struct {
	store  repositories.Store
	rbac   RBACService
	logger *zap.Logger
}

func NewUserService(store repositories.Store, rbac RBACService, logger *zap.Logger) UserService {
	return &userService{store: store, rbac: rbac, logger: logger}
}

func (s *userService) GetActive(ctx context.Context, id int64) (*models.User, error) {
	return activeUser(ctx, s.store, id)
}

func (s *userService) TogglePermission(ctx context.Context, actor models.Actor, userID int64) (*models.User, error) {
	if err := s.rbac.Check(ctx, actor, models.ActionPermissionToggle, nil); err != nil {
		return nil, err
	}

	var user *models.User
	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		var err error
		user, err = activeUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		if user.IsSupplier {
			user.IsSupplier, user.IsCustomer = false, true
		} else {
			user.IsSupplier, user.IsCustomer = true, false
		}
		return tx.Users().UpdateRoles(ctx, user.ID, user.IsSupplier, user.IsCustomer)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user commerce role toggled",
		zap.Int64("user_id", user.ID),
		zap.Stringer("roles", user.Roles()),
		zap.Int64("actor_id", actor.ID()),
	)
	return user, nil
}

func (s *userService) Deactivate(ctx context.Context, actor models.Actor, userID int64) error {
	if err := s.rbac.Check(ctx, actor, models.ActionUserDeactivate, nil); err != nil {
		return err
	}

	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		user, err := activeUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		if err := s.rbac.Check(ctx, actor, models.ActionUserDeactivate, &AuthTarget{IsAdmin: user.IsAdmin}); err != nil {
			return err
		}
		return tx.Users().SetActive(ctx, user.ID, false)
	})
	if err != nil {
		return err
	}

	s.logger.Info("user deactivated", zap.Int64("user_id", userID), zap.Int64("actor_id", actor.ID()))
	return nil
}

func activeUser(ctx context.Context, tx repositories.Store, id int64) (*models.User, error) {
	user, err := tx.Users().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, common.NotFound("user", id)
	}
	return user, nil
}
