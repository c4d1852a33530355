package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/littlelemonco/littlelemon-backend/internal/accesscontrol"
	"github.com/littlelemonco/littlelemon-backend/internal/cart"
	"github.com/littlelemonco/littlelemon-backend/pkg/db/models"
	"github.com/littlelemonco/littlelemon-backend/pkg/enums"
	pkgerrors "github.com/littlelemonco/littlelemon-backend/pkg/errors"
	"github.com/littlelemonco/littlelemon-backend/pkg/logger"
	"github.com/littlelemonco/littlelemon-backend/pkg/money"
	"github.com/littlelemonco/littlelemon-backend/pkg/pagination"
)

// Service owns the cart-to-order transition and role-scoped order access.
type Service interface {
	Checkout(ctx context.Context, userID uuid.UUID) (OrderDTO, error)
	List(ctx context.Context, actorID uuid.UUID, status *enums.OrderStatus, page pagination.Params) (ListResult, error)
	Get(ctx context.Context, actorID, orderID uuid.UUID) (OrderDTO, error)
	Update(ctx context.Context, actorID, orderID uuid.UUID, input UpdateInput) (OrderDTO, error)
	Delete(ctx context.Context, actorID, orderID uuid.UUID) error
}

type service struct {
	repo   Repository
	carts  cart.Repository
	access accesscontrol.Service
	tx     txRunner
	locks  LockProvider
	logg   *logger.Logger
}

func NewService(repo Repository, carts cart.Repository, access accesscontrol.Service, tx txRunner, locks LockProvider, logg *logger.Logger) Service {
	return &service{
		repo:   repo,
		carts:  carts,
		access: access,
		tx:     tx,
		locks:  locks,
		logg:   logg,
	}
}

// Checkout converts the user's cart into an order. The redis lock serializes
// checkouts per user; the transaction makes the read-create-delete sequence
// all-or-nothing. Double submits either wait out the lock and find an empty
// cart, or fail the acquire and get a Conflict.
func (s *service) Checkout(ctx context.Context, userID uuid.UUID) (OrderDTO, error) {
	lock, err := s.locks("checkout:" + userID.String())
	if err != nil {
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to build checkout lock")
	}
	acquired, err := lock.Acquire(ctx)
	if err != nil {
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to acquire checkout lock")
	}
	if !acquired {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeConflict, "checkout already in progress")
	}
	defer func() {
		if releaseErr := lock.Release(context.WithoutCancel(ctx)); releaseErr != nil && s.logg != nil {
			s.logg.Warn(ctx, "failed to release checkout lock")
		}
	}()

	var created *models.Order
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		lines, err := s.carts.WithTx(tx).LinesForUser(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load cart")
		}
		if len(lines) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(lines))
		for i := range lines {
			line := &lines[i]
			total = money.Sum(total, line.LinePrice)
			items = append(items, models.OrderItem{
				MenuItemID: line.MenuItemID,
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice,
				LinePrice:  line.LinePrice,
			})
		}

		order := &models.Order{
			UserID: userID,
			Status: enums.OrderStatusOutForDelivery,
			Date:   time.Now().UTC(),
			Total:  total,
			Items:  items,
		}
		if _, err := s.repo.WithTx(tx).Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to create order")
		}
		if _, err := s.carts.WithTx(tx).DeleteAllForUser(ctx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to empty cart")
		}
		created = order
		return nil
	})
	if err != nil {
		return OrderDTO{}, err
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"order_id": created.ID.String(),
			"total":    created.Total.String(),
		})
		s.logg.Info(logCtx, "order created")
	}
	return NewOrderDTO(created), nil
}

// List scopes the result set by role: managers see everything, delivery crew
// see their assignments, everyone else sees their own orders.
func (s *service) List(ctx context.Context, actorID uuid.UUID, status *enums.OrderStatus, page pagination.Params) (ListResult, error) {
	roles, err := s.access.RolesOf(ctx, actorID)
	if err != nil {
		return ListResult{}, err
	}

	filter := ListFilter{Status: status, Page: page}
	switch {
	case roles.IsManager():
		// Unscoped.
	case roles.IsDeliveryCrew():
		filter.CrewID = &actorID
	default:
		filter.UserID = &actorID
	}

	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return ListResult{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list orders")
	}
	dtos := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, NewOrderDTO(&orders[i]))
	}
	return ListResult{Items: dtos, Total: total}, nil
}

func (s *service) Get(ctx context.Context, actorID, orderID uuid.UUID) (OrderDTO, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return OrderDTO{}, err
	}
	roles, err := s.access.RolesOf(ctx, actorID)
	if err != nil {
		return OrderDTO{}, err
	}
	if !accesscontrol.CanViewOrder(roles, actorID, order) {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeForbidden, "not allowed to view this order")
	}
	return NewOrderDTO(order), nil
}

func (s *service) Update(ctx context.Context, actorID, orderID uuid.UUID, input UpdateInput) (OrderDTO, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return OrderDTO{}, err
	}
	roles, err := s.access.RolesOf(ctx, actorID)
	if err != nil {
		return OrderDTO{}, err
	}
	allowed, statusOnly := accesscontrol.CanUpdateOrder(roles, actorID, order)
	if !allowed {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeForbidden, "not allowed to update this order")
	}
	if statusOnly && input.DeliveryCrewID != nil {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeForbidden, "delivery crew may only update order status")
	}

	fields := map[string]any{}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
		}
		fields["status"] = *input.Status
	}
	if input.DeliveryCrewID != nil {
		crewRoles, err := s.access.RolesOf(ctx, *input.DeliveryCrewID)
		if err != nil {
			return OrderDTO{}, err
		}
		if !crewRoles.IsDeliveryCrew() {
			return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "assignee is not a delivery crew member")
		}
		fields["delivery_crew_id"] = *input.DeliveryCrewID
	}
	if len(fields) == 0 {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	if err := s.repo.UpdateFields(ctx, orderID, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to update order")
	}
	return s.Get(ctx, actorID, orderID)
}

func (s *service) Delete(ctx context.Context, actorID, orderID uuid.UUID) error {
	roles, err := s.access.RolesOf(ctx, actorID)
	if err != nil {
		return err
	}
	if !accesscontrol.CanDeleteOrder(roles) {
		return pkgerrors.New(pkgerrors.CodeForbidden, "not allowed to delete orders")
	}
	if err := s.repo.Delete(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to delete order")
	}
	return nil
}

func (s *service) load(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load order")
	}
	return order, nil
}
