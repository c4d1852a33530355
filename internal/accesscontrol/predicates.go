package accesscontrol

import (
	"github.com/google/uuid"

	"github.com/littlelemonco/littlelemon-backend/pkg/db/models"
)

// CanViewOrder allows managers, the order's owner, and the assigned delivery
// crew member.
func CanViewOrder(roles RoleSet, actorID uuid.UUID, order *models.Order) bool {
	if order == nil {
		return false
	}
	if roles.IsManager() {
		return true
	}
	if order.UserID == actorID {
		return true
	}
	if roles.IsDeliveryCrew() && order.DeliveryCrewID != nil && *order.DeliveryCrewID == actorID {
		return true
	}
	return false
}

// CanUpdateOrder reports whether the actor may mutate the order and, when
// allowed, whether the mutation is restricted to the status field. Managers
// edit status and crew assignment on any order; delivery crew flip status only
// on orders assigned to them; customers never mutate orders.
func CanUpdateOrder(roles RoleSet, actorID uuid.UUID, order *models.Order) (allowed, statusOnly bool) {
	if order == nil {
		return false, false
	}
	if roles.IsManager() {
		return true, false
	}
	if roles.IsDeliveryCrew() && order.DeliveryCrewID != nil && *order.DeliveryCrewID == actorID {
		return true, true
	}
	return false, false
}

// CanDeleteOrder allows managers only.
func CanDeleteOrder(roles RoleSet) bool {
	return roles.IsManager()
}
