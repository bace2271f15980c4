package services

import (
	"fmt"
	"slices"

	"qual-store/internal/apperr"
	"qual-store/internal/models"
)

type transition struct {
	role   models.RoleName
	target models.OrderStatus
}

// DefaultStatusPermissions is the role -> settable statuses table used when
// configuration does not override it.
func DefaultStatusPermissions() map[models.RoleName][]models.OrderStatus {
	return map[models.RoleName][]models.OrderStatus{
		models.RoleUser:  {models.OrderStatusCheckout},
		models.RoleAdmin: {models.OrderStatusDelivered},
	}
}

// Required current statuses per (role, target). Transitions missing here fall
// back to the lifecycle predecessor of the target unless the role may override.
var defaultPreconditions = map[transition][]models.OrderStatus{
	{models.RoleUser, models.OrderStatusCheckout}: {models.OrderStatusActive},
}

// Roles that may force a permitted status from any current status.
var overrideRoles = map[models.RoleName]bool{
	models.RoleAdmin: true,
}

// StatusMachine decides whether a caller role may move an order to a status.
type StatusMachine struct {
	permissions   map[models.RoleName][]models.OrderStatus
	preconditions map[transition][]models.OrderStatus
}

// NewStatusMachine builds a machine over perms; nil or empty perms selects
// DefaultStatusPermissions.
func NewStatusMachine(perms map[models.RoleName][]models.OrderStatus) *StatusMachine {
	if len(perms) == 0 {
		perms = DefaultStatusPermissions()
	}
	return &StatusMachine{permissions: perms, preconditions: defaultPreconditions}
}

// Authorize parses name and checks it against the role's permitted set. Unknown
// names and forbidden names yield the same error.
func (m *StatusMachine) Authorize(role models.RoleName, name string) (models.OrderStatus, error) {
	target, ok := models.ParseOrderStatus(name)
	if !ok || !slices.Contains(m.permissions[role], target) {
		return "", fmt.Errorf("%w: %q", apperr.ErrInvalidOrderStatus, name)
	}
	return target, nil
}

// Precondition reports whether an order currently in current may move to target.
func (m *StatusMachine) Precondition(role models.RoleName, target, current models.OrderStatus) error {
	required, explicit := m.preconditions[transition{role, target}]
	if !explicit {
		if overrideRoles[role] {
			return nil
		}
		prev, ok := predecessor(target)
		if !ok {
			return fmt.Errorf("%w: %s has no predecessor", apperr.ErrUpdateOrderStatus, target)
		}
		required = []models.OrderStatus{prev}
	}
	if !slices.Contains(required, current) {
		return fmt.Errorf("%w: cannot move order from %s to %s", apperr.ErrUpdateOrderStatus, current, target)
	}
	return nil
}

// Apply validates the request against order's current status and, on success,
// sets the new status on order.
func (m *StatusMachine) Apply(order *models.Order, role models.RoleName, name string) error {
	target, err := m.Authorize(role, name)
	if err != nil {
		return err
	}
	if err := m.Precondition(role, target, order.Status); err != nil {
		return err
	}
	order.Status = target
	return nil
}

func predecessor(s models.OrderStatus) (models.OrderStatus, bool) {
	i := slices.Index(models.OrderStatuses, s)
	if i <= 0 {
		return "", false
	}
	return models.OrderStatuses[i-1], true
}
