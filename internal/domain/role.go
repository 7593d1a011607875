package domain

type Operation string

const (
	OpSubmitPayment   Operation = "payment.submit"
	OpDecidePayment   Operation = "payment.decide"
	OpListAllPayments Operation = "payment.list_all"
	OpViewOwnPayments Operation = "payment.list_own"
	OpManageVideos    Operation = "video.manage"
	OpManageKits      Operation = "kit.manage"
	OpManageSettings  Operation = "settings.manage"
	OpViewSettings    Operation = "settings.view"
	OpViewCatalog     Operation = "catalog.view"
	OpViewStats       Operation = "stats.view"
)

var capabilities = map[Operation][]Role{
	OpSubmitPayment:   {RoleStudent},
	OpDecidePayment:   {RoleAdmin},
	OpListAllPayments: {RoleAdmin},
	OpViewOwnPayments: {RoleAdmin, RoleStudent},
	OpManageVideos:    {RoleAdmin},
	OpManageKits:      {RoleAdmin},
	OpManageSettings:  {RoleAdmin},
	OpViewSettings:    {RoleAdmin, RoleStudent},
	OpViewCatalog:     {RoleAdmin, RoleStudent},
	OpViewStats:       {RoleAdmin},
}

// Can reports whether role may perform op. Unknown operations and roles are denied.
func Can(op Operation, role Role) bool {
	for _, r := range capabilities[op] {
		if r == role {
			return true
		}
	}

	return false
}

func Authorize(op Operation, role Role) error {
	if !Can(op, role) {
		return ErrForbidden
	}

	return nil
}
