package domain

type AccessState string

const (
	AccessLocked   AccessState = "LOCKED"
	AccessPending  AccessState = "PENDING"
	AccessUnlocked AccessState = "UNLOCKED"
)

// Purchasable is content that can be gated behind a payment.
type Purchasable interface {
	IsFree() bool
}

// Evaluate computes the access state of item from the statuses of one user's
// payment rows for it. APPROVED dominates PENDING, which dominates REJECTED.
func Evaluate(item Purchasable, statuses []PaymentStatus) AccessState {
	if item.IsFree() {
		return AccessUnlocked
	}

	state := AccessLocked
	for _, s := range statuses {
		switch s {
		case StatusApproved:
			return AccessUnlocked
		case StatusPending:
			state = AccessPending
		}
	}

	return state
}

// EvaluateVideo ignores payments that belong to other videos.
func EvaluateVideo(v Video, payments []Payment) AccessState {
	statuses := make([]PaymentStatus, 0, len(payments))
	for _, p := range payments {
		if p.VideoID == v.ID {
			statuses = append(statuses, p.Status)
		}
	}

	return Evaluate(v, statuses)
}

// EvaluateKit ignores purchases that belong to other kits.
func EvaluateKit(k Kit, purchases []KitPurchase) AccessState {
	statuses := make([]PaymentStatus, 0, len(purchases))
	for _, p := range purchases {
		if p.KitID == k.ID {
			statuses = append(statuses, p.Status)
		}
	}

	return Evaluate(k, statuses)
}

// VideoAccess is EvaluateVideo widened by kit grants: an unlocked kit unlocks
// every video it contains. A pending kit leaves its videos unchanged.
func VideoAccess(v Video, payments []Payment, kits []Kit, purchases []KitPurchase) AccessState {
	state := EvaluateVideo(v, payments)
	if state == AccessUnlocked {
		return state
	}

	for _, k := range kits {
		if k.Contains(v.ID) && EvaluateKit(k, purchases) == AccessUnlocked {
			return AccessUnlocked
		}
	}

	return state
}
