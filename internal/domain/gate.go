package domain

// Redacted drops the playback id. A public playback id is enough to stream,
// so it only leaves the API for callers who unlocked the video.
func (v Video) Redacted() Video {
	v.PlaybackID = nil
	return v
}

// Gate decides which videos one caller may play. Admins play everything.
type Gate struct {
	admin     bool
	payments  []Payment
	kits      []Kit
	purchases []KitPurchase
}

func NewGate(role Role, payments []Payment, kits []Kit, purchases []KitPurchase) Gate {
	return Gate{
		admin:     role == RoleAdmin,
		payments:  payments,
		kits:      kits,
		purchases: purchases,
	}
}

func (g Gate) Access(v Video) AccessState {
	if g.admin {
		return AccessUnlocked
	}

	return VideoAccess(v, g.payments, g.kits, g.purchases)
}

func (g Gate) Video(v Video) Video {
	if g.Access(v) == AccessUnlocked {
		return v
	}

	return v.Redacted()
}

func (g Gate) Videos(videos []Video) []Video {
	if videos == nil {
		return nil
	}

	out := make([]Video, len(videos))
	for i, v := range videos {
		out[i] = g.Video(v)
	}

	return out
}

// Kit gates the kit's videos without touching the caller's slice.
func (g Gate) Kit(k Kit) Kit {
	k.Videos = g.Videos(k.Videos)
	return k
}

func (g Gate) Kits(kits []Kit) []Kit {
	if kits == nil {
		return nil
	}

	out := make([]Kit, len(kits))
	for i, k := range kits {
		out[i] = g.Kit(k)
	}

	return out
}
