package domain

import "time"

type Kit struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Thumbnail string    `json:"thumbnail"`
	CreatedBy uint      `json:"created_by"`
	Videos    []Video   `json:"videos"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (k Kit) IsFree() bool {
	return k.Price <= 0
}

func (k Kit) Contains(videoID uint) bool {
	for _, v := range k.Videos {
		if v.ID == videoID {
			return true
		}
	}

	return false
}

// KitUpdate carries the optional fields of a kit metadata change.
type KitUpdate struct {
	Name  *string
	Price *float64
}
