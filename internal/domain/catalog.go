package domain

import "sort"

const (
	summaryFreeVideos    = 4
	summaryTopCategories = 3
)

// Buckets partitions a catalog for one user. Every item lands in exactly one
// bucket; free items are kept apart from purchased ones.
type Buckets[T any] struct {
	Free        []T `json:"free"`
	Unpurchased []T `json:"unpurchased"`
	Pending     []T `json:"pending"`
	Purchased   []T `json:"purchased"`
}

func (b Buckets[T]) Len() int {
	return len(b.Free) + len(b.Unpurchased) + len(b.Pending) + len(b.Purchased)
}

func (b *Buckets[T]) add(item T, free bool, state AccessState) {
	switch {
	case free:
		b.Free = append(b.Free, item)
	case state == AccessUnlocked:
		b.Purchased = append(b.Purchased, item)
	case state == AccessPending:
		b.Pending = append(b.Pending, item)
	default:
		b.Unpurchased = append(b.Unpurchased, item)
	}
}

func newBuckets[T any]() Buckets[T] {
	return Buckets[T]{
		Free:        []T{},
		Unpurchased: []T{},
		Pending:     []T{},
		Purchased:   []T{},
	}
}

type Catalog struct {
	Videos Buckets[Video] `json:"videos"`
	Kits   Buckets[Kit]   `json:"kits"`
}

// PartitionVideos buckets videos using the user's payments and kit purchases.
// Input order is preserved within each bucket. Pending and unpurchased videos
// come back without their playback id.
func PartitionVideos(videos []Video, payments []Payment, kits []Kit, purchases []KitPurchase) Buckets[Video] {
	gate := NewGate(RoleStudent, payments, kits, purchases)

	b := newBuckets[Video]()
	for _, v := range videos {
		b.add(gate.Video(v), v.IsFree(), gate.Access(v))
	}

	return b
}

// PartitionKits buckets kits as they are given; gate their videos first.
func PartitionKits(kits []Kit, purchases []KitPurchase) Buckets[Kit] {
	b := newBuckets[Kit]()
	for _, k := range kits {
		b.add(k, k.IsFree(), EvaluateKit(k, purchases))
	}

	return b
}

func Partition(videos []Video, kits []Kit, payments []Payment, purchases []KitPurchase) Catalog {
	return Catalog{
		Videos: PartitionVideos(videos, payments, kits, purchases),
		Kits:   PartitionKits(NewGate(RoleStudent, payments, kits, purchases).Kits(kits), purchases),
	}
}

type Summary struct {
	PurchasedCount   int      `json:"purchased_count"`
	PendingCount     int      `json:"pending_count"`
	UnpurchasedCount int      `json:"unpurchased_count"`
	FreeVideos       []Video  `json:"free_videos"`
	TopCategories    []string `json:"top_categories"`
}

// Summarize builds the student dashboard from a partitioned video catalog.
func Summarize(videos Buckets[Video]) Summary {
	free := videos.Free
	if len(free) > summaryFreeVideos {
		free = free[:summaryFreeVideos]
	}

	counts := map[string]int{}
	for _, v := range videos.Purchased {
		counts[v.Category]++
	}
	categories := make([]string, 0, len(counts))
	for c := range counts {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		if counts[categories[i]] != counts[categories[j]] {
			return counts[categories[i]] > counts[categories[j]]
		}
		return categories[i] < categories[j]
	})
	if len(categories) > summaryTopCategories {
		categories = categories[:summaryTopCategories]
	}

	return Summary{
		PurchasedCount:   len(videos.Purchased),
		PendingCount:     len(videos.Pending),
		UnpurchasedCount: len(videos.Unpurchased),
		FreeVideos:       append([]Video{}, free...),
		TopCategories:    categories,
	}
}
