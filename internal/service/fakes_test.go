package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/mucyuneje/asamfxproduction/internal/domain"
	"github.com/mucyuneje/asamfxproduction/internal/events"
	"github.com/mucyuneje/asamfxproduction/internal/repository"
	"github.com/mucyuneje/asamfxproduction/internal/videohost"
)

var (
	student = domain.Actor{UserID: 7, Role: domain.RoleStudent}
	admin   = domain.Actor{UserID: 1, Role: domain.RoleAdmin}

	errBoom = errors.New("boom")
)

func price(p float64) *float64 { return &p }

func proof() *File {
	return &File{Name: "receipt.png", ContentType: "image/png", Content: []byte("png")}
}

type fakeUsers struct {
	byEmail   map[string]domain.User
	createErr error
	nextID    uint
}

var (
	_ AuthUserRepository = (*fakeUsers)(nil)
	_ UserRepository     = (*fakeUsers)(nil)
)

func (f *fakeUsers) Create(_ context.Context, u domain.User) (domain.User, error) {
	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	if f.byEmail == nil {
		f.byEmail = map[string]domain.User{}
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.User{}, repository.ErrUserEmailExists
	}
	f.nextID++
	u.ID = f.nextID
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) FindByID(_ context.Context, id uint) (domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, repository.ErrUserNotFound
}

type fakeVideos struct {
	byID      map[uint]domain.Video
	createErr error
	nextID    uint
}

var (
	_ VideoRepository  = (*fakeVideos)(nil)
	_ VideoFinder      = (*fakeVideos)(nil)
	_ VideoLister      = (*fakeVideos)(nil)
	_ VideoBatchFinder = (*fakeVideos)(nil)
)

func newFakeVideos(videos ...domain.Video) *fakeVideos {
	f := &fakeVideos{byID: map[uint]domain.Video{}}
	for _, v := range videos {
		f.byID[v.ID] = v
		if v.ID > f.nextID {
			f.nextID = v.ID
		}
	}
	return f
}

func (f *fakeVideos) Create(_ context.Context, v domain.Video) (domain.Video, error) {
	if f.createErr != nil {
		return domain.Video{}, f.createErr
	}
	f.nextID++
	v.ID = f.nextID
	f.byID[v.ID] = v
	return v, nil
}

func (f *fakeVideos) FindByID(_ context.Context, id uint) (domain.Video, error) {
	v, ok := f.byID[id]
	if !ok {
		return domain.Video{}, repository.ErrVideoNotFound
	}
	return v, nil
}

func (f *fakeVideos) FindAll(_ context.Context) ([]domain.Video, error) {
	out := make([]domain.Video, 0, len(f.byID))
	for _, v := range f.byID {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeVideos) FindByIDs(_ context.Context, ids []uint) ([]domain.Video, error) {
	var out []domain.Video
	for _, id := range ids {
		if v, ok := f.byID[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVideos) Update(_ context.Context, v domain.Video) (domain.Video, error) {
	old, ok := f.byID[v.ID]
	if !ok {
		return domain.Video{}, repository.ErrVideoNotFound
	}
	v.UploadID = old.UploadID
	v.PlaybackID = old.PlaybackID
	f.byID[v.ID] = v
	return v, nil
}

func (f *fakeVideos) SetPlaybackByUploadID(_ context.Context, uploadID, playbackID string) (int64, error) {
	var n int64
	for id, v := range f.byID {
		if v.UploadID == uploadID {
			pb := playbackID
			v.PlaybackID = &pb
			f.byID[id] = v
			n++
		}
	}
	return n, nil
}

func (f *fakeVideos) Delete(_ context.Context, id uint) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrVideoNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeKits struct {
	byID   map[uint]domain.Kit
	videos *fakeVideos
	nextID uint
}

var (
	_ KitRepository = (*fakeKits)(nil)
	_ KitFinder     = (*fakeKits)(nil)
	_ KitLister     = (*fakeKits)(nil)
)

func newFakeKits(videos *fakeVideos, kits ...domain.Kit) *fakeKits {
	f := &fakeKits{byID: map[uint]domain.Kit{}, videos: videos}
	for _, k := range kits {
		f.byID[k.ID] = k
		if k.ID > f.nextID {
			f.nextID = k.ID
		}
	}
	return f
}

func (f *fakeKits) Create(ctx context.Context, k domain.Kit, videoIDs []uint) (domain.Kit, error) {
	f.nextID++
	k.ID = f.nextID
	k.Videos, _ = f.videos.FindByIDs(ctx, videoIDs)
	f.byID[k.ID] = k
	return k, nil
}

func (f *fakeKits) FindByID(_ context.Context, id uint) (domain.Kit, error) {
	k, ok := f.byID[id]
	if !ok {
		return domain.Kit{}, repository.ErrKitNotFound
	}
	return k, nil
}

func (f *fakeKits) FindAll(_ context.Context) ([]domain.Kit, error) {
	out := make([]domain.Kit, 0, len(f.byID))
	for _, k := range f.byID {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeKits) Update(_ context.Context, id uint, u domain.KitUpdate) (domain.Kit, error) {
	k, ok := f.byID[id]
	if !ok {
		return domain.Kit{}, repository.ErrKitNotFound
	}
	if u.Name != nil {
		k.Name = *u.Name
	}
	if u.Price != nil {
		k.Price = *u.Price
	}
	f.byID[id] = k
	return k, nil
}

func (f *fakeKits) Delete(_ context.Context, id uint) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrKitNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeKits) AddVideos(ctx context.Context, kitID uint, videoIDs []uint) (domain.Kit, error) {
	k := f.byID[kitID]
	for _, id := range videoIDs {
		if k.Contains(id) {
			continue
		}
		v, err := f.videos.FindByID(ctx, id)
		if err != nil {
			return domain.Kit{}, err
		}
		k.Videos = append(k.Videos, v)
	}
	f.byID[kitID] = k
	return k, nil
}

func (f *fakeKits) RemoveVideo(_ context.Context, kitID, videoID uint) (bool, error) {
	k := f.byID[kitID]
	for i, v := range k.Videos {
		if v.ID == videoID {
			k.Videos = append(k.Videos[:i:i], k.Videos[i+1:]...)
			f.byID[kitID] = k
			return true, nil
		}
	}
	return false, nil
}

// fakePayments keeps append-only rows and decides them only while PENDING,
// like the conditional update of the real store.
type fakePayments struct {
	mu        sync.Mutex
	payments  []domain.Payment
	purchases []domain.KitPurchase
	createErr error
	findErr   error
}

var (
	_ PaymentRepository    = (*fakePayments)(nil)
	_ AccessReader         = (*fakePayments)(nil)
	_ CatalogPaymentReader = (*fakePayments)(nil)
	_ PendingCounter       = (*fakePayments)(nil)
)

func (f *fakePayments) CreatePayment(_ context.Context, userID, videoID uint, proofURL string) (domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return domain.Payment{}, f.createErr
	}
	p := domain.Payment{
		ID:        uint(len(f.payments) + 1),
		UserID:    userID,
		VideoID:   videoID,
		ProofURL:  proofURL,
		Status:    domain.StatusPending,
		CreatedAt: time.Now(),
	}
	f.payments = append(f.payments, p)
	return p, nil
}

func (f *fakePayments) FindPayments(_ context.Context, status domain.PaymentStatus) ([]domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Payment
	for _, p := range f.payments {
		if status == "" || p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePayments) FindPaymentsByUser(_ context.Context, userID uint) ([]domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []domain.Payment
	for _, p := range f.payments {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePayments) FindPaymentsByUserAndVideo(ctx context.Context, userID, videoID uint) ([]domain.Payment, error) {
	all, err := f.FindPaymentsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	var out []domain.Payment
	for _, p := range all {
		if p.VideoID == videoID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePayments) DecidePayment(_ context.Context, id uint, status domain.PaymentStatus) (domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.payments {
		if f.payments[i].ID == id {
			if err := f.payments[i].Decide(status); err != nil {
				return domain.Payment{}, err
			}
			return f.payments[i], nil
		}
	}
	return domain.Payment{}, repository.ErrPaymentNotFound
}

func (f *fakePayments) CreateKitPurchase(_ context.Context, userID, kitID uint, proofURL string) (domain.KitPurchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return domain.KitPurchase{}, f.createErr
	}
	p := domain.KitPurchase{
		ID:        uint(len(f.purchases) + 1),
		UserID:    userID,
		KitID:     kitID,
		ProofURL:  proofURL,
		Status:    domain.StatusPending,
		CreatedAt: time.Now(),
	}
	f.purchases = append(f.purchases, p)
	return p, nil
}

func (f *fakePayments) FindKitPurchases(_ context.Context, status domain.PaymentStatus) ([]domain.KitPurchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.KitPurchase
	for _, p := range f.purchases {
		if status == "" || p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePayments) FindKitPurchasesByUser(_ context.Context, userID uint) ([]domain.KitPurchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.KitPurchase
	for _, p := range f.purchases {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePayments) DecideKitPurchase(_ context.Context, id uint, status domain.PaymentStatus) (domain.KitPurchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.purchases {
		if f.purchases[i].ID == id {
			if err := f.purchases[i].Decide(status); err != nil {
				return domain.KitPurchase{}, err
			}
			return f.purchases[i], nil
		}
	}
	return domain.KitPurchase{}, repository.ErrKitPurchaseNotFound
}

func (f *fakePayments) CountPending(_ context.Context) (int64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var payments, purchases int64
	for _, p := range f.payments {
		if p.Status == domain.StatusPending {
			payments++
		}
	}
	for _, p := range f.purchases {
		if p.Status == domain.StatusPending {
			purchases++
		}
	}
	return payments, purchases, nil
}

type fakeStore struct {
	objects map[string][]byte
	putErr  error
	deleted []string
}

var _ FileStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (f *fakeStore) Put(_ context.Context, key, _ string, r io.Reader) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.objects[key] = data
	return "/uploads/" + key, nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

var _ EventPublisher = (*fakePublisher)(nil)

func (f *fakePublisher) Publish(_ context.Context, e events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return f.err
}

type fakeHost struct {
	upload        videohost.Upload
	asset         videohost.Asset
	getUploadErr  error
	createdPBID   string
	playbackCalls int
}

var _ VideoHost = (*fakeHost)(nil)

func (f *fakeHost) CreateUpload(context.Context) (videohost.Upload, error) {
	return f.upload, nil
}

func (f *fakeHost) GetUpload(_ context.Context, id string) (videohost.Upload, error) {
	if f.getUploadErr != nil {
		return videohost.Upload{}, f.getUploadErr
	}
	u := f.upload
	u.ID = id
	return u, nil
}

func (f *fakeHost) GetAsset(context.Context, string) (videohost.Asset, error) {
	return f.asset, nil
}

func (f *fakeHost) CreatePlaybackID(context.Context, string) (string, error) {
	f.playbackCalls++
	return f.createdPBID, nil
}

type fakeCounter struct {
	n   int64
	err error
}

func (f fakeCounter) Count(context.Context) (int64, error) { return f.n, f.err }
