package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mucyuneje/asamfxproduction/internal/domain"
	"github.com/mucyuneje/asamfxproduction/internal/repository"
	"github.com/mucyuneje/asamfxproduction/internal/videohost"
)

var (
	ErrVideoNotFound  = repository.ErrVideoNotFound
	ErrVideoNotReady  = domain.ErrVideoNotReady
	ErrContentLocked  = domain.ErrContentLocked
	ErrUploadNotFound = errors.New("upload not found")
)

type VideoRepository interface {
	Create(ctx context.Context, video domain.Video) (domain.Video, error)
	FindByID(ctx context.Context, id uint) (domain.Video, error)
	FindAll(ctx context.Context) ([]domain.Video, error)
	Update(ctx context.Context, video domain.Video) (domain.Video, error)
	SetPlaybackByUploadID(ctx context.Context, uploadID, playbackID string) (int64, error)
	Delete(ctx context.Context, id uint) error
}

// AccessReader loads what is needed to evaluate one user's access to videos.
type AccessReader interface {
	FindPaymentsByUser(ctx context.Context, userID uint) ([]domain.Payment, error)
	FindPaymentsByUserAndVideo(ctx context.Context, userID, videoID uint) ([]domain.Payment, error)
	FindKitPurchasesByUser(ctx context.Context, userID uint) ([]domain.KitPurchase, error)
}

type KitLister interface {
	FindAll(ctx context.Context) ([]domain.Kit, error)
}

type VideoHost interface {
	CreateUpload(ctx context.Context) (videohost.Upload, error)
	GetUpload(ctx context.Context, uploadID string) (videohost.Upload, error)
	GetAsset(ctx context.Context, assetID string) (videohost.Asset, error)
	CreatePlaybackID(ctx context.Context, assetID string) (string, error)
}

// VideoView is a video together with the caller's access state.
type VideoView struct {
	domain.Video
	Access domain.AccessState `json:"access"`
}

type UploadStatus struct {
	UploadID   string `json:"upload_id"`
	Status     string `json:"status"`
	AssetID    string `json:"asset_id,omitempty"`
	PlaybackID string `json:"playback_id,omitempty"`
}

type VideoService struct {
	repo     VideoRepository
	payments AccessReader
	kits     KitLister
	host     VideoHost
}

func NewVideoService(repo VideoRepository, payments AccessReader, kits KitLister, host VideoHost) *VideoService {
	return &VideoService{
		repo:     repo,
		payments: payments,
		kits:     kits,
		host:     host,
	}
}

func normalizeVideo(v domain.Video) domain.Video {
	if v.PaymentMethod == domain.PaymentMethodFree {
		v.Price = nil
	}

	return v
}

func (s *VideoService) Create(ctx context.Context, actor domain.Actor, video domain.Video) (domain.Video, error) {
	if err := domain.Authorize(domain.OpManageVideos, actor.Role); err != nil {
		return domain.Video{}, err
	}
	video.PlaybackID = nil

	created, err := s.repo.Create(ctx, normalizeVideo(video))
	if err != nil {
		return domain.Video{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *VideoService) Update(ctx context.Context, actor domain.Actor, video domain.Video) (domain.Video, error) {
	if err := domain.Authorize(domain.OpManageVideos, actor.Role); err != nil {
		return domain.Video{}, err
	}

	updated, err := s.repo.Update(ctx, normalizeVideo(video))
	if err != nil {
		return domain.Video{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *VideoService) Delete(ctx context.Context, actor domain.Actor, id uint) error {
	if err := domain.Authorize(domain.OpManageVideos, actor.Role); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// List returns every video. Playback ids are kept only on videos the caller
// unlocked.
func (s *VideoService) List(ctx context.Context, actor domain.Actor) ([]domain.Video, error) {
	videos, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	gate, err := loadGate(ctx, actor, s.payments, s.kits)
	if err != nil {
		return nil, err
	}

	return gate.Videos(videos), nil
}

func (s *VideoService) Get(ctx context.Context, actor domain.Actor, id uint) (VideoView, error) {
	video, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return VideoView{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	access, err := s.access(ctx, actor, video)
	if err != nil {
		return VideoView{}, err
	}

	if access != domain.AccessUnlocked {
		video = video.Redacted()
	}

	return VideoView{Video: video, Access: access}, nil
}

// Playback returns the playback id of an unlocked, ready video.
func (s *VideoService) Playback(ctx context.Context, actor domain.Actor, id uint) (string, error) {
	view, err := s.Get(ctx, actor, id)
	if err != nil {
		return "", err
	}
	if view.Access != domain.AccessUnlocked {
		return "", ErrContentLocked
	}
	if !view.IsPlayable() {
		return "", ErrVideoNotReady
	}

	return *view.PlaybackID, nil
}

// loadGate reads the caller's history. Admins need none.
func loadGate(ctx context.Context, actor domain.Actor, payments CatalogPaymentReader, kits KitLister) (domain.Gate, error) {
	if actor.Role == domain.RoleAdmin {
		return domain.NewGate(actor.Role, nil, nil, nil), nil
	}

	history, err := payments.FindPaymentsByUser(ctx, actor.UserID)
	if err != nil {
		return domain.Gate{}, fmt.Errorf("payments.FindPaymentsByUser -> %w", err)
	}
	purchases, err := payments.FindKitPurchasesByUser(ctx, actor.UserID)
	if err != nil {
		return domain.Gate{}, fmt.Errorf("payments.FindKitPurchasesByUser -> %w", err)
	}
	all, err := kits.FindAll(ctx)
	if err != nil {
		return domain.Gate{}, fmt.Errorf("kits.FindAll -> %w", err)
	}

	return domain.NewGate(actor.Role, history, all, purchases), nil
}

// access evaluates the caller's state for video. Admins manage the catalog
// and can always watch it.
func (s *VideoService) access(ctx context.Context, actor domain.Actor, video domain.Video) (domain.AccessState, error) {
	if actor.Role == domain.RoleAdmin || video.IsFree() {
		return domain.AccessUnlocked, nil
	}

	payments, err := s.payments.FindPaymentsByUserAndVideo(ctx, actor.UserID, video.ID)
	if err != nil {
		return "", fmt.Errorf("s.payments.FindPaymentsByUserAndVideo -> %w", err)
	}
	if state := domain.EvaluateVideo(video, payments); state == domain.AccessUnlocked {
		return state, nil
	}

	kits, err := s.kits.FindAll(ctx)
	if err != nil {
		return "", fmt.Errorf("s.kits.FindAll -> %w", err)
	}
	purchases, err := s.payments.FindKitPurchasesByUser(ctx, actor.UserID)
	if err != nil {
		return "", fmt.Errorf("s.payments.FindKitPurchasesByUser -> %w", err)
	}

	return domain.VideoAccess(video, payments, kits, purchases), nil
}

func (s *VideoService) CreateUpload(ctx context.Context, actor domain.Actor) (videohost.Upload, error) {
	if err := domain.Authorize(domain.OpManageVideos, actor.Role); err != nil {
		return videohost.Upload{}, err
	}

	upload, err := s.host.CreateUpload(ctx)
	if err != nil {
		return videohost.Upload{}, fmt.Errorf("s.host.CreateUpload -> %w", err)
	}

	return upload, nil
}

// SyncUpload performs one polling step: once the host has built an asset for
// the upload, its playback id is stored on the matching video.
func (s *VideoService) SyncUpload(ctx context.Context, actor domain.Actor, uploadID string) (UploadStatus, error) {
	if err := domain.Authorize(domain.OpManageVideos, actor.Role); err != nil {
		return UploadStatus{}, err
	}

	upload, err := s.host.GetUpload(ctx, uploadID)
	if err != nil {
		if errors.Is(err, videohost.ErrNotFound) {
			return UploadStatus{}, ErrUploadNotFound
		}
		return UploadStatus{}, fmt.Errorf("s.host.GetUpload -> %w", err)
	}

	status := UploadStatus{
		UploadID: uploadID,
		Status:   upload.Status,
		AssetID:  upload.AssetID,
	}
	if upload.AssetID == "" {
		return status, nil
	}

	asset, err := s.host.GetAsset(ctx, upload.AssetID)
	if err != nil {
		return UploadStatus{}, fmt.Errorf("s.host.GetAsset -> %w", err)
	}

	if len(asset.PlaybackIDs) > 0 {
		status.PlaybackID = asset.PlaybackIDs[0].ID
	} else {
		status.PlaybackID, err = s.host.CreatePlaybackID(ctx, asset.ID)
		if err != nil {
			return UploadStatus{}, fmt.Errorf("s.host.CreatePlaybackID -> %w", err)
		}
	}

	n, err := s.repo.SetPlaybackByUploadID(ctx, uploadID, status.PlaybackID)
	if err != nil {
		return UploadStatus{}, fmt.Errorf("s.repo.SetPlaybackByUploadID -> %w", err)
	}
	if n == 0 {
		zap.L().Debug("no video registered for upload yet", zap.String("upload_id", uploadID))
	}

	return status, nil
}
