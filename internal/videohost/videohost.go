// Package videohost talks to the service that ingests and streams lesson
// videos. Uploads go straight from the browser to the host; the API only
// creates upload slots and records playback ids.
package videohost

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("video host resource not found")

type Upload struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Status  string `json:"status"`
	AssetID string `json:"asset_id"`
}

type PlaybackID struct {
	ID     string `json:"id"`
	Policy string `json:"policy"`
}

type Asset struct {
	ID          string       `json:"id"`
	Status      string       `json:"status"`
	PlaybackIDs []PlaybackID `json:"playback_ids"`
}

type Host interface {
	CreateUpload(ctx context.Context) (Upload, error)
	GetUpload(ctx context.Context, uploadID string) (Upload, error)
	GetAsset(ctx context.Context, assetID string) (Asset, error)
	CreatePlaybackID(ctx context.Context, assetID string) (string, error)
}
