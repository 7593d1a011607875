package videohost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mucyuneje/asamfxproduction/internal/config"
)

const policyPublic = "public"

// Mux is a client for the Mux Video REST API, authenticated with an access
// token id and secret.
type Mux struct {
	baseURL     string
	tokenID     string
	tokenSecret string
	corsOrigin  string
	http        *http.Client
}

func NewMux(conf *config.MuxConfig) *Mux {
	timeout := conf.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Mux{
		baseURL:     strings.TrimRight(conf.BaseURL, "/"),
		tokenID:     conf.TokenID,
		tokenSecret: conf.TokenSecret,
		corsOrigin:  conf.CORSOrigin,
		http:        &http.Client{Timeout: timeout},
	}
}

type muxEnvelope[T any] struct {
	Data T `json:"data"`
}

type muxError struct {
	Error struct {
		Type     string   `json:"type"`
		Messages []string `json:"messages"`
	} `json:"error"`
}

// StatusError is a non-2xx reply from Mux.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("mux: status %d: %s", e.Code, e.Message)
}

func (m *Mux) CreateUpload(ctx context.Context) (Upload, error) {
	body := map[string]any{
		"new_asset_settings": map[string]any{
			"playback_policy": []string{policyPublic},
		},
		"cors_origin": m.corsOrigin,
	}

	var out muxEnvelope[Upload]
	if err := m.do(ctx, http.MethodPost, "/video/v1/uploads", body, &out); err != nil {
		return Upload{}, fmt.Errorf("m.do -> %w", err)
	}

	return out.Data, nil
}

func (m *Mux) GetUpload(ctx context.Context, uploadID string) (Upload, error) {
	var out muxEnvelope[Upload]
	if err := m.do(ctx, http.MethodGet, "/video/v1/uploads/"+url.PathEscape(uploadID), nil, &out); err != nil {
		return Upload{}, fmt.Errorf("m.do -> %w", err)
	}

	return out.Data, nil
}

func (m *Mux) GetAsset(ctx context.Context, assetID string) (Asset, error) {
	var out muxEnvelope[Asset]
	if err := m.do(ctx, http.MethodGet, "/video/v1/assets/"+url.PathEscape(assetID), nil, &out); err != nil {
		return Asset{}, fmt.Errorf("m.do -> %w", err)
	}

	return out.Data, nil
}

func (m *Mux) CreatePlaybackID(ctx context.Context, assetID string) (string, error) {
	body := map[string]string{"policy": policyPublic}

	var out muxEnvelope[PlaybackID]
	path := "/video/v1/assets/" + url.PathEscape(assetID) + "/playback-ids"
	if err := m.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return "", fmt.Errorf("m.do -> %w", err)
	}

	return out.Data.ID, nil
}

func (m *Mux) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("json.Marshal -> %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, m.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}
	req.SetBasicAuth(m.tokenID, m.tokenSecret)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := m.http.Do(req)
	if err != nil {
		return fmt.Errorf("m.http.Do -> %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("io.ReadAll -> %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var me muxError
		msg := http.StatusText(resp.StatusCode)
		if json.Unmarshal(raw, &me) == nil && len(me.Error.Messages) > 0 {
			msg = strings.Join(me.Error.Messages, "; ")
		}
		return &StatusError{Code: resp.StatusCode, Message: msg}
	}

	if err = json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("json.Unmarshal -> %w", err)
	}

	return nil
}
