package response

type UploadResponse struct {
	UploadURL string `json:"upload_url"`
	UploadID  string `json:"upload_id"`
	Status    string `json:"status"`
}

type PlaybackResponse struct {
	VideoID    uint   `json:"video_id"`
	PlaybackID string `json:"playback_id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
