package v1

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mucyuneje/asamfxproduction/internal/api/handler/v1/request"
	"github.com/mucyuneje/asamfxproduction/internal/api/handler/v1/response"
	"github.com/mucyuneje/asamfxproduction/internal/domain"
	"github.com/mucyuneje/asamfxproduction/internal/service"
	"github.com/mucyuneje/asamfxproduction/internal/videohost"
)

type VideoService interface {
	List(ctx context.Context, actor domain.Actor) ([]domain.Video, error)
	Get(ctx context.Context, actor domain.Actor, id uint) (service.VideoView, error)
	Playback(ctx context.Context, actor domain.Actor, id uint) (string, error)
	Create(ctx context.Context, actor domain.Actor, video domain.Video) (domain.Video, error)
	Update(ctx context.Context, actor domain.Actor, video domain.Video) (domain.Video, error)
	Delete(ctx context.Context, actor domain.Actor, id uint) error
	CreateUpload(ctx context.Context, actor domain.Actor) (videohost.Upload, error)
	SyncUpload(ctx context.Context, actor domain.Actor, uploadID string) (service.UploadStatus, error)
}

type VideoHandler struct {
	svc VideoService
}

func NewVideoHandler(svc VideoService) *VideoHandler {
	return &VideoHandler{
		svc: svc,
	}
}

// HandleListVideos godoc
// @Summary      List videos, newest first
// @Tags         videos
// @Produce      json
// @Success      200  {array}   domain.Video
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /videos [get]
// @Security BearerAuth
func (h *VideoHandler) HandleListVideos(ctx *gin.Context) {
	actor, respErr := getActor(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	videos, err := h.svc.List(ctx.Request.Context(), actor)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListVideos -> h.svc.List", err)
		return
	}

	ctx.JSON(http.StatusOK, nonNil(videos))
}

// HandleGetVideo godoc
// @Summary      Get a video with the caller's access state
// @Tags         videos
// @Produce      json
// @Param        videoID  path      int  true  "Video ID"
// @Success      200      {object}  service.VideoView
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /videos/{videoID} [get]
// @Security BearerAuth
func (h *VideoHandler) HandleGetVideo(ctx *gin.Context) {
	actor, respErr := getActor(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	id, respErr := paramID(ctx, "videoID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	view, err := h.svc.Get(ctx.Request.Context(), actor, id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetVideo -> h.svc.Get", err)
		return
	}

	ctx.JSON(http.StatusOK, view)
}

// HandlePlayback godoc
// @Summary      Get the playback id of an unlocked video
// @Tags         videos
// @Produce      json
// @Param        videoID  path      int  true  "Video ID"
// @Success      200      {object}  response.PlaybackResponse
// @Failure      403      {object}  response.Err  "locked or pending"
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err  "still processing"
// @Failure      500      {object}  response.Err
// @Router       /videos/{videoID}/playback [get]
// @Security BearerAuth
func (h *VideoHandler) HandlePlayback(ctx *gin.Context) {
	actor, respErr := getActor(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	id, respErr := paramID(ctx, "videoID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	playbackID, err := h.svc.Playback(ctx.Request.Context(), actor, id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandlePlayback -> h.svc.Playback", err)
		return
	}

	ctx.JSON(http.StatusOK, response.PlaybackResponse{
		VideoID:    id,
		PlaybackID: playbackID,
	})
}

// HandleCreateVideo godoc
// @Summary      Register an uploaded video
// @Tags         videos
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateVideoRequest  true  "request body"
// @Success      201      {object}  domain.Video
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /videos [post]
// @Security BearerAuth
func (h *VideoHandler) HandleCreateVideo(ctx *gin.Context) {
	actor, respErr := getActor(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateVideoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	video, err := h.svc.Create(ctx.Request.Context(), actor, req.ToDomain())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateVideo -> h.svc.Create", err)
		return
	}

	ctx.JSON(http.StatusCreated, video)
}

// HandleUpdateVideo godoc
// @Summary      Update video metadata
// @Tags         videos
// @Accept       json
// @Produce      json
// @Param        videoID  path      int                         true  "Video ID"
// @Param        request  body      request.UpdateVideoRequest  true  "request body"
// @Success      200      {object}  domain.Video
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /videos/{videoID} [patch]
// @Security BearerAuth
func (h *VideoHandler) HandleUpdateVideo(ctx *gin.Context) {
	actor, respErr := getActor(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	id, respErr := paramID(ctx, "videoID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateVideoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	video := req.ToDomain()
	video.ID = id
	updated, err := h.svc.Update(ctx.Request.Context(), actor, video)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateVideo -> h.svc.Update", err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteVideo godoc
// @Summary      Delete a video
// @Description  Payment history keeps referencing the deleted video.
// @Tags         videos
// @Param        videoID  path      int  true  "Video ID"
// @Success      204
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /videos/{videoID} [delete]
// @Security BearerAuth
func (h *VideoHandler) HandleDeleteVideo(ctx *gin.Context) {
	actor, respErr := getActor(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	id, respErr := paramID(ctx, "videoID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), actor, id); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteVideo -> h.svc.Delete", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleCreateUpload godoc
// @Summary      Create a direct upload slot on the video host
// @Tags         videos
// @Produce      json
// @Success      201  {object}  response.UploadResponse
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /videos/uploads [post]
// @Security BearerAuth
func (h *VideoHandler) HandleCreateUpload(ctx *gin.Context) {
	actor, respErr := getActor(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	upload, err := h.svc.CreateUpload(ctx.Request.Context(), actor)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateUpload -> h.svc.CreateUpload", err)
		return
	}

	status := upload.Status
	if status == "" {
		status = "waiting"
	}
	ctx.JSON(http.StatusCreated, response.UploadResponse{
		UploadURL: upload.URL,
		UploadID:  upload.ID,
		Status:    status,
	})
}

// HandleSyncUpload godoc
// @Summary      Poll an upload and store its playback id once ready
// @Tags         videos
// @Produce      json
// @Param        uploadID  path      string  true  "Upload ID"
// @Success      200       {object}  service.UploadStatus
// @Failure      403       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /videos/uploads/{uploadID} [get]
// @Security BearerAuth
func (h *VideoHandler) HandleSyncUpload(ctx *gin.Context) {
	actor, respErr := getActor(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	uploadID := strings.TrimSpace(ctx.Param("uploadID"))
	if uploadID == "" {
		response.RenderErr(ctx, response.ErrBadRequest(errInvalidUploadID))
		return
	}

	status, err := h.svc.SyncUpload(ctx.Request.Context(), actor, uploadID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleSyncUpload -> h.svc.SyncUpload", err)
		return
	}

	ctx.JSON(http.StatusOK, status)
}
