package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mucyuneje/asamfxproduction/internal/api/handler/v1/request"
	"github.com/mucyuneje/asamfxproduction/internal/api/handler/v1/response"
	"github.com/mucyuneje/asamfxproduction/internal/domain"
	"github.com/mucyuneje/asamfxproduction/internal/service"
)

type KitService interface {
	List(ctx context.Context, actor domain.Actor) ([]domain.Kit, error)
	Create(ctx context.Context, actor domain.Actor, kit domain.Kit, videoIDs []uint, thumbnail *service.File) (domain.Kit, error)
	Update(ctx context.Context, actor domain.Actor, id uint, update domain.KitUpdate) (domain.Kit, error)
	Delete(ctx context.Context, actor domain.Actor, id uint) error
	AddVideos(ctx context.Context, actor domain.Actor, kitID uint, videoIDs []uint) (domain.Kit, error)
	RemoveVideo(ctx context.Context, actor domain.Actor, kitID, videoID uint) (domain.Kit, error)
}

type KitHandler struct {
	svc         KitService
	maxUploadMB int64
}

func NewKitHandler(svc KitService, maxUploadMB int64) *KitHandler {
	return &KitHandler{
		svc:         svc,
		maxUploadMB: maxUploadMB,
	}
}

// HandleListKits godoc
// @Summary      List kits with their videos, newest first
// @Tags         kits
// @Produce      json
// @Success      200  {array}   domain.Kit
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /kits [get]
// @Security BearerAuth
func (h *KitHandler) HandleListKits(ctx *gin.Context) {
	actor, respErr := getActor(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	kits, err := h.svc.List(ctx.Request.Context(), actor)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListKits -> h.svc.List", err)
		return
	}

	ctx.JSON(http.StatusOK, nonNil(kits))
}

// HandleCreateKit godoc
// @Summary      Create a kit
// @Tags         kits
// @Accept       mpfd
// @Produce      json
// @Param        name       formData  string  true  "Kit name"
// @Param        price      formData  number  true  "Price, greater than zero"
// @Param        video_ids  formData  string  true  "JSON array of video ids"
// @Param        thumbnail  formData  file    true  "Thumbnail image"
// @Success      201        {object}  domain.Kit
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      413        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /kits [post]
// @Security BearerAuth
func (h *KitHandler) HandleCreateKit(ctx *gin.Context) {
	actor, respErr := getActor(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	limitBody(ctx, h.maxUploadMB)

	var req request.CreateKitRequest
	if respErr = bindForm(ctx, &req, h.maxUploadMB); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	thumbnail, respErr := readUpload(ctx, "thumbnail", h.maxUploadMB)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	kit, err := h.svc.Create(ctx.Request.Context(), actor, req.ToDomain(), req.IDs(), thumbnail)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateKit -> h.svc.Create", err)
		return
	}

	ctx.JSON(http.StatusCreated, kit)
}

// HandleUpdateKit godoc
// @Summary      Rename or reprice a kit
// @Tags         kits
// @Accept       json
// @Produce      json
// @Param        kitID    path      int                       true  "Kit ID"
// @Param        request  body      request.UpdateKitRequest  true  "request body"
// @Success      200      {object}  domain.Kit
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /kits/{kitID} [patch]
// @Security BearerAuth
func (h *KitHandler) HandleUpdateKit(ctx *gin.Context) {
	actor, respErr := getActor(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	id, respErr := paramID(ctx, "kitID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateKitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	kit, err := h.svc.Update(ctx.Request.Context(), actor, id, req.ToDomain())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateKit -> h.svc.Update", err)
		return
	}

	ctx.JSON(http.StatusOK, kit)
}

// HandleDeleteKit godoc
// @Summary      Delete a kit
// @Tags         kits
// @Param        kitID  path  int  true  "Kit ID"
// @Success      204
// @Failure      403    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /kits/{kitID} [delete]
// @Security BearerAuth
func (h *KitHandler) HandleDeleteKit(ctx *gin.Context) {
	actor, respErr := getActor(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	id, respErr := paramID(ctx, "kitID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), actor, id); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteKit -> h.svc.Delete", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleAddKitVideos godoc
// @Summary      Add videos to a kit
// @Description  Videos already in the kit are ignored.
// @Tags         kits
// @Accept       json
// @Produce      json
// @Param        kitID    path      int                       true  "Kit ID"
// @Param        request  body      request.KitVideosRequest  true  "request body"
// @Success      200      {object}  domain.Kit
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /kits/{kitID}/videos [post]
// @Security BearerAuth
func (h *KitHandler) HandleAddKitVideos(ctx *gin.Context) {
	actor, respErr := getActor(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	id, respErr := paramID(ctx, "kitID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.KitVideosRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	kit, err := h.svc.AddVideos(ctx.Request.Context(), actor, id, req.VideoIDs)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleAddKitVideos -> h.svc.AddVideos", err)
		return
	}

	ctx.JSON(http.StatusOK, kit)
}

// HandleRemoveKitVideo godoc
// @Summary      Remove a video from a kit
// @Tags         kits
// @Produce      json
// @Param        kitID    path      int  true  "Kit ID"
// @Param        videoID  path      int  true  "Video ID"
// @Success      200      {object}  domain.Kit
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /kits/{kitID}/videos/{videoID} [delete]
// @Security BearerAuth
func (h *KitHandler) HandleRemoveKitVideo(ctx *gin.Context) {
	actor, respErr := getActor(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	kitID, respErr := paramID(ctx, "kitID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	videoID, respErr := paramID(ctx, "videoID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	kit, err := h.svc.RemoveVideo(ctx.Request.Context(), actor, kitID, videoID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleRemoveKitVideo -> h.svc.RemoveVideo", err)
		return
	}

	ctx.JSON(http.StatusOK, kit)
}
