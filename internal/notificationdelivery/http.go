// Package notificationdelivery manages delivery layer of notifications.
package notificationdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-dmitri/pocket-bank/internal/domain"
	"github.com/go-dmitri/pocket-bank/internal/middleware"
	"github.com/go-dmitri/pocket-bank/pkg/errorspkg"
	"github.com/go-dmitri/pocket-bank/pkg/tokenpkg"
	"github.com/go-dmitri/pocket-bank/pkg/web"
)

// Service provides service layer interface needed by notification delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package notificationdelivery
type Service interface {
	List(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id int64, userID string) (domain.Notification, error)
	MarkAllRead(ctx context.Context, userID string) error
}

// Handler facilitates notification delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns notification handler.
func NewHandler(ns Service) *Handler {
	return &Handler{service: ns}
}

type listRequest struct {
	Unread bool `form:"unread"`
}

type dataNotifications struct {
	Notifications []domain.Notification `json:"notifications"`
}

type responseNotifications struct {
	Data dataNotifications `json:"data,omitempty"`
}

// List handles http request to list the caller's notifications.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	notifications, err := h.service.List(ctx, authPayload.Username, req.Unread)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, responseNotifications{Data: dataNotifications{notifications}})
}

type markReadRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type data struct {
	Notification domain.Notification `json:"notification"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

// MarkRead handles http request to mark one notification as read.
func (h *Handler) MarkRead(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req markReadRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	notification, err := h.service.MarkRead(ctx, req.ID, authPayload.Username)
	if err != nil {
		if err == domain.ErrNotificationNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{notification}})
}

// MarkAllRead handles http request to mark all of the caller's notifications as read.
func (h *Handler) MarkAllRead(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	if err := h.service.MarkAllRead(ctx, authPayload.Username); err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.Status(http.StatusNoContent)
}
