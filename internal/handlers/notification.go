package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/umalmyha/fieldops/internal/bus"
	"github.com/umalmyha/fieldops/internal/model"
	"github.com/umalmyha/fieldops/internal/store"
)

type unreadCount struct {
	Unread int `json:"unread"`
}

// NotificationHTTPHandler is http handler for notification endpoint
type NotificationHTTPHandler struct {
	store *SyncStore
}

// NewNotificationHTTPHandler builds new NotificationHTTPHandler
func NewNotificationHTTPHandler(s *SyncStore) *NotificationHTTPHandler {
	return &NotificationHTTPHandler{store: s}
}

// GetAll gets all notifications
// @Summary     Get all notifications
// @Tags        notifications
// @Produce     json
// @Success     200    {array}  model.Notification
// @Router      /api/notifications [get]
func (h *NotificationHTTPHandler) GetAll(c echo.Context) error {
	var notifications []model.Notification
	var tag string
	_ = h.store.Do(func(s *store.Store) error {
		notifications = s.Notifications()
		tag = etag(s, "notifications", bus.Notifications)
		return nil
	})
	return snapshot(c, tag, notifications)
}

// UnreadCount gets number of unread notifications
// @Summary     Get unread notifications count
// @Tags        notifications
// @Produce     json
// @Success     200    {object} unreadCount
// @Router      /api/notifications/unread-count [get]
func (h *NotificationHTTPHandler) UnreadCount(c echo.Context) error {
	var unread int
	var tag string
	_ = h.store.Do(func(s *store.Store) error {
		unread = s.UnreadNotificationCount()
		tag = etag(s, "unread-count", store.UnreadCountDeps...)
		return nil
	})
	return snapshot(c, tag, &unreadCount{Unread: unread})
}

// Post raises new notification
// @Summary     New notification
// @Tags        notifications
// @Accept      json
// @Produce     json
// @Param       newNotification body     model.NewNotification true "Data for new notification"
// @Success     201             {object} model.Notification
// @Failure     400             {object} errors.ValidationErr
// @Router      /api/notifications [post]
func (h *NotificationHTTPHandler) Post(c echo.Context) error {
	var nn model.NewNotification
	if err := bindBody(c, &nn); err != nil {
		return err
	}

	var notification model.Notification
	err := h.store.Do(func(s *store.Store) (err error) {
		notification, err = s.AddNotification(nn)
		return err
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, notification)
}

// MarkRead marks notification as read
// @Summary     Mark notification read
// @Tags        notifications
// @Param       id     path     string true "Notification guid" Format(uuid)
// @Success     204    "Successful status code"
// @Failure     404    {object} errors.EntryNotFoundErr
// @Router      /api/notifications/{id}/read [post]
func (h *NotificationHTTPHandler) MarkRead(c echo.Context) error {
	id, err := validateID(c)
	if err != nil {
		return err
	}

	err = h.store.Do(func(s *store.Store) error {
		return s.MarkNotificationRead(id)
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkAllRead marks every notification as read
// @Summary     Mark all notifications read
// @Tags        notifications
// @Success     204    "Successful status code"
// @Router      /api/notifications/read-all [post]
func (h *NotificationHTTPHandler) MarkAllRead(c echo.Context) error {
	_ = h.store.Do(func(s *store.Store) error {
		s.MarkAllNotificationsRead()
		return nil
	})
	return c.NoContent(http.StatusNoContent)
}

// DeleteByID deletes notification
// @Summary     Delete notification by id
// @Tags        notifications
// @Param       id     path     string true "Notification guid" Format(uuid)
// @Success     204    "Successful status code"
// @Failure     404    {object} errors.EntryNotFoundErr
// @Router      /api/notifications/{id} [delete]
func (h *NotificationHTTPHandler) DeleteByID(c echo.Context) error {
	id, err := validateID(c)
	if err != nil {
		return err
	}

	err = h.store.Do(func(s *store.Store) error {
		return s.DeleteNotification(id)
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
