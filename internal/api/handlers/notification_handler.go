package handlers

import (
	"Expiry-Reminder/domain"
	"Expiry-Reminder/internal/api/presenters"
	"Expiry-Reminder/pkg/notification"

	"github.com/gofiber/fiber/v2"
)

type (
	NotificationHandler interface {
		RunSweep(c *fiber.Ctx) error
	}

	notificationHandler struct {
		notificationService notification.NotificationService
	}
)

func NewNotificationHandler(notificationService notification.NotificationService) NotificationHandler {
	return &notificationHandler{notificationService: notificationService}
}

func (h *notificationHandler) RunSweep(c *fiber.Ctx) error {
	report, err := h.notificationService.Sweep(c.UserContext())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedSweep, err)
	}

	return presenters.SuccessResponse(c, domain.SweepResponse{
		Sent:    report.Sent,
		Failed:  report.Failed,
		Skipped: report.Skipped,
	}, fiber.StatusOK, domain.MessageSuccessSweep)
}
