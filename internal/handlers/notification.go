package handlers

import (
	"net/http"

	"cargolink/internal/models"
	"cargolink/internal/services"
	"cargolink/internal/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct{}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{}
}

type notificationView struct {
	models.Notification
	Elapsed string `json:"elapsed"`
}

type groupedView struct {
	Post    []notificationView `json:"post"`
	Transit []notificationView `json:"transit"`
}

// List returns the user's notifications grouped by subject kind, newest
// first within each group, with elapsed-time strings.
func (h *NotificationHandler) List(c *gin.Context) {
	user := CurrentUser(c)

	notifications, err := services.ListNotifications(user.ID, utils.StringToInt(c.Query("limit")))
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	grouped := services.GroupBySubjectKind(notifications)
	c.JSON(http.StatusOK, groupedView{
		Post:    toViews(grouped.Post),
		Transit: toViews(grouped.Transit),
	})
}

// Read marks the single opened notification as seen. It belongs to the
// session user or is a 404; other notifications on the same subject stay
// unread.
func (h *NotificationHandler) Read(c *gin.Context) {
	user := CurrentUser(c)

	if err := services.MarkSeen(utils.StringToUint(c.Param("id")), user.ID); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Feed is the polling endpoint the notification panel refreshes against:
// unseen count plus the latest notifications in one round trip.
func (h *NotificationHandler) Feed(c *gin.Context) {
	user := CurrentUser(c)

	count, err := services.UnseenCount(user.ID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	notifications, err := services.ListNotifications(user.ID, 20)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"unseen_count":  count,
		"notifications": toViews(notifications),
	})
}

func toViews(notifications []models.Notification) []notificationView {
	views := make([]notificationView, 0, len(notifications))
	for _, n := range notifications {
		views = append(views, notificationView{Notification: n, Elapsed: utils.TimeAgo(n.CreatedAt)})
	}
	return views
}
