package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/go-social-api/internal/application"
	"github.com/oksasatya/go-social-api/internal/interface/middleware"
	"github.com/oksasatya/go-social-api/pkg/response"
)

type FollowHandler struct {
	Svc    *userapp.FollowService
	Logger *logrus.Logger
}

func NewFollowHandler(svc *userapp.FollowService, logger *logrus.Logger) *FollowHandler {
	return &FollowHandler{Svc: svc, Logger: logger}
}

// ToggleFollow flips the caller's follow edge on the target in the path and
// returns the target's updated follower list.
func (h *FollowHandler) ToggleFollow(c *gin.Context) {
	callerID := c.GetString(middleware.CtxUserIDKey)
	targetID := c.Param("id")

	followers, err := h.Svc.Toggle(c.Request.Context(), callerID, targetID)
	switch {
	case errors.Is(err, userapp.ErrSelfFollow):
		response.Error[any](c, http.StatusBadRequest, "cannot follow yourself", nil)
		return
	case errors.Is(err, userapp.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "no user found", nil)
		return
	case err != nil:
		if h.Logger != nil {
			h.Logger.WithError(err).WithFields(logrus.Fields{
				"caller_id": callerID,
				"target_id": targetID,
			}).Warn("follow toggle failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "follow toggle failed", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"followers": followers}, "follow toggled", nil)
}
