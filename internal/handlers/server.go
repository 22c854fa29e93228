package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/team-work-tracker/internal/dto"
	apierrors "github.com/yukikurage/team-work-tracker/internal/errors"
	"github.com/yukikurage/team-work-tracker/internal/middleware"
	"github.com/yukikurage/team-work-tracker/internal/services"
)

type ServerHandler struct {
	serverService *services.TeamServerService
	userService   *services.UserManagementService
}

func NewServerHandler(serverService *services.TeamServerService, userService *services.UserManagementService) *ServerHandler {
	return &ServerHandler{
		serverService: serverService,
		userService:   userService,
	}
}

// ListServers returns the team server catalogue
func (h *ServerHandler) ListServers(c *gin.Context) {
	servers, err := h.serverService.ListServers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	dtos := make([]dto.TeamServerDTO, len(servers))
	for i, server := range servers {
		dtos[i] = dto.ToTeamServerDTO(server)
	}
	c.JSON(http.StatusOK, dtos)
}

// ListMyServers returns the team servers linked to the current user
func (h *ServerHandler) ListMyServers(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	servers, err := h.userService.GetUserServerList(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserServerDTOs(servers))
}

// RegisterMyServer links the current user to a team server account
func (h *ServerHandler) RegisterMyServer(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.RegisterServerDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	id, err := h.userService.RegisterServer(c.Request.Context(), services.RegisterServerInput{
		ServerID:       req.ServerID,
		UserID:         userID,
		ServerUserID:   req.ServerUserID,
		ServerPassword: req.ServerPassword,
		ServerDomain:   req.ServerDomain,
	})
	if err != nil {
		respondServerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.IDResponse{ID: id})
}
