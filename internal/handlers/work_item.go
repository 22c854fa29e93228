package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/team-work-tracker/internal/dto"
	apierrors "github.com/yukikurage/team-work-tracker/internal/errors"
	"github.com/yukikurage/team-work-tracker/internal/services"
	"github.com/yukikurage/team-work-tracker/internal/utils"
)

type WorkItemHandler struct {
	workItemService *services.WorkItemService
}

func NewWorkItemHandler(workItemService *services.WorkItemService) *WorkItemHandler {
	return &WorkItemHandler{
		workItemService: workItemService,
	}
}

// ListWorkItems returns work items filtered by server_id, week_id and assigned_to
func (h *WorkItemHandler) ListWorkItems(c *gin.Context) {
	input := services.ListWorkItemsInput{
		AssignedTo: c.Query("assigned_to"),
		Pagination: utils.GetPaginationParams(c),
	}

	if raw := c.Query("server_id"); raw != "" {
		serverID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid server_id")
			return
		}
		input.ServerID = &serverID
	}

	if raw := c.Query("week_id"); raw != "" {
		weekID, err := strconv.Atoi(raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid week_id")
			return
		}
		input.WeekID = &weekID
	}

	items, total, err := h.workItemService.ListWorkItems(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkItemListResponse(items, input.Pagination, total))
}

// CreateWorkItem creates a new work item
func (h *WorkItemHandler) CreateWorkItem(c *gin.Context) {
	var req dto.CreateWorkItemDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	item, err := h.workItemService.CreateWorkItem(c.Request.Context(), dto.ToCreateWorkItemInput(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToWorkItemDTO(*item))
}

// GetWorkItem returns a single work item
func (h *WorkItemHandler) GetWorkItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid work item ID")
		return
	}

	item, err := h.workItemService.GetWorkItem(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkItemDTO(*item))
}
