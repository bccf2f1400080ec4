package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/shelfstats/shelfstats/internal/tasks"
)

// CatalogController handles catalog import and task status endpoints.
type CatalogController struct {
	taskClient  *tasks.Client
	catalogPath string
}

func NewCatalogController(taskClient *tasks.Client, catalogPath string) *CatalogController {
	return &CatalogController{
		taskClient:  taskClient,
		catalogPath: catalogPath,
	}
}

type importRequest struct {
	Path string `json:"path"`
}

// TriggerImport enqueues a background import of the catalog CSV.
// An explicit path in the request body overrides the configured one.
func (cc *CatalogController) TriggerImport(c *gin.Context) {
	if cc.taskClient == nil {
		respondInternalError(c, "Task queue is not enabled", nil)
		return
	}

	var req importRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "Invalid request body", err.Error())
			return
		}
	}

	path := req.Path
	if path == "" {
		path = cc.catalogPath
	}
	if path == "" {
		respondBadRequest(c, "No catalog file configured", "Set CATALOG_PATH or provide a 'path' in the request body")
		return
	}

	ids, err := cc.taskClient.Add(tasks.ImportCatalogTask{Path: path}).Save()
	if err != nil {
		respondInternalError(c, "Failed to enqueue import", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"task_id": ids[0],
		"message": "catalog import enqueued",
	})
}

// GetTaskStatus reports the state of a previously enqueued task.
func (cc *CatalogController) GetTaskStatus(c *gin.Context) {
	if cc.taskClient == nil {
		respondInternalError(c, "Task queue is not enabled", nil)
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		respondBadRequest(c, "Task ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := cc.taskClient.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, "Failed to look up task", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
