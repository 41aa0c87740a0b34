package handler

import (
	"net/http"
	"strconv"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// OperationHandler serves the reporting view: approved requests, project
// statistics and attachment downloads.
type OperationHandler struct {
	operationService service.OperationService
	fileService      service.FileService
}

func NewOperationHandler(operationService service.OperationService, fileService service.FileService) *OperationHandler {
	return &OperationHandler{operationService: operationService, fileService: fileService}
}

func (h *OperationHandler) RegisterRoutes(router *gin.RouterGroup) {
	requests := router.Group("/requests")
	{
		requests.GET("/get-company-operations", h.GetCompanyOperations)
		requests.GET("/get-operations-by-project/:projectId", h.GetProjectOperations)
		requests.GET("/get-project-statistic/:projectId", h.GetProjectStatistic)
		requests.GET("/download-file/:fileId", h.DownloadFile)
	}
}

// @Summary      List company operations
// @Description  Operations are requests in APPROVED status.
// @Tags         Operations
// @Produce      json
// @Success      200 {object} response.Response
// @Success      204 "No approved operations"
// @Router       /requests/get-company-operations [get]
func (h *OperationHandler) GetCompanyOperations(c *gin.Context) {
	caller := middleware.GetCaller(c)
	operations, err := h.operationService.ListCompanyOperations(c.Request.Context(), caller.CompanyID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	if len(operations) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, operations))
}

// @Summary      List a project's operations
// @Tags         Operations
// @Produce      json
// @Param        projectId path int true "Project ID"
// @Success      200 {object} response.Response
// @Success      204 "No approved operations for the project"
// @Router       /requests/get-operations-by-project/{projectId} [get]
func (h *OperationHandler) GetProjectOperations(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("projectId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "project id must be numeric"))
		return
	}

	caller := middleware.GetCaller(c)
	operations, err := h.operationService.ListProjectOperations(c.Request.Context(), projectID, caller.CompanyID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	if len(operations) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, operations))
}

// @Summary      Project statistic
// @Description  Revenue sums the positive amounts of the project's operations, profit sums all of them.
// @Tags         Operations
// @Produce      json
// @Param        projectId path int true "Project ID"
// @Success      200 {object} response.Response
// @Router       /requests/get-project-statistic/{projectId} [get]
func (h *OperationHandler) GetProjectStatistic(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("projectId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "project id must be numeric"))
		return
	}

	caller := middleware.GetCaller(c)
	stat, err := h.operationService.ProjectStatistic(c.Request.Context(), projectID, caller.CompanyID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stat))
}

// @Summary      Download an attachment
// @Description  Streams the stored bytes; content type derives from the stored filename's extension.
// @Tags         Operations
// @Produce      octet-stream
// @Param        fileId path int true "File ID"
// @Success      200 {file} binary
// @Failure      404 {object} response.Response "Unknown file"
// @Router       /requests/download-file/{fileId} [get]
func (h *OperationHandler) DownloadFile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("fileId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "file id must be numeric"))
		return
	}

	file, err := h.fileService.GetFile(c.Request.Context(), id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.OriginalFilename+`"`)
	c.Data(http.StatusOK, service.ContentTypeFor(file.StoredFilename), file.Content)
}
