package handler

import (
	"io"
	"net/http"
	"strconv"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/internal/timefilter"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	requestService service.RequestService
	filter         *timefilter.Engine
}

func NewRequestHandler(requestService service.RequestService, filter *timefilter.Engine) *RequestHandler {
	return &RequestHandler{requestService: requestService, filter: filter}
}

func (h *RequestHandler) RegisterRoutes(router *gin.RouterGroup) {
	requests := router.Group("/requests")
	{
		requests.POST("/create-request", h.CreateRequest)
		requests.DELETE("/delete-requests", h.DeleteRequests)
		requests.POST("/approve-request/:requestId", h.ApproveRequest)
		requests.POST("/disapprove-request/:requestId", h.DisapproveRequest)

		requests.GET("/get-requests", h.GetCompanyRequests)
		requests.GET("/get-company-requests", h.GetCompanyRequests)
		requests.GET("/get-requests-order-by-date-today", h.GetRequestsByToday)
		requests.GET("/get-requests-order-by-date-week", h.GetRequestsByWeek)
		requests.GET("/get-requests-order-by-month", h.GetRequestsByMonth)
		requests.GET("/get-requests-order-by-date-year", h.GetRequestsByYear)
		requests.GET("/get-requests-order-by-date-quarter/:numberOfQuarter", h.GetRequestsByQuarter)
		requests.GET("/get-requests-order-by-last-days/:numberOfDays", h.GetRequestsByLastDays)
		requests.GET("/get-requests-order-by-daytime/:partOfDay", h.GetRequestsByDaytime)
		requests.POST("/get-requests-order-by-dates", h.GetRequestsByDates)
	}
}

// @Summary      Create a request with attachments
// @Description  Creates an operation request in APPROVING status. Requires CREATE_REQUEST_AND_DELETE_BEFORE_APPROVE.
// @Tags         Requests
// @Accept       mpfd
// @Produce      json
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "Invalid form"
// @Failure      403 {object} response.Response "No rights"
// @Failure      502 {object} response.Response "Not from gateway"
// @Router       /requests/create-request [post]
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var form service.CreateRequestForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "form data is invalid"))
		return
	}

	uploads, err := readUploads(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "failed to read uploaded files"))
		return
	}
	form.Files = uploads

	id, err := h.requestService.CreateRequest(c.Request.Context(), middleware.GetCaller(c), form)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"id": id}))
}

// readUploads drains every multipart file part fully into memory.
func readUploads(c *gin.Context) ([]service.FileUpload, error) {
	if c.ContentType() != "multipart/form-data" {
		return nil, nil
	}
	mf, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}

	var uploads []service.FileUpload
	for _, fh := range mf.File["files"] {
		src, err := fh.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(src)
		_ = src.Close()
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, service.FileUpload{
			Filename: fh.Filename,
			Size:     fh.Size,
			Content:  content,
		})
	}
	return uploads, nil
}

// @Summary      Delete requests
// @Description  Deletes a batch of requests. Scope depends on the caller's permission tokens; the batch is all-or-nothing.
// @Tags         Requests
// @Accept       json
// @Produce      json
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "Invalid state"
// @Failure      403 {object} response.Response "Ownership mismatch"
// @Failure      404 {object} response.Response "Unknown id"
// @Router       /requests/delete-requests [delete]
func (h *RequestHandler) DeleteRequests(c *gin.Context) {
	var items []service.DeleteRequestItem
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "body must be a list of request ids"))
		return
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	if err := h.requestService.DeleteRequests(c.Request.Context(), middleware.GetCaller(c), ids); err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Ack(http.StatusOK, "deleting successfully"))
}

// @Summary      Approve a request
// @Description  Moves the request to APPROVED. Re-approving an approved request is rejected.
// @Tags         Requests
// @Produce      json
// @Param        requestId path int true "Request ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "Already approved"
// @Failure      403 {object} response.Response "No rights"
// @Failure      404 {object} response.Response "Unknown id"
// @Router       /requests/approve-request/{requestId} [post]
func (h *RequestHandler) ApproveRequest(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("requestId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "request id must be numeric"))
		return
	}

	if err := h.requestService.ApproveRequest(c.Request.Context(), middleware.GetCaller(c), id); err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Ack(http.StatusOK, "successfully approving"))
}

// @Summary      Disapprove a request
// @Description  Moves the request to DISAPPROVED regardless of its current status.
// @Tags         Requests
// @Produce      json
// @Param        requestId path int true "Request ID"
// @Success      200 {object} response.Response
// @Failure      403 {object} response.Response "No rights"
// @Failure      404 {object} response.Response "Unknown id"
// @Router       /requests/disapprove-request/{requestId} [post]
func (h *RequestHandler) DisapproveRequest(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("requestId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "request id must be numeric"))
		return
	}

	if err := h.requestService.DisapproveRequest(c.Request.Context(), middleware.GetCaller(c), id); err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Ack(http.StatusOK, "successfully disapproved"))
}

// listFiltered fetches the company's requests and applies a period filter.
// An empty company yields 204 before any filtering happens.
func (h *RequestHandler) listFiltered(c *gin.Context, apply func([]model.Request) ([]model.Request, error)) {
	caller := middleware.GetCaller(c)
	requests, err := h.requestService.ListCompanyRequests(c.Request.Context(), caller.CompanyID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	if len(requests) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	filtered, err := apply(requests)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, filtered))
}

// @Summary      List company requests
// @Tags         Requests
// @Produce      json
// @Success      200 {object} response.Response
// @Success      204 "Company has no requests"
// @Router       /requests/get-company-requests [get]
func (h *RequestHandler) GetCompanyRequests(c *gin.Context) {
	h.listFiltered(c, func(requests []model.Request) ([]model.Request, error) {
		return h.filter.SortedByDateDesc(requests), nil
	})
}

// @Summary      List company requests created today
// @Tags         Requests
// @Produce      json
// @Success      200 {object} response.Response
// @Success      204 "Company has no requests"
// @Router       /requests/get-requests-order-by-date-today [get]
func (h *RequestHandler) GetRequestsByToday(c *gin.Context) {
	h.listFiltered(c, func(requests []model.Request) ([]model.Request, error) {
		return h.filter.ByToday(requests), nil
	})
}

// @Summary      List company requests for the current week
// @Tags         Requests
// @Produce      json
// @Success      200 {object} response.Response
// @Success      204 "Company has no requests"
// @Router       /requests/get-requests-order-by-date-week [get]
func (h *RequestHandler) GetRequestsByWeek(c *gin.Context) {
	h.listFiltered(c, func(requests []model.Request) ([]model.Request, error) {
		return h.filter.ByCurrentWeek(requests), nil
	})
}

// @Summary      List company requests for the current month
// @Tags         Requests
// @Produce      json
// @Success      200 {object} response.Response
// @Success      204 "Company has no requests"
// @Router       /requests/get-requests-order-by-month [get]
func (h *RequestHandler) GetRequestsByMonth(c *gin.Context) {
	h.listFiltered(c, func(requests []model.Request) ([]model.Request, error) {
		return h.filter.ByCurrentMonth(requests), nil
	})
}

// @Summary      List company requests for the current year
// @Tags         Requests
// @Produce      json
// @Success      200 {object} response.Response
// @Success      204 "Company has no requests"
// @Router       /requests/get-requests-order-by-date-year [get]
func (h *RequestHandler) GetRequestsByYear(c *gin.Context) {
	h.listFiltered(c, func(requests []model.Request) ([]model.Request, error) {
		return h.filter.ByCurrentYear(requests), nil
	})
}

// @Summary      List company requests for a quarter
// @Description  Matches the quarter's months in any year.
// @Tags         Requests
// @Produce      json
// @Param        numberOfQuarter path int true "Quarter (1-4)"
// @Success      200 {object} response.Response
// @Success      204 "Company has no requests"
// @Failure      400 {object} response.Response "Quarter out of range"
// @Router       /requests/get-requests-order-by-date-quarter/{numberOfQuarter} [get]
func (h *RequestHandler) GetRequestsByQuarter(c *gin.Context) {
	quarter, err := strconv.Atoi(c.Param("numberOfQuarter"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "quarter must be numeric"))
		return
	}
	h.listFiltered(c, func(requests []model.Request) ([]model.Request, error) {
		return h.filter.ByQuarter(requests, quarter)
	})
}

// @Summary      List company requests for the last N days
// @Description  Inclusive window of N calendar days ending today.
// @Tags         Requests
// @Produce      json
// @Param        numberOfDays path int true "Window length, today counts as day one"
// @Success      200 {object} response.Response
// @Success      204 "Company has no requests"
// @Failure      400 {object} response.Response "Non-positive window"
// @Router       /requests/get-requests-order-by-last-days/{numberOfDays} [get]
func (h *RequestHandler) GetRequestsByLastDays(c *gin.Context) {
	days, err := strconv.Atoi(c.Param("numberOfDays"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "number of days must be numeric"))
		return
	}
	h.listFiltered(c, func(requests []model.Request) ([]model.Request, error) {
		return h.filter.ByLastNDays(requests, days)
	})
}

// @Summary      List company requests by part of day
// @Description  Partitions: morning, afternoon, evening, night, business-hours.
// @Tags         Requests
// @Produce      json
// @Param        partOfDay path string true "Part of day"
// @Success      200 {object} response.Response
// @Success      204 "Company has no requests"
// @Failure      400 {object} response.Response "Unknown part of day"
// @Router       /requests/get-requests-order-by-daytime/{partOfDay} [get]
func (h *RequestHandler) GetRequestsByDaytime(c *gin.Context) {
	var apply func([]model.Request) []model.Request
	switch c.Param("partOfDay") {
	case "morning":
		apply = h.filter.ByMorning
	case "afternoon":
		apply = h.filter.ByAfternoon
	case "evening":
		apply = h.filter.ByEvening
	case "night":
		apply = h.filter.ByNight
	case "business-hours":
		apply = h.filter.ByBusinessHours
	default:
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "unknown part of day"))
		return
	}
	h.listFiltered(c, func(requests []model.Request) ([]model.Request, error) {
		return apply(requests), nil
	})
}

// @Summary      List company requests within a date range
// @Description  Inclusive range; dates are ISO local datetimes in the service zone.
// @Tags         Requests
// @Accept       json
// @Produce      json
// @Success      200 {object} response.Response
// @Success      204 "Company has no requests"
// @Failure      400 {object} response.Response "Invalid range"
// @Router       /requests/get-requests-order-by-dates [post]
func (h *RequestHandler) GetRequestsByDates(c *gin.Context) {
	var query service.DateRangeQuery
	if err := c.ShouldBindJSON(&query); err != nil || !query.IsValid() {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "dto is invalid"))
		return
	}
	h.listFiltered(c, func(requests []model.Request) ([]model.Request, error) {
		return h.filter.ByDateTimeRangeStrings(requests, query.Date1, query.Date2)
	})
}
