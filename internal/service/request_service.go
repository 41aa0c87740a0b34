package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"backend/internal/model"
	"backend/internal/permission"
	"backend/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Lifecycle event names pushed to the websocket hub.
const (
	EventRequestCreated     = "request.created"
	EventRequestApproved    = "request.approved"
	EventRequestDisapproved = "request.disapproved"
	EventRequestDeleted     = "request.deleted"
)

// Notifier receives lifecycle events. Implemented by the websocket hub.
type Notifier interface {
	NotifyRequestEvent(event string, requestID, companyID int64, status string)
}

// --- DTOs ---

// FileUpload is one multipart attachment read fully into memory.
type FileUpload struct {
	Filename string
	Size     int64
	Content  []byte
}

// CreateRequestForm carries the create-request fields. ProjectID arrives as a
// form string and is parsed after presence validation.
type CreateRequestForm struct {
	Description        string `form:"description" json:"description"`
	TypeOfOperation    string `form:"typeOfOperation" json:"typeOfOperation"`
	ProjectID          string `form:"projectId" json:"projectId"`
	NameOfCounterparty string `form:"nameOfCounterparty" json:"nameOfCounterparty"`
	Sum                int64  `form:"sum" json:"sum"`
	Name               string `form:"name" json:"name"`
	Files              []FileUpload `form:"-" json:"-"`
}

// IsValid checks field presence only; parseability surfaces later.
func (f *CreateRequestForm) IsValid() bool {
	return strings.TrimSpace(f.Description) != "" &&
		strings.TrimSpace(f.TypeOfOperation) != "" &&
		strings.TrimSpace(f.ProjectID) != "" &&
		strings.TrimSpace(f.NameOfCounterparty) != "" &&
		f.Sum != 0
}

// DateRangeQuery is the body of the custom range endpoint.
type DateRangeQuery struct {
	Date1 string `json:"Date1"`
	Date2 string `json:"Date2"`
}

func (q *DateRangeQuery) IsValid() bool {
	return strings.TrimSpace(q.Date1) != "" && strings.TrimSpace(q.Date2) != ""
}

// DeleteRequestItem mirrors the wire shape of the batch delete body. Only the
// id is authoritative; the other fields are legacy echoes the frontend sends.
type DeleteRequestItem struct {
	ID               int64  `json:"id"`
	ApprovedStatus   string `json:"approvedStatus,omitempty"`
	ResponsibleEmail string `json:"responsibleEmail,omitempty"`
}

// --- Interface ---

type RequestService interface {
	CreateRequest(ctx context.Context, caller permission.Caller, form CreateRequestForm) (int64, error)
	ApproveRequest(ctx context.Context, caller permission.Caller, id int64) error
	DisapproveRequest(ctx context.Context, caller permission.Caller, id int64) error
	DeleteRequests(ctx context.Context, caller permission.Caller, ids []int64) error
	ListCompanyRequests(ctx context.Context, companyID int64) ([]model.Request, error)
}

type requestService struct {
	requests  repository.RequestRepository
	txManager repository.TransactionManager
	notifier  Notifier
	loc       *time.Location
	now       func() time.Time
}

func NewRequestService(
	requests repository.RequestRepository,
	txManager repository.TransactionManager,
	notifier Notifier,
	loc *time.Location,
) RequestService {
	if loc == nil {
		loc = time.UTC
	}
	return &requestService{
		requests:  requests,
		txManager: txManager,
		notifier:  notifier,
		loc:       loc,
		now:       time.Now,
	}
}

// --- Implementation ---

func (s *requestService) CreateRequest(ctx context.Context, caller permission.Caller, form CreateRequestForm) (int64, error) {
	if !caller.Permissions.Has(permission.CreateAndDeleteBeforeApprove) {
		return 0, ErrNoRights
	}
	if !form.IsValid() {
		return 0, ErrInvalidForm
	}

	projectID, err := strconv.ParseInt(strings.TrimSpace(form.ProjectID), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: projectId must be numeric", ErrInvalidForm)
	}

	request := &model.Request{
		Description:        form.Description,
		TypeOfOperation:    form.TypeOfOperation,
		ProjectID:          projectID,
		NameOfCounterparty: form.NameOfCounterparty,
		Sum:                form.Sum,
		Name:               form.Name,
		CreatedAt:          s.now().In(s.loc),
		CompanyID:          caller.CompanyID,
		CreatorLogin:       caller.Login,
		CreatorEmail:       caller.Email,
		ApprovedStatus:     model.StatusApproving,
	}

	// Attachment conversion runs on a worker goroutine; the caller waits for
	// the result, so the create call keeps its synchronous contract.
	done := make(chan fileConversion, 1)
	go func() {
		done <- convertUploads(form.Files, caller)
	}()
	conv := <-done
	if conv.err != nil {
		return 0, conv.err
	}
	request.Files = conv.files

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		return s.requests.Create(txCtx, request)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"request_id": request.ID,
		"company_id": request.CompanyID,
		"files":      len(request.Files),
	}).Info("request created")

	s.notify(EventRequestCreated, request.ID, request.CompanyID, request.ApprovedStatus)
	return request.ID, nil
}

type fileConversion struct {
	files []model.File
	err   error
}

func convertUploads(uploads []FileUpload, caller permission.Caller) fileConversion {
	files := make([]model.File, 0, len(uploads))
	for _, u := range uploads {
		if len(u.Content) == 0 {
			continue
		}
		files = append(files, model.File{
			OriginalFilename: u.Filename,
			FileSize:         u.Size,
			Content:          u.Content,
			UserEmail:        caller.Email,
			CompanyID:        caller.CompanyID,
			IsCompressed:     false,
		})
	}
	return fileConversion{files: files}
}

func (s *requestService) ApproveRequest(ctx context.Context, caller permission.Caller, id int64) error {
	if !caller.Permissions.HasAny(permission.RequestWork, permission.ApproveAndDeleteAfterApprove) {
		return ErrNoRights
	}

	request, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return asNotFound(err)
	}
	if request.ApprovedStatus == model.StatusApproved {
		return fmt.Errorf("%w: request has already been approved", ErrInvalidState)
	}

	request.ApprovedStatus = model.StatusApproved
	if err := s.requests.Save(ctx, request); err != nil {
		return fmt.Errorf("failed to approve request: %w", err)
	}

	s.notify(EventRequestApproved, request.ID, request.CompanyID, request.ApprovedStatus)
	return nil
}

// DisapproveRequest has no current-state precondition: a disapproval simply
// re-stamps DISAPPROVED. The record is kept, never deleted.
func (s *requestService) DisapproveRequest(ctx context.Context, caller permission.Caller, id int64) error {
	if !caller.Permissions.HasAny(permission.RequestWork, permission.ApproveAndDeleteAfterApprove) {
		return ErrNoRights
	}

	request, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return asNotFound(err)
	}

	request.ApprovedStatus = model.StatusDisapproved
	if err := s.requests.Save(ctx, request); err != nil {
		return fmt.Errorf("failed to disapprove request: %w", err)
	}

	s.notify(EventRequestDisapproved, request.ID, request.CompanyID, request.ApprovedStatus)
	return nil
}

// DeleteRequests is all-or-nothing: every target is checked against the
// caller's strongest applicable token before anything is removed.
func (s *requestService) DeleteRequests(ctx context.Context, caller permission.Caller, ids []int64) error {
	if len(ids) == 0 {
		return ErrInvalidForm
	}

	targets, err := s.requests.FindAllByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to resolve requests: %w", err)
	}
	if len(targets) != len(uniqueIDs(ids)) {
		return fmt.Errorf("%w: some requests do not exist", ErrNotFound)
	}

	if err := checkDeletable(caller, targets); err != nil {
		return err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		return s.requests.DeleteByIDs(txCtx, ids)
	})
	if err != nil {
		return fmt.Errorf("failed to delete requests: %w", err)
	}

	for _, r := range targets {
		s.notify(EventRequestDeleted, r.ID, r.CompanyID, r.ApprovedStatus)
	}
	return nil
}

// checkDeletable partitions the batch policy by held token, strongest first.
func checkDeletable(caller permission.Caller, targets []model.Request) error {
	switch {
	case caller.Permissions.Has(permission.RequestWork):
		// Elevated: any status, any owner.
		return nil

	case caller.Permissions.Has(permission.CreateAndDeleteBeforeApprove):
		for _, r := range targets {
			if r.ApprovedStatus != model.StatusApproving {
				return fmt.Errorf("%w: you can delete only requests with approving status", ErrInvalidState)
			}
			if r.CreatorEmail != caller.Email {
				return fmt.Errorf("%w: you can delete only your requests", ErrForbidden)
			}
		}
		return nil

	case caller.Permissions.Has(permission.ApproveAndDeleteAfterApprove):
		for _, r := range targets {
			if r.ApprovedStatus == model.StatusApproved {
				return fmt.Errorf("%w: you can delete only requests which are not approved", ErrInvalidState)
			}
			if r.ResponsibleManager != caller.Email {
				return fmt.Errorf("%w: you can delete only requests you are responsible for", ErrForbidden)
			}
		}
		return nil

	default:
		return ErrForbidden
	}
}

func (s *requestService) ListCompanyRequests(ctx context.Context, companyID int64) ([]model.Request, error) {
	requests, err := s.requests.FindByCompanyID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch company requests: %w", err)
	}
	return requests, nil
}

func (s *requestService) notify(event string, requestID, companyID int64, status string) {
	if s.notifier != nil {
		s.notifier.NotifyRequestEvent(event, requestID, companyID, status)
	}
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

func asNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: request doesn't exist", ErrNotFound)
	}
	return err
}
