package service

import (
	"context"
	"testing"
	"time"

	"backend/internal/model"
	"backend/internal/permission"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- mocks (hand-written, photostudio style) ---

type mockRequestRepo struct {
	byID map[int64]*model.Request

	created *model.Request
	saved   *model.Request
	deleted []int64
	findErr error
}

func newMockRequestRepo(requests ...*model.Request) *mockRequestRepo {
	m := &mockRequestRepo{byID: make(map[int64]*model.Request)}
	for _, r := range requests {
		m.byID[r.ID] = r
	}
	return m
}

func (m *mockRequestRepo) Create(ctx context.Context, request *model.Request) error {
	request.ID = int64(len(m.byID) + 1)
	m.byID[request.ID] = request
	m.created = request
	return nil
}

func (m *mockRequestRepo) Save(ctx context.Context, request *model.Request) error {
	m.byID[request.ID] = request
	m.saved = request
	return nil
}

func (m *mockRequestRepo) FindByID(ctx context.Context, id int64) (*model.Request, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	r, ok := m.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (m *mockRequestRepo) FindAllByIDs(ctx context.Context, ids []int64) ([]model.Request, error) {
	var out []model.Request
	for _, id := range ids {
		if r, ok := m.byID[id]; ok {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockRequestRepo) FindByCompanyID(ctx context.Context, companyID int64) ([]model.Request, error) {
	var out []model.Request
	for _, r := range m.byID {
		if r.CompanyID == companyID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockRequestRepo) FindByProjectAndCompany(ctx context.Context, projectID, companyID int64) ([]model.Request, error) {
	var out []model.Request
	for _, r := range m.byID {
		if r.ProjectID == projectID && r.CompanyID == companyID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockRequestRepo) DeleteByIDs(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		delete(m.byID, id)
	}
	m.deleted = append(m.deleted, ids...)
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type recordingNotifier struct {
	events []string
}

func (n *recordingNotifier) NotifyRequestEvent(event string, requestID, companyID int64, status string) {
	n.events = append(n.events, event)
}

// --- fixtures ---

func creator() permission.Caller {
	return permission.Caller{
		CompanyID:   7,
		Email:       "creator@corp.ru",
		Login:       "creator",
		Permissions: permission.ParseSet("CREATE_REQUEST_AND_DELETE_BEFORE_APPROVE"),
	}
}

func approver() permission.Caller {
	return permission.Caller{
		CompanyID:   7,
		Email:       "manager@corp.ru",
		Permissions: permission.ParseSet("APPROVE_REQUEST_AND_DELETE_AFTER_APPROVE"),
	}
}

func elevated() permission.Caller {
	return permission.Caller{
		CompanyID:   7,
		Email:       "lead@corp.ru",
		Permissions: permission.ParseSet("REQUEST_WORK"),
	}
}

func validForm() CreateRequestForm {
	return CreateRequestForm{
		Description:        "office rent, march",
		TypeOfOperation:    model.OperationOutcome,
		ProjectID:          "42",
		NameOfCounterparty: "Romashka LLC",
		Sum:                -1500,
	}
}

func newService(repo *mockRequestRepo, n Notifier) RequestService {
	return NewRequestService(repo, passthroughTxManager{}, n, time.UTC)
}

// --- create ---

func TestCreateRequestStampsCallerContext(t *testing.T) {
	repo := newMockRequestRepo()
	notifier := &recordingNotifier{}
	svc := newService(repo, notifier)

	form := validForm()
	form.Files = []FileUpload{
		{Filename: "contract.pdf", Size: 3, Content: []byte{1, 2, 3}},
		{Filename: "empty.docx"}, // empty uploads are skipped
	}

	id, err := svc.CreateRequest(context.Background(), creator(), form)
	require.NoError(t, err)
	assert.NotZero(t, id)

	created := repo.created
	require.NotNil(t, created)
	assert.Equal(t, int64(7), created.CompanyID, "company id must come from the caller context")
	assert.Equal(t, "creator@corp.ru", created.CreatorEmail)
	assert.Equal(t, "creator", created.CreatorLogin)
	assert.Equal(t, model.StatusApproving, created.ApprovedStatus)
	assert.Equal(t, int64(42), created.ProjectID)
	assert.False(t, created.CreatedAt.IsZero())

	require.Len(t, created.Files, 1)
	assert.Equal(t, "contract.pdf", created.Files[0].OriginalFilename)
	assert.Equal(t, int64(7), created.Files[0].CompanyID)
	assert.Equal(t, "creator@corp.ru", created.Files[0].UserEmail)
	assert.False(t, created.Files[0].IsCompressed)

	assert.Equal(t, []string{EventRequestCreated}, notifier.events)
}

func TestCreateRequestRequiresCreateToken(t *testing.T) {
	svc := newService(newMockRequestRepo(), nil)
	_, err := svc.CreateRequest(context.Background(), approver(), validForm())
	assert.ErrorIs(t, err, ErrNoRights)
}

func TestCreateRequestRejectsInvalidForm(t *testing.T) {
	svc := newService(newMockRequestRepo(), nil)

	cases := map[string]func(*CreateRequestForm){
		"blank description":  func(f *CreateRequestForm) { f.Description = "   " },
		"missing type":       func(f *CreateRequestForm) { f.TypeOfOperation = "" },
		"missing project":    func(f *CreateRequestForm) { f.ProjectID = "" },
		"blank counterparty": func(f *CreateRequestForm) { f.NameOfCounterparty = " " },
		"zero sum":           func(f *CreateRequestForm) { f.Sum = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			form := validForm()
			mutate(&form)
			_, err := svc.CreateRequest(context.Background(), creator(), form)
			assert.ErrorIs(t, err, ErrInvalidForm)
		})
	}
}

func TestCreateRequestRejectsNonNumericProject(t *testing.T) {
	svc := newService(newMockRequestRepo(), nil)
	form := validForm()
	form.ProjectID = "alpha"
	_, err := svc.CreateRequest(context.Background(), creator(), form)
	assert.ErrorIs(t, err, ErrInvalidForm)
}

// --- approve / disapprove ---

func TestApproveRequest(t *testing.T) {
	repo := newMockRequestRepo(&model.Request{ID: 1, CompanyID: 7, ApprovedStatus: model.StatusApproving})
	notifier := &recordingNotifier{}
	svc := newService(repo, notifier)

	require.NoError(t, svc.ApproveRequest(context.Background(), approver(), 1))
	assert.Equal(t, model.StatusApproved, repo.byID[1].ApprovedStatus)
	assert.Equal(t, []string{EventRequestApproved}, notifier.events)
}

func TestApproveRequestTwiceFailsWithInvalidState(t *testing.T) {
	repo := newMockRequestRepo(&model.Request{ID: 1, ApprovedStatus: model.StatusApproving})
	svc := newService(repo, nil)

	require.NoError(t, svc.ApproveRequest(context.Background(), elevated(), 1))
	err := svc.ApproveRequest(context.Background(), elevated(), 1)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestApproveRequestNotFound(t *testing.T) {
	svc := newService(newMockRequestRepo(), nil)
	err := svc.ApproveRequest(context.Background(), elevated(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApproveRequestRequiresApproverToken(t *testing.T) {
	repo := newMockRequestRepo(&model.Request{ID: 1, ApprovedStatus: model.StatusApproving})
	svc := newService(repo, nil)
	err := svc.ApproveRequest(context.Background(), creator(), 1)
	assert.ErrorIs(t, err, ErrNoRights)
}

func TestDisapproveRequestHasNoStatePrecondition(t *testing.T) {
	repo := newMockRequestRepo(&model.Request{ID: 1, ApprovedStatus: model.StatusApproved})
	svc := newService(repo, nil)

	require.NoError(t, svc.DisapproveRequest(context.Background(), approver(), 1))
	assert.Equal(t, model.StatusDisapproved, repo.byID[1].ApprovedStatus)

	// Disapproving again is accepted.
	require.NoError(t, svc.DisapproveRequest(context.Background(), approver(), 1))
	assert.Equal(t, model.StatusDisapproved, repo.byID[1].ApprovedStatus)
}

// --- batch delete ---

func TestDeleteRequestsElevatedTokenSkipsAllChecks(t *testing.T) {
	repo := newMockRequestRepo(
		&model.Request{ID: 1, ApprovedStatus: model.StatusApproved, CreatorEmail: "other@corp.ru"},
		&model.Request{ID: 2, ApprovedStatus: model.StatusDisapproved, CreatorEmail: "other@corp.ru"},
	)
	svc := newService(repo, nil)

	require.NoError(t, svc.DeleteRequests(context.Background(), elevated(), []int64{1, 2}))
	assert.Equal(t, []int64{1, 2}, repo.deleted)
}

func TestDeleteRequestsCreatorScope(t *testing.T) {
	own := func(id int64, status string) *model.Request {
		return &model.Request{ID: id, ApprovedStatus: status, CreatorEmail: "creator@corp.ru"}
	}

	t.Run("deletes own approving requests", func(t *testing.T) {
		repo := newMockRequestRepo(own(1, model.StatusApproving), own(2, model.StatusApproving))
		svc := newService(repo, nil)
		require.NoError(t, svc.DeleteRequests(context.Background(), creator(), []int64{1, 2}))
		assert.Equal(t, []int64{1, 2}, repo.deleted)
	})

	t.Run("batch is atomic when one target left approving status", func(t *testing.T) {
		repo := newMockRequestRepo(
			own(1, model.StatusApproving),
			own(2, model.StatusApproved),
			own(3, model.StatusApproving),
		)
		svc := newService(repo, nil)
		err := svc.DeleteRequests(context.Background(), creator(), []int64{1, 2, 3})
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.Empty(t, repo.deleted, "no record may be deleted when any target fails")
	})

	t.Run("rejects foreign requests", func(t *testing.T) {
		repo := newMockRequestRepo(
			own(1, model.StatusApproving),
			&model.Request{ID: 2, ApprovedStatus: model.StatusApproving, CreatorEmail: "other@corp.ru"},
		)
		svc := newService(repo, nil)
		err := svc.DeleteRequests(context.Background(), creator(), []int64{1, 2})
		assert.ErrorIs(t, err, ErrForbidden)
		assert.Empty(t, repo.deleted)
	})
}

func TestDeleteRequestsApproverScope(t *testing.T) {
	mine := func(id int64, status string) *model.Request {
		return &model.Request{ID: id, ApprovedStatus: status, ResponsibleManager: "manager@corp.ru"}
	}

	t.Run("deletes approving and disapproved targets", func(t *testing.T) {
		repo := newMockRequestRepo(mine(1, model.StatusApproving), mine(2, model.StatusDisapproved))
		svc := newService(repo, nil)
		require.NoError(t, svc.DeleteRequests(context.Background(), approver(), []int64{1, 2}))
		assert.Equal(t, []int64{1, 2}, repo.deleted)
	})

	t.Run("rejects approved targets", func(t *testing.T) {
		repo := newMockRequestRepo(mine(1, model.StatusApproved))
		svc := newService(repo, nil)
		err := svc.DeleteRequests(context.Background(), approver(), []int64{1})
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.Empty(t, repo.deleted)
	})

	t.Run("rejects targets of another manager", func(t *testing.T) {
		repo := newMockRequestRepo(
			&model.Request{ID: 1, ApprovedStatus: model.StatusApproving, ResponsibleManager: "other@corp.ru"},
		)
		svc := newService(repo, nil)
		err := svc.DeleteRequests(context.Background(), approver(), []int64{1})
		assert.ErrorIs(t, err, ErrForbidden)
		assert.Empty(t, repo.deleted)
	})
}

func TestDeleteRequestsWithoutRecognizedToken(t *testing.T) {
	repo := newMockRequestRepo(&model.Request{ID: 1, ApprovedStatus: model.StatusApproving})
	svc := newService(repo, nil)
	caller := permission.Caller{Email: "nobody@corp.ru", Permissions: permission.ParseSet("")}
	err := svc.DeleteRequests(context.Background(), caller, []int64{1})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDeleteRequestsUnknownIDFails(t *testing.T) {
	repo := newMockRequestRepo(&model.Request{ID: 1, ApprovedStatus: model.StatusApproving})
	svc := newService(repo, nil)
	err := svc.DeleteRequests(context.Background(), elevated(), []int64{1, 99})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, repo.deleted)
}
