package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/blogem/crm-web/crmapi"
	"github.com/blogem/crm-web/models"
	"github.com/blogem/crm-web/repositories"
	"github.com/blogem/crm-web/repositories/mocks"
	"github.com/blogem/crm-web/services"
	"github.com/blogem/crm-web/userctx"
)

var (
	adminUser   = &models.User{ID: "sub-admin", Username: "root", Role: models.RoleAdministrator}
	regularUser = &models.User{ID: "sub-user", Username: "alice", Role: models.RoleUser}
)

func at(s string) time.Time {
	ts, _ := time.Parse(time.RFC3339, s)
	return ts
}

// ControllersTestSuite drives the HTTP surface through a chi router
type ControllersTestSuite struct {
	suite.Suite
	mockAudit      *mocks.MockAuditLogRepository
	mockComment    *mocks.MockCommentRepository
	mockRequestLog *mocks.MockRequestLogRepository
}

// SetupTest sets up the test suite before each test
func (suite *ControllersTestSuite) SetupTest() {
	suite.mockAudit = mocks.NewMockAuditLogRepository(suite.T())
	suite.mockComment = mocks.NewMockCommentRepository(suite.T())
	suite.mockRequestLog = mocks.NewMockRequestLogRepository(suite.T())
}

func (suite *ControllersTestSuite) router(user *models.User, opts services.Options) http.Handler {
	srvs := services.NewServices(&repositories.Repositories{
		AuditLog:   suite.mockAudit,
		Comment:    suite.mockComment,
		RequestLog: suite.mockRequestLog,
	}, opts)
	ctrl := NewControllers(srvs, nil, "")

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if user != nil {
				req = req.WithContext(userctx.SetUser(req.Context(), user))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/", ctrl.Dashboard.Index)
	r.Get("/activity", ctrl.Activity.Index)
	r.Get("/entities/open", ctrl.Timeline.Open)
	r.Get("/entities/{entityType}/{entityID}/timeline", ctrl.Timeline.Show)
	r.Post("/entities/{entityType}/{entityID}/comments", ctrl.Timeline.AddComment)
	r.Get("/api/entities/{entityType}/{entityID}/timeline", ctrl.Timeline.JSON)
	return r
}

func (suite *ControllersTestSuite) serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func (suite *ControllersTestSuite) expectTicket(audits []models.AuditLogEntry, comments []models.Comment, commentErr error) {
	suite.mockAudit.EXPECT().
		ListForEntity(mock.Anything, models.EntityTypeTicket, "42", mock.Anything).
		Return(&models.AuditPage{Entries: audits, Total: len(audits), Pages: 1, Limit: 50}, nil)
	suite.mockComment.EXPECT().
		ListForTicket(mock.Anything, "42").
		Return(comments, commentErr)
}

func ticketAudit() []models.AuditLogEntry {
	return []models.AuditLogEntry{{
		ID:         1,
		Operation:  models.OperationCreate,
		EntityType: models.EntityTypeTicket,
		User:       models.AuditUser{Username: "bob"},
		CreatedAt:  at("2024-01-01T10:00:00Z"),
	}}
}

// TestShowTicketTimeline tests the merged HTML rendering, newest first
func (suite *ControllersTestSuite) TestShowTicketTimeline() {
	suite.expectTicket(ticketAudit(), []models.Comment{
		{ID: 9, Comment: "hello there", IsInternal: true, User: models.AuditUser{Username: "carol"}, CreatedAt: at("2024-01-01T11:00:00Z")},
	}, nil)

	rec := suite.serve(suite.router(regularUser, services.Options{}), httptest.NewRequest(http.MethodGet, "/entities/ticket/42/timeline", nil))
	body := rec.Body.String()

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), body, "hello there")
	assert.Contains(suite.T(), body, "Internal")
	assert.Contains(suite.T(), body, "created this ticket")
	assert.Less(suite.T(), strings.Index(body, "hello there"), strings.Index(body, "created this ticket"))
	assert.NotContains(suite.T(), body, `http-equiv="refresh"`)
}

// TestShowHighSecurityDenied tests the access panel without backend calls
func (suite *ControllersTestSuite) TestShowHighSecurityDenied() {
	rec := suite.serve(suite.router(regularUser, services.Options{}), httptest.NewRequest(http.MethodGet, "/entities/security/1/timeline", nil))

	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "Access restricted")
	suite.mockAudit.AssertNotCalled(suite.T(), "ListForEntity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// TestShowAuditFailure tests the blocking error panel
func (suite *ControllersTestSuite) TestShowAuditFailure() {
	suite.mockAudit.EXPECT().
		ListForEntity(mock.Anything, models.EntityTypeTask, "5", mock.Anything).
		Return(nil, errors.New("connection refused"))

	rec := suite.serve(suite.router(regularUser, services.Options{}), httptest.NewRequest(http.MethodGet, "/entities/task/5/timeline", nil))

	assert.Equal(suite.T(), http.StatusBadGateway, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "Failed to load audit history. Please try again.")
	assert.Contains(suite.T(), rec.Body.String(), `href="/entities/task/5/timeline"`)
	assert.NotContains(suite.T(), rec.Body.String(), "connection refused")
}

// TestShowBackendForbidden tests that a backend 403 renders the access panel
func (suite *ControllersTestSuite) TestShowBackendForbidden() {
	suite.mockAudit.EXPECT().
		ListForEntity(mock.Anything, models.EntityTypeLead, "3", mock.Anything).
		Return(nil, &crmapi.StatusError{StatusCode: http.StatusForbidden})

	rec := suite.serve(suite.router(regularUser, services.Options{}), httptest.NewRequest(http.MethodGet, "/entities/lead/3/timeline", nil))

	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "Access restricted")
}

// TestShowCommentFailureWarns tests the non-blocking comment warning
func (suite *ControllersTestSuite) TestShowCommentFailureWarns() {
	suite.expectTicket(ticketAudit(), nil, errors.New("timeout"))

	rec := suite.serve(suite.router(regularUser, services.Options{}), httptest.NewRequest(http.MethodGet, "/entities/ticket/42/timeline", nil))

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "Comments could not be loaded.")
	assert.Contains(suite.T(), rec.Body.String(), "created this ticket")
}

// TestShowSensitiveEntryHidesValues tests that sensitive values never reach the page
func (suite *ControllersTestSuite) TestShowSensitiveEntryHidesValues() {
	suite.mockAudit.EXPECT().
		ListForEntity(mock.Anything, models.EntityTypeContact, "8", mock.Anything).
		Return(&models.AuditPage{Entries: []models.AuditLogEntry{{
			ID:          4,
			Operation:   models.OperationUpdate,
			EntityType:  models.EntityTypeContact,
			FieldName:   "salary",
			OldValue:    "old-secret-90000",
			NewValue:    "new-secret-95000",
			IsSensitive: true,
			CreatedAt:   at("2024-01-01T10:00:00Z"),
		}}, Total: 1, Pages: 1}, nil)

	rec := suite.serve(suite.router(regularUser, services.Options{}), httptest.NewRequest(http.MethodGet, "/entities/contact/8/timeline", nil))

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "changed salary")
	assert.NotContains(suite.T(), rec.Body.String(), "secret-9")
	suite.mockComment.AssertNotCalled(suite.T(), "ListForTicket", mock.Anything, mock.Anything)
}

// TestShowPollingMetaRefresh tests that auto-refresh only appears when enabled
func (suite *ControllersTestSuite) TestShowPollingMetaRefresh() {
	suite.expectTicket(ticketAudit(), nil, nil)

	h := suite.router(regularUser, services.Options{PollingEnabled: true, PollInterval: 45 * time.Second})
	rec := suite.serve(h, httptest.NewRequest(http.MethodGet, "/entities/ticket/42/timeline", nil))

	assert.Contains(suite.T(), rec.Body.String(), `<meta http-equiv="refresh" content="45">`)
}

// TestTimelineJSON tests the JSON snapshot endpoint
func (suite *ControllersTestSuite) TestTimelineJSON() {
	suite.expectTicket(ticketAudit(), []models.Comment{{ID: 9, Comment: "hello", CreatedAt: at("2024-01-01T11:00:00Z")}}, nil)

	rec := suite.serve(suite.router(regularUser, services.Options{}), httptest.NewRequest(http.MethodGet, "/api/entities/ticket/42/timeline?page=1", nil))
	require.Equal(suite.T(), http.StatusOK, rec.Code)

	var snap services.TimelineSnapshot
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(suite.T(), services.ViewStateLoaded, snap.State)
	require.Len(suite.T(), snap.Items, 2)
	assert.Equal(suite.T(), models.TimelineItemComment, snap.Items[0].Kind)
	assert.Equal(suite.T(), models.TimelineItemAudit, snap.Items[1].Kind)
}

// TestTimelineJSONHidesSensitiveValues tests that the JSON endpoint never carries sensitive values
func (suite *ControllersTestSuite) TestTimelineJSONHidesSensitiveValues() {
	suite.expectTicket([]models.AuditLogEntry{{
		ID:          5,
		Operation:   models.OperationUpdate,
		EntityType:  models.EntityTypeTicket,
		FieldName:   "password",
		OldValue:    "hunter2-old",
		NewValue:    "hunter2-new",
		IsSensitive: true,
		CreatedAt:   at("2024-01-01T10:00:00Z"),
	}}, nil, nil)

	rec := suite.serve(suite.router(adminUser, services.Options{}), httptest.NewRequest(http.MethodGet, "/api/entities/ticket/42/timeline", nil))
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.NotContains(suite.T(), rec.Body.String(), "hunter2")

	var snap services.TimelineSnapshot
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &snap))
	require.Len(suite.T(), snap.Items, 1)
	assert.Equal(suite.T(), "password", snap.Items[0].Audit.FieldName)
	assert.True(suite.T(), snap.Items[0].Audit.IsSensitive)
	assert.Nil(suite.T(), snap.Items[0].Audit.OldValue)
	assert.Nil(suite.T(), snap.Items[0].Audit.NewValue)
}

// TestTimelineJSONDenied tests the JSON status for a denied view
func (suite *ControllersTestSuite) TestTimelineJSONDenied() {
	rec := suite.serve(suite.router(regularUser, services.Options{}), httptest.NewRequest(http.MethodGet, "/api/entities/user/1/timeline", nil))

	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), `"hasAccess":false`)
}

func commentRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/entities/ticket/42/comments", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// TestAddCommentRedirects tests post-redirect-get after a successful post
func (suite *ControllersTestSuite) TestAddCommentRedirects() {
	suite.mockComment.EXPECT().
		Create(mock.Anything, "42", models.CommentInput{Comment: "ship it", IsInternal: true}).
		Return(&models.Comment{ID: 12, Comment: "ship it", IsInternal: true}, nil).
		Once()
	suite.expectTicket(ticketAudit(), nil, nil)

	rec := suite.serve(suite.router(regularUser, services.Options{}), commentRequest(url.Values{"comment": {" ship it "}, "is_internal": {"on"}}))

	assert.Equal(suite.T(), http.StatusSeeOther, rec.Code)
	assert.Equal(suite.T(), "/entities/ticket/42/timeline", rec.Header().Get("Location"))
	suite.mockComment.AssertNumberOfCalls(suite.T(), "ListForTicket", 1)
}

// TestAddCommentBlank tests that an empty draft is rejected without a post
func (suite *ControllersTestSuite) TestAddCommentBlank() {
	suite.expectTicket(ticketAudit(), nil, nil)

	rec := suite.serve(suite.router(regularUser, services.Options{}), commentRequest(url.Values{"comment": {"   "}}))

	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "Comment cannot be empty.")
	suite.mockComment.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything, mock.Anything)
}

// TestAddCommentBackendFailureKeepsDraft tests that the draft survives a failed post
func (suite *ControllersTestSuite) TestAddCommentBackendFailureKeepsDraft() {
	suite.mockComment.EXPECT().
		Create(mock.Anything, "42", mock.Anything).
		Return(nil, errors.New("upstream 500")).
		Once()
	suite.expectTicket(ticketAudit(), nil, nil)

	rec := suite.serve(suite.router(regularUser, services.Options{}), commentRequest(url.Values{"comment": {"my draft text"}, "is_internal": {"true"}}))

	assert.Equal(suite.T(), http.StatusBadGateway, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "Failed to add comment. Please try again.")
	assert.Contains(suite.T(), rec.Body.String(), "my draft text")
	assert.Contains(suite.T(), rec.Body.String(), "checked")
}

// TestAddCommentOnTaskNotSupported tests comments on a non-ticket entity
func (suite *ControllersTestSuite) TestAddCommentOnTaskNotSupported() {
	suite.mockAudit.EXPECT().
		ListForEntity(mock.Anything, models.EntityTypeTask, "5", mock.Anything).
		Return(&models.AuditPage{Entries: []models.AuditLogEntry{}, Pages: 0}, nil)

	req := httptest.NewRequest(http.MethodPost, "/entities/task/5/comments", strings.NewReader("comment=hi"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := suite.serve(suite.router(regularUser, services.Options{}), req)

	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "Comments are only available on tickets.")
	suite.mockComment.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything, mock.Anything)
}

// TestOpenRedirects tests the dashboard form redirect
func (suite *ControllersTestSuite) TestOpenRedirects() {
	h := suite.router(regularUser, services.Options{})

	rec := suite.serve(h, httptest.NewRequest(http.MethodGet, "/entities/open?type=Ticket&id=42", nil))
	assert.Equal(suite.T(), http.StatusSeeOther, rec.Code)
	assert.Equal(suite.T(), "/entities/ticket/42/timeline", rec.Header().Get("Location"))

	rec = suite.serve(h, httptest.NewRequest(http.MethodGet, "/entities/open?type=ticket", nil))
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
}

// TestDashboard tests the landing page for both anonymous and signed-in users
func (suite *ControllersTestSuite) TestDashboard() {
	rec := suite.serve(suite.router(nil, services.Options{}), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), `href="/login"`)

	rec = suite.serve(suite.router(regularUser, services.Options{}), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(suite.T(), rec.Body.String(), "Welcome, alice")
	assert.Contains(suite.T(), rec.Body.String(), `<option value="ticket">`)
	assert.NotContains(suite.T(), rec.Body.String(), `<option value="security">`)

	rec = suite.serve(suite.router(adminUser, services.Options{}), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(suite.T(), rec.Body.String(), `<option value="security">`)
	assert.Contains(suite.T(), rec.Body.String(), `href="/activity"`)
}

// TestActivity tests the administrator-only request journal page
func (suite *ControllersTestSuite) TestActivity() {
	rec := suite.serve(suite.router(regularUser, services.Options{}), httptest.NewRequest(http.MethodGet, "/activity", nil))
	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)

	suite.mockRequestLog.EXPECT().ListRecent(defaultActivityLimit).Return([]models.RequestLogEntry{{
		ID:        1,
		Timestamp: at("2024-01-01T12:00:00Z"),
		Username:  "alice",
		Method:    http.MethodPost,
		Path:      "/entities/ticket/42/comments",
	}}, nil).Once()

	rec = suite.serve(suite.router(adminUser, services.Options{}), httptest.NewRequest(http.MethodGet, "/activity", nil))
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "POST /entities/ticket/42/comments")
}

// TestRunControllersTestSuite runs the test suite
func TestRunControllersTestSuite(t *testing.T) {
	suite.Run(t, new(ControllersTestSuite))
}

func TestPageParam(t *testing.T) {
	for query, want := range map[string]int{"": 1, "page=3": 3, "page=0": 1, "page=-2": 1, "page=abc": 1} {
		req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
		assert.Equal(t, want, pageParam(req), query)
	}
}

func TestIsLocalPath(t *testing.T) {
	assert.True(t, isLocalPath("/entities/ticket/1/timeline"))
	assert.False(t, isLocalPath("//evil.example.com"))
	assert.False(t, isLocalPath("https://evil.example.com"))
	assert.False(t, isLocalPath(""))
}
