package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"backend/internal/permission"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatewayRouter(captured *permission.Caller) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequireGateway())
	r.GET("/probe", func(c *gin.Context) {
		*captured = GetCaller(c)
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequireGatewayRejectsDirectCalls(t *testing.T) {
	var caller permission.Caller
	r := gatewayRouter(&caller)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestRequireGatewayRejectsMissingIdentity(t *testing.T) {
	var caller permission.Caller
	r := gatewayRouter(&caller)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(HeaderAuthenticated, "true")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireGatewayRejectsGarbageCompanyID(t *testing.T) {
	var caller permission.Caller
	r := gatewayRouter(&caller)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(HeaderAuthenticated, "true")
	req.Header.Set(HeaderCompanyID, "acme")
	req.Header.Set(HeaderUserEmail, "creator@corp.ru")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequireGatewayBuildsCaller(t *testing.T) {
	var caller permission.Caller
	r := gatewayRouter(&caller)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(HeaderAuthenticated, "true")
	req.Header.Set(HeaderCompanyID, "7")
	req.Header.Set(HeaderUserEmail, "creator@corp.ru")
	req.Header.Set(HeaderUserLogin, "creator")
	req.Header.Set(HeaderPermissions, "CREATE_REQUEST_AND_DELETE_BEFORE_APPROVE,REQUEST_WORK")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), caller.CompanyID)
	assert.Equal(t, "creator@corp.ru", caller.Email)
	assert.Equal(t, "creator", caller.Login)
	assert.True(t, caller.Permissions.Has(permission.RequestWork))
	assert.True(t, caller.Permissions.Has(permission.CreateAndDeleteBeforeApprove))
}

func TestGetCallerWithoutMiddlewareFailsClosed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	caller := GetCaller(c)
	assert.False(t, caller.Permissions.HasAny(permission.RequestWork))
}
