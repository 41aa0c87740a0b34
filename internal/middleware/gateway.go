package middleware

import (
	"net/http"
	"strconv"

	"backend/internal/permission"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// Trusted headers injected by the upstream gateway. The service never
// authenticates on its own; it only authorizes against these claims.
const (
	HeaderAuthenticated = "X-Authenticated"
	HeaderCompanyID     = "X-Company-Id"
	HeaderUserEmail     = "X-User-Email"
	HeaderUserLogin     = "X-User-Login"
	HeaderPermissions   = "X-User-Permissions"
)

const callerKey = "gateway_caller"

// RequireGateway rejects calls that did not pass through the gateway and
// builds the caller context from the trusted headers. The context is built
// exactly once per request and never re-derived downstream.
func RequireGateway() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(HeaderAuthenticated) == "" {
			c.AbortWithStatusJSON(http.StatusBadGateway,
				response.Error(http.StatusBadGateway, "request must come from gateway"))
			return
		}

		// 401 is reserved for a gateway-routed call that still lacks identity.
		if c.GetHeader(HeaderCompanyID) == "" || c.GetHeader(HeaderUserEmail) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				response.Error(http.StatusUnauthorized, "missing identity headers"))
			return
		}

		companyID, err := strconv.ParseInt(c.GetHeader(HeaderCompanyID), 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				response.Error(http.StatusBadRequest, "invalid "+HeaderCompanyID+" header"))
			return
		}

		c.Set(callerKey, permission.Caller{
			CompanyID:   companyID,
			Email:       c.GetHeader(HeaderUserEmail),
			Login:       c.GetHeader(HeaderUserLogin),
			Permissions: permission.ParseSet(c.GetHeader(HeaderPermissions)),
		})
		c.Next()
	}
}

// GetCaller returns the caller context stored by RequireGateway. The zero
// value carries an empty permission set and authorizes nothing.
func GetCaller(c *gin.Context) permission.Caller {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(permission.Caller); ok {
			return caller
		}
	}
	return permission.Caller{Permissions: permission.Set{}}
}
