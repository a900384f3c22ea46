package middleware

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/deppfellow/social-scores/internal/errs"
	"github.com/deppfellow/social-scores/internal/model"
	"github.com/deppfellow/social-scores/internal/server"
	"github.com/labstack/echo/v4"
)

// Authenticator resolves a bearer token to its supervisor.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*model.Supervisor, error)
}

type AuthMiddleware struct {
	server        *server.Server
	authenticator Authenticator
}

func NewAuthMiddleware(s *server.Server, authenticator Authenticator) *AuthMiddleware {
	return &AuthMiddleware{
		server:        s,
		authenticator: authenticator,
	}
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RequireAuth rejects requests without a valid bearer token and stores the
// authenticated supervisor in the context.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		logger := GetLogger(c)

		token, ok := bearerToken(c)
		if !ok {
			logger.Warn().
				Str("function", "RequireAuth").
				Dur("duration", time.Since(start)).
				Msg("missing bearer token")
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			return errs.NewUnauthorizedError("Not authenticated", true)
		}

		sup, err := auth.authenticator.Authenticate(c.Request().Context(), token)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("function", "RequireAuth").
				Dur("duration", time.Since(start)).
				Msg("could not authenticate bearer token")
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			return err
		}

		setSupervisor(c, sup)

		logger.Debug().
			Str("function", "RequireAuth").
			Int64("supervisor_id", sup.ID).
			Dur("duration", time.Since(start)).
			Msg("supervisor authenticated successfully")

		return next(c)
	}
}

// RequireAdmin must run after RequireAuth.
func (auth *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sup := GetSupervisor(c)
		if sup == nil {
			return errs.NewUnauthorizedError("Not authenticated", true)
		}
		if !sup.IsAdmin {
			GetLogger(c).Warn().
				Str("function", "RequireAdmin").
				Int64("supervisor_id", sup.ID).
				Msg("admin privileges required")
			return errs.NewForbiddenError("Admin privileges required", true)
		}
		return next(c)
	}
}

// setSupervisor stores sup and adds its id to the request logger.
func setSupervisor(c echo.Context, sup *model.Supervisor) {
	userID := strconv.FormatInt(sup.ID, 10)
	role := RoleSupervisor
	if sup.IsAdmin {
		role = RoleAdmin
	}

	c.Set(SupervisorKey, sup)
	c.Set(UserIDKey, userID)
	c.Set(UserRoleKey, role)

	enriched := GetLogger(c).With().
		Str("user_id", userID).
		Str("user_role", role).
		Logger()
	setLogger(c, &enriched)
}
