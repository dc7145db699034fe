package auth

import (
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "github.com/eskalate/jobboard/internal/errors"
	"github.com/eskalate/jobboard/internal/model"
	"github.com/eskalate/jobboard/internal/repository"
)

// identityKey is where the resolved user is stored on the request context.
const identityKey = "user"

// Middleware authenticates a request via the Authorization bearer header or
// the token cookie, resolves the token to an existing user and attaches that
// identity to the request context. It has no side effects beyond that.
func Middleware(jwtService *JWTService, users repository.UserRepository) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  identityKey,
		TokenLookup: "header:Authorization:Bearer ,cookie:token",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := jwtService.ParseSessionToken(token)
			if err != nil {
				return nil, apperrors.ErrNotAuthorized
			}
			id, err := uuid.Parse(claims.UserID)
			if err != nil {
				return nil, apperrors.ErrNotAuthorized
			}
			user, err := users.FindByID(c.Request().Context(), id)
			if err != nil {
				return nil, apperrors.ErrNotAuthorized
			}
			return user, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return apperrors.ErrNotAuthorized
		},
	})
}

// RequireRole rejects authenticated users whose role is not in the allowed
// set. It must run after Middleware.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return apperrors.ErrNotAuthorized
			}
			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}
			return apperrors.ErrRoleNotAllowed
		}
	}
}

// CurrentUser returns the identity attached by Middleware, or nil.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(identityKey).(*model.User)
	return user
}
