package middleware

import (
	"net/http"
	"strings"

	"github.com/anisgadi/roombooking/internal/models"
	"github.com/anisgadi/roombooking/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const userContextKey = "user"

// JWT authenticates the request and stores the loaded user in the context.
// Deactivated accounts are rejected even with a valid token.
func JWT(secret string, userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := authenticate(c, secret, userRepo)
			if err != nil {
				return err
			}
			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// OptionalJWT loads the user when a valid token is present and continues
// anonymously otherwise. Used on listings with role-based visibility.
func OptionalJWT(secret string, userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				return next(c)
			}
			user, err := authenticate(c, secret, userRepo)
			if err != nil {
				return err
			}
			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// RequireRoles allows the request through only for the given roles.
func RequireRoles(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
		}
	}
}

// CurrentUser returns the authenticated user, or nil for anonymous requests.
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}

func authenticate(c echo.Context, secret string, userRepo repository.UserRepository) (*models.User, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	tokenStr, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || tokenStr == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
	}

	user, err := userRepo.FindByID(c.Request().Context(), uint(sub))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
	}
	if !user.Active {
		return nil, echo.NewHTTPError(http.StatusForbidden, "account deactivated")
	}
	return user, nil
}
