package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/vendemas/pedidos-api/internal/core/domain"
)

// Context keys set by Auth.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxRol    = "rol"
)

// Auth validates the bearer JWT and injects its claims into the echo context.
// A missing header is rejected with 403, any other failure with 401.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusForbidden, domain.ErrMissingToken.Error()).
					SetInternal(domain.ErrMissingToken)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return invalidToken()
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return invalidToken()
			}

			id, _ := claims["id"].(string)
			if id == "" {
				return invalidToken()
			}

			c.Set(CtxUserID, id)
			c.Set(CtxEmail, claims["email"])
			c.Set(CtxRol, claims["rol"])

			req := c.Request()
			c.SetRequest(req.WithContext(domain.WithActor(req.Context(), id)))

			return next(c)
		}
	}
}

func invalidToken() error {
	return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrInvalidToken.Error()).
		SetInternal(domain.ErrInvalidToken)
}
