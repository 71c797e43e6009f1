package secureview

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/afrireads/bookgate/internal/errors"
	"github.com/afrireads/bookgate/internal/httputil"
)

// ReaderAuthMiddleware authenticates readers via the session JWT issued by
// the external auth service. Tokens are HS256-signed with the shared secret;
// the subject claim carries the reader's user ID. The resolved Principal is
// stored in the request context for handlers via GetPrincipal().
func ReaderAuthMiddleware(jwtSecret string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("reader authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("reader authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		tokenString := authHeader[len(bearerPrefix):]

		principal, err := parseReaderToken(tokenString, jwtSecret)
		if err != nil {
			logger.Debug("reader authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		ctx := WithPrincipal(c.Request.Context(), principal)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// parseReaderToken verifies the JWT signature and expiry and extracts the
// reader principal from the sub and name claims.
func parseReaderToken(tokenString, jwtSecret string) (*Principal, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return nil, fmt.Errorf("missing subject claim")
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return nil, fmt.Errorf("subject claim is not a user ID: %w", err)
	}

	name, _ := claims["name"].(string)

	return &Principal{
		UserID: userID,
		Name:   name,
	}, nil
}
