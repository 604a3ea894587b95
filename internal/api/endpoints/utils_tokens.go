package endpoints

import (
	"fmt"
	"net/http"
	"strings"

	authsvc "elearn-backend/internal/service/auth"
)

func ExtractTokenFromHeaders(r *http.Request) string {
	tokenString := r.Header.Get("Authorization")

	if tokenString == "" || !strings.HasPrefix(tokenString, "Bearer ") {
		return ""
	}

	return strings.TrimSpace(tokenString[len("Bearer "):])
}

func identityFromRequest(r *http.Request) (authsvc.Identity, *HTTPError) {
	token := ExtractTokenFromHeaders(r)
	if token == "" {
		return authsvc.Identity{}, &HTTPError{
			StatusCode: http.StatusUnauthorized,
			Message:    "Unauthorized",
			ErrorLog:   fmt.Errorf("missing bearer token"),
		}
	}

	identity, err := authsvc.IdentityFromToken(token)
	if err != nil {
		return authsvc.Identity{}, &HTTPError{
			StatusCode: http.StatusUnauthorized,
			Message:    "Unauthorized",
			ErrorLog:   fmt.Errorf("decode token: %w", err),
		}
	}

	return identity, nil
}

// identityWithRole decodes the caller and requires an exact role match.
func identityWithRole(r *http.Request, role string) (authsvc.Identity, *HTTPError) {
	identity, httpErr := identityFromRequest(r)
	if httpErr != nil {
		return authsvc.Identity{}, httpErr
	}

	if identity.Role != role {
		return authsvc.Identity{}, &HTTPError{
			StatusCode: http.StatusForbidden,
			Message:    fmt.Sprintf("Only a %s can do this!", role),
			ErrorLog:   fmt.Errorf("role %q attempted %s-only action", identity.Role, role),
		}
	}

	return identity, nil
}
