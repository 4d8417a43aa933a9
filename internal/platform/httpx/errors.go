package httpx

import (
	"errors"
	"net/http"

	"github.com/brightcart/brightcart/internal/authz"
)

// RespondError maps engine errors to RFC7807 responses. Denials, missing
// resources and validation failures are surfaced verbatim so the caller can
// see why the request was rejected; only unknown errors collapse to a bare
// 500.
func RespondError(w http.ResponseWriter, err error) {
	var authzErr *authz.Error
	if errors.As(err, &authzErr) {
		status, title := statusForKind(authzErr.Kind)
		JSON(w, status, ProblemDetail{
			Title:  title,
			Status: status,
			Detail: authzErr.Message,
			Kind:   string(authzErr.Kind),
		})
		return
	}
	Problem(w, http.StatusInternalServerError, "Internal Error", "")
}

func statusForKind(kind authz.Kind) (int, string) {
	switch kind {
	case authz.KindUnauthenticated:
		return http.StatusUnauthorized, "Unauthorized"
	case authz.KindPermissionDenied:
		return http.StatusForbidden, "Forbidden"
	case authz.KindNotFound:
		return http.StatusNotFound, "Not Found"
	case authz.KindValidation:
		return http.StatusBadRequest, "Validation Failed"
	case authz.KindStoreUnavailable:
		return http.StatusServiceUnavailable, "Store Unavailable"
	default:
		return http.StatusInternalServerError, "Internal Error"
	}
}
