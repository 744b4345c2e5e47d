package httpadapter

import (
	"net/http"

	"github.com/kirillkom/docqa-client/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrMissingInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrPrecondition):
		return http.StatusConflict
	case domain.IsKind(err, domain.ErrUpload), domain.IsKind(err, domain.ErrQuery):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func errorKindName(err error) string {
	switch domain.KindOf(err) {
	case domain.ErrMissingInput:
		return "missing_input"
	case domain.ErrPrecondition:
		return "precondition"
	case domain.ErrUpload:
		return "upload_error"
	case domain.ErrQuery:
		return "query_error"
	default:
		return "internal"
	}
}
