package api

import (
	"net/http"

	"flexknot/domain/core"
	"flexknot/internal/errors"
)

// statusFor maps the likelihood error taxonomy onto HTTP statuses:
// malformed proposals are client errors, interpolator rejections are
// unprocessable, missing ledger rows are 404, anything else is internal.
func statusFor(err error) (int, string) {
	switch {
	case core.IsProposalError(err):
		return http.StatusBadRequest, errors.CodeBadProposal
	case core.IsNumericError(err):
		return http.StatusUnprocessableEntity, errors.CodeNumericFailure
	case core.IsNotFoundError(err):
		return http.StatusNotFound, errors.CodeNotFound
	case core.IsConfigError(err):
		return http.StatusBadRequest, errors.CodeConfigInvalid
	default:
		return http.StatusInternalServerError, errors.CodeInternalError
	}
}
