package handlers

import (
	"errors"
	"log"

	apperrors "fraudshield/internal/errors"
	"fraudshield/internal/services/scoring"
	"fraudshield/internal/utils/response"
	"fraudshield/internal/validation"

	"github.com/gofiber/fiber/v2"
)

var statusByCode = map[string]int{
	apperrors.ErrSchemaMismatch.Code:     fiber.StatusUnprocessableEntity,
	apperrors.ErrServiceUnreachable.Code: fiber.StatusBadGateway,
	apperrors.ErrOtpMismatch.Code:        fiber.StatusForbidden,
	apperrors.ErrChallengeNotFound.Code:  fiber.StatusNotFound,
	apperrors.ErrChallengePending.Code:   fiber.StatusConflict,
	apperrors.ErrValidationFailed.Code:   fiber.StatusBadRequest,
}

// handleError writes the response for a failed request.
func handleError(c *fiber.Ctx, err error) error {
	var schemaErr *scoring.SchemaError
	if errors.As(err, &schemaErr) {
		return response.CodedError(c, fiber.StatusUnprocessableEntity, apperrors.ErrSchemaMismatch.Code, schemaErr.Error(), fiber.Map{
			"missing": nonNil(schemaErr.Missing),
			"invalid": nonNil(schemaErr.Invalid),
		})
	}

	var validationErr *validation.Error
	if errors.As(err, &validationErr) {
		return response.CodedError(c, fiber.StatusBadRequest, apperrors.ErrValidationFailed.Code, validationErr.Error(), fiber.Map{
			"fields": validationErr.Fields,
		})
	}

	code := apperrors.CodeOf(err)
	if status, ok := statusByCode[code]; ok {
		return response.CodedError(c, status, code, err.Error(), nil)
	}

	log.Printf("⚠️ Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return response.ServerError(c, "internal server error")
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
