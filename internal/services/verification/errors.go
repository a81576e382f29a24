package verification

import (
	"errors"

	apperrors "fraudshield/internal/errors"
)

var (
	ErrChallengeNotFound       = apperrors.ErrChallengeNotFound
	ErrChallengePending        = apperrors.ErrChallengePending
	ErrOtpMismatch             = apperrors.ErrOtpMismatch
	ErrVerificationNotRequired = errors.New("decision does not require verification")
)
