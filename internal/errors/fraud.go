package errors

var (
	ErrSchemaMismatch = &DomainError{
		Code:    "SCHEMA_MISMATCH",
		Message: "transaction does not match the model feature schema",
	}
	ErrServiceUnreachable = &DomainError{
		Code:    "SERVICE_UNREACHABLE",
		Message: "API not reachable. Make sure the scoring service is running",
	}
	ErrOtpMismatch = &DomainError{
		Code:    "OTP_MISMATCH",
		Message: "invalid OTP, transaction blocked for security reasons",
	}
	ErrChallengeNotFound = &DomainError{
		Code:    "CHALLENGE_NOT_FOUND",
		Message: "no verification pending for this transaction",
	}
	ErrChallengePending = &DomainError{
		Code:    "CHALLENGE_PENDING",
		Message: "a verification code is already pending for this transaction",
	}
	ErrValidationFailed = &DomainError{
		Code:    "VALIDATION_FAILED",
		Message: "invalid transaction input",
	}
)
