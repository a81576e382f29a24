package validation

const (
	// Amount limits for simulated transactions
	MinTransactionAmount = 1.0
	MaxTransactionAmount = 10000000.0

	// OTP codes are six digits
	OTPLength = 6
)
