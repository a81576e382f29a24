package validation

import (
	"fraudshield/internal/models"
)

// TransactionInput validates the dashboard sidebar fields
func (v *Validator) TransactionInput(in *models.TransactionInput) {
	v.Positive("amount", in.Amount)
	v.Range("amount", in.Amount, MinTransactionAmount, MaxTransactionAmount)
	v.OneOf("country", in.Country, models.Countries)
	v.OneOf("channel", in.Channel, models.Channels)
	v.OneOf("card_type", in.CardType, models.CardTypes)
}

// OTP validates the shape of a submitted code. Shape errors are reported
// separately from mismatches so typos in the form are not terminal.
func (v *Validator) OTP(code string) {
	v.Required("otp", code)
	v.Check(len(code) <= OTPLength, "otp", "must be at most 6 characters")
}

// ValidateTransactionInput is a shortcut for handlers and services.
func ValidateTransactionInput(in *models.TransactionInput) error {
	v := New()
	v.TransactionInput(in)
	return v.Err()
}
