package cache

import (
	"context"
	"errors"

	"fraudshield/internal/services/verification"
)

// OTPStore keeps pending OTP challenges in Redis so several dashboard
// replicas share them. It satisfies verification.Store.
type OTPStore struct {
	cache *CacheService
}

func NewOTPStore(cache *CacheService) *OTPStore {
	return &OTPStore{cache: cache}
}

func otpKey(sessionID, transactionID string) string {
	return GenerateKey(OTPKeyPrefix, sessionID, transactionID)
}

func (s *OTPStore) Create(ctx context.Context, c *verification.Challenge) error {
	ok, err := s.cache.SetIfAbsent(ctx, otpKey(c.SessionID, c.TransactionID), c)
	if err != nil {
		return err
	}
	if !ok {
		return verification.ErrChallengePending
	}
	return nil
}

func (s *OTPStore) Get(ctx context.Context, sessionID, transactionID string) (*verification.Challenge, error) {
	var c verification.Challenge
	if err := s.cache.Get(ctx, otpKey(sessionID, transactionID), &c); err != nil {
		return nil, mapMiss(err)
	}
	return &c, nil
}

func (s *OTPStore) Take(ctx context.Context, sessionID, transactionID string) (*verification.Challenge, error) {
	var c verification.Challenge
	if err := s.cache.Take(ctx, otpKey(sessionID, transactionID), &c); err != nil {
		return nil, mapMiss(err)
	}
	return &c, nil
}

func mapMiss(err error) error {
	if errors.Is(err, ErrCacheMiss) {
		return verification.ErrChallengeNotFound
	}
	return err
}
