package verification

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"fraudshield/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendOTP(ctx context.Context, c *Challenge, code string) error {
	args := m.Called(ctx, c, code)
	return args.Error(0)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordOTPIssued(d models.Decision) { m.Called(d) }
func (m *MockMetrics) RecordOTPResult(s State)           { m.Called(s) }

func fixedCode(code string) CodeGenerator {
	return func() (string, error) { return code, nil }
}

func newWorkflow(notifier Notifier, metrics MetricsCollector) (*Workflow, *MemoryStore) {
	store := NewMemoryStore()
	w := NewWorkflow(store, notifier, metrics, Config{HashCost: bcrypt.MinCost})
	return w, store
}

func testTx(id string) *models.Transaction {
	return &models.Transaction{
		ID:               id,
		TransactionInput: models.TransactionInput{Amount: 900, Country: "Germany"},
	}
}

func scored(d models.Decision) models.ScoreResult {
	return models.ScoreResult{FraudProbability: 0.5, RiskScore: 50, Decision: d}
}

func TestGenerateCodeRange(t *testing.T) {
	for i := 0; i < 500; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestWorkflow_VerifySuccess(t *testing.T) {
	notifier := new(MockNotifier)
	metrics := new(MockMetrics)
	w, store := newWorkflow(notifier, metrics)
	w.WithCodeGenerator(fixedCode("123456"))

	notifier.On("SendOTP", mock.Anything, mock.AnythingOfType("*verification.Challenge"), "123456").Return(nil)
	metrics.On("RecordOTPIssued", models.DecisionVerify).Return()
	metrics.On("RecordOTPResult", StateVerified).Return()

	issued, err := w.Issue(context.Background(), testTx("tx-1"), "s1", scored(models.DecisionVerify))
	require.NoError(t, err)
	assert.Equal(t, "123456", issued.Code)
	assert.Equal(t, StateCodeIssued, issued.Challenge.State)
	assert.NotContains(t, string(issued.Challenge.CodeHash), "123456")

	pending, err := w.Pending(context.Background(), "s1", "tx-1")
	require.NoError(t, err)
	assert.Equal(t, 900.0, pending.Amount)
	assert.Equal(t, 50, pending.Score.RiskScore)
	require.NotNil(t, pending.Transaction)
	assert.Equal(t, "tx-1", pending.Transaction.ID)

	out, err := w.Verify(context.Background(), "s1", "tx-1", "123456")
	require.NoError(t, err)
	assert.Equal(t, StateVerified, out.State)
	assert.Equal(t, models.DecisionApprovedAfterOTP, out.FinalDecision)
	assert.Equal(t, 0, store.Len())

	notifier.AssertExpectations(t)
	metrics.AssertExpectations(t)
}

func TestWorkflow_VerifyMismatchIsTerminal(t *testing.T) {
	metrics := new(MockMetrics)
	w, store := newWorkflow(nil, metrics)
	w.WithCodeGenerator(fixedCode("654321"))

	metrics.On("RecordOTPIssued", models.DecisionBlock).Return()
	metrics.On("RecordOTPResult", StateFailed).Return()

	_, err := w.Issue(context.Background(), testTx("tx-2"), "s1", scored(models.DecisionBlock))
	require.NoError(t, err)

	out, err := w.Verify(context.Background(), "s1", "tx-2", "000000")
	assert.ErrorIs(t, err, ErrOtpMismatch)
	require.NotNil(t, out)
	assert.Equal(t, StateFailed, out.State)
	assert.Equal(t, models.DecisionBlock, out.FinalDecision)
	assert.Equal(t, 0, store.Len())

	// no second attempt: the slot is gone
	_, err = w.Verify(context.Background(), "s1", "tx-2", "654321")
	assert.ErrorIs(t, err, ErrChallengeNotFound)

	metrics.AssertExpectations(t)
}

func TestWorkflow_CommitFailureRestoresChallenge(t *testing.T) {
	metrics := new(MockMetrics)
	w, store := newWorkflow(nil, metrics)
	w.WithCodeGenerator(fixedCode("123456"))

	metrics.On("RecordOTPIssued", models.DecisionVerify).Return()
	metrics.On("RecordOTPResult", StateVerified).Return()

	_, err := w.Issue(context.Background(), testTx("tx-3"), "s1", scored(models.DecisionVerify))
	require.NoError(t, err)

	commitErr := errors.New("ledger down")
	out, err := w.VerifyAndCommit(context.Background(), "s1", "tx-3", "123456",
		func(ctx context.Context, out *Outcome) error {
			assert.Equal(t, models.DecisionApprovedAfterOTP, out.FinalDecision)
			return commitErr
		})
	assert.ErrorIs(t, err, commitErr)
	assert.Nil(t, out)

	pending, err := w.Pending(context.Background(), "s1", "tx-3")
	require.NoError(t, err)
	assert.Equal(t, StateCodeIssued, pending.State)
	assert.Equal(t, 1, store.Len())
	metrics.AssertNotCalled(t, "RecordOTPResult", mock.Anything)

	// retry once the commit succeeds
	var committed *Outcome
	out, err = w.VerifyAndCommit(context.Background(), "s1", "tx-3", "123456",
		func(ctx context.Context, out *Outcome) error {
			committed = out
			return nil
		})
	require.NoError(t, err)
	assert.Same(t, committed, out)
	assert.Equal(t, StateVerified, out.State)
	assert.Equal(t, 0, store.Len())
	metrics.AssertExpectations(t)
}

func TestWorkflow_CommitSeesMismatch(t *testing.T) {
	w, store := newWorkflow(nil, nil)
	w.WithCodeGenerator(fixedCode("123456"))

	_, err := w.Issue(context.Background(), testTx("tx-4"), "s1", scored(models.DecisionBlock))
	require.NoError(t, err)

	var final models.Decision
	out, err := w.VerifyAndCommit(context.Background(), "s1", "tx-4", "999999",
		func(ctx context.Context, out *Outcome) error {
			final = out.FinalDecision
			return nil
		})
	assert.ErrorIs(t, err, ErrOtpMismatch)
	require.NotNil(t, out)
	assert.Equal(t, models.DecisionBlock, final)
	assert.Equal(t, StateFailed, out.Challenge.State)
	assert.Equal(t, 0, store.Len())
}

func TestWorkflow_IssueRules(t *testing.T) {
	w, _ := newWorkflow(nil, nil)
	ctx := context.Background()

	_, err := w.Issue(ctx, testTx("tx-a"), "s1", scored(models.DecisionApprove))
	assert.ErrorIs(t, err, ErrVerificationNotRequired)

	_, err = w.Issue(ctx, testTx("tx-b"), "s1", scored(models.DecisionVerify))
	require.NoError(t, err)
	_, err = w.Issue(ctx, testTx("tx-b"), "s1", scored(models.DecisionVerify))
	assert.ErrorIs(t, err, ErrChallengePending)

	// a different session or transaction gets its own slot
	_, err = w.Issue(ctx, testTx("tx-b"), "s2", scored(models.DecisionVerify))
	assert.NoError(t, err)
	_, err = w.Issue(ctx, testTx("tx-c"), "s1", scored(models.DecisionBlock))
	assert.NoError(t, err)
}

func TestWorkflow_SessionsAreIsolated(t *testing.T) {
	w, _ := newWorkflow(nil, nil)
	ctx := context.Background()

	codes := map[string]string{"s1": "111111", "s2": "222222"}
	for sid, code := range codes {
		w.WithCodeGenerator(fixedCode(code))
		_, err := w.Issue(ctx, testTx("shared-id"), sid, scored(models.DecisionVerify))
		require.NoError(t, err)
	}

	_, err := w.Verify(ctx, "s1", "shared-id", "222222")
	assert.ErrorIs(t, err, ErrOtpMismatch)

	out, err := w.Verify(ctx, "s2", "shared-id", "222222")
	require.NoError(t, err)
	assert.Equal(t, models.DecisionApprovedAfterOTP, out.FinalDecision)
}

func TestWorkflow_NotifierFailureStillIssues(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("SendOTP", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("sms gateway down"))
	w, store := newWorkflow(notifier, nil)

	issued, err := w.Issue(context.Background(), testTx("tx-n"), "s1", scored(models.DecisionVerify))
	require.NoError(t, err)
	assert.Len(t, issued.Code, 6)
	assert.Equal(t, 1, store.Len())
}

func TestWorkflow_GeneratorError(t *testing.T) {
	w, store := newWorkflow(nil, nil)
	w.WithCodeGenerator(func() (string, error) { return "", errors.New("entropy") })

	_, err := w.Issue(context.Background(), testTx("tx-e"), "s1", scored(models.DecisionVerify))
	assert.Error(t, err)
	assert.Equal(t, 0, store.Len())
}

func TestWorkflow_EmptyCodeFails(t *testing.T) {
	w, _ := newWorkflow(nil, nil)
	_, err := w.Issue(context.Background(), testTx("tx-z"), "s1", scored(models.DecisionVerify))
	require.NoError(t, err)

	out, err := w.Verify(context.Background(), "s1", "tx-z", "")
	assert.ErrorIs(t, err, ErrOtpMismatch)
	assert.Equal(t, StateFailed, out.State)
}

func TestMemoryStore_ConcurrentTake(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &Challenge{SessionID: "s", TransactionID: "t"}))

	var wg sync.WaitGroup
	var mu sync.Mutex
	taken := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Take(ctx, "s", "t"); err == nil {
				mu.Lock()
				taken++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, taken)
}
