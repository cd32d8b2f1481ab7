package users

import (
	"context"
	"errors"
	"testing"

	"questboard/src/core/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransferrer struct {
	calls     int
	gotAmount float64
	gotTo     string
	signature string
	err       error
}

func (f *fakeTransferrer) Transfer(ctx context.Context, amount float64, to string) (string, error) {
	f.calls++
	f.gotAmount = amount
	f.gotTo = to
	return f.signature, f.err
}

func TestSendWithdrawalRejectsEmptyBalance(t *testing.T) {
	fake := &fakeTransferrer{signature: "0xabc"}
	user := &models.User{ID: uuid.New(), Username: "alice", Balance: 0}

	_, _, err := sendWithdrawal(context.Background(), fake, user, "0xdeadbeef")

	require.ErrorIs(t, err, errNothingToWithdraw)
	assert.Equal(t, 0, fake.calls, "the wallet must not be called with nothing to withdraw")
}

func TestSendWithdrawalTransfersFullBalance(t *testing.T) {
	fake := &fakeTransferrer{signature: "0xabc"}
	user := &models.User{ID: uuid.New(), Username: "alice", Balance: 47.5}

	signature, amount, err := sendWithdrawal(context.Background(), fake, user, "0xdeadbeef")

	require.NoError(t, err)
	assert.Equal(t, "0xabc", signature)
	assert.Equal(t, 47.5, amount)
	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, 47.5, fake.gotAmount)
	assert.Equal(t, "0xdeadbeef", fake.gotTo)
}

func TestSendWithdrawalPropagatesWalletFailure(t *testing.T) {
	walletErr := errors.New("insufficient funds for transfer and fees")
	fake := &fakeTransferrer{err: walletErr}
	user := &models.User{ID: uuid.New(), Username: "alice", Balance: 12}

	_, _, err := sendWithdrawal(context.Background(), fake, user, "0xdeadbeef")

	require.ErrorIs(t, err, walletErr)
	// The caller only zeroes the balance on success; nothing here mutated it.
	assert.Equal(t, 12.0, user.Balance)
}
