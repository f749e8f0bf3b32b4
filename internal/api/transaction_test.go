package api

import (
	"net/http"
	"net/url"
	"testing"

	"trading_dashboard/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withdrawForm(amount, coin, address string) url.Values {
	v := url.Values{}
	v.Set("amount", amount)
	v.Set("coin_name", coin)
	v.Set("address", address)
	return v
}

func TestWithdrawCreatesPendingRequestAndAlertsOps(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("Jane Doe", "jane@example.com", "user")

	w := env.request(http.MethodPost, "/dashboard/withdraw", withdrawForm("250", "bitcoin", "bc1qjane"), &user)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard/withdraw", w.Header().Get("Location"))

	var rows []domain.Withdrawal
	require.NoError(t, env.db.Where("user_id = ?", user.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "250", rows[0].Amount)
	assert.False(t, rows[0].Status)
	assert.Equal(t, fixedDate, rows[0].Date)

	require.Len(t, env.mail.sent, 1)
	assert.Equal(t, "ops@example.com", env.mail.sent[0].To)
	assert.Equal(t, "Client Withdraw Alert", env.mail.sent[0].Subject)
	assert.Contains(t, env.mail.sent[0].Body, `"jane@example.com"`)
	assert.Contains(t, env.mail.sent[0].Body, "bc1qjane")

	flash := env.lastFlash()
	assert.Equal(t, "success", flash.Kind)
	assert.Contains(t, flash.Message, "withdrawal request is processing")
}

func TestWithdrawDefaultCoinStillWritesRow(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("Jane Doe", "jane@example.com", "user")

	w := env.request(http.MethodPost, "/dashboard/withdraw", withdrawForm("250", "default", "bc1qjane"), &user)

	assert.Equal(t, http.StatusFound, w.Code)

	// The row is created before the coin check, so it exists even though
	// the user sees the "select a coin" error
	var count int64
	require.NoError(t, env.db.Model(&domain.Withdrawal{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	assert.Empty(t, env.mail.sent)
	flash := env.lastFlash()
	assert.Equal(t, "error", flash.Kind)
	assert.Equal(t, "Please select a coin name.", flash.Message)
}

func TestWithdrawMailFailureKeepsCommittedRow(t *testing.T) {
	env := newTestEnv(t)
	env.mail.fail = true
	user := env.createUser("Jane Doe", "jane@example.com", "user")

	env.request(http.MethodPost, "/dashboard/withdraw", withdrawForm("250", "bitcoin", "bc1qjane"), &user)

	// Delivery failed but the write is never rolled back
	var count int64
	require.NoError(t, env.db.Model(&domain.Withdrawal{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	flash := env.lastFlash()
	assert.Equal(t, "error", flash.Kind)
	assert.Equal(t, "Internal server error.", flash.Message)
}

func TestWithdrawValidationShortCircuits(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("Jane Doe", "jane@example.com", "user")

	v := url.Values{}
	v.Set("coin_name", "bitcoin")
	v.Set("address", "bc1qjane")
	env.request(http.MethodPost, "/dashboard/withdraw", v, &user)

	// The workflow never ran
	var count int64
	require.NoError(t, env.db.Model(&domain.Withdrawal{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, env.mail.sent)

	flash := env.lastFlash()
	assert.Equal(t, "error", flash.Kind)
	assert.Equal(t, "Please enter an amount to withdraw", flash.Message)
}

func TestDepositCreatesPendingClaim(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("Jane Doe", "jane@example.com", "user")

	v := url.Values{}
	v.Set("amount", "0.5")
	v.Set("address", "bc1qsource")
	w := env.request(http.MethodPost, "/dashboard/deposit", v, &user)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard/deposit", w.Header().Get("Location"))

	var rows []domain.Deposit
	require.NoError(t, env.db.Where("user_id = ?", user.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "0.5", rows[0].Amount)
	assert.Equal(t, "bc1qsource", rows[0].Address)
	assert.False(t, rows[0].Received)
	assert.Equal(t, fixedDate, rows[0].Date)

	// Deposits have no email side effect
	assert.Empty(t, env.mail.sent)
	flash := env.lastFlash()
	assert.Equal(t, "success", flash.Kind)
	assert.Contains(t, flash.Message, "verified the deposit")
}

func TestDepositValidationRejectsMissingAddress(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("Jane Doe", "jane@example.com", "user")

	v := url.Values{}
	v.Set("amount", "0.5")
	env.request(http.MethodPost, "/dashboard/deposit", v, &user)

	var count int64
	require.NoError(t, env.db.Model(&domain.Deposit{}).Count(&count).Error)
	assert.Zero(t, count)

	flash := env.lastFlash()
	assert.Equal(t, "error", flash.Kind)
}

func TestWithdrawRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(http.MethodPost, "/dashboard/withdraw", withdrawForm("250", "bitcoin", "bc1q"), nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/user/login", w.Header().Get("Location"))

	var count int64
	require.NoError(t, env.db.Model(&domain.Withdrawal{}).Count(&count).Error)
	assert.Zero(t, count)
}
