package domain

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newAccount(number string, balance int64, owner string) *Account {
	return NewAccount(number, dec(balance), owner, "Savings", time.Now())
}

func assertBalance(t *testing.T, want int64, a *Account) {
	t.Helper()
	assert.True(t, a.GetBalance().Equal(dec(want)), "account %s: expected %d, got %s", a.AccountNumber(), want, a.GetBalance())
}

func TestNewAccount_Fields(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	a := NewAccount("123", dec(100), "John Doe", "Savings", created)

	assert.Equal(t, "123", a.AccountNumber())
	assert.Equal(t, "John Doe", a.Owner())
	assert.Equal(t, "Savings", a.AccountType())
	assert.Equal(t, created, a.CreatedDate())
	assertBalance(t, 100, a)
}

func TestAccount_Credit(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		want   int64
	}{
		{"positive amount increases balance", dec(50), 150},
		{"zero amount is ignored", decimal.Zero, 100},
		{"negative amount is ignored", dec(-50), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAccount("123", 100, "John Doe")

			a.Credit(tt.amount)

			assertBalance(t, tt.want, a)
		})
	}
}

func TestAccount_Credit_FractionalAmount(t *testing.T) {
	a := newAccount("123", 100, "John Doe")

	a.Credit(decimal.RequireFromString("0.10"))
	a.Credit(decimal.RequireFromString("0.20"))

	assert.Equal(t, "100.3", a.GetBalance().String())
}

func TestAccount_Debit(t *testing.T) {
	tests := []struct {
		name    string
		amount  decimal.Decimal
		want    int64
		wantErr error
	}{
		{"valid amount decreases balance", dec(50), 50, nil},
		{"whole balance empties account", dec(100), 0, nil},
		{"insufficient balance", dec(150), 100, ErrInsufficientFunds},
		{"zero amount is ignored", decimal.Zero, 100, nil},
		{"negative amount is ignored", dec(-50), 100, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAccount("123", 100, "John Doe")

			err := a.Debit(tt.amount)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assertBalance(t, tt.want, a)
		})
	}
}

func TestAccount_Transfer(t *testing.T) {
	tests := []struct {
		name     string
		from, to int64
		toOwner  string
		amount   decimal.Decimal
		wantFrom int64
		wantTo   int64
		wantErr  error
	}{
		{"valid amount", 100, 50, "Jane Doe", dec(50), 50, 100, nil},
		{"insufficient balance", 100, 50, "Jane Doe", dec(150), 100, 50, ErrInsufficientFunds},
		{"exceeds limit for different owners", 1000, 50, "Jane Doe", dec(600), 1000, 50, ErrTransferLimitExceeded},
		{"exactly the limit for different owners", 1000, 50, "Jane Doe", dec(500), 500, 550, nil},
		{"same owner is not capped", 1000, 50, "John Doe", dec(600), 400, 650, nil},
		{"same owner still needs funds", 100, 50, "John Doe", dec(600), 100, 50, ErrInsufficientFunds},
		{"funds are checked before the limit", 100, 50, "Jane Doe", dec(600), 100, 50, ErrInsufficientFunds},
		{"negative amount is ignored", 100, 50, "Jane Doe", dec(-50), 100, 50, nil},
		{"zero amount is ignored", 100, 50, "Jane Doe", decimal.Zero, 100, 50, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from := newAccount("123", tt.from, "John Doe")
			to := newAccount("456", tt.to, tt.toOwner)

			err := from.Transfer(to, tt.amount)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assertBalance(t, tt.wantFrom, from)
			assertBalance(t, tt.wantTo, to)
		})
	}
}

func TestAccount_Transfer_SameAccount(t *testing.T) {
	a := newAccount("123", 100, "John Doe")

	err := a.Transfer(a, dec(50))

	assert.ErrorIs(t, err, ErrSameAccount)
	assertBalance(t, 100, a)
	assert.NoError(t, a.Transfer(a, dec(-50)))
}

func TestAccount_Transfer_NilTarget(t *testing.T) {
	a := newAccount("123", 100, "John Doe")

	assert.ErrorIs(t, a.Transfer(nil, dec(50)), ErrAccountRequired)
	assertBalance(t, 100, a)
}

func TestAccount_GetBalance(t *testing.T) {
	a := newAccount("123", 100, "John Doe")
	assertBalance(t, 100, a)

	a.Credit(dec(25))
	require.ErrorIs(t, a.Debit(dec(500)), ErrInsufficientFunds)
	require.NoError(t, a.Debit(dec(5)))

	assertBalance(t, 120, a)
}

func TestAccount_CalculateInterest(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		rate    float64
		want    string
	}{
		{"five percent", 1000, 0.05, "50"},
		{"zero balance", 0, 0.05, "0"},
		{"zero rate", 1000, 0, "0"},
		{"negative rate is not rejected", 1000, -0.01, "-10"},
		{"fractional result is not rounded", 333, 0.015, "4.995"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAccount("123", tt.balance, "John Doe")

			got := a.CalculateInterest(tt.rate)

			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "expected %s, got %s", tt.want, got)
			assertBalance(t, tt.balance, a)
		})
	}
}

func TestAccount_ConcurrentOperationsConserveTotal(t *testing.T) {
	a := newAccount("A", 10000, "John Doe")
	b := newAccount("B", 10000, "John Doe")
	c := newAccount("C", 10000, "Jane Doe")
	accounts := []*Account{a, b, c}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			_ = a.Transfer(b, dec(7))
			_ = b.Transfer(a, dec(3))
		}()
		go func() {
			defer wg.Done()
			_ = b.Transfer(c, dec(11))
			_ = c.Transfer(a, dec(13))
		}()
		go func() {
			defer wg.Done()
			c.Credit(dec(1))
			_ = c.Debit(dec(1))
		}()
	}
	wg.Wait()

	total := decimal.Zero
	for _, acc := range accounts {
		require.False(t, acc.GetBalance().IsNegative())
		total = total.Add(acc.GetBalance())
	}
	assert.True(t, total.Equal(dec(30000)), "expected total 30000, got %s", total)
}
