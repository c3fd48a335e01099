package script

import (
	"strconv"
	"time"

	"bank_account/internal/domain"
	"bank_account/pkg/validator"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// Scenario is a set of accounts to open followed by the steps to run
// against them, in order.
type Scenario struct {
	Accounts []AccountSpec `json:"accounts"`
	Steps    []StepSpec    `json:"steps"`
}

type AccountSpec struct {
	Number         string          `json:"number"`
	Owner          string          `json:"owner"`
	Type           string          `json:"type"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	CreatedAt      time.Time       `json:"created_at"`
}

type StepSpec struct {
	Type        domain.OperationType `json:"type"`
	Account     string               `json:"account"`
	To          string               `json:"to,omitempty"`
	Amount      decimal.Decimal      `json:"amount"`
	Rate        float64              `json:"rate,omitempty"`
	Description string               `json:"description,omitempty"`
}

func (s Scenario) Validate() error {
	err := validation.ValidateStruct(&s,
		validation.Field(&s.Accounts, validation.Required, validation.By(func(interface{}) error {
			return validator.UniqueNumbers(s.accountNumbers())
		})),
		validation.Field(&s.Steps),
	)
	if err != nil {
		return err
	}
	return s.validateReferences()
}

func (s Scenario) accountNumbers() []string {
	numbers := make([]string, 0, len(s.Accounts))
	for _, a := range s.Accounts {
		numbers = append(numbers, a.Number)
	}
	return numbers
}

// validateReferences checks that every step names accounts opened by the scenario.
func (s Scenario) validateReferences() error {
	declared := make(map[string]struct{}, len(s.Accounts))
	for _, n := range s.accountNumbers() {
		declared[n] = struct{}{}
	}

	errs := validation.Errors{}
	for i := range s.Steps {
		step := s.Steps[i]
		err := validation.ValidateStruct(&step,
			validation.Field(&step.Account, validator.DeclaredAccount(declared)),
			validation.Field(&step.To, validator.DeclaredAccount(declared)),
		)
		if err != nil {
			errs[strconv.Itoa(i)] = err
		}
	}
	if len(errs) > 0 {
		return validation.Errors{"steps": errs}
	}
	return nil
}

func (a AccountSpec) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Number, validation.Required),
		validation.Field(&a.Owner, validation.Required),
		validation.Field(&a.Type, validation.Required),
		validation.Field(&a.InitialBalance, validator.NonNegative()),
	)
}

func (s StepSpec) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Type, validation.Required, validator.OperationType()),
		validation.Field(&s.Account, validation.Required),
		validation.Field(&s.To, validation.When(s.Type == domain.OpTransfer, validation.Required)),
	)
}
