package creditform

import (
	"errors"
	"fmt"
)

var ErrUnknownField = errors.New("unknown_field")

// Application is the record bound to the form. Every value is held as the
// string the user entered, numeric fields included; the scoring backend does
// its own parsing. Field order matches the JSON body sent for scoring.
//
// The validate tags restate the browser's required/type constraints and are
// only checked where no browser sits in front of the form (see
// CheckConstraints).
type Application struct {
	User                   string `json:"user" validate:"required,email"`
	Name                   string `json:"name" validate:"required"`
	Occupation             string `json:"occupation" validate:"required"`
	DelayFromDueDate       string `json:"delay_from_due_date" validate:"required"`
	CreditMix              string `json:"credit_mix" validate:"required,oneof=Good Standard Bad"`
	PaymentOfMinimumAmount string `json:"payment_of_minimum_amount" validate:"required,oneof=Yes No"`
	PaymentBehaviour       string `json:"payment_behaviour" validate:"required,oneof=low_spend_small_value_payments low_spend_medium_value_payments low_spend_large_value_payments high_spend_small_value_payments high_spend_medium_value_payments high_spend_large_value_payments"`
	ChangedCreditLimit     string `json:"changed_credit_limit" validate:"required,oneof=Yes No"`
	Age                    string `json:"age" validate:"required,htmlnumber=1"`
	AnnualIncome           string `json:"annual_income" validate:"required,htmlnumber=0.01"`
	MonthlyInHandSalary    string `json:"monthly_in_hand_salary" validate:"required,htmlnumber=0.01"`
	NumberOfBankAccounts   string `json:"number_of_bank_accounts" validate:"required,htmlnumber=1"`
	NumberOfCreditCards    string `json:"number_of_credit_cards" validate:"required,htmlnumber=1"`
	InterestRate           string `json:"interest_rate" validate:"required,htmlnumber=0.01"`
	NumberOfLoans          string `json:"number_of_loans" validate:"required,htmlnumber=1"`
	NumberOfDelayedPayment string `json:"number_of_delayed_payment" validate:"required,htmlnumber=1"`
	NumCreditInquiries     string `json:"num_credit_inquiries" validate:"required,htmlnumber=1"`
	OutstandingDebt        string `json:"outstanding_debt" validate:"required,htmlnumber=0.01"`
	CreditUtilizationRatio string `json:"credit_utilization_ratio" validate:"required,htmlnumber=0.01"`
	TotalEMIPerMonth       string `json:"total_emi_per_month" validate:"required,htmlnumber=0.01"`
	AmountInvestedMonthly  string `json:"amount_invested_monthly" validate:"required,htmlnumber=0.01"`
	MonthlyBalance         string `json:"monthly_balance" validate:"required,htmlnumber=0.01"`
}

// With returns a copy of a with only the named field replaced.
func (a Application) With(name FieldName, value string) (Application, error) {
	p := a.field(name)
	if p == nil {
		return a, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	*p = value
	return a, nil
}

// Get returns the value of the named field.
func (a Application) Get(name FieldName) (string, error) {
	p := a.field(name)
	if p == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return *p, nil
}

// IsEmpty reports whether every field is the empty string.
func (a Application) IsEmpty() bool {
	return a == Application{}
}

// Values returns the record keyed by field name.
func (a Application) Values() map[FieldName]string {
	out := make(map[FieldName]string, len(FieldSpecs))
	for _, spec := range FieldSpecs {
		out[spec.Name] = *a.field(spec.Name)
	}
	return out
}

func (a *Application) field(name FieldName) *string {
	switch name {
	case FieldUser:
		return &a.User
	case FieldApplicantName:
		return &a.Name
	case FieldOccupation:
		return &a.Occupation
	case FieldDelayFromDueDate:
		return &a.DelayFromDueDate
	case FieldCreditMix:
		return &a.CreditMix
	case FieldPaymentOfMinimumAmount:
		return &a.PaymentOfMinimumAmount
	case FieldPaymentBehaviour:
		return &a.PaymentBehaviour
	case FieldChangedCreditLimit:
		return &a.ChangedCreditLimit
	case FieldAge:
		return &a.Age
	case FieldAnnualIncome:
		return &a.AnnualIncome
	case FieldMonthlyInHandSalary:
		return &a.MonthlyInHandSalary
	case FieldNumberOfBankAccounts:
		return &a.NumberOfBankAccounts
	case FieldNumberOfCreditCards:
		return &a.NumberOfCreditCards
	case FieldInterestRate:
		return &a.InterestRate
	case FieldNumberOfLoans:
		return &a.NumberOfLoans
	case FieldNumberOfDelayedPayment:
		return &a.NumberOfDelayedPayment
	case FieldNumCreditInquiries:
		return &a.NumCreditInquiries
	case FieldOutstandingDebt:
		return &a.OutstandingDebt
	case FieldCreditUtilizationRatio:
		return &a.CreditUtilizationRatio
	case FieldTotalEMIPerMonth:
		return &a.TotalEMIPerMonth
	case FieldAmountInvestedMonthly:
		return &a.AmountInvestedMonthly
	case FieldMonthlyBalance:
		return &a.MonthlyBalance
	}
	return nil
}
