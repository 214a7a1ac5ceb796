package creditform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func violationsOf(t *testing.T, err error) map[string]Violation {
	t.Helper()
	var ce *ConstraintError
	require.True(t, errors.As(err, &ce), "expected *ConstraintError, got %v", err)
	out := make(map[string]Violation, len(ce.Violations))
	for _, v := range ce.Violations {
		out[v.Field] = v
	}
	return out
}

func TestCheckConstraintsAcceptsCompleteApplication(t *testing.T) {
	require.NoError(t, CheckConstraints(fullApplication()))
}

func TestCheckConstraintsEmptyApplication(t *testing.T) {
	got := violationsOf(t, CheckConstraints(Application{}))
	require.Len(t, got, len(FieldSpecs))
	for _, spec := range FieldSpecs {
		v, ok := got[string(spec.Name)]
		require.True(t, ok, "missing violation for %s", spec.Name)
		require.Equal(t, "validation_required", v.Code)
		require.Equal(t, "This field is required.", v.Message)
	}
}

func TestCheckConstraintsTypes(t *testing.T) {
	cases := []struct {
		name    string
		field   FieldName
		value   string
		code    string
		message string
	}{
		{"bad email", FieldUser, "not-an-email", "validation_email", "Enter a valid email address."},
		{"non numeric age", FieldAge, "thirty", "validation_htmlnumber", "Enter a number."},
		{"fractional age", FieldAge, "30.5", "validation_htmlnumber", "Enter a whole number."},
		{"too many decimals", FieldAnnualIncome, "100.123", "validation_htmlnumber", "Enter a number with at most two decimal places."},
		{"leading plus", FieldMonthlyBalance, "+5", "validation_htmlnumber", "Enter a number."},
		{"unknown credit mix", FieldCreditMix, "Excellent", "validation_oneof", "Select a valid choice. Excellent is not one of the available choices."},
		{"unknown behaviour", FieldPaymentBehaviour, "Low Spend, Small Value Payments", "validation_oneof", "Select a valid choice. Low Spend, Small Value Payments is not one of the available choices."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app, err := fullApplication().With(tc.field, tc.value)
			require.NoError(t, err)

			got := violationsOf(t, CheckConstraints(app))
			require.Len(t, got, 1)
			v := got[string(tc.field)]
			require.Equal(t, tc.code, v.Code)
			require.Equal(t, tc.message, v.Message)
		})
	}
}

func TestCheckConstraintsNumberForms(t *testing.T) {
	for _, value := range []string{"0", "-3", "1e3", ".5", "12.34", "1200.00"} {
		app, err := fullApplication().With(FieldOutstandingDebt, value)
		require.NoError(t, err)
		require.NoError(t, CheckConstraints(app), "value %q", value)
	}
	for _, value := range []string{"-1", "0", "42"} {
		app, err := fullApplication().With(FieldNumberOfLoans, value)
		require.NoError(t, err)
		require.NoError(t, CheckConstraints(app), "value %q", value)
	}
}

func TestCheckConstraintsLeavesRangesToBackend(t *testing.T) {
	app := fullApplication()
	app.Age = "-5"
	app.DelayFromDueDate = "whenever"
	require.NoError(t, CheckConstraints(app))
}
