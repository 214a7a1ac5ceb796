package creditform

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

type scorerFunc func(ctx context.Context, app Application) (*ScoreResult, error)

func (f scorerFunc) ScoreApplication(ctx context.Context, app Application) (*ScoreResult, error) {
	return f(ctx, app)
}

func fullApplication() Application {
	return Application{
		User:                   "jane@example.com",
		Name:                   "Jane Doe",
		Occupation:             "Engineer",
		DelayFromDueDate:       "3",
		CreditMix:              "Good",
		PaymentOfMinimumAmount: "Yes",
		PaymentBehaviour:       "low_spend_small_value_payments",
		ChangedCreditLimit:     "No",
		Age:                    "34",
		AnnualIncome:           "52000.50",
		MonthlyInHandSalary:    "3600.25",
		NumberOfBankAccounts:   "2",
		NumberOfCreditCards:    "3",
		InterestRate:           "4.5",
		NumberOfLoans:          "1",
		NumberOfDelayedPayment: "0",
		NumCreditInquiries:     "2",
		OutstandingDebt:        "1200.00",
		CreditUtilizationRatio: "28.4",
		TotalEMIPerMonth:       "150",
		AmountInvestedMonthly:  "200",
		MonthlyBalance:         "900.10",
	}
}

func fillController(t *testing.T, c *Controller, app Application) {
	t.Helper()
	for name, value := range app.Values() {
		require.NoError(t, c.Change(name, value))
	}
}

// -----------------------------------------------------------------------------
// Field changes
// -----------------------------------------------------------------------------

func TestChangeUpdatesOnlyThatField(t *testing.T) {
	base := fullApplication()

	for _, spec := range FieldSpecs {
		t.Run(string(spec.Name), func(t *testing.T) {
			c := NewController(nil)
			fillController(t, c, base)

			require.NoError(t, c.Change(spec.Name, "changed"))

			got := c.Values().Values()
			for name, want := range base.Values() {
				if name == spec.Name {
					require.Equal(t, "changed", got[name])
					continue
				}
				require.Equal(t, want, got[name], "field %s must be untouched", name)
			}
		})
	}
}

func TestChangeUnknownField(t *testing.T) {
	c := NewController(nil)
	err := c.Change("month", "May")
	require.ErrorIs(t, err, ErrUnknownField)
	require.True(t, c.Values().IsEmpty())
}

func TestChangeAcceptsEmptyValue(t *testing.T) {
	c := NewController(nil)
	require.NoError(t, c.Change(FieldAge, "40"))
	require.NoError(t, c.Change(FieldAge, ""))

	v, err := c.Value(FieldAge)
	require.NoError(t, err)
	require.Equal(t, "", v)
}

// -----------------------------------------------------------------------------
// Submission outcomes
// -----------------------------------------------------------------------------

func TestSubmitSuccessResetsForm(t *testing.T) {
	var sent Application
	c := NewController(scorerFunc(func(_ context.Context, app Application) (*ScoreResult, error) {
		sent = app
		return &ScoreResult{CreditScore: "742"}, nil
	}))
	fillController(t, c, fullApplication())

	res, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.True(t, res.Succeeded())
	require.Equal(t, fullApplication(), sent)
	require.Equal(t, fullApplication(), res.Snapshot)

	require.Equal(t, Status{Message: "Success! Credit Score: 742", Type: StatusSuccess}, c.Status())
	require.True(t, c.Values().IsEmpty())
	for _, v := range c.Values().Values() {
		require.Equal(t, "", v)
	}
	require.False(t, c.Submitting())
}

func TestSubmitSuccessWithoutScoreShowsPending(t *testing.T) {
	for name, score := range map[string]*ScoreResult{
		"nil result":   nil,
		"empty result": {},
	} {
		t.Run(name, func(t *testing.T) {
			c := NewController(scorerFunc(func(context.Context, Application) (*ScoreResult, error) {
				return score, nil
			}))
			fillController(t, c, fullApplication())

			_, err := c.Submit(context.Background())
			require.NoError(t, err)
			require.Equal(t, "Success! Credit Score: Pending", c.Status().Message)
			require.Equal(t, StatusSuccess, c.Status().Type)
		})
	}
}

func TestSubmitFailureKeepsValues(t *testing.T) {
	c := NewController(scorerFunc(func(context.Context, Application) (*ScoreResult, error) {
		return nil, FieldErrors{
			{Field: "age", Messages: []string{"must be positive"}},
			{Field: "occupation", Messages: []string{"required"}},
		}
	}))
	fillController(t, c, fullApplication())

	res, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.False(t, res.Succeeded())

	require.Equal(t, Status{Message: "Error: age: must be positive | occupation: required", Type: StatusError}, c.Status())
	require.Equal(t, fullApplication(), c.Values())
	require.False(t, c.Submitting())
}

func TestSubmitClearsPreviousStatus(t *testing.T) {
	statusDuringCall := make(chan Status, 1)
	var c *Controller
	c = NewController(scorerFunc(func(context.Context, Application) (*ScoreResult, error) {
		statusDuringCall <- c.Status()
		return &ScoreResult{CreditScore: "600"}, nil
	}))
	c.status = ErrorStatus(errors.New("old"))

	_, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.True(t, (<-statusDuringCall).IsZero())
}

func TestDismissStatus(t *testing.T) {
	c := NewController(scorerFunc(func(context.Context, Application) (*ScoreResult, error) {
		return nil, &ServerError{StatusCode: 500}
	}))
	_, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Error: Request failed with status code 500", c.Status().Message)

	c.DismissStatus()
	require.True(t, c.Status().IsZero())
}

// -----------------------------------------------------------------------------
// In-flight guard
// -----------------------------------------------------------------------------

func TestSubmitRefusedWhileInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	c := NewController(scorerFunc(func(context.Context, Application) (*ScoreResult, error) {
		close(started)
		<-release
		return &ScoreResult{CreditScore: "700"}, nil
	}))
	fillController(t, c, fullApplication())

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background())
		done <- err
	}()

	<-started
	require.True(t, c.Submitting())
	require.True(t, c.State().Submitting)

	_, err := c.Submit(context.Background())
	require.ErrorIs(t, err, ErrSubmissionInFlight)

	// the form stays editable while the request is pending
	require.NoError(t, c.Change(FieldOccupation, "Teacher"))

	close(release)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("submission did not complete")
	}

	require.False(t, c.Submitting())
	require.Equal(t, "Success! Credit Score: 700", c.Status().Message)
}

func TestSubmittingClearedWhenScorerPanics(t *testing.T) {
	c := NewController(scorerFunc(func(context.Context, Application) (*ScoreResult, error) {
		panic("boom")
	}))

	require.Panics(t, func() { _, _ = c.Submit(context.Background()) })
	require.False(t, c.Submitting())
}

// -----------------------------------------------------------------------------
// Pre-dispatch check
// -----------------------------------------------------------------------------

func TestSubmitCheckedSeesDispatchedValues(t *testing.T) {
	var checked, sent Application
	c := NewController(scorerFunc(func(_ context.Context, app Application) (*ScoreResult, error) {
		sent = app
		return &ScoreResult{CreditScore: "700"}, nil
	}))
	fillController(t, c, fullApplication())
	require.NoError(t, c.Change(FieldAge, "41"))

	res, err := c.SubmitChecked(context.Background(), func(app Application) error {
		checked = app
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, "41", checked.Age)
	require.Equal(t, checked, sent)
	require.Equal(t, checked, res.Snapshot)
}

func TestSubmitCheckedFailureLeavesFormUntouched(t *testing.T) {
	calls := 0
	c := NewController(scorerFunc(func(context.Context, Application) (*ScoreResult, error) {
		calls++
		return nil, &ServerError{StatusCode: 500}
	}))
	app := fullApplication()
	app.Age = ""
	fillController(t, c, app)

	_, err := c.Submit(context.Background())
	require.NoError(t, err)
	before := c.State()
	require.Equal(t, 1, calls)

	res, err := c.SubmitChecked(context.Background(), CheckConstraints)
	var ce *ConstraintError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, app, res.Snapshot)
	require.Equal(t, 1, calls)
	require.Equal(t, before, c.State())
	require.False(t, c.Submitting())
}

func TestSubmitCheckedRefusedWhileInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	c := NewController(scorerFunc(func(context.Context, Application) (*ScoreResult, error) {
		close(started)
		<-release
		return &ScoreResult{CreditScore: "700"}, nil
	}))
	fillController(t, c, fullApplication())

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background())
		done <- err
	}()
	<-started

	checks := 0
	_, err := c.SubmitChecked(context.Background(), func(Application) error {
		checks++
		return nil
	})
	require.ErrorIs(t, err, ErrSubmissionInFlight)
	require.Zero(t, checks)

	close(release)
	require.NoError(t, <-done)
}
