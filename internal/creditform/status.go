package creditform

type StatusType string

const (
	StatusNone    StatusType = ""
	StatusSuccess StatusType = "success"
	StatusError   StatusType = "error"
)

const pendingScore = "Pending"

// Status is the banner shown above the form. A zero Status shows nothing.
type Status struct {
	Message string     `json:"message"`
	Type    StatusType `json:"type"`
}

func (s Status) IsZero() bool { return s.Message == "" }

// ScoreResult is what the scoring endpoint returned for an accepted
// application. CreditScore is empty when the backend has not produced one.
type ScoreResult struct {
	CreditScore string
}

// Display returns the score as shown to the user.
func (r *ScoreResult) Display() string {
	if r == nil || r.CreditScore == "" {
		return pendingScore
	}
	return r.CreditScore
}

func SuccessStatus(r *ScoreResult) Status {
	return Status{Message: "Success! Credit Score: " + r.Display(), Type: StatusSuccess}
}

func ErrorStatus(err error) Status {
	return Status{Message: "Error: " + ErrorMessage(err), Type: StatusError}
}
