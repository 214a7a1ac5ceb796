package creditform

// FieldName is the wire name of a form field, identical to its JSON key.
type FieldName string

const (
	FieldUser                   FieldName = "user"
	FieldApplicantName          FieldName = "name"
	FieldOccupation             FieldName = "occupation"
	FieldDelayFromDueDate       FieldName = "delay_from_due_date"
	FieldCreditMix              FieldName = "credit_mix"
	FieldPaymentOfMinimumAmount FieldName = "payment_of_minimum_amount"
	FieldPaymentBehaviour       FieldName = "payment_behaviour"
	FieldChangedCreditLimit     FieldName = "changed_credit_limit"
	FieldAge                    FieldName = "age"
	FieldAnnualIncome           FieldName = "annual_income"
	FieldMonthlyInHandSalary    FieldName = "monthly_in_hand_salary"
	FieldNumberOfBankAccounts   FieldName = "number_of_bank_accounts"
	FieldNumberOfCreditCards    FieldName = "number_of_credit_cards"
	FieldInterestRate           FieldName = "interest_rate"
	FieldNumberOfLoans          FieldName = "number_of_loans"
	FieldNumberOfDelayedPayment FieldName = "number_of_delayed_payment"
	FieldNumCreditInquiries     FieldName = "num_credit_inquiries"
	FieldOutstandingDebt        FieldName = "outstanding_debt"
	FieldCreditUtilizationRatio FieldName = "credit_utilization_ratio"
	FieldTotalEMIPerMonth       FieldName = "total_emi_per_month"
	FieldAmountInvestedMonthly  FieldName = "amount_invested_monthly"
	FieldMonthlyBalance         FieldName = "monthly_balance"
)

// Section groups fields under a heading on the rendered form.
type Section string

const (
	SectionPersonal  Section = "Personal Information"
	SectionFinancial Section = "Financial Information"
	SectionCredit    Section = "Credit Information"
	SectionPayment   Section = "Payment Information"
)

// Sections lists the headings in render order.
var Sections = []Section{SectionPersonal, SectionFinancial, SectionCredit, SectionPayment}

// InputType is the HTML control used for a field.
type InputType string

const (
	InputEmail  InputType = "email"
	InputText   InputType = "text"
	InputNumber InputType = "number"
	InputSelect InputType = "select"
)

// FieldSpec describes how a field is rendered. Step is only set for number
// inputs that accept decimals; integer inputs use the browser default step.
type FieldSpec struct {
	Name        FieldName `json:"name"`
	Label       string    `json:"label"`
	Section     Section   `json:"section"`
	Input       InputType `json:"input"`
	Step        string    `json:"step,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Prompt      string    `json:"prompt,omitempty"`
	Options     []Option  `json:"options,omitempty"`
}

const currencyStep = "0.01"

// FieldSpecs holds all 22 fields in render order.
var FieldSpecs = []FieldSpec{
	{Name: FieldUser, Label: "User Email:", Section: SectionPersonal, Input: InputEmail, Placeholder: "Enter user email"},
	{Name: FieldApplicantName, Label: "Name:", Section: SectionPersonal, Input: InputText},
	{Name: FieldAge, Label: "Age:", Section: SectionPersonal, Input: InputNumber},
	{Name: FieldOccupation, Label: "Occupation:", Section: SectionPersonal, Input: InputText},

	{Name: FieldAnnualIncome, Label: "Annual Income (£):", Section: SectionFinancial, Input: InputNumber, Step: currencyStep},
	{Name: FieldMonthlyInHandSalary, Label: "Monthly In-Hand Salary (£):", Section: SectionFinancial, Input: InputNumber, Step: currencyStep},
	{Name: FieldMonthlyBalance, Label: "Monthly Balance (£):", Section: SectionFinancial, Input: InputNumber, Step: currencyStep},
	{Name: FieldAmountInvestedMonthly, Label: "Amount Invested Monthly (£):", Section: SectionFinancial, Input: InputNumber, Step: currencyStep},

	{Name: FieldNumberOfBankAccounts, Label: "Number of Bank Accounts:", Section: SectionCredit, Input: InputNumber},
	{Name: FieldNumberOfCreditCards, Label: "Number of Credit Cards:", Section: SectionCredit, Input: InputNumber},
	{Name: FieldNumberOfLoans, Label: "Number of Loans:", Section: SectionCredit, Input: InputNumber},
	{Name: FieldInterestRate, Label: "Interest Rate (%):", Section: SectionCredit, Input: InputNumber, Step: currencyStep},
	{Name: FieldCreditMix, Label: "Credit Mix:", Section: SectionCredit, Input: InputSelect, Prompt: "Select credit mix", Options: CreditMixOptions},
	{Name: FieldOutstandingDebt, Label: "Outstanding Debt (£):", Section: SectionCredit, Input: InputNumber, Step: currencyStep},
	{Name: FieldCreditUtilizationRatio, Label: "Credit Utilization Ratio (%):", Section: SectionCredit, Input: InputNumber, Step: currencyStep},
	{Name: FieldTotalEMIPerMonth, Label: "Total EMI per Month (£):", Section: SectionCredit, Input: InputNumber, Step: currencyStep},

	{Name: FieldPaymentBehaviour, Label: "Payment Behaviour:", Section: SectionPayment, Input: InputSelect, Prompt: "Select payment behaviour", Options: PaymentBehaviourOptions},
	{Name: FieldPaymentOfMinimumAmount, Label: "Payment of Minimum Amount:", Section: SectionPayment, Input: InputSelect, Prompt: "Select option", Options: YesNoOptions},
	{Name: FieldNumberOfDelayedPayment, Label: "Number of Delayed Payments:", Section: SectionPayment, Input: InputNumber},
	{Name: FieldDelayFromDueDate, Label: "Delay from Due Date (days):", Section: SectionPayment, Input: InputText},
	{Name: FieldChangedCreditLimit, Label: "Changed Credit Limit:", Section: SectionPayment, Input: InputSelect, Prompt: "Select option", Options: YesNoOptions},
	{Name: FieldNumCreditInquiries, Label: "Number of Credit Inquiries:", Section: SectionPayment, Input: InputNumber},
}

// SpecsIn returns the fields rendered under s, in order.
func SpecsIn(s Section) []FieldSpec {
	var out []FieldSpec
	for _, spec := range FieldSpecs {
		if spec.Section == s {
			out = append(out, spec)
		}
	}
	return out
}

// IsKnownField reports whether name is one of the 22 form fields.
func IsKnownField(name FieldName) bool {
	var a Application
	return a.field(name) != nil
}
