package creditform

// Option is one entry of a select control.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var PaymentBehaviourOptions = []Option{
	{Value: "low_spend_small_value_payments", Label: "Low Spend, Small Value Payments"},
	{Value: "low_spend_medium_value_payments", Label: "Low Spend, Medium Value Payments"},
	{Value: "low_spend_large_value_payments", Label: "Low Spend, Large Value Payments"},
	{Value: "high_spend_small_value_payments", Label: "High Spend, Small Value Payments"},
	{Value: "high_spend_medium_value_payments", Label: "High Spend, Medium Value Payments"},
	{Value: "high_spend_large_value_payments", Label: "High Spend, Large Value Payments"},
}

var YesNoOptions = []Option{
	{Value: "Yes", Label: "Yes"},
	{Value: "No", Label: "No"},
}

var CreditMixOptions = []Option{
	{Value: "Good", Label: "Good"},
	{Value: "Standard", Label: "Standard"},
	{Value: "Bad", Label: "Bad"},
}
