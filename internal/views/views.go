package views

import (
	"embed"
	"html/template"
	"io"

	"github.com/harvey-allen/credit-risk-app/internal/creditform"
)

//go:embed templates/*.html
var templateFS embed.FS

var formTemplate = template.Must(
	template.New("form.html").Funcs(template.FuncMap{
		"alertClass": alertClass,
	}).ParseFS(templateFS, "templates/form.html"),
)

const (
	SubmitLabel     = "Calculate Credit Score"
	SubmittingLabel = "Submitting..."
)

// FieldView is one rendered control with its current value.
type FieldView struct {
	creditform.FieldSpec
	Value string
}

// Selected reports whether opt is the control's current value.
func (f FieldView) Selected(opt creditform.Option) bool {
	return f.Value == opt.Value
}

type SectionView struct {
	Title  creditform.Section
	Fields []FieldView
}

// FormPage is everything the form template needs.
type FormPage struct {
	SessionID  string
	Sections   []SectionView
	Status     creditform.Status
	Submitting bool
}

func (p FormPage) ButtonLabel() string {
	if p.Submitting {
		return SubmittingLabel
	}
	return SubmitLabel
}

// NewFormPage lays values out in render order.
func NewFormPage(sessionID string, values creditform.Application, status creditform.Status, submitting bool) FormPage {
	page := FormPage{SessionID: sessionID, Status: status, Submitting: submitting}
	for _, section := range creditform.Sections {
		sv := SectionView{Title: section}
		for _, spec := range creditform.SpecsIn(section) {
			v, _ := values.Get(spec.Name)
			sv.Fields = append(sv.Fields, FieldView{FieldSpec: spec, Value: v})
		}
		page.Sections = append(page.Sections, sv)
	}
	return page
}

func RenderForm(w io.Writer, page FormPage) error {
	return formTemplate.Execute(w, page)
}

func alertClass(t creditform.StatusType) string {
	if t == creditform.StatusSuccess {
		return "alert-success"
	}
	return "alert-error"
}
