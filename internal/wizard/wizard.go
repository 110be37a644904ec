package wizard

import "context"

// FirstStep and LastStep bound the wizard's step range.
const (
	FirstStep = 1
	LastStep  = 7
)

// Step describes one wizard page.
type Step struct {
	Seq   int
	Title string
}

// Steps returns the fixed page sequence.
func Steps() []Step {
	return []Step{
		{1, "Basic Details"},
		{2, "Academic Details"},
		{3, "Contact Details"},
		{4, "Address"},
		{5, "Parent Details"},
		{6, "Documents"},
		{7, "Other Details"},
	}
}

// Submitter posts a completed admission form. *Client implements it.
type Submitter interface {
	SubmitAdmission(ctx context.Context, form *Form) (*SubmitResult, error)
}

// Wizard is the admission form state machine. Exactly one error string is
// surfaced at a time; Err and Success are mutually exclusive and both clear
// on the next edit.
type Wizard struct {
	CurrentStep int
	Form        *Form
	Submitting  bool
	Err         string
	Success     bool

	client Submitter
}

// NewWizard starts at step 1 with an empty form.
func NewWizard(client Submitter) *Wizard {
	return &Wizard{
		CurrentStep: FirstStep,
		Form:        NewAdmissionForm(),
		client:      client,
	}
}

// Set updates one form field, treating the edit as the user correcting input.
func (w *Wizard) Set(field, value string) error {
	if err := w.Form.Set(field, value); err != nil {
		return err
	}
	w.Err = ""
	w.Success = false
	return nil
}

// SetDocument attaches a file to a document slot.
func (w *Wizard) SetDocument(slot string, doc *Document) error {
	if err := w.Form.SetDocument(slot, doc); err != nil {
		return err
	}
	w.Err = ""
	w.Success = false
	return nil
}

// Next validates the current step. On failure the step does not change and
// the first violated rule becomes the error; on success the error clears and
// the wizard advances.
func (w *Wizard) Next() {
	if msg := w.validateStep(w.CurrentStep); msg != "" {
		w.Err = msg
		return
	}
	w.Err = ""
	if w.CurrentStep < LastStep {
		w.CurrentStep++
	}
}

// Prev moves back one step unconditionally, clearing any error.
func (w *Wizard) Prev() {
	w.Err = ""
	if w.CurrentStep > FirstStep {
		w.CurrentStep--
	}
}

// validateStep returns the first violated rule's message, or "".
func (w *Wizard) validateStep(step int) string {
	switch step {
	case 1:
		if w.Form.Get("firstName") == "" {
			return "First name is required"
		}
		if w.Form.Get("lastName") == "" {
			return "Last name is required"
		}
		if w.Form.Get("dateOfBirth") == "" {
			return "Date of birth is required"
		}
		if w.Form.Get("gender") == "" {
			return "Gender is required"
		}
		if w.Form.Get("admissionNo") == "" {
			return "Admission number is required"
		}
	case 2:
		if w.Form.Get("className") == "" && w.Form.Get("admitSession.class") == "" {
			return "Class is required"
		}
	case 3:
		if w.Form.Get("mobileNumber") == "" {
			return "Mobile number is required"
		}
	case 4:
		if w.Form.Get("address.city") == "" {
			return "City is required"
		}
		if w.Form.Get("address.state") == "" {
			return "State is required"
		}
	case 5:
		if w.Form.Get("father.name") == "" {
			return "Father's name is required"
		}
		if w.Form.Get("mother.name") == "" {
			return "Mother's name is required"
		}
	}
	return ""
}

// Submit validates every step, then posts the record. A successful submission
// resets the wizard to step 1 with an empty form so the next admission starts
// clean. Submitting is cleared on every path.
//
// Submit is the terminal step's action; it does nothing until the wizard has
// been navigated to the last step.
func (w *Wizard) Submit(ctx context.Context) {
	if w.CurrentStep != LastStep {
		return
	}

	for step := FirstStep; step <= LastStep; step++ {
		if msg := w.validateStep(step); msg != "" {
			w.Err = msg
			return
		}
	}

	w.Submitting = true
	w.Err = ""
	defer func() { w.Submitting = false }()

	if _, err := w.client.SubmitAdmission(ctx, w.Form); err != nil {
		w.Err = err.Error()
		return
	}

	w.Success = true
	w.Form = NewAdmissionForm()
	w.CurrentStep = FirstStep
}
