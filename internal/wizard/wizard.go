// Package wizard implements the five step job posting form as an explicit
// transition function over State and Action values.
package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"ergasia-marketplace/pkg/validation"
)

type Step int

const (
	StepJobName Step = iota + 1
	StepRequirements
	StepCategories
	StepSlots
	StepSalary
)

const (
	FirstStep = StepJobName
	LastStep  = StepSalary
)

func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

func (s Step) String() string {
	switch s {
	case StepJobName:
		return "job_name"
	case StepRequirements:
		return "requirements"
	case StepCategories:
		return "categories"
	case StepSlots:
		return "slots"
	case StepSalary:
		return "salary"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Field names the draft attribute an error message belongs to.
type Field string

const (
	FieldJobName      Field = "jobName"
	FieldRequirements Field = "requirements"
	FieldCategories   Field = "categories"
	FieldSlots        Field = "slots"
	FieldSalary       Field = "salary"
	FieldSubmit       Field = "submit"
)

// Draft holds the form values. Slots and Salary are pointers so that an
// untouched field is distinguishable from zero.
type Draft struct {
	JobName      string   `json:"jobName" validate:"notblank"`
	Requirements []string `json:"requirements"`
	Categories   []string `json:"categories" validate:"min=1,dive,notblank"`
	Slots        *int64   `json:"slots" validate:"required,gt=0"`
	Salary       *float64 `json:"salary" validate:"required,gt=0"`
}

type State struct {
	Step   Step             `json:"step"`
	Draft  Draft            `json:"draft"`
	Errors map[Field]string `json:"errors,omitempty"`
}

// NewState returns the state a fresh wizard starts in.
func NewState() State {
	return State{
		Step: FirstStep,
		Draft: Draft{
			Requirements: []string{},
			Categories:   []string{},
		},
	}
}

type ActionType string

const (
	ActionNext            ActionType = "next"
	ActionPrevious        ActionType = "previous"
	ActionSubmit          ActionType = "submit"
	ActionSetJobName      ActionType = "set_job_name"
	ActionSetRequirements ActionType = "set_requirements"
	ActionSetCategories   ActionType = "set_categories"
	ActionSetSlots        ActionType = "set_slots"
	ActionSetSalary       ActionType = "set_salary"
)

// Actions lists every action type the machine accepts.
var Actions = []ActionType{
	ActionNext,
	ActionPrevious,
	ActionSubmit,
	ActionSetJobName,
	ActionSetRequirements,
	ActionSetCategories,
	ActionSetSlots,
	ActionSetSalary,
}

// Action is a user intent. Only the payload field matching Type is read.
type Action struct {
	Type         ActionType `json:"type"`
	JobName      string     `json:"jobName,omitempty"`
	Requirements []string   `json:"requirements,omitempty"`
	Categories   []string   `json:"categories,omitempty"`
	Slots        *int64     `json:"slots,omitempty"`
	Salary       *float64   `json:"salary,omitempty"`
}

// Effect tells the caller what to do after a transition.
type Effect int

const (
	EffectNone Effect = iota
	EffectCreateJob
)

var ErrUnknownAction = errors.New("wizard: unknown action")

// stepFields lists the draft struct fields owned by each step. Requirements
// carry no blocking rule.
var stepFields = map[Step][]string{
	StepJobName:      {"JobName"},
	StepRequirements: nil,
	StepCategories:   {"Categories"},
	StepSlots:        {"Slots"},
	StepSalary:       {"Salary"},
}

var submitSteps = []Step{StepJobName, StepCategories, StepSlots, StepSalary}

var structFieldToField = map[string]Field{
	"JobName":      FieldJobName,
	"Requirements": FieldRequirements,
	"Categories":   FieldCategories,
	"Slots":        FieldSlots,
	"Salary":       FieldSalary,
}

type transitionFunc func(m *Machine, s State, a Action) (State, Effect)

var transitions = map[ActionType]transitionFunc{
	ActionNext:            (*Machine).next,
	ActionPrevious:        (*Machine).previous,
	ActionSubmit:          (*Machine).submit,
	ActionSetJobName:      setJobName,
	ActionSetRequirements: setRequirements,
	ActionSetCategories:   setCategories,
	ActionSetSlots:        setSlots,
	ActionSetSalary:       setSalary,
}

type Machine struct {
	validate *validator.Validate
}

func New(v *validator.Validate) *Machine {
	if v == nil {
		v = validation.New()
	}
	return &Machine{validate: v}
}

// Transition applies a to s and returns the next state. The input state is
// never modified. An out of range step is clamped before the action applies.
func (m *Machine) Transition(s State, a Action) (State, Effect, error) {
	fn, ok := transitions[a.Type]
	if !ok {
		return s, EffectNone, fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}
	next := s.clone()
	next.Step = clamp(next.Step)
	out, effect := fn(m, next, a)
	return out, effect, nil
}

// Validate checks the fields owned by the given steps and returns one message
// per failing field. An empty map means the steps pass.
func (m *Machine) Validate(d Draft, steps ...Step) map[Field]string {
	var names []string
	for _, st := range steps {
		names = append(names, stepFields[st]...)
	}
	errs := map[Field]string{}
	if len(names) == 0 {
		return errs
	}
	err := m.validate.StructPartial(d, names...)
	for structField, msg := range validation.FieldMessages(err) {
		if f, ok := structFieldToField[structField]; ok {
			errs[f] = msg
		}
	}
	if err != nil && len(errs) == 0 {
		errs[FieldSubmit] = err.Error()
	}
	return errs
}

func (m *Machine) next(s State, _ Action) (State, Effect) {
	errs := m.Validate(s.Draft, s.Step)
	if len(errs) > 0 {
		s.Errors = errs
		return s, EffectNone
	}
	s.Errors = nil
	if s.Step < LastStep {
		s.Step++
	}
	return s, EffectNone
}

func (m *Machine) previous(s State, _ Action) (State, Effect) {
	if s.Step > FirstStep {
		s.Step--
	}
	s.Errors = nil
	return s, EffectNone
}

func (m *Machine) submit(s State, _ Action) (State, Effect) {
	if s.Step != LastStep {
		return s, EffectNone
	}
	errs := m.Validate(s.Draft, submitSteps...)
	if len(errs) > 0 {
		s.Errors = errs
		return s, EffectNone
	}
	s.Errors = nil
	return s, EffectCreateJob
}

func setJobName(_ *Machine, s State, a Action) (State, Effect) {
	s.Draft.JobName = a.JobName
	s.clearError(FieldJobName)
	return s, EffectNone
}

func setRequirements(_ *Machine, s State, a Action) (State, Effect) {
	s.Draft.Requirements = append([]string{}, a.Requirements...)
	s.clearError(FieldRequirements)
	return s, EffectNone
}

func setCategories(_ *Machine, s State, a Action) (State, Effect) {
	s.Draft.Categories = append([]string{}, a.Categories...)
	s.clearError(FieldCategories)
	return s, EffectNone
}

func setSlots(_ *Machine, s State, a Action) (State, Effect) {
	s.Draft.Slots = copyPtr(a.Slots)
	s.clearError(FieldSlots)
	return s, EffectNone
}

func setSalary(_ *Machine, s State, a Action) (State, Effect) {
	s.Draft.Salary = copyPtr(a.Salary)
	s.clearError(FieldSalary)
	return s, EffectNone
}

// WithSubmitError records a failed job creation on the state.
func (s State) WithSubmitError(msg string) State {
	out := s.clone()
	if out.Errors == nil {
		out.Errors = map[Field]string{}
	}
	out.Errors[FieldSubmit] = msg
	return out
}

// RequirementLines returns the non-blank requirement lines, trimmed.
func (d Draft) RequirementLines() []string {
	out := make([]string, 0, len(d.Requirements))
	for _, r := range d.Requirements {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

func (s *State) clearError(f Field) {
	if s.Errors == nil {
		return
	}
	delete(s.Errors, f)
	if len(s.Errors) == 0 {
		s.Errors = nil
	}
}

func (s State) clone() State {
	out := s
	out.Draft.Requirements = append([]string{}, s.Draft.Requirements...)
	out.Draft.Categories = append([]string{}, s.Draft.Categories...)
	out.Draft.Slots = copyPtr(s.Draft.Slots)
	out.Draft.Salary = copyPtr(s.Draft.Salary)
	if s.Errors != nil {
		out.Errors = make(map[Field]string, len(s.Errors))
		for k, v := range s.Errors {
			out.Errors[k] = v
		}
	}
	return out
}

func clamp(s Step) Step {
	if s < FirstStep {
		return FirstStep
	}
	if s > LastStep {
		return LastStep
	}
	return s
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
