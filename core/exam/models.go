package exam

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/selfcare/core"
)

// DateLayout is the layout of every date field (exam date, stage date).
const DateLayout = "2006-01-02"

// Stage is one round of an Application's pipeline (e.g. Prelims, Mains, Interview).
// Kind is fixed at creation and selects the vocabulary Status is drawn from.
type Stage struct {
	Name   string `json:"name" yaml:"name"`
	Kind   Kind   `json:"kind" yaml:"kind"`
	Status Status `json:"status" yaml:"status"`
	Score  string `json:"score,omitempty" yaml:"score,omitempty"`
	Date   string `json:"date,omitempty" yaml:"date,omitempty"`
	Notes  string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Application is an exam a student applied for. Stages are ordered and never reordered.
type Application struct {
	ID            string        `json:"id" yaml:"id"`
	Name          string        `json:"name" yaml:"name"`
	FeeAmount     float64       `json:"fee_amount" yaml:"fee_amount"`
	ExamDate      string        `json:"exam_date" yaml:"exam_date"`
	Place         string        `json:"place" yaml:"place"`
	PaymentStatus PaymentStatus `json:"payment_status" yaml:"payment_status"`
	FinalStatus   FinalStatus   `json:"final_status" yaml:"final_status"`
	Notes         string        `json:"notes" yaml:"notes"`
	Stages        []Stage       `json:"stages" yaml:"stages"`
	CreatedAt     time.Time     `json:"created_at" yaml:"created_at"`                       // UTC
	UpdatedAt     time.Time     `json:"updated_at" yaml:"updated_at"`                       // UTC
	ArchivedAt    *time.Time    `json:"archived_at,omitempty" yaml:"archived_at,omitempty"` // UTC
}

// Clone returns a copy of app that shares no memory with it.
func (app Application) Clone() Application {
	app.Stages = cloneStages(app.Stages)
	if app.ArchivedAt != nil {
		at := *app.ArchivedAt
		app.ArchivedAt = &at
	}
	return app
}

// IsArchived reports whether app was moved to the archived collection.
func (app Application) IsArchived() bool { return app.ArchivedAt != nil }

// Progress of the Application's stages.
func (app Application) Progress() Progress { return GetProgress(app.Stages) }

// NewStages builds pending stages named `names`, classifying each as intermediate or final.
func NewStages(names ...string) []Stage {
	stages := make([]Stage, len(names))
	for i, name := range names {
		stages[i] = Stage{Name: name, Status: StatusPending}
	}
	for i := range stages {
		stages[i].Kind = kindAt(stages, i)
	}
	return stages
}

func cloneStages(stages []Stage) []Stage {
	if stages == nil {
		return nil
	}
	return append(make([]Stage, 0, len(stages)), stages...)
}

// CloneAll deep copies a collection of applications.
func CloneAll(apps []Application) []Application {
	if apps == nil {
		return nil
	}
	out := make([]Application, 0, len(apps))
	for _, app := range apps {
		out = append(out, app.Clone())
	}
	return out
}

// NewApplication contains information needed to create a new Application.
type NewApplication struct {
	Name          string        `json:"name" validate:"required,notblank"`
	FeeAmount     float64       `json:"fee_amount" validate:"gte=0"`
	ExamDate      string        `json:"exam_date" validate:"required,datetime=2006-01-02"`
	Place         string        `json:"place" validate:"required,notblank"`
	PaymentStatus PaymentStatus `json:"payment_status" validate:"required,payment_status"`
	FinalStatus   FinalStatus   `json:"final_status" validate:"omitempty,final_status"`
	Notes         string        `json:"notes"`
	Stages        []string      `json:"stages" validate:"required,min=1,dive,required,notblank"`
}

func (na *NewApplication) Validate(validate *validator.Validate) error {
	na.Name = core.CleanString(na.Name)
	na.ExamDate = core.CleanString(na.ExamDate)
	na.Place = core.CleanString(na.Place)
	na.PaymentStatus = PaymentStatus(core.CleanString(string(na.PaymentStatus), true /* lower */))
	na.FinalStatus = FinalStatus(core.CleanString(string(na.FinalStatus), true /* lower */))
	na.Notes = core.CleanString(na.Notes)
	for i, name := range na.Stages {
		na.Stages[i] = core.CleanString(name)
	}
	if na.FinalStatus == "" {
		na.FinalStatus = FinalPending
	}
	return validate.Struct(na)
}

// UpdateApplication defines what information may be provided to modify an existing Application.
// Stages are edited one at a time through StageUpdate only.
type UpdateApplication struct {
	Name          *string        `json:"name" validate:"omitempty,notblank"`
	FeeAmount     *float64       `json:"fee_amount" validate:"omitempty,gte=0"`
	ExamDate      *string        `json:"exam_date" validate:"omitempty,datetime=2006-01-02"`
	Place         *string        `json:"place" validate:"omitempty,notblank"`
	PaymentStatus *PaymentStatus `json:"payment_status" validate:"omitempty,payment_status"`
	FinalStatus   *FinalStatus   `json:"final_status" validate:"omitempty,final_status"`
	Notes         *string        `json:"notes"`
}

func (ua *UpdateApplication) Validate(validate *validator.Validate) error {
	cleanPtr(ua.Name)
	cleanPtr(ua.ExamDate)
	cleanPtr(ua.Place)
	cleanPtr(ua.Notes)
	if ua.PaymentStatus != nil {
		*ua.PaymentStatus = PaymentStatus(core.CleanString(string(*ua.PaymentStatus), true /* lower */))
	}
	if ua.FinalStatus != nil {
		*ua.FinalStatus = FinalStatus(core.CleanString(string(*ua.FinalStatus), true /* lower */))
	}
	return validate.Struct(ua)
}

// apply merges the set fields of ua into app.
func (ua UpdateApplication) apply(app Application) Application {
	if ua.Name != nil {
		app.Name = *ua.Name
	}
	if ua.FeeAmount != nil {
		app.FeeAmount = *ua.FeeAmount
	}
	if ua.ExamDate != nil {
		app.ExamDate = *ua.ExamDate
	}
	if ua.Place != nil {
		app.Place = *ua.Place
	}
	if ua.PaymentStatus != nil {
		app.PaymentStatus = *ua.PaymentStatus
	}
	if ua.FinalStatus != nil {
		app.FinalStatus = *ua.FinalStatus
	}
	if ua.Notes != nil {
		app.Notes = *ua.Notes
	}
	return app
}

// StageUpdate is a partial update of a single Stage. Nil fields are left untouched.
type StageUpdate struct {
	Status *Status `json:"status" validate:"omitempty,stage_status"`
	Score  *string `json:"score"`
	Date   *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Notes  *string `json:"notes"`
}

func (su *StageUpdate) Validate(validate *validator.Validate) error {
	if su.Status != nil {
		st := Status(core.CleanString(string(*su.Status), true /* lower */))
		su.Status = &st
	}
	cleanPtr(su.Score)
	cleanPtr(su.Date)
	cleanPtr(su.Notes)
	return validate.Struct(su)
}

func (su StageUpdate) IsEmpty() bool {
	return su.Status == nil && su.Score == nil && su.Date == nil && su.Notes == nil
}

func cleanPtr(s *string) {
	if s != nil {
		*s = core.CleanString(*s)
	}
}
