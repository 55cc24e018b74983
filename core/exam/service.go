package exam

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/selfcare/core"
)

// Store namespaces; each profile owns one collection per namespace.
const (
	NamespaceActive   = "selfcare.exams"
	NamespaceArchived = "selfcare.archived"
)

type (
	// Store persists the collections of a profile. Load returns an empty list on first use.
	Store interface {
		Load(ctx context.Context, profile, namespace string) ([]Application, error)
		Save(ctx context.Context, profile, namespace string, apps []Application) error
	}

	ServiceInterface interface {
		List(ctx context.Context, profile string, orderings ...core.Ordering) ([]Application, error)
		Archived(ctx context.Context, profile string, orderings ...core.Ordering) ([]Application, error)
		History(ctx context.Context, profile string) ([]Application, error)
		Get(ctx context.Context, profile, id string) (Application, error)
		Add(ctx context.Context, profile string, na NewApplication) (Application, error)
		Update(ctx context.Context, profile, id string, ua UpdateApplication) (Application, error)
		Delete(ctx context.Context, profile, id string) error
		Archive(ctx context.Context, profile, id string) error
		EditStage(ctx context.Context, profile, id string, index int, upd StageUpdate) (Application, error)
		Board(ctx context.Context, profile, id string) (StageBoard, error)
		Metrics(ctx context.Context, profile string) (Metrics, error)
	}

	// Service owns the exam collections of every profile.
	// Mutations run as load-modify-save under a single lock.
	Service struct {
		store    Store
		notifier core.Notifier
		mu       sync.Mutex
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(store Store, notifier core.Notifier) *Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(store, "store"),
		vala.IsNotNil(notifier, "notifier"),
	).CheckAndPanic()

	return &Service{store: store, notifier: notifier}
}

func (svc *Service) load(ctx context.Context, profile, namespace string) ([]Application, error) {
	apps, err := svc.store.Load(ctx, profile, namespace)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s of %q", namespace, profile)
	}
	if apps == nil {
		apps = []Application{}
	}
	return apps, nil
}

func (svc *Service) save(ctx context.Context, profile, namespace string, apps []Application) error {
	if err := svc.store.Save(ctx, profile, namespace, apps); err != nil {
		return errors.Wrapf(err, "saving %s of %q", namespace, profile)
	}
	return nil
}

func (svc *Service) loadAll(ctx context.Context, profile string) (active, archived []Application, err error) {
	if active, err = svc.load(ctx, profile, NamespaceActive); err != nil {
		return nil, nil, err
	}
	if archived, err = svc.load(ctx, profile, NamespaceArchived); err != nil {
		return nil, nil, err
	}
	return active, archived, nil
}

// locate finds id in active first, then archived.
func (svc *Service) locate(ctx context.Context, profile, id string) (namespace string, apps []Application, idx int, err error) {
	active, archived, err := svc.loadAll(ctx, profile)
	if err != nil {
		return "", nil, -1, err
	}
	if idx = indexOf(active, id); idx >= 0 {
		return NamespaceActive, active, idx, nil
	}
	if idx = indexOf(archived, id); idx >= 0 {
		return NamespaceArchived, archived, idx, nil
	}
	return "", nil, -1, ErrNotFound
}

func (svc *Service) List(ctx context.Context, profile string, orderings ...core.Ordering) ([]Application, error) {
	apps, err := svc.load(ctx, profile, NamespaceActive)
	if err != nil {
		return nil, err
	}
	SortApplications(apps, orderings...)
	return apps, nil
}

func (svc *Service) Archived(ctx context.Context, profile string, orderings ...core.Ordering) ([]Application, error) {
	apps, err := svc.load(ctx, profile, NamespaceArchived)
	if err != nil {
		return nil, err
	}
	SortApplications(apps, orderings...)
	return apps, nil
}

func (svc *Service) History(ctx context.Context, profile string) ([]Application, error) {
	active, archived, err := svc.loadAll(ctx, profile)
	if err != nil {
		return nil, err
	}
	return History(active, archived), nil
}

func (svc *Service) Get(ctx context.Context, profile, id string) (Application, error) {
	_, apps, idx, err := svc.locate(ctx, profile, id)
	if err != nil {
		return Application{}, err
	}
	return apps[idx], nil
}

// Add creates an application from an already validated draft; all its stages start pending.
func (svc *Service) Add(ctx context.Context, profile string, na NewApplication) (Application, error) {
	if len(na.Stages) == 0 {
		return Application{}, core.NewValidationError(ErrNoStages, core.FieldError{Field: "stages", Error: ErrNoStages.Error()})
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	active, err := svc.load(ctx, profile, NamespaceActive)
	if err != nil {
		return Application{}, err
	}

	finalStatus := na.FinalStatus
	if finalStatus == "" {
		finalStatus = FinalPending
	}
	now := NowFunc()
	app := Application{
		ID:            uuid.New().String(),
		Name:          na.Name,
		FeeAmount:     na.FeeAmount,
		ExamDate:      na.ExamDate,
		Place:         na.Place,
		PaymentStatus: na.PaymentStatus,
		FinalStatus:   finalStatus,
		Notes:         na.Notes,
		Stages:        NewStages(na.Stages...),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := svc.save(ctx, profile, NamespaceActive, append(active, app)); err != nil {
		return Application{}, err
	}
	return app, nil
}

// Update modifies the fields of an application, archived or not. Stages are left untouched.
func (svc *Service) Update(ctx context.Context, profile, id string, ua UpdateApplication) (Application, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	ns, apps, idx, err := svc.locate(ctx, profile, id)
	if err != nil {
		return Application{}, err
	}

	app := ua.apply(apps[idx].Clone())
	app.UpdatedAt = NowFunc()
	apps[idx] = app

	if err := svc.save(ctx, profile, ns, apps); err != nil {
		return Application{}, err
	}
	return app, nil
}

// Delete removes an application from whichever collection holds it. Unknown ids are a no-op.
func (svc *Service) Delete(ctx context.Context, profile, id string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	active, archived, err := svc.loadAll(ctx, profile)
	if err != nil {
		return err
	}
	active, _ = Remove(active, id)
	archived, _ = Remove(archived, id)

	if err := svc.save(ctx, profile, NamespaceActive, active); err != nil {
		return err
	}
	return svc.save(ctx, profile, NamespaceArchived, archived)
}

// Archive moves an active application to the archived collection. Unknown ids are a no-op.
func (svc *Service) Archive(ctx context.Context, profile, id string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	active, archived, err := svc.loadAll(ctx, profile)
	if err != nil {
		return err
	}
	active, archived = Archive(active, archived, id)

	if err := svc.save(ctx, profile, NamespaceActive, active); err != nil {
		return err
	}
	return svc.save(ctx, profile, NamespaceArchived, archived)
}

// EditStage applies upd to the stage at index, provided the editability policy allows it.
// A locked stage yields a *PolicyViolationError and a "Stage Not Editable" notification;
// a status outside the stage's vocabulary yields a *core.ValidationError.
// Setting the outcome of a final stage notifies the result.
func (svc *Service) EditStage(ctx context.Context, profile, id string, index int, upd StageUpdate) (Application, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	ns, apps, idx, err := svc.locate(ctx, profile, id)
	if err != nil {
		return Application{}, err
	}
	app := apps[idx]
	if !inRange(app.Stages, index) {
		return Application{}, ErrStageNotFound
	}

	stage := app.Stages[index]
	if !IsStageEditable(app.Stages, index) {
		reason := DisabledReason(app.Stages, index)
		svc.notifier.Notify(core.Notification{
			Kind:    core.NotificationStageLocked,
			Profile: profile,
			Title:   "Stage Not Editable",
			Message: reason.Message,
			Data: map[string]interface{}{
				"application_id": app.ID,
				"stage_index":    index,
				"reason":         string(reason.Kind),
			},
		})
		return Application{}, &PolicyViolationError{Index: index, Stage: stage.Name, Reason: reason}
	}

	kind := kindAt(app.Stages, index)
	if upd.Status != nil && !upd.Status.ValidFor(kind) {
		msg := fmt.Sprintf("%q is not a valid status for the %s stage %q", *upd.Status, kind, stage.Name)
		return Application{}, core.NewValidationError(nil, core.FieldError{Field: "status", Error: msg})
	}

	updated := UpdateStage(app, index, upd)
	updated.UpdatedAt = NowFunc()
	apps[idx] = updated

	if err := svc.save(ctx, profile, ns, apps); err != nil {
		return Application{}, err
	}

	if newStatus := updated.Stages[index].Status; kind == KindFinal && newStatus != stage.Status &&
		(newStatus == StatusSelected || newStatus == StatusNotSelected) {
		svc.notifier.Notify(core.Notification{
			Kind:    core.NotificationResult,
			Profile: profile,
			Title:   fmt.Sprintf("%s: %s", updated.Name, newStatus.Label()),
			Message: fmt.Sprintf("%s of %s is now marked %s.", stage.Name, updated.Name, newStatus.Label()),
			Data: map[string]interface{}{
				"application_id": updated.ID,
				"stage_index":    index,
				"status":         string(newStatus),
			},
		})
	}
	return updated, nil
}

func (svc *Service) Board(ctx context.Context, profile, id string) (StageBoard, error) {
	app, err := svc.Get(ctx, profile, id)
	if err != nil {
		return StageBoard{}, err
	}
	return NewStageBoard(app), nil
}

func (svc *Service) Metrics(ctx context.Context, profile string) (Metrics, error) {
	active, archived, err := svc.loadAll(ctx, profile)
	if err != nil {
		return Metrics{}, err
	}
	return GetMetrics(active, archived), nil
}
