// Package dashboard keeps the state behind the employee dashboard: the loaded
// list, the search term, the add/edit form and the delete confirmation.
package dashboard

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"go-empedge/internal/validation"

	"go.uber.org/zap"
)

var (
	ErrSubmitInFlight  = errors.New("a submit is already in progress")
	ErrDeleteInFlight  = errors.New("a delete is already in progress")
	ErrInvalidForm     = errors.New("form has invalid fields")
	ErrModalClosed     = errors.New("no form is open")
	ErrNoPendingDelete = errors.New("no employee selected for deletion")
)

// API is the subset of the employees API the controller drives.
type API interface {
	List(ctx context.Context) ([]Employee, error)
	Get(ctx context.Context, id uint64) (Employee, error)
	Create(ctx context.Context, d validation.Draft) (uint64, error)
	Update(ctx context.Context, id uint64, d validation.Draft) error
	Delete(ctx context.Context, id uint64) error
}

// State is a point-in-time copy of the controller slots.
type State struct {
	Employees     []Employee
	Search        string
	ModalOpen     bool
	DeleteOpen    bool
	Draft         validation.Draft
	Errors        validation.Errors
	Editing       *Employee
	PendingDelete *Employee
	Submitting    bool
	Deleting      bool
}

// SubmitResult describes the row that Submit put into the list. Reconciled is
// false when the follow-up read failed and the draft values were used.
type SubmitResult struct {
	Employee   Employee
	Created    bool
	Reconciled bool
}

type Controller struct {
	api    API
	logger *zap.Logger

	mu     sync.Mutex
	loaded bool
	state  State
}

func NewController(api API, logger ...*zap.Logger) *Controller {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &Controller{
		api:    api,
		logger: l.Named("dashboard.controller"),
		state:  State{Employees: []Employee{}},
	}
}

// Load fetches the list on its first call only. A failure leaves the list
// empty; use Refresh to try again.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.loaded {
		c.mu.Unlock()
		return nil
	}
	c.loaded = true
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// Refresh replaces the list with the server's current one.
func (c *Controller) Refresh(ctx context.Context) error {
	list, err := c.api.List(ctx)
	if err != nil {
		c.logger.Warn("fetch employees failed", zap.Error(err))
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Employees = list
	return nil
}

func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	s.Employees = slices.Clone(c.state.Employees)
	if c.state.Errors != nil {
		s.Errors = make(validation.Errors, len(c.state.Errors))
		for k, v := range c.state.Errors {
			s.Errors[k] = v
		}
	}
	if c.state.Editing != nil {
		e := *c.state.Editing
		s.Editing = &e
	}
	if c.state.PendingDelete != nil {
		e := *c.state.PendingDelete
		s.PendingDelete = &e
	}
	return s
}

func (c *Controller) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Search = term
}

// Filtered returns the employees whose name or position contains the search
// term, case-insensitively. The stored list is never modified.
func (c *Controller) Filtered() []Employee {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Filter(c.state.Employees, c.state.Search)
}

func Filter(list []Employee, term string) []Employee {
	needle := strings.ToLower(term)
	out := make([]Employee, 0, len(list))
	for _, e := range list {
		if strings.Contains(strings.ToLower(e.Name), needle) ||
			strings.Contains(strings.ToLower(e.Position), needle) {
			out = append(out, e)
		}
	}
	return out
}

func (c *Controller) OpenAdd() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Draft = validation.Draft{}
	c.state.Errors = nil
	c.state.Editing = nil
	c.state.ModalOpen = true
}

func (c *Controller) OpenEdit(emp Employee) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Draft = emp.Draft()
	c.state.Errors = nil
	c.state.Editing = &emp
	c.state.ModalOpen = true
}

// SetField updates one draft value and clears that field's error. It never
// re-validates.
func (c *Controller) SetField(field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Draft = c.state.Draft.Set(field, value)
	delete(c.state.Errors, field)
}

func (c *Controller) CancelModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeModal()
}

func (c *Controller) closeModal() {
	c.state.ModalOpen = false
	c.state.Draft = validation.Draft{}
	c.state.Errors = nil
	c.state.Editing = nil
}

// Submit validates the draft and sends it as a create or an update. The
// stored row is read back so the list holds the server representation.
// Network failures leave every slot as it was.
func (c *Controller) Submit(ctx context.Context) (SubmitResult, error) {
	c.mu.Lock()
	if c.state.Submitting {
		c.mu.Unlock()
		return SubmitResult{}, ErrSubmitInFlight
	}
	if !c.state.ModalOpen {
		c.mu.Unlock()
		return SubmitResult{}, ErrModalClosed
	}
	if errs := validation.Validate(c.state.Draft); len(errs) > 0 {
		c.state.Errors = errs
		c.mu.Unlock()
		return SubmitResult{}, ErrInvalidForm
	}
	draft := c.state.Draft
	var editing *Employee
	if c.state.Editing != nil {
		e := *c.state.Editing
		editing = &e
	}
	c.state.Submitting = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.state.Submitting = false
		c.mu.Unlock()
	}()

	var (
		id  uint64
		err error
	)
	if editing != nil {
		id = editing.ID
		err = c.api.Update(ctx, id, draft)
	} else {
		id, err = c.api.Create(ctx, draft)
	}
	if err != nil {
		c.logger.Warn("save employee failed", zap.Uint64("id", id), zap.Error(err))
		return SubmitResult{}, err
	}

	res := SubmitResult{Created: editing == nil, Reconciled: true}
	res.Employee, err = c.api.Get(ctx, id)
	if err != nil {
		c.logger.Warn("read back employee failed", zap.Uint64("id", id), zap.Error(err))
		res.Employee = employeeFromDraft(id, draft)
		res.Reconciled = false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if res.Created {
		c.state.Employees = append(c.state.Employees, res.Employee)
	} else {
		for i := range c.state.Employees {
			if c.state.Employees[i].ID == id {
				c.state.Employees[i] = res.Employee
			}
		}
	}
	c.closeModal()

	return res, nil
}

func (c *Controller) OpenDelete(emp Employee) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.PendingDelete = &emp
	c.state.DeleteOpen = true
}

func (c *Controller) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.PendingDelete = nil
	c.state.DeleteOpen = false
}

// ConfirmDelete deletes the pending employee and removes it from the list.
// On failure the dialog stays open with the same selection. A second call
// while one is in flight returns ErrDeleteInFlight without a request.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	if c.state.Deleting {
		c.mu.Unlock()
		return ErrDeleteInFlight
	}
	if !c.state.DeleteOpen || c.state.PendingDelete == nil {
		c.mu.Unlock()
		return ErrNoPendingDelete
	}
	id := c.state.PendingDelete.ID
	c.state.Deleting = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.state.Deleting = false
		c.mu.Unlock()
	}()

	if err := c.api.Delete(ctx, id); err != nil {
		c.logger.Warn("delete employee failed", zap.Uint64("id", id), zap.Error(err))
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Employees = slices.DeleteFunc(c.state.Employees, func(e Employee) bool { return e.ID == id })
	c.state.PendingDelete = nil
	c.state.DeleteOpen = false
	return nil
}
