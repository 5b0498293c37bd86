package employee

import (
	"context"
	"errors"
	"strconv"

	employeeerrors "go-empedge/internal/employee/errors"
	"go-empedge/internal/shared/contextutil"
	"go-empedge/internal/validation"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

// ServiceConfig tunes request validation. With StrictValidation off the
// service only checks that all four fields are present, which is weaker than
// the dashboard's form rules; with it on both sides apply the same rules.
type ServiceConfig struct {
	StrictValidation bool
}

type service struct {
	repo   Repository
	cfg    ServiceConfig
	logger *zap.Logger
}

func NewService(repo Repository, cfg ServiceConfig, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		repo:   repo,
		cfg:    cfg,
		logger: l,
	}
}

// log prefers the request-scoped logger, which already carries request_id.
func (s *service) log(ctx context.Context) *zap.Logger {
	if l, ok := contextutil.LoggerFromContext(ctx); ok {
		return l.Named("employee.service")
	}
	if rid := contextutil.GetRequestID(ctx); rid != "" {
		return s.logger.With(zap.String("request_id", rid))
	}
	return s.logger
}

func (s *service) validate(d validation.Draft) error {
	if d.Name == "" || d.Email == "" || d.Position == "" || d.Contact == "" {
		return employeeerrors.ErrMissingRequiredFields
	}
	if !s.cfg.StrictValidation {
		return nil
	}
	if errs := validation.Validate(d); len(errs) > 0 {
		return employeeerrors.InvalidFields(errs)
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	log := s.log(ctx)
	log.Debug("create employee requested", zap.String("email", req.Email))

	if err := s.validate(req.draft()); err != nil {
		log.Warn("create employee rejected", zap.Error(err))
		return EmployeeResponse{}, err
	}

	empl := &Employee{
		Name:     req.Name,
		Email:    req.Email,
		Position: req.Position,
		Contact:  req.Contact,
	}
	if err := s.repo.Create(ctx, empl); err != nil {
		log.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	log.Info("create employee success", zap.Uint64("employee_id", empl.ID))
	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	log := s.log(ctx)
	log.Debug("get all employees requested")

	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		log.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	log := s.log(ctx)
	log.Debug("get employee by id requested", zap.String("employee_id", id))

	eid, ok := parseID(id)
	if !ok {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	empl, err := s.repo.FindByID(ctx, eid)
	if err != nil {
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, employeeerrors.ErrEmployeeNotFound) {
			log.Debug("get employee by id not found", zap.Uint64("employee_id", eid))
		} else {
			log.Error("get employee by id failed", zap.Error(err))
		}
		return EmployeeResponse{}, mapped
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	log := s.log(ctx)
	log.Debug("update employee requested", zap.String("employee_id", id))

	if err := s.validate(req.draft()); err != nil {
		log.Warn("update employee rejected", zap.Error(err))
		return EmployeeResponse{}, err
	}

	eid, ok := parseID(id)
	if !ok {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	empl := &Employee{
		ID:       eid,
		Name:     req.Name,
		Email:    req.Email,
		Position: req.Position,
		Contact:  req.Contact,
	}
	affected, err := s.repo.Update(ctx, empl)
	if err != nil {
		log.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if affected == 0 {
		log.Debug("update employee not found", zap.Uint64("employee_id", eid))
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	log.Info("update employee success", zap.Uint64("employee_id", eid))
	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	log := s.log(ctx)
	log.Debug("delete employee requested", zap.String("employee_id", id))

	eid, ok := parseID(id)
	if !ok {
		return employeeerrors.ErrEmployeeNotFound
	}

	affected, err := s.repo.Delete(ctx, eid)
	if err != nil {
		log.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	if affected == 0 {
		log.Debug("delete employee not found", zap.Uint64("employee_id", eid))
		return employeeerrors.ErrEmployeeNotFound
	}

	log.Info("delete employee success", zap.Uint64("employee_id", eid))
	return nil
}

// parseID accepts the decimal ids the store assigns. Anything else cannot
// match a row.
func parseID(id string) (uint64, bool) {
	v, err := strconv.ParseUint(id, 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return v, true
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:       empl.ID,
		Name:     empl.Name,
		Email:    empl.Email,
		Position: empl.Position,
		Contact:  empl.Contact,
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
