package employee

import (
	"context"
	"time"

	"go-empedge/internal/metrics"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id uint64) (*Employee, error)
	Create(ctx context.Context, empl *Employee) error
	Update(ctx context.Context, empl *Employee) (int64, error)
	Delete(ctx context.Context, id uint64) (int64, error)
}

type repository struct {
	db      *gorm.DB
	metrics *metrics.Metrics
}

func NewRepository(db *gorm.DB, m *metrics.Metrics) Repository {
	return &repository{db: db, metrics: m}
}

func (r *repository) observe(queryType string, start time.Time) {
	if r.metrics == nil {
		return
	}
	r.metrics.DBQueryDuration.WithLabelValues(queryType).Observe(time.Since(start).Seconds())
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	defer r.observe("list_employees", time.Now())

	empls := make([]Employee, 0)
	err := r.db.WithContext(ctx).
		Order("id DESC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByID(ctx context.Context, id uint64) (*Employee, error) {
	defer r.observe("get_employee_by_id", time.Now())

	var empl Employee
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&empl).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

// Create inserts empl and fills in the id assigned by the store.
func (r *repository) Create(ctx context.Context, empl *Employee) error {
	defer r.observe("create_employee", time.Now())

	return r.db.WithContext(ctx).Create(empl).Error
}

// Update overwrites the four mutable columns of the row with empl.ID and
// reports how many rows matched.
func (r *repository) Update(ctx context.Context, empl *Employee) (int64, error) {
	defer r.observe("update_employee", time.Now())

	res := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", empl.ID).
		Updates(map[string]interface{}{
			"name":     empl.Name,
			"email":    empl.Email,
			"position": empl.Position,
			"contact":  empl.Contact,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) Delete(ctx context.Context, id uint64) (int64, error) {
	defer r.observe("delete_employee", time.Now())

	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&Employee{})
	return res.RowsAffected, res.Error
}
