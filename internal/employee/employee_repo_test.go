package employee_test

import (
	"context"
	"regexp"
	"testing"

	"go-empedge/internal/employee"
	"go-empedge/internal/metrics"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type repoDeps struct {
	repo    employee.Repository
	mock    sqlmock.Sqlmock
	metrics *metrics.Metrics
}

func setupRepoTest(t *testing.T) *repoDeps {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	m := metrics.NewMetrics(prometheus.NewRegistry())
	return &repoDeps{
		repo:    employee.NewRepository(gormDB, m),
		mock:    mock,
		metrics: m,
	}
}

func TestRepository_FindAll(t *testing.T) {
	t.Parallel()
	deps := setupRepoTest(t)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "position", "contact"}).
		AddRow(2, "Bo", "bo@example.com", "Ops", "1234567890").
		AddRow(1, "Ann", "ann@example.com", "Eng", "0987654321")
	deps.mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `employees` ORDER BY id DESC")).
		WillReturnRows(rows)

	got, err := deps.repo.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(2), got[0].ID)
	assert.Equal(t, "Ann", got[1].Name)
	assert.Equal(t, 1, testutil.CollectAndCount(deps.metrics.DBQueryDuration))
	require.NoError(t, deps.mock.ExpectationsWereMet())
}

func TestRepository_FindAll_Empty(t *testing.T) {
	t.Parallel()
	deps := setupRepoTest(t)

	deps.mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `employees` ORDER BY id DESC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "position", "contact"}))

	got, err := deps.repo.FindAll(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	require.NoError(t, deps.mock.ExpectationsWereMet())
}

func TestRepository_FindAll_QueryError(t *testing.T) {
	t.Parallel()
	deps := setupRepoTest(t)

	deps.mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `employees`")).
		WillReturnError(assert.AnError)

	_, err := deps.repo.FindAll(context.Background())

	assert.ErrorIs(t, err, assert.AnError)
	require.NoError(t, deps.mock.ExpectationsWereMet())
}

func TestRepository_FindByID(t *testing.T) {
	t.Parallel()
	deps := setupRepoTest(t)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "position", "contact"}).
		AddRow(7, "Ann", "ann@example.com", "Eng", "1234567890")
	deps.mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `employees` WHERE id = ?")).
		WillReturnRows(rows)

	got, err := deps.repo.FindByID(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, uint64(7), got.ID)
	assert.Equal(t, "ann@example.com", got.Email)
	require.NoError(t, deps.mock.ExpectationsWereMet())
}

func TestRepository_FindByID_NotFound(t *testing.T) {
	t.Parallel()
	deps := setupRepoTest(t)

	deps.mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `employees` WHERE id = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "position", "contact"}))

	got, err := deps.repo.FindByID(context.Background(), 7)

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, got)
	require.NoError(t, deps.mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	t.Parallel()
	deps := setupRepoTest(t)

	deps.mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `employees` (`name`,`email`,`position`,`contact`) VALUES (?,?,?,?)")).
		WithArgs("Ann", "ann@example.com", "Eng", "123-456-7890").
		WillReturnResult(sqlmock.NewResult(15, 1))

	empl := &employee.Employee{Name: "Ann", Email: "ann@example.com", Position: "Eng", Contact: "123-456-7890"}
	err := deps.repo.Create(context.Background(), empl)

	require.NoError(t, err)
	assert.Equal(t, uint64(15), empl.ID)
	require.NoError(t, deps.mock.ExpectationsWereMet())
}

func TestRepository_Create_QueryError(t *testing.T) {
	t.Parallel()
	deps := setupRepoTest(t)

	deps.mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `employees`")).
		WillReturnError(assert.AnError)

	err := deps.repo.Create(context.Background(), &employee.Employee{Name: "Ann"})

	assert.ErrorIs(t, err, assert.AnError)
	require.NoError(t, deps.mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	t.Parallel()
	deps := setupRepoTest(t)

	// gorm writes map assignments in key order.
	deps.mock.ExpectExec(regexp.QuoteMeta("UPDATE `employees` SET `contact`=?,`email`=?,`name`=?,`position`=? WHERE id = ?")).
		WithArgs("1234567890", "ann@example.com", "Ann", "Lead", uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := deps.repo.Update(context.Background(), &employee.Employee{
		ID: 3, Name: "Ann", Email: "ann@example.com", Position: "Lead", Contact: "1234567890",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	require.NoError(t, deps.mock.ExpectationsWereMet())
}

func TestRepository_Update_NoRows(t *testing.T) {
	t.Parallel()
	deps := setupRepoTest(t)

	deps.mock.ExpectExec(regexp.QuoteMeta("UPDATE `employees` SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := deps.repo.Update(context.Background(), &employee.Employee{
		ID: 999, Name: "Ann", Email: "ann@example.com", Position: "Lead", Contact: "1234567890",
	})

	require.NoError(t, err)
	assert.Zero(t, affected)
	require.NoError(t, deps.mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	t.Parallel()
	deps := setupRepoTest(t)

	deps.mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `employees` WHERE id = ?")).
		WithArgs(uint64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := deps.repo.Delete(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	require.NoError(t, deps.mock.ExpectationsWereMet())
}

func TestRepository_Delete_QueryError(t *testing.T) {
	t.Parallel()
	deps := setupRepoTest(t)

	deps.mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `employees`")).
		WillReturnError(assert.AnError)

	_, err := deps.repo.Delete(context.Background(), 4)

	assert.ErrorIs(t, err, assert.AnError)
	require.NoError(t, deps.mock.ExpectationsWereMet())
}
