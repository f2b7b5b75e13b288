package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hephzi-centre/admin-api/internal/models"
)

func newStudentRepoMock(t *testing.T) (*StudentRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return NewStudentRepository(sqlxDB), mock, func() { _ = db.Close() }
}

func studentColumns() []string {
	return []string{"id", "name", "mentor_id", "grade", "date_of_birth", "address", "contact", "grades", "batches", "abc_profile", "tags", "is_active", "created_at", "updated_at"}
}

func studentRow(id, name string, grade int) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(studentColumns()).
		AddRow(id, name, nil, grade, nil, "", "", []byte(`{"math":4}`), []byte(`{}`), []byte(`{}`), []byte(`{}`), true, now, now)
}

func TestStudentRepositoryFindByID(t *testing.T) {
	repo, mock, closeFn := newStudentRepoMock(t)
	defer closeFn()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, mentor_id, grade")).
		WithArgs("s1").
		WillReturnRows(studentRow("s1", "Asha", 3))

	student, err := repo.FindByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "Asha", student.Name)
	assert.Equal(t, 4, student.Grades[models.CategoryMath])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListWithFilters(t *testing.T) {
	repo, mock, closeFn := newStudentRepoMock(t)
	defer closeFn()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, mentor_id, grade")).
		WithArgs(3, "%asha%").
		WillReturnRows(studentRow("s1", "Asha", 3))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM students")).
		WithArgs(3, "%asha%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	students, total, err := repo.List(context.Background(), StudentFilter{Grade: 3, Search: "Asha", Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Len(t, students, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreate(t *testing.T) {
	repo, mock, closeFn := newStudentRepoMock(t)
	defer closeFn()

	mock.ExpectExec("INSERT INTO students").
		WithArgs(sqlmock.AnyArg(), "Asha", nil, 3, nil, "", "", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	student := &models.Student{
		Name:     "Asha",
		Grade:    3,
		Grades:   models.SubjectGrades{},
		Batches:  models.BatchLabels{},
		IsActive: true,
	}
	require.NoError(t, repo.Create(context.Background(), student))
	assert.NotEmpty(t, student.ID)
	assert.False(t, student.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryExists(t *testing.T) {
	repo, mock, closeFn := newStudentRepoMock(t)
	defer closeFn()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM students")).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM students")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	ok, err := repo.Exists(context.Background(), "s1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryDeactivate(t *testing.T) {
	repo, mock, closeFn := newStudentRepoMock(t)
	defer closeFn()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE students SET is_active = false")).
		WithArgs("s1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Deactivate(context.Background(), "s1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryFindByIDsEmpty(t *testing.T) {
	repo, _, closeFn := newStudentRepoMock(t)
	defer closeFn()

	students, err := repo.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, students)
}
