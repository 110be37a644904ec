package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravi1475/school-erp-backend/internal/app/models"
	"github.com/ravi1475/school-erp-backend/internal/pkg/apperrors"
)

func admissionAggregate() *models.Student {
	return &models.Student{
		SchoolID:     1,
		AdmissionNo:  "ADM500",
		FirstName:    "Aman",
		LastName:     "Verma",
		DateOfBirth:  time.Date(2010, 5, 1, 0, 0, 0, 0, time.UTC),
		Gender:       "male",
		MobileNumber: "9876543210",
		ClassName:    "Class 5",
		AddressCity:  "Pune",
		AddressState: "Maharashtra",
		Status:       models.StudentActive,
		Parent:       &models.ParentInfo{FatherName: "Rajesh Verma", MotherName: "Sunita Verma"},
		Session:      &models.SessionInfo{Admit: models.SessionSnapshot{Class: "Class 5"}},
		Transport:    &models.TransportInfo{Mode: "Bus"},
		Documents:    &models.DocumentsInfo{},
		Education:    &models.EducationInfo{},
		Other: &models.OtherInfo{
			BelongsToBPL: "no", Minority: "no", SingleParent: "no",
			Disability: "no", OnlyChild: "no",
		},
	}
}

// anyArgs builds a WithArgs list of the given arity; pgxmock matches
// argument counts even when the test does not care about the values.
func anyArgs(n int) []interface{} {
	args := make([]interface{}, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func expectRootInsert(mock pgxmock.PgxPoolIface, id int64) {
	now := time.Now()
	mock.ExpectQuery("INSERT INTO students").
		WithArgs(anyArgs(23)...).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(id, now, now))
}

func expectDependentInsert(mock pgxmock.PgxPoolIface, table string, argCount int, id int64) {
	mock.ExpectQuery("INSERT INTO " + table).
		WithArgs(anyArgs(argCount)...).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(id))
}

func TestCreateAggregateCommitsAllSevenRows(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	expectRootInsert(mock, 42)
	expectDependentInsert(mock, "parent_info", 11, 1)
	expectDependentInsert(mock, "session_info", 17, 2)
	expectDependentInsert(mock, "transport_info", 7, 3)
	expectDependentInsert(mock, "documents", 9, 4)
	expectDependentInsert(mock, "education_info", 7, 5)
	expectDependentInsert(mock, "other_info", 7, 6)
	mock.ExpectCommit()

	repo := NewStudentRepository(mock)
	student := admissionAggregate()

	require.NoError(t, repo.CreateAggregate(context.Background(), student))

	assert.Equal(t, int64(42), student.ID)
	assert.Equal(t, int64(42), student.Parent.StudentID)
	assert.Equal(t, int64(42), student.Session.StudentID)
	assert.Equal(t, int64(42), student.Transport.StudentID)
	assert.Equal(t, int64(42), student.Documents.StudentID)
	assert.Equal(t, int64(42), student.Education.StudentID)
	assert.Equal(t, int64(42), student.Other.StudentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAggregateRollsBackWhenDependentInsertFails(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	expectRootInsert(mock, 42)
	expectDependentInsert(mock, "parent_info", 11, 1)
	expectDependentInsert(mock, "session_info", 17, 2)
	mock.ExpectQuery("INSERT INTO transport_info").
		WithArgs(anyArgs(7)...).
		WillReturnError(errors.New("null value in column"))
	mock.ExpectRollback()

	repo := NewStudentRepository(mock)

	err = repo.CreateAggregate(context.Background(), admissionAggregate())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "transport info")
	assert.NoError(t, mock.ExpectationsWereMet(),
		"the transaction must roll back with no commit and no further inserts")
}

func TestCreateAggregateRollsBackWhenRootInsertFails(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO students").
		WithArgs(anyArgs(23)...).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	repo := NewStudentRepository(mock)

	err = repo.CreateAggregate(context.Background(), admissionAggregate())

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAggregateMapsDuplicateAdmissionConstraint(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO students").
		WithArgs(anyArgs(23)...).
		WillReturnError(&pgconn.PgError{
			Code:           "23505",
			ConstraintName: "students_school_id_admission_no_key",
		})
	mock.ExpectRollback()

	repo := NewStudentRepository(mock)

	err = repo.CreateAggregate(context.Background(), admissionAggregate())

	assert.ErrorIs(t, err, apperrors.ErrAdmissionNoAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
