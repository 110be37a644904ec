package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravi1475/school-erp-backend/internal/app/models"
	"github.com/ravi1475/school-erp-backend/internal/app/models/dto"
	"github.com/ravi1475/school-erp-backend/internal/pkg/apperrors"
	"github.com/ravi1475/school-erp-backend/internal/pkg/filestorage"
)

type fakeStudentStore struct {
	existing    map[string]bool
	createErr   error
	created     *models.Student
	createCalls int
}

func (f *fakeStudentStore) AdmissionNoExists(_ context.Context, _ int64, admissionNo string) (bool, error) {
	return f.existing[admissionNo], nil
}

func (f *fakeStudentStore) CreateAggregate(_ context.Context, student *models.Student) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	student.ID = 42
	f.created = student
	return nil
}

func (f *fakeStudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	if f.created != nil && f.created.ID == id {
		return f.created, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentStore) List(_ context.Context, _ int64, _ uint64, _ int) ([]*models.Student, int64, error) {
	return nil, 0, nil
}

func (f *fakeStudentStore) Update(_ context.Context, _ int64, _ *dto.UpdateStudentRequest) error {
	return nil
}

func (f *fakeStudentStore) Delete(_ context.Context, _ int64) error { return nil }

type fakeFileStorage struct {
	stageErr  error
	staged    []*filestorage.StagedFile
	committed []*filestorage.StagedFile
	discarded []*filestorage.StagedFile
}

func (f *fakeFileStorage) Stage(header *multipart.FileHeader, subPath string) (*filestorage.StagedFile, error) {
	if f.stageErr != nil {
		return nil, f.stageErr
	}
	file := &filestorage.StagedFile{
		StagedPath:     "/tmp/.staging/" + header.Filename,
		FinalPath:      "/tmp/" + subPath + "/" + header.Filename,
		AccessiblePath: "uploads/" + subPath + "/" + header.Filename,
		Filename:       header.Filename,
	}
	f.staged = append(f.staged, file)
	return file, nil
}

func (f *fakeFileStorage) Commit(files []*filestorage.StagedFile) error {
	f.committed = append(f.committed, files...)
	return nil
}

func (f *fakeFileStorage) Discard(files []*filestorage.StagedFile) {
	f.discarded = append(f.discarded, files...)
}

func (f *fakeFileStorage) DeleteFile(string) error { return nil }

func validAdmission() *dto.AdmissionRequest {
	req := &dto.AdmissionRequest{
		FirstName:    "Aman",
		LastName:     "Verma",
		DateOfBirth:  "2010-05-01",
		Gender:       "male",
		AdmissionNo:  "ADM500",
		MobileNumber: "9876543210",
		ClassName:    "5",
	}
	req.Address.City = "Delhi"
	req.Address.State = "Delhi"
	req.Father.Name = "Rajesh Verma"
	req.Mother.Name = "Sunita Verma"
	return req
}

func newTestStudentService() (*StudentService, *fakeStudentStore, *fakeFileStorage) {
	store := &fakeStudentStore{existing: map[string]bool{}}
	files := &fakeFileStorage{}
	return NewStudentService(store, files, 1), store, files
}

func TestAdmitMissingRequiredFields(t *testing.T) {
	svc, store, _ := newTestStudentService()

	req := validAdmission()
	req.AdmissionNo = ""
	req.Father.Name = ""

	_, err := svc.Admit(context.Background(), req, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Contains(t, err.Error(), "Admission No")
	assert.Contains(t, err.Error(), "Father's Name")
	assert.Zero(t, store.createCalls, "validation failure must not touch the database")
}

func TestAdmitRequiredFieldLabels(t *testing.T) {
	svc, _, _ := newTestStudentService()

	_, err := svc.Admit(context.Background(), &dto.AdmissionRequest{}, nil)

	require.Error(t, err)
	for _, label := range []string{
		"First Name", "Last Name", "Admission No", "Gender", "Mobile Number",
		"Class Name", "City", "State", "Father's Name", "Mother's Name",
	} {
		assert.Contains(t, err.Error(), label)
	}
}

func TestAdmitInvalidDateNamesField(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*dto.AdmissionRequest)
		wantField string
	}{
		{
			name:      "date of birth",
			mutate:    func(r *dto.AdmissionRequest) { r.DateOfBirth = "not-a-date" },
			wantField: "dateOfBirth",
		},
		{
			name:      "admission date",
			mutate:    func(r *dto.AdmissionRequest) { r.AdmissionDate = "31-31-2024x" },
			wantField: "admissionDate",
		},
		{
			name:      "tc date",
			mutate:    func(r *dto.AdmissionRequest) { r.LastEducation.TCDate = "bogus" },
			wantField: "lastEducation.tcDate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newTestStudentService()
			req := validAdmission()
			tt.mutate(req)

			_, err := svc.Admit(context.Background(), req, nil)

			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidDate)
			assert.Contains(t, err.Error(), tt.wantField)
			assert.Zero(t, store.createCalls)
		})
	}
}

func TestAdmitDuplicateAdmissionNo(t *testing.T) {
	svc, store, files := newTestStudentService()
	store.existing["ADM500"] = true

	_, err := svc.Admit(context.Background(), validAdmission(), nil)

	assert.ErrorIs(t, err, apperrors.ErrAdmissionNoAlreadyExists)
	assert.Zero(t, store.createCalls)
	assert.Empty(t, files.staged, "nothing staged for a rejected admission")
}

func TestAdmitDefaultsSchoolAndAdmissionDate(t *testing.T) {
	svc, store, _ := newTestStudentService()
	req := validAdmission()
	req.SchoolID = "not-a-number"

	before := time.Now()
	student, err := svc.Admit(context.Background(), req, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(1), student.SchoolID, "non-numeric schoolId falls back to the default")
	assert.False(t, student.AdmissionDate.Before(before.Truncate(time.Second)), "admission date defaults to now")
	assert.Equal(t, models.StudentActive, student.Status)
	require.NotNil(t, store.created)
}

func TestAdmitUsesProvidedSchoolID(t *testing.T) {
	svc, _, _ := newTestStudentService()
	req := validAdmission()
	req.SchoolID = "7"

	student, err := svc.Admit(context.Background(), req, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(7), student.SchoolID)
}

func TestAdmitNormalizesClassName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"5", "Class 5"},
		{" 12 ", "Class 12"},
		{"nursery", "Nursery"},
		{"Pre-Nur", "Nursery"},
		{"Class 8", "Class 8"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			svc, _, _ := newTestStudentService()
			req := validAdmission()
			req.ClassName = tt.raw

			student, err := svc.Admit(context.Background(), req, nil)

			require.NoError(t, err)
			assert.Equal(t, tt.want, student.ClassName)
		})
	}
}

func TestAdmitStagesAndCommitsDocuments(t *testing.T) {
	svc, store, files := newTestStudentService()

	uploads := map[string]*multipart.FileHeader{
		"documents.studentPhoto":     {Filename: "photo.jpg"},
		"documents.birthCertificate": {Filename: "birth.pdf"},
		"documents.unknownSlot":      {Filename: "ignored.bin"},
	}

	student, err := svc.Admit(context.Background(), validAdmission(), uploads)

	require.NoError(t, err)
	assert.Len(t, files.staged, 2, "only recognized slots are staged")
	assert.Len(t, files.committed, 2, "staged files publish after the write commits")
	assert.Empty(t, files.discarded)

	require.NotNil(t, student.Documents.StudentPhotoPath)
	assert.Contains(t, *student.Documents.StudentPhotoPath, "photo.jpg")
	require.NotNil(t, student.Documents.BirthCertificatePath)
	assert.Nil(t, student.Documents.MarkSheetPath)
	require.NotNil(t, store.created)
}

func TestAdmitDiscardsStagedFilesWhenWriteFails(t *testing.T) {
	svc, store, files := newTestStudentService()
	store.createErr = errors.New("connection reset")

	uploads := map[string]*multipart.FileHeader{
		"documents.studentPhoto": {Filename: "photo.jpg"},
	}

	_, err := svc.Admit(context.Background(), validAdmission(), uploads)

	require.Error(t, err)
	assert.Len(t, files.discarded, 1, "failed write must not leave orphaned files")
	assert.Empty(t, files.committed)
}

func TestAdmitPopulatesAggregate(t *testing.T) {
	svc, store, _ := newTestStudentService()
	req := validAdmission()
	req.AdmitSession.Class = "5"
	req.AdmitSession.Section = "B"
	req.Transport.Mode = "bus"
	req.LastEducation.School = "St. Mary's"
	req.LastEducation.TCDate = "2024-03-31"
	req.Other.SingleParent = "yes"
	req.Academic.RegistrationNo = "REG-77"

	student, err := svc.Admit(context.Background(), req, nil)

	require.NoError(t, err)
	require.NotNil(t, store.created)

	assert.Equal(t, "Rajesh Verma", student.Parent.FatherName)
	assert.Equal(t, "5", student.Session.Admit.Class)
	assert.Equal(t, "B", student.Session.Admit.Section)
	assert.Equal(t, "bus", student.Transport.Mode)
	assert.Equal(t, "St. Mary's", student.Education.LastSchool)
	require.NotNil(t, student.Education.TCDate)
	assert.Equal(t, "REG-77", student.Documents.RegistrationNo)
	assert.Equal(t, "yes", student.Other.SingleParent)
	assert.Equal(t, "no", student.Other.Minority, "unset flags default to no")
}
