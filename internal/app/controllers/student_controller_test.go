package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravi1475/school-erp-backend/internal/app/models"
	"github.com/ravi1475/school-erp-backend/internal/app/models/dto"
	"github.com/ravi1475/school-erp-backend/internal/app/services"
	"github.com/ravi1475/school-erp-backend/internal/pkg/apperrors"
	"github.com/ravi1475/school-erp-backend/internal/pkg/filestorage"
)

type stubStudentStore struct {
	students map[int64]*models.Student
	taken    map[string]bool
}

func newStubStudentStore() *stubStudentStore {
	return &stubStudentStore{
		students: map[int64]*models.Student{},
		taken:    map[string]bool{},
	}
}

func (s *stubStudentStore) AdmissionNoExists(_ context.Context, _ int64, admissionNo string) (bool, error) {
	return s.taken[admissionNo], nil
}

func (s *stubStudentStore) CreateAggregate(_ context.Context, student *models.Student) error {
	student.ID = int64(len(s.students) + 1)
	s.students[student.ID] = student
	s.taken[student.AdmissionNo] = true
	return nil
}

func (s *stubStudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	student, ok := s.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

func (s *stubStudentStore) List(_ context.Context, _ int64, _ uint64, _ int) ([]*models.Student, int64, error) {
	var out []*models.Student
	for _, st := range s.students {
		out = append(out, st)
	}
	return out, int64(len(out)), nil
}

func (s *stubStudentStore) Update(_ context.Context, id int64, _ *dto.UpdateStudentRequest) error {
	if _, ok := s.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

func (s *stubStudentStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(s.students, id)
	return nil
}

type noopStorage struct{}

func (noopStorage) Stage(*multipart.FileHeader, string) (*filestorage.StagedFile, error) {
	return &filestorage.StagedFile{AccessiblePath: "uploads/students/x"}, nil
}
func (noopStorage) Commit([]*filestorage.StagedFile) error { return nil }
func (noopStorage) Discard([]*filestorage.StagedFile)      {}
func (noopStorage) DeleteFile(string) error                { return nil }

func newTestRouter(store *stubStudentStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := services.NewStudentService(store, noopStorage{}, 1)
	ctrl := NewStudentController(svc)

	router := gin.New()
	router.POST("/api/v1/students/admissions", ctrl.Admit)
	router.GET("/api/v1/students/:id", ctrl.GetStudent)
	router.DELETE("/api/v1/students/:id", ctrl.DeleteStudent)
	return router
}

func admissionBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func validFields() map[string]string {
	return map[string]string{
		"firstName":     "Aman",
		"lastName":      "Verma",
		"dateOfBirth":   "2010-05-01",
		"gender":        "male",
		"admissionNo":   "ADM500",
		"mobileNumber":  "9876543210",
		"className":     "5",
		"address.city":  "Delhi",
		"address.state": "Delhi",
		"father.name":   "Rajesh Verma",
		"mother.name":   "Sunita Verma",
	}
}

func TestAdmitReturnsCreatedEnvelope(t *testing.T) {
	router := newTestRouter(newStubStudentStore())

	body, contentType := admissionBody(t, validFields())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/students/admissions", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Student admitted successfully", resp.Message)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Aman", data["firstName"])
	assert.Equal(t, "ADM500", data["admissionNo"])
	assert.NotZero(t, data["id"])
}

func TestAdmitMissingFieldsReturnsBadRequest(t *testing.T) {
	store := newStubStudentStore()
	router := newTestRouter(store)

	fields := validFields()
	delete(fields, "admissionNo")
	delete(fields, "father.name")

	body, contentType := admissionBody(t, fields)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/students/admissions", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "Admission No")
	assert.Contains(t, resp.Message, "Father's Name")
	assert.Empty(t, store.students, "nothing persisted on validation failure")
}

func TestAdmitDuplicateAdmissionNoReturnsConflict(t *testing.T) {
	store := newStubStudentStore()
	store.taken["ADM500"] = true
	router := newTestRouter(store)

	body, contentType := admissionBody(t, validFields())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/students/admissions", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Message)
}

func TestGetStudentNotFound(t *testing.T) {
	router := newTestRouter(newStubStudentStore())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/students/99", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
}

func TestDeleteStudent(t *testing.T) {
	store := newStubStudentStore()
	store.students[5] = &models.Student{ID: 5, FirstName: "Aman"}
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/students/5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.students)

	// Deleting again reports not found.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/students/5", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdmitInvalidDateReturnsBadRequestNamingField(t *testing.T) {
	router := newTestRouter(newStubStudentStore())

	fields := validFields()
	fields["dateOfBirth"] = "not-a-date"

	body, contentType := admissionBody(t, fields)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/students/admissions", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "dateOfBirth")
}
