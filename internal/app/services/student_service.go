package services

import (
	"context"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/ravi1475/school-erp-backend/internal/app/models"
	"github.com/ravi1475/school-erp-backend/internal/app/models/dto"
	"github.com/ravi1475/school-erp-backend/internal/pkg/apperrors"
	"github.com/ravi1475/school-erp-backend/internal/pkg/filestorage"
	"github.com/ravi1475/school-erp-backend/internal/pkg/helpers"
	"github.com/ravi1475/school-erp-backend/internal/pkg/logger"
)

// StudentStore is the persistence surface the student service needs.
type StudentStore interface {
	AdmissionNoExists(ctx context.Context, schoolID int64, admissionNo string) (bool, error)
	CreateAggregate(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	List(ctx context.Context, schoolID int64, offset uint64, limit int) ([]*models.Student, int64, error)
	Update(ctx context.Context, id int64, req *dto.UpdateStudentRequest) error
	Delete(ctx context.Context, id int64) error
}

// StudentService implements the admission pipeline and student CRUD.
type StudentService struct {
	store           StudentStore
	files           filestorage.FileStorage
	defaultSchoolID int64
}

// NewStudentService creates a new student service
func NewStudentService(store StudentStore, files filestorage.FileStorage, defaultSchoolID int64) *StudentService {
	return &StudentService{
		store:           store,
		files:           files,
		defaultSchoolID: defaultSchoolID,
	}
}

// Admit validates and persists one admission. All validation (required
// fields, date parsing, duplicate admission number) happens before any row is
// written. Uploaded documents are staged first and only become permanent once
// the database transaction commits; a failed write discards them.
func (s *StudentService) Admit(ctx context.Context, req *dto.AdmissionRequest, uploads map[string]*multipart.FileHeader) (*models.Student, error) {
	if missing := req.MissingRequired(); len(missing) > 0 {
		return nil, apperrors.NewValidationError("Missing required fields: " + strings.Join(missing, ", "))
	}

	dateOfBirth, err := helpers.ParseDate(req.DateOfBirth, "dateOfBirth")
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidDate, err.Error())
	}

	admissionDate := time.Now()
	if req.AdmissionDate != "" {
		admissionDate, err = helpers.ParseDate(req.AdmissionDate, "admissionDate")
		if err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidDate, err.Error())
		}
	}

	tcDate, err := helpers.ParseOptionalDate(req.LastEducation.TCDate, "lastEducation.tcDate")
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidDate, err.Error())
	}

	schoolID := s.defaultSchoolID
	if parsed, err := strconv.ParseInt(req.SchoolID, 10, 64); err == nil && parsed > 0 {
		schoolID = parsed
	}

	exists, err := s.store.AdmissionNoExists(ctx, schoolID, req.AdmissionNo)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrAdmissionNoAlreadyExists
	}

	staged, documents, err := s.stageDocuments(uploads)
	if err != nil {
		return nil, err
	}
	documents.RegistrationNo = req.Academic.RegistrationNo

	student := &models.Student{
		SchoolID:      schoolID,
		AdmissionNo:   req.AdmissionNo,
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		LastName:      req.LastName,
		DateOfBirth:   dateOfBirth,
		AdmissionDate: admissionDate,
		Gender:        req.Gender,
		BloodGroup:    req.BloodGroup,
		Nationality:   req.Nationality,
		Religion:      req.Religion,
		Category:      req.Category,
		MobileNumber:  req.MobileNumber,
		Email:         req.Email,
		ClassName:     models.NormalizeClass(req.ClassName),
		Section:       req.Section,
		RollNumber:    req.RollNumber,
		AddressHouse:  req.Address.HouseNo,
		AddressStreet: req.Address.Street,
		AddressCity:   req.Address.City,
		AddressState:  req.Address.State,
		AddressPin:    req.Address.PinCode,
		Status:        models.StudentActive,
		Parent: &models.ParentInfo{
			FatherName:       req.Father.Name,
			FatherOccupation: req.Father.Occupation,
			FatherContact:    req.Father.ContactNumber,
			FatherEmail:      req.Father.Email,
			MotherName:       req.Mother.Name,
			MotherOccupation: req.Mother.Occupation,
			MotherContact:    req.Mother.ContactNumber,
			GuardianName:     req.Guardian.Name,
			GuardianRelation: req.Guardian.Relation,
			GuardianContact:  req.Guardian.ContactNumber,
		},
		Session: &models.SessionInfo{
			Admit:   sessionSnapshot(req.AdmitSession),
			Current: sessionSnapshot(req.CurrentSession),
		},
		Transport: &models.TransportInfo{
			Mode:          req.Transport.Mode,
			Area:          req.Transport.Area,
			Route:         req.Transport.Route,
			Stand:         req.Transport.Stand,
			VehicleNumber: req.Transport.VehicleNumber,
			PickupPoint:   req.Transport.PickupPoint,
		},
		Documents: documents,
		Education: &models.EducationInfo{
			LastSchool:    req.LastEducation.School,
			SchoolAddress: req.LastEducation.Address,
			ClassAttended: req.LastEducation.ClassAttended,
			TCNumber:      req.LastEducation.TCNumber,
			TCDate:        tcDate,
			AcademicYear:  req.LastEducation.AcademicYear,
		},
		Other: &models.OtherInfo{
			BelongsToBPL:      defaultNo(req.Other.BelongsToBPL),
			Minority:          defaultNo(req.Other.Minority),
			SingleParent:      defaultNo(req.Other.SingleParent),
			Disability:        defaultNo(req.Other.Disability),
			DisabilityDetails: req.Other.DisabilityDetails,
			OnlyChild:         defaultNo(req.Other.OnlyChild),
		},
	}

	if err := s.store.CreateAggregate(ctx, student); err != nil {
		s.files.Discard(staged)
		return nil, err
	}

	if err := s.files.Commit(staged); err != nil {
		// The student row is already committed; the document paths point at
		// files that failed to publish. Log loudly rather than failing the
		// admission that the caller already paid for.
		logger.Error().Err(err).Int64("studentID", student.ID).Msg("Failed to publish staged admission documents")
	}

	return student, nil
}

// stageDocuments stages every recognized document upload and returns both the
// staged handles and a DocumentsInfo with the paths the files will have after
// commit. A staging failure discards everything already staged.
func (s *StudentService) stageDocuments(uploads map[string]*multipart.FileHeader) ([]*filestorage.StagedFile, *models.DocumentsInfo, error) {
	documents := &models.DocumentsInfo{}
	slots := map[string]**string{
		"birthCertificate":    &documents.BirthCertificatePath,
		"transferCertificate": &documents.TransferCertificatePath,
		"markSheet":           &documents.MarkSheetPath,
		"aadhaarCard":         &documents.AadhaarCardPath,
		"studentPhoto":        &documents.StudentPhotoPath,
		"fatherPhoto":         &documents.FatherPhotoPath,
		"motherPhoto":         &documents.MotherPhotoPath,
	}

	var staged []*filestorage.StagedFile
	for _, slot := range dto.DocumentSlots {
		header, ok := uploads["documents."+slot]
		if !ok || header == nil {
			continue
		}
		file, err := s.files.Stage(header, "students")
		if err != nil {
			s.files.Discard(staged)
			return nil, nil, apperrors.NewBadRequestError("failed to store uploaded file: " + slot)
		}
		staged = append(staged, file)
		path := file.AccessiblePath
		*slots[slot] = &path
	}

	return staged, documents, nil
}

func sessionSnapshot(g dto.SessionGroup) models.SessionSnapshot {
	return models.SessionSnapshot{
		Group:    g.Group,
		Stream:   g.Stream,
		Class:    g.Class,
		Section:  g.Section,
		RollNo:   g.RollNo,
		Semester: g.Semester,
		FeeGroup: g.FeeGroup,
		House:    g.House,
	}
}

func defaultNo(value string) string {
	if value == "" {
		return "no"
	}
	return value
}

// GetStudent retrieves one student aggregate.
func (s *StudentService) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	return s.store.GetByID(ctx, id)
}

// ListStudents returns one page of students for a school.
func (s *StudentService) ListStudents(ctx context.Context, schoolID int64, page, size int) (*dto.PaginatedResponse, error) {
	if schoolID <= 0 {
		schoolID = s.defaultSchoolID
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	students, total, err := s.store.List(ctx, schoolID, offset, limit)
	if err != nil {
		return nil, err
	}

	return &dto.PaginatedResponse{
		Items:      students,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, nil
}

// UpdateStudent applies a partial update to the root row and, when present,
// the parent record, atomically.
func (s *StudentService) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	if err := s.store.Update(ctx, id, req); err != nil {
		return nil, err
	}
	return s.store.GetByID(ctx, id)
}

// DeleteStudent removes a student; dependent rows cascade.
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info().Int64("studentID", id).Msg("Student deleted")
	return nil
}
