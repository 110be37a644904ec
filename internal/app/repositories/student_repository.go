package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ravi1475/school-erp-backend/internal/app/models"
	"github.com/ravi1475/school-erp-backend/internal/app/models/dto"
	"github.com/ravi1475/school-erp-backend/internal/db"
	"github.com/ravi1475/school-erp-backend/internal/pkg/apperrors"
	"github.com/ravi1475/school-erp-backend/internal/pkg/dberrors"
	"github.com/ravi1475/school-erp-backend/internal/pkg/helpers"
	"github.com/ravi1475/school-erp-backend/internal/pkg/logger"
)

// StudentRepository handles database operations for the admission aggregate.
type StudentRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(pool db.Querier) *StudentRepository {
	return &StudentRepository{
		db: pool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// AdmissionNoExists checks if an admission number is already taken within a school.
func (r *StudentRepository) AdmissionNoExists(ctx context.Context, schoolID int64, admissionNo string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE school_id = $1 AND admission_no = $2)`,
		schoolID, admissionNo).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking admission number existence: %w", err)
	}

	return exists, nil
}

// CreateAggregate persists the whole admission aggregate in one transaction:
// the root student row followed by its six dependent rows, each keyed to the
// generated student id. Any failure rolls the entire write back so no partial
// student is ever visible.
func (r *StudentRepository) CreateAggregate(ctx context.Context, student *models.Student) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.createRoot(ctx, tx, student); err != nil {
			return err
		}

		id := student.ID
		student.Parent.StudentID = id
		student.Session.StudentID = id
		student.Transport.StudentID = id
		student.Documents.StudentID = id
		student.Education.StudentID = id
		student.Other.StudentID = id

		if err := r.createParentInfo(ctx, tx, student.Parent); err != nil {
			return err
		}
		if err := r.createSessionInfo(ctx, tx, student.Session); err != nil {
			return err
		}
		if err := r.createTransportInfo(ctx, tx, student.Transport); err != nil {
			return err
		}
		if err := r.createDocuments(ctx, tx, student.Documents); err != nil {
			return err
		}
		if err := r.createEducationInfo(ctx, tx, student.Education); err != nil {
			return err
		}
		return r.createOtherInfo(ctx, tx, student.Other)
	})

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_school_id_admission_no_key") {
			logger.Warn().Str("admissionNo", student.AdmissionNo).Int64("schoolID", student.SchoolID).Msg("Duplicate admission number")
			return apperrors.ErrAdmissionNoAlreadyExists
		}
		return err
	}

	logger.Info().Int64("studentID", student.ID).Str("admissionNo", student.AdmissionNo).Msg("Admission aggregate created")
	return nil
}

func (r *StudentRepository) createRoot(ctx context.Context, tx pgx.Tx, s *models.Student) error {
	query := `
		INSERT INTO students (
			school_id, admission_no, first_name, middle_name, last_name,
			date_of_birth, admission_date, gender, blood_group, nationality,
			religion, category, mobile_number, email, class_name, section,
			roll_number, address_house, address_street, address_city,
			address_state, address_pin, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23
		)
		RETURNING id, created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		s.SchoolID, s.AdmissionNo, s.FirstName, s.MiddleName, s.LastName,
		s.DateOfBirth, s.AdmissionDate, s.Gender, s.BloodGroup, s.Nationality,
		s.Religion, s.Category, s.MobileNumber, s.Email, s.ClassName, s.Section,
		s.RollNumber, s.AddressHouse, s.AddressStreet, s.AddressCity,
		s.AddressState, s.AddressPin, s.Status,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

func (r *StudentRepository) createParentInfo(ctx context.Context, tx pgx.Tx, p *models.ParentInfo) error {
	query := `
		INSERT INTO parent_info (
			student_id, father_name, father_occupation, father_contact, father_email,
			mother_name, mother_occupation, mother_contact,
			guardian_name, guardian_relation, guardian_contact
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	err := tx.QueryRow(ctx, query,
		p.StudentID, p.FatherName, p.FatherOccupation, p.FatherContact, p.FatherEmail,
		p.MotherName, p.MotherOccupation, p.MotherContact,
		p.GuardianName, p.GuardianRelation, p.GuardianContact,
	).Scan(&p.ID)

	if err != nil {
		return fmt.Errorf("error creating parent info: %w", err)
	}
	return nil
}

func (r *StudentRepository) createSessionInfo(ctx context.Context, tx pgx.Tx, s *models.SessionInfo) error {
	query := `
		INSERT INTO session_info (
			student_id,
			admit_group, admit_stream, admit_class, admit_section,
			admit_roll_no, admit_semester, admit_fee_group, admit_house,
			current_group, current_stream, current_class, current_section,
			current_roll_no, current_semester, current_fee_group, current_house
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id
	`
	err := tx.QueryRow(ctx, query,
		s.StudentID,
		s.Admit.Group, s.Admit.Stream, s.Admit.Class, s.Admit.Section,
		s.Admit.RollNo, s.Admit.Semester, s.Admit.FeeGroup, s.Admit.House,
		s.Current.Group, s.Current.Stream, s.Current.Class, s.Current.Section,
		s.Current.RollNo, s.Current.Semester, s.Current.FeeGroup, s.Current.House,
	).Scan(&s.ID)

	if err != nil {
		return fmt.Errorf("error creating session info: %w", err)
	}
	return nil
}

func (r *StudentRepository) createTransportInfo(ctx context.Context, tx pgx.Tx, t *models.TransportInfo) error {
	query := `
		INSERT INTO transport_info (
			student_id, mode, area, route, stand, vehicle_number, pickup_point
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := tx.QueryRow(ctx, query,
		t.StudentID, t.Mode, t.Area, t.Route, t.Stand, t.VehicleNumber, t.PickupPoint,
	).Scan(&t.ID)

	if err != nil {
		return fmt.Errorf("error creating transport info: %w", err)
	}
	return nil
}

func (r *StudentRepository) createDocuments(ctx context.Context, tx pgx.Tx, d *models.DocumentsInfo) error {
	query := `
		INSERT INTO documents (
			student_id, registration_no, birth_certificate_path,
			transfer_certificate_path, mark_sheet_path, aadhaar_card_path,
			student_photo_path, father_photo_path, mother_photo_path
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := tx.QueryRow(ctx, query,
		d.StudentID, d.RegistrationNo,
		helpers.GetNullString(d.BirthCertificatePath),
		helpers.GetNullString(d.TransferCertificatePath),
		helpers.GetNullString(d.MarkSheetPath),
		helpers.GetNullString(d.AadhaarCardPath),
		helpers.GetNullString(d.StudentPhotoPath),
		helpers.GetNullString(d.FatherPhotoPath),
		helpers.GetNullString(d.MotherPhotoPath),
	).Scan(&d.ID)

	if err != nil {
		return fmt.Errorf("error creating documents: %w", err)
	}
	return nil
}

func (r *StudentRepository) createEducationInfo(ctx context.Context, tx pgx.Tx, e *models.EducationInfo) error {
	query := `
		INSERT INTO education_info (
			student_id, last_school, school_address, class_attended,
			tc_number, tc_date, academic_year
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := tx.QueryRow(ctx, query,
		e.StudentID, e.LastSchool, e.SchoolAddress, e.ClassAttended,
		e.TCNumber, helpers.GetNullTime(e.TCDate), e.AcademicYear,
	).Scan(&e.ID)

	if err != nil {
		return fmt.Errorf("error creating education info: %w", err)
	}
	return nil
}

func (r *StudentRepository) createOtherInfo(ctx context.Context, tx pgx.Tx, o *models.OtherInfo) error {
	query := `
		INSERT INTO other_info (
			student_id, belongs_to_bpl, minority, single_parent,
			disability, disability_details, only_child
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := tx.QueryRow(ctx, query,
		o.StudentID, o.BelongsToBPL, o.Minority, o.SingleParent,
		o.Disability, o.DisabilityDetails, o.OnlyChild,
	).Scan(&o.ID)

	if err != nil {
		return fmt.Errorf("error creating other info: %w", err)
	}
	return nil
}

var studentColumns = []string{
	"id", "school_id", "admission_no", "first_name", "middle_name", "last_name",
	"date_of_birth", "admission_date", "gender", "blood_group", "nationality",
	"religion", "category", "mobile_number", "email", "class_name", "section",
	"roll_number", "address_house", "address_street", "address_city",
	"address_state", "address_pin", "status", "created_at", "updated_at",
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID, &s.SchoolID, &s.AdmissionNo, &s.FirstName, &s.MiddleName, &s.LastName,
		&s.DateOfBirth, &s.AdmissionDate, &s.Gender, &s.BloodGroup, &s.Nationality,
		&s.Religion, &s.Category, &s.MobileNumber, &s.Email, &s.ClassName, &s.Section,
		&s.RollNumber, &s.AddressHouse, &s.AddressStreet, &s.AddressCity,
		&s.AddressState, &s.AddressPin, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByID retrieves one student with all six dependents attached.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	if err := r.attachDependents(ctx, []*models.Student{student}); err != nil {
		return nil, err
	}

	return student, nil
}

// List retrieves a page of students for a school, each with all dependents
// attached, plus the total row count for pagination metadata.
func (r *StudentRepository) List(ctx context.Context, schoolID int64, offset uint64, limit int) ([]*models.Student, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students WHERE school_id = $1`, schoolID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"school_id": schoolID}).
		OrderBy("id").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachDependents(ctx, students); err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

// attachDependents loads all six dependent tables for the given students.
func (r *StudentRepository) attachDependents(ctx context.Context, students []*models.Student) error {
	if len(students) == 0 {
		return nil
	}

	byID := make(map[int64]*models.Student, len(students))
	ids := make([]int64, 0, len(students))
	for _, s := range students {
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}

	if err := r.attachParentInfo(ctx, ids, byID); err != nil {
		return err
	}
	if err := r.attachSessionInfo(ctx, ids, byID); err != nil {
		return err
	}
	if err := r.attachTransportInfo(ctx, ids, byID); err != nil {
		return err
	}
	if err := r.attachDocuments(ctx, ids, byID); err != nil {
		return err
	}
	if err := r.attachEducationInfo(ctx, ids, byID); err != nil {
		return err
	}
	return r.attachOtherInfo(ctx, ids, byID)
}

func (r *StudentRepository) attachParentInfo(ctx context.Context, ids []int64, byID map[int64]*models.Student) error {
	rows, err := r.db.Query(ctx, `
		SELECT id, student_id, father_name, father_occupation, father_contact,
		       father_email, mother_name, mother_occupation, mother_contact,
		       guardian_name, guardian_relation, guardian_contact
		FROM parent_info WHERE student_id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("error loading parent info: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.ParentInfo
		if err := rows.Scan(
			&p.ID, &p.StudentID, &p.FatherName, &p.FatherOccupation, &p.FatherContact,
			&p.FatherEmail, &p.MotherName, &p.MotherOccupation, &p.MotherContact,
			&p.GuardianName, &p.GuardianRelation, &p.GuardianContact,
		); err != nil {
			return err
		}
		if s, ok := byID[p.StudentID]; ok {
			s.Parent = &p
		}
	}
	return rows.Err()
}

func (r *StudentRepository) attachSessionInfo(ctx context.Context, ids []int64, byID map[int64]*models.Student) error {
	rows, err := r.db.Query(ctx, `
		SELECT id, student_id,
		       admit_group, admit_stream, admit_class, admit_section,
		       admit_roll_no, admit_semester, admit_fee_group, admit_house,
		       current_group, current_stream, current_class, current_section,
		       current_roll_no, current_semester, current_fee_group, current_house
		FROM session_info WHERE student_id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("error loading session info: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var si models.SessionInfo
		if err := rows.Scan(
			&si.ID, &si.StudentID,
			&si.Admit.Group, &si.Admit.Stream, &si.Admit.Class, &si.Admit.Section,
			&si.Admit.RollNo, &si.Admit.Semester, &si.Admit.FeeGroup, &si.Admit.House,
			&si.Current.Group, &si.Current.Stream, &si.Current.Class, &si.Current.Section,
			&si.Current.RollNo, &si.Current.Semester, &si.Current.FeeGroup, &si.Current.House,
		); err != nil {
			return err
		}
		if s, ok := byID[si.StudentID]; ok {
			s.Session = &si
		}
	}
	return rows.Err()
}

func (r *StudentRepository) attachTransportInfo(ctx context.Context, ids []int64, byID map[int64]*models.Student) error {
	rows, err := r.db.Query(ctx, `
		SELECT id, student_id, mode, area, route, stand, vehicle_number, pickup_point
		FROM transport_info WHERE student_id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("error loading transport info: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t models.TransportInfo
		if err := rows.Scan(
			&t.ID, &t.StudentID, &t.Mode, &t.Area, &t.Route, &t.Stand,
			&t.VehicleNumber, &t.PickupPoint,
		); err != nil {
			return err
		}
		if s, ok := byID[t.StudentID]; ok {
			s.Transport = &t
		}
	}
	return rows.Err()
}

func (r *StudentRepository) attachDocuments(ctx context.Context, ids []int64, byID map[int64]*models.Student) error {
	rows, err := r.db.Query(ctx, `
		SELECT id, student_id, registration_no, birth_certificate_path,
		       transfer_certificate_path, mark_sheet_path, aadhaar_card_path,
		       student_photo_path, father_photo_path, mother_photo_path
		FROM documents WHERE student_id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("error loading documents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d models.DocumentsInfo
		if err := rows.Scan(
			&d.ID, &d.StudentID, &d.RegistrationNo, &d.BirthCertificatePath,
			&d.TransferCertificatePath, &d.MarkSheetPath, &d.AadhaarCardPath,
			&d.StudentPhotoPath, &d.FatherPhotoPath, &d.MotherPhotoPath,
		); err != nil {
			return err
		}
		if s, ok := byID[d.StudentID]; ok {
			s.Documents = &d
		}
	}
	return rows.Err()
}

func (r *StudentRepository) attachEducationInfo(ctx context.Context, ids []int64, byID map[int64]*models.Student) error {
	rows, err := r.db.Query(ctx, `
		SELECT id, student_id, last_school, school_address, class_attended,
		       tc_number, tc_date, academic_year
		FROM education_info WHERE student_id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("error loading education info: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.EducationInfo
		if err := rows.Scan(
			&e.ID, &e.StudentID, &e.LastSchool, &e.SchoolAddress, &e.ClassAttended,
			&e.TCNumber, &e.TCDate, &e.AcademicYear,
		); err != nil {
			return err
		}
		if s, ok := byID[e.StudentID]; ok {
			s.Education = &e
		}
	}
	return rows.Err()
}

func (r *StudentRepository) attachOtherInfo(ctx context.Context, ids []int64, byID map[int64]*models.Student) error {
	rows, err := r.db.Query(ctx, `
		SELECT id, student_id, belongs_to_bpl, minority, single_parent,
		       disability, disability_details, only_child
		FROM other_info WHERE student_id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("error loading other info: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var o models.OtherInfo
		if err := rows.Scan(
			&o.ID, &o.StudentID, &o.BelongsToBPL, &o.Minority, &o.SingleParent,
			&o.Disability, &o.DisabilityDetails, &o.OnlyChild,
		); err != nil {
			return err
		}
		if s, ok := byID[o.StudentID]; ok {
			s.Other = &o
		}
	}
	return rows.Err()
}

// Update applies a partial update to the root row and, when parent fields are
// present, to the ParentInfo row, both inside one transaction so the
// aggregate can never end up half-updated.
func (r *StudentRepository) Update(ctx context.Context, id int64, req *dto.UpdateStudentRequest) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		rootSet := map[string]interface{}{"updated_at": time.Now()}
		setIf := func(column string, v *string) {
			if v != nil {
				rootSet[column] = *v
			}
		}
		setIf("first_name", req.FirstName)
		setIf("middle_name", req.MiddleName)
		setIf("last_name", req.LastName)
		setIf("gender", req.Gender)
		setIf("mobile_number", req.MobileNumber)
		setIf("email", req.Email)
		setIf("section", req.Section)
		setIf("roll_number", req.RollNumber)
		setIf("address_city", req.AddressCity)
		setIf("address_state", req.AddressState)
		if req.ClassName != nil {
			rootSet["class_name"] = models.NormalizeClass(*req.ClassName)
		}

		sql, args, err := r.sb.Update("students").SetMap(rootSet).Where(squirrel.Eq{"id": id}).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update student query: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("error updating student: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrStudentNotFound
		}

		if !req.HasParentFields() {
			return nil
		}

		parentSet := map[string]interface{}{}
		if req.FatherName != nil {
			parentSet["father_name"] = *req.FatherName
		}
		if req.FatherContact != nil {
			parentSet["father_contact"] = *req.FatherContact
		}
		if req.MotherName != nil {
			parentSet["mother_name"] = *req.MotherName
		}
		if req.MotherContact != nil {
			parentSet["mother_contact"] = *req.MotherContact
		}
		if req.GuardianName != nil {
			parentSet["guardian_name"] = *req.GuardianName
		}

		sql, args, err = r.sb.Update("parent_info").SetMap(parentSet).Where(squirrel.Eq{"student_id": id}).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update parent query: %w", err)
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error updating parent info: %w", err)
		}
		return nil
	})
}

// Delete removes a student. The dependent rows cascade via foreign keys.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// SetStatus updates the student's enrollment status within an existing transaction.
func (r *StudentRepository) SetStatus(ctx context.Context, tx pgx.Tx, id int64, status models.StudentStatus) error {
	cmdTag, err := tx.Exec(ctx, `UPDATE students SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error updating student status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}
