package service

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/emscoord/internship-api/internal/models"
	"github.com/emscoord/internship-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func ptrUint(v uint) *uint {
	return &v
}

func strPtr(v string) *string {
	return &v
}

type memoryStudentRepo struct {
	students []models.Student
}

func (m *memoryStudentRepo) List(ctx context.Context, activeOnly bool) ([]models.Student, error) {
	if !activeOnly {
		return append([]models.Student(nil), m.students...), nil
	}
	var out []models.Student
	for _, student := range m.students {
		if student.Active {
			out = append(out, student)
		}
	}
	return out, nil
}

func (m *memoryStudentRepo) ListByCohort(ctx context.Context, cohortID uint) ([]models.Student, error) {
	var out []models.Student
	for _, student := range m.students {
		if student.Active && student.CohortID != nil && *student.CohortID == cohortID {
			out = append(out, student)
		}
	}
	return out, nil
}

func (m *memoryStudentRepo) GetByID(ctx context.Context, id uint) (models.Student, error) {
	for _, student := range m.students {
		if student.ID == id {
			return student, nil
		}
	}
	return models.Student{}, gorm.ErrRecordNotFound
}

func (m *memoryStudentRepo) Create(ctx context.Context, student *models.Student) error {
	student.ID = uint(len(m.students) + 1)
	m.students = append(m.students, *student)
	return nil
}

type memoryInternshipRepo struct {
	internships map[uint]models.Internship
	nextID      uint
}

func newMemoryInternshipRepo() *memoryInternshipRepo {
	return &memoryInternshipRepo{internships: make(map[uint]models.Internship)}
}

func (m *memoryInternshipRepo) sorted() []models.Internship {
	out := make([]models.Internship, 0, len(m.internships))
	for _, internship := range m.internships {
		out = append(out, internship)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memoryInternshipRepo) List(ctx context.Context, filter repository.InternshipFilter) ([]models.Internship, int64, error) {
	var out []models.Internship
	for _, internship := range m.sorted() {
		if filter.Phase != "" && internship.CurrentPhase != filter.Phase {
			continue
		}
		if filter.Status != "" && internship.Status != filter.Status {
			continue
		}
		out = append(out, internship)
	}
	return out, int64(len(out)), nil
}

func (m *memoryInternshipRepo) ListAll(ctx context.Context) ([]models.Internship, error) {
	return m.sorted(), nil
}

func (m *memoryInternshipRepo) ListActive(ctx context.Context) ([]models.Internship, error) {
	var out []models.Internship
	for _, internship := range m.sorted() {
		if internship.CurrentPhase != models.PhaseCompleted {
			out = append(out, internship)
		}
	}
	return out, nil
}

func (m *memoryInternshipRepo) GetByID(ctx context.Context, id uint) (models.Internship, error) {
	internship, ok := m.internships[id]
	if !ok {
		return models.Internship{}, gorm.ErrRecordNotFound
	}
	return internship, nil
}

func (m *memoryInternshipRepo) GetByStudent(ctx context.Context, studentID uint) (models.Internship, error) {
	for _, internship := range m.sorted() {
		if internship.StudentID == studentID {
			return internship, nil
		}
	}
	return models.Internship{}, gorm.ErrRecordNotFound
}

func (m *memoryInternshipRepo) Create(ctx context.Context, internship *models.Internship) error {
	m.nextID++
	internship.ID = m.nextID
	internship.CreatedAt = time.Now()
	m.internships[internship.ID] = *internship
	return nil
}

func (m *memoryInternshipRepo) Update(ctx context.Context, internship *models.Internship) error {
	if _, ok := m.internships[internship.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.internships[internship.ID] = *internship
	return nil
}

type memoryPreceptorRepo struct {
	preceptors []models.Preceptor
}

func (m *memoryPreceptorRepo) List(ctx context.Context, agencyID *uint) ([]models.Preceptor, error) {
	if agencyID == nil {
		return append([]models.Preceptor(nil), m.preceptors...), nil
	}
	var out []models.Preceptor
	for _, preceptor := range m.preceptors {
		if preceptor.AgencyID != nil && *preceptor.AgencyID == *agencyID {
			out = append(out, preceptor)
		}
	}
	return out, nil
}

func (m *memoryPreceptorRepo) GetByID(ctx context.Context, id uint) (models.Preceptor, error) {
	for _, preceptor := range m.preceptors {
		if preceptor.ID == id {
			return preceptor, nil
		}
	}
	return models.Preceptor{}, gorm.ErrRecordNotFound
}

func (m *memoryPreceptorRepo) Create(ctx context.Context, preceptor *models.Preceptor) error {
	preceptor.ID = uint(len(m.preceptors) + 1)
	m.preceptors = append(m.preceptors, *preceptor)
	return nil
}

type memoryAssignmentRepo struct {
	assignments map[uint]models.PreceptorAssignment
	nextID      uint
}

func newMemoryAssignmentRepo() *memoryAssignmentRepo {
	return &memoryAssignmentRepo{assignments: make(map[uint]models.PreceptorAssignment)}
}

func (m *memoryAssignmentRepo) sorted() []models.PreceptorAssignment {
	out := make([]models.PreceptorAssignment, 0, len(m.assignments))
	for _, assignment := range m.assignments {
		out = append(out, assignment)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memoryAssignmentRepo) ListByInternship(ctx context.Context, internshipID uint) ([]models.PreceptorAssignment, error) {
	var out []models.PreceptorAssignment
	for _, assignment := range m.sorted() {
		if assignment.InternshipID == internshipID {
			out = append(out, assignment)
		}
	}
	return out, nil
}

func (m *memoryAssignmentRepo) GetByID(ctx context.Context, id uint) (models.PreceptorAssignment, error) {
	assignment, ok := m.assignments[id]
	if !ok {
		return models.PreceptorAssignment{}, gorm.ErrRecordNotFound
	}
	return assignment, nil
}

func (m *memoryAssignmentRepo) ActivePrimary(ctx context.Context, internshipID uint) (models.PreceptorAssignment, error) {
	for _, assignment := range m.sorted() {
		if assignment.InternshipID == internshipID && assignment.Role == models.RolePrimary && assignment.Active {
			return assignment, nil
		}
	}
	return models.PreceptorAssignment{}, gorm.ErrRecordNotFound
}

func (m *memoryAssignmentRepo) Create(ctx context.Context, assignment *models.PreceptorAssignment) error {
	m.nextID++
	assignment.ID = m.nextID
	assignment.CreatedAt = time.Now()
	m.assignments[assignment.ID] = *assignment
	return nil
}

func (m *memoryAssignmentRepo) Update(ctx context.Context, assignment *models.PreceptorAssignment) error {
	if _, ok := m.assignments[assignment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.assignments[assignment.ID] = *assignment
	return nil
}

func (m *memoryAssignmentRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := m.assignments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.assignments, id)
	return nil
}
