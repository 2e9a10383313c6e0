package services

import (
	"errors"
	"testing"
	"time"

	"edujournal/internal/models"
)

func TestCreateStudentRejectsDuplicateRollNo(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.schoolSvc.CreateStudent(&CreateStudentRequest{
		Name:   "Новый ученик",
		RollNo: env.students[0].RollNo,
		Email:  "new@test.local",
		DOB:    time.Date(2008, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed for duplicate roll no, got %v", err)
	}
}

func TestCreateStudentValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.schoolSvc.CreateStudent(&CreateStudentRequest{Name: "", RollNo: 10})
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed for empty name, got %v", err)
	}

	_, err = env.schoolSvc.CreateStudent(&CreateStudentRequest{Name: "Ученик", RollNo: 0})
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed for non-positive roll no, got %v", err)
	}
}

func TestEnrollIsIdempotent(t *testing.T) {
	env := newTestEnv(t)

	student, err := env.schoolSvc.CreateStudent(&CreateStudentRequest{
		Name: "Новый ученик", RollNo: 10, Email: "new@test.local",
	})
	if err != nil {
		t.Fatalf("CreateStudent failed: %v", err)
	}

	if err := env.schoolSvc.Enroll(env.course.ID, student.ID); err != nil {
		t.Fatalf("first Enroll failed: %v", err)
	}
	if err := env.schoolSvc.Enroll(env.course.ID, student.ID); err != nil {
		t.Fatalf("repeated Enroll must be a no-op: %v", err)
	}

	count, err := env.courseRepo.EnrolledCount(env.course.ID)
	if err != nil {
		t.Fatalf("EnrolledCount failed: %v", err)
	}
	if count != 4 {
		t.Errorf("expected 4 enrolled students, got %d", count)
	}
}

func TestUnenrollBlocksFurtherMarking(t *testing.T) {
	env := newTestEnv(t)
	student := env.students[0]

	if err := env.schoolSvc.Unenroll(env.course.ID, student.ID); err != nil {
		t.Fatalf("Unenroll failed: %v", err)
	}

	_, err := env.attendanceSvc.Mark(&MarkRequest{
		StudentID: student.ID, CourseID: env.course.ID,
		Date: yesterday(), Status: true, Actor: env.teacherActor,
	})
	if !errors.Is(err, ErrNotEnrolled) {
		t.Fatalf("expected ErrNotEnrolled after unenroll, got %v", err)
	}
}

func TestCreateCourseRequiresExistingTeacher(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.schoolSvc.CreateCourse("Геометрия", nil, env.students[0].ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown teacher, got %v", err)
	}

	course, err := env.schoolSvc.CreateCourse("Геометрия", nil, env.teacher.ID)
	if err != nil {
		t.Fatalf("CreateCourse failed: %v", err)
	}
	if course.TeacherID != env.teacher.ID {
		t.Error("course must belong to the given teacher")
	}
}

func TestDeleteStudentCascadesRecords(t *testing.T) {
	env := newTestEnv(t)
	student := env.students[0]

	if _, err := env.attendanceSvc.Mark(&MarkRequest{
		StudentID: student.ID, CourseID: env.course.ID,
		Date: yesterday(), Status: true, Actor: env.teacherActor,
	}); err != nil {
		t.Fatalf("Mark failed: %v", err)
	}
	if _, err := env.gradeSvc.Create(&CreateGradeRequest{
		StudentID: student.ID, CourseID: env.course.ID,
		AssignmentName: "Контрольная работа 1",
		Score:          80, MaxScore: 100, Actor: env.teacherActor,
	}); err != nil {
		t.Fatalf("Create grade failed: %v", err)
	}

	if err := env.schoolSvc.DeleteStudent(student.ID); err != nil {
		t.Fatalf("DeleteStudent failed: %v", err)
	}

	if count := countRows(t, env.db, &models.Attendance{}); count != 0 {
		t.Errorf("attendance must be cascade-deleted, got %d rows", count)
	}
	if count := countRows(t, env.db, &models.Grade{}); count != 0 {
		t.Errorf("grades must be cascade-deleted, got %d rows", count)
	}

	enrolled, err := env.courseRepo.EnrolledCount(env.course.ID)
	if err != nil {
		t.Fatalf("EnrolledCount failed: %v", err)
	}
	if enrolled != 2 {
		t.Errorf("expected 2 remaining enrollments, got %d", enrolled)
	}

	// Журнал переживает каскад: ссылка на отметку деградирует в NULL
	var entries []models.AuditLog
	if err := env.db.Find(&entries).Error; err != nil {
		t.Fatalf("failed to load audit log: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	if entries[0].AttendanceID != nil {
		t.Error("audit reference must be nulled by the cascade")
	}
	if entries[0].StudentName != student.Name || entries[0].StudentRollNo != student.RollNo {
		t.Error("audit entry must keep the denormalized student snapshot")
	}
}

func TestDeleteCourseCascadesRecords(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.attendanceSvc.Mark(&MarkRequest{
		StudentID: env.students[0].ID, CourseID: env.course.ID,
		Date: yesterday(), Status: false, Actor: env.teacherActor,
	}); err != nil {
		t.Fatalf("Mark failed: %v", err)
	}

	if err := env.schoolSvc.DeleteCourse(env.course.ID); err != nil {
		t.Fatalf("DeleteCourse failed: %v", err)
	}

	if count := countRows(t, env.db, &models.Attendance{}); count != 0 {
		t.Errorf("attendance must be cascade-deleted, got %d rows", count)
	}
	enrolled, err := env.courseRepo.EnrolledCount(env.course.ID)
	if err != nil {
		t.Fatalf("EnrolledCount failed: %v", err)
	}
	if enrolled != 0 {
		t.Errorf("enrollments must be cascade-deleted, got %d rows", enrolled)
	}
	if count := countRows(t, env.db, &models.AuditLog{}); count != 1 {
		t.Errorf("audit log must survive the cascade, got %d rows", count)
	}
}
