package services

import (
	"errors"
	"testing"
	"time"

	"edujournal/internal/models"

	"github.com/google/uuid"
)

func TestMarkCreatesAttendanceWithAudit(t *testing.T) {
	env := newTestEnv(t)
	student := env.students[0]

	result, err := env.attendanceSvc.Mark(&MarkRequest{
		StudentID: student.ID,
		CourseID:  env.course.ID,
		Date:      yesterday(),
		Status:    true,
		Actor:     env.teacherActor,
		IPAddress: "10.0.0.1",
	})
	if err != nil {
		t.Fatalf("Mark failed: %v", err)
	}
	if !result.Created {
		t.Error("expected a new attendance record")
	}
	if !result.Attendance.Status {
		t.Error("expected status to be present")
	}

	entries, err := env.auditRepo.ListByAttendance(result.Attendance.ID)
	if err != nil {
		t.Fatalf("ListByAttendance failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}

	entry := entries[0]
	if entry.Action != models.AuditActionCreate {
		t.Errorf("expected create action, got %s", entry.Action)
	}
	if entry.StudentName != student.Name || entry.StudentRollNo != student.RollNo {
		t.Errorf("audit entry has wrong student snapshot: %s / %d", entry.StudentName, entry.StudentRollNo)
	}
	if entry.CourseName != env.course.Name {
		t.Errorf("audit entry has wrong course name: %s", entry.CourseName)
	}
	if entry.OldStatus != nil {
		t.Error("create entry must not carry an old status")
	}
	if entry.NewStatus == nil || !*entry.NewStatus {
		t.Error("create entry must carry the new status")
	}
	if entry.IPAddress != "10.0.0.1" {
		t.Errorf("audit entry has wrong IP: %s", entry.IPAddress)
	}
}

func TestMarkUpdatesExistingRecordInPlace(t *testing.T) {
	env := newTestEnv(t)
	student := env.students[0]
	date := yesterday()

	first, err := env.attendanceSvc.Mark(&MarkRequest{
		StudentID: student.ID, CourseID: env.course.ID,
		Date: date, Status: true, Actor: env.teacherActor,
	})
	if err != nil {
		t.Fatalf("first Mark failed: %v", err)
	}

	second, err := env.attendanceSvc.Mark(&MarkRequest{
		StudentID: student.ID, CourseID: env.course.ID,
		Date: date, Status: false, Actor: env.teacherActor,
	})
	if err != nil {
		t.Fatalf("second Mark failed: %v", err)
	}

	if second.Created {
		t.Error("second mark must update, not create")
	}
	if second.Attendance.ID != first.Attendance.ID {
		t.Error("update must keep the original record ID")
	}
	if count := countRows(t, env.db, &models.Attendance{}); count != 1 {
		t.Fatalf("expected exactly 1 attendance row, got %d", count)
	}

	entries, err := env.auditRepo.ListByAttendance(first.Attendance.ID)
	if err != nil {
		t.Fatalf("ListByAttendance failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(entries))
	}

	update := entries[1]
	if update.Action != models.AuditActionUpdate {
		t.Errorf("expected update action, got %s", update.Action)
	}
	if update.OldStatus == nil || !*update.OldStatus {
		t.Error("update entry must carry old status true")
	}
	if update.NewStatus == nil || *update.NewStatus {
		t.Error("update entry must carry new status false")
	}
}

func TestMarkIdenticalResubmissionStillAudited(t *testing.T) {
	env := newTestEnv(t)
	student := env.students[0]
	date := yesterday()

	req := &MarkRequest{
		StudentID: student.ID, CourseID: env.course.ID,
		Date: date, Status: true, Actor: env.teacherActor,
	}
	result, err := env.attendanceSvc.Mark(req)
	if err != nil {
		t.Fatalf("first Mark failed: %v", err)
	}
	if _, err := env.attendanceSvc.Mark(req); err != nil {
		t.Fatalf("resubmission failed: %v", err)
	}

	entries, err := env.auditRepo.ListByAttendance(result.Attendance.ID)
	if err != nil {
		t.Fatalf("ListByAttendance failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(entries))
	}
	if entries[1].Action != models.AuditActionUpdate {
		t.Errorf("identical resubmission must still be an update, got %s", entries[1].Action)
	}
}

func TestMarkRejectsUnenrolledStudent(t *testing.T) {
	env := newTestEnv(t)

	outsider := models.Student{
		ID: uuid.New(), Name: "Посторонний", RollNo: 99,
		Email: "outsider@test.local",
	}
	if err := env.db.Create(&outsider).Error; err != nil {
		t.Fatalf("failed to create student: %v", err)
	}

	_, err := env.attendanceSvc.Mark(&MarkRequest{
		StudentID: outsider.ID, CourseID: env.course.ID,
		Date: yesterday(), Status: true, Actor: env.teacherActor,
	})
	if !errors.Is(err, ErrNotEnrolled) {
		t.Fatalf("expected ErrNotEnrolled, got %v", err)
	}

	if count := countRows(t, env.db, &models.Attendance{}); count != 0 {
		t.Errorf("rejected mark must not persist attendance, got %d rows", count)
	}
	if count := countRows(t, env.db, &models.AuditLog{}); count != 0 {
		t.Errorf("rejected mark must not persist audit entries, got %d rows", count)
	}
}

func TestMarkRejectsFutureDate(t *testing.T) {
	env := newTestEnv(t)

	fixed := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	env.attendanceSvc.now = func() time.Time { return fixed }

	_, err := env.attendanceSvc.Mark(&MarkRequest{
		StudentID: env.students[0].ID, CourseID: env.course.ID,
		Date: fixed.AddDate(0, 0, 1), Status: true, Actor: env.teacherActor,
	})
	if !errors.Is(err, ErrFutureDate) {
		t.Fatalf("expected ErrFutureDate, got %v", err)
	}
	if count := countRows(t, env.db, &models.Attendance{}); count != 0 {
		t.Errorf("future-dated mark must not persist, got %d rows", count)
	}

	// Сегодняшняя дата допустима: граница — строго будущее
	if _, err := env.attendanceSvc.Mark(&MarkRequest{
		StudentID: env.students[0].ID, CourseID: env.course.ID,
		Date: fixed, Status: true, Actor: env.teacherActor,
	}); err != nil {
		t.Fatalf("marking today must succeed: %v", err)
	}
}

func TestCreateOnlyRejectsDuplicateKey(t *testing.T) {
	env := newTestEnv(t)
	student := env.students[0]
	date := yesterday()

	if _, err := env.attendanceSvc.Mark(&MarkRequest{
		StudentID: student.ID, CourseID: env.course.ID,
		Date: date, Status: true, Actor: env.teacherActor, CreateOnly: true,
	}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := env.attendanceSvc.Mark(&MarkRequest{
		StudentID: student.ID, CourseID: env.course.ID,
		Date: date, Status: false, Actor: env.teacherActor, CreateOnly: true,
	})
	if !errors.Is(err, ErrDuplicateRecord) {
		t.Fatalf("expected ErrDuplicateRecord, got %v", err)
	}

	// Исходная отметка не изменилась
	record, err := env.attendanceRepo.GetByKey(student.ID, env.course.ID, date)
	if err != nil {
		t.Fatalf("GetByKey failed: %v", err)
	}
	if !record.Status {
		t.Error("rejected duplicate must not overwrite the existing record")
	}
}

func TestMarkForbiddenForForeignTeacher(t *testing.T) {
	env := newTestEnv(t)

	otherID := uuid.New()
	foreign := &Actor{
		User:      &models.User{ID: uuid.New(), Role: models.RoleTeacher},
		TeacherID: &otherID,
	}

	_, err := env.attendanceSvc.Mark(&MarkRequest{
		StudentID: env.students[0].ID, CourseID: env.course.ID,
		Date: yesterday(), Status: true, Actor: foreign,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestMarkBulkAppliesWholeRoster(t *testing.T) {
	env := newTestEnv(t)

	roster := map[uuid.UUID]bool{
		env.students[0].ID: true,
		env.students[1].ID: false,
		env.students[2].ID: true,
	}

	marked, err := env.attendanceSvc.MarkBulk(&BulkMarkRequest{
		CourseID: env.course.ID, Date: yesterday(),
		Roster: roster, Actor: env.teacherActor,
	})
	if err != nil {
		t.Fatalf("MarkBulk failed: %v", err)
	}
	if marked != 3 {
		t.Errorf("expected 3 marked, got %d", marked)
	}

	if count := countRows(t, env.db, &models.Attendance{}); count != 3 {
		t.Errorf("expected 3 attendance rows, got %d", count)
	}
	if count := countRows(t, env.db, &models.AuditLog{}); count != 3 {
		t.Errorf("expected 3 audit entries, got %d", count)
	}
}

func TestMarkBulkRejectsRosterWithUnenrolledStudent(t *testing.T) {
	env := newTestEnv(t)

	outsider := models.Student{
		ID: uuid.New(), Name: "Посторонний", RollNo: 99,
		Email: "outsider@test.local",
	}
	if err := env.db.Create(&outsider).Error; err != nil {
		t.Fatalf("failed to create student: %v", err)
	}

	roster := map[uuid.UUID]bool{
		env.students[0].ID: true,
		outsider.ID:        true,
	}

	_, err := env.attendanceSvc.MarkBulk(&BulkMarkRequest{
		CourseID: env.course.ID, Date: yesterday(),
		Roster: roster, Actor: env.teacherActor,
	})
	if !errors.Is(err, ErrNotEnrolled) {
		t.Fatalf("expected ErrNotEnrolled, got %v", err)
	}

	// Ни одной строки: список применяется целиком или не применяется вовсе
	if count := countRows(t, env.db, &models.Attendance{}); count != 0 {
		t.Errorf("rejected bulk must not persist anything, got %d rows", count)
	}
}

func TestMarkBulkRollsBackOnMidRosterFailure(t *testing.T) {
	env := newTestEnv(t)

	// Ломаем журнал: каждая отметка падает на записи аудита,
	// и транзакция обязана откатить уже записанные строки
	if err := env.db.Migrator().DropTable(&models.AuditLog{}); err != nil {
		t.Fatalf("failed to drop audit table: %v", err)
	}

	roster := map[uuid.UUID]bool{
		env.students[0].ID: true,
		env.students[1].ID: true,
	}
	_, err := env.attendanceSvc.MarkBulk(&BulkMarkRequest{
		CourseID: env.course.ID, Date: yesterday(),
		Roster: roster, Actor: env.teacherActor,
	})
	if !errors.Is(err, ErrTransactionFailed) {
		t.Fatalf("expected ErrTransactionFailed, got %v", err)
	}

	if count := countRows(t, env.db, &models.Attendance{}); count != 0 {
		t.Errorf("failed bulk must leave the store untouched, got %d rows", count)
	}
}

func TestDeleteWritesAuditEntryAndKeepsHistory(t *testing.T) {
	env := newTestEnv(t)
	student := env.students[0]

	result, err := env.attendanceSvc.Mark(&MarkRequest{
		StudentID: student.ID, CourseID: env.course.ID,
		Date: yesterday(), Status: true, Actor: env.teacherActor,
	})
	if err != nil {
		t.Fatalf("Mark failed: %v", err)
	}

	if err := env.attendanceSvc.Delete(result.Attendance.ID, env.teacherActor, "10.0.0.1", ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("teacher delete must be forbidden, got %v", err)
	}

	if err := env.attendanceSvc.Delete(result.Attendance.ID, env.adminActor, "10.0.0.1", "correction"); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}

	if count := countRows(t, env.db, &models.Attendance{}); count != 0 {
		t.Errorf("attendance must be gone, got %d rows", count)
	}

	// История переживает удаление отметки: create + delete
	var entries []models.AuditLog
	if err := env.db.Order("created_at ASC").Find(&entries).Error; err != nil {
		t.Fatalf("failed to load audit log: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(entries))
	}
	deleted := entries[1]
	if deleted.Action != models.AuditActionDelete {
		t.Errorf("expected delete action, got %s", deleted.Action)
	}
	if deleted.StudentName != student.Name || deleted.CourseName != env.course.Name {
		t.Error("delete entry must keep the denormalized snapshot")
	}
	if deleted.OldStatus == nil || !*deleted.OldStatus {
		t.Error("delete entry must carry the last known status")
	}

	// Ссылки на удаленную отметку деградируют в NULL у всех записей
	for i, entry := range entries {
		if entry.AttendanceID != nil {
			t.Errorf("entry %d must not reference the deleted attendance", i)
		}
	}
}

func TestBulkThenCorrectionScenario(t *testing.T) {
	env := newTestEnv(t)
	date := yesterday()

	// Утренняя перекличка: двое отмечены
	roster := map[uuid.UUID]bool{
		env.students[0].ID: true,
		env.students[1].ID: false,
	}
	if _, err := env.attendanceSvc.MarkBulk(&BulkMarkRequest{
		CourseID: env.course.ID, Date: date,
		Roster: roster, Actor: env.teacherActor,
	}); err != nil {
		t.Fatalf("first bulk failed: %v", err)
	}

	// Исправление после урока: статусы меняются на противоположные
	roster[env.students[0].ID] = false
	roster[env.students[1].ID] = true
	if _, err := env.attendanceSvc.MarkBulk(&BulkMarkRequest{
		CourseID: env.course.ID, Date: date,
		Roster: roster, Actor: env.teacherActor,
	}); err != nil {
		t.Fatalf("second bulk failed: %v", err)
	}

	// Две строки посещаемости и полная история: 2 создания + 2 обновления
	if count := countRows(t, env.db, &models.Attendance{}); count != 2 {
		t.Errorf("expected 2 attendance rows, got %d", count)
	}

	var creates, updates int64
	env.db.Model(&models.AuditLog{}).Where("action = ?", models.AuditActionCreate).Count(&creates)
	env.db.Model(&models.AuditLog{}).Where("action = ?", models.AuditActionUpdate).Count(&updates)
	if creates != 2 || updates != 2 {
		t.Errorf("expected 2 creates and 2 updates, got %d / %d", creates, updates)
	}

	record, err := env.attendanceRepo.GetByKey(env.students[0].ID, env.course.ID, date)
	if err != nil {
		t.Fatalf("GetByKey failed: %v", err)
	}
	if record.Status {
		t.Error("correction must flip the stored status")
	}
}
