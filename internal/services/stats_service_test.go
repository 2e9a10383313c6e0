package services

import (
	"testing"

	"github.com/google/uuid"
)

func TestPercentageFloorsAtZero(t *testing.T) {
	if got := percentage(0, 0); got != 0.0 {
		t.Errorf("expected 0.0 for empty history, got %v", got)
	}
	if got := percentage(0, 5); got != 0.0 {
		t.Errorf("expected 0.0 for all absences, got %v", got)
	}
}

func TestPercentageRounding(t *testing.T) {
	tests := []struct {
		present, total int64
		want           float64
	}{
		{1, 3, 33.33},
		{2, 3, 66.67},
		{1, 1, 100.0},
		{1, 2, 50.0},
		{5, 6, 83.33},
	}
	for _, tt := range tests {
		if got := percentage(tt.present, tt.total); got != tt.want {
			t.Errorf("percentage(%d, %d) = %v, want %v", tt.present, tt.total, got, tt.want)
		}
	}
}

func TestAttendancePercentageForStudentWithoutRecords(t *testing.T) {
	env := newTestEnv(t)

	got, err := env.statsSvc.AttendancePercentage(env.students[0].ID, env.course.ID)
	if err != nil {
		t.Fatalf("AttendancePercentage failed: %v", err)
	}
	if got != 0.0 {
		t.Errorf("expected 0.0 without records, got %v", got)
	}
}

func TestCourseStatsUsesCourseWideRatio(t *testing.T) {
	env := newTestEnv(t)
	dates := []int{-2, -1}

	// Первый ученик присутствовал оба дня, второй — ни одного.
	// Общий процент курса 50.0 независимо от разбивки по ученикам.
	for _, offset := range dates {
		date := DateOnly(yesterday().AddDate(0, 0, offset+1))
		for i, status := range []bool{true, false} {
			if _, err := env.attendanceSvc.Mark(&MarkRequest{
				StudentID: env.students[i].ID, CourseID: env.course.ID,
				Date: date, Status: status, Actor: env.teacherActor,
			}); err != nil {
				t.Fatalf("Mark failed: %v", err)
			}
		}
	}

	stats, err := env.statsSvc.CourseStats(env.course.ID)
	if err != nil {
		t.Fatalf("CourseStats failed: %v", err)
	}

	if stats.DistinctDatesCount != 2 {
		t.Errorf("expected 2 distinct dates, got %d", stats.DistinctDatesCount)
	}
	if stats.TotalRecords != 4 {
		t.Errorf("expected 4 records, got %d", stats.TotalRecords)
	}
	if stats.PresentCount != 2 || stats.AbsentCount != 2 {
		t.Errorf("expected 2/2 present/absent, got %d/%d", stats.PresentCount, stats.AbsentCount)
	}
	if stats.EnrolledCount != 3 {
		t.Errorf("expected 3 enrolled, got %d", stats.EnrolledCount)
	}
	if stats.AveragePercentage != 50.0 {
		t.Errorf("expected course-wide 50.0, got %v", stats.AveragePercentage)
	}
}

func TestCourseStatsUnknownCourse(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.statsSvc.CourseStats(uuid.New()); err == nil {
		t.Fatal("expected error for unknown course")
	}
}

func TestStudentReportCoversEnrolledCourses(t *testing.T) {
	env := newTestEnv(t)
	student := env.students[0]

	if _, err := env.attendanceSvc.Mark(&MarkRequest{
		StudentID: student.ID, CourseID: env.course.ID,
		Date: yesterday(), Status: true, Actor: env.teacherActor,
	}); err != nil {
		t.Fatalf("Mark failed: %v", err)
	}

	report, err := env.statsSvc.StudentReport(student.ID)
	if err != nil {
		t.Fatalf("StudentReport failed: %v", err)
	}
	if len(report) != 1 {
		t.Fatalf("expected 1 course in report, got %d", len(report))
	}
	if report[0].Course.ID != env.course.ID {
		t.Error("report references the wrong course")
	}
	if report[0].TotalRecords != 1 || report[0].PresentCount != 1 {
		t.Errorf("expected 1/1 records, got %d/%d", report[0].TotalRecords, report[0].PresentCount)
	}
	if report[0].Percentage != 100.0 {
		t.Errorf("expected 100.0, got %v", report[0].Percentage)
	}
}
