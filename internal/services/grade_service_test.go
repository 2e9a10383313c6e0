package services

import (
	"errors"
	"testing"
)

func TestCalculateGrade(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		maxScore float64
		want     string
	}{
		{"excellent", 92, 100, "A"},
		{"lower A bound", 90, 100, "A"},
		{"good", 85, 100, "B"},
		{"average", 73, 100, "C"},
		{"lower D bound", 60, 100, "D"},
		{"failing", 45, 100, "F"},
		{"zero max score", 50, 0, ""},
		{"negative max score", 50, -1, ""},
		{"scaled max", 18, 20, "A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateGrade(tt.score, tt.maxScore); got != tt.want {
				t.Errorf("CalculateGrade(%v, %v) = %q, want %q", tt.score, tt.maxScore, got, tt.want)
			}
		})
	}
}

func TestGradeCreateComputesLetterOnce(t *testing.T) {
	env := newTestEnv(t)

	grade, err := env.gradeSvc.Create(&CreateGradeRequest{
		StudentID:      env.students[0].ID,
		CourseID:       env.course.ID,
		AssignmentName: "Контрольная работа 1",
		Score:          92,
		MaxScore:       100,
		Actor:          env.teacherActor,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if grade.Letter != "A" {
		t.Errorf("expected letter A, got %q", grade.Letter)
	}
}

func TestGradeCreateKeepsExplicitLetter(t *testing.T) {
	env := newTestEnv(t)

	// Явно заданная буква не перезаписывается вычислением
	grade, err := env.gradeSvc.Create(&CreateGradeRequest{
		StudentID:      env.students[0].ID,
		CourseID:       env.course.ID,
		AssignmentName: "Пересдача",
		Score:          95,
		MaxScore:       100,
		Letter:         "B",
		Actor:          env.teacherActor,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if grade.Letter != "B" {
		t.Errorf("expected explicit letter B, got %q", grade.Letter)
	}
}

func TestGradeCreateValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.gradeSvc.Create(&CreateGradeRequest{
		StudentID:      env.students[0].ID,
		CourseID:       env.course.ID,
		AssignmentName: "Контрольная работа 1",
		Score:          120,
		MaxScore:       100,
		Actor:          env.teacherActor,
	})
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed for score above max, got %v", err)
	}

	_, err = env.gradeSvc.Create(&CreateGradeRequest{
		StudentID: env.students[0].ID,
		CourseID:  env.course.ID,
		Score:     50,
		MaxScore:  100,
		Actor:     env.teacherActor,
	})
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed for missing assignment name, got %v", err)
	}
}

func TestGradeCreateRejectsDuplicateAssignment(t *testing.T) {
	env := newTestEnv(t)

	req := &CreateGradeRequest{
		StudentID:      env.students[0].ID,
		CourseID:       env.course.ID,
		AssignmentName: "Контрольная работа 1",
		Score:          80,
		MaxScore:       100,
		Actor:          env.teacherActor,
	}
	if _, err := env.gradeSvc.Create(req); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if _, err := env.gradeSvc.Create(req); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed for duplicate assignment, got %v", err)
	}
}

func TestGradeUpdateRecomputesLetterOnlyWhenReset(t *testing.T) {
	env := newTestEnv(t)

	grade, err := env.gradeSvc.Create(&CreateGradeRequest{
		StudentID:      env.students[0].ID,
		CourseID:       env.course.ID,
		AssignmentName: "Контрольная работа 1",
		Score:          92,
		MaxScore:       100,
		Actor:          env.teacherActor,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Правка баллов без поля letter сохраняет прежнюю букву
	updated, err := env.gradeSvc.Update(&UpdateGradeRequest{
		GradeID:  grade.ID,
		Score:    55,
		MaxScore: 100,
		Actor:    env.teacherActor,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Letter != "A" {
		t.Errorf("letter must survive a score-only update, got %q", updated.Letter)
	}

	// Явно заданная буква перекрывает вычисление
	explicit := "B"
	updated, err = env.gradeSvc.Update(&UpdateGradeRequest{
		GradeID:  grade.ID,
		Score:    55,
		MaxScore: 100,
		Letter:   &explicit,
		Actor:    env.teacherActor,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Letter != "B" {
		t.Errorf("explicit letter must survive the update, got %q", updated.Letter)
	}

	// Сброшенная буква перевычисляется из новых баллов
	reset := ""
	updated, err = env.gradeSvc.Update(&UpdateGradeRequest{
		GradeID:  grade.ID,
		Score:    55,
		MaxScore: 100,
		Letter:   &reset,
		Actor:    env.teacherActor,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Letter != "F" {
		t.Errorf("reset letter must be recomputed to F, got %q", updated.Letter)
	}
}

func TestGradeForbiddenForForeignTeacher(t *testing.T) {
	env := newTestEnv(t)
	foreign := foreignTeacherActor()

	_, err := env.gradeSvc.Create(&CreateGradeRequest{
		StudentID:      env.students[0].ID,
		CourseID:       env.course.ID,
		AssignmentName: "Контрольная работа 1",
		Score:          80,
		MaxScore:       100,
		Actor:          foreign,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
