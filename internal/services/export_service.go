package services

import (
	"encoding/csv"
	"fmt"
	"io"

	"edujournal/internal/models"
	"edujournal/internal/repository"

	"github.com/xuri/excelize/v2"
)

// ExportRow представляет одну строку выгрузки посещаемости.
// Форма полей — контракт совместимости: ее читают внешние инструменты.
type ExportRow struct {
	Date        string `json:"date"`
	StudentName string `json:"student_name"`
	RollNo      int    `json:"roll_no"`
	Course      string `json:"course"`
	Status      string `json:"status"`
	MarkedBy    string `json:"marked_by"`
}

// exportHeader задает порядок колонок CSV и XLSX выгрузок
var exportHeader = []string{"Date", "Student Name", "Roll No", "Course", "Status", "Marked By"}

// ExportService формирует выгрузки посещаемости в CSV, JSON и XLSX
type ExportService struct {
	attendanceRepo repository.AttendanceRepository
}

// NewExportService создает новый сервис выгрузок
func NewExportService(attendanceRepo repository.AttendanceRepository) *ExportService {
	return &ExportService{attendanceRepo: attendanceRepo}
}

// Rows возвращает строки выгрузки по заданным фильтрам
func (s *ExportService) Rows(filter repository.AttendanceFilter) ([]ExportRow, error) {
	records, err := s.attendanceRepo.Filter(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance: %w", err)
	}

	rows := make([]ExportRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, toExportRow(record))
	}
	return rows, nil
}

// WriteCSV пишет выгрузку в CSV. Порядок колонок фиксирован контрактом:
// Date, Student Name, Roll No, Course, Status, Marked By.
func (s *ExportService) WriteCSV(w io.Writer, rows []ExportRow) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.Date,
			row.StudentName,
			fmt.Sprintf("%d", row.RollNo),
			row.Course,
			row.Status,
			row.MarkedBy,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteXLSX пишет выгрузку в книгу Excel с теми же колонками, что и CSV
func (s *ExportService) WriteXLSX(w io.Writer, rows []ExportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Attendance"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, header := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, row := range rows {
		line := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", line), row.Date)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", line), row.StudentName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", line), row.RollNo)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", line), row.Course)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", line), row.Status)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", line), row.MarkedBy)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

// toExportRow приводит отметку к строке выгрузки
func toExportRow(record models.Attendance) ExportRow {
	status := "Absent"
	if record.Status {
		status = "Present"
	}

	markedBy := "N/A"
	if record.MarkedBy != nil {
		markedBy = record.MarkedBy.Username
	}

	return ExportRow{
		Date:        record.Date.Format("2006-01-02"),
		StudentName: record.Student.Name,
		RollNo:      record.Student.RollNo,
		Course:      record.Course.Name,
		Status:      status,
		MarkedBy:    markedBy,
	}
}
