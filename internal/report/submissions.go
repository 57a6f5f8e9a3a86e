package report

import (
	"fmt"
	"io"
	"time"

	"wtms/internal/models"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Submissions"

var header = []interface{}{
	"Submission ID", "Work ID", "Task Title", "Task Description",
	"Submission", "Submitted At", "Due Date", "Task Status",
}

// WriteSubmissions menulis feed submission ke workbook xlsx.
func WriteSubmissions(w io.Writer, items []models.SubmissionItem, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(sheetName, "A1", "H1", style)
	}

	for i, it := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			it.SubmissionID,
			it.WorkID,
			it.TaskTitle,
			it.TaskDescription,
			it.SubmissionText,
			it.SubmittedAt.In(loc).Format("2006-01-02 15:04:05"),
			it.DueDate.String(),
			string(it.TaskStatus),
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	_ = f.SetColWidth(sheetName, "C", "E", 30)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
