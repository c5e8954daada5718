// Package pdf renders report cards for download.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"homeschool/internal/models"
)

// RenderReportCard produces the printable PDF for one report card.
func RenderReportCard(card *models.ReportCard, student *models.Student) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Report Card - "+student.FirstName+" "+student.LastName, false)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(0, 12, "Report Card", "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 12)
	doc.CellFormat(0, 8, fmt.Sprintf("%s %s", student.FirstName, student.LastName), "", 1, "C", false, 0, "")
	doc.CellFormat(0, 8, fmt.Sprintf("%s (%s - %s)",
		card.Term,
		card.PeriodStart.Format("Jan 2, 2006"),
		card.PeriodEnd.Format("Jan 2, 2006")), "", 1, "C", false, 0, "")
	doc.Ln(6)

	// Entries table.
	doc.SetFont("Helvetica", "B", 11)
	doc.SetFillColor(230, 230, 230)
	doc.CellFormat(70, 9, "Subject", "1", 0, "L", true, 0, "")
	doc.CellFormat(25, 9, "Grade", "1", 0, "C", true, 0, "")
	doc.CellFormat(25, 9, "Score", "1", 0, "C", true, 0, "")
	doc.CellFormat(70, 9, "Comments", "1", 1, "L", true, 0, "")

	doc.SetFont("Helvetica", "", 11)
	for _, entry := range card.Entries {
		score := ""
		if entry.Score != nil {
			score = fmt.Sprintf("%.1f", *entry.Score)
		}
		comments := ""
		if entry.Comments != nil {
			comments = *entry.Comments
		}
		doc.CellFormat(70, 8, entry.SubjectName, "1", 0, "L", false, 0, "")
		doc.CellFormat(25, 8, entry.LetterGrade, "1", 0, "C", false, 0, "")
		doc.CellFormat(25, 8, score, "1", 0, "C", false, 0, "")
		doc.CellFormat(70, 8, comments, "1", 1, "L", false, 0, "")
	}
	doc.Ln(6)

	if gpa, ok := card.GPA(); ok {
		doc.SetFont("Helvetica", "B", 12)
		doc.CellFormat(0, 8, fmt.Sprintf("GPA: %.2f", gpa), "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report card pdf: %w", err)
	}
	return buf.Bytes(), nil
}
