package reports

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"pantry/internal/platform/datekey"
)

// WriteDayPDF renders the day sheet as an A4 page: the roster table first,
// then the per-session summaries the pantry staff shop from.
func WriteDayPDF(w io.Writer, key, session string, roster []RosterRow) error {
	day, err := datekey.Parse(key)
	if err != nil {
		return err
	}
	if session == "" {
		session = SessionAll
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Pantry Sheet")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Date: %s (%s)", day.Format("January 2, 2006"), day.Weekday()))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Session: %s", session))
	pdf.Ln(10)

	widths := []float64{40, 55, 32, 32, 31}
	headers := []string{"Name", "Email", "Morning Drink", "Evening Drink", "Evening Snack"}
	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range roster {
		cells := []string{
			row.UserName,
			row.UserEmail,
			nameOrEmpty(row.MorningDrink),
			nameOrEmpty(row.EveningDrink),
			nameOrEmpty(row.EveningSnack),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(roster) == 0 {
		pdf.CellFormat(190, 6, "No selections recorded", "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	morning, eveningDrinks, eveningSnacks := SummarizeRoster(roster)
	writePDFSummary(pdf, "Morning Drinks", morning)
	writePDFSummary(pdf, "Evening Drinks", eveningDrinks)
	writePDFSummary(pdf, "Evening Snacks", eveningSnacks)

	return pdf.Output(w)
}

func writePDFSummary(pdf *gofpdf.Fpdf, title string, counts []NameCount) {
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	if len(counts) == 0 {
		pdf.Cell(0, 6, "No selections")
		pdf.Ln(6)
		return
	}
	for _, nc := range counts {
		pdf.Cell(0, 6, fmt.Sprintf("%s: %d", nc.Name, nc.Count))
		pdf.Ln(6)
	}
}
