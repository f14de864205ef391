// README: PDF rendering for stored plans (A4 summary document).
package plans

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/phpdave11/gofpdf"
)

// packingOrder fixes the category ordering in the rendered checklist;
// unknown categories follow alphabetically.
var packingOrder = []string{
	"documents", "clothing", "footwear", "toiletries", "electronics",
	"medications", "accessories", "activity_specific", "optional",
}

// BuildPDF renders a plan into a printable A4 document and returns the
// bytes together with a download filename.
func BuildPDF(p *Plan) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Travel Plan", false)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRAVEL PLAN")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, tr(p.Destination))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	facts := []string{
		fmt.Sprintf("Dates: %s to %s (%d days)", p.StartDate, p.EndDate, p.Days),
		fmt.Sprintf("Season: %s", safe(p.Season, "-")),
		fmt.Sprintf("Travelers: %d", p.Travelers),
		fmt.Sprintf("Budget level: %s", safe(p.BudgetLevel, "-")),
	}
	if p.Origin != "" {
		facts = append(facts, fmt.Sprintf("Origin: %s", p.Origin))
	}
	if len(p.Preferences) > 0 {
		facts = append(facts, fmt.Sprintf("Interests: %s", strings.Join(p.Preferences, ", ")))
	}
	for _, f := range facts {
		pdf.Cell(0, 6, tr(f))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	writeItinerary(pdf, tr, p)
	writeBudget(pdf, tr, p.Budget)
	writePacking(pdf, tr, p.Packing)

	if len(p.Warnings) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		for _, w := range p.Warnings {
			pdf.MultiCell(0, 5, tr("Note: "+w), "", "", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("wayfarer-%s-%s.pdf", slugify(p.Destination), p.StartDate)
	return buf.Bytes(), filename, nil
}

func writeItinerary(pdf *gofpdf.Fpdf, tr func(string) string, p *Plan) {
	if len(p.Itinerary) == 0 && p.RawItinerary == "" {
		return
	}

	sectionTitle(pdf, "Itinerary")

	if len(p.Itinerary) == 0 {
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(p.RawItinerary), "", "", false)
		pdf.Ln(4)
		return
	}

	for _, d := range p.Itinerary {
		header := fmt.Sprintf("Day %d", d.Day)
		if d.Title != "" {
			header += " - " + d.Title
		}
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, tr(header))
		pdf.Ln(7)

		sub := d.Date
		if d.DayOfWeek != "" {
			sub += " (" + d.DayOfWeek + ")"
		}
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Cell(0, 5, tr(sub))
		pdf.Ln(6)

		writeBlock(pdf, tr, "Morning", d.Morning)
		writeBlock(pdf, tr, "Afternoon", d.Afternoon)
		writeBlock(pdf, tr, "Evening", d.Evening)

		if d.Transportation != "" {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.MultiCell(0, 4.5, tr("Getting around: "+d.Transportation), "", "", false)
		}
		if d.TotalCost > 0 {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.Cell(0, 6, fmt.Sprintf("Day total: %s", formatUSD(d.TotalCost)))
			pdf.Ln(6)
		}
		pdf.Ln(3)
	}
}

func writeBlock(pdf *gofpdf.Fpdf, tr func(string) string, label string, acts []Activity) {
	if len(acts) == 0 {
		return
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 5, label)
	pdf.Ln(5)

	for _, a := range acts {
		line := a.Activity
		if a.Time != "" {
			line = a.Time + "  " + line
		}
		if a.Cost > 0 {
			line += fmt.Sprintf(" (%s)", formatUSD(a.Cost))
		}
		pdf.SetFont("Helvetica", "", 10)
		pdf.Cell(0, 5, tr(line))
		pdf.Ln(5)

		if a.Description != "" {
			pdf.SetFont("Helvetica", "", 9)
			pdf.MultiCell(0, 4.5, tr(a.Description), "", "", false)
		}

		var meta []string
		if a.Location != "" {
			meta = append(meta, a.Location)
		}
		if a.Duration != "" {
			meta = append(meta, a.Duration)
		}
		if a.Tips != "" {
			meta = append(meta, "Tip: "+a.Tips)
		}
		if len(meta) > 0 {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.MultiCell(0, 4.5, tr(strings.Join(meta, " | ")), "", "", false)
		}
	}
	pdf.Ln(2)
}

func writeBudget(pdf *gofpdf.Fpdf, tr func(string) string, b *BudgetBreakdown) {
	if b == nil {
		return
	}

	sectionTitle(pdf, "Budget")

	row := func(label string, amount float64, notes string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(55, 7, label, "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 7, formatUSD(amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(0, 7, tr(clip(notes, 58)), "1", 1, "", false, 0, "")
	}

	row("Accommodation", b.Accommodation.Total, b.Accommodation.Notes)
	row("Food", b.Food.TripTotal, "")
	row("Transportation", b.Transportation.Total, b.Transportation.Notes)
	row("Activities", b.Activities.Total, b.Activities.Notes)
	row("Shopping", b.Shopping.Budget, b.Shopping.Notes)
	row("Emergency fund", b.EmergencyFund, "")

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Total per person: %s", formatUSD(b.TotalPerPerson)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Total all travelers: %s", formatUSD(b.TotalAllTravelers)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Daily average: %s", formatUSD(b.DailyAverage)))
	pdf.Ln(8)

	if len(b.SavingsTips) > 0 {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Cell(0, 5, "Savings tips")
		pdf.Ln(5)
		pdf.SetFont("Helvetica", "", 9)
		for _, tip := range b.SavingsTips {
			pdf.MultiCell(0, 4.5, tr("- "+tip), "", "", false)
		}
		pdf.Ln(2)
	}
}

func writePacking(pdf *gofpdf.Fpdf, tr func(string) string, packing PackingList) {
	if len(packing) == 0 {
		return
	}

	sectionTitle(pdf, "Packing list")

	for _, cat := range packingCategories(packing) {
		items := packing[cat]
		if len(items) == 0 {
			continue
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Cell(0, 5, tr(categoryLabel(cat)))
		pdf.Ln(5)
		pdf.SetFont("Helvetica", "", 9)
		for _, item := range items {
			pdf.MultiCell(0, 4.5, tr("[ ] "+item), "", "", false)
		}
		pdf.Ln(2)
	}
}

// packingCategories returns the known categories in fixed order followed by
// any extra categories alphabetically, so output is deterministic.
func packingCategories(packing PackingList) []string {
	var out []string
	seen := make(map[string]bool)
	for _, cat := range packingOrder {
		if _, ok := packing[cat]; ok {
			out = append(out, cat)
			seen[cat] = true
		}
	}
	var extra []string
	for cat := range packing {
		if !seen[cat] {
			extra = append(extra, cat)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

func sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 9, title)
	pdf.Ln(10)
}

func categoryLabel(cat string) string {
	label := strings.ReplaceAll(cat, "_", " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

func formatUSD(v float64) string {
	return fmt.Sprintf("$%.0f", v)
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "trip"
	}
	if len(out) > 40 {
		out = strings.Trim(out[:40], "-")
	}
	return out
}
