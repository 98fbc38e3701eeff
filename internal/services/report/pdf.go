package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
)

const (
	pdfFont     = "Arial"
	pdfFontSize = 9
	pdfLine     = 5.0
	pdfWidth    = 190.0 // A4 less 10mm margins
)

// renderPDF lays the report out as A4 tables.
func renderPDF(r *models.AnalysisReport, title string) ([]byte, error) {
	if title == "" {
		title = "Portfolio Analysis Report"
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()

	pdf.SetFont(pdfFont, "B", 14)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.SetFont(pdfFont, "", pdfFontSize)
	pdf.CellFormat(0, pdfLine, "Generated "+r.Timestamp.UTC().Format("2006-01-02 15:04 MST"), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	perf := r.PerformanceAnalysis
	heading(pdf, "Performance")
	table(pdf, []string{"Total Cost", "Current Value", "Total Return", "Return %"}, [][]string{{
		common.FormatMoney(perf.TotalCost),
		common.FormatMoney(perf.CurrentValue),
		common.FormatSignedMoney(perf.TotalReturn),
		common.FormatSignedPct(perf.ReturnPercentage),
	}})

	heading(pdf, "Positions")
	rows := make([][]string, 0, len(r.PortfolioSummary.Positions))
	for _, p := range r.PortfolioSummary.Positions {
		rows = append(rows, []string{
			p.Symbol,
			fmt.Sprintf("%d", p.Quantity),
			common.FormatMoney(p.PurchasePrice),
			common.FormatMoney(p.CurrentPrice),
			common.FormatMoney(p.PositionValue),
			common.FormatSignedPct(p.ReturnPercentage),
		})
	}
	table(pdf, []string{"Symbol", "Qty", "Purchase", "Price", "Value", "Return %"}, rows)

	risk := r.RiskAnalysis
	heading(pdf, "Risk")
	table(pdf, []string{"Risk Level", "HHI", "Top 3", "Volatility"}, [][]string{{
		strings.ToUpper(string(risk.RiskLevel)),
		common.FormatRatio(risk.ConcentrationMetrics.HHI),
		common.FormatPct(risk.ConcentrationMetrics.Top3Concentration * 100),
		common.FormatRatio(risk.PortfolioVolatility),
	}})

	sent := r.MarketSentiment
	heading(pdf, "Market Sentiment")
	paragraph(pdf, fmt.Sprintf("Overall %s (strength %s). %s",
		sent.OverallSentiment, common.FormatRatio(sent.SentimentStrength), sent.NewsSummary))
	if sent.RecentEvents.PortfolioSummary != "" {
		paragraph(pdf, sent.RecentEvents.PortfolioSummary)
	}

	if len(r.Forecast.Scenarios) > 0 {
		heading(pdf, "Forecast")
		header := []string{"Scenario", "Return"}
		for _, p := range r.Forecast.Scenarios[0].Projections {
			header = append(header, fmt.Sprintf("Year %d", p.Year))
		}
		rows = rows[:0]
		for _, sc := range r.Forecast.Scenarios {
			row := []string{sc.Name, common.FormatPct(sc.AnnualReturn)}
			for _, p := range sc.Projections {
				row = append(row, common.FormatMoney(p.Value))
			}
			rows = append(rows, row)
		}
		table(pdf, header, rows)
	}

	heading(pdf, "Recommendations")
	if len(r.Recommendations) == 0 {
		paragraph(pdf, "No recommendations.")
	}
	for i, rec := range r.Recommendations {
		paragraph(pdf, fmt.Sprintf("%d. [%s] %s: %s", i+1, strings.ToUpper(string(rec.Priority)), rec.Action, rec.Details))
	}

	if len(r.DataGaps) > 0 {
		heading(pdf, "Data Gaps")
		for _, g := range r.DataGaps {
			paragraph(pdf, fmt.Sprintf("%s: missing %s, used %s", g.Symbol, g.Kind, g.Fallback))
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF output: %w", err)
	}
	return buf.Bytes(), nil
}

func heading(pdf *fpdf.Fpdf, text string) {
	pdf.Ln(3)
	pdf.SetFont(pdfFont, "B", 12)
	pdf.CellFormat(0, 7, text, "", 1, "L", false, 0, "")
	pdf.SetFont(pdfFont, "", pdfFontSize)
}

func paragraph(pdf *fpdf.Fpdf, text string) {
	pdf.MultiCell(0, pdfLine, text, "", "L", false)
	pdf.Ln(1)
}

// table draws equal-width columns with a shaded header row.
func table(pdf *fpdf.Fpdf, header []string, rows [][]string) {
	if len(header) == 0 {
		return
	}
	w := pdfWidth / float64(len(header))

	pdf.SetFont(pdfFont, "B", pdfFontSize)
	pdf.SetFillColor(229, 231, 235)
	for _, h := range header {
		pdf.CellFormat(w, 6, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(pdfFont, "", pdfFontSize)
	for _, row := range rows {
		for i := range header {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pdf.CellFormat(w, 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}
