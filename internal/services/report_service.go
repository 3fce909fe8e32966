package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/hfletcher/jobsite/internal/domain/budget"
	"github.com/hfletcher/jobsite/internal/domain/client"
	"github.com/hfletcher/jobsite/internal/domain/project"
	"github.com/hfletcher/jobsite/internal/domain/task"
	"github.com/hfletcher/jobsite/internal/domain/update"
	"github.com/hfletcher/jobsite/internal/pkg/logger"
	"github.com/hfletcher/jobsite/internal/pkg/metrics"
)

var (
	reportColorPrimary   = [3]int{30, 58, 95}    // Dark navy
	reportColorTextDark  = [3]int{44, 62, 80}    // Dark text
	reportColorTextMuted = [3]int{127, 140, 141} // Muted text
	reportColorTableAlt  = [3]int{241, 245, 249} // Alternating row
)

// ReportService renders a client-facing PDF progress report for one
// project: summary, task status, budget and recent updates.
type ReportService struct {
	projects project.Repository
	clients  client.Repository
	tasks    task.Repository
	budgets  budget.Repository
	updates  update.Repository
	logger   *logger.Logger
}

// NewReportService creates a new report service
func NewReportService(
	projects project.Repository,
	clients client.Repository,
	tasks task.Repository,
	budgets budget.Repository,
	updates update.Repository,
	log *logger.Logger,
) *ReportService {
	return &ReportService{
		projects: projects,
		clients:  clients,
		tasks:    tasks,
		budgets:  budgets,
		updates:  updates,
		logger:   log,
	}
}

// ProjectReport generates the PDF for one project
func (s *ReportService) ProjectReport(ctx context.Context, userID, projectID int64) ([]byte, error) {
	p, err := s.projects.GetByID(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	c, err := s.clients.GetByID(ctx, userID, p.ClientID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	items, err := s.budgets.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	totals, err := s.budgets.TotalsByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	recent, _, err := s.updates.ListByProject(ctx, projectID, 5, 0)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 25)
	pdf.AddPage()

	s.writeHeader(pdf, p, c)
	s.writeTaskTable(pdf, tasks)
	s.writeBudgetTable(pdf, items, totals)
	s.writeUpdates(pdf, recent)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output error: %w", err)
	}

	metrics.RecordReportGenerated()
	s.logger.WithFields(map[string]interface{}{
		"project_id": projectID,
		"bytes":      buf.Len(),
	}).Info("Progress report generated")
	return buf.Bytes(), nil
}

func (s *ReportService) writeHeader(pdf *fpdf.Fpdf, p *project.Project, c *client.Client) {
	pageWidth, _ := pdf.GetPageSize()

	pdf.SetFillColor(reportColorPrimary[0], reportColorPrimary[1], reportColorPrimary[2])
	pdf.Rect(0, 0, pageWidth, 8, "F")

	pdf.SetY(20)
	pdf.SetFont("Arial", "B", 22)
	pdf.SetTextColor(reportColorTextDark[0], reportColorTextDark[1], reportColorTextDark[2])
	pdf.CellFormat(0, 12, "Progress Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, p.Name, "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(reportColorTextMuted[0], reportColorTextMuted[1], reportColorTextMuted[2])
	pdf.CellFormat(0, 6, fmt.Sprintf("Prepared for %s", c.Name), "", 1, "L", false, 0, "")
	if p.Address != "" {
		pdf.CellFormat(0, 6, p.Address, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Status: %s", p.Status), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", time.Now().Format("January 2, 2006")), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func (s *ReportService) sectionTitle(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 13)
	pdf.SetTextColor(reportColorPrimary[0], reportColorPrimary[1], reportColorPrimary[2])
	pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
	pdf.SetTextColor(reportColorTextDark[0], reportColorTextDark[1], reportColorTextDark[2])
}

func (s *ReportService) writeTaskTable(pdf *fpdf.Fpdf, tasks []*task.Task) {
	s.sectionTitle(pdf, "Tasks")

	if len(tasks) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(0, 6, "No tasks yet.", "", 1, "L", false, 0, "")
		pdf.Ln(4)
		return
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(reportColorPrimary[0], reportColorPrimary[1], reportColorPrimary[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(110, 7, "Task", "", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Status", "", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Due", "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(reportColorTextDark[0], reportColorTextDark[1], reportColorTextDark[2])
	for i, t := range tasks {
		fill := i%2 == 1
		pdf.SetFillColor(reportColorTableAlt[0], reportColorTableAlt[1], reportColorTableAlt[2])
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.Format("Jan 2, 2006")
		}
		pdf.CellFormat(110, 6, t.Title, "", 0, "L", fill, 0, "")
		pdf.CellFormat(30, 6, t.Status, "", 0, "L", fill, 0, "")
		pdf.CellFormat(30, 6, due, "", 1, "L", fill, 0, "")
	}
	pdf.Ln(4)
}

func (s *ReportService) writeBudgetTable(pdf *fpdf.Fpdf, items []*budget.Item, totals budget.Totals) {
	s.sectionTitle(pdf, "Budget")

	if len(items) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(0, 6, "No budget items yet.", "", 1, "L", false, 0, "")
		pdf.Ln(4)
		return
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(reportColorPrimary[0], reportColorPrimary[1], reportColorPrimary[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(80, 7, "Item", "", 0, "L", true, 0, "")
	pdf.CellFormat(45, 7, "Estimated", "", 0, "R", true, 0, "")
	pdf.CellFormat(45, 7, "Actual", "", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(reportColorTextDark[0], reportColorTextDark[1], reportColorTextDark[2])
	for i, item := range items {
		fill := i%2 == 1
		pdf.SetFillColor(reportColorTableAlt[0], reportColorTableAlt[1], reportColorTableAlt[2])
		name := item.Category
		if item.Description != "" {
			name = fmt.Sprintf("%s - %s", item.Category, item.Description)
		}
		pdf.CellFormat(80, 6, name, "", 0, "L", fill, 0, "")
		pdf.CellFormat(45, 6, formatCents(item.EstimatedCents), "", 0, "R", fill, 0, "")
		pdf.CellFormat(45, 6, formatCents(item.ActualCents), "", 1, "R", fill, 0, "")
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(80, 7, "Total", "", 0, "L", false, 0, "")
	pdf.CellFormat(45, 7, formatCents(totals.EstimatedCents), "", 0, "R", false, 0, "")
	pdf.CellFormat(45, 7, formatCents(totals.ActualCents), "", 1, "R", false, 0, "")
	pdf.Ln(4)
}

func (s *ReportService) writeUpdates(pdf *fpdf.Fpdf, updates []*update.Update) {
	s.sectionTitle(pdf, "Recent Updates")

	if len(updates) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(0, 6, "No updates posted yet.", "", 1, "L", false, 0, "")
		return
	}

	for _, u := range updates {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, u.Title, "", 1, "L", false, 0, "")

		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(reportColorTextMuted[0], reportColorTextMuted[1], reportColorTextMuted[2])
		line := u.CreatedAt.Format("January 2, 2006")
		if n := len(u.Photos); n == 1 {
			line += "  (1 photo)"
		} else if n > 1 {
			line += fmt.Sprintf("  (%d photos)", n)
		}
		pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
		pdf.SetTextColor(reportColorTextDark[0], reportColorTextDark[1], reportColorTextDark[2])

		if u.Body != "" {
			pdf.SetFont("Arial", "", 10)
			pdf.MultiCell(0, 5, u.Body, "", "L", false)
		}
		pdf.Ln(2)
	}
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}
