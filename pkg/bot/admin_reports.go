package bot

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"flowrelay/pkg/logger"
	"flowrelay/pkg/models"
	"flowrelay/pkg/report"

	tele "gopkg.in/telebot.v3"
)

var reportStatuses = []string{"all", "pending", "matched", "in_progress", "completed", "cancelled"}

func (b *Bot) handleReports(c tele.Context) error {
	sess := b.openSession(c)
	if !b.requireRole(c, sess, models.RoleAdmin) {
		return nil
	}

	conv := b.convo(c)
	conv.ReportFilters = models.ReportFilters{}
	conv.ReportData = nil

	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(
		menu.Data("📆 Last 30 days", "rep_quick"),
		menu.Data("🗓 Custom range", "rep_custom"),
	))
	return c.Send("📈 <b>Trips report</b>\n\nPick a period:", menu, tele.ModeHTML)
}

func (b *Bot) reportQuickRange(c tele.Context) error {
	conv := b.convo(c)
	now := time.Now()
	conv.ReportFilters.StartDate = now.AddDate(0, 0, -30).Format("2006-01-02")
	conv.ReportFilters.EndDate = now.Format("2006-01-02")
	c.Respond(&tele.CallbackResponse{})
	return b.askReportStatus(c)
}

func (b *Bot) reportCustomRange(c tele.Context) error {
	conv := b.convo(c)
	conv.State = StateReportStart
	c.Respond(&tele.CallbackResponse{})
	return c.Send("🗓 Start date (YYYY-MM-DD):")
}

func (b *Bot) stepReportStart(c tele.Context, conv *Convo) error {
	if _, err := time.Parse("2006-01-02", c.Text()); err != nil {
		return c.Send("⚠️ Please send the date as YYYY-MM-DD:")
	}
	conv.ReportFilters.StartDate = c.Text()
	conv.State = StateReportEnd
	return c.Send("🗓 End date (YYYY-MM-DD):")
}

func (b *Bot) stepReportEnd(c tele.Context, conv *Convo) error {
	if _, err := time.Parse("2006-01-02", c.Text()); err != nil {
		return c.Send("⚠️ Please send the date as YYYY-MM-DD:")
	}
	conv.ReportFilters.EndDate = c.Text()
	conv.State = StateIdle
	return b.askReportStatus(c)
}

func (b *Bot) askReportStatus(c tele.Context) error {
	menu := &tele.ReplyMarkup{}
	var rows []tele.Row
	for i := 0; i < len(reportStatuses); i += 2 {
		row := []tele.Btn{menu.Data(strings.ReplaceAll(reportStatuses[i], "_", " "), "reps_"+reportStatuses[i])}
		if i+1 < len(reportStatuses) {
			row = append(row, menu.Data(strings.ReplaceAll(reportStatuses[i+1], "_", " "), "reps_"+reportStatuses[i+1]))
		}
		rows = append(rows, menu.Row(row...))
	}
	menu.Inline(rows...)
	return c.Send("🔎 Filter by trip status:", menu)
}

func (b *Bot) generateReport(c tele.Context, status string) error {
	ctx := context.Background()
	sess := b.openSession(c)
	if !b.requireRole(c, sess, models.RoleAdmin) {
		return nil
	}
	conv := b.convo(c)

	filter := status
	if filter == "all" {
		filter = ""
	}
	data, err := b.API.Bind(sess).Admin().TripsReport(ctx,
		conv.ReportFilters.StartDate, conv.ReportFilters.EndDate, filter)
	if err != nil {
		b.Log.Error("failed to build trips report", logger.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "❌ Report failed.", ShowAlert: true})
	}
	conv.ReportData = data
	c.Respond(&tele.CallbackResponse{})

	var sb strings.Builder
	sb.WriteString("📈 <b>Trips report</b>\n")
	fmt.Fprintf(&sb, "🗓 %s — %s\n\n", orAll(data.Filters.StartDate), orAll(data.Filters.EndDate))
	fmt.Fprintf(&sb, "📦 Total trips: %d\n", data.Summary.TotalTrips)
	fmt.Fprintf(&sb, "✅ Completed: %d (%.1f%%)\n", data.Summary.CompletedTrips, data.Summary.CompletionRate)
	fmt.Fprintf(&sb, "🛣 Total mileage: %.1f\n", data.Summary.TotalMileage)
	fmt.Fprintf(&sb, "📐 Average mileage: %.1f\n", data.Summary.AverageMileage)

	if len(data.Trips) > 0 {
		sb.WriteString("\n<b>Latest trips</b>\n")
		for i, t := range data.Trips {
			if i == 10 {
				fmt.Fprintf(&sb, "… and %d more (use the exports below)\n", len(data.Trips)-10)
				break
			}
			fmt.Fprintf(&sb, "#%d %s  %s → %s  %s\n", t.ID, formatDate(t.PickupDate),
				truncate(t.PickupAddress, 20), truncate(t.DropoffAddress, 20), t.Status)
		}
	}

	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(
		menu.Data("📊 XLSX", "repx_xlsx"),
		menu.Data("📄 PDF", "repx_pdf"),
		menu.Data("🗒 CSV", "repx_csv"),
	))
	return c.Send(sb.String(), menu, tele.ModeHTML)
}

func orAll(s string) string {
	if s == "" {
		return "all"
	}
	return s
}

func (b *Bot) exportReport(c tele.Context, format string) error {
	sess := b.openSession(c)
	if !b.requireRole(c, sess, models.RoleAdmin) {
		return nil
	}
	conv := b.convo(c)
	if conv.ReportData == nil {
		return c.Respond(&tele.CallbackResponse{Text: "Generate a report first.", ShowAlert: true})
	}

	var (
		name string
		data []byte
		err  error
	)
	switch format {
	case "xlsx":
		name, data, err = report.Excel(conv.ReportData)
	case "pdf":
		name, data, err = report.PDF(conv.ReportData)
	default:
		name, data, err = report.CSV(conv.ReportData)
	}
	if err != nil {
		b.Log.Error("report export failed", logger.Error(err), logger.String("format", format))
		return c.Respond(&tele.CallbackResponse{Text: "❌ Export failed.", ShowAlert: true})
	}

	c.Respond(&tele.CallbackResponse{})
	doc := &tele.Document{
		File:     tele.FromReader(bytes.NewReader(data)),
		FileName: name,
	}
	return c.Send(doc)
}
