package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"

	"github.com/example/aromance/internal/consultation"
	"github.com/example/aromance/internal/inventory"
	"github.com/example/aromance/internal/models"
	"github.com/example/aromance/internal/recommender"
	"github.com/example/aromance/internal/services"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderResult(w io.Writer, res recommender.Result) {
	fmt.Fprintln(w, TitleStyle.Render("Recommendations"))
	fmt.Fprintln(w, SubtleStyle.Render(fmt.Sprintf("%d considered, %d eligible", res.Considered, res.Eligible)))
	fmt.Fprintln(w)

	if len(res.Recommendations) == 0 {
		fmt.Fprintln(w, WarningStyle.Render("No product met the threshold."))
	}
	for i, rec := range res.Recommendations {
		header := fmt.Sprintf("%d. %s", i+1, BoldStyle.Render(rec.Name))
		if rec.Brand != "" {
			header += " " + SubtleStyle.Render("by "+rec.Brand)
		}
		fmt.Fprintln(w, header)
		fmt.Fprintf(w, "   %s · %s · %s (%s)\n",
			rec.Family,
			services.FormatPrice(rec.Price, ""),
			SuccessStyle.Render(fmt.Sprintf("%.0f%%", rec.Score*100)),
			recommender.TierLabel(rec.Score))
		if rec.Reasoning != "" {
			fmt.Fprintln(w, ReasonStyle.Render(rec.Reasoning))
		}
	}

	if res.Explanation != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, BoxStyle.Render(res.Explanation))
	}

	if len(res.Alternatives) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, BoldStyle.Render("Also worth exploring"))
		for _, alt := range res.Alternatives {
			fmt.Fprintln(w, "  - "+alt)
		}
	}
}

func renderSession(w io.Writer, s *models.Session) {
	fmt.Fprintln(w, TitleStyle.Render("Consultation "+s.ID.String()))
	rows := [][2]string{
		{"User", s.UserID},
		{"Stage", string(s.Stage)},
		{"Families", joinOrDash(s.Profile.PreferredFamilies)},
		{"Occasions", joinOrDash(s.Profile.Occasions)},
		{"Personality", joinOrDash(s.Profile.PersonalityTraits)},
		{"Budget", orDash(string(s.Profile.BudgetTier))},
		{"Sensitivity", orDash(string(s.Profile.Sensitivity))},
	}
	if s.Completed() {
		rows = append(rows, [2]string{"Archetype", s.Archetype}, [2]string{"Lifestyle", s.Lifestyle})
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %-12s %s\n", r[0], r[1])
	}
}

func renderTurn(w io.Writer, turn *consultation.Turn) {
	switch {
	case !turn.Advanced:
		fmt.Fprintln(w, WarningStyle.Render("I could not pick that up, could you describe it differently?"))
	case len(turn.Detected) > 0:
		fmt.Fprintln(w, SuccessStyle.Render("Noted: "+strings.Join(turn.Detected, ", ")))
	}
	if turn.Session.Completed() {
		fmt.Fprintln(w, SuccessStyle.Render(fmt.Sprintf("Profile: %s, %s lifestyle", turn.Session.Archetype, turn.Session.Lifestyle)))
	}
	fmt.Fprintln(w, BoldStyle.Render(turn.Prompt))
}

func renderCatalog(w io.Writer, products []models.Product) {
	fmt.Fprintln(w, TitleStyle.Render(fmt.Sprintf("Catalog (%d products)", len(products))))
	for _, p := range products {
		stock := SuccessStyle.Render("in stock")
		if !p.InStock {
			stock = ErrorStyle.Render("out of stock")
		}
		fmt.Fprintf(w, "  %-8s %-28s %-24s %16s  %-9s %s\n",
			p.ID, p.Name, p.Family, services.FormatPrice(p.Price, ""), orDash(string(p.Intensity)), stock)
	}
}

func renderHistory(w io.Writer, userID string, records []models.RecommendationRecord) {
	fmt.Fprintln(w, TitleStyle.Render("Recommendation history for "+userID))
	if len(records) == 0 {
		fmt.Fprintln(w, WarningStyle.Render("No recommendations recorded yet."))
		return
	}

	var batch string
	for _, r := range records {
		if r.SessionID != batch {
			batch = r.SessionID
			fmt.Fprintln(w)
			fmt.Fprintln(w, SubtleStyle.Render(r.GeneratedAt.Local().Format(time.DateTime)+"  session "+r.SessionID))
		}
		fmt.Fprintf(w, "%d. %s %s\n", r.Rank, BoldStyle.Render(r.Name), SuccessStyle.Render(fmt.Sprintf("%.0f%%", r.Score*100)))
		if r.Reasoning != "" {
			fmt.Fprintln(w, ReasonStyle.Render(r.Reasoning))
		}
	}
}

func renderStock(w io.Writer, report *services.StockReport) {
	fmt.Fprintln(w, TitleStyle.Render("Inventory"))
	h := report.Health
	fmt.Fprintln(w, SubtleStyle.Render(fmt.Sprintf("%d products, %d tracked: %d healthy (%.1f%%), %d warning, %d critical",
		h.Total, h.Tracked, h.Healthy, h.HealthyPercent, h.Warning, h.Critical)))
	for _, p := range report.Products {
		if p.Level == inventory.LevelUntracked {
			continue
		}
		fmt.Fprintf(w, "  %-8s %-28s %-15s %5d available (%d reserved, threshold %d)\n",
			p.ProductID, p.Name, levelStyle(p.Level).Render(string(p.Level)), p.Available, p.Reserved, p.Threshold)
	}
}

func renderAlerts(w io.Writer, alerts []inventory.Alert) {
	if len(alerts) == 0 {
		fmt.Fprintln(w, SuccessStyle.Render("No stock alerts."))
		return
	}
	fmt.Fprintln(w, TitleStyle.Render(fmt.Sprintf("Stock alerts (%d)", len(alerts))))
	for _, a := range alerts {
		line := a.Message
		if a.Restock > 0 {
			line += fmt.Sprintf(" (restock %d)", a.Restock)
		}
		fmt.Fprintln(w, "  "+levelStyle(a.Level).Render(line))
	}
}

func levelStyle(level inventory.Level) lipgloss.Style {
	switch level {
	case inventory.LevelOut:
		return ErrorStyle
	case inventory.LevelLow, inventory.LevelModerate:
		return WarningStyle
	default:
		return SuccessStyle
	}
}

func joinOrDash(values []string) string {
	return orDash(strings.Join(values, ", "))
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
