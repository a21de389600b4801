package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/dashboard"
	"github.com/Veraticus/cashflow/internal/format"
	"github.com/Veraticus/cashflow/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var emphasis = regexp.MustCompile(`\*\*(.+?)\*\*`)

// SnapshotView renders a dashboard snapshot for the terminal.
type SnapshotView struct {
	Format *format.Formatter
	// TopN limits the subcategory rankings; zero shows all of them.
	TopN int
}

// NewSnapshotView creates a view using f for numbers.
func NewSnapshotView(f *format.Formatter) *SnapshotView {
	if f == nil {
		f = format.New(format.DefaultSymbol)
	}
	return &SnapshotView{Format: f}
}

// Render returns every dashboard section.
func (v *SnapshotView) Render(snap dashboard.Snapshot) string {
	sections := []string{
		v.Period(snap),
		v.Kpis(snap.Basic),
		v.Advanced(snap.Advanced),
		v.Trends(snap.Trends),
		v.Rankings(snap.Basic),
		v.Alerts(snap.Alerts),
	}
	return strings.Join(sections, "\n\n") + "\n"
}

// Period describes the view's date range and size.
func (v *SnapshotView) Period(snap dashboard.Snapshot) string {
	start, end, ok := snap.View.DateRange()
	if !ok {
		return SubtitleStyle.Render("Nenhuma transação no período selecionado")
	}
	return SubtitleStyle.Render(fmt.Sprintf("Período: %s a %s · %s transações",
		start.Format("02/01/2006"), end.Format("02/01/2006"), v.Format.Count(snap.View.Len())))
}

// Kpis renders the basic KPI block.
func (v *SnapshotView) Kpis(k model.BasicKpis) string {
	f := v.Format
	balance := IncomeStyle
	if k.NetBalance.IsNegative() {
		balance = ExpenseStyle
	}
	return section(ChartIcon, "KPIs FINANCEIROS PRINCIPAIS",
		row("Receitas Totais", IncomeStyle.Render(f.Money(k.TotalIncome))),
		row("Despesas Totais", ExpenseStyle.Render(f.Money(k.TotalExpense))),
		row("Saldo Líquido", balance.Render(f.Money(k.NetBalance))),
		row("Margem Líquida", f.Percent(k.NetMargin)),
		row("Total de Transações", f.Count(k.TransactionCount)),
		row("Ticket Médio", f.Money(k.AverageTicket)),
	)
}

// Advanced renders the derived KPI block.
func (v *SnapshotView) Advanced(a model.AdvancedKpis) string {
	f := v.Format
	return section(MoneyIcon, "KPIs FINANCEIROS AVANÇADOS",
		row("ROI", f.Percent(a.ROI)),
		row("Ponto de Equilíbrio", f.Money(a.BreakEven)),
		row("Fluxo de Caixa Operacional", f.Money(a.OperatingCashFlow)),
		row("Ciclo de Conversão de Caixa", fmt.Sprintf("%d dias", a.CashConversionCycle)),
		row("Margem de Contribuição", f.Percent(a.ContributionMargin)),
	)
}

// Trends renders growth, the monthly series and weekday movement.
func (v *SnapshotView) Trends(t model.Trends) string {
	if t.IsEmpty() {
		return section(TrendIcon, "ANÁLISE DE TENDÊNCIAS",
			SubtleStyle.Render("Dados insuficientes para análise de tendências."))
	}
	f := v.Format

	direction := ExpenseStyle.Render("📉 NEGATIVA")
	if t.PositiveTrend {
		direction = IncomeStyle.Render("📈 POSITIVA")
	}

	lines := []string{
		row("Crescimento Médio Mensal", f.Percent(t.AverageGrowth)),
		row("Último Crescimento", f.Percent(t.LatestGrowth)),
		row("Tendência Atual", direction),
		row("Dia de Maior Movimento", t.BusiestWeekday),
		row("Meses Analisados", f.Count(t.MonthsAnalyzed)),
		"",
		BoldStyle.Render("Evolução Mensal"),
	}
	for _, m := range t.Monthly {
		lines = append(lines, fmt.Sprintf("  %s  %s  %s",
			m.Month,
			IncomeStyle.Render(pad("+"+f.Money(m.Income), 18)),
			ExpenseStyle.Render(pad("-"+f.Money(m.Expense), 18))))
	}

	lines = append(lines, "", BoldStyle.Render("Movimento por Dia da Semana"))
	for _, d := range t.WeekdayTotals {
		if d.Count == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %-14s %s  %s",
			d.Weekday, pad(f.Money(d.Total), 18), SubtleStyle.Render("média "+f.Money(d.Mean))))
	}

	return section(TrendIcon, "ANÁLISE DE TENDÊNCIAS", lines...)
}

// Rankings renders the top income and expense subcategories.
func (v *SnapshotView) Rankings(k model.BasicKpis) string {
	income := v.ranking(k.TopIncome, IncomeStyle)
	expense := v.ranking(k.TopExpense, ExpenseStyle)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		RenderBox("Principais Fontes de Receita", income),
		" ",
		RenderBox("Maiores Gastos", expense),
	)
}

func (v *SnapshotView) ranking(items []model.SubcategoryAmount, style lipgloss.Style) string {
	if v.TopN > 0 && len(items) > v.TopN {
		items = items[:v.TopN]
	}
	if len(items) == 0 {
		return SubtleStyle.Render("sem dados")
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%2d. %-22s %s", i+1, item.Subcategory, style.Render(v.Format.Money(item.Amount)))
	}
	return strings.Join(lines, "\n")
}

// Alerts renders alerts in evaluation order with their markup styled.
func (v *SnapshotView) Alerts(alerts []model.Alert) string {
	lines := make([]string, len(alerts))
	for i, a := range alerts {
		lines[i] = RenderMarkup(a.Message, SeverityStyle(a.Severity))
	}
	return section(AlertIcon, "ALERTAS E RECOMENDAÇÕES", lines...)
}

// RenderMarkup renders **emphasis** markers in bold using base.
func RenderMarkup(message string, base lipgloss.Style) string {
	var b strings.Builder
	last := 0
	for _, loc := range emphasis.FindAllStringSubmatchIndex(message, -1) {
		b.WriteString(base.Render(message[last:loc[0]]))
		b.WriteString(base.Bold(true).Render(message[loc[2]:loc[3]]))
		last = loc[1]
	}
	b.WriteString(base.Render(message[last:]))
	return b.String()
}

// RenderWarnings formats data quality warnings, one per line.
func RenderWarnings(warnings []common.DataWarning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = FormatWarning(w.String())
	}
	return strings.Join(lines, "\n")
}

// RenderError formats err for the user, adding the expected layout for schema errors.
func RenderError(err error) string {
	msg := FormatError(err.Error())

	var schemaErr *common.SchemaError
	if errors.As(err, &schemaErr) {
		msg += "\n\n" + SubtleStyle.Render(schemaErr.Hint())
	}
	return msg
}

// Summary is the machine readable form of a snapshot.
type Summary struct {
	Period   *SummaryPeriod     `json:"period,omitempty"`
	Basic    SummaryKpis        `json:"kpis"`
	Advanced model.AdvancedKpis `json:"advanced"`
	Trends   SummaryTrends      `json:"trends"`
	Alerts   []SummaryAlert     `json:"alerts"`
}

// SummaryPeriod is the inclusive date range of the view.
type SummaryPeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SummaryKpis mirrors model.BasicKpis without the lookup maps.
type SummaryKpis struct {
	TotalIncome      decimal.Decimal           `json:"total_income"`
	TotalExpense     decimal.Decimal           `json:"total_expense"`
	NetBalance       decimal.Decimal           `json:"net_balance"`
	NetMargin        float64                   `json:"net_margin"`
	TransactionCount int                       `json:"transaction_count"`
	AverageTicket    decimal.Decimal           `json:"average_ticket"`
	TopIncome        []model.SubcategoryAmount `json:"top_income"`
	TopExpense       []model.SubcategoryAmount `json:"top_expense"`
}

// SummaryTrends mirrors model.Trends.
type SummaryTrends struct {
	AverageGrowth  float64               `json:"average_growth"`
	LatestGrowth   float64               `json:"latest_growth"`
	PositiveTrend  bool                  `json:"positive_trend"`
	BusiestWeekday string                `json:"busiest_weekday"`
	MonthsAnalyzed int                   `json:"months_analyzed"`
	Monthly        []model.MonthTotals   `json:"monthly"`
	Weekdays       []model.WeekdayAmount `json:"weekdays"`
}

// SummaryAlert is one alert without terminal markup.
type SummaryAlert struct {
	Severity model.Severity `json:"severity"`
	Message  string         `json:"message"`
}

// NewSummary converts snap for JSON output.
func NewSummary(snap dashboard.Snapshot) Summary {
	k, t := snap.Basic, snap.Trends
	s := Summary{
		Basic: SummaryKpis{
			TotalIncome:      k.TotalIncome,
			TotalExpense:     k.TotalExpense,
			NetBalance:       k.NetBalance,
			NetMargin:        k.NetMargin,
			TransactionCount: k.TransactionCount,
			AverageTicket:    k.AverageTicket,
			TopIncome:        k.TopIncome,
			TopExpense:       k.TopExpense,
		},
		Advanced: snap.Advanced,
		Trends: SummaryTrends{
			AverageGrowth:  t.AverageGrowth,
			LatestGrowth:   t.LatestGrowth,
			PositiveTrend:  t.PositiveTrend,
			BusiestWeekday: t.BusiestWeekday,
			MonthsAnalyzed: t.MonthsAnalyzed,
			Monthly:        t.Monthly,
			Weekdays:       t.WeekdayTotals,
		},
		Alerts: make([]SummaryAlert, len(snap.Alerts)),
	}
	if start, end, ok := snap.View.DateRange(); ok {
		s.Period = &SummaryPeriod{Start: start.Format("2006-01-02"), End: end.Format("2006-01-02")}
	}
	for i, a := range snap.Alerts {
		s.Alerts[i] = SummaryAlert{Severity: a.Severity, Message: a.PlainMessage}
	}
	return s
}

// WriteJSON writes the snapshot summary as indented JSON.
func WriteJSON(w io.Writer, snap dashboard.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewSummary(snap)); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return nil
}

func section(icon, title string, lines ...string) string {
	return FormatTitle(icon, title) + "\n" + strings.Join(lines, "\n")
}

func row(label, value string) string {
	return LabelStyle.Render(label) + value
}

func pad(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}
