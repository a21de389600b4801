package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/cashflow/internal/chart"
	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/dashboard"
	"github.com/Veraticus/cashflow/internal/format"
	"github.com/Veraticus/cashflow/internal/kpi"
)

// ChartTopN is the ranking size shown in report charts.
const ChartTopN = 5

// ErrCompanyRequired is returned when the report has no company name.
var ErrCompanyRequired = errors.New("company name is required")

// Build stages reported through Builder.OnStage, in order.
const (
	StageCover    = "cover"
	StageKpis     = "kpis"
	StageAdvanced = "advanced kpis"
	StageTrends   = "trends"
	StageCharts   = "charts"
	StageAlerts   = "alerts"
	StageRender   = "render"
)

// Stages lists every build stage in order.
var Stages = []string{StageCover, StageKpis, StageAdvanced, StageTrends, StageCharts, StageAlerts, StageRender}

// Input is everything a report is built from.
type Input struct {
	Company     string
	Snapshot    dashboard.Snapshot
	GeneratedAt time.Time
}

// Output is a rendered report plus its suggested file name.
type Output struct {
	Data     []byte
	Filename string
}

// Builder lays out the fixed page sequence.
type Builder struct {
	Renderer    chart.Renderer
	NewDocument NewDocumentFunc
	Format      *format.Formatter
	OnStage     func(stage string)
	logger      *slog.Logger
}

// NewBuilder creates a Builder writing PDFs. A nil renderer omits charts.
func NewBuilder(renderer chart.Renderer, f *format.Formatter, logger *slog.Logger) *Builder {
	if renderer == nil {
		renderer = chart.Unavailable{}
	}
	if f == nil {
		f = format.New(format.DefaultSymbol)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		Renderer:    renderer,
		NewDocument: NewPDFDocument,
		Format:      f,
		logger:      logger,
	}
}

// Build renders the report. Chart failures only omit charts; document
// rendering failures are returned as *common.ExportError.
func (b *Builder) Build(ctx context.Context, in Input) (*Output, error) {
	company := strings.TrimSpace(in.Company)
	if company == "" {
		return nil, ErrCompanyRequired
	}
	if in.GeneratedAt.IsZero() {
		in.GeneratedAt = time.Now()
	}

	doc := b.NewDocument(in.GeneratedAt)
	snap := in.Snapshot

	b.stage(StageCover)
	b.coverPage(doc, company, snap)

	b.stage(StageKpis)
	doc.AddPage()
	doc.AddTitle("1. KPIs FINANCEIROS PRINCIPAIS")
	doc.AddText(b.kpiText(snap), Body)

	b.stage(StageAdvanced)
	doc.AddPage()
	doc.AddTitle("2. KPIs FINANCEIROS AVANCADOS")
	doc.AddText(b.advancedText(snap), Body)

	b.stage(StageTrends)
	doc.AddPage()
	doc.AddTitle("3. ANALISE DE TENDENCIAS")
	doc.AddText(b.trendText(snap), Body)

	b.stage(StageCharts)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.chartPages(ctx, doc, snap)

	b.stage(StageAlerts)
	doc.AddPage()
	doc.AddTitle("5. ALERTAS E RECOMENDACOES")
	plain := make([]string, len(snap.Alerts))
	for i, a := range snap.Alerts {
		plain[i] = a.PlainMessage
	}
	doc.AddText(strings.Join(plain, "\n"), Body)

	b.stage(StageRender)
	data, err := doc.Render()
	if err != nil {
		return nil, &common.ExportError{Op: "render", Err: err}
	}

	return &Output{
		Data:     data,
		Filename: Filename(company, in.GeneratedAt),
	}, nil
}

// Filename returns relatorio_financeiro_<company>_<YYYYmmdd_HHMM>.pdf.
func Filename(company string, at time.Time) string {
	safe := strings.NewReplacer(" ", "_", "/", "_", `\`, "_").Replace(strings.TrimSpace(company))
	return fmt.Sprintf("relatorio_financeiro_%s_%s.pdf", safe, at.Format("20060102_1504"))
}

func (b *Builder) stage(name string) {
	b.logger.Debug("building report", "stage", name)
	if b.OnStage != nil {
		b.OnStage(name)
	}
}

func (b *Builder) coverPage(doc Document, company string, snap dashboard.Snapshot) {
	doc.AddPage()
	doc.AddText(HeaderTitle, CoverTitle)
	doc.AddText(company, CoverCompany)
	doc.AddText("Dashboard de Fluxo de Caixa", CoverSubtitle)
	doc.AddSpace(20)

	if start, end, ok := snap.View.DateRange(); ok {
		doc.AddText(fmt.Sprintf("Periodo: %s a %s", start.Format("02/01/2006"), end.Format("02/01/2006")), Centered)
	}
}

func (b *Builder) kpiText(snap dashboard.Snapshot) string {
	k := snap.Basic
	f := b.Format
	return lines(
		"Receitas Totais: "+f.Money(k.TotalIncome),
		"Despesas Totais: "+f.Money(k.TotalExpense),
		"Saldo Liquido: "+f.Money(k.NetBalance),
		"Margem Liquida: "+f.Percent(k.NetMargin),
		"Total de Transacoes: "+f.Count(k.TransactionCount),
		"Ticket Medio: "+f.Money(k.AverageTicket),
	)
}

func (b *Builder) advancedText(snap dashboard.Snapshot) string {
	a := snap.Advanced
	f := b.Format
	return lines(
		"ROI (Return on Investment): "+f.Percent(a.ROI),
		"Ponto de Equilibrio: "+f.Money(a.BreakEven),
		"Fluxo de Caixa Operacional: "+f.Money(a.OperatingCashFlow),
		fmt.Sprintf("Ciclo de Conversao de Caixa: %d dias", a.CashConversionCycle),
		"Margem de Contribuicao: "+f.Percent(a.ContributionMargin),
	)
}

func (b *Builder) trendText(snap dashboard.Snapshot) string {
	t := snap.Trends
	if t.IsEmpty() {
		return "Dados insuficientes para analise de tendencias."
	}
	direction := "NEGATIVA"
	if t.PositiveTrend {
		direction = "POSITIVA"
	}
	return lines(
		"Crescimento Medio Mensal: "+b.Format.Percent(t.AverageGrowth),
		"Ultimo Crescimento: "+b.Format.Percent(t.LatestGrowth),
		"Tendencia Atual: "+direction,
		"Dia de Maior Movimento: "+t.BusiestWeekday,
		"Meses Analisados: "+b.Format.Count(t.MonthsAnalyzed),
	)
}

type placedChart struct {
	caption string
	name    string
	png     []byte
	x       float64
	width   float64
}

// chartPages renders the four ranking charts and places whatever succeeded.
// Nothing is written when no chart renders.
func (b *Builder) chartPages(ctx context.Context, doc Document, snap dashboard.Snapshot) {
	topIncome := kpi.TopSubcategories(snap.Basic.IncomeBySubcategory, ChartTopN)
	topExpense := kpi.TopSubcategories(snap.Basic.ExpenseBySubcategory, ChartTopN)

	bars := b.renderCharts(ctx, []chartRequest{
		{caption: "Principais Fontes de Receita:", name: "top_receitas", x: 10, width: 190,
			spec: chart.FromRanking(chart.Bar, "Top 5 - Principais Fontes de Receita", topIncome, chart.IncomePalette)},
		{caption: "Maiores Gastos:", name: "top_despesas", x: 10, width: 190,
			spec: chart.FromRanking(chart.Bar, "Top 5 - Maiores Gastos", topExpense, chart.ExpensePalette)},
	})
	if bars == nil {
		return
	}
	pies := b.renderCharts(ctx, []chartRequest{
		{caption: "Distribuicao de Receitas:", name: "pie_receitas", x: 25, width: 160,
			spec: chart.FromRanking(chart.Pie, "Distribuição de Receitas (Top 5)", topIncome, chart.IncomePalette)},
		{caption: "Distribuicao de Despesas:", name: "pie_despesas", x: 25, width: 160,
			spec: chart.FromRanking(chart.Pie, "Distribuição de Despesas (Top 5)", topExpense, chart.ExpensePalette)},
	})

	if len(bars)+len(pies) == 0 {
		return
	}

	doc.AddPage()
	doc.AddTitle("4. GRAFICOS E VISUALIZACOES")
	b.place(doc, bars)

	if len(pies) > 0 {
		doc.AddPage()
		doc.AddTitle("4. GRAFICOS E VISUALIZACOES (CONT.)")
		b.place(doc, pies)
	}
}

type chartRequest struct {
	caption string
	name    string
	x       float64
	width   float64
	spec    chart.Spec
}

// renderCharts returns nil when the renderer is unavailable and an empty,
// non-nil slice when it is available but nothing could be drawn.
func (b *Builder) renderCharts(ctx context.Context, reqs []chartRequest) []placedChart {
	placed := []placedChart{}
	for _, req := range reqs {
		png, err := b.Renderer.Render(ctx, req.spec)
		switch {
		case errors.Is(err, common.ErrRenderingUnavailable):
			b.logger.Debug("chart rendering unavailable, omitting charts")
			return nil
		case err != nil:
			b.logger.Debug("skipping chart", "chart", req.name, "error", err)
			continue
		}
		placed = append(placed, placedChart{caption: req.caption, name: req.name, png: png, x: req.x, width: req.width})
	}
	return placed
}

func (b *Builder) place(doc Document, charts []placedChart) {
	for _, c := range charts {
		doc.AddText(c.caption, Caption)
		if err := doc.AddImage(c.name, c.png, c.x, c.width); err != nil {
			b.logger.Debug("skipping chart image", "chart", c.name, "error", err)
			continue
		}
		doc.AddSpace(10)
	}
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n")
}
