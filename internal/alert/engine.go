// Package alert derives threshold alerts from KPI and trend outputs.
package alert

import "github.com/Veraticus/cashflow/internal/model"

// Inputs are the values rules are evaluated against.
type Inputs struct {
	Basic    model.BasicKpis
	Advanced model.AdvancedKpis
	Trends   model.Trends
}

// Rule appends one alert when When holds.
type Rule struct {
	Name     string
	Severity model.Severity
	When     func(Inputs) bool
	Message  string
	Plain    string
}

// Rules is the fixed rule table. Evaluation and output follow this order.
var Rules = []Rule{
	{
		Name:     "negative_balance",
		Severity: model.Critical,
		When:     func(in Inputs) bool { return in.Basic.NetBalance.IsNegative() },
		Message:  "❌ **ALERTA CRÍTICO**: Saldo líquido negativo! Reveja urgentemente suas despesas.",
		Plain:    "ALERTA CRÍTICO: Saldo líquido negativo! Reveja urgentemente suas despesas.",
	},
	{
		Name:     "margin_critical",
		Severity: model.Critical,
		When:     func(in Inputs) bool { return in.Basic.NetMargin < 5 },
		Message:  "⚠️ **ALERTA**: Margem líquida abaixo de 5% - Risco financeiro alto",
		Plain:    "ALERTA: Margem líquida abaixo de 5% - Risco financeiro alto",
	},
	{
		Name:     "margin_low",
		Severity: model.Warning,
		When:     func(in Inputs) bool { return in.Basic.NetMargin < 10 },
		Message:  "📉 **ATENÇÃO**: Margem líquida abaixo de 10% - Considere otimizar custos",
		Plain:    "ATENCAO: Margem líquida abaixo de 10% - Considere otimizar custos",
	},
	{
		Name:     "roi_low",
		Severity: model.Warning,
		When:     func(in Inputs) bool { return in.Advanced.ROI < 15 },
		Message:  "📊 **OPORTUNIDADE**: ROI abaixo de 15% - Avalie novos investimentos",
		Plain:    "OPORTUNIDADE: ROI abaixo de 15% - Avalie novos investimentos",
	},
	{
		Name:     "cycle_long",
		Severity: model.Warning,
		When:     func(in Inputs) bool { return in.Advanced.CashConversionCycle > 60 },
		Message:  "⏳ **ALERTA**: Ciclo de conversão de caixa muito longo (>60 dias)",
		Plain:    "ALERTA: Ciclo de conversão de caixa muito longo (>60 dias)",
	},
	{
		Name:     "margin_excellent",
		Severity: model.Success,
		When:     func(in Inputs) bool { return in.Basic.NetMargin > 20 },
		Message:  "🎉 **EXCELENTE**: Margem líquida acima de 20% - Performance destacada!",
		Plain:    "EXCELENTE: Margem líquida acima de 20% - Performance destacada!",
	},
	{
		Name:     "roi_excellent",
		Severity: model.Success,
		When:     func(in Inputs) bool { return in.Advanced.ROI > 25 },
		Message:  "🚀 **DESTAQUE**: ROI acima de 25% - Retorno excepcional!",
		Plain:    "DESTAQUE: ROI acima de 25% - Retorno excepcional!",
	},
	{
		Name:     "growth",
		Severity: model.Success,
		When:     func(in Inputs) bool { return in.Trends.PositiveTrend },
		Message:  "📈 **CRESCIMENTO**: Tendência positiva identificada nos últimos períodos",
		Plain:    "CRESCIMENTO: Tendência positiva identificada nos últimos períodos",
	},
}

// Nominal is emitted when no rule fires.
var Nominal = model.Alert{
	Severity:     model.Success,
	Message:      "✅ **TUDO OK**: Todos os indicadores dentro das metas esperadas",
	PlainMessage: "TUDO OK: Todos os indicadores dentro das metas esperadas",
}

// Evaluate runs Rules in order and always returns at least one alert.
// A view with no transactions has nothing to judge and gets only Nominal.
func Evaluate(basic model.BasicKpis, advanced model.AdvancedKpis, trends model.Trends) []model.Alert {
	return EvaluateRules(Rules, Inputs{Basic: basic, Advanced: advanced, Trends: trends})
}

// EvaluateRules runs an arbitrary rule table against in.
func EvaluateRules(rules []Rule, in Inputs) []model.Alert {
	var alerts []model.Alert
	if in.Basic.TransactionCount > 0 {
		for _, r := range rules {
			if r.When(in) {
				alerts = append(alerts, model.Alert{
					Severity:     r.Severity,
					Message:      r.Message,
					PlainMessage: r.Plain,
				})
			}
		}
	}
	if len(alerts) == 0 {
		alerts = append(alerts, Nominal)
	}
	return alerts
}
