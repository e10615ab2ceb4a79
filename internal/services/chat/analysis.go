// File: internal/services/chat/analysis.go
package chat

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"

	"github.com/skynavi/travel-assistant/internal/domain"
)

// Toy financial analytics. Each trigger word in the user's query selects
// one computation; the results are appended to the query as a text block
// before it is sent to the model.

const (
	triggerSpending   = "harcama"
	triggerPrediction = "tahmin"
	triggerSavings    = "tasarruf"
)

type SpendingPattern struct {
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
	Trend   string  `json:"trend"`
}

type SavingsPotential struct {
	CurrentSavings   float64 `json:"current_savings"`
	PotentialSavings float64 `json:"potential_savings"`
	SavingsRatio     float64 `json:"savings_ratio"`
}

type analysisReport struct {
	Spending   *SpendingPattern  `json:"spending,omitempty"`
	Prediction *float64          `json:"prediction,omitempty"`
	Savings    *SavingsPotential `json:"savings,omitempty"`
}

func (a *analysisReport) empty() bool {
	return a.Spending == nil && a.Prediction == nil && a.Savings == nil
}

// AnalyzeSpendingPatterns sums the expense series and classifies the trend
// by the sign of the summed month-over-month deltas.
func AnalyzeSpendingPatterns(snapshot *domain.FinanceSnapshot) SpendingPattern {
	var total float64
	for _, v := range snapshot.Expenses {
		total += v
	}

	var trendSum float64
	for i := 1; i < len(snapshot.Expenses); i++ {
		trendSum += snapshot.Expenses[i] - snapshot.Expenses[i-1]
	}

	trend := "azalıyor"
	if trendSum > 0 {
		trend = "artıyor"
	}

	return SpendingPattern{
		Total:   total,
		Average: total / float64(len(snapshot.Expenses)),
		Trend:   trend,
	}
}

// PredictNextMonth averages the last three expense values and perturbs the
// result by a uniformly random factor in [-10%, +10%]. The random source
// is injected so callers can seed it.
func PredictNextMonth(snapshot *domain.FinanceSnapshot, rng *rand.Rand) float64 {
	expenses := snapshot.Expenses
	if len(expenses) > 3 {
		expenses = expenses[len(expenses)-3:]
	}

	var sum float64
	for _, v := range expenses {
		sum += v
	}
	predicted := sum / float64(len(expenses))

	factor := 1 + (rng.Float64()*0.2 - 0.1)
	return predicted * factor
}

// CalculateSavingsPotential compares total income against total expenses.
// When income is zero the ratio is defined as 0 rather than dividing.
func CalculateSavingsPotential(snapshot *domain.FinanceSnapshot) SavingsPotential {
	var income, expenses float64
	for _, v := range snapshot.Income {
		income += v
	}
	for _, v := range snapshot.Expenses {
		expenses += v
	}

	current := income - expenses
	ratio := 0.0
	if income != 0 {
		ratio = current / income * 100
	}

	return SavingsPotential{
		CurrentSavings:   current,
		PotentialSavings: current * 1.2,
		SavingsRatio:     ratio,
	}
}

// EnrichQuery scans the lowercased query for trigger words, runs the
// matching analytics and appends them to the query as a formatted block.
// Queries without triggers pass through unmodified.
func EnrichQuery(query string, snapshot *domain.FinanceSnapshot, rng *rand.Rand) string {
	if snapshot == nil {
		return query
	}
	if err := snapshot.Validate(); err != nil {
		return query
	}

	lowered := strings.ToLower(query)
	var report analysisReport

	if strings.Contains(lowered, triggerSpending) {
		spending := AnalyzeSpendingPatterns(snapshot)
		report.Spending = &spending
	}
	if strings.Contains(lowered, triggerPrediction) {
		prediction := PredictNextMonth(snapshot, rng)
		report.Prediction = &prediction
	}
	if strings.Contains(lowered, triggerSavings) {
		savings := CalculateSavingsPotential(snapshot)
		report.Savings = &savings
	}

	if report.empty() {
		return query
	}

	encoded, err := json.MarshalIndent(&report, "", "  ")
	if err != nil {
		return query
	}
	return fmt.Sprintf("%s\n\nFinansal Analiz: %s", query, encoded)
}
