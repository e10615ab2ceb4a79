package domain

import "fmt"

// FinanceSnapshot is the in-memory fixture the query processor runs its
// toy analytics against. Income and Expenses are index-aligned with Months.
type FinanceSnapshot struct {
	Months     []string  `json:"tarih"`
	Income     []float64 `json:"gelir"`
	Expenses   []float64 `json:"harcama"`
	Categories []string  `json:"kategori"`
}

func (s *FinanceSnapshot) Validate() error {
	if len(s.Income) != len(s.Months) || len(s.Expenses) != len(s.Months) {
		return fmt.Errorf("income and expenses must be aligned with months")
	}
	if len(s.Months) == 0 {
		return fmt.Errorf("snapshot must cover at least one month")
	}
	return nil
}

// SampleSnapshot returns the demo data the assistant ships with.
func SampleSnapshot() *FinanceSnapshot {
	return &FinanceSnapshot{
		Months:     []string{"2024-01", "2024-02", "2024-03"},
		Income:     []float64{12000, 12000, 12000},
		Expenses:   []float64{9000, 10500, 8500},
		Categories: []string{"market", "eğlence", "faturalar"},
	}
}
