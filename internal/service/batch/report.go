package batch

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/goodnatureofminers/chainguard-backend/internal/model"
	"github.com/goodnatureofminers/chainguard-backend/internal/risk/scoring"
)

// Risk distribution bounds.
const (
	mediumRiskFrom = 30
	highRiskFrom   = 70
)

// Summary holds tier counts and rates in percent.
type Summary struct {
	TotalTransactions int     `json:"total_transactions"`
	Blocked           int     `json:"blocked"`
	Suspicious        int     `json:"suspicious"`
	Approved          int     `json:"approved"`
	AverageRiskScore  float64 `json:"average_risk_score"`
	MaxRiskScore      int     `json:"max_risk_score"`
	BlockRate         float64 `json:"block_rate"`
	FlagRate          float64 `json:"flag_rate"`
}

// RiskDistribution buckets risk scores into low (<30), medium (30-69) and high (>=70).
type RiskDistribution struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// Patterns counts common fraud indicators.
type Patterns struct {
	Dust        int `json:"dust_transactions"`
	RoundAmount int `json:"round_amounts"`
	Errors      int `json:"error_transactions"`
	Anomalies   int `json:"ml_anomalies"`
}

// Report summarizes one batch analysis.
type Report struct {
	ID               string                    `json:"report_id"`
	AnalyzedAt       time.Time                 `json:"analysis_timestamp"`
	Summary          Summary                   `json:"summary"`
	CommonFlags      map[string]int            `json:"common_flags"`
	RiskDistribution RiskDistribution          `json:"risk_distribution"`
	Patterns         Patterns                  `json:"common_patterns"`
	Top              []model.ScoredTransaction `json:"top_fraudulent"`
	Errors           int                       `json:"errors"`
}

// NewReport aggregates scored transactions. rowErrors is the number of
// skipped input rows.
func NewReport(id string, at time.Time, txs []model.ScoredTransaction, rowErrors, topN int) Report {
	r := Report{
		ID:          id,
		AnalyzedAt:  at,
		CommonFlags: make(map[string]int),
		Errors:      rowErrors,
	}
	r.Summary.TotalTransactions = len(txs)

	var riskSum int
	for _, tx := range txs {
		switch tx.RiskTier {
		case model.TierBlocked:
			r.Summary.Blocked++
		case model.TierSuspicious:
			r.Summary.Suspicious++
		default:
			r.Summary.Approved++
		}

		riskSum += tx.RiskScore
		if tx.RiskScore > r.Summary.MaxRiskScore {
			r.Summary.MaxRiskScore = tx.RiskScore
		}
		switch {
		case tx.RiskScore >= highRiskFrom:
			r.RiskDistribution.High++
		case tx.RiskScore >= mediumRiskFrom:
			r.RiskDistribution.Medium++
		default:
			r.RiskDistribution.Low++
		}

		for _, f := range tx.Flags {
			r.CommonFlags[f]++
			switch f {
			case scoring.FlagDust:
				r.Patterns.Dust++
			case scoring.FlagRoundAmount:
				r.Patterns.RoundAmount++
			case scoring.FlagIsolationAnomaly:
				r.Patterns.Anomalies++
			}
		}
		if tx.IsError {
			r.Patterns.Errors++
		}
	}

	if n := len(txs); n > 0 {
		r.Summary.AverageRiskScore = round2(float64(riskSum) / float64(n))
		r.Summary.BlockRate = percent(r.Summary.Blocked, n)
		r.Summary.FlagRate = percent(r.Summary.Blocked+r.Summary.Suspicious, n)
	}
	r.Top = top(txs, topN)
	return r
}

// top returns the n riskiest transactions; ties keep input order.
func top(txs []model.ScoredTransaction, n int) []model.ScoredTransaction {
	out := make([]model.ScoredTransaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RiskScore > out[j].RiskScore
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func percent(part, total int) float64 {
	return round2(float64(part) / float64(total) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// WriteJSON writes the report as indented JSON.
func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

const rule = "═══════════════════════════════════════════════════════════════════════════════"

// WriteText renders the report for operators.
func (r Report) WriteText(w io.Writer) error {
	var b strings.Builder
	section := func(title string) {
		fmt.Fprintf(&b, "\n%s\n%s\n", title, rule)
	}

	fmt.Fprintf(&b, "%s\nChainGuard Fraud Analysis Report\n%s\n", rule, rule)
	fmt.Fprintf(&b, "Report ID:           %s\n", r.ID)
	fmt.Fprintf(&b, "Analysis Timestamp:  %s\n", r.AnalyzedAt.UTC().Format(time.RFC3339))

	section("EXECUTIVE SUMMARY")
	s := r.Summary
	fmt.Fprintf(&b, "Total Transactions Analyzed: %d\n", s.TotalTransactions)
	fmt.Fprintf(&b, "Rows Skipped:                %d\n\n", r.Errors)
	b.WriteString("Risk Classification:\n")
	fmt.Fprintf(&b, "• BLOCKED (Critical Risk):     %d transactions\n", s.Blocked)
	fmt.Fprintf(&b, "• SUSPICIOUS (Medium Risk):    %d transactions\n", s.Suspicious)
	fmt.Fprintf(&b, "• APPROVED (Low Risk):         %d transactions\n\n", s.Approved)
	fmt.Fprintf(&b, "Average Risk Score: %.2f\n", s.AverageRiskScore)
	fmt.Fprintf(&b, "Maximum Risk Score: %d\n", s.MaxRiskScore)
	fmt.Fprintf(&b, "Block Rate:         %.2f%%\n", s.BlockRate)
	fmt.Fprintf(&b, "Flag Rate:          %.2f%%\n", s.FlagRate)

	section("RISK DISTRIBUTION")
	fmt.Fprintf(&b, "Low (<%d):      %d\n", mediumRiskFrom, r.RiskDistribution.Low)
	fmt.Fprintf(&b, "Medium (%d-%d): %d\n", mediumRiskFrom, highRiskFrom-1, r.RiskDistribution.Medium)
	fmt.Fprintf(&b, "High (>=%d):    %d\n", highRiskFrom, r.RiskDistribution.High)

	section("KEY FINDINGS")
	fmt.Fprintf(&b, "• Dust Transactions Detected:  %d\n", r.Patterns.Dust)
	fmt.Fprintf(&b, "• Round Amount Patterns:       %d\n", r.Patterns.RoundAmount)
	fmt.Fprintf(&b, "• Error Transactions:          %d\n", r.Patterns.Errors)
	fmt.Fprintf(&b, "• ML Anomalies Identified:     %d\n", r.Patterns.Anomalies)

	if flags := sortedFlags(r.CommonFlags); len(flags) > 0 {
		section("COMMON FLAGS")
		for _, f := range flags {
			fmt.Fprintf(&b, "%-24s %d\n", f, r.CommonFlags[f])
		}
	}

	if len(r.Top) > 0 {
		section(fmt.Sprintf("TOP %d HIGHEST RISK TRANSACTIONS", len(r.Top)))
		for i, tx := range r.Top {
			fmt.Fprintf(&b, "%2d. %s  risk %3d  %-10s  %s -> %s  %.8g ETH\n",
				i+1, tx.Hash, tx.RiskScore, tx.RiskTier, tx.From, tx.To, tx.Value)
			if len(tx.Flags) > 0 {
				fmt.Fprintf(&b, "    flags: %s\n", strings.Join(tx.Flags, ", "))
			}
		}
	}
	b.WriteString(rule + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// sortedFlags orders flags by count, then name.
func sortedFlags(counts map[string]int) []string {
	out := make([]string, 0, len(counts))
	for f := range counts {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if counts[out[i]] != counts[out[j]] {
			return counts[out[i]] > counts[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}
