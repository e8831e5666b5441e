// Package classify maps fraud probabilities and risk scores to risk tiers.
//
// Every scoring path routes its integer score through this package so that
// streaming and batch results are tiered identically.
package classify

import (
	"fmt"
	"math"

	"github.com/goodnatureofminers/chainguard-backend/internal/model"
)

const (
	// BlockedThreshold is the lowest score classified as blocked.
	BlockedThreshold = 80
	// SuspiciousThreshold is the lowest score classified as suspicious.
	SuspiciousThreshold = 65

	// MaxProbability caps every fraud probability to avoid false certainty.
	MaxProbability = 0.95
)

// Decision is the classification of a single risk score.
type Decision struct {
	Tier          model.RiskTier
	Action        string
	ThreatLevel   string
	Description   string
	TriggersAlert bool
}

var (
	blocked = Decision{
		Tier:        model.TierBlocked,
		Action:      "Block",
		ThreatLevel: "HIGH",
		Description: "CRITICAL - Block Transaction Immediately",
	}
	suspicious = Decision{
		Tier:          model.TierSuspicious,
		Action:        "Alert",
		ThreatLevel:   "MEDIUM",
		Description:   "HIGH RISK - Flag for Investigation",
		TriggersAlert: true,
	}
	approved = Decision{
		Tier:        model.TierApproved,
		Action:      "Approve",
		ThreatLevel: "LOW",
		Description: "LOW RISK - Allow Transaction",
	}
)

// Classify returns the decision for a risk score. Scores outside [0,100] are clamped.
func Classify(score int) Decision {
	score = ClampScore(score)
	switch {
	case score >= BlockedThreshold:
		return blocked
	case score >= SuspiciousThreshold:
		return suspicious
	default:
		return approved
	}
}

// Tier returns only the tier for a risk score.
func Tier(score int) model.RiskTier {
	return Classify(score).Tier
}

// ClampScore bounds a score to [0,100].
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ClampProbability bounds a probability to [0, MaxProbability] and maps NaN to 0.
func ClampProbability(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > MaxProbability {
		return MaxProbability
	}
	return p
}

// ScoreFromProbability derives the integer risk score floor(p*100) from a probability.
func ScoreFromProbability(p float64) int {
	p = ClampProbability(p)
	return ClampScore(int(math.Floor(p * 100)))
}

// ProbabilityFromPoints returns the smallest probability whose score is points.
// points/100 alone is not enough: 0.29*100 evaluates to 28.999999999999996.
func ProbabilityFromPoints(points int) float64 {
	points = ClampScore(points)
	p := float64(points) / 100
	for math.Floor(p*100) < float64(points) {
		p = math.Nextafter(p, 1)
	}
	return p
}

// AlertReason describes why a suspicious transaction was surfaced.
func AlertReason(score int, source model.Source) string {
	reason := fmt.Sprintf("Risk score %d%% in suspicious range (%d-%d%%)", score, SuspiciousThreshold, BlockedThreshold)
	if source == model.SourceBatch {
		return "Batch Analysis: " + reason
	}
	return reason
}
