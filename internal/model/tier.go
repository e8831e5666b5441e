package model

// RiskTier is the actionable classification of a risk score.
type RiskTier string

const (
	// TierApproved allows the transaction.
	TierApproved RiskTier = "APPROVED"
	// TierSuspicious flags the transaction for investigation and raises an alert.
	TierSuspicious RiskTier = "SUSPICIOUS"
	// TierBlocked blocks the transaction immediately.
	TierBlocked RiskTier = "BLOCKED"
)

// IsFraud reports whether the tier counts towards fraud aggregates.
func (t RiskTier) IsFraud() bool {
	return t == TierSuspicious || t == TierBlocked
}
