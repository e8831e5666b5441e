package scoring

// Flags attached to scored transactions.
const (
	FlagLargeAmount        = "Large Amount"
	FlagMediumAmount       = "Medium Amount"
	FlagDust               = "Dust Transaction"
	FlagError              = "Transaction Error"
	FlagRoundAmount        = "Round Amount"
	FlagSelfTransaction    = "Self Transaction"
	FlagContractFrom       = "Contract-like From"
	FlagContractTo         = "Contract-like To"
	FlagRecentBlock        = "Recent Block"
	FlagOldBlock           = "Old Block"
	FlagIsolationAnomaly   = "Isolation Anomaly"
	FlagEnsembleHighRisk   = "Ensemble High Risk"
	FlagHighConfidence     = "High Confidence Fraud"
	FlagSuspiciousHour     = "Suspicious Hour"
	FlagWeekendTransaction = "Weekend Transaction"
)
