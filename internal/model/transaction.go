// Package model defines domain models shared by the risk-scoring engine.
package model

import "time"

// NullAddress is the burn address excluded from profile aggregation.
const NullAddress = "0x0000000000000000000000000000000000000000"

// TransactionRecord is a raw transaction handed to the engine by an ingestion source.
type TransactionRecord struct {
	Hash        string  `json:"hash"`
	BlockHeight int64   `json:"block_height"`
	Timestamp   int64   `json:"timestamp"`
	From        string  `json:"from"`
	To          string  `json:"to"`
	Value       float64 `json:"value"`
	IsError     bool    `json:"is_error,omitempty"`
}

// Time returns the record timestamp in UTC.
func (r TransactionRecord) Time() time.Time {
	return time.Unix(r.Timestamp, 0).UTC()
}

// ScoredTransaction is the immutable output of a single scoring pass.
type ScoredTransaction struct {
	Hash             string    `json:"hash"`
	From             string    `json:"from"`
	To               string    `json:"to"`
	Value            float64   `json:"value"`
	BlockHeight      int64     `json:"block_height"`
	Timestamp        int64     `json:"timestamp"`
	IsError          bool      `json:"is_error"`
	FraudProbability float64   `json:"fraud_probability"`
	RiskScore        int       `json:"risk_score"`
	RiskTier         RiskTier  `json:"risk_tier"`
	Action           string    `json:"action"`
	Flags            []string  `json:"flags"`
	Confidence       *float64  `json:"confidence,omitempty"`
	ModelType        string    `json:"model_type"`
	ScoredAt         time.Time `json:"scored_at"`
}

// Record returns the transaction fields of the scored transaction.
func (s ScoredTransaction) Record() TransactionRecord {
	return TransactionRecord{
		Hash:        s.Hash,
		BlockHeight: s.BlockHeight,
		Timestamp:   s.Timestamp,
		From:        s.From,
		To:          s.To,
		Value:       s.Value,
		IsError:     s.IsError,
	}
}

// HasFlag reports whether the flag was triggered for the transaction.
func (s ScoredTransaction) HasFlag(flag string) bool {
	for _, f := range s.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// Source tags the ingestion path that produced a scored transaction.
type Source string

const (
	// SourceStreaming marks transactions scored by the streaming monitor.
	SourceStreaming Source = "STREAMING"
	// SourceBatch marks transactions scored from an uploaded batch.
	SourceBatch Source = "BATCH"
)
