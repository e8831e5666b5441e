package model

import "time"

// AddressProfile aggregates risk statistics for a single address.
type AddressProfile struct {
	Address              string    `json:"address"`
	TotalTx              uint64    `json:"total_tx"`
	SentTx               uint64    `json:"sent_tx"`
	ReceivedTx           uint64    `json:"received_tx"`
	FraudTx              uint64    `json:"fraud_tx"`
	FraudSent            uint64    `json:"fraud_sent"`
	FraudReceived        uint64    `json:"fraud_received"`
	FraudPercentage      float64   `json:"fraud_pct"`
	TotalValue           float64   `json:"total_value"`
	ValueSent            float64   `json:"value_sent"`
	ValueReceived        float64   `json:"value_received"`
	FraudValue           float64   `json:"fraud_value"`
	UniqueCounterparties uint64    `json:"unique_counterparties"`
	RiskScore            float64   `json:"risk_score"`
	FirstSeen            time.Time `json:"first_seen"`
	LastSeen             time.Time `json:"last_seen"`
	Flagged              bool      `json:"flagged"`
	// Counterparties is the sorted set of distinct peer addresses.
	Counterparties []string `json:"-"`
}

// Role is the side of a transaction an address participated on.
type Role string

const (
	// RoleSender is the from side of a transaction.
	RoleSender Role = "sender"
	// RoleReceiver is the to side of a transaction.
	RoleReceiver Role = "receiver"
)
