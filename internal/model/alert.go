package model

import "time"

// AlertType identifies the kind of emitted alert.
type AlertType string

// AlertSuspicious is raised for transactions in the suspicious tier.
const AlertSuspicious AlertType = "SUSPICIOUS"

// Alert wraps a scored transaction with the reason it was surfaced.
type Alert struct {
	Type        AlertType         `json:"alert_type"`
	Transaction ScoredTransaction `json:"transaction"`
	Reason      string            `json:"alert_reason"`
	Source      Source            `json:"source"`
	RaisedAt    time.Time         `json:"alert_time"`
}
