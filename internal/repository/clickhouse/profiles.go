package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/chainguard-backend/internal/model"
)

const upsertProfilesQuery = `
INSERT INTO address_profiles (
	address,
	total_tx,
	sent_tx,
	received_tx,
	fraud_tx,
	fraud_sent,
	fraud_received,
	fraud_percentage,
	total_value,
	value_sent,
	value_received,
	fraud_value,
	unique_counterparties,
	risk_score,
	first_seen,
	last_seen,
	flagged,
	counterparties
) VALUES`

const getProfileQuery = `
SELECT
	address,
	total_tx,
	sent_tx,
	received_tx,
	fraud_tx,
	fraud_sent,
	fraud_received,
	fraud_percentage,
	total_value,
	value_sent,
	value_received,
	fraud_value,
	unique_counterparties,
	risk_score,
	first_seen,
	last_seen,
	flagged,
	counterparties
FROM address_profiles FINAL
WHERE address = ?
LIMIT 1`

// UpsertProfiles writes the latest state of each profile. Older versions are
// collapsed by the table engine.
func (r *Repository) UpsertProfiles(ctx context.Context, profiles []model.AddressProfile) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("upsert_profiles", tableProfiles, len(profiles), err, start)
	}()

	if len(profiles) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, upsertProfilesQuery)
	if err != nil {
		return fmt.Errorf("prepare profiles batch: %w", err)
	}

	for _, p := range profiles {
		if err = batch.Append(
			p.Address,
			p.TotalTx,
			p.SentTx,
			p.ReceivedTx,
			p.FraudTx,
			p.FraudSent,
			p.FraudReceived,
			p.FraudPercentage,
			p.TotalValue,
			p.ValueSent,
			p.ValueReceived,
			p.FraudValue,
			p.UniqueCounterparties,
			p.RiskScore,
			p.FirstSeen,
			p.LastSeen,
			p.Flagged,
			p.Counterparties,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append profile %s: %w", p.Address, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert profiles: %w", err)
	}
	return nil
}

// GetProfile loads the current profile of an address.
func (r *Repository) GetProfile(ctx context.Context, address string) (p model.AddressProfile, found bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("get_profile", tableProfiles, boolInt(found), err, start)
	}()

	rows, err := r.conn.Query(ctx, getProfileQuery, address)
	if err != nil {
		return p, false, fmt.Errorf("query profile: %w", err)
	}
	defer closeRows(rows, &err)

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return p, false, fmt.Errorf("iterate profile: %w", err)
		}
		return p, false, nil
	}

	if err = rows.Scan(
		&p.Address,
		&p.TotalTx,
		&p.SentTx,
		&p.ReceivedTx,
		&p.FraudTx,
		&p.FraudSent,
		&p.FraudReceived,
		&p.FraudPercentage,
		&p.TotalValue,
		&p.ValueSent,
		&p.ValueReceived,
		&p.FraudValue,
		&p.UniqueCounterparties,
		&p.RiskScore,
		&p.FirstSeen,
		&p.LastSeen,
		&p.Flagged,
		&p.Counterparties,
	); err != nil {
		return model.AddressProfile{}, false, fmt.Errorf("scan profile: %w", err)
	}
	if err = rows.Err(); err != nil {
		return model.AddressProfile{}, false, fmt.Errorf("iterate profile: %w", err)
	}
	return p, true, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
