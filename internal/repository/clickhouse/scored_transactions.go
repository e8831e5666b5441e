package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/chainguard-backend/internal/model"
	"github.com/goodnatureofminers/chainguard-backend/pkg/safe"
)

const insertScoredQuery = `
INSERT INTO scored_transactions (
	hash,
	from_address,
	to_address,
	value,
	block_height,
	timestamp,
	is_error,
	fraud_probability,
	risk_score,
	risk_tier,
	action,
	flags,
	confidence,
	model_type,
	scored_at
) VALUES`

const recentScoredQuery = `
SELECT
	hash,
	from_address,
	to_address,
	value,
	block_height,
	timestamp,
	is_error,
	fraud_probability,
	risk_score,
	risk_tier,
	action,
	flags,
	confidence,
	model_type,
	scored_at
FROM scored_transactions FINAL
WHERE risk_score >= ?
ORDER BY scored_at DESC
LIMIT ?`

// InsertScoredTransactions stores scoring results.
func (r *Repository) InsertScoredTransactions(ctx context.Context, txs []model.ScoredTransaction) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_scored_transactions", tableScored, len(txs), err, start)
	}()

	if len(txs) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertScoredQuery)
	if err != nil {
		return fmt.Errorf("prepare scored transactions batch: %w", err)
	}

	for _, tx := range txs {
		var row []any
		if row, err = scoredRow(tx); err == nil {
			err = batch.Append(row...)
		}
		if err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append scored transaction %s: %w", tx.Hash, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert scored transactions: %w", err)
	}
	return nil
}

func scoredRow(tx model.ScoredTransaction) ([]any, error) {
	height, err := safe.Uint64(tx.BlockHeight)
	if err != nil {
		return nil, fmt.Errorf("block height: %w", err)
	}
	risk, err := safe.Uint8(tx.RiskScore)
	if err != nil {
		return nil, fmt.Errorf("risk score: %w", err)
	}
	flags := tx.Flags
	if flags == nil {
		flags = []string{}
	}
	return []any{
		tx.Hash,
		tx.From,
		tx.To,
		tx.Value,
		height,
		time.Unix(tx.Timestamp, 0).UTC(),
		tx.IsError,
		tx.FraudProbability,
		risk,
		string(tx.RiskTier),
		tx.Action,
		flags,
		tx.Confidence,
		tx.ModelType,
		tx.ScoredAt,
	}, nil
}

// RecentScoredTransactions returns the newest stored results with a risk
// score of at least minRisk.
func (r *Repository) RecentScoredTransactions(ctx context.Context, minRisk, limit int) (out []model.ScoredTransaction, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("recent_scored_transactions", tableScored, len(out), err, start)
	}()

	rows, err := r.conn.Query(ctx, recentScoredQuery, minRisk, limit)
	if err != nil {
		return nil, fmt.Errorf("query scored transactions: %w", err)
	}
	defer closeRows(rows, &err)

	for rows.Next() {
		var (
			tx     model.ScoredTransaction
			height uint64
			ts     time.Time
			risk   uint8
			tier   string
		)
		if err = rows.Scan(
			&tx.Hash,
			&tx.From,
			&tx.To,
			&tx.Value,
			&height,
			&ts,
			&tx.IsError,
			&tx.FraudProbability,
			&risk,
			&tier,
			&tx.Action,
			&tx.Flags,
			&tx.Confidence,
			&tx.ModelType,
			&tx.ScoredAt,
		); err != nil {
			return nil, fmt.Errorf("scan scored transaction: %w", err)
		}
		if tx.BlockHeight, err = safe.Int64(height); err != nil {
			return nil, fmt.Errorf("scored transaction %s block height: %w", tx.Hash, err)
		}
		tx.Timestamp = ts.Unix()
		tx.RiskScore = int(risk)
		tx.RiskTier = model.RiskTier(tier)
		out = append(out, tx)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scored transactions: %w", err)
	}
	return out, nil
}
