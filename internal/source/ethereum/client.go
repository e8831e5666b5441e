// Package ethereum reads recent blocks from an Ethereum JSON-RPC node.
package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/goodnatureofminers/chainguard-backend/internal/model"
	"github.com/goodnatureofminers/chainguard-backend/pkg/safe"
	"github.com/shopspring/decimal"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

const weiDecimals = 18

type (
	// EthClient is the subset of ethclient.Client used by the source.
	EthClient interface {
		BlockNumber(ctx context.Context) (uint64, error)
		BlockByNumber(ctx context.Context, number *big.Int) (*types.Block, error)
		BlockReceipts(ctx context.Context, blockNrOrHash rpc.BlockNumberOrHash) ([]*types.Receipt, error)
		ChainID(ctx context.Context) (*big.Int, error)
		Close()
	}
	// Metrics observes node RPC calls.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// Config tunes the source.
type Config struct {
	RPCURL string
	// RPS bounds node requests per second.
	RPS int
	// Receipts fetches block receipts to mark reverted transactions.
	Receipts bool
}

// Source converts node blocks into transaction records.
type Source struct {
	client   EthClient
	metrics  Metrics
	rl       ratelimit.Limiter
	receipts bool
	signer   types.Signer
	logger   *zap.Logger
}

// Dial connects to the node and resolves its chain id.
func Dial(ctx context.Context, cfg Config, metrics Metrics, logger *zap.Logger) (*Source, error) {
	if cfg.RPCURL == "" {
		return nil, errors.New("ethereum rpc url is required")
	}
	client, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dial ethereum rpc: %w", err)
	}
	s, err := New(ctx, client, cfg, metrics, logger)
	if err != nil {
		client.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing client.
func New(ctx context.Context, client EthClient, cfg Config, metrics Metrics, logger *zap.Logger) (*Source, error) {
	if metrics == nil {
		return nil, errors.New("ethereum source metrics is required")
	}
	rps := cfg.RPS
	if rps <= 0 {
		rps = 10
	}
	s := &Source{
		client:   client,
		metrics:  metrics,
		rl:       ratelimit.New(rps),
		receipts: cfg.Receipts,
		logger:   logger.Named("ethereumSource"),
	}

	s.rl.Take()
	started := time.Now()
	chainID, err := client.ChainID(ctx)
	s.metrics.Observe("chain_id", err, started)
	if err != nil {
		return nil, fmt.Errorf("chain id: %w", err)
	}
	s.signer = types.LatestSignerForChainID(chainID)
	s.logger.Info("connected", zap.String("chain_id", chainID.String()))
	return s, nil
}

// LatestHeight returns the newest block number.
func (s *Source) LatestHeight(ctx context.Context) (int64, error) {
	s.rl.Take()
	started := time.Now()
	n, err := s.client.BlockNumber(ctx)
	s.metrics.Observe("block_number", err, started)
	if err != nil {
		return 0, err
	}
	return safe.Int64(n)
}

// BlockTransactions returns every transaction of the block at height.
func (s *Source) BlockTransactions(ctx context.Context, height int64) ([]model.TransactionRecord, error) {
	s.rl.Take()
	started := time.Now()
	block, err := s.client.BlockByNumber(ctx, big.NewInt(height))
	s.metrics.Observe("block_by_number", err, started)
	if err != nil {
		return nil, err
	}

	ts, err := safe.Int64(block.Time())
	if err != nil {
		return nil, fmt.Errorf("block %d time: %w", height, err)
	}

	var failed map[common.Hash]bool
	if s.receipts {
		if failed, err = s.failed(ctx, height); err != nil {
			s.logger.Warn("block receipts unavailable, error status unknown", zap.Int64("height", height), zap.Error(err))
		}
	}

	txs := block.Transactions()
	out := make([]model.TransactionRecord, 0, len(txs))
	for _, tx := range txs {
		r := model.TransactionRecord{
			Hash:        tx.Hash().Hex(),
			BlockHeight: height,
			Timestamp:   ts,
			Value:       WeiToEther(tx.Value()),
			IsError:     failed[tx.Hash()],
		}
		if from, serr := types.Sender(s.signer, tx); serr == nil {
			r.From = strings.ToLower(from.Hex())
		} else {
			s.logger.Debug("sender not recovered", zap.String("hash", r.Hash), zap.Error(serr))
		}
		if to := tx.To(); to != nil {
			r.To = strings.ToLower(to.Hex())
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Source) failed(ctx context.Context, height int64) (map[common.Hash]bool, error) {
	s.rl.Take()
	started := time.Now()
	receipts, err := s.client.BlockReceipts(ctx, rpc.BlockNumberOrHashWithNumber(rpc.BlockNumber(height)))
	s.metrics.Observe("block_receipts", err, started)
	if err != nil {
		return nil, err
	}
	out := make(map[common.Hash]bool, len(receipts))
	for _, r := range receipts {
		if r != nil && r.Status == types.ReceiptStatusFailed {
			out[r.TxHash] = true
		}
	}
	return out, nil
}

// Close closes the node connection.
func (s *Source) Close() {
	s.client.Close()
}

// WeiToEther converts a wei amount to ether exactly before narrowing to float64.
func WeiToEther(wei *big.Int) float64 {
	if wei == nil {
		return 0
	}
	f, _ := decimal.NewFromBigInt(wei, -weiDecimals).Float64()
	return f
}
