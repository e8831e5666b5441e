// Package feature turns raw transaction records into named numeric feature vectors.
//
// Distributional, statistical and frequency features are relative to the batch
// passed to Extract, so the same record can receive different values depending
// on what it is scored alongside.
package feature

import (
	"math"
	"strings"

	"github.com/goodnatureofminers/chainguard-backend/internal/model"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultAddressLength = 42

var sequences = []string{"012", "123", "234", "345", "456", "567", "678", "789", "abc", "def"}

// Extractor builds feature vectors for batches of transactions.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor constructs an Extractor.
func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logger.Named("featureExtractor")}
}

// ExtractOne builds the feature vector of a single record treated as a batch of one.
func (e *Extractor) ExtractOne(record model.TransactionRecord) (Vector, []Warning) {
	vectors, warnings := e.Extract([]model.TransactionRecord{record})
	return vectors[0], warnings
}

// Extract builds one vector per record. Unusable inputs fall back to neutral
// values and are reported as warnings, never as errors.
func (e *Extractor) Extract(records []model.TransactionRecord) ([]Vector, []Warning) {
	var warnings []Warning
	warn := func(hash, feature, reason string) {
		warnings = append(warnings, Warning{Hash: hash, Feature: feature, Reason: reason})
	}

	values := make([]float64, len(records))
	from := make([]string, len(records))
	to := make([]string, len(records))
	for i, r := range records {
		v := r.Value
		switch {
		case !finite(v):
			warn(r.Hash, Value, "value is not a finite number")
			v = 0
		case v < 0:
			warn(r.Hash, Value, "value is negative")
			v = 0
		}
		values[i] = v
		from[i] = normalizeAddress(r.From)
		to[i] = normalizeAddress(r.To)
	}

	stats := newBatchStats(values, from, to)
	vectors := make([]Vector, len(records))
	for i, r := range records {
		vec := newVector(r.Hash)
		e.fill(vec, r, values[i], from[i], to[i], stats, warn)
		for j, val := range vec.values {
			if !finite(val) {
				warn(r.Hash, Names[j], "computed value is not finite")
				vec.values[j] = 0
			}
		}
		vectors[i] = vec
	}

	for _, w := range warnings {
		e.logger.Warn("feature extraction fell back to neutral value",
			zap.String("hash", w.Hash),
			zap.String("feature", w.Feature),
			zap.String("reason", w.Reason),
		)
	}

	return vectors, warnings
}

func (e *Extractor) fill(vec Vector, r model.TransactionRecord, v float64, from, to string, s *batchStats, warn func(string, string, string)) {
	logValue := math.Log1p(v)
	isError := boolf(r.IsError)

	vec.set(Value, v)
	vec.set(LogValue, logValue)
	vec.set(SqrtValue, math.Sqrt(v))
	vec.set(ValueSquared, v*v)
	vec.set(IsError, isError)
	vec.set(BlockHeight, float64(r.BlockHeight))

	for i, vp := range valuePercentiles {
		vec.set(vp.name, boolf(v > s.thresholds[i]))
	}

	vec.set(IsDust, boolf(v < 0.0001))
	vec.set(IsMicro, boolf(v >= 0.0001 && v < 0.001))
	vec.set(IsSmall, boolf(v >= 0.001 && v < 0.01))
	vec.set(IsMedium, boolf(v >= 0.01 && v < 0.1))
	vec.set(IsLarge, boolf(v >= 0.1 && v < 1))
	vec.set(IsVeryLarge, boolf(v >= 1 && v < 10))
	vec.set(IsHuge, boolf(v >= 10))

	exact := decimal.NewFromFloat(v)
	for d, name := range roundNames {
		vec.set(name, boolf(exact.Round(int32(d)).Equal(exact)))
	}

	e.fillAddress(vec, r.Hash, from, to, s, warn)

	var hour, weekend, night float64
	if r.Timestamp <= 0 {
		warn(r.Hash, Hour, "timestamp is missing")
	} else {
		ts := r.Time()
		h := ts.Hour()
		dow := (int(ts.Weekday()) + 6) % 7
		hour = float64(h)
		weekend = boolf(dow >= 5)
		night = boolf(h >= 22 || h <= 6)

		vec.set(Hour, hour)
		vec.set(DayOfWeek, float64(dow))
		vec.set(DayOfMonth, float64(ts.Day()))
		vec.set(Month, float64(ts.Month()))
		vec.set(Quarter, float64((int(ts.Month())-1)/3+1))
		vec.set(IsWeekend, weekend)
		vec.set(IsNight, night)
		vec.set(IsBusinessHours, boolf(h >= 9 && h <= 17))
		vec.set(IsSuspiciousHour, boolf(h >= 2 && h <= 5))
		vec.set(IsPeakTrading, boolf(h >= 14 && h <= 16))
	}

	if r.BlockHeight < 0 {
		warn(r.Hash, BlockHeight, "block height is negative")
		vec.set(BlockHeight, 0)
	} else {
		vec.set(BlockMod100, float64(r.BlockHeight%100))
		vec.set(BlockMod1000, float64(r.BlockHeight%1000))
	}

	z := s.zscore(v)
	vec.set(ValueZScore, z)
	vec.set(ValueRank, s.rank(v))
	vec.set(ValueIQR, boolf(v >= s.q25 && v <= s.q75))
	vec.set(ValueOutlier, boolf(math.Abs(z) > 3))
	vec.set(ExtremeOutlier, boolf(math.Abs(z) > 5))

	vec.set(ValueHourInter, v*hour)
	vec.set(ErrorValueInter, isError*logValue)
	vec.set(WeekendValueInter, weekend*v)
	vec.set(NightValueInter, night*v)
	vec.set(FreqValueInter, vec.Get(FromFrequencyLog)*logValue)
}

func (e *Extractor) fillAddress(vec Vector, hash, from, to string, s *batchStats, warn func(string, string, string)) {
	fromFreq := float64(s.fromCounts[from])
	toFreq := float64(s.toCounts[to])

	vec.set(FromLength, addressLength(from))
	vec.set(ToLength, addressLength(to))
	if from == "" {
		warn(hash, FromLength, "sender address is missing")
	}
	if to == "" {
		warn(hash, ToLength, "receiver address is missing")
	}
	vec.set(SameAddress, boolf(from != "" && from == to))

	vec.set(FromHasPattern, boolf(HasRepeatedRun(from, 4)))
	vec.set(ToHasPattern, boolf(HasRepeatedRun(to, 4)))
	vec.set(FromHasSequence, boolf(hasSequence(from)))
	vec.set(ToHasSequence, boolf(hasSequence(to)))

	vec.set(FromFrequency, fromFreq)
	vec.set(ToFrequency, toFreq)
	vec.set(FromFrequencyLog, math.Log1p(fromFreq))
	vec.set(ToFrequencyLog, math.Log1p(toFreq))
	vec.set(FromHighFreq, boolf(fromFreq > s.fromP95))
	vec.set(ToHighFreq, boolf(toFreq > s.toP95))
	vec.set(FromVeryHighFreq, boolf(fromFreq > s.fromP99))
	vec.set(ToVeryHighFreq, boolf(toFreq > s.toP99))

	vec.set(FromZeroCount, float64(ZeroCount(from)))
	vec.set(ToZeroCount, float64(ZeroCount(to)))
}

// HasRepeatedRun reports whether any character occurs at least n times in a row.
func HasRepeatedRun(s string, n int) bool {
	if n <= 1 {
		return s != ""
	}
	run := 1
	for i := 1; i < len(s); i++ {
		if s[i] == s[i-1] {
			run++
			if run >= n {
				return true
			}
			continue
		}
		run = 1
	}
	return false
}

// ZeroCount returns the number of '0' characters in an address.
func ZeroCount(addr string) int {
	return strings.Count(addr, "0")
}

func hasSequence(addr string) bool {
	for _, seq := range sequences {
		if strings.Contains(addr, seq) {
			return true
		}
	}
	return false
}

func addressLength(addr string) float64 {
	if addr == "" {
		return defaultAddressLength
	}
	return float64(len(addr))
}

func normalizeAddress(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

func boolf(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
