package feature

// Feature names produced by the extractor. The order of Names is the order of
// values in every Vector and the column order expected by trained sub-models.
const (
	Value        = "value"
	LogValue     = "log_value"
	SqrtValue    = "sqrt_value"
	ValueSquared = "value_squared"
	IsError      = "is_error"
	BlockHeight  = "block_height"

	ValueAboveP100 = "value_above_p100"
	ValueAboveP250 = "value_above_p250"
	ValueAboveP500 = "value_above_p500"
	ValueAboveP750 = "value_above_p750"
	ValueAboveP900 = "value_above_p900"
	ValueAboveP950 = "value_above_p950"
	ValueAboveP990 = "value_above_p990"
	ValueAboveP999 = "value_above_p999"

	IsDust      = "is_dust"
	IsMicro     = "is_micro"
	IsSmall     = "is_small"
	IsMedium    = "is_medium"
	IsLarge     = "is_large"
	IsVeryLarge = "is_very_large"
	IsHuge      = "is_huge"

	IsRound0 = "is_round_0"
	IsRound1 = "is_round_1"
	IsRound2 = "is_round_2"
	IsRound3 = "is_round_3"
	IsRound4 = "is_round_4"

	FromLength        = "from_length"
	ToLength          = "to_length"
	SameAddress       = "same_address"
	FromHasPattern    = "from_has_pattern"
	ToHasPattern      = "to_has_pattern"
	FromHasSequence   = "from_has_sequence"
	ToHasSequence     = "to_has_sequence"
	FromFrequency     = "from_frequency"
	ToFrequency       = "to_frequency"
	FromFrequencyLog  = "from_frequency_log"
	ToFrequencyLog    = "to_frequency_log"
	FromHighFreq      = "from_high_freq"
	ToHighFreq        = "to_high_freq"
	FromVeryHighFreq  = "from_very_high_freq"
	ToVeryHighFreq    = "to_very_high_freq"
	FromZeroCount     = "from_zero_count"
	ToZeroCount       = "to_zero_count"
	Hour              = "hour"
	DayOfWeek         = "day_of_week"
	DayOfMonth        = "day_of_month"
	Month             = "month"
	Quarter           = "quarter"
	IsWeekend         = "is_weekend"
	IsNight           = "is_night"
	IsBusinessHours   = "is_business_hours"
	IsSuspiciousHour  = "is_suspicious_hour"
	IsPeakTrading     = "is_peak_trading"
	BlockMod100       = "block_mod_100"
	BlockMod1000      = "block_mod_1000"
	ValueZScore       = "value_zscore"
	ValueRank         = "value_rank"
	ValueIQR          = "value_iqr"
	ValueOutlier      = "value_outlier"
	ExtremeOutlier    = "extreme_outlier"
	ValueHourInter    = "value_hour_interaction"
	ErrorValueInter   = "error_value_interaction"
	WeekendValueInter = "weekend_value_interaction"
	NightValueInter   = "night_value_interaction"
	FreqValueInter    = "freq_value_interaction"
)

// Names lists every feature in vector order.
var Names = []string{
	Value, LogValue, SqrtValue, ValueSquared, IsError, BlockHeight,
	ValueAboveP100, ValueAboveP250, ValueAboveP500, ValueAboveP750,
	ValueAboveP900, ValueAboveP950, ValueAboveP990, ValueAboveP999,
	IsDust, IsMicro, IsSmall, IsMedium, IsLarge, IsVeryLarge, IsHuge,
	IsRound0, IsRound1, IsRound2, IsRound3, IsRound4,
	FromLength, ToLength, SameAddress,
	FromHasPattern, ToHasPattern, FromHasSequence, ToHasSequence,
	FromFrequency, ToFrequency, FromFrequencyLog, ToFrequencyLog,
	FromHighFreq, ToHighFreq, FromVeryHighFreq, ToVeryHighFreq,
	FromZeroCount, ToZeroCount,
	Hour, DayOfWeek, DayOfMonth, Month, Quarter,
	IsWeekend, IsNight, IsBusinessHours, IsSuspiciousHour, IsPeakTrading,
	BlockMod100, BlockMod1000,
	ValueZScore, ValueRank, ValueIQR, ValueOutlier, ExtremeOutlier,
	ValueHourInter, ErrorValueInter, WeekendValueInter, NightValueInter, FreqValueInter,
}

// valuePercentiles pairs the batch quantile with its indicator feature.
var valuePercentiles = []struct {
	p    float64
	name string
}{
	{0.1, ValueAboveP100},
	{0.25, ValueAboveP250},
	{0.5, ValueAboveP500},
	{0.75, ValueAboveP750},
	{0.9, ValueAboveP900},
	{0.95, ValueAboveP950},
	{0.99, ValueAboveP990},
	{0.999, ValueAboveP999},
}

var roundNames = []string{IsRound0, IsRound1, IsRound2, IsRound3, IsRound4}

var nameIndex = func() map[string]int {
	idx := make(map[string]int, len(Names))
	for i, n := range Names {
		idx[n] = i
	}
	return idx
}()

// Index returns the position of a feature in vector order.
func Index(name string) (int, bool) {
	i, ok := nameIndex[name]
	return i, ok
}
