package streaming

import "time"

const (
	defaultBlocksPerCycle = 3
	defaultTxPerBlock     = 5
	defaultPollInterval   = 2 * time.Second
	defaultBackoffInitial = 5 * time.Second
	defaultBackoffMax     = 2 * time.Minute
	defaultFetchWorkers   = 3
)
