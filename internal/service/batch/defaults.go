package batch

const (
	defaultChunkSize = 500
	defaultWorkers   = 4
	defaultTopN      = 10
)

// ChunkSizes are the chunk sizes offered to operators.
var ChunkSizes = []int{100, 500, 1000, 5000}
