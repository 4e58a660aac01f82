package journal

import "miniswap/internal/model"

// Sink receives emitted event records in order.
type Sink interface {
	PutEventBatch(events []model.EventRecord) error
}
