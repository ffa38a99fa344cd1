package patterns

import "time"

// DefaultTimeout is the fixed timeout applied to every back office API call
const DefaultTimeout = 10 * time.Second

// BulkheadAcquireTimeout bounds how long a call waits for a free bulkhead slot
const BulkheadAcquireTimeout = 1 * time.Second
