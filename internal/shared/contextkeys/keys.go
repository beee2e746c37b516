package contextkeys

// contextKey is an unexported type to prevent collisions with context keys defined in
// other packages.
type contextKey string

// String makes contextKey satisfy the Stringer interface to assist with debugging.
func (c contextKey) String() string {
	return "sample-data-seeder context key " + string(c)
}

const (
	// RunIDKey identifies a single seeding run across all stages.
	RunIDKey = contextKey("runID")

	// ComponentKey names the pipeline component emitting a log line.
	ComponentKey = contextKey("component")

	// OperationKey names the stage being executed (list, reset, load, verify).
	OperationKey = contextKey("operation")

	// CollectionKey is the canonical collection name currently being processed.
	CollectionKey = contextKey("collection")
)
