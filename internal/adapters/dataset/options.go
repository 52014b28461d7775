package dataset

// RowPolicy decides what happens when a row fails validation. The chosen
// policy applies uniformly to the whole load; there are no silent partial
// results.
type RowPolicy string

const (
	// PolicyReject aborts the entire load on the first bad row.
	PolicyReject RowPolicy = "reject"
	// PolicyDrop skips bad rows and reports each one in the Result.
	PolicyDrop RowPolicy = "drop"
)

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithRowPolicy sets the bad-row policy. Unknown values are ignored.
func WithRowPolicy(p RowPolicy) Option {
	return func(l *Loader) {
		if p == PolicyReject || p == PolicyDrop {
			l.policy = p
		}
	}
}
