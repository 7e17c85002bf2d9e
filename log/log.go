// Package log defines the logging interface arbor's tree operations log
// through.
//
// A concurrent tree engine has one debugging problem a sequential one
// doesn't: the interesting failures are races between operations, not
// bugs inside any single one, so a log line is only useful if it can be
// correlated with the handful of concurrent calls that were in flight
// around it. Topics let a caller turn on exactly the granularity needed
// for that — synchronization tracing during a deadlock hunt, verdicts
// alone for an audit trail, everything during a reproduction — without
// committing arbor to any particular logging framework.
package log

// Topics specify which category of arbor event a Log implementation is
// being asked to record.
//
// A Tree passes every event to its Log unconditionally; each
// implementation filters by topic itself (Logrus does so through Enabled,
// before formatting anything).
type Topics int

const (
	// TopicCall records a public Tree method's name and its path
	// argument(s) (List/Create/Remove/Move/Exists all take at least one
	// path) at the moment the call is made, paired with the matching
	// Log.Return once it finishes.
	//
	// This affects Log.Call and Log.Return. A Tree calls them for every
	// operation; an implementation with TopicCall disabled ignores them.
	TopicCall Topics = 1 << iota

	// TopicVerdict records the terminal decision an operation reached —
	// a path found or not found, a target already existing, a directory
	// rejected as non-empty — as opposed to the branch traces that led
	// to it.
	//
	// This affects Log.Log and Log.Logf when the topics contain
	// TopicVerdict.
	TopicVerdict

	// TopicTrace records the intermediate branch decisions inside an
	// operation: which ancestor or LCA a descent failed to resolve, or which
	// source or parent a move found missing.
	//
	// This affects Log.Log and Log.Logf when the topics contain
	// TopicTrace.
	TopicTrace

	// TopicSync records per-node lock state transitions observed during
	// a hand-over-hand descent — which node a descent has just read- or
	// write-locked, and when a descent that hit a missing component
	// releases its trail — the detail most useful when diagnosing a
	// suspected synchronization bug rather than an ordinary
	// path-resolution failure.
	//
	// This affects Log.Log and Log.Logf when the topics contain
	// TopicSync.
	TopicSync

	// TopicError records a call rejected for a syntactically invalid path
	// (returned to the caller as ErrInval). Invariant violations the
	// engine detects in itself (a release without a matching acquire, a
	// refcount dropped below zero) panic without being logged.
	//
	// This affects Log.Log and Log.Logf when the topics contain
	// TopicError.
	TopicError
)

const (
	AllTopics = Topics(0) |
		TopicCall |
		TopicVerdict |
		TopicTrace |
		TopicSync |
		TopicError
)

// M is the shorthand for a log call's free-form fields — in practice
// almost always a path, a pair of paths (move's source/target), or a
// resulting Errno.
type M = map[string]any

// Log is the logger interface.
type Log interface {
	// Enabled reports whether any of topics is currently turned on.
	Enabled(Topics) bool

	// Call records the invocation of a Tree operation together with its
	// path argument(s) in args, and returns a cookie correlating it with
	// the matching Return once the operation completes. Implementations
	// are free to derive the cookie from the call's own path arguments
	// rather than an opaque counter, since arbor's operations have no
	// notion of invocation identity beyond the path(s) they touch.
	Call(name string, args M) string

	// Return records the result of the Tree operation named name, using
	// the cookie Call produced for it.
	Return(name, cookie string, rets M)

	// Log records msg under topics.
	Log(topics Topics, msg string)

	// Logf records a formatted msg under topics.
	Logf(topics Topics, msg string, args ...any)
}

// NoLog is the null implementation of Log, and the default a Tree uses
// when constructed without WithLogger.
type NoLog struct{}

func (NoLog) Enabled(Topics) bool                         { return false }
func (NoLog) Call(string, M) string                       { return "" }
func (NoLog) Log(topics Topics, msg string)               {}
func (NoLog) Logf(topics Topics, msg string, args ...any) {}
func (NoLog) Return(name, cookie string, rets M)          {}

var _ Log = (*NoLog)(nil)
