package internaldefs

import (
	cafeclient "github.com/rymdrosten/cafeclient"
)

// CounterDef defines a public type used by cafeclient APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   cafeclient.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by cafeclient APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   cafeclient.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the cafe client.
var CounterDefs = []CounterDef{
	{ID: cafeclient.MetricLoginSuccess, Name: "cafeclient_login_success_total", Help: "Successful login attempts."},
	{ID: cafeclient.MetricLoginFailure, Name: "cafeclient_login_failure_total", Help: "Failed login attempts."},
	{ID: cafeclient.MetricRegisterSuccess, Name: "cafeclient_register_success_total", Help: "Successful account registrations."},
	{ID: cafeclient.MetricRegisterFailure, Name: "cafeclient_register_failure_total", Help: "Failed account registrations."},
	{ID: cafeclient.MetricSessionRestored, Name: "cafeclient_session_restored_total", Help: "Persisted sessions restored at startup."},
	{ID: cafeclient.MetricSessionReplayRejected, Name: "cafeclient_session_replay_rejected_total", Help: "Persisted sessions rejected at startup."},
	{ID: cafeclient.MetricSessionExpired, Name: "cafeclient_session_expired_total", Help: "Sessions ended by token expiry."},
	{ID: cafeclient.MetricLogout, Name: "cafeclient_logout_total", Help: "Explicit logout operations."},
	{ID: cafeclient.MetricGuardAllowed, Name: "cafeclient_guard_allowed_total", Help: "Route guard checks that allowed entry."},
	{ID: cafeclient.MetricGuardDenied, Name: "cafeclient_guard_denied_total", Help: "Route guard checks that denied entry."},
	{ID: cafeclient.MetricGuardRedirected, Name: "cafeclient_guard_redirected_total", Help: "Route guard denials that redirected to the account route."},
	{ID: cafeclient.MetricRequestSuccess, Name: "cafeclient_request_success_total", Help: "Backend requests that succeeded."},
	{ID: cafeclient.MetricRequestFailure, Name: "cafeclient_request_failure_total", Help: "Backend requests that failed."},
}

// HistogramDefs is an exported constant or variable used by the cafe client.
var HistogramDefs = []HistogramDef{
	{ID: cafeclient.MetricRequestLatency, Name: "cafeclient_request_latency_seconds", Help: "Backend request latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the cafe client.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the cafe client.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
