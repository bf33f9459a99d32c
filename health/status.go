package health

// Health status constants represent the operational state of a dependency.
const (
	// StatusHealthy indicates the dependency is fully operational.
	StatusHealthy = "healthy"

	// StatusDegraded indicates the dependency works but seeding will not.
	StatusDegraded = "degraded"

	// StatusUnhealthy indicates the dependency is not operational.
	StatusUnhealthy = "unhealthy"
)

// Result is the outcome of one check.
type Result struct {
	// Status is the current health state (healthy, degraded, or unhealthy).
	Status string `json:"status"`

	// Message provides a human-readable description of the health status.
	Message string `json:"message,omitempty"`

	// Details contains additional diagnostic information.
	Details map[string]any `json:"details,omitempty"`
}

// IsHealthy returns true if the status is StatusHealthy.
func (r Result) IsHealthy() bool {
	return r.Status == StatusHealthy
}

// IsDegraded returns true if the status is StatusDegraded.
func (r Result) IsDegraded() bool {
	return r.Status == StatusDegraded
}

// IsUnhealthy returns true if the status is StatusUnhealthy.
func (r Result) IsUnhealthy() bool {
	return r.Status == StatusUnhealthy
}

// NewHealthy creates a healthy result.
func NewHealthy(message string) Result {
	return Result{Status: StatusHealthy, Message: message}
}

// NewDegraded creates a degraded result with optional details.
func NewDegraded(message string, details map[string]any) Result {
	return Result{Status: StatusDegraded, Message: message, Details: details}
}

// NewUnhealthy creates an unhealthy result with optional details.
func NewUnhealthy(message string, details map[string]any) Result {
	return Result{Status: StatusUnhealthy, Message: message, Details: details}
}
