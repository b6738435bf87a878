package models

// Health represents the health status of the service.
type Health struct {
	Status  HealthStatus           `json:"status"`
	Time    Timestamp              `json:"time"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// SystemStatus represents the overall system status.
type SystemStatus struct {
	Status     HealthStatus      `json:"status"`
	Time       Timestamp         `json:"time"`
	Subsystems []SubsystemStatus `json:"subsystems"`
	Providers  []ProviderStatus  `json:"providers"`
}

// SubsystemStatus represents the status of a subsystem.
type SubsystemStatus struct {
	Name   string       `json:"name"`
	Status HealthStatus `json:"status"`
	Detail *string      `json:"detail,omitempty"`
}

// ProviderStatus represents the status of an external provider.
type ProviderStatus struct {
	Provider      string       `json:"provider"`
	Status        HealthStatus `json:"status"`
	LastSuccessAt *Timestamp   `json:"lastSuccessAt,omitempty"`
	LastFailureAt *Timestamp   `json:"lastFailureAt,omitempty"`
	Message       *string      `json:"message,omitempty"`
}

// ClearCacheResponse is the payload for DELETE /v1/admin/routes/cache.
type ClearCacheResponse struct {
	Cleared bool `json:"cleared"`
}

// PrewarmRequest is the body for POST /v1/admin/prewarm.
type PrewarmRequest struct {
	// CourseIDs limits prewarming to specific courses. Empty means all.
	CourseIDs []string `json:"courseIds"`
}

// PrewarmResponse reports the outcome of a prewarm run.
type PrewarmResponse struct {
	Requested int `json:"requested"`
	Warmed    int `json:"warmed"`
	Failed    int `json:"failed"`
}
