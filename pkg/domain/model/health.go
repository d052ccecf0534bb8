package model

// HealthStatus is the liveness report served by the trigger server
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}
