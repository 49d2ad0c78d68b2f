package models

import "time"

/**
 * Health status of a single component (serialized to JSON format)
 * @property {string} name - Component name
 * @property {bool} healthy - Whether the component is healthy
 * @property {string} message - Human readable status message
 * @property {float64} response_time_ms - Wall clock duration of the check, set by the runner
 * @property {map} metadata - Probe specific detail
 * @property {map} sub_components - Nested component statuses, arbitrary depth
 */
type ComponentStatus struct {
	Name           string                     `json:"name"`
	Healthy        bool                       `json:"healthy"`
	Message        string                     `json:"message"`
	ResponseTimeMs *float64                   `json:"response_time_ms,omitempty"`
	Metadata       map[string]interface{}     `json:"metadata,omitempty"`
	SubComponents  map[string]ComponentStatus `json:"sub_components,omitempty"`
}

// Flatten returns this status plus every nested sub component at any depth.
func (c ComponentStatus) Flatten() []ComponentStatus {
	all := []ComponentStatus{c}
	for _, sub := range c.SubComponents {
		all = append(all, sub.Flatten()...)
	}
	return all
}

/**
 * Root health snapshot for one status request/response cycle
 * @property {map} components - Top level component statuses
 * @property {bool} overall_healthy - AND across every node at every depth
 * @property {time.Time} timestamp - Snapshot time
 * @property {map} system_info - Static descriptive facts about the process
 */
type SystemStatus struct {
	Components     map[string]ComponentStatus `json:"components"`
	OverallHealthy bool                       `json:"overall_healthy"`
	Timestamp      time.Time                  `json:"timestamp"`
	SystemInfo     map[string]interface{}     `json:"system_info"`
}

// Flatten returns every component status at every depth of every tree.
func (s SystemStatus) Flatten() []ComponentStatus {
	var all []ComponentStatus
	for _, c := range s.Components {
		all = append(all, c.Flatten()...)
	}
	return all
}

// TotalComponents counts the top level components.
func (s SystemStatus) TotalComponents() int {
	return len(s.Components)
}

// HealthyComponents lists the names of healthy top level components.
func (s SystemStatus) HealthyComponents() []string {
	var names []string
	for name, c := range s.Components {
		if c.Healthy {
			names = append(names, name)
		}
	}
	return names
}

// UnhealthyComponents lists the names of unhealthy top level components.
func (s SystemStatus) UnhealthyComponents() []string {
	var names []string
	for name, c := range s.Components {
		if !c.Healthy {
			names = append(names, name)
		}
	}
	return names
}

// HealthPercentage reports the share of healthy nodes across the whole tree.
func (s SystemStatus) HealthPercentage() float64 {
	all := s.Flatten()
	if len(all) == 0 {
		return 100.0
	}
	healthy := 0
	for _, c := range all {
		if c.Healthy {
			healthy++
		}
	}
	return float64(healthy) / float64(len(all)) * 100.0
}
