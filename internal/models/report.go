package models

// Outcome classifies how a lookup for one device ended
type Outcome string

const (
	OutcomeSelected     Outcome = "selected"
	OutcomeNoCandidates Outcome = "no-candidates"
	OutcomeEmptyQuery   Outcome = "empty-query"
	OutcomeNetworkError Outcome = "network-error"
)

// DeviceReport is the per-device entry of a scan
type DeviceReport struct {
	Device  Device           `json:"device"`
	Outcome Outcome          `json:"outcome"`
	Result  *SelectionResult `json:"result,omitempty"`
	Error   string           `json:"error,omitempty"`
}
