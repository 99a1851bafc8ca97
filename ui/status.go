package ui

type status int

const (
	statusSearching status = iota
	statusStreaming
	statusStale
)

func (s status) String() string {
	switch s {
	case statusSearching:
		return "Waiting for telemetry..."
	case statusStreaming:
		return "Connected"
	case statusStale:
		return "No telemetry - check the device"
	default:
		return "Unknown"
	}
}
