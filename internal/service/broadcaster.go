package service

// Broadcaster pushes interview lifecycle events to connected watchers.
// The WebSocket hub implements it; services treat it as optional.
type Broadcaster interface {
	BroadcastToWatchers(interviewID string, event string, payload interface{})
}
