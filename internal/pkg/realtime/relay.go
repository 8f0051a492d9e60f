package realtime

// Publisher pushes an event to every client joined to a room. It is the
// seam request-handling code emits through, so services depend on this
// interface rather than on the hub itself.
type Publisher interface {
	Publish(room string, event string, payload interface{})
}

// UserRoom returns the per-user notification room for a user id
func UserRoom(userID string) string {
	return "user_" + userID
}

// Client and server event names carried in the frame envelope
const (
	EventJoinRoom        = "join-room"
	EventLeaveRoom       = "leave-room"
	EventJoinUserRoom    = "join-user-room"
	EventSendMessage     = "send-message"
	EventReceiveMessage  = "receive-message"
	EventNewNotification = "new-notification"
)
