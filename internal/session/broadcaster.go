package session

type Broadcaster interface {
	Broadcast(code string, action string, data interface{})
}
