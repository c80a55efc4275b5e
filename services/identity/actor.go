package identity

import "net/http"

// Actor is the requesting identity. UserUID is empty for anonymous shoppers,
// who are tracked by their session only.
type Actor struct {
	UserUID    string
	SessionUID string
}

func (a Actor) IsAnonymous() bool {
	return a.UserUID == ""
}

func FromRequest(r *http.Request) Actor {
	return Actor{
		UserUID:    r.Header.Get("X-User-UID"),
		SessionUID: r.Header.Get("X-Session-UID"),
	}
}
