package model

// RouteRef is the slice of the externally-owned Route entity this service
// cares about. The route service is the source of truth; only existence
// and the display name are consumed here.
type RouteRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
