package domain

// RequestContext carries the authenticated caller extracted from the bearer
// token. The zero value means an unauthenticated request.
type RequestContext struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
}
