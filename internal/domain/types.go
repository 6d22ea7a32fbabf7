package domain

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// RequestContext carries the authenticated caller. Services never look past it.
type RequestContext struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

func (rc RequestContext) IsAdmin() bool {
	return rc.Role == RoleAdmin
}
