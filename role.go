package genstream

// Content roles used on the wire.
const (
	RoleUser     = "user"
	RoleModel    = "model"
	RoleFunction = "function"
)
