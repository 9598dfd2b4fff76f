package cnst

const (
	// AppName is the product name used in logs and metrics namespaces
	AppName = "sofra"
	// CommandName is the name of the server binary
	CommandName = "apiserver"
	// ApiServerYaml is the default configuration file name
	ApiServerYaml = "apiserver.yaml"
)

const (
	// SessionCookie is the name of the cookie carrying the opaque session token
	SessionCookie = "sofra_session"
	// CtxPrincipal is the gin context key holding the authenticated principal
	CtxPrincipal = "principal"
	// CtxSessionToken is the gin context key holding the raw session token
	CtxSessionToken = "session_token"
)
