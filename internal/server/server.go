package server

// Server bundles the entity-specific HTTP servers of the gateway into one
// route registrar.
type Server struct {
	AuthServer
	WorkflowServer
	ManageServer
	DashboardServer
	PollServer
}

func NewServer(
	authServer AuthServer,
	workflowServer WorkflowServer,
	manageServer ManageServer,
	dashboardServer DashboardServer,
	pollServer PollServer,
) Server {
	return Server{
		AuthServer:      authServer,
		WorkflowServer:  workflowServer,
		ManageServer:    manageServer,
		DashboardServer: dashboardServer,
		PollServer:      pollServer,
	}
}
