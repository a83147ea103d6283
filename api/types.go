package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	teamHandler   teamHandler
	userHandler   userHandler
	tagHandler    tagHandler
	taskHandler   taskHandler
	healthHandler healthHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error"`
	Status  string `json:"status"`
	Details string `json:"details,omitempty"`
}
