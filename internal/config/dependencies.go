package config

import (
	"time"

	"wtms/internal/service"
	ws "wtms/internal/websocket"
)

// Dependencies adalah service yang dirakit di cmd/api lalu dibagikan ke
// semua route.
type Dependencies struct {
	Engine      *service.Engine
	Submissions *service.Manager
	Identity    *service.Identity
	Hub         *ws.Hub
	UploadDir   string
	Location    *time.Location
}
