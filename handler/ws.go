package handler

import (
	"HeartSnaps/config"
	"HeartSnaps/middleware"
	"HeartSnaps/pkg/log"
	"HeartSnaps/pkg/socket"
	"HeartSnaps/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Ws 后台实时订单流，moderator 即可订阅
type Ws struct {
	Config       *config.Config
	AuthzService service.IAuthzService
	Hub          *socket.Hub
}

func (w *Ws) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(w.Config.Jwt.Secret))
	requireRole := middleware.RequireRole(w.AuthzService, service.RoleModerator)
	r.GET("/v1/admin/ws", authorize, requireRole, w.Serve)
}

func (w *Ws) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.L.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	socket.NewClient(w.Hub, conn)
}
