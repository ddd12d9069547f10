package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"HeadsUpPoker/config"
	"HeadsUpPoker/internal/game/hand"
	"HeadsUpPoker/internal/game/manager"
	"HeadsUpPoker/internal/game/table"
	"HeadsUpPoker/internal/middleware"
	"HeadsUpPoker/internal/session"
	"HeadsUpPoker/internal/storage"
	"HeadsUpPoker/internal/utils"
	"HeadsUpPoker/internal/websocket"
)

func main() {
	utils.Init()
	config.Load()

	// Session store: redis when configured, in-process otherwise.
	var repo session.Repo
	if config.C.Redis.Addr != "" {
		client, err := storage.NewRedisClient(
			context.Background(),
			config.C.Redis.Addr,
			config.C.Redis.Password,
			config.C.Redis.DB,
		)
		if err != nil {
			utils.Log.Fatal("redis init failed", "err", err)
		}
		repo = session.NewRedisRepo(client)
	} else {
		repo = session.NewMemRepo()
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Hub first: everything downstream sends through it.
	hub := websocket.NewHub()
	go hub.Run()

	mgr := manager.New(hub)
	mgr.Opts = table.Options{OddChipTo: oddChipPosition(config.C.Game.OddChipTo)}
	hub.OnIncoming = mgr.HandleMessage

	ttl := time.Duration(config.C.JWT.TTLMinutes) * time.Minute
	sessions := session.NewService(repo, mgr, config.C.JWT.Secret, ttl)

	r.POST("/tables", mgr.CreateTableHandler)
	r.POST("/tables/join", sessions.JoinHandler)

	authed := r.Group("/", middleware.JWTAuth(sessions))
	{
		authed.GET("/ws", websocket.ServeWS(hub))
	}

	utils.Log.Info("server running", "port", config.C.Server.Port)
	if err := r.Run(config.C.Server.Port); err != nil {
		utils.Log.Fatal("server stopped", "err", err)
	}
}

func oddChipPosition(s string) hand.Position {
	if s == "button" {
		return hand.Button
	}
	return hand.BigBlind
}
