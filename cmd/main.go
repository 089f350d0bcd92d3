package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/rand"

	"UnoClient/config"
	"UnoClient/models"
	"UnoClient/services/game_sync"
	"UnoClient/services/gateway"
	"UnoClient/services/store"
)

func main() {
	config.Load()
	log.Println("Setting up client...")

	var st store.Store
	if addr := config.RedisURL(); addr != "" {
		redisStore, err := store.NewRedisStore(addr, 0)
		if err != nil {
			log.Fatalf("Error connecting to Redis: %v", err)
		}
		defer redisStore.Close()
		log.Println("Redis connection established")
		st = redisStore
	} else {
		st = store.NewMemoryStore()
	}

	gw, err := gateway.Dial(config.ServerURL())
	if err != nil {
		log.Fatalf("Error connecting to game server: %v", err)
	}
	defer gw.Close()
	log.Printf("Connected to game server at %s", config.ServerURL())

	svc := game_sync.NewService(st, gw)
	subscribe(svc)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	game, err := svc.JoinGame(ctx, config.GameID())
	cancel()
	if err != nil {
		log.Fatalf("Error joining game %s: %v", config.GameID(), err)
	}
	if game != nil {
		log.Printf("[JOIN] joined game %s as %s with %d players", game.ID, config.PlayerName(), len(game.Players))
	} else {
		// Server acked without a game: the state arrives as a later push.
		log.Printf("[JOIN] join acked for %s, waiting for game push", config.GameID())
	}

	if config.Autoplay() {
		go autoplay(svc, config.GameID())
	}

	r := gin.Default()
	setupRoutes(r, svc)

	log.Printf("Debug API listening on port %s", config.Port())
	if err := r.Run(":" + config.Port()); err != nil {
		log.Fatalf("Error starting debug API: %v", err)
	}
}

// subscribe registers push handlers that just narrate what the server is
// doing; the store updates happen inside the sync service.
func subscribe(svc *game_sync.Service) {
	svc.OnGameStarted(func(game *models.Game) {
		log.Printf("[GAME] state push: status=%s players=%d", game.Status, len(game.Players))
		if winner := svc.Winner(); winner != nil {
			log.Printf("[GAME] winner: %s", winner.Name)
		}
	})
	svc.OnNewMessage(func(chatID string, msg models.ChatMessage) {
		log.Printf("[CHAT] %s in %s: %s", msg.Username, chatID, msg.Message)
	})
	svc.OnPlayerNotification(func(n game_sync.PlayerNotification) {
		switch n := n.(type) {
		case game_sync.BuyCards:
			log.Printf("[PLAYER] %s buys %d cards", n.PlayerID, n.Amount)
		case game_sync.Blocked:
			log.Printf("[PLAYER] %s is blocked this round", n.PlayerID)
		case game_sync.Uno:
			log.Printf("[PLAYER] %s has UNO!", n.PlayerID)
		}
	})
	svc.OnReconnect(func(player *models.Player) {
		log.Printf("[RECONNECT] resynced as player %s", player.ID)
	})
}

func setupRoutes(r *gin.Engine, svc *game_sync.Service) {
	r.GET("/state", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"current_round_player": svc.CurrentRoundPlayer(),
			"winner":               svc.Winner(),
			"local_player":         svc.LocalPlayer(),
			"other_players":        svc.OtherPlayers(),
		})
	})

	r.GET("/chat/:id", func(c *gin.Context) {
		chat := svc.GetChat(c.Param("id"))
		if chat == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "chat not found"})
			return
		}
		c.JSON(http.StatusOK, chat)
	})

	r.POST("/actions/ready", func(c *gin.Context) {
		svc.ToggleReady(config.GameID())
		c.JSON(http.StatusOK, gin.H{"local_player": svc.LocalPlayer()})
	})

	r.POST("/actions/buy", func(c *gin.Context) {
		if err := svc.BuyCard(c.Request.Context(), config.GameID()); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "requested"})
	})

	r.POST("/actions/online", func(c *gin.Context) {
		if err := svc.ToggleOnlineStatus(c.Request.Context(), config.GameID()); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"local_player": svc.LocalPlayer()})
	})

	r.POST("/chat/:id", func(c *gin.Context) {
		var body struct {
			Message string `json:"message"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || body.Message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
			return
		}
		if err := svc.SendChatMessage(c.Request.Context(), c.Param("id"), body.Message); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "sent"})
	})
}

// autoplay puts a random hand card whenever it is our turn. Good enough
// to exercise the optimistic path against a live server.
func autoplay(svc *game_sync.Service, gameID string) {
	rng := rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	for range time.Tick(2 * time.Second) {
		self := svc.LocalPlayer()
		turn := svc.CurrentRoundPlayer()
		if self == nil || turn == nil || turn.ID != self.ID || len(self.HandCards) == 0 {
			continue
		}
		card := self.HandCards[rng.Intn(len(self.HandCards))]
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := svc.PutCard(ctx, gameID, []string{card.ID}, card.Color); err != nil {
			log.Printf("[AUTOPLAY-ERROR] could not put card %s: %v", card.ID, err)
		}
		cancel()
	}
}
