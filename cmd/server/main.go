package main

import (
	"log"

	"yaarfetch-be/internal/config"
	"yaarfetch-be/internal/db"
	"yaarfetch-be/internal/events"
	"yaarfetch-be/internal/logger"
	"yaarfetch-be/internal/match"
	"yaarfetch-be/internal/message"
	"yaarfetch-be/internal/offer"
	"yaarfetch-be/internal/order"
	"yaarfetch-be/internal/review"
	"yaarfetch-be/internal/transport"
	"yaarfetch-be/internal/user"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		p, err := events.NewSaramaPublisher(cfg.KafkaBrokers, cfg.EventTopic)
		if err != nil {
			log.Fatalf("Failed to connect to Kafka: %v", err)
		}
		publisher = p
	}
	defer publisher.Close()

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, publisher)

	offerRepo := offer.NewRepository(database)
	offerSvc := offer.NewService(offerRepo, orderRepo)

	matchRepo := match.NewRepository(database)
	matchSvc := match.NewService(matchRepo, orderRepo, offerRepo, publisher)

	messageRepo := message.NewRepository(database)
	messageSvc := message.NewService(messageRepo, matchRepo)

	reviewRepo := review.NewRepository(database)
	reviewSvc := review.NewService(reviewRepo, matchRepo)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	router := transport.NewRouter(cfg, userRepo, transport.Handlers{
		Orders:   transport.NewOrderHandler(orderSvc),
		Offers:   transport.NewOfferHandler(offerSvc),
		Matches:  transport.NewMatchHandler(matchSvc),
		Messages: transport.NewMessageHandler(messageSvc),
		Reviews:  transport.NewReviewHandler(reviewSvc),
		Users:    transport.NewUserHandler(userSvc),
	})

	log.Printf("🚀 API server running at http://localhost:%s/api", cfg.AppPort)
	log.Fatal(router.Run(":" + cfg.AppPort))
}
