package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/shopcore/services/internal/notifications"
	"github.com/shopcore/services/pkg/idempotency"
	"github.com/shopcore/services/pkg/logging"
	"github.com/shopcore/services/pkg/shutdown"
)

func main() {
	_ = godotenv.Load()
	log := logging.New("notifications")

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	kafkaAddr := env("KAFKA_ADDR", "localhost:9092")
	redisAddr := env("REDIS_ADDR", "localhost:6379")
	topic := env("ORDER_EVENTS_TOPIC", "order.events")
	group := env("CONSUMER_GROUP", "notifications-worker")

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer rdb.Close()
	idem := idempotency.NewStore(rdb, 10*time.Minute)

	consumer := notifications.NewConsumer(log, []string{kafkaAddr}, topic, group, idem)

	go func() {
		if err := consumer.Run(ctx); err != nil {
			log.Error("consumer stopped", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("notifications worker shutdown")
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
