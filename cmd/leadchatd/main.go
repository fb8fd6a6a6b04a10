package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/creastat/leadchat/chat"
	"github.com/creastat/leadchat/gemini"
	"github.com/creastat/leadchat/session"
	"github.com/creastat/leadchat/supabase"
	"github.com/creastat/leadchat/vectorstore/qdrant"
)

func main() {
	// Local development convenience; in production everything comes from
	// real environment variables.
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	store, err := newSessionStore()
	if err != nil {
		logger.Fatal("failed to create session store", zap.Error(err))
	}
	defer store.Close()

	ai, err := gemini.New(ctx, gemini.Config{
		APIKey: os.Getenv("GEMINI_API_KEY"),
		Model:  os.Getenv("GEMINI_MODEL"),
	})
	if err != nil {
		logger.Fatal("failed to create gemini client", zap.Error(err))
	}

	opts := []chat.Option{chat.WithLogger(logger)}

	if url := os.Getenv("SUPABASE_URL"); url != "" {
		sink, err := supabase.New(supabase.Config{
			URL:    url,
			APIKey: os.Getenv("SUPABASE_SERVICE_KEY"),
		})
		if err != nil {
			logger.Fatal("failed to create supabase sink", zap.Error(err))
		}
		defer sink.Close()
		opts = append(opts, chat.WithSink(sink))
	} else {
		logger.Warn("SUPABASE_URL not set, conversation logging disabled")
	}

	if url := os.Getenv("QDRANT_URL"); url != "" {
		leads, err := qdrant.New(qdrant.Config{
			URL:            url,
			APIKey:         os.Getenv("QDRANT_API_KEY"),
			CollectionName: envOr("QDRANT_COLLECTION", "leads"),
		})
		if err != nil {
			logger.Fatal("failed to create qdrant client", zap.Error(err))
		}
		defer leads.Close()

		embedder, err := gemini.NewEmbedder(ctx, gemini.EmbedderConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
		})
		if err != nil {
			logger.Fatal("failed to create embedder", zap.Error(err))
		}
		opts = append(opts, chat.WithLeadIndex(embedder, leads))
	}

	service := chat.NewService(store, ai, opts...)

	addr := envOr("LISTEN_ADDR", ":8080")
	logger.Info("leadchatd listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, newRouter(service, logger)); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

// newSessionStore picks the Redis driver when REDIS_ADDR is set, otherwise
// the in-memory driver.
func newSessionStore() (session.Store, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return session.NewStore(session.StoreTypeMemory)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	return session.NewStore(session.StoreTypeRedis, session.WithRedisClient(client))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
