// Package worker implements the render worker lifecycle and Redis Streams integration.
//
// The worker subscribes to Redis Streams for render requests, renders them
// through the template engine, and publishes the produced text back to the
// requesting service.
//
// Example usage:
//
//	cfg, _ := config.Load()
//	redisClient := redis.NewClient(&redis.Options{...})
//	eng := engine.New(logger)
//	eng.RegisterExtraHelpers()
//
//	worker := worker.NewWorker(cfg, redisClient, eng, logger)
//	if err := worker.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer worker.Stop()
//
// The worker handles:
//   - Redis Streams subscription and consumer group management
//   - Render request processing (registered templates and inline sources)
//   - Render result publishing
//   - Error handling and reporting
//   - Graceful shutdown
//
// Health checks are provided via a separate HTTP server:
//
//	healthServer := worker.NewHealthServer(8082, redisClient, eng, logger)
//	healthServer.Start()
//	defer healthServer.Stop()
package worker
