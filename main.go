package main

import (
	"context"
	"log"
	"os"

	"github.com/example/task-management/config"
	"github.com/example/task-management/modules/api"
	"github.com/example/task-management/modules/cache"
	"github.com/example/task-management/modules/notification"
	"github.com/example/task-management/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

func main() {
	log.Println("=== Task Management Service ===")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration: %s", cfg.Description())

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	logger := app.Logger()

	taskModule := task.NewModule(cfg.Database, logger.WithModule("task"))
	notificationModule := notification.NewModule(logger.WithModule("notification"))
	apiModule := api.NewModule(cfg.HTTP, logger.WithModule("api"))

	apiModule.AddHealthCheck("task", taskModule)
	apiModule.AddHealthCheck("notification", notificationModule)

	modules := []mono.Module{
		notificationModule, // Event consumer (subscribes to task events)
		taskModule,         // Core domain (emits events)
		apiModule,          // Driving adapter (depends on task)
	}
	if cfg.Cache.Enabled {
		cacheModule := cache.NewModule(cache.Config{
			RedisAddr:     cfg.Cache.RedisAddr,
			RedisPassword: cfg.Cache.RedisPassword,
			RedisDB:       cfg.Cache.RedisDB,
			Prefix:        cfg.Cache.Prefix,
			TTL:           cfg.Cache.TTL,
		}, logger.WithModule("cache"))
		taskModule.SetCache(cacheModule.Cache())
		apiModule.AddHealthCheck("cache", cacheModule)
		modules = append([]mono.Module{cacheModule}, modules...)
	}

	// Order: independent modules first, then modules with dependencies
	for _, module := range modules {
		if err := app.Register(module); err != nil {
			log.Fatalf("Failed to register %s module: %v", module.Name(), err)
		}
	}

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg config.Config) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%d):", cfg.HTTP.Port)
	log.Println("  GET    /tasks      - List all tasks")
	log.Println("  POST   /tasks      - Create a task")
	log.Println("  GET    /tasks/:id  - Get a task by ID")
	log.Println("  PUT    /tasks/:id  - Update a task (merge-patch)")
	log.Println("  DELETE /tasks/:id  - Delete a task")
	log.Println("  GET    /health     - Health check")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
