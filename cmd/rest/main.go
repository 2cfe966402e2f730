package main

import (
	"context"
	"log"

	"github.com/Peterleoo/Livora/internal/bootstrap"
	"github.com/Peterleoo/Livora/internal/config"
	"github.com/Peterleoo/Livora/internal/server"
	"github.com/Peterleoo/Livora/internal/tracer"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)

	// 3. Start Background Services
	go func() {
		log.Println("Background: Starting Signing Consumer...")
		if err := container.SigningConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 4. Initialize Server
	srv := server.New(cfg, container)

	// 5. Run Server
	log.Fatal(srv.Run())
}
