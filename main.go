package main

import (
	"fmt"
	"log"

	"github.com/shanmdahanayaka/vehicle-rental-backend/configs"
	"github.com/shanmdahanayaka/vehicle-rental-backend/middlewares"
	"github.com/shanmdahanayaka/vehicle-rental-backend/routes"
	"github.com/shanmdahanayaka/vehicle-rental-backend/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg.DBSource)
	db := configs.DB()

	// migrate
	configs.SetupDatabase()

	if err := configs.SeedAdmin(); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}
	if err := configs.SeedLookups(); err != nil {
		log.Fatalf("seed lookups failed: %v", err)
	}

	// refresh feed for staff UIs
	hub := ws.NewRefreshHub()
	go hub.Run()

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())

	// serve uploaded collection documents
	r.Static("/uploads", cfg.UploadDir)

	routes.RegisterRoutes(r, db, cfg, hub)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
