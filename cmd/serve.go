package cmd

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"rental-backend/config"
	"rental-backend/controllers"
	"rental-backend/events"
	"rental-backend/routes"
	"rental-backend/services"
	"rental-backend/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServer() error {
	if err := config.ConnectDatabase(); err != nil {
		return err
	}

	cache := storage.NewSearchCache(os.Getenv("MEMCACHED_HOST"))

	var publisher *events.Publisher
	if amqpURL := os.Getenv("AMQP_URL"); amqpURL != "" {
		pub, err := events.NewPublisher(amqpURL, os.Getenv("AMQP_QUEUE"))
		if err != nil {
			// The API works without the broker, downstream indexes
			// just go stale until it comes back.
			log.Printf("event publisher unavailable: %v", err)
		} else {
			publisher = pub
			defer publisher.Close()
		}
	}

	propertySvc := services.NewPropertyService(config.DB, cache, publisher)
	bookingSvc := services.NewBookingService(config.DB, publisher)

	router := routes.SetupRouter(
		controllers.NewPropertyController(propertySvc),
		controllers.NewBookingController(bookingSvc),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	log.Println("server stopped")
	return nil
}
