package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/ytinsight/insight-client/internal/app"
	"github.com/ytinsight/insight-client/internal/config"
	"github.com/ytinsight/insight-client/internal/storage"
)

func main() {
	fmt.Println("🔍 Insight Client - Backend Connectivity Check")
	fmt.Println("==============================================")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	fmt.Printf("Backend: %s\n", cfg.APIBaseURL)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Throwaway state so the check never touches the real session
	insight := app.New(cfg, storage.NewMemoryStorage(), nil)
	defer insight.Close()
	if err := insight.Start(ctx); err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	fmt.Println("\n📡 Checking endpoints...")
	fmt.Println(strings.Repeat("-", 40))

	if cfg.Email == "" || cfg.Password == "" {
		fmt.Println("⚠️  INSIGHT_EMAIL / INSIGHT_PASSWORD not set, only anonymous checks run")
		check("Login rejects bad credentials", func() error {
			_, err := insight.Auth.Login(ctx, "connectivity-check@example.invalid", "invalid-password")
			if err == nil {
				return fmt.Errorf("backend accepted invalid credentials")
			}
			return nil
		})
		return
	}

	check("Login", func() error {
		_, err := insight.Session.Login(ctx, cfg.Email, cfg.Password)
		return err
	})
	check("Current user", func() error {
		_, err := insight.Auth.Me(ctx)
		return err
	})
	check("Profile", func() error {
		_, err := insight.User.Profile(ctx)
		return err
	})
	check("Dashboard metrics", func() error {
		_, err := insight.Dashboard.Metrics(ctx, "")
		return err
	})
	check("Dashboard trends", func() error {
		_, err := insight.Dashboard.Trends(ctx, "", time.Time{}, time.Time{})
		return err
	})
	check("Community keywords", func() error {
		_, err := insight.Community.Keywords(ctx, "", 5)
		return err
	})

	fmt.Println("\n✅ Connectivity check completed!")
}

func check(name string, fn func() error) {
	fmt.Printf("🔸 %s... ", name)
	start := time.Now()
	if err := fn(); err != nil {
		fmt.Printf("❌ ERROR: %v\n", err)
		return
	}
	fmt.Printf("✅ OK (%v)\n", time.Since(start).Round(time.Millisecond))
}
