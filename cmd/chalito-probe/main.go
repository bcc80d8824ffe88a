// Package main is a smoke probe for a running El Chalito backend.
//
// It logs in, verifies the session round-trips, pulls the article catalog and
// today's order counters, and prints the client's metrics. Configuration comes
// from flags, the environment, or a .env file:
//
//	CHALITO_API_URL  — backend base URL (default http://localhost:3000)
//	CHALITO_USER     — login username
//	CHALITO_PASS     — login password
//
// Run:
//
//	go run ./cmd/chalito-probe -remember
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	chalito "github.com/elchalito/chalito-go"
	"github.com/elchalito/chalito-go/metrics/export/prometheus"
)

func main() {
	var (
		baseURL  = flag.String("api-url", "", "backend base URL; if empty, CHALITO_API_URL or the default is used")
		username = flag.String("user", "", "login username; if empty, CHALITO_USER is used")
		password = flag.String("pass", "", "login password; if empty, CHALITO_PASS is used")
		remember = flag.Bool("remember", false, "request a refresh token alongside the access token")
		timeout  = flag.Duration("timeout", 30*time.Second, "overall probe deadline")
	)
	flag.Parse()

	// Missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	if *baseURL == "" {
		*baseURL = os.Getenv("CHALITO_API_URL")
	}
	if *username == "" {
		*username = os.Getenv("CHALITO_USER")
	}
	if *password == "" {
		*password = os.Getenv("CHALITO_PASS")
	}
	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "username and password are required (flags or CHALITO_USER/CHALITO_PASS)")
		os.Exit(2)
	}

	notifier := chalito.NewChannelNotifier(32)
	go func() {
		for notice := range notifier.Notices() {
			fmt.Printf("[%s] %s\n", notice.Level, notice.Message)
		}
	}()

	builder := chalito.New().
		WithNotifier(notifier).
		WithMetricsEnabled(true)
	if *baseURL != "" {
		builder = builder.WithBaseURL(*baseURL)
	}

	client, err := builder.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build client: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	restored, err := client.Verify(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "verify: %v\n", err)
		os.Exit(1)
	}
	if restored {
		fmt.Println("restored a stored session")
	} else {
		result, err := client.Login(ctx, chalito.LoginRequest{
			Username: *username,
			Password: *password,
			Remember: *remember,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "login: %v (attempts: %d)\n", err, client.LoginAttempts())
			os.Exit(1)
		}
		fmt.Printf("logged in as %s (%s)\n", result.User.Username, result.User.Rol)
	}

	articulos, err := client.Articulos(ctx, chalito.ArticuloFiltros{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "articulos: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("catalog: %d articles\n", len(articulos))

	contadores, err := client.Contadores(ctx, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "contadores: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("orders today: %d pendientes, %d en curso, %d listos, %d entregados, %d cancelados\n",
		contadores.Pendientes, contadores.EnCurso, contadores.Listos,
		contadores.Entregados, contadores.Cancelados)

	fmt.Println("---- metrics ----")
	fmt.Print(prometheus.NewPrometheusExporter(client).Render())
}
