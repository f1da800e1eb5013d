package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/api"
)

func main() {
	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	email := loginCmd.String("email", "", "Email to probe login with")
	password := loginCmd.String("password", "", "Password to probe login with")

	if len(os.Args) < 2 {
		fmt.Println("expected 'check-api' or 'login' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "check-api":
		checkAPI()
	case "login":
		loginCmd.Parse(os.Args[2:])
		if *email == "" || *password == "" {
			fmt.Println("email and password are required")
			loginCmd.PrintDefaults()
			os.Exit(1)
		}
		probeLogin(*email, *password)
	default:
		fmt.Println("expected 'check-api' or 'login' subcommand")
		os.Exit(1)
	}
}

func newClient() *api.Client {
	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return api.NewClient(baseURL, 15*time.Second)
}

func checkAPI() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := newClient().Ping(ctx); err != nil {
		log.Fatalf("Platform API unreachable: %v", err)
	}
	fmt.Println("Platform API is up.")
}

func probeLogin(email, password string) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	result, err := newClient().Login(ctx, email, password)
	if err != nil {
		log.Fatalf("Login failed: %v", err)
	}

	fmt.Printf("Login OK. user id=%d role=%q\n", result.User.ID, result.User.Role)
}
