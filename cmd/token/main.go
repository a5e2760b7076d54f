// Package main mints an access token for a user. The server has no login
// flow of its own; tokens are issued out of band with this tool.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/curatorapp/curator-server/internal/auth"
	"github.com/curatorapp/curator-server/internal/config"
)

func main() {
	userID := flag.String("user", "", "User ID to issue the token for (required)")
	displayName := flag.String("name", "", "Display name carried in the token")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "usage: token -user <id> [-name <display name>] [-- server flags]")
		os.Exit(2)
	}

	// Remaining arguments are server flags so the key and token lifetime
	// resolve exactly as they do for the server.
	cfg, err := config.Load(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	key, err := auth.LoadOrGenerateKey(cfg.Data.KeyPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "load token key: %v\n", err)
		os.Exit(1)
	}

	tokens, err := auth.NewTokenService(key, cfg.Auth.AccessTokenDuration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "token service: %v\n", err)
		os.Exit(1)
	}

	token, err := tokens.Issue(*userID, *displayName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "issue token: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "token for %s valid for %s\n", *userID, tokens.Duration())
	fmt.Println(token)
}
