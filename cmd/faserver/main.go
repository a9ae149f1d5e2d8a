/*
Faserver runs the HTTP conversion API: submit an automaton description
in the bespoke tagged format and read back its DOT rendering and
synthesized regular expression.

Usage:

	faserver [flags]

The flags are:

	-c, --config FILE
		Path to a TOML configuration file. If not given, built-in
		defaults are used.

	-t, --token
		Print a freshly-issued bearer token for the configured secret
		and exit, instead of starting the server.
*/
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/rstenholt/finautom/internal/apiserver"
	"github.com/rstenholt/finautom/internal/config"
	"github.com/rstenholt/finautom/internal/history"
	"github.com/spf13/pflag"
)

var (
	flagConfig     *string = pflag.StringP("config", "c", "", "Path to a TOML configuration file")
	flagIssueToken *bool   = pflag.BoolP("token", "t", false, "Print a bearer token for the configured secret and exit")
)

func main() {
	pflag.Parse()

	cfg := config.Config{}.FillDefaults()
	if *flagConfig != "" {
		loaded, err := config.Load(*flagConfig)
		if err != nil {
			log.Fatalf("load config: %s", err.Error())
		}
		cfg = loaded.FillDefaults()
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %s", err.Error())
	}

	secret := []byte(cfg.HTTP.TokenSecret)
	if len(secret) == 0 {
		secret = []byte("dev-only-insecure-secret-do-not-use-in-prod")
	}

	if *flagIssueToken {
		tok, err := apiserver.IssueToken(secret, 24*time.Hour)
		if err != nil {
			log.Fatalf("issue token: %s", err.Error())
		}
		fmt.Println(tok)
		return
	}

	store, err := history.Open(cfg.HTTP.HistoryPath)
	if err != nil {
		log.Fatalf("open history store: %s", err.Error())
	}
	defer store.Close()

	api := &apiserver.API{
		History:     store,
		Secret:      secret,
		UnauthDelay: cfg.HTTP.UnauthDelay(),
		MacroConfig: cfg.MacroState.AsAutomatonConfig(),
	}

	log.Printf("faserver listening on %s", cfg.HTTP.ListenAddress)
	if err := http.ListenAndServe(cfg.HTTP.ListenAddress, api.Routes()); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		os.Exit(1)
	}
}
