// Command tokengen mints admin JWTs for the operator routes.
//
//	tokengen -subject ops -ttl 24h
//
// Secret and issuer come from the same env the server reads, so a token
// minted here is accepted by a server sharing that env.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jobscout/agent/pkg/config"
	"github.com/jobscout/agent/pkg/security/jwt"
)

func main() {
	subject := flag.String("subject", "ops", "token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	admin := flag.Bool("admin", true, "set the admin claim")
	flag.Parse()

	cfg := config.Load()
	gen := jwt.NewGenerator(cfg.AdminJWTSecret, cfg.AdminJWTIssuer, *ttl)
	token, err := gen.Generate(*subject, *admin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tokengen: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
