package main

import (
	"flag"
	"fmt"
	"os"

	"saassyadmin/internal/config"
	"saassyadmin/internal/migrations"
)

func main() {
	config.LoadDotEnvUp(8)

	var (
		direction = flag.String("direction", migrations.DirectionUp, "up|down")
		steps     = flag.Int("steps", 0, "number of steps (0 = all)")
	)
	flag.Parse()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(2)
	}

	if err := migrations.Run(dbURL, *direction, *steps); err != nil {
		fmt.Fprintln(os.Stderr, "migration error:", err)
		os.Exit(1)
	}
	fmt.Println("migrations:", *direction, "ok")
}
