package main

import (
	"log"
	"net/http"

	"github.com/louordway/ohhell"
	"github.com/louordway/ohhell/server"
)

func main() {
	cfg, err := server.NewConfig()
	if err != nil {
		log.Fatal(err.Error())
	}

	s := server.NewServer(ohhell.NewInMemoryGameStore(), cfg)

	log.Printf("Listening on %s...", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, s))
}
