package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-sphere-tracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	flag.Parse()

	// Create and start web server
	webServer := server.NewServer(*port)

	log.Printf("Sphere Tracer Web Server")
	log.Printf("Try http://localhost:%d/api/render?scene=default&width=200 for a P3 render", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		webServer.Close()
		os.Exit(1)
	}
}
