package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/zbonzo/warlock/internal/constants"
)

// Container healthcheck: probes the public catalog endpoint on the
// configured listen address.
func main() {
	addr := os.Getenv(constants.EnvAddress)
	if addr == "" {
		addr = ":8080"
	}
	if strings.HasPrefix(addr, ":") {
		addr = "127.0.0.1" + addr
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://%s%s%s", addr, constants.RouteAPIPrefix, constants.RouteCatalog))
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		os.Exit(1)
	}
	os.Exit(0)
}
