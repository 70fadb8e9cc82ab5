// Package main implements ateneactl, a small command-line client for the
// atenea server. It sends a query to POST /query and prints the spoken
// response, which makes it handy for trying prompts without an Alexa device
// in the loop.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type queryRequest struct {
	Query     string  `json:"query"`
	Timeout   float64 `json:"timeout,omitempty"`
	SessionID string  `json:"session_id,omitempty"`
}

type queryResponse struct {
	Response string `json:"response"`
	Status   string `json:"status"`
}

func main() {
	// Best effort; the address flag has a usable default without it.
	_ = godotenv.Load()

	defaultAddr := os.Getenv("ATENEA_ADDR")
	if defaultAddr == "" {
		defaultAddr = "http://localhost:8080"
	}

	addr := flag.String("addr", defaultAddr, "server address")
	timeout := flag.Float64("timeout", 0, "deadline in seconds (0 uses the server default)")
	session := flag.String("session", "", "session ID for conversation memory")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: ateneactl [flags] <query>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	query := strings.Join(flag.Args(), " ")

	resp, err := sendQuery(*addr, queryRequest{
		Query:     query,
		Timeout:   *timeout,
		SessionID: *session,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error communicating with server: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(resp.Response)
	if resp.Status == "processing" {
		fmt.Fprintln(os.Stderr, "(still processing; ask \"¿qué pasó?\" in a few seconds)")
	}
}

func sendQuery(addr string, req queryRequest) (*queryResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	// The server answers within the query deadline; the extra headroom
	// covers transport overhead.
	clientTimeout := 30 * time.Second
	if req.Timeout > 0 {
		clientTimeout = time.Duration((req.Timeout+5)*float64(time.Second))
	}
	client := &http.Client{Timeout: clientTimeout}

	resp, err := client.Post(addr+"/query", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %s", resp.Status)
	}

	var qr queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &qr, nil
}
