package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

type checkView struct {
	Name     string `json:"name"`
	Healthy  bool   `json:"healthy"`
	Detail   string `json:"detail"`
	TimedOut bool   `json:"timedOut"`
}

type decisionView struct {
	Status string      `json:"status"`
	Checks []checkView `json:"checks"`
}

func main() {
	api := os.Getenv("API_BASE")
	if api == "" {
		api = "http://localhost:8080"
	}

	client := &http.Client{Timeout: 10 * time.Second}
	exit := 0
	for _, path := range []string{"/healthz", "/readyz"} {
		if !report(client, api, path) {
			exit = 1
		}
	}
	os.Exit(exit)
}

func report(client *http.Client, api, path string) bool {
	resp, err := client.Get(api + path)
	if err != nil {
		fmt.Printf("%s: error contacting API: %v\n", path, err)
		return false
	}
	defer resp.Body.Close()

	var d decisionView
	if err := json.NewDecoder(resp.Body).Decode(&d); err != nil {
		fmt.Printf("%s: bad response: %v\n", path, err)
		return false
	}

	fmt.Printf("%s: %s (HTTP %d)\n", path, d.Status, resp.StatusCode)
	for _, c := range d.Checks {
		mark := "✔"
		if !c.Healthy {
			mark = "✖"
		}
		line := fmt.Sprintf("  %s %s", mark, c.Name)
		if c.Detail != "" {
			line += ": " + c.Detail
		}
		if c.TimedOut {
			line += " (timed out)"
		}
		fmt.Println(line)
	}
	return resp.StatusCode == http.StatusOK
}
