package main

import (
	"log/slog"
	"net/http"
	"time"
)

const (
	finalizeInterval = 30 * time.Minute
	finalizeLockKey  = "challenges:finalize:lock"
)

// runChallengeFinalizer POSTs the external challenge-finalize endpoint every
// 30 minutes. A Redis SetNX lock with a TTL just under the interval makes sure
// only one instance fires per window.
func runChallengeFinalizer() {
	if cfg.ChallengesURL == "" {
		slog.Info("challenge finalizer disabled, CHALLENGES_URL not set")
		return
	}

	ticker := time.NewTicker(finalizeInterval)
	for range ticker.C {
		ok, err := rdb.SetNX(ctx, finalizeLockKey, "1", finalizeInterval-time.Minute).Result()
		if err != nil {
			slog.Error("failed to acquire finalize lock", "error", err)
			continue
		}
		if !ok {
			continue
		}
		finalizeChallenges()
	}
}

func finalizeChallenges() {
	req, err := http.NewRequest(http.MethodPost, cfg.ChallengesURL, nil)
	if err != nil {
		slog.Error("failed to build finalize request", "error", err)
		return
	}
	req.Header.Set("X-API-Key", cfg.ChallengesAPIKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		slog.Error("failed to finalize challenges", "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		slog.Error("finalize endpoint returned error", "status", resp.StatusCode)
		return
	}
	slog.Info("challenges finalized")
}
