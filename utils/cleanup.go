package utils

import (
	"context"
	"log"
	"time"

	"github.com/vnkhanh/quizmaster-backend/services"
)

// CleanupSessions removes sessions that can no longer authenticate anyone.
func CleanupSessions(ctx context.Context, sessions *services.Sessions) {
	n, err := sessions.Purge(ctx)
	if err != nil {
		log.Printf("session cleanup failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("removed %d expired or revoked sessions", n)
	}
}

// StartCleanupJob runs CleanupSessions now and then every interval until ctx
// is cancelled.
func StartCleanupJob(ctx context.Context, sessions *services.Sessions, interval time.Duration) {
	CleanupSessions(ctx, sessions)

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				CleanupSessions(ctx, sessions)
			}
		}
	}()

	log.Printf("session cleanup job started (every %s)", interval)
}
