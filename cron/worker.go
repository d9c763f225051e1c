package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"cargomatch/config"
	"cargomatch/models"
	"cargomatch/services/bid"

	"github.com/hibiken/asynq"
)

const TypeBidExpire = "bid:expire"

// ExpiryScheduler enqueues deferred bid-expiry tasks. It satisfies
// bid.ExpiryScheduler.
type ExpiryScheduler struct {
	client *asynq.Client
}

// NewExpiryScheduler creates the asynq client used to enqueue expiry tasks.
func NewExpiryScheduler() *ExpiryScheduler {
	return &ExpiryScheduler{
		client: asynq.NewClient(redisOpts()),
	}
}

// ScheduleExpiry enqueues a bid-expiry task processed at the deadline.
func (s *ExpiryScheduler) ScheduleExpiry(bidID string, at time.Time) error {
	payload, err := json.Marshal(models.BidExpiryPayload{BidID: bidID})
	if err != nil {
		return fmt.Errorf("failed to marshal expiry payload: %w", err)
	}
	task := asynq.NewTask(TypeBidExpire, payload)
	if _, err := s.client.Enqueue(task, asynq.ProcessAt(at)); err != nil {
		return fmt.Errorf("failed to enqueue expiry task: %w", err)
	}
	return nil
}

// InitExpiryWorker runs the async worker in background.
func InitExpiryWorker(bidSvc bid.BidService) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBidExpire, handleExpiryTask(bidSvc))

	// Start async worker with retry logic
	go func() {
		log.Println("[ExpiryWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ExpiryWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ExpiryWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleExpiryTask(bidSvc bid.BidService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.BidExpiryPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ExpiryHandler] Invalid payload: %v", err)
			return err
		}

		if err := bidSvc.ExpireBid(p.BidID); err != nil {
			log.Printf("[ExpiryHandler] Failed to expire bid %s: %v", p.BidID, err)
			return err
		}
		return nil
	}
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisExpiryQueue,
	}
}
