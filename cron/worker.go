package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"estately/config"
	convRepo "estately/database/repository/conversation"
	"estately/models"
	ai "estately/services/intelligence"

	"github.com/hibiken/asynq"
)

const TypeTitleGenerate = "conversation:title"

// TitleClient enqueues title-generation tasks.
type TitleClient struct {
	client *asynq.Client
}

// NewTitleClient creates the asynq client for title tasks.
func NewTitleClient() *TitleClient {
	return &TitleClient{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisTaskQueueDB,
		}),
	}
}

// EnqueueTitle schedules title generation for a conversation's first message.
func (c *TitleClient) EnqueueTitle(conversationID, firstMessage string) error {
	payload, err := json.Marshal(models.TitlePayload{
		ConversationID: conversationID,
		FirstMessage:   firstMessage,
	})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeTitleGenerate, payload, asynq.MaxRetry(2))
	_, err = c.client.Enqueue(task)
	return err
}

// InitTitleWorker runs the async worker in background.
func InitTitleWorker(aiSvc ai.AIService, repo convRepo.ConversationRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeTitleGenerate, handleTitleTask(aiSvc, repo))

	go func() {
		log.Println("[TitleWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[TitleWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[TitleWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleTitleTask asks the model for a short title and persists it.
// Best effort: any failure is logged and the conversation keeps its
// placeholder title.
func handleTitleTask(aiSvc ai.AIService, repo convRepo.ConversationRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.TitlePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[TitleWorker] invalid payload: %v", err)
			return err
		}

		title, err := aiSvc.GenerateTitle(ctx, p.FirstMessage)
		if err != nil {
			log.Printf("[TitleWorker] title generation failed for %s: %v", p.ConversationID, err)
			return err
		}
		if title == "" {
			return nil
		}

		if err := repo.UpdateTitle(p.ConversationID, title); err != nil {
			log.Printf("[TitleWorker] failed to persist title for %s: %v", p.ConversationID, err)
			return err
		}
		return nil
	}
}
