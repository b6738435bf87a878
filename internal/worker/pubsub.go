package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"github.com/rs/zerolog"
)

// Job type values accepted on the worker subscription.
const (
	JobTypePrewarm     = "route_prewarm"
	JobTypeHealthCheck = "health_check"
)

// PrewarmMessage is the payload for scheduled prewarm jobs.
type PrewarmMessage struct {
	JobType   string   `json:"job_type"`
	CourseIDs []string `json:"course_ids,omitempty"`
}

// PubSubConfig holds configuration for the Pub/Sub handler.
type PubSubConfig struct {
	ProjectID        string
	SubscriptionName string
	Prewarmer        *Prewarmer
	Logger           zerolog.Logger
}

// PubSubHandler consumes prewarm jobs from a Pub/Sub subscription. Cloud
// Scheduler publishes a route_prewarm message before the tourist day starts.
type PubSubHandler struct {
	client           *pubsub.Client
	subscriber       *pubsub.Subscriber
	subscriptionName string
	prewarmer        *Prewarmer
	logger           zerolog.Logger
}

// NewPubSubHandler creates a new Pub/Sub handler.
func NewPubSubHandler(ctx context.Context, cfg PubSubConfig) (*PubSubHandler, error) {
	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}

	subscriber := client.Subscriber(cfg.SubscriptionName)
	subscriber.ReceiveSettings.MaxOutstandingMessages = 2
	subscriber.ReceiveSettings.MaxExtension = 10 * time.Minute

	return &PubSubHandler{
		client:           client,
		subscriber:       subscriber,
		subscriptionName: cfg.SubscriptionName,
		prewarmer:        cfg.Prewarmer,
		logger:           cfg.Logger,
	}, nil
}

// Start begins processing Pub/Sub messages. It blocks until ctx is canceled.
func (h *PubSubHandler) Start(ctx context.Context) error {
	h.logger.Info().
		Str("subscription", h.subscriptionName).
		Msg("starting pubsub handler")

	return h.subscriber.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		h.handleMessage(ctx, msg)
	})
}

// Close closes the Pub/Sub client.
func (h *PubSubHandler) Close() error {
	return h.client.Close()
}

func (h *PubSubHandler) handleMessage(ctx context.Context, msg *pubsub.Message) {
	start := time.Now()

	logger := h.logger.With().
		Str("message_id", msg.ID).
		Logger()

	var prewarmMsg PrewarmMessage
	if err := json.Unmarshal(msg.Data, &prewarmMsg); err != nil {
		logger.Error().Err(err).Msg("failed to parse message")
		msg.Nack()
		return
	}

	var err error
	switch prewarmMsg.JobType {
	case JobTypePrewarm:
		err = h.handlePrewarm(ctx, prewarmMsg)
	case JobTypeHealthCheck:
		err = h.handleHealthCheck(ctx)
	default:
		logger.Warn().Str("job_type", prewarmMsg.JobType).Msg("unknown job type")
		msg.Ack() // prevent redelivery of unknown messages
		return
	}

	if err != nil {
		logger.Error().Err(err).Msg("job failed")
		msg.Nack()
		return
	}

	logger.Info().
		Str("job_type", prewarmMsg.JobType).
		Dur("duration", time.Since(start)).
		Msg("job completed")

	msg.Ack()
}

func (h *PubSubHandler) handlePrewarm(ctx context.Context, msg PrewarmMessage) error {
	result, err := h.prewarmer.Run(ctx, PrewarmConfig{CourseIDs: msg.CourseIDs})
	if err != nil {
		return err
	}

	// A run where nothing warmed means the provider is down; redeliver.
	if result.Requested > 0 && result.Warmed == 0 {
		return fmt.Errorf("no course warmed: %d failed", result.Failed)
	}
	return nil
}

func (h *PubSubHandler) handleHealthCheck(ctx context.Context) error {
	h.logger.Debug().Msg("running health check")

	// Warm a single course to verify catalog and provider connectivity.
	courses, err := h.prewarmer.catalog.ListCourses(ctx)
	if err != nil {
		return err
	}
	if len(courses) == 0 {
		return nil
	}

	result, err := h.prewarmer.Run(ctx, PrewarmConfig{
		CourseIDs:   []string{courses[0].ID},
		Concurrency: 1,
		Timeout:     10 * time.Second,
	})
	if err != nil {
		return err
	}
	if result.Failed > 0 {
		return fmt.Errorf("health check failed: provider degraded")
	}
	return nil
}
