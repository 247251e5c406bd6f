package status

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"cloud.google.com/go/pubsub"

	"CompanyBrief/internal/config"
	"CompanyBrief/internal/ports"
)

// PubSubNotifier publishes status events on a per-job Pub/Sub topic. The
// pipeline treats delivery as fire-and-forget; any error surfaced here is
// logged by the caller and never aborts a run.
type PubSubNotifier struct {
	client      *pubsub.Client
	topicPrefix string

	mu     sync.Mutex
	topics map[string]*pubsub.Topic
}

var _ ports.StatusNotifier = (*PubSubNotifier)(nil)

// NewPubSubNotifier connects to the configured project.
func NewPubSubNotifier(ctx context.Context, cfg config.StatusConfig) (*PubSubNotifier, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("status channel project id is not set")
	}

	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("create pubsub client: %w", err)
	}

	prefix := cfg.TopicPrefix
	if prefix == "" {
		prefix = "research-status"
	}

	return &PubSubNotifier{
		client:      client,
		topicPrefix: prefix,
		topics:      make(map[string]*pubsub.Topic),
	}, nil
}

type statusEvent struct {
	JobID     string         `json:"job_id"`
	Status    string         `json:"status"`
	Message   string         `json:"message"`
	Result    map[string]any `json:"result,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// SendStatusUpdate publishes one event on the job's topic. An empty job id is
// a silent skip per the status-channel contract.
func (n *PubSubNotifier) SendStatusUpdate(ctx context.Context, jobID, status, message string, result map[string]any) error {
	if jobID == "" {
		return nil
	}

	data, err := json.Marshal(statusEvent{
		JobID:     jobID,
		Status:    status,
		Message:   message,
		Result:    result,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal status event: %w", err)
	}

	topic, err := n.topic(ctx, jobID)
	if err != nil {
		return err
	}

	publishResult := topic.Publish(ctx, &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"job_id": jobID,
			"status": status,
		},
	})
	if _, err := publishResult.Get(ctx); err != nil {
		return fmt.Errorf("publish status event: %w", err)
	}

	return nil
}

// topic returns the cached per-job topic, creating it on first use.
func (n *PubSubNotifier) topic(ctx context.Context, jobID string) (*pubsub.Topic, error) {
	name := fmt.Sprintf("%s-%s", n.topicPrefix, jobID)

	n.mu.Lock()
	defer n.mu.Unlock()

	if topic, ok := n.topics[name]; ok {
		return topic, nil
	}

	topic := n.client.Topic(name)
	exists, err := topic.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("check topic existence: %w", err)
	}
	if !exists {
		topic, err = n.client.CreateTopic(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("create topic: %w", err)
		}
	}

	n.topics[name] = topic
	return topic, nil
}

// Close flushes pending publishes and releases the client.
func (n *PubSubNotifier) Close() error {
	n.mu.Lock()
	for _, topic := range n.topics {
		topic.Stop()
	}
	n.topics = map[string]*pubsub.Topic{}
	n.mu.Unlock()

	if err := n.client.Close(); err != nil {
		return fmt.Errorf("close pubsub client: %w", err)
	}
	return nil
}
