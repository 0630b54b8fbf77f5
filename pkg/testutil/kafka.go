package testutil

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/kafka"
)

const kafkaImage = "confluentinc/confluent-local:7.6.1"

// Kafka is a running single-broker cluster.
type Kafka struct {
	Brokers []string
}

// StartKafka runs a fresh Kafka container for t and creates topics with one
// partition each. The container is released by t.Cleanup.
func StartKafka(t *testing.T, topics ...string) *Kafka {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ctr, err := kafka.Run(ctx, kafkaImage, kafka.WithClusterID("leapneo-test"))
	if err != nil {
		t.Fatalf("start kafka: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			t.Logf("terminate kafka: %v", err)
		}
	})

	brokers, err := ctr.Brokers(ctx)
	if err != nil {
		t.Fatalf("kafka brokers: %v", err)
	}
	k := &Kafka{Brokers: brokers}
	if len(topics) > 0 {
		k.createTopics(ctx, t, topics)
	}
	return k
}

func (k *Kafka) createTopics(ctx context.Context, t *testing.T, topics []string) {
	t.Helper()

	conn, err := kafkago.DialContext(ctx, "tcp", k.Brokers[0])
	if err != nil {
		t.Fatalf("dial kafka: %v", err)
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		t.Fatalf("kafka controller: %v", err)
	}
	ctrl, err := kafkago.DialContext(ctx, "tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		t.Fatalf("dial kafka controller: %v", err)
	}
	defer ctrl.Close()

	configs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		configs[i] = kafkago.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1}
	}
	if err := ctrl.CreateTopics(configs...); err != nil {
		t.Fatalf("create topics %v: %v", topics, err)
	}
}

// ReadOne returns the next message on partition 0 of topic, starting from the
// oldest offset.
func (k *Kafka) ReadOne(t *testing.T, topic string) kafkago.Message {
	t.Helper()
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   k.Brokers,
		Topic:     topic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  1 << 20,
	})
	defer r.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	msg, err := r.ReadMessage(ctx)
	if err != nil {
		t.Fatalf("read %s: %v", topic, err)
	}
	return msg
}
