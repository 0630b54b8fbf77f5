package kafka

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
)

// Message is one record to publish. Headers are written in key order.
type Message struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// Producer publishes to any number of topics. Writers are created on first
// use from a shared template and live until Close.
type Producer struct {
	template kafkago.Writer

	mu      sync.Mutex
	writers map[string]*kafkago.Writer
}

// NewProducer validates the security settings and prepares the writer
// template. No connection is made until the first Publish.
func NewProducer(cfg Config) (*Producer, error) {
	tmpl := kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Balancer:     &kafkago.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: cfg.WriteTimeout,
		RequiredAcks: kafkago.RequireAll,
	}

	if cfg.TLS || cfg.SASLEnabled {
		transport := &kafkago.Transport{}
		if cfg.TLS {
			transport.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		if cfg.SASLEnabled {
			mechanism, err := saslMechanism(cfg)
			if err != nil {
				return nil, err
			}
			transport.SASL = mechanism
		}
		tmpl.Transport = transport
	}

	return &Producer{template: tmpl, writers: make(map[string]*kafkago.Writer)}, nil
}

func saslMechanism(cfg Config) (sasl.Mechanism, error) {
	var algo scram.Algorithm
	switch cfg.SASLMechanism {
	case "", "PLAIN":
		return plain.Mechanism{Username: cfg.SASLUsername, Password: cfg.SASLPassword}, nil
	case "SCRAM-SHA-256":
		algo = scram.SHA256
	case "SCRAM-SHA-512":
		algo = scram.SHA512
	default:
		return nil, fmt.Errorf("kafka: unsupported SASL mechanism %q", cfg.SASLMechanism)
	}
	m, err := scram.Mechanism(algo, cfg.SASLUsername, cfg.SASLPassword)
	if err != nil {
		return nil, fmt.Errorf("kafka: %s: %w", cfg.SASLMechanism, err)
	}
	return m, nil
}

// Publish writes messages to topic in one batch.
func (p *Producer) Publish(ctx context.Context, topic string, messages ...Message) error {
	if len(messages) == 0 {
		return nil
	}
	records := make([]kafkago.Message, len(messages))
	for i, msg := range messages {
		records[i] = msg.record()
	}
	if err := p.writer(topic).WriteMessages(ctx, records...); err != nil {
		return fmt.Errorf("kafka publish to %s: %w", topic, err)
	}
	return nil
}

func (m Message) record() kafkago.Message {
	rec := kafkago.Message{Key: m.Key, Value: m.Value}
	if len(m.Headers) == 0 {
		return rec
	}
	keys := make([]string, 0, len(m.Headers))
	for k := range m.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rec.Headers = make([]kafkago.Header, len(keys))
	for i, k := range keys {
		rec.Headers[i] = kafkago.Header{Key: k, Value: []byte(m.Headers[k])}
	}
	return rec
}

// Close flushes and closes every writer.
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for topic, w := range p.writers {
		if err := w.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close writer %s: %w", topic, err))
		}
	}
	clear(p.writers)
	return errors.Join(errs...)
}

func (p *Producer) writer(topic string) *kafkago.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w, ok := p.writers[topic]; ok {
		return w
	}
	w := &kafkago.Writer{
		Addr:         p.template.Addr,
		Topic:        topic,
		Balancer:     p.template.Balancer,
		BatchTimeout: p.template.BatchTimeout,
		WriteTimeout: p.template.WriteTimeout,
		RequiredAcks: p.template.RequiredAcks,
		Transport:    p.template.Transport,
	}
	p.writers[topic] = w
	return w
}
