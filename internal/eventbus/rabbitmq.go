package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"
)

const reconnectDelay = 5 * time.Second

// RabbitMQPublisher publishes events as JSON to a topic exchange, routed by
// event type. A background loop restores the connection; events published
// while it is down are dropped.
type RabbitMQPublisher struct {
	url      string
	exchange string

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	ready   bool

	done      chan struct{}
	closeOnce sync.Once
}

// NewRabbitMQPublisher dials the broker, declares the exchange and starts the
// reconnect loop.
func NewRabbitMQPublisher(url, exchange string) (*RabbitMQPublisher, error) {
	p := &RabbitMQPublisher{url: url, exchange: exchange, done: make(chan struct{})}
	connClosed, chanClosed, err := p.connect()
	if err != nil {
		return nil, err
	}
	go p.handleReconnect(connClosed, chanClosed)
	return p, nil
}

// connect dials outside the lock so Publish never waits on the network.
func (p *RabbitMQPublisher) connect() (chan *amqp.Error, chan *amqp.Error, error) {
	log.Info().Str("exchange", p.exchange).Msg("Attempting to connect to RabbitMQ")
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to dial RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("failed to declare exchange %s: %w", p.exchange, err)
	}

	connClosed := conn.NotifyClose(make(chan *amqp.Error, 1))
	chanClosed := ch.NotifyClose(make(chan *amqp.Error, 1))

	p.mu.Lock()
	p.conn = conn
	p.channel = ch
	p.ready = true
	p.mu.Unlock()

	log.Info().Str("exchange", p.exchange).Msg("RabbitMQ connected")
	return connClosed, chanClosed, nil
}

func (p *RabbitMQPublisher) handleReconnect(connClosed, chanClosed chan *amqp.Error) {
	for {
		select {
		case <-p.done:
			return
		case err := <-connClosed:
			log.Warn().Interface("reason", err).Msg("RabbitMQ connection closed")
		case err := <-chanClosed:
			log.Warn().Interface("reason", err).Msg("RabbitMQ channel closed")
		}

		p.markDown()
		for {
			select {
			case <-p.done:
				return
			case <-time.After(reconnectDelay):
			}
			var err error
			if connClosed, chanClosed, err = p.connect(); err == nil {
				break
			}
			log.Error().Err(err).Msg("RabbitMQ reconnect failed")
		}
	}
}

// markDown stops publishing and releases whatever is left of the old connection.
func (p *RabbitMQPublisher) markDown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ready = false
	if p.channel != nil {
		p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
	}
}

func (p *RabbitMQPublisher) Publish(_ context.Context, ev Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready || p.channel == nil {
		log.Warn().Str("type", ev.Type).Msg("eventbus: RabbitMQ not connected, event dropped")
		return
	}

	body, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("type", ev.Type).Msg("eventbus: failed to marshal event")
		return
	}

	err = p.channel.Publish(p.exchange, ev.Type, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    ev.At,
		Body:         body,
	})
	if err != nil {
		log.Error().Err(err).Str("type", ev.Type).Msg("eventbus: publish failed")
	}
}

// Close stops the reconnect loop and closes the connection.
func (p *RabbitMQPublisher) Close() error {
	p.closeOnce.Do(func() {
		if p.done != nil {
			close(p.done)
		}
	})
	p.markDown()
	return nil
}
