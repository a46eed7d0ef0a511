package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
	"go.uber.org/zap"

	"github.com/zoints/staking-ledger/consumer"
	"github.com/zoints/staking-ledger/internal/config"
	"github.com/zoints/staking-ledger/internal/observability/metrics"
)

const (
	CommandQueueName         = "staking-commands"
	DisbursementQueueName    = "staking-disbursements"
	UnbondingNoticeQueueName = "staking-unbonding-ready"
	ReceiptQueueName         = "staking-disbursement-receipts"

	// retried messages wait in <queue>-retry until their TTL expires and
	// are dead-lettered back to <queue>
	retryQueueSuffix = "-retry"

	attemptsHeader = "x-processing-attempts"
	contentType    = "application/json"
)

type QueueManager struct {
	cfg  *config.QueueConfig
	conn *amqp.Connection

	// publishing channel is in confirm mode and shared by all publishers
	publishMu sync.Mutex
	publishCh *amqp.Channel
	consumeCh *amqp.Channel
	receiptCh *amqp.Channel
}

func NewQueueManager(cfg *config.QueueConfig, logger *zap.Logger) (*QueueManager, error) {
	amqp.SetLogger(zap.NewStdLog(logger))

	conn, err := amqp.Dial(dialURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to queue: %w", err)
	}

	publishCh, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open publish channel: %w", err)
	}
	if err := publishCh.Confirm(false); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	consumeCh, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open consume channel: %w", err)
	}

	receiptCh, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open receipt channel: %w", err)
	}

	return &QueueManager{
		cfg:       cfg,
		conn:      conn,
		publishCh: publishCh,
		consumeCh: consumeCh,
		receiptCh: receiptCh,
	}, nil
}

func dialURL(cfg *config.QueueConfig) string {
	return fmt.Sprintf("amqp://%s:%s@%s", cfg.QueueUser, cfg.QueuePassword, cfg.Url)
}

// Start declares every queue the service publishes to or consumes from,
// and a delayed retry queue for each consumed one.
func (qm *QueueManager) Start() error {
	for _, name := range []string{CommandQueueName, DisbursementQueueName, UnbondingNoticeQueueName, ReceiptQueueName} {
		if err := qm.declare(name, amqp.Table{"x-queue-type": qm.cfg.QueueType}); err != nil {
			return err
		}
	}
	for _, name := range []string{CommandQueueName, ReceiptQueueName} {
		if err := qm.declare(RetryQueueName(name), retryQueueArgs(qm.cfg, name)); err != nil {
			return err
		}
	}
	return nil
}

func (qm *QueueManager) declare(name string, args amqp.Table) error {
	_, err := qm.consumeCh.QueueDeclare(
		name,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		args,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", name, err)
	}
	return nil
}

func RetryQueueName(queueName string) string {
	return queueName + retryQueueSuffix
}

// retryQueueArgs makes a queue hold each message for the requeue delay and
// then dead-letter it to target through the default exchange.
func retryQueueArgs(cfg *config.QueueConfig, target string) amqp.Table {
	return amqp.Table{
		"x-queue-type":              cfg.QueueType,
		"x-message-ttl":             cfg.ReQueueDelayTime.Milliseconds(),
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": target,
	}
}

func (qm *QueueManager) PushDisbursement(ctx context.Context, d *consumer.Disbursement) error {
	body, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal disbursement %s: %w", d.ID, err)
	}
	return qm.publish(ctx, DisbursementQueueName, d.ID, body, nil)
}

func (qm *QueueManager) PushUnbondingNotice(ctx context.Context, n *consumer.UnbondingNotice) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal unbonding notice: %w", err)
	}
	messageID := fmt.Sprintf("%s:%s:%d", n.Endpoint, n.Staker, n.ReadyTime)
	return qm.publish(ctx, UnbondingNoticeQueueName, messageID, body, nil)
}

// PushCommand enqueues a command for the settlement worker.
func (qm *QueueManager) PushCommand(ctx context.Context, msg *CommandMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal command %s: %w", msg.ID, err)
	}
	return qm.publish(ctx, CommandQueueName, msg.ID, body, nil)
}

func (qm *QueueManager) publish(ctx context.Context, queueName, messageID string, body []byte, headers amqp.Table) error {
	err := retry.Do(
		func() error {
			return qm.publishOnce(ctx, queueName, messageID, body, headers)
		},
		retry.Context(ctx),
		retry.Attempts(qm.cfg.PublishMaxRetryTimes),
		retry.Delay(qm.cfg.PublishRetryInterval),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Warn().
				Err(err).
				Uint("attempt", n+1).
				Str("queue", queueName).
				Msg("failed to publish message, retrying")
		}),
	)
	if err != nil {
		metrics.RecordQueueSendError()
		return fmt.Errorf("failed to publish message %s to %s: %w", messageID, queueName, err)
	}
	return nil
}

func (qm *QueueManager) publishOnce(ctx context.Context, queueName, messageID string, body []byte, headers amqp.Table) error {
	qm.publishMu.Lock()
	confirmation, err := qm.publishCh.PublishWithDeferredConfirmWithContext(
		ctx,
		"",        // default exchange routes by queue name
		queueName, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  contentType,
			DeliveryMode: amqp.Persistent,
			MessageId:    messageID,
			Timestamp:    time.Now(),
			Headers:      headers,
			Body:         body,
		},
	)
	qm.publishMu.Unlock()
	if err != nil {
		return err
	}

	acked, err := confirmation.WaitContext(ctx)
	if err != nil {
		return err
	}
	if !acked {
		return errors.New("message was not acknowledged by the broker")
	}
	return nil
}

// ReceiveCommands consumes the command queue one message at a time. The
// returned channel is closed when ctx is done or the broker closes the
// delivery stream.
func (qm *QueueManager) ReceiveCommands(ctx context.Context) (<-chan consumer.Delivery, error) {
	return qm.consume(ctx, qm.consumeCh, CommandQueueName)
}

// ReceiveReceipts consumes the transfer executor's disbursement receipts.
func (qm *QueueManager) ReceiveReceipts(ctx context.Context) (<-chan consumer.Delivery, error) {
	return qm.consume(ctx, qm.receiptCh, ReceiptQueueName)
}

func (qm *QueueManager) consume(ctx context.Context, ch *amqp.Channel, queueName string) (<-chan consumer.Delivery, error) {
	if err := ch.Qos(1, 0, false); err != nil {
		return nil, fmt.Errorf("failed to set prefetch: %w", err)
	}

	deliveries, err := ch.ConsumeWithContext(
		ctx,
		queueName,
		"",    // consumer tag is generated
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to consume %s: %w", queueName, err)
	}

	out := make(chan consumer.Delivery)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					log.Ctx(ctx).Warn().Str("queue", queueName).Msg("delivery stream closed")
					return
				}
				select {
				case out <- qm.toDelivery(ctx, d, queueName):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func (qm *QueueManager) toDelivery(ctx context.Context, d amqp.Delivery, queueName string) consumer.Delivery {
	attempts := processingAttempts(d.Headers)

	return consumer.Delivery{
		MessageID: d.MessageId,
		Body:      d.Body,
		Attempts:  attempts,
		Ack: func() error {
			return d.Ack(false)
		},
		Drop: func() error {
			log.Ctx(ctx).Error().
				Str("queue", queueName).
				Str("message_id", d.MessageId).
				Int32("attempts", attempts).
				Msg("dropping message")
			return d.Ack(false)
		},
		Retry: func() error {
			if !shouldRetry(attempts, qm.cfg.MsgMaxRetryAttempts) {
				log.Ctx(ctx).Error().
					Str("queue", queueName).
					Str("message_id", d.MessageId).
					Int32("attempts", attempts+1).
					Msg("message exceeded max retry attempts, dropping")
				return d.Ack(false)
			}

			headers := amqp.Table{attemptsHeader: attempts + 1}
			if err := qm.publish(ctx, RetryQueueName(queueName), d.MessageId, d.Body, headers); err != nil {
				// the broker redelivers the original
				return errors.Join(err, d.Nack(false, true))
			}
			return d.Ack(false)
		},
	}
}

func shouldRetry(attempts, maxAttempts int32) bool {
	return attempts+1 < maxAttempts
}

func processingAttempts(headers amqp.Table) int32 {
	switch v := headers[attemptsHeader].(type) {
	case int32:
		return v
	case int64:
		return int32(v)
	case int:
		return int32(v)
	default:
		return 0
	}
}

// Ping reports whether the broker connection is usable.
func (qm *QueueManager) Ping() error {
	if qm.conn.IsClosed() {
		return errors.New("queue connection is closed")
	}
	return nil
}

// Stop gracefully stops the interaction with the queue, ensuring all resources are properly released.
func (qm *QueueManager) Stop() error {
	log.Info().Msg("Shutting down queue manager")

	var errs []error
	if err := qm.consumeCh.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		errs = append(errs, err)
	}
	if err := qm.receiptCh.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		errs = append(errs, err)
	}
	if err := qm.publishCh.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		errs = append(errs, err)
	}
	if err := qm.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

var (
	_ consumer.DisbursementConsumer = (*QueueManager)(nil)
	_ consumer.CommandSource        = (*QueueManager)(nil)
)
