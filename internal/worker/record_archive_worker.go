package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"askpilot/internal/model"
	"askpilot/internal/repository"
	"askpilot/pkg/log"
)

// RecordArchiveWorker drains the archive queue and persists QA records
// to MySQL. It is the only background goroutine in the process and runs
// only when archiving is enabled.
type RecordArchiveWorker struct {
	conn      *amqp.Connection
	repo      *repository.QARecordRepository
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewRecordArchiveWorker(conn *amqp.Connection, repo *repository.QARecordRepository, queueName string) *RecordArchiveWorker {
	return &RecordArchiveWorker{
		conn:      conn,
		repo:      repo,
		queueName: queueName,
	}
}

func (w *RecordArchiveWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	if _, err := ch.QueueDeclare(w.queueName, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(w.queueName, "", false, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume archive queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				var record model.QARecord
				if err := json.Unmarshal(d.Body, &record); err != nil {
					log.Warnf("archive worker decode record failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				if err := w.repo.Create(&record); err != nil {
					log.Warnf("archive worker persist record failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *RecordArchiveWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
