// Package maturity закрывает ajita схемы, у которых наступила дата окончания: активные участники таких схем
// переводятся в статус completed.
package maturity

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fsdevblog/adashi/internal/domain"
	"github.com/fsdevblog/adashi/internal/logger"
	"github.com/sirupsen/logrus"
)

const (
	defaultServiceTimeout         = 3 * time.Second
	defaultInterval               = time.Minute
	defaultLimitPerIteration uint = 100
	defaultWorkers           uint = 5
)

// Processor периодически ищет созревшие схемы и закрывает их.
type Processor struct {
	svs               Servicer
	l                 *logrus.Entry
	interval          time.Duration
	limitPerIteration uint
	workers           uint
}

func New(svs Servicer, l *logrus.Logger) *Processor {
	loggerEntry := logger.Component(l, "maturity").WithField("module", "processor")

	return &Processor{
		svs:               svs,
		l:                 loggerEntry,
		interval:          defaultInterval,
		limitPerIteration: defaultLimitPerIteration,
		workers:           defaultWorkers,
	}
}

// SetInterval устанавливает паузу между итерациями, если схем для обработки меньше лимита.
func (p *Processor) SetInterval(interval time.Duration) *Processor {
	if interval > 0 {
		p.interval = interval
	}
	return p
}

// SetLimitPerIteration устанавливает кол-во схем, обрабатываемых в одной итерации.
func (p *Processor) SetLimitPerIteration(limit uint) *Processor {
	p.limitPerIteration = limit
	return p
}

// SetWorkers устанавливает кол-во воркеров, закрывающих схемы параллельно.
func (p *Processor) SetWorkers(workers uint) *Processor {
	p.workers = max(workers, 1)
	return p
}

// Run запускает обработку до отмены контекста.
//
// Алгоритм работы:
//  1. Запрашивает через сервисный слой созревшие схемы, не больше SetLimitPerIteration за раз.
//  2. Раздает их N воркерам (SetWorkers), каждый закрывает свою схему отдельным вызовом сервиса.
//  3. Если схем было меньше лимита или произошла ошибка, ждет SetInterval перед следующей итерацией.
func (p *Processor) Run(ctx context.Context) {
	p.l.WithFields(logrus.Fields{
		"interval":          p.interval,
		"limitPerIteration": p.limitPerIteration,
		"workers":           p.workers,
	}).Info("Starting")

	for {
		n, err := p.process(ctx)
		if err != nil && !errors.Is(err, ErrNoSchemes) {
			p.l.WithError(err).Error("process error")
		}

		if err == nil && uint(n) >= p.limitPerIteration { //nolint:gosec
			if ctx.Err() != nil {
				p.l.Info("Got stop signal, exiting...")
				return
			}
			continue
		}

		select {
		case <-ctx.Done():
			p.l.Info("Got stop signal, exiting...")
			return
		case <-time.After(p.interval):
		}
	}
}

// process выполняет одну итерацию. Возвращает кол-во полученных схем или ErrNoSchemes.
func (p *Processor) process(ctx context.Context) (int, error) {
	schemes, err := p.produce(ctx)
	if err != nil {
		return 0, fmt.Errorf("process: %w", err)
	}

	results := p.runWorkers(ctx, schemes)

	var failed int
	for _, result := range results {
		l := p.l.WithFields(logrus.Fields{
			"worker":   result.WorkerID,
			"schemeID": result.Scheme.ID,
		})
		if result.Error != nil {
			failed++
			l.WithError(result.Error).Error("complete matured scheme")
			continue
		}
		l.WithField("completed", result.Completed).Info("Scheme matured")
	}

	if failed > 0 {
		return len(schemes), fmt.Errorf("process: %d of %d schemes failed", failed, len(schemes))
	}
	return len(schemes), nil
}

type workerResult struct {
	WorkerID  uint
	Scheme    *domain.Scheme
	Completed int64
	Error     error
}

// runWorkers fan-out/fan-in по схемам.
func (p *Processor) runWorkers(ctx context.Context, schemes []domain.Scheme) []workerResult {
	var taskCh = make(chan *domain.Scheme, len(schemes))
	for _, scheme := range schemes {
		scheme := scheme
		taskCh <- &scheme
	}
	close(taskCh)

	wg := new(sync.WaitGroup)
	wg.Add(int(p.workers)) //nolint:gosec

	var resultCh = make(chan workerResult, len(schemes))
	for i := uint(0); i < p.workers; i++ {
		go p.worker(ctx, wg, i+1, taskCh, resultCh)
	}
	wg.Wait()
	close(resultCh)

	var results = make([]workerResult, 0, len(schemes))
	for result := range resultCh {
		results = append(results, result)
	}
	return results
}

func (p *Processor) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	workerID uint,
	taskCh <-chan *domain.Scheme,
	resultCh chan<- workerResult,
) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-taskCh:
			if !ok {
				return
			}
			reqCtx, cancel := context.WithTimeout(ctx, defaultServiceTimeout)
			n, err := p.svs.CompleteMatured(reqCtx, task.ID)
			cancel()

			resultCh <- workerResult{WorkerID: workerID, Scheme: task, Completed: n, Error: err}
		}
	}
}

// produce получает схемы для закрытия. Возвращает ErrNoSchemes, если их нет.
func (p *Processor) produce(ctx context.Context) ([]domain.Scheme, error) {
	produceCtx, cancel := context.WithTimeout(ctx, defaultServiceTimeout)
	defer cancel()

	schemes, err := p.svs.MaturedSchemes(produceCtx, p.limitPerIteration)
	if err != nil {
		return nil, fmt.Errorf("produce: %w", err)
	}
	if len(schemes) == 0 {
		return nil, ErrNoSchemes
	}
	return schemes, nil
}
