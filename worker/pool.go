// Package worker runs the tasks of one generation in parallel and joins them.
//
// A generation is a set of partitions that write disjoint raster cells, so the tasks of a
// generation need no synchronization between them. Fork returns only after every task it
// started has returned, which is the barrier between generations.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"golang.org/x/sync/errgroup"

	"ParallelMandelbrot/misc"
	"ParallelMandelbrot/task"
)

type Pool struct {
	heartbeat   time.Duration
	logger      bslogger.Logger
	name        string
	workers     int
	generations atomic.Int64
}

// NewPool creates a pool running at most workers tasks at once. If workers is 0 or negative,
// GOMAXPROCS is used.
func NewPool(name string, workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{
		logger:  misc.NewLogger(name, nil),
		name:    name,
		workers: workers,
	}
}

func (p *Pool) Workers() int {
	return p.workers
}

// Generations returns how many generations the pool has joined.
func (p *Pool) Generations() int64 {
	return p.generations.Load()
}

// SetHeartbeat makes Fork log its progress every interval. Zero disables it.
func (p *Pool) SetHeartbeat(interval time.Duration) {
	p.heartbeat = interval
}

// Fork runs fn once per partition and waits for all of them. Tasks are not interrupted once
// started; the first task error is returned after the join. If ctx is done before every task
// has been started, no further tasks are started and the context error is returned.
func (p *Pool) Fork(ctx context.Context, partitions []task.Partition, fn func(partition task.Partition) error) error {
	if len(partitions) == 0 {
		return nil
	}

	var completed atomic.Int64
	startTime := time.Now()

	stop := make(chan struct{})
	var tickers sync.WaitGroup
	if p.heartbeat > 0 {
		tickers.Add(1)
		go func() {
			defer tickers.Done()
			p.tickers(stop, &completed, len(partitions))
		}()
	}

	var g errgroup.Group
	g.SetLimit(p.workers)

	var forkErr error
	for _, partition := range partitions {
		if err := ctx.Err(); err != nil {
			forkErr = err
			break
		}
		partition := partition
		g.Go(func() error {
			defer completed.Add(1)
			if err := fn(partition); err != nil {
				return fmt.Errorf("%s task %d/%d: %w", partition.Generation, partition.Number, partition.Size, err)
			}
			return nil
		})
	}

	err := g.Wait()
	close(stop)
	tickers.Wait()
	p.generations.Add(1)

	p.logger.Debugf("Joined %d/%d tasks in %s", completed.Load(), len(partitions), time.Since(startTime))
	if err != nil {
		return err
	}
	return forkErr
}

func (p *Pool) tickers(stop <-chan struct{}, completed *atomic.Int64, total int) {
	heartBeat := time.NewTicker(p.heartbeat)
	defer heartBeat.Stop()

	for {
		select {
		case <-stop:
			return
		case <-heartBeat.C:
			p.logger.Infof("Tasks [Completed: %d/%d] [Workers: %d]", completed.Load(), total, p.workers)
		}
	}
}
