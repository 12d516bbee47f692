package workers

import (
	"context"
	"errors"

	"github.com/avoronin/go-task-keeper/internal/logger"
	"golang.org/x/crypto/bcrypt"
)

// ErrPoolClosed is returned when work is submitted to a stopped pool.
var ErrPoolClosed = errors.New("hash pool is closed")

// hashJob is a single unit of bcrypt work. compareWith is nil for hashing
// jobs and holds the stored hash for comparison jobs.
type hashJob struct {
	password    []byte
	compareWith []byte
	result      chan hashResult
}

type hashResult struct {
	hash []byte
	err  error
}

// HashPool runs bcrypt hashing and comparison on a fixed set of dedicated
// goroutines. Bcrypt with a production cost factor burns tens to hundreds of
// milliseconds of CPU per call; running it inline on request goroutines
// would let a burst of registrations starve every other request. The pool
// caps concurrent bcrypt work, and callers waiting on a result honour their
// context deadline independently of the job itself.
//
// HashPool implements [Worker]; Run starts the workers and returns.
type HashPool struct {
	cost        int
	workerCount int
	jobs        chan hashJob
	done        chan struct{}
	logger      *logger.Logger
}

// NewHashPool constructs a pool with the given bcrypt cost, worker count,
// and job queue capacity.
func NewHashPool(cost, workerCount, queueSize int, logger *logger.Logger) *HashPool {
	return &HashPool{
		cost:        cost,
		workerCount: workerCount,
		jobs:        make(chan hashJob, queueSize),
		done:        make(chan struct{}),
		logger:      logger,
	}
}

// Run starts the worker goroutines. It implements [Worker] and returns
// immediately.
func (p *HashPool) Run() {
	p.logger.Debug().Int("workers", p.workerCount).Msg("starting hash pool")
	for i := 0; i < p.workerCount; i++ {
		go p.work()
	}
}

// Stop shuts the pool down. Submissions after Stop fail with [ErrPoolClosed];
// jobs already picked up by a worker run to completion.
func (p *HashPool) Stop() {
	close(p.done)
}

func (p *HashPool) work() {
	for {
		select {
		case <-p.done:
			return
		case job := <-p.jobs:
			job.result <- p.execute(job)
		}
	}
}

func (p *HashPool) execute(job hashJob) hashResult {
	if job.compareWith != nil {
		return hashResult{err: bcrypt.CompareHashAndPassword(job.compareWith, job.password)}
	}

	hash, err := bcrypt.GenerateFromPassword(job.password, p.cost)
	return hashResult{hash: hash, err: err}
}

// Hash computes the bcrypt hash of password on a pool worker. It blocks
// until a worker delivers the result, ctx is done, or the pool is stopped.
func (p *HashPool) Hash(ctx context.Context, password string) (string, error) {
	result, err := p.submit(ctx, hashJob{password: []byte(password)})
	if err != nil {
		return "", err
	}
	return string(result.hash), nil
}

// Compare checks password against the stored bcrypt hash on a pool worker.
// A mismatch is reported as [bcrypt.ErrMismatchedHashAndPassword].
func (p *HashPool) Compare(ctx context.Context, hashed, password string) error {
	_, err := p.submit(ctx, hashJob{password: []byte(password), compareWith: []byte(hashed)})
	return err
}

func (p *HashPool) submit(ctx context.Context, job hashJob) (hashResult, error) {
	// buffered so a worker never blocks delivering a result the caller
	// stopped waiting for
	job.result = make(chan hashResult, 1)

	select {
	case p.jobs <- job:
	case <-ctx.Done():
		return hashResult{}, ctx.Err()
	case <-p.done:
		return hashResult{}, ErrPoolClosed
	}

	select {
	case result := <-job.result:
		return result, result.err
	case <-ctx.Done():
		return hashResult{}, ctx.Err()
	case <-p.done:
		return hashResult{}, ErrPoolClosed
	}
}
