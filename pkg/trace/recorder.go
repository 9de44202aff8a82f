// Package trace records sandbox frames as JSON lines for offline comparison.
// Writes go through a circuit breaker so a failing sink sheds frames instead
// of stalling the frame loop.
package trace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"github.com/opd-ai/go-tether/pkg/config"
	"github.com/opd-ai/go-tether/pkg/logging"
)

// Options configures a Recorder
type Options struct {
	Buffer              int
	MaxRequests         uint32
	Interval            time.Duration
	Timeout             time.Duration
	MaxConsecutiveFails uint32
}

// OptionsFromEnv takes the recorder settings from the environment configuration
func OptionsFromEnv(env *config.EnvironmentConfig) Options {
	return Options{
		Buffer:              env.TraceBuffer,
		MaxRequests:         env.CircuitBreakerMaxRequests,
		Interval:            env.CircuitBreakerInterval,
		Timeout:             env.CircuitBreakerTimeout,
		MaxConsecutiveFails: env.CircuitBreakerMaxConsecutiveFails,
	}
}

// Recorder queues frames from the frame loop and writes them on its own goroutine
type Recorder struct {
	frames  chan Frame
	quit    chan struct{}
	once    sync.Once
	enc     *json.Encoder
	breaker *gobreaker.CircuitBreaker
	session string
	logger  *logging.Logger

	written atomic.Uint64
	dropped atomic.Uint64
}

// NewRecorder creates a recorder writing to w. Call Run to start writing.
func NewRecorder(w io.Writer, opts Options, logger *logging.Logger) *Recorder {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if opts.Buffer < 1 {
		opts.Buffer = 1
	}
	if opts.MaxConsecutiveFails < 1 {
		opts.MaxConsecutiveFails = 1
	}
	logger = logger.Component("trace")

	r := &Recorder{
		frames:  make(chan Frame, opts.Buffer),
		quit:    make(chan struct{}),
		enc:     json.NewEncoder(w),
		session: uuid.NewString(),
		logger:  logger,
	}

	r.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "trace-sink",
		MaxRequests: opts.MaxRequests,
		Interval:    opts.Interval,
		Timeout:     opts.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.MaxConsecutiveFails
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn(context.Background(), "circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return r
}

// Session returns the ID stamped on every frame of this recording
func (r *Recorder) Session() string {
	return r.session
}

// Record queues frame without blocking. Frames are dropped when the buffer is
// full or the recorder is closed.
func (r *Recorder) Record(frame Frame) {
	frame.Session = r.session
	frame.Seal()

	select {
	case <-r.quit:
		r.dropped.Add(1)
		return
	default:
	}

	select {
	case r.frames <- frame:
	default:
		r.dropped.Add(1)
	}
}

// Run writes queued frames until ctx is cancelled or Close is called, then
// flushes what is still buffered.
func (r *Recorder) Run(ctx context.Context) error {
	r.logger.Info(ctx, "trace recording started", "trace_id", r.session)
	defer func() {
		r.logger.Info(ctx, "trace recording finished",
			"trace_id", r.session,
			"written", r.written.Load(),
			"dropped", r.dropped.Load(),
		)
	}()

	for {
		select {
		case frame := <-r.frames:
			r.write(ctx, frame)
		case <-ctx.Done():
			r.flush(ctx)
			return nil
		case <-r.quit:
			r.flush(ctx)
			return nil
		}
	}
}

func (r *Recorder) flush(ctx context.Context) {
	for {
		select {
		case frame := <-r.frames:
			r.write(ctx, frame)
		default:
			return
		}
	}
}

func (r *Recorder) write(ctx context.Context, frame Frame) {
	_, err := r.breaker.Execute(func() (interface{}, error) {
		return nil, r.enc.Encode(frame)
	})
	switch {
	case err == nil:
		r.written.Add(1)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		r.dropped.Add(1)
	default:
		r.dropped.Add(1)
		r.logger.Error(ctx, "trace write failed", fmt.Errorf("frame %d: %w", frame.Tick, err))
	}
}

// Close stops accepting frames. Run returns after flushing the buffer.
func (r *Recorder) Close() {
	r.once.Do(func() { close(r.quit) })
}

// Stats returns the number of frames written and dropped so far
func (r *Recorder) Stats() (written, dropped uint64) {
	return r.written.Load(), r.dropped.Load()
}

// State returns the circuit breaker state
func (r *Recorder) State() gobreaker.State {
	return r.breaker.State()
}
