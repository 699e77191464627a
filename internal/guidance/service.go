package guidance

import (
	"context"
	"fmt"
	"io"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/llm"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/questionnaire"
)

// Config tunes the service.
type Config struct {
	// Debounce is the quiet period after the last edit before a request
	// is sent.
	Debounce time.Duration
	// Timeout bounds one provider call.
	Timeout   time.Duration
	MaxTokens int
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Debounce:  time.Second,
		Timeout:   60 * time.Second,
		MaxTokens: 2048,
	}
}

// Validate rejects settings that cannot work.
func (c Config) Validate() error {
	if c.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative, got %s", c.Debounce)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// Input is a snapshot of the form taken when the request is made.
type Input struct {
	Module   *questionnaire.Module
	Question *questionnaire.Question
	Answer   questionnaire.Answer
	All      questionnaire.Answers
	Lang     i18n.Lang
}

// Result is the outcome of one request. A nil Response clears the slot.
type Result struct {
	QuestionID string
	Response   *questionnaire.Response
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger for provider failures.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithAfterFunc replaces the timer source used for debouncing.
func WithAfterFunc(after AfterFunc) Option {
	return func(s *Service) { s.sched = NewScheduler(after) }
}

// Service debounces guidance requests and collects their results. Results
// are picked up with Drain; a request superseded by a newer one for the
// same question never surfaces.
type Service struct {
	provider llm.Provider
	cfg      Config
	sched    *Scheduler
	logger   *log.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	gen      map[string]uint64
	inflight map[string]uint64
	inbox    map[string]Result
	ready    chan struct{}
	closed   bool
}

// NewService returns a Service that calls provider.
func NewService(provider llm.Provider, cfg Config, opts ...Option) *Service {
	ctx, cancel := context.WithCancel(llm.WithPurpose(context.Background(), llm.PurposeGuidance))
	s := &Service{
		provider: provider,
		cfg:      cfg,
		logger:   log.New(io.Discard, "", 0),
		ctx:      ctx,
		cancel:   cancel,
		gen:      make(map[string]uint64),
		inflight: make(map[string]uint64),
		inbox:    make(map[string]Result),
		ready:    make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sched == nil {
		s.sched = NewScheduler(nil)
	}
	return s
}

// Request schedules guidance for in.Question after the debounce period and
// supersedes any earlier request for it. When the answer does not warrant
// a request, nothing is sent and a clearing Result is queued at once;
// Request then reports false.
func (s *Service) Request(in Input) bool {
	id := in.Question.ID

	s.mu.Lock()
	s.gen[id]++
	gen := s.gen[id]
	delete(s.inbox, id)
	s.mu.Unlock()

	if ShouldSkip(in.Question, in.Answer) {
		s.sched.Cancel(id)
		s.deliver(id, gen, nil)
		return false
	}

	prompt := BuildPrompt(in.Module, in.Question, in.Answer, in.All, in.Lang)
	lang := in.Lang
	s.sched.Schedule(id, s.cfg.Debounce, func() {
		s.run(id, gen, prompt, lang)
	})
	return true
}

func (s *Service) run(id string, gen uint64, prompt string, l i18n.Lang) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.inflight[id] = gen
	s.mu.Unlock()
	defer s.wg.Done()

	resp := s.generate(s.ctx, prompt, l)

	s.mu.Lock()
	if s.inflight[id] == gen {
		delete(s.inflight, id)
	}
	s.mu.Unlock()

	if s.ctx.Err() != nil {
		return
	}
	s.deliver(id, gen, resp)
}

func (s *Service) generate(ctx context.Context, prompt string, l i18n.Lang) *questionnaire.Response {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	out, err := s.provider.Generate(ctx, llm.Request{
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		MaxTokens: s.cfg.MaxTokens,
	})
	if err != nil {
		s.logger.Printf("guidance: generation failed: %v", err)
		return Failure(l)
	}
	resp := Parse(out.Text(), l)
	if resp.Failed() {
		s.logger.Printf("guidance: unparseable response: %q", out.Text())
	}
	return resp
}

// deliver stores the result unless a newer request for id was made since.
func (s *Service) deliver(id string, gen uint64, resp *questionnaire.Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen[id] != gen {
		return
	}
	s.inbox[id] = Result{QuestionID: id, Response: resp}
	select {
	case s.ready <- struct{}{}:
	default:
	}
}

// Draft generates guidance synchronously, without debouncing. It returns
// nil when the answer does not warrant a request.
func (s *Service) Draft(ctx context.Context, in Input) *questionnaire.Response {
	if ShouldSkip(in.Question, in.Answer) {
		return nil
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeGuidance)
	return s.generate(ctx, BuildPrompt(in.Module, in.Question, in.Answer, in.All, in.Lang), in.Lang)
}

// Drain returns and clears the collected results, ordered by question id.
func (s *Service) Drain() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.inbox) == 0 {
		return nil
	}
	out := make([]Result, 0, len(s.inbox))
	for _, r := range s.inbox {
		out = append(out, r)
	}
	clear(s.inbox)
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionID < out[j].QuestionID })
	return out
}

// Ready is signalled after a result has been queued.
func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

// Done is closed once the service is closed.
func (s *Service) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Busy reports whether a request for id is waiting or being generated.
func (s *Service) Busy(id string) bool {
	if s.sched.Pending(id) {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.inflight[id]
	return ok
}

// Close cancels pending and in-flight requests and waits for them to return.
func (s *Service) Close() {
	s.sched.Stop()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
	s.wg.Wait()
}
