package widget

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/nspcc-dev/eos-pingdemo/pkg/util"
	"go.uber.org/zap"
)

// Target is an immutable description of the ping call: which contract
// is called and on whose behalf.
type Target struct {
	// Contract account name, e.g. "ping.ctr".
	Contract string
	// Actor is an account executing the contract, also passed as ping receiver.
	Actor string
	// Authorization lists permission levels in "actor@permission" form.
	// Bare "actor" means "actor@active".
	Authorization []string
}

// Invoker sends the ping call to the remote chain.
//
// Ping returns nil only if the call has been accepted.
type Invoker interface {
	Ping(ctx context.Context, t Target) error
}

// Metrics is an interface of the widget's metric collector.
type Metrics interface {
	SetPingStatus(uint8)
	AddPingAttempt(success bool)
	IncSkippedPing()
}

// Prm groups the required parameters of the Widget's constructor.
type Prm struct {
	Target Target

	// Must not be nil.
	Invoker Invoker
}

// Widget is a four-state ping indicator.
//
// Widget is created Idle. Trigger moves it to Loading and sends exactly one
// call through the Invoker; its settlement moves Widget to Success or Failure.
// Every status change is delivered to subscribers in the order of changes.
//
// Working Widget must be created via constructor New.
type Widget struct {
	cfg *cfg

	target  Target
	invoker Invoker
	pool    util.WorkerPool

	mtx     sync.Mutex
	status  Status
	done    chan struct{} // closed when the in-flight ping settles, nil if none
	closed  bool
	lastSeq uint64 // sequence number of the last status change

	// changes are delivered in lastSeq order, delivered is the sequence
	// number of the last change passed to all subscribers
	notifyMtx  sync.Mutex
	notifyCond *sync.Cond
	delivered  uint64

	subMtx  sync.RWMutex
	subs    map[uint64]func(Status)
	lastSub uint64
}

var (
	errNilInvoker  = errors.New("widget: invoker was not provided to the constructor")
	errNoContract  = errors.New("widget: empty contract name")
	errNoActor     = errors.New("widget: empty actor name")
	errNoAuthority = errors.New("widget: empty authorization list")
)

// New creates Widget in Idle status. Target is copied, later changes of the
// passed value do not affect the Widget.
func New(prm Prm, opts ...Option) (*Widget, error) {
	switch {
	case prm.Invoker == nil:
		return nil, errNilInvoker
	case prm.Target.Contract == "":
		return nil, errNoContract
	case prm.Target.Actor == "":
		return nil, errNoActor
	case len(prm.Target.Authorization) == 0:
		return nil, errNoAuthority
	}

	c := defaultCfg()
	for i := range opts {
		opts[i](c)
	}

	// one call in flight plus one worker finishing notifications
	pool, err := util.NewWorkerPool(2)
	if err != nil {
		return nil, fmt.Errorf("could not create worker pool: %w", err)
	}

	t := prm.Target
	t.Authorization = append([]string(nil), prm.Target.Authorization...)

	w := &Widget{
		cfg:     c,
		target:  t,
		invoker: prm.Invoker,
		pool:    pool,
		subs:    make(map[uint64]func(Status)),
	}
	w.notifyCond = sync.NewCond(&w.notifyMtx)

	c.metrics.SetPingStatus(uint8(Idle))

	return w, nil
}

// Status returns current status.
func (w *Widget) Status() Status {
	w.mtx.Lock()
	defer w.mtx.Unlock()

	return w.status
}

// Render returns the view of the current status. See Render.
func (w *Widget) Render() View {
	return Render(w.Status())
}

// Subscribe registers f to be called on every status change. Returned function
// removes the subscription.
//
// f is called without any Widget lock held, so it may read the Widget through
// Status and Render. Changes are delivered in the order they happened, and the
// next change is delivered only after f returns, so f must not call Trigger
// synchronously.
func (w *Widget) Subscribe(f func(Status)) (cancel func()) {
	w.subMtx.Lock()
	w.lastSub++
	id := w.lastSub
	w.subs[id] = f
	w.subMtx.Unlock()

	return func() {
		w.subMtx.Lock()
		delete(w.subs, id)
		w.subMtx.Unlock()
	}
}

// Trigger starts a new ping. Status becomes Loading before Trigger returns, the
// call itself is executed asynchronously.
//
// Trigger is a no-op while another ping is in flight or after Close. Returns
// true if a new ping has been started.
func (w *Widget) Trigger() bool {
	w.mtx.Lock()

	if w.closed {
		w.mtx.Unlock()
		return false
	}

	if w.status == Loading {
		w.mtx.Unlock()
		w.cfg.metrics.IncSkippedPing()
		w.cfg.log.Debug("ping is already in flight, skip")

		return false
	}

	done := make(chan struct{})
	w.done = done

	w.setAndNotify(Loading)

	id := uuid.New()
	w.cfg.log.Debug("sending ping",
		zap.Stringer("attempt", id),
		zap.String("contract", w.target.Contract),
		zap.String("actor", w.target.Actor),
	)

	err := w.pool.Submit(func() {
		w.settle(id, done, w.invoker.Ping(w.cfg.ctx, w.target))
	})
	if err != nil {
		w.settle(id, done, fmt.Errorf("could not schedule ping: %w", err))
	}

	return true
}

func (w *Widget) settle(id uuid.UUID, done chan struct{}, err error) {
	defer close(done)

	w.mtx.Lock()

	if w.closed {
		w.mtx.Unlock()
		w.cfg.log.Debug("widget is closed, drop ping result",
			zap.Stringer("attempt", id))

		return
	}

	w.cfg.metrics.AddPingAttempt(err == nil)

	if err != nil {
		w.cfg.log.Error("ping unsuccessful",
			zap.Stringer("attempt", id),
			zap.String("contract", w.target.Contract),
			zap.String("actor", w.target.Actor),
			zap.Error(err),
		)

		w.setAndNotify(Failure)

		return
	}

	w.cfg.log.Info("ping successful",
		zap.Stringer("attempt", id),
		zap.String("contract", w.target.Contract),
	)

	w.setAndNotify(Success)
}

// setAndNotify must be called with mtx held, it releases mtx.
func (w *Widget) setAndNotify(s Status) {
	w.status = s
	w.cfg.metrics.SetPingStatus(uint8(s))
	w.lastSeq++
	seq := w.lastSeq
	w.mtx.Unlock()

	w.notifyMtx.Lock()
	for w.delivered != seq-1 {
		w.notifyCond.Wait()
	}
	w.notifyMtx.Unlock()

	defer func() {
		w.notifyMtx.Lock()
		w.delivered = seq
		w.notifyCond.Broadcast()
		w.notifyMtx.Unlock()
	}()

	w.subMtx.RLock()
	subs := make([]func(Status), 0, len(w.subs))
	for _, f := range w.subs {
		subs = append(subs, f)
	}
	w.subMtx.RUnlock()

	for i := range subs {
		subs[i](s)
	}
}

// Wait blocks until no ping is in flight or ctx is done.
func (w *Widget) Wait(ctx context.Context) error {
	w.mtx.Lock()
	done := w.done
	w.mtx.Unlock()

	if done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close tears the Widget down. Result of the in-flight ping (if any) is
// discarded, subsequent Trigger calls are no-op.
func (w *Widget) Close() {
	w.mtx.Lock()
	if w.closed {
		w.mtx.Unlock()
		return
	}
	w.closed = true
	w.mtx.Unlock()

	w.pool.Release()
}
