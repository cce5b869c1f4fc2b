package slideshow

import (
	"errors"
	"sync"
	"time"

	"photofolio-home/pkg/models"
	"photofolio-home/pkg/scheduler"
)

// ErrViewUnmounted is returned when a view is used after it was unmounted
var ErrViewUnmounted = errors.New("view has been unmounted")

// ViewOption configures a View
type ViewOption func(*View)

// WithUpdates registers fn to receive a snapshot after every state change.
// fn is called with the view lock held and must not block or call back into the view.
func WithUpdates(fn func(models.Snapshot)) ViewOption {
	return func(v *View) {
		v.onUpdate = fn
	}
}

// WithAdvanceHook registers fn to run after every automatic advance
func WithAdvanceHook(fn func(models.Slide)) ViewOption {
	return func(v *View) {
		v.onAdvance = fn
	}
}

// WithSelectHook registers fn to run after every manual selection
func WithSelectHook(fn func(models.Slide)) ViewOption {
	return func(v *View) {
		v.onSelect = fn
	}
}

// WithLifecycleHooks registers callbacks for mount and unmount
func WithLifecycleHooks(onMount, onUnmount func(id string)) ViewOption {
	return func(v *View) {
		v.onMount = onMount
		v.onUnmount = onUnmount
	}
}

// View is one mounted instance of the slideshow. It owns a controller and
// at most one live tick task; every state change goes through its lock.
type View struct {
	id       string
	ctrl     *Controller
	sched    scheduler.Scheduler
	interval time.Duration

	mu        sync.Mutex
	task      scheduler.Task
	gen       uint64
	mounted   bool
	unmounted bool

	onUpdate  func(models.Snapshot)
	onAdvance func(models.Slide)
	onSelect  func(models.Slide)
	onMount   func(id string)
	onUnmount func(id string)
}

// NewView creates an unmounted view ticking at the controller's interval.
// Nothing ticks until Mount is called.
func NewView(id string, ctrl *Controller, sched scheduler.Scheduler, opts ...ViewOption) *View {
	v := &View{
		id:       id,
		ctrl:     ctrl,
		sched:    sched,
		interval: ctrl.TickInterval(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ID returns the view identifier
func (v *View) ID() string {
	return v.id
}

// Mount starts the tick task. Mounting a mounted view does nothing.
func (v *View) Mount() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.unmounted {
		return ErrViewUnmounted
	}
	if v.mounted {
		return nil
	}

	v.mounted = true
	v.scheduleLocked()
	if v.onMount != nil {
		v.onMount(v.id)
	}
	return nil
}

// Unmount cancels the tick task. After it returns no tick changes the view.
func (v *View) Unmount() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.unmounted {
		return
	}
	wasMounted := v.mounted
	v.cancelLocked()
	v.mounted = false
	v.unmounted = true
	if wasMounted && v.onUnmount != nil {
		v.onUnmount(v.id)
	}
}

// Mounted reports whether the view is currently ticking
func (v *View) Mounted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mounted
}

// Select activates the slide with the given id. The tick task is replaced so
// the selected slide gets its full duration from now.
func (v *View) Select(id int) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.unmounted {
		return ErrViewUnmounted
	}
	if err := v.ctrl.TrySelect(id); err != nil {
		return err
	}
	if v.mounted {
		v.cancelLocked()
		v.scheduleLocked()
	}

	if v.onSelect != nil {
		v.onSelect(v.ctrl.Active())
	}
	v.emitLocked()
	return nil
}

// Snapshot returns the active slide and progress
func (v *View) Snapshot() models.Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ctrl.Snapshot()
}

// State returns the active slide id and progress
func (v *View) State() models.SlideshowState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ctrl.State()
}

// TicksPerSlide returns the number of ticks between automatic advances
func (v *View) TicksPerSlide() int {
	return v.ctrl.TicksPerSlide()
}

func (v *View) scheduleLocked() {
	v.gen++
	gen := v.gen
	v.task = v.sched.Every(v.interval, func() {
		v.tick(gen)
	})
}

func (v *View) cancelLocked() {
	if v.task != nil {
		v.task.Cancel()
		v.task = nil
	}
}

func (v *View) tick(gen uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	// Ticks from a cancelled task can still be in flight
	if !v.mounted || gen != v.gen {
		return
	}

	if v.ctrl.Tick() && v.onAdvance != nil {
		v.onAdvance(v.ctrl.Active())
	}
	v.emitLocked()
}

func (v *View) emitLocked() {
	if v.onUpdate != nil {
		v.onUpdate(v.ctrl.Snapshot())
	}
}
