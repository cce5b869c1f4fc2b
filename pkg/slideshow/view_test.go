package slideshow

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photofolio-home/pkg/models"
	"photofolio-home/pkg/scheduler"
)

func newTestView(t *testing.T, sched scheduler.Scheduler, opts ...ViewOption) *View {
	t.Helper()
	return NewView("view-1", newTestController(t, 3), sched, opts...)
}

func TestViewDoesNotTickBeforeMount(t *testing.T) {
	sched := scheduler.NewManualScheduler()
	view := newTestView(t, sched)

	sched.Advance(10 * time.Second)

	assert.Equal(t, 0, sched.Live())
	assert.Equal(t, models.SlideshowState{ActiveSlideID: 1}, view.State())
}

func TestViewScenario(t *testing.T) {
	sched := scheduler.NewManualScheduler()
	view := newTestView(t, sched)
	require.NoError(t, view.Mount())

	sched.Advance(5 * time.Second)
	assert.Equal(t, models.SlideshowState{ActiveSlideID: 2}, view.State())

	require.NoError(t, view.Select(3))
	assert.Equal(t, models.SlideshowState{ActiveSlideID: 3}, view.State())

	sched.Advance(5 * time.Second)
	assert.Equal(t, 1, view.State().ActiveSlideID)
	assert.Equal(t, 1, sched.Live())
}

func TestViewSelectRestartsCadence(t *testing.T) {
	sched := scheduler.NewManualScheduler()
	view := newTestView(t, sched)
	require.NoError(t, view.Mount())

	sched.Advance(150 * time.Millisecond)
	require.NoError(t, view.Select(2))

	sched.Advance(50 * time.Millisecond)
	assert.Equal(t, 0.0, view.State().Progress, "old task must not tick after select")

	sched.Advance(50 * time.Millisecond)
	assert.Equal(t, 2.0, view.State().Progress)
}

func TestViewKeepsOneLiveTask(t *testing.T) {
	sched := scheduler.NewManualScheduler()
	view := newTestView(t, sched)

	require.NoError(t, view.Mount())
	require.NoError(t, view.Mount())
	for id := 1; id <= 3; id++ {
		require.NoError(t, view.Select(id))
		assert.Equal(t, 1, sched.Live())
	}

	view.Unmount()
	assert.Equal(t, 0, sched.Live())
}

func TestViewUnmountStopsStateChanges(t *testing.T) {
	sched := scheduler.NewManualScheduler()
	updates := 0
	view := newTestView(t, sched, WithUpdates(func(models.Snapshot) { updates++ }))
	require.NoError(t, view.Mount())

	sched.Advance(time.Second)
	before := view.State()
	seen := updates

	view.Unmount()
	view.Unmount()
	sched.Advance(time.Minute)

	assert.Equal(t, before, view.State())
	assert.Equal(t, seen, updates)
	assert.False(t, view.Mounted())
	assert.ErrorIs(t, view.Select(1), ErrViewUnmounted)
	assert.ErrorIs(t, view.Mount(), ErrViewUnmounted)
}

func TestViewSelectUnknownSlide(t *testing.T) {
	sched := scheduler.NewManualScheduler()
	view := newTestView(t, sched)
	require.NoError(t, view.Mount())
	sched.Advance(time.Second)

	err := view.Select(99)

	assert.ErrorIs(t, err, ErrUnknownSlide)
	assert.Equal(t, models.SlideshowState{ActiveSlideID: 1, Progress: 20}, view.State())
}

func TestViewHooks(t *testing.T) {
	sched := scheduler.NewManualScheduler()
	var advanced, selected []int
	var mounted, unmounted []string
	var snapshots []models.Snapshot

	view := newTestView(t, sched,
		WithAdvanceHook(func(s models.Slide) { advanced = append(advanced, s.ID) }),
		WithSelectHook(func(s models.Slide) { selected = append(selected, s.ID) }),
		WithLifecycleHooks(
			func(id string) { mounted = append(mounted, id) },
			func(id string) { unmounted = append(unmounted, id) },
		),
		WithUpdates(func(s models.Snapshot) { snapshots = append(snapshots, s) }),
	)

	require.NoError(t, view.Mount())
	sched.Advance(10 * time.Second)
	require.NoError(t, view.Select(1))
	view.Unmount()

	assert.Equal(t, []int{2, 3}, advanced)
	assert.Equal(t, []int{1}, selected)
	assert.Equal(t, []string{"view-1"}, mounted)
	assert.Equal(t, []string{"view-1"}, unmounted)
	require.Len(t, snapshots, 101)
	assert.Equal(t, models.Snapshot{Slide: snapshots[100].Slide, Progress: 0}, snapshots[100])
	assert.Equal(t, 1, snapshots[100].Slide.ID)
}

func TestViewUnmountWithoutMountSkipsHook(t *testing.T) {
	sched := scheduler.NewManualScheduler()
	called := false
	view := newTestView(t, sched, WithLifecycleHooks(nil, func(string) { called = true }))

	view.Unmount()

	assert.False(t, called)
}

func TestViewWithTickerScheduler(t *testing.T) {
	catalog, err := NewCatalog(testSlides(2))
	require.NoError(t, err)
	ctrl, err := NewController(catalog, 20*time.Millisecond, 5*time.Millisecond)
	require.NoError(t, err)

	var mu sync.Mutex
	advances := 0
	view := NewView("ticker", ctrl, scheduler.NewTickerScheduler(),
		WithAdvanceHook(func(models.Slide) {
			mu.Lock()
			advances++
			mu.Unlock()
		}),
	)
	require.NoError(t, view.Mount())

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return advances >= 2
	}, 2*time.Second, 5*time.Millisecond)

	view.Unmount()
	frozen := view.State()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, frozen, view.State())
}

func TestViewTicksAtControllerInterval(t *testing.T) {
	catalog, err := NewCatalog(testSlides(2))
	require.NoError(t, err)
	ctrl, err := NewController(catalog, time.Second, 250*time.Millisecond)
	require.NoError(t, err)

	sched := scheduler.NewManualScheduler()
	view := NewView("custom", ctrl, sched)
	require.NoError(t, view.Mount())
	t.Cleanup(view.Unmount)

	assert.Equal(t, 4, view.TicksPerSlide())

	sched.Advance(500 * time.Millisecond)
	assert.Equal(t, models.SlideshowState{ActiveSlideID: 1, Progress: 50}, view.State())

	sched.Advance(500 * time.Millisecond)
	assert.Equal(t, models.SlideshowState{ActiveSlideID: 2}, view.State())
}
