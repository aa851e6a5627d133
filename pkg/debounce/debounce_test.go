package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	mu     sync.Mutex
	values []string
}

func (r *recorder) record(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.values))
	copy(out, r.values)
	return out
}

func TestDeliversAfterQuietPeriod(t *testing.T) {
	rec := &recorder{}
	d := New(30*time.Millisecond, rec.record)
	defer d.Stop()

	d.Set("hello")

	assert.Empty(t, rec.snapshot(), "value must not be delivered before the delay elapses")

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, []string{"hello"}, rec.snapshot())
}

func TestBurstCollapsesToLastValue(t *testing.T) {
	rec := &recorder{}
	d := New(50*time.Millisecond, rec.record)
	defer d.Stop()

	d.Set("b")
	time.Sleep(10 * time.Millisecond)
	d.Set("ba")
	time.Sleep(10 * time.Millisecond)
	d.Set("bat")

	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, []string{"bat"}, rec.snapshot(), "only the last value of a burst is delivered")
}

func TestStopCancelsPendingDelivery(t *testing.T) {
	rec := &recorder{}
	d := New(20*time.Millisecond, rec.record)

	d.Set("doomed")
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, rec.snapshot(), "a stopped debouncer must never fire")
}

func TestSetAfterStopIsIgnored(t *testing.T) {
	rec := &recorder{}
	d := New(10*time.Millisecond, rec.record)
	d.Stop()

	d.Set("late")
	time.Sleep(40 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}

func TestSequentialValuesBothDeliver(t *testing.T) {
	rec := &recorder{}
	d := New(20*time.Millisecond, rec.record)
	defer d.Stop()

	d.Set("first")
	time.Sleep(60 * time.Millisecond)
	d.Set("second")
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, []string{"first", "second"}, rec.snapshot())
}
