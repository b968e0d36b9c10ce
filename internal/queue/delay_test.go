package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDelay_RunsInTimeOrder(t *testing.T) {
	d := NewDelay()
	var order []string

	d.Schedule(2.0, nil, func(float64) { order = append(order, "b") })
	d.Schedule(1.0, nil, func(float64) { order = append(order, "a") })
	d.Schedule(2.0, nil, func(float64) { order = append(order, "c") })
	d.Schedule(5.0, nil, func(float64) { order = append(order, "late") })

	ran, dropped := d.Advance(0.5)
	assert.Zero(t, ran)
	assert.Zero(t, dropped)

	ran, _ = d.Advance(2.0)
	assert.Equal(t, 3, ran)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, 1, d.Len())

	next, ok := d.NextAt()
	assert.True(t, ok)
	assert.Equal(t, 5.0, next)
}

func TestDelay_GuardDropsDeadOwner(t *testing.T) {
	d := NewDelay()
	alive := true
	fired := false

	d.After(0, 2.5, func() bool { return alive }, func(float64) { fired = true })
	alive = false

	ran, dropped := d.Advance(3)
	assert.Zero(t, ran)
	assert.Equal(t, 1, dropped)
	assert.False(t, fired)
	assert.Zero(t, d.Len())
}

func TestDelay_ScheduledWhileAdvancingWaits(t *testing.T) {
	d := NewDelay()
	count := 0

	var again Action
	again = func(now float64) {
		count++
		d.Schedule(now, nil, again)
	}
	d.Schedule(1, nil, again)

	d.Advance(1)
	assert.Equal(t, 1, count)
	d.Advance(1)
	assert.Equal(t, 2, count)
	assert.Equal(t, 1, d.Len())
}

func TestDelay_Clear(t *testing.T) {
	d := NewDelay()
	d.Schedule(1, nil, func(float64) { t.Fatal("cleared action ran") })
	d.Clear()

	ran, _ := d.Advance(10)
	assert.Zero(t, ran)
	_, ok := d.NextAt()
	assert.False(t, ok)
}
