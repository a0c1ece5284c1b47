package service

import "time"

// RemovalScheduler runs the second phase of a task completion later.
type RemovalScheduler interface {
	Schedule(delay time.Duration, fn func())
}

// TimerScheduler runs fn on its own goroutine after delay.
type TimerScheduler struct{}

func (TimerScheduler) Schedule(delay time.Duration, fn func()) {
	time.AfterFunc(delay, fn)
}

// ImmediateScheduler runs fn right away, ignoring the delay.
type ImmediateScheduler struct{}

func (ImmediateScheduler) Schedule(_ time.Duration, fn func()) {
	fn()
}
