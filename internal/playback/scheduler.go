package playback

import "time"

// Timer 一次性定时器句柄
type Timer interface {
	Stop() bool
}

// Scheduler 只提供一次性延时回调；每次触发后由播放器显式安排下一次，
// 这样每一帧可以有不同的时长
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealScheduler 基于 time.AfterFunc
func RealScheduler() Scheduler {
	return realScheduler{}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
