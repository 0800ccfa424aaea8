package playback

import (
	"context"
	"errors"
	"sync"

	"newsreel-backend/internal/slideshow"

	"github.com/sirupsen/logrus"
)

// ErrorMessage 生成失败时展示给用户的固定文案
const ErrorMessage = "Failed to generate video. Please try again."

var (
	ErrClosed     = errors.New("player closed")
	ErrNoFrames   = errors.New("no frames loaded")
	ErrSuperseded = errors.New("generation superseded by a newer request")
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusPaused  Status = "paused"
	StatusPlaying Status = "playing"
	StatusError   Status = "error"
)

// State 播放器某一时刻的快照
type State struct {
	Status     Status
	Index      int
	FrameCount int
	Headlines  []string
	Frame      *slideshow.Frame
	Error      string
}

func (s State) IsPlaying() bool {
	return s.Status == StatusPlaying
}

// Finished 停在最后一帧
func (s State) Finished() bool {
	return s.Status == StatusPaused && s.FrameCount > 0 && s.Index == s.FrameCount-1
}

type Option func(*Player)

func WithScheduler(s Scheduler) Option {
	return func(p *Player) {
		p.sched = s
	}
}

func WithLogger(entry *logrus.Entry) Option {
	return func(p *Player) {
		p.log = entry
	}
}

// Player 幻灯片播放状态机。
//
// 所有状态修改都在 mu 下进行，定时器回调也一样。任一时刻最多只有一个待触发的
// 推进定时器；离开播放状态（暂停、重置、加载新帧、关闭）时必须取消它。
// timerGen 在每次取消时递增，已经触发但还没拿到锁的旧回调据此自行丢弃。
// 状态快照在 mu 下入队，由 dispatch 协程按顺序交给回调，回调执行时不持有任何锁。
type Player struct {
	mu sync.Mutex

	fetcher Fetcher
	sched   Scheduler
	log     *logrus.Entry

	status    Status
	frames    []slideshow.Frame
	headlines []string
	index     int
	errMsg    string

	timer    Timer
	timerGen uint64
	loadSeq  uint64

	listeners []func(State)
	queue     []State
	wake      chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	closed bool
}

func NewPlayer(fetcher Fetcher, opts ...Option) *Player {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Player{
		fetcher: fetcher,
		sched:   RealScheduler(),
		log:     logrus.NewEntry(logrus.StandardLogger()),
		status:  StatusIdle,
		wake:    make(chan struct{}, 1),
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, opt := range opts {
		opt(p)
	}
	go p.dispatch()
	return p
}

// OnChange 注册状态变化回调。回调在播放器自己的协程里按状态变化的顺序串行调用，
// 不持有锁，可以调用播放器的任何方法；回调阻塞只会推迟后续回调，不会阻塞状态变化。
func (p *Player) OnChange(fn func(State)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

// Generate 丢弃当前的帧，向 Fetcher 请求新的一组。请求的生命周期同时受 ctx 和
// 播放器本身约束：Close 会取消进行中的请求。较新的 Generate 会让较旧的结果作废。
func (p *Player) Generate(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	p.cancelTimerLocked()
	p.loadSeq++
	seq := p.loadSeq
	p.status = StatusLoading
	p.frames = nil
	p.headlines = nil
	p.index = 0
	p.errMsg = ""
	p.unlockAndPublish()

	fctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(p.ctx, cancel)
	defer stop()

	res, err := p.fetcher.Fetch(fctx)
	if err == nil && (res == nil || res.Slideshow == nil || len(res.Slideshow.Frames) == 0) {
		err = ErrNoFrames
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	if seq != p.loadSeq {
		p.mu.Unlock()
		return ErrSuperseded
	}

	if err != nil {
		p.log.WithError(err).Warn("slideshow generation failed")
		p.status = StatusError
		p.errMsg = ErrorMessage
		p.unlockAndPublish()
		return err
	}

	p.setFramesLocked(res.Headlines, res.Slideshow.Frames)
	p.log.WithField("frames", len(p.frames)).Debug("slideshow loaded")
	p.unlockAndPublish()
	return nil
}

// Load 直接装入一组帧，停在第 0 帧暂停
func (p *Player) Load(headlines []string, frames []slideshow.Frame) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	p.cancelTimerLocked()
	p.loadSeq++
	p.errMsg = ""
	p.setFramesLocked(headlines, frames)
	p.unlockAndPublish()
	return nil
}

func (p *Player) setFramesLocked(headlines []string, frames []slideshow.Frame) {
	p.frames = append([]slideshow.Frame(nil), frames...)
	p.headlines = append([]string(nil), headlines...)
	p.index = 0
	if len(p.frames) == 0 {
		p.status = StatusIdle
	} else {
		p.status = StatusPaused
	}
}

// Play 从当前帧开始播放。已经停在最后一帧时从头开始。
func (p *Player) Play() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	if len(p.frames) == 0 || (p.status != StatusPaused && p.status != StatusPlaying) {
		p.mu.Unlock()
		return ErrNoFrames
	}
	if p.status == StatusPlaying {
		p.mu.Unlock()
		return nil
	}

	if len(p.frames) > 1 && p.index == len(p.frames)-1 {
		p.index = 0
	}
	p.status = StatusPlaying
	p.scheduleLocked()
	p.unlockAndPublish()
	return nil
}

// Pause 取消待触发的推进，帧序号不变
func (p *Player) Pause() {
	p.mu.Lock()
	if p.status != StatusPlaying {
		p.mu.Unlock()
		return
	}
	p.cancelTimerLocked()
	p.status = StatusPaused
	p.unlockAndPublish()
}

// Toggle 播放/暂停按钮
func (p *Player) Toggle() error {
	p.mu.Lock()
	playing := p.status == StatusPlaying
	p.mu.Unlock()

	if playing {
		p.Pause()
		return nil
	}
	return p.Play()
}

// Reset 回到第 0 帧并暂停
func (p *Player) Reset() {
	p.mu.Lock()
	if len(p.frames) == 0 || (p.status != StatusPaused && p.status != StatusPlaying) {
		p.mu.Unlock()
		return
	}
	p.cancelTimerLocked()
	p.index = 0
	p.status = StatusPaused
	p.unlockAndPublish()
}

// Close 取消定时器和进行中的请求，之后的操作都返回 ErrClosed
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.cancelTimerLocked()
	p.cancel()
	p.listeners = nil
	p.queue = nil
}

func (p *Player) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// Current 当前应当显示的帧；没有帧时返回 false
func (p *Player) Current() (slideshow.Frame, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.frames) == 0 {
		return slideshow.Frame{}, false
	}
	return p.frames[p.index], true
}

// scheduleLocked 为当前帧安排一次推进；已经是最后一帧时直接停下
func (p *Player) scheduleLocked() {
	if p.index >= len(p.frames)-1 {
		p.status = StatusPaused
		return
	}

	p.timerGen++
	gen := p.timerGen
	p.timer = p.sched.AfterFunc(seconds(p.frames[p.index].Duration), func() {
		p.advance(gen)
	})
}

func (p *Player) advance(gen uint64) {
	p.mu.Lock()
	if p.closed || gen != p.timerGen || p.status != StatusPlaying {
		p.mu.Unlock()
		return
	}
	p.timer = nil
	p.index++
	p.scheduleLocked()
	p.unlockAndPublish()
}

func (p *Player) cancelTimerLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.timerGen++
}

func (p *Player) snapshotLocked() State {
	st := State{
		Status:     p.status,
		Index:      p.index,
		FrameCount: len(p.frames),
		Headlines:  append([]string(nil), p.headlines...),
		Error:      p.errMsg,
	}
	if len(p.frames) > 0 {
		f := p.frames[p.index]
		st.Frame = &f
	}
	return st
}

// unlockAndPublish 在 mu 下把快照入队，然后释放 mu
func (p *Player) unlockAndPublish() {
	if len(p.listeners) > 0 {
		p.queue = append(p.queue, p.snapshotLocked())
		select {
		case p.wake <- struct{}{}:
		default:
		}
	}
	p.mu.Unlock()
}

// dispatch 依次取出队列中的快照交给回调，Close 后退出
func (p *Player) dispatch() {
	for {
		select {
		case <-p.wake:
		case <-p.ctx.Done():
			return
		}

		for {
			p.mu.Lock()
			if p.closed || len(p.queue) == 0 {
				p.mu.Unlock()
				break
			}
			batch := p.queue
			p.queue = nil
			listeners := p.listeners
			p.mu.Unlock()

			for _, st := range batch {
				for _, fn := range listeners {
					fn(st)
				}
			}
		}
	}
}
