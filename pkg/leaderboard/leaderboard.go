// Package leaderboard keeps the latest ranked board for display
//
// Player snapshots are published as they arrive. Only the most recent
// snapshot is ranked, once no new snapshot has arrived for the debounce window.
package leaderboard

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"twocardpoker-server/pkg/model"
	"twocardpoker-server/pkg/ranking"
)

// DefaultWindow is the debounce window
const DefaultWindow = 700 * time.Millisecond

// Leaderboard ranks player snapshots and fans the boards out to subscribers
type Leaderboard struct {
	window time.Duration

	lock       sync.Mutex
	pending    []*model.Player
	hasPending bool
	current    Board

	subscribers map[int]chan Board
	nextSubID   int

	// serializes ranking passes
	rankLock sync.Mutex

	published chan bool
	close     chan bool
	closeOnce sync.Once
}

// New returns a leaderboard with the debounce window
// A window <= 0 uses DefaultWindow
func New(window time.Duration) *Leaderboard {
	if window <= 0 {
		window = DefaultWindow
	}

	return &Leaderboard{
		window:      window,
		subscribers: make(map[int]chan Board),
		published:   make(chan bool, 1),
		close:       make(chan bool),
	}
}

// StartShift starts the run loop
func (l *Leaderboard) StartShift() {
	go l.runLoop()
}

// EndShift stops the run loop and closes every subscriber channel
func (l *Leaderboard) EndShift() {
	l.closeOnce.Do(func() {
		close(l.close)

		l.lock.Lock()
		defer l.lock.Unlock()
		for id, ch := range l.subscribers {
			close(ch)
			delete(l.subscribers, id)
		}
	})
}

func (l *Leaderboard) runLoop() {
	logrus.WithField("window", l.window).Debug("starting leaderboard run loop")

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-l.published:
			if timer != nil {
				timer.Stop()
			}

			timer = time.NewTimer(l.window)
			fire = timer.C
		case <-fire:
			timer, fire = nil, nil
			l.Flush()
		case <-l.close:
			if timer != nil {
				timer.Stop()
			}

			logrus.Debug("leaderboard run loop ended")
			return
		}
	}
}

// Publish replaces the pending snapshot and restarts the debounce window
func (l *Leaderboard) Publish(players []*model.Player) {
	snapshot := make([]*model.Player, len(players))
	for i, p := range players {
		snapshot[i] = p.Clone()
	}

	l.lock.Lock()
	if l.hasPending {
		supersededSnapshots.Inc()
	}

	l.pending = snapshot
	l.hasPending = true
	l.lock.Unlock()

	select {
	case l.published <- true:
	default:
	}
}

// Flush ranks the pending snapshot now
// It returns false if there was nothing to rank or the ranking failed
func (l *Leaderboard) Flush() bool {
	l.rankLock.Lock()
	defer l.rankLock.Unlock()

	l.lock.Lock()
	players, ok := l.pending, l.hasPending
	l.pending = nil
	l.hasPending = false
	version := l.current.Version
	l.lock.Unlock()

	if !ok {
		return false
	}

	start := time.Now()
	standings, err := ranking.Standings(players)
	rankingDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		rankingPasses.WithLabelValues("failure").Inc()
		logrus.WithError(err).Warn("could not rank players, keeping the previous board")
		return false
	}

	rankingPasses.WithLabelValues("success").Inc()
	board := newBoard(version+1, standings)

	l.lock.Lock()
	defer l.lock.Unlock()

	l.current = board
	for _, ch := range l.subscribers {
		offer(ch, board)
	}

	logrus.WithField("version", board.Version).WithField("players", len(board.Entries)).Trace("board updated")
	return true
}

// Current returns the latest board
// The version is 0 until the first successful ranking pass
func (l *Leaderboard) Current() Board {
	l.lock.Lock()
	defer l.lock.Unlock()

	return l.current
}

// Subscribe returns a channel that receives every new board and a func to cancel the subscription
// A subscriber that falls behind only gets the latest board
func (l *Leaderboard) Subscribe() (<-chan Board, func()) {
	l.lock.Lock()
	defer l.lock.Unlock()

	ch := make(chan Board, 1)

	select {
	case <-l.close:
		close(ch)
		return ch, func() {}
	default:
	}

	id := l.nextSubID
	l.nextSubID++
	l.subscribers[id] = ch

	if l.current.Version > 0 {
		ch <- l.current
	}

	return ch, func() {
		l.lock.Lock()
		defer l.lock.Unlock()

		if _, found := l.subscribers[id]; found {
			close(ch)
			delete(l.subscribers, id)
		}
	}
}

// offer sends the board, replacing an unread one
func offer(ch chan Board, board Board) {
	select {
	case ch <- board:
		return
	default:
	}

	select {
	case <-ch:
	default:
	}

	select {
	case ch <- board:
	default:
	}
}
