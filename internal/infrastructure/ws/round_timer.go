package ws

import "time"

// roundTimeout re-enters the core's event loop when a round's countdown
// elapses, so expiry is serialized with every other game event.
type roundTimeout struct {
	roomID string
	round  int
}

type roundTimer struct {
	timer    *time.Timer
	deadline time.Time
	round    int
}

// armRoundTimer starts the server-side countdown for a round. The timer
// callback only posts into the timeouts channel; the core decides whether
// the expiry is still current.
func (c *Core) armRoundTimer(roomID string, round int) {
	c.disarmRoundTimer(roomID)
	if c.roundDuration <= 0 {
		return
	}

	rt := &roundTimer{
		deadline: time.Now().Add(c.roundDuration),
		round:    round,
	}
	rt.timer = time.AfterFunc(c.roundDuration, func() {
		c.timeouts <- roundTimeout{roomID: roomID, round: round}
	})
	c.timers[roomID] = rt
}

func (c *Core) disarmRoundTimer(roomID string) {
	if rt, ok := c.timers[roomID]; ok {
		rt.timer.Stop()
		delete(c.timers, roomID)
	}
}

// timeLeft reports the remaining whole seconds of the room's active round,
// used for the snapshot sent to mid-game joiners.
func (c *Core) timeLeft(roomID string) int {
	if rt, ok := c.timers[roomID]; ok {
		if d := time.Until(rt.deadline); d > 0 {
			return int(d.Seconds())
		}
	}
	return 0
}
