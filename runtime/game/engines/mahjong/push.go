package mahjong

import (
	"sync"

	"joy/common/log"
)

const subscriberBuffer = 16

type subscriber struct {
	seat int
	ch   chan Snapshot
}

// pusher 每次状态变化后按座位视角推送快照，慢订阅者丢弃旧消息
type pusher struct {
	mu   sync.Mutex
	next uint64
	subs map[uint64]*subscriber
}

func newPusher() *pusher {
	return &pusher{subs: make(map[uint64]*subscriber)}
}

// Subscribe 订阅 seat 视角的快照，先收到一份当前快照；返回的函数取消订阅
func (eg *Engine) Subscribe(seat int) (<-chan Snapshot, func()) {
	sub := &subscriber{seat: seat, ch: make(chan Snapshot, subscriberBuffer)}
	sub.ch <- eg.Snapshot(seat)

	p := eg.pusher
	p.mu.Lock()
	if p.subs == nil {
		p.mu.Unlock()
		close(sub.ch)
		return sub.ch, func() {}
	}
	id := p.next
	p.next++
	p.subs[id] = sub
	p.mu.Unlock()

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			if _, ok := p.subs[id]; ok {
				delete(p.subs, id)
				close(sub.ch)
			}
		})
	}
}

func (eg *Engine) broadcast() {
	p := eg.pusher
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, sub := range p.subs {
		snap := eg.Snapshot(sub.seat)
		select {
		case sub.ch <- snap:
			continue
		default:
		}
		// 缓冲已满则丢掉最旧的一份；只有这里发送，腾出的位置不会被占
		select {
		case <-sub.ch:
		default:
		}
		sub.ch <- snap
		log.Debug("牌桌 %s 座位 %d 的订阅者积压，丢弃最旧的快照", eg.id, sub.seat)
	}
}

func (p *pusher) closeAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, sub := range p.subs {
		close(sub.ch)
		delete(p.subs, id)
	}
	p.subs = nil
}
