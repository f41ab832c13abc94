package advisor

import (
	"context"
	"encoding/json"
	"time"

	"joy/common/log"
	"joy/core/domain/vo"

	"github.com/nats-io/nats.go"
)

// Backend 真正产生建议的一方
type Backend interface {
	SuggestMove(ctx context.Context, req vo.MoveRequest) (*vo.MoveAdvice, error)
	SuggestDiscard(ctx context.Context, req vo.DiscardRequest) (*vo.DiscardAdvice, error)
}

// Worker advisor 节点：按队列组订阅建议请求并应答
type Worker struct {
	backend Backend
	timeout time.Duration
	subs    []*nats.Subscription
}

func NewWorker(backend Backend, timeout time.Duration) *Worker {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Worker{backend: backend, timeout: timeout}
}

// Run 订阅 moveSubject 和 discardSubject，同一队列组内只有一个节点处理
func (w *Worker) Run(conn *nats.Conn, moveSubject, discardSubject, queue string) error {
	handlers := map[string]func(context.Context, []byte) vo.AdvisorReply{
		moveSubject:    w.handleMove,
		discardSubject: w.handleDiscard,
	}
	for subject, handle := range handlers {
		sub, err := conn.QueueSubscribe(subject, queue, func(msg *nats.Msg) {
			// 模型调用耗时，不阻塞订阅回调
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
				defer cancel()
				data, _ := json.Marshal(handle(ctx, msg.Data))
				if err := msg.Respond(data); err != nil {
					log.Error("advisor 应答失败, subject=%s: %v", msg.Subject, err)
				}
			}()
		})
		if err != nil {
			w.Close()
			return err
		}
		w.subs = append(w.subs, sub)
		log.Info("advisor 订阅 %s (queue=%s)", subject, queue)
	}
	return nil
}

func (w *Worker) handleMove(ctx context.Context, data []byte) vo.AdvisorReply {
	var req vo.MoveRequest
	if err := json.Unmarshal(data, &req); err != nil {
		log.Warn("advisor 落子请求解析错误: %v", err)
		return vo.AdvisorReply{Error: err.Error()}
	}
	advice, err := w.backend.SuggestMove(ctx, req)
	if err != nil {
		log.Warn("advisor 落子建议失败: %v", err)
		return vo.AdvisorReply{Error: err.Error()}
	}
	return vo.AdvisorReply{Move: advice}
}

func (w *Worker) handleDiscard(ctx context.Context, data []byte) vo.AdvisorReply {
	var req vo.DiscardRequest
	if err := json.Unmarshal(data, &req); err != nil {
		log.Warn("advisor 出牌请求解析错误: %v", err)
		return vo.AdvisorReply{Error: err.Error()}
	}
	advice, err := w.backend.SuggestDiscard(ctx, req)
	if err != nil {
		log.Warn("advisor 出牌建议失败: %v", err)
		return vo.AdvisorReply{Error: err.Error()}
	}
	return vo.AdvisorReply{Discard: advice}
}

func (w *Worker) Close() {
	for _, sub := range w.subs {
		_ = sub.Unsubscribe()
	}
	w.subs = nil
}
