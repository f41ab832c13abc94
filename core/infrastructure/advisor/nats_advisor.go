package advisor

import (
	"context"
	"encoding/json"
	"fmt"

	"joy/core/domain/vo"

	"github.com/nats-io/nats.go"
)

// NatsAdvisor 把建议请求转发给 advisor 节点，request/reply 模式
type NatsAdvisor struct {
	conn           *nats.Conn
	moveSubject    string
	discardSubject string
}

func NewNatsAdvisor(conn *nats.Conn, moveSubject, discardSubject string) *NatsAdvisor {
	return &NatsAdvisor{conn: conn, moveSubject: moveSubject, discardSubject: discardSubject}
}

func (a *NatsAdvisor) request(ctx context.Context, subject string, payload any) (*vo.AdvisorReply, error) {
	if a.conn == nil || !a.conn.IsConnected() {
		return nil, ErrNotConnected
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	msg, err := a.conn.RequestWithContext(ctx, subject, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrAdvisorFailed, subject, err)
	}
	return decodeReply(msg.Data)
}

func decodeReply(data []byte) (*vo.AdvisorReply, error) {
	var reply vo.AdvisorReply
	if err := json.Unmarshal(data, &reply); err != nil {
		return nil, fmt.Errorf("%w: 应答解析失败: %v", ErrAdvisorFailed, err)
	}
	if reply.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrAdvisorFailed, reply.Error)
	}
	return &reply, nil
}

func (a *NatsAdvisor) SuggestMove(ctx context.Context, req vo.MoveRequest) (*vo.MoveAdvice, error) {
	reply, err := a.request(ctx, a.moveSubject, req)
	if err != nil {
		return nil, err
	}
	if reply.Move == nil {
		return nil, ErrNoAdvice
	}
	return reply.Move, nil
}

func (a *NatsAdvisor) SuggestDiscard(ctx context.Context, req vo.DiscardRequest) (*vo.DiscardAdvice, error) {
	reply, err := a.request(ctx, a.discardSubject, req)
	if err != nil {
		return nil, err
	}
	if reply.Discard == nil {
		return nil, ErrNoAdvice
	}
	return reply.Discard, nil
}
