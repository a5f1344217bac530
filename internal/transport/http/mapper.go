package http

import (
	"github.com/vovakirdan/strangerchat-server/internal/core"
	"github.com/vovakirdan/strangerchat-server/internal/proto"
)

// inboundToCommand maps a decoded frame to a core command. A non-nil
// proto.Error is sent back to the client; (nil, nil) means the frame type is
// unknown and should be ignored.
func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error) {
	switch inbound.Type {
	case proto.InboundTypeSetName:
		if inbound.Name == "" {
			return nil, badRequest("name is required")
		}
		return &core.Command{Kind: core.CommandSetName, Name: inbound.Name}, nil
	case proto.InboundTypeChat:
		return &core.Command{Kind: core.CommandChat, Text: inbound.Message}, nil
	case proto.InboundTypeLeaveChat:
		return &core.Command{Kind: core.CommandLeaveChat}, nil
	default:
		return nil, nil
	}
}

func badRequest(msg string) *proto.Error {
	return &proto.Error{Type: proto.OutboundTypeError, Code: core.ErrCodeBadRequest, Message: msg}
}

func outboundFromEvent(event *core.Event) any {
	switch event.Kind {
	case core.EventInfo:
		return proto.Notice{Type: proto.OutboundTypeInfo, Message: event.Text}
	case core.EventPartner:
		return proto.Notice{Type: proto.OutboundTypePartner, Message: event.Text}
	case core.EventChat:
		return proto.Chat{Type: proto.OutboundTypeChat, UserName: event.From, Message: event.Text}
	case core.EventOnlineCount:
		return proto.OnlineCount{Type: proto.OutboundTypeOnlineCount, Count: event.Count}
	case core.EventError:
		if event.Error == nil {
			return proto.Error{Type: proto.OutboundTypeError, Code: "unknown", Message: "unknown error"}
		}
		return proto.Error{Type: proto.OutboundTypeError, Code: event.Error.Code, Message: event.Error.Message}
	default:
		return proto.Notice{Type: proto.OutboundTypeInfo}
	}
}
