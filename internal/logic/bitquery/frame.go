package bitquery

import "encoding/json"

// FrameKind 上游文本帧类别，只看顶层 type 字段
type FrameKind int

const (
	FrameUnknown FrameKind = iota
	FrameConnectionAck
	FrameConnectionError
	FrameKeepAlive
	FramePing
	FramePong
	FrameData
	FrameError
	FrameComplete
)

var frameKindNames = [...]string{
	"unknown", "connection_ack", "connection_error", "keepalive",
	"ping", "pong", "data", "error", "complete",
}

func (k FrameKind) String() string {
	if int(k) < len(frameKindNames) {
		return frameKindNames[k]
	}
	return "unknown"
}

// IsControl 控制帧不进入归一化，也不推给下游
func (k FrameKind) IsControl() bool {
	switch k {
	case FrameConnectionAck, FrameConnectionError, FrameKeepAlive, FramePing, FramePong, FrameError, FrameComplete:
		return true
	default:
		return false
	}
}

type frameHeader struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func parseHeader(text []byte) (frameHeader, bool) {
	var h frameHeader
	if err := json.Unmarshal(text, &h); err != nil {
		return frameHeader{}, false
	}
	return h, true
}

// ClassifyFrame 非 JSON 或 type 不认识的帧归为 FrameUnknown
func ClassifyFrame(text []byte) FrameKind {
	h, ok := parseHeader(text)
	if !ok {
		return FrameUnknown
	}
	return kindOf(h.Type)
}

func kindOf(t string) FrameKind {
	switch t {
	case "connection_ack":
		return FrameConnectionAck
	case "connection_error":
		return FrameConnectionError
	case "ka":
		return FrameKeepAlive
	case "ping":
		return FramePing
	case "pong":
		return FramePong
	case "next", "data":
		return FrameData
	case "error":
		return FrameError
	case "complete":
		return FrameComplete
	default:
		return FrameUnknown
	}
}
