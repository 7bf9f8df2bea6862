package common

import (
	"pool-sniffer-sol/internal/utils"
)

// 上游控制帧：直接跳过，不参与解析
var controlFrameTypes = map[string]struct{}{
	"pong":             {},
	"connection_ack":   {},
	"connection_error": {},
	"ka":               {},
}

// FrameType 返回顶层 type 字段；raw 兜底包装或非对象时 ok=false
func FrameType(raw any) (string, bool) {
	return utils.String(raw, "type")
}

func IsControlFrameType(t string) bool {
	_, ok := controlFrameTypes[t]
	return ok
}

// InstructionFields 第一条指令中解析所需的必填字段
type InstructionFields struct {
	BlockTime   string
	Signature   string
	Accounts    []any
	Program     any
	ProgramName string
	Method      string // 缺失时为空串
}

// LocateInstruction 定位指令列表并返回第一条。
//
// 负载取 payload，缺失时退回 data；指令列表依次尝试：
//   - <payload>.data.Solana.Instructions
//   - <payload>.Solana.Instructions
//
// 命中 data.Solana 后不再回退到第二种形态。
func LocateInstruction(raw any) (any, bool) {
	payload, ok := utils.Field(raw, "payload")
	if !ok {
		if payload, ok = utils.Field(raw, "data"); !ok {
			return nil, false
		}
	}

	var instructions []any
	if solana, found := utils.Path(payload, "data", "Solana"); found {
		if instructions, ok = utils.Array(solana, "Instructions"); !ok {
			return nil, false
		}
	} else if instructions, ok = utils.Array(payload, "Solana", "Instructions"); !ok {
		return nil, false
	}

	if len(instructions) == 0 {
		return nil, false
	}
	return instructions[0], true
}

// ExtractInstruction 提取区块时间、签名、账户列表、program 描述；任一必填字段缺失返回 false
func ExtractInstruction(instr any) (InstructionFields, bool) {
	var f InstructionFields
	var ok bool

	if f.BlockTime, ok = utils.String(instr, "Block", "Time"); !ok {
		return f, false
	}
	if f.Signature, ok = utils.String(instr, "Transaction", "Signature"); !ok {
		return f, false
	}
	body, ok := utils.Field(instr, "Instruction")
	if !ok {
		return f, false
	}
	if f.Accounts, ok = utils.Array(body, "Accounts"); !ok {
		return f, false
	}
	if f.Program, ok = utils.Field(body, "Program"); !ok {
		return f, false
	}
	if f.ProgramName, ok = utils.String(f.Program, "Name"); !ok {
		return f, false
	}
	f.Method, _ = utils.String(f.Program, "Method")
	return f, true
}
