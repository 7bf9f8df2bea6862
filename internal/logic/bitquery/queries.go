package bitquery

import (
	"fmt"
	"strconv"
	"strings"

	"pool-sniffer-sol/internal/consts"
	"pool-sniffer-sol/internal/logic/eventparser/common"
)

// 归一化只依赖 Block.Time、Transaction.Signature、Instruction.Accounts.Address 以及
// Program.{Name,Method,AccountNames,Arguments}，其余字段仅供下游 raw 调试。
const instructionSelection = `{
      Block {
        Time
      }
      Transaction {
        Signature
        Signer
      }
      Instruction {
        Accounts {
          Address
          IsWritable
          Token {
            Mint
            Owner
            ProgramId
          }
        }
        Program {
          Address
          Name
          Method
          AccountNames
          Arguments {
            Name
            Type
            Value {
              __typename
              ... on Solana_ABI_Integer_Value_Arg {
                integer
              }
              ... on Solana_ABI_String_Value_Arg {
                string
              }
              ... on Solana_ABI_Address_Value_Arg {
                address
              }
              ... on Solana_ABI_BigInt_Value_Arg {
                bigInteger
              }
              ... on Solana_ABI_Bytes_Value_Arg {
                hex
              }
              ... on Solana_ABI_Boolean_Value_Arg {
                bool
              }
              ... on Solana_ABI_Float_Value_Arg {
                float
              }
              ... on Solana_ABI_Json_Value_Arg {
                json
              }
            }
          }
        }
      }
    }`

// BuildInstructionQuery 生成只订阅成功交易中指定 method / program 的指令订阅文档
func BuildInstructionQuery(methods, programs []string) string {
	var b strings.Builder
	b.WriteString("subscription {\n  Solana {\n    Instructions(\n      where: {")
	b.WriteString("Transaction: {Result: {Success: true}}, ")
	b.WriteString("Instruction: {Program: {Method: ")
	b.WriteString(matcher(methods))
	b.WriteString(", Address: ")
	b.WriteString(matcher(programs))
	b.WriteString("}}}\n    ) ")
	b.WriteString(instructionSelection)
	b.WriteString("\n  }\n}\n")
	return b.String()
}

// matcher 单值用 is，多值用 in
func matcher(values []string) string {
	if len(values) == 1 {
		return fmt.Sprintf("{is: %s}", strconv.Quote(values[0]))
	}
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	return fmt.Sprintf("{in: [%s]}", strings.Join(quoted, ", "))
}

// DefaultQueries 每个协议一份单协议订阅，外加覆盖全部协议的 combined 订阅
func DefaultQueries(registry *common.Registry) map[string]string {
	cfgs := registry.Configs()
	queries := make(map[string]string, len(cfgs)+1)

	methods := make([]string, 0, len(cfgs))
	programs := make([]string, 0, len(cfgs))
	for _, cfg := range cfgs {
		queries[cfg.ID] = BuildInstructionQuery([]string{cfg.Method}, []string{cfg.ProgramAddress})
		methods = appendUnique(methods, cfg.Method)
		programs = appendUnique(programs, cfg.ProgramAddress)
	}
	if len(cfgs) > 0 {
		queries[consts.SubscriptionCombined] = BuildInstructionQuery(methods, programs)
	}
	return queries
}

func appendUnique(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}
