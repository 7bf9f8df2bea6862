package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"
)

// 上游推送与风控接口的 JSON 结构随协议、版本变化，按路径宽松取值：
// 字段缺失或类型不符统一返回 ok=false，由调用方决定是丢弃还是取默认值。

// DecodeJSON 解码为通用结构，数字保留为 json.Number，避免大整数丢精度
func DecodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after top-level value")
	}
	return v, nil
}

// Field 取对象字段；v 不是对象或字段不存在时 ok=false
func Field(v any, key string) (any, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	f, ok := obj[key]
	return f, ok
}

// Path 逐级取字段
func Path(v any, keys ...string) (any, bool) {
	cur := v
	for _, key := range keys {
		next, ok := Field(cur, key)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func String(v any, keys ...string) (string, bool) {
	f, ok := Path(v, keys...)
	if !ok {
		return "", false
	}
	s, ok := f.(string)
	return s, ok
}

func Array(v any, keys ...string) ([]any, bool) {
	f, ok := Path(v, keys...)
	if !ok {
		return nil, false
	}
	arr, ok := f.([]any)
	return arr, ok
}

func Bool(v any, keys ...string) (bool, bool) {
	f, ok := Path(v, keys...)
	if !ok {
		return false, false
	}
	b, ok := f.(bool)
	return b, ok
}

// Uint 只接受非负整数字面量，85.0 这类浮点写法视为不匹配
func Uint(v any, keys ...string) (uint64, bool) {
	f, ok := Path(v, keys...)
	if !ok {
		return 0, false
	}
	switch n := f.(type) {
	case json.Number:
		u, err := strconv.ParseUint(n.String(), 10, 64)
		return u, err == nil
	case float64:
		if n < 0 || n != float64(uint64(n)) {
			return 0, false
		}
		return uint64(n), true
	default:
		return 0, false
	}
}

func Float(v any, keys ...string) (float64, bool) {
	f, ok := Path(v, keys...)
	if !ok {
		return 0, false
	}
	switch n := f.(type) {
	case json.Number:
		x, err := n.Float64()
		return x, err == nil
	case float64:
		return n, true
	default:
		return 0, false
	}
}
