package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONPathHelpers(t *testing.T) {
	v, err := DecodeJSON([]byte(`{
		"a": {"b": {"s": "x", "n": 42, "f": 1.5, "big": 18446744073709551615, "neg": -1, "t": true}},
		"list": [1, 2]
	}`))
	require.NoError(t, err)

	s, ok := String(v, "a", "b", "s")
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	_, ok = String(v, "a", "b", "n")
	assert.False(t, ok, "数字不能按字符串取")

	n, ok := Uint(v, "a", "b", "n")
	assert.True(t, ok)
	assert.Equal(t, uint64(42), n)

	big, ok := Uint(v, "a", "b", "big")
	assert.True(t, ok)
	assert.Equal(t, uint64(18446744073709551615), big)

	_, ok = Uint(v, "a", "b", "f")
	assert.False(t, ok, "浮点不能按整数取")
	_, ok = Uint(v, "a", "b", "neg")
	assert.False(t, ok)

	f, ok := Float(v, "a", "b", "n")
	assert.True(t, ok)
	assert.Equal(t, 42.0, f)

	b, ok := Bool(v, "a", "b", "t")
	assert.True(t, ok)
	assert.True(t, b)

	arr, ok := Array(v, "list")
	assert.True(t, ok)
	assert.Len(t, arr, 2)

	_, ok = Path(v, "a", "missing", "deeper")
	assert.False(t, ok)
	_, ok = Field("not an object", "a")
	assert.False(t, ok)
}

func TestDecodeJSON_Invalid(t *testing.T) {
	_, err := DecodeJSON([]byte("not json"))
	assert.Error(t, err)

	_, err = DecodeJSON([]byte(`{"type":"ka"} {"type":"ka"}`))
	assert.Error(t, err, "多个顶层值")

	_, err = DecodeJSON([]byte("{\"type\":\"ka\"}\n"))
	assert.NoError(t, err, "末尾空白可以接受")
}

func TestPartitionHashBytes(t *testing.T) {
	b := make([]byte, 64)
	b[7], b[15], b[19], b[27] = 1, 2, 3, 5

	assert.Equal(t, uint32(0), PartitionHashBytes(b[:10], 4), "长度不足固定 0 分区")
	assert.Equal(t, uint32(0), PartitionHashBytes(b, 1))
	assert.Equal(t, uint32(1), PartitionHashBytes(b, 4), "低位掩码路径")

	hash := uint32(1)<<24 | uint32(2)<<16 | uint32(3)<<8 | uint32(5)
	assert.Equal(t, hash%3, PartitionHashBytes(b, 3))
}
