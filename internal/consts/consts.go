package consts

const (
	// NativeDecimals SOL / WSOL 精度
	NativeDecimals uint8 = 9

	// DefaultTokenDecimals 风控接口缺省或失败时采用的精度
	DefaultTokenDecimals uint8 = 9

	// DefaultOutboxCapacity 合流通道的默认容量
	DefaultOutboxCapacity = 50
)
