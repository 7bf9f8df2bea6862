package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pool-sniffer-sol/internal/logic/core"
	"pool-sniffer-sol/internal/types"
	"pool-sniffer-sol/pkg/logger"
)

const (
	DefaultSolSnifferEndpoint = "https://solsniffer.com/api/v2/token"
	DefaultSolSnifferAgent    = "SolSniffer-Integration/1.0.0"
	DefaultSolSnifferTimeout  = 30 * time.Second

	maxErrorBodyBytes = 512
	maxBodyBytes      = 4 << 20
)

// AnalyzeErrorKind 风控查询失败类别，用于降级视图的说明文字和指标标签
type AnalyzeErrorKind string

const (
	KindInvalidAddress AnalyzeErrorKind = "invalid_address"
	KindNetwork        AnalyzeErrorKind = "network"
	KindStatus         AnalyzeErrorKind = "status"
	KindMalformed      AnalyzeErrorKind = "malformed"
	KindDisabled       AnalyzeErrorKind = "disabled"
)

type AnalyzeError struct {
	Kind   AnalyzeErrorKind
	Status int // 仅 KindStatus 有值
	Err    error
}

func (e *AnalyzeError) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("solsniffer %s (%d): %v", e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("solsniffer %s: %v", e.Kind, e.Err)
}

func (e *AnalyzeError) Unwrap() error {
	return e.Err
}

// FailureNote 降级视图中唯一一条 audit risk
func FailureNote(err error) string {
	var ae *AnalyzeError
	if !errors.As(err, &ae) {
		return "Unable to analyze - API error"
	}
	switch ae.Kind {
	case KindInvalidAddress:
		return "Unable to analyze - invalid address"
	case KindNetwork:
		return "Unable to analyze - network error"
	case KindStatus:
		return fmt.Sprintf("Unable to analyze - API error (HTTP %d)", ae.Status)
	case KindMalformed:
		return "Unable to analyze - malformed response"
	case KindDisabled:
		return "Unable to analyze - API key not configured"
	default:
		return "Unable to analyze - API error"
	}
}

// ErrorKind 用于指标标签，非 AnalyzeError 归为 unknown
func ErrorKind(err error) string {
	var ae *AnalyzeError
	if errors.As(err, &ae) {
		return string(ae.Kind)
	}
	return "unknown"
}

// errAnalyzerDisabled 未配置 API key 时所有查询直接走降级视图
var errAnalyzerDisabled = errors.New("solsniffer api key not configured")

// DisabledAnalyzer 未配置凭证时的占位实现
type DisabledAnalyzer struct{}

func (DisabledAnalyzer) AnalyzeToken(context.Context, string) (*core.TokenView, error) {
	return nil, &AnalyzeError{Kind: KindDisabled, Err: errAnalyzerDisabled}
}

type SolSnifferOption struct {
	Endpoint  string
	APIKey    string
	UserAgent string
	Timeout   time.Duration
}

// SolSnifferClient SolSniffer v2 单 token 风控查询
type SolSnifferClient struct {
	endpoint  string
	apiKey    string
	userAgent string
	hc        *http.Client
}

func NewSolSnifferClient(opt SolSnifferOption) (*SolSnifferClient, error) {
	if opt.APIKey == "" {
		return nil, errors.New("solsniffer api key is empty")
	}
	if opt.Endpoint == "" {
		opt.Endpoint = DefaultSolSnifferEndpoint
	}
	if opt.UserAgent == "" {
		opt.UserAgent = DefaultSolSnifferAgent
	}
	if opt.Timeout <= 0 {
		opt.Timeout = DefaultSolSnifferTimeout
	}
	return &SolSnifferClient{
		endpoint:  strings.TrimRight(opt.Endpoint, "/"),
		apiKey:    opt.APIKey,
		userAgent: opt.UserAgent,
		hc:        &http.Client{Timeout: opt.Timeout},
	}, nil
}

// AnalyzeToken GET {endpoint}/{mint}，返回的错误总是 *AnalyzeError
func (c *SolSnifferClient) AnalyzeToken(ctx context.Context, address string) (*core.TokenView, error) {
	if !types.IsValidPubkey(address) {
		return nil, &AnalyzeError{Kind: KindInvalidAddress, Err: fmt.Errorf("not a base58 pubkey: %q", address)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/"+address, nil)
	if err != nil {
		return nil, &AnalyzeError{Kind: KindNetwork, Err: err}
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &AnalyzeError{Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &AnalyzeError{
			Kind:   KindStatus,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("%s - %s", resp.Status, strings.TrimSpace(string(body))),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &AnalyzeError{Kind: KindNetwork, Err: fmt.Errorf("read body: %w", err)}
	}
	logger.Debugf("[SolSniffer:AnalyzeToken] %s 响应 %d 字节, 耗时 %v", address, len(body), time.Since(start))

	view, err := ParseTokenAnalysis(body)
	if err != nil {
		return nil, &AnalyzeError{Kind: KindMalformed, Err: err}
	}
	return view, nil
}
