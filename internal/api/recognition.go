package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"guild-tracker/internal/config"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

var (
	ErrRecognitionDisabled = errors.New("text recognition is not configured")
	ErrUnsupportedImage    = errors.New("unsupported image format")
	ErrRateLimited         = errors.New("text recognition quota exhausted")
)

// RecognitionClient sends screenshots to an OCR.space compatible endpoint
// and returns the recognised text.
type RecognitionClient struct {
	url         string
	apiKey      string
	language    string
	client      *fasthttp.Client
	logger      zerolog.Logger
	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo
}

type RateLimitInfo struct {
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`

	// seconds until reset
	Reset int `json:"reset"`

	UpdatedAt time.Time `json:"updated_at"`
}

func NewRecognitionClient(cfg *config.Config, logger zerolog.Logger) *RecognitionClient {
	return &RecognitionClient{
		url:      cfg.OCRAPIURL,
		apiKey:   cfg.OCRAPIKey,
		language: cfg.OCRLanguage,
		client: &fasthttp.Client{
			MaxConnsPerHost:     16,
			ReadTimeout:         30 * time.Second,
			WriteTimeout:        30 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger: logger,
	}
}

func (c *RecognitionClient) Enabled() bool {
	return c.url != ""
}

func (c *RecognitionClient) GetRateLimitInfo() RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

func (c *RecognitionClient) updateRateLimit(resp *fasthttp.Response) {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	if limit := string(resp.Header.Peek("X-Ratelimit-Limit")); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			c.rateLimit.Limit = val
		}
	}
	if remaining := string(resp.Header.Peek("X-Ratelimit-Remaining")); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			c.rateLimit.Remaining = val
		}
	}
	if reset := string(resp.Header.Peek("X-Ratelimit-Reset")); reset != "" {
		if val, err := strconv.Atoi(reset); err == nil {
			c.rateLimit.Reset = val
		}
	}
	c.rateLimit.UpdatedAt = time.Now()
}

// checkRateLimit refuses to send while the last response reported an
// exhausted quota whose reset window has not passed yet.
func (c *RecognitionClient) checkRateLimit() error {
	info := c.GetRateLimitInfo()
	if info.Limit == 0 || info.Remaining > 0 {
		return nil
	}
	wait := time.Until(info.UpdatedAt.Add(time.Duration(info.Reset) * time.Second))
	if wait <= 0 {
		return nil
	}
	return fmt.Errorf("%w: retry in %s", ErrRateLimited, wait.Round(time.Second))
}

// Recognize returns the text found in image, one recognised line per line.
func (c *RecognitionClient) Recognize(ctx context.Context, image []byte) (string, error) {
	if !c.Enabled() {
		return "", ErrRecognitionDisabled
	}
	if err := c.checkRateLimit(); err != nil {
		return "", err
	}

	mtype := mimetype.Detect(image)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, mtype.String())
	}

	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)
	args.Set("base64Image", "data:"+mtype.String()+";base64,"+base64.StdEncoding.EncodeToString(image))
	args.Set("language", c.language)
	args.Set("isTable", "true")
	args.Set("OCREngine", "2")

	start := time.Now()
	result, err := doRequest[RecognitionResponse](ctx, c, args.QueryString())
	if err != nil {
		return "", err
	}
	if result.IsErroredOnProcessing {
		return "", fmt.Errorf("recognition failed: %s", result.errorMessage())
	}

	texts := make([]string, 0, len(result.ParsedResults))
	for _, r := range result.ParsedResults {
		texts = append(texts, r.ParsedText)
	}
	text := strings.Join(texts, "\n")

	limit := c.GetRateLimitInfo()
	c.logger.Debug().
		Str("mime", mtype.String()).
		Int("bytes", len(image)).
		Int("chars", len(text)).
		Int("quota_remaining", limit.Remaining).
		Dur("took", time.Since(start)).
		Msg("image recognised")
	return text, nil
}

func doRequest[T any](ctx context.Context, client *RecognitionClient, body []byte) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(client.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/x-www-form-urlencoded")
	if client.apiKey != "" {
		req.Header.Set("apikey", client.apiKey)
	}
	req.SetBody(body)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	client.updateRateLimit(resp)

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("API error: %d", resp.StatusCode())
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type RecognitionResponse struct {
	ParsedResults         []ParsedResult  `json:"ParsedResults"`
	OCRExitCode           int             `json:"OCRExitCode"`
	IsErroredOnProcessing bool            `json:"IsErroredOnProcessing"`
	ErrorMessage          json.RawMessage `json:"ErrorMessage"`
}

type ParsedResult struct {
	ParsedText        string `json:"ParsedText"`
	FileParseExitCode int    `json:"FileParseExitCode"`
	ErrorMessage      string `json:"ErrorMessage"`
}

// errorMessage flattens ErrorMessage, which the service sends either as a
// string or as a list of strings.
func (r RecognitionResponse) errorMessage() string {
	var list []string
	if err := json.Unmarshal(r.ErrorMessage, &list); err == nil {
		return strings.Join(list, "; ")
	}
	var single string
	if err := json.Unmarshal(r.ErrorMessage, &single); err == nil {
		return single
	}
	return "unknown error"
}
