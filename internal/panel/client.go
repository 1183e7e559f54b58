package panel

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"subpage/internal/logging"
	"subpage/internal/subscription"
)

// Client инкапсулирует HTTP-взаимодействия с панелью, которая отдаёт подписки.
type Client struct {
	baseURL    *url.URL
	subPath    string
	httpClient *http.Client
	logger     *logging.Logger
}

// Options позволяет переопределить зависимости клиента.
type Options struct {
	SubPath    string
	HTTPClient *http.Client
	Logger     *logging.Logger
}

const (
	defaultTimeout = 15 * time.Second
	defaultSubPath = "/api/sub/"
	maxBodyBytes   = 8 << 20
)

// errBodyTooLarge возвращается, если тело ответа панели больше maxBodyBytes.
var errBodyTooLarge = fmt.Errorf("response body exceeds %d bytes", maxBodyBytes)

// hopHeaders не пересылаются в панель.
var hopHeaders = map[string]struct{}{
	"Connection":          {},
	"Keep-Alive":          {},
	"Proxy-Authenticate":  {},
	"Proxy-Authorization": {},
	"Te":                  {},
	"Trailer":             {},
	"Transfer-Encoding":   {},
	"Upgrade":             {},
	"Host":                {},
	"Content-Length":      {},
	"Accept-Encoding":     {},
}

// New создаёт новый клиент панели.
func New(baseURL string, opts Options) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL is empty")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse baseURL: %w", err)
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	subPath := opts.SubPath
	if subPath == "" {
		subPath = defaultSubPath
	}
	return &Client{baseURL: parsed, subPath: subPath, httpClient: client, logger: opts.Logger}, nil
}

// Error описывает проблему при запросах к панели.
type Error struct {
	Op     string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return "panel client error"
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Response содержит ответ панели с уже распакованным телом.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Fetch запрашивает подписку по short id, пересылая заголовки исходного запроса.
func (c *Client) Fetch(ctx context.Context, shortID string, header http.Header) (*Response, error) {
	const op = "Fetch"
	shortID = strings.TrimSpace(shortID)
	if shortID == "" {
		return nil, &Error{Op: op, Err: errors.New("short id is empty")}
	}
	full := c.baseURL.JoinPath(c.subPath, shortID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, full.String(), nil)
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	copyRequestHeaders(req.Header, header)
	// С явным Accept-Encoding транспорт не распаковывает ответ сам, это делает readBody.
	req.Header.Set("Accept-Encoding", "gzip")
	if c.logger != nil {
		c.logger.Debugf("panel request %s", full.Redacted())
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return nil, &Error{Op: op, Status: resp.StatusCode, Err: err}
	}
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header.Clone(), Body: body}, nil
}

// FetchInfo запрашивает подписку и разбирает сведения о ней для страницы.
func (c *Client) FetchInfo(ctx context.Context, shortID string, header http.Header) (*subscription.Info, error) {
	const op = "FetchInfo"
	resp, err := c.Fetch(ctx, shortID, header)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	info, err := subscription.Decode(resp.Body)
	if err != nil {
		return nil, &Error{Op: op, Status: resp.StatusCode, Err: err}
	}
	return info, nil
}

// Info возвращает сведения о подписке, пригодные для страницы: ответ уже получен через Fetch.
func Info(resp *Response) *subscription.Info {
	if resp == nil || resp.StatusCode != http.StatusOK {
		return nil
	}
	info, err := subscription.Decode(resp.Body)
	if err != nil {
		return nil
	}
	return info
}

func readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("open gzip body: %w", err)
		}
		defer gz.Close()
		reader = gz
		resp.Header.Del("Content-Encoding")
		resp.Header.Del("Content-Length")
	}
	body, err := io.ReadAll(io.LimitReader(reader, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxBodyBytes {
		return nil, errBodyTooLarge
	}
	return body, nil
}

func copyRequestHeaders(dst, src http.Header) {
	for name, values := range src {
		if _, skip := hopHeaders[http.CanonicalHeaderKey(name)]; skip {
			continue
		}
		for _, value := range values {
			dst.Add(name, value)
		}
	}
}
