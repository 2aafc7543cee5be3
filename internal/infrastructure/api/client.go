package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"startupconnect/internal/domain"
	"startupconnect/internal/domain/entity"
	"startupconnect/internal/session"
	"startupconnect/pkg/errcodes"
	"startupconnect/pkg/httpx"
	"startupconnect/pkg/logx"
)

var (
	json     = jsoniter.ConfigCompatibleWithStandardLibrary         //nolint:gochecknoglobals // skip
	validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals // skip
)

// Client is the shared base of every resource client. One operation issues
// exactly one HTTP request; there are no retries and no idempotency keys, so
// re-submitting an action creates duplicate server-side records.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   session.Store
}

func NewClient(
	baseURL string,
	sessions session.Store,
	httpClient *http.Client,
) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		sessions:   sessions,
	}
}

// NewHTTPClient builds the transport stack the resource clients run on:
// bearer auth outermost (so the logging dump sees the masked header), then
// request/response logging.
func NewHTTPClient(sessions session.Store, logFieldMaxLen int) *http.Client {
	return &http.Client{
		Transport: httpx.NewAuthBearerRoundTripper(
			httpx.NewLoggingRoundTripper(
				http.DefaultTransport,
				httpx.WithLogFieldMaxLen(logFieldMaxLen),
				httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
			),
			sessions,
		),
	}
}

// requireSession fails with a typed error BEFORE any network I/O when no
// session exists. Operations that allow anonymous access skip it.
func (c *Client) requireSession() (entity.Session, error) {
	sess, ok := c.sessions.Current()
	if !ok {
		return entity.Session{}, domain.NewError(errcodes.NotAuthenticated, "you must be logged in")
	}

	return sess, nil
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, dest any) error {
	return c.do(ctx, http.MethodGet, endpoint, query, nil, dest)
}

func (c *Client) post(ctx context.Context, endpoint string, request, dest any) error {
	return c.do(ctx, http.MethodPost, endpoint, nil, request, dest)
}

func (c *Client) put(ctx context.Context, endpoint string, query url.Values, request, dest any) error {
	return c.do(ctx, http.MethodPut, endpoint, query, request, dest)
}

func (c *Client) delete(ctx context.Context, endpoint string) error {
	return c.do(ctx, http.MethodDelete, endpoint, nil, nil, nil)
}

func (c *Client) do(
	ctx context.Context,
	httpMethod string,
	endpoint string,
	query url.Values,
	request any,
	dest any,
) error {
	payload := io.Reader(http.NoBody)

	if request != nil {
		b, err := json.Marshal(request)
		if err != nil {
			return fmt.Errorf("json.Marshal: %w", err)
		}

		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, httpMethod, c.endpointURL(endpoint, query), payload)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	if request != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WrapError(err, errcodes.BackendUnavailable, "backend request failed")
	}

	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if dest == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return domain.WrapError(err, errcodes.DecodeError, "unexpected response shape")
	}

	if err := validateResponse(ctx, dest); err != nil {
		return domain.WrapError(err, errcodes.DecodeError, "response failed validation")
	}

	return nil
}

// validateResponse runs struct validation on the decoded payload. List
// endpoints decode into slices, which the validator cannot take whole, so
// elements are checked one by one.
func validateResponse(ctx context.Context, dest any) error {
	v := reflect.Indirect(reflect.ValueOf(dest))

	switch v.Kind() {
	case reflect.Struct:
		return validate.StructCtx(ctx, v.Interface())
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			elem := reflect.Indirect(v.Index(i))
			if elem.Kind() != reflect.Struct {
				continue
			}

			if err := validate.StructCtx(ctx, elem.Interface()); err != nil {
				return err
			}
		}
	}

	return nil
}

func (c *Client) endpointURL(endpoint string, query url.Values) string {
	u := c.baseURL + endpoint

	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	return u
}

// errorBody is the backend error envelope. Both shapes observed in the wild
// are accepted: {"code","message"} and a bare {"message"}.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	message := fallbackMessage(resp.StatusCode)
	code := statusCode(resp.StatusCode)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(raw) > 0 {
		var body errorBody
		if err := json.Unmarshal(raw, &body); err == nil {
			if body.Message != "" {
				message = body.Message
			}
			if body.Code != "" {
				code = failure.ErrorCode(body.Code)
			}
		}
	}

	return domain.NewError(code, message)
}

func statusCode(httpStatus int) failure.ErrorCode {
	switch httpStatus {
	case http.StatusBadRequest:
		return errcodes.ValidationError
	case http.StatusUnauthorized:
		return errcodes.NotAuthenticated
	case http.StatusForbidden:
		return errcodes.Forbidden
	case http.StatusNotFound:
		return errcodes.NotFound
	default:
		return errcodes.InternalServerError
	}
}

func fallbackMessage(httpStatus int) string {
	switch httpStatus {
	case http.StatusUnauthorized, http.StatusForbidden:
		return "you must be logged in to perform this action"
	default:
		return fmt.Sprintf("request failed with status %d", httpStatus)
	}
}
