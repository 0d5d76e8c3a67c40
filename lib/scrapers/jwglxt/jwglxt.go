package jwglxt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"strings"
	"time"

	"kebiao-backend/lib/restyutil"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

const (
	loginPath     = "/xtgl/login_slogin.html"
	publicKeyPath = "/xtgl/login_getPublicKey.html"
	schedulePath  = "/kbcx/xskbcx_cxXsKb.html"

	// module selector the portal requires on the schedule endpoint
	scheduleModule = "N2151"
)

// the portal only talks to browsers it recognizes
const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/56.0.2924.87 Safari/537.36"

// markers embedded in served markup, see ExtractTips/HasCaptcha
const (
	badCredentialTip = "用户名或密码"
	loggedOutMarker  = "用户登录"
)

var (
	ErrBadCredentials    = errors.New("portal rejected the username or password")
	ErrCaptchaRequired   = errors.New("login page demands a captcha")
	ErrLoginRejected     = errors.New("portal rejected the login")
	ErrNotAuthenticated  = errors.New("portal bounced the request back to the login page")
	ErrMissingCourseList = errors.New("schedule response is missing the course list")
)

type Client struct {
	http *resty.Client
}

type ClientOptions struct {
	// base url of the jwglxt deployment, e.g.
	// "http://jwglxt.example.edu.cn/jwglxt"
	BaseUrl string
	// per-request deadline, defaults to 5s
	Timeout time.Duration
	// optional request/response capture for debugging
	InstrumentOutput restyutil.InstrumentOutput
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		return nil, fmt.Errorf("empty base url")
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 5
	}
	baseUrl := strings.TrimRight(opts.BaseUrl, "/")

	client := resty.New()
	client.SetBaseURL(baseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.SetTimeout(opts.Timeout)
	client.SetHeader("user-agent", userAgent)
	client.SetHeader("referer", baseUrl+loginPath)

	restyutil.InstrumentClient(client, tracer, opts.InstrumentOutput)

	return &Client{http: client}, nil
}

// Login drives the portal's login ceremony: fetch the login page for
// the CSRF token, fetch the rotating public key, then submit the
// encrypted credentials. A nil return means the session cookies now
// carry an authenticated session.
func (c *Client) Login(ctx context.Context, accountId, password string) error {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		Get(loginPath)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch login page")
		return fmt.Errorf("fetch login page: %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		span.SetStatus(codes.Error, "unexpected login page status")
		return fmt.Errorf("login page returned status %d", res.StatusCode())
	}

	page := res.String()
	if HasCaptcha(page) {
		span.SetStatus(codes.Error, ErrCaptchaRequired.Error())
		return ErrCaptchaRequired
	}
	token, err := ExtractCSRFToken(page)
	if err != nil {
		span.SetStatus(codes.Error, "failed to find csrf token")
		return err
	}

	res, err = c.http.R().
		SetContext(ctx).
		Get(publicKeyPath)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch public key")
		return fmt.Errorf("fetch public key: %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		span.SetStatus(codes.Error, "unexpected public key status")
		return fmt.Errorf("public key endpoint returned status %d", res.StatusCode())
	}

	var key struct {
		Modulus  string `json:"modulus"`
		Exponent string `json:"exponent"`
	}
	if err := json.Unmarshal(res.Body(), &key); err != nil {
		span.SetStatus(codes.Error, "failed to parse public key response")
		return fmt.Errorf("parse public key response: %w", err)
	}
	if key.Modulus == "" || key.Exponent == "" {
		span.SetStatus(codes.Error, "public key response missing fields")
		return fmt.Errorf("public key response is missing modulus or exponent")
	}

	encrypted, err := EncryptPassword(password, key.Modulus, key.Exponent)
	if err != nil {
		span.SetStatus(codes.Error, "failed to encrypt password")
		return err
	}

	res, err = c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"csrftoken": token,
			"yhm":       accountId,
			"mm":        encrypted,
		}).
		Post(loginPath)
	if err != nil {
		span.SetStatus(codes.Error, "failed to submit login")
		return fmt.Errorf("submit login: %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		span.SetStatus(codes.Error, "unexpected login submission status")
		return fmt.Errorf("login submission returned status %d", res.StatusCode())
	}

	tip := ExtractTips(res.String())
	if strings.Contains(tip, badCredentialTip) {
		span.SetStatus(codes.Error, ErrBadCredentials.Error())
		return ErrBadCredentials
	}
	if tip != "" {
		span.SetStatus(codes.Error, "portal rejected login with a tip")
		return fmt.Errorf("%w: %s", ErrLoginRejected, tip)
	}
	return nil
}

// FetchSchedule queries the weekly schedule of the logged-in student
// for one (year, term). Requires a prior successful Login on the same
// client, the portal tracks the session through cookies.
func (c *Client) FetchSchedule(ctx context.Context, year, term int) (SchedulePayload, error) {
	ctx, span := tracer.Start(ctx, "client:FetchSchedule")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("gnmkdm", scheduleModule).
		SetFormData(map[string]string{
			"xnm": strconv.Itoa(year),
			"xqm": strconv.Itoa(TermSelector(term)),
		}).
		Post(schedulePath)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch schedule")
		return SchedulePayload{}, fmt.Errorf("fetch schedule: %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		span.SetStatus(codes.Error, "unexpected schedule status")
		return SchedulePayload{}, fmt.Errorf("schedule endpoint returned status %d", res.StatusCode())
	}

	body := res.Body()
	// an expired or missing session gets the login page served back
	// instead of JSON
	if strings.Contains(string(body), loggedOutMarker) {
		span.SetStatus(codes.Error, ErrNotAuthenticated.Error())
		return SchedulePayload{}, ErrNotAuthenticated
	}

	payload, err := parseSchedulePayload(body)
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse schedule response")
		return SchedulePayload{}, fmt.Errorf("parse schedule response: %w", err)
	}
	return payload, nil
}
