package jwglxt

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fakeToken = "token-5f2a"
const fakeSessionCookie = "JSESSIONID"

// fakePortal mimics the four endpoints of a jwglxt deployment closely
// enough to exercise the whole login ceremony, including the rotating
// RSA key and the session cookie.
type fakePortal struct {
	key       *rsa.PrivateKey
	accountId string
	password  string

	captcha      bool      // serve a captcha input on the login page
	customTip    string    // overrides the bad-credential tip
	failStatus   int       // non-zero: every endpoint returns this status
	delay        time.Duration
	scheduleBody string // overrides the default schedule payload
}

func newFakePortal(t testing.TB) *fakePortal {
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	return &fakePortal{
		key:       key,
		accountId: "20240001",
		password:  "hunter2",
	}
}

const defaultScheduleBody = `{
	"xsxx": {"XH": "20240001", "XM": "张三"},
	"kbList": [
		{
			"kch_id": "MATH101",
			"kcmc": "高等数学",
			"xm": "李老师",
			"jxbmc": "数学2401",
			"xqj": "3",
			"jc": "1-2节",
			"zcd": "1-8周,11,11周",
			"xqmc": "主校区",
			"cdmc": "教1-101"
		},
		{
			"kch_id": "PE01",
			"kcmc": "体育",
			"xm": "王老师",
			"jxbmc": null,
			"xqj": "星期三",
			"jc": "5-6",
			"zcd": "9-3",
			"xqmc": null,
			"cdmc": "操场"
		}
	]
}`

func (p *fakePortal) loginPage() string {
	captcha := ""
	if p.captcha {
		captcha = `<input type="text" id="yzm" name="yzm"/>`
	}
	return fmt.Sprintf(`<html><body><form id="loginForm">
		<input type="hidden" id="csrftoken" name="csrftoken" value="%s"/>
		%s
	</form></body></html>`, fakeToken, captcha)
}

func (p *fakePortal) handler(t testing.TB) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /xtgl/login_slogin.html", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, p.loginPage())
	})

	mux.HandleFunc("GET /xtgl/login_getPublicKey.html", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"modulus":  base64.StdEncoding.EncodeToString(p.key.N.Bytes()),
			"exponent": base64.StdEncoding.EncodeToString(big.NewInt(int64(p.key.E)).Bytes()),
		})
	})

	mux.HandleFunc("POST /xtgl/login_slogin.html", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, fakeToken, r.PostFormValue("csrftoken"))

		ciphertext, err := base64.StdEncoding.DecodeString(r.PostFormValue("mm"))
		assert.NoError(t, err)
		plaintext, err := rsa.DecryptPKCS1v15(nil, p.key, ciphertext)
		assert.NoError(t, err)

		if p.customTip != "" {
			fmt.Fprintf(w, `<html><p id="tips">%s</p></html>`, p.customTip)
			return
		}
		if r.PostFormValue("yhm") != p.accountId || string(plaintext) != p.password {
			fmt.Fprint(w, `<html><p id="tips"><b>用户名或密码</b>错误!</p></html>`)
			return
		}

		http.SetCookie(w, &http.Cookie{Name: fakeSessionCookie, Value: "session-ok", Path: "/"})
		fmt.Fprint(w, `<html><body>首页</body></html>`)
	})

	mux.HandleFunc("POST /kbcx/xskbcx_cxXsKb.html", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(fakeSessionCookie)
		if err != nil || cookie.Value != "session-ok" {
			fmt.Fprint(w, `<html><title>用户登录</title></html>`)
			return
		}
		assert.Equal(t, "N2151", r.URL.Query().Get("gnmkdm"))

		body := p.scheduleBody
		if body == "" {
			body = defaultScheduleBody
		}
		w.Header().Set("content-type", "application/json")
		fmt.Fprint(w, body)
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p.delay > 0 {
			time.Sleep(p.delay)
		}
		if p.failStatus != 0 {
			w.WriteHeader(p.failStatus)
			return
		}
		mux.ServeHTTP(w, r)
	})
}

func (p *fakePortal) serve(t *testing.T) *httptest.Server {
	server := httptest.NewServer(p.handler(t))
	t.Cleanup(server.Close)
	return server
}

// newMaintenancePage serves a login page with no csrf token on every
// route, like the portal does during maintenance windows.
func newMaintenancePage(t *testing.T) string {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><h1>系统维护中，请稍后再试</h1></body></html>`)
	}))
	t.Cleanup(server.Close)
	return server.URL
}
