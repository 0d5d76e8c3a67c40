package jwglxt

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, portal *fakePortal) *Client {
	server := portal.serve(t)
	client, err := NewClient(ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)
	return client
}

func TestClientLoginAndFetchSchedule(t *testing.T) {
	portal := newFakePortal(t)
	client := newTestClient(t, portal)
	ctx := context.Background()

	err := client.Login(ctx, portal.accountId, portal.password)
	require.NoError(t, err)

	payload, err := client.FetchSchedule(ctx, 2024, 1)
	require.NoError(t, err)

	require.Equal(t, "20240001", payload.Student.Id)
	require.Equal(t, "张三", payload.Student.Name)
	require.Len(t, payload.Courses, 2)

	first := payload.Courses[0]
	require.Equal(t, "MATH101", first.CourseId)
	require.Equal(t, "高等数学", first.Title)
	require.Equal(t, "3", first.WeekdayText())
	require.Equal(t, "1-2节", first.Sessions)

	second := payload.Courses[1]
	require.Equal(t, "星期三", second.WeekdayText())
	require.Empty(t, second.ClassName)
}

func TestClientLoginBadCredentials(t *testing.T) {
	portal := newFakePortal(t)
	client := newTestClient(t, portal)

	err := client.Login(context.Background(), portal.accountId, "wrong-password")
	require.ErrorIs(t, err, ErrBadCredentials)
}

func TestClientLoginCaptchaGate(t *testing.T) {
	portal := newFakePortal(t)
	portal.captcha = true
	client := newTestClient(t, portal)

	err := client.Login(context.Background(), portal.accountId, portal.password)
	require.ErrorIs(t, err, ErrCaptchaRequired)
}

func TestClientLoginUnknownTip(t *testing.T) {
	portal := newFakePortal(t)
	portal.customTip = "该账号已被锁定，请联系管理员"
	client := newTestClient(t, portal)

	err := client.Login(context.Background(), portal.accountId, portal.password)
	require.ErrorIs(t, err, ErrLoginRejected)
	require.NotErrorIs(t, err, ErrBadCredentials)
}

func TestClientLoginServerError(t *testing.T) {
	portal := newFakePortal(t)
	portal.failStatus = http.StatusInternalServerError
	client := newTestClient(t, portal)

	err := client.Login(context.Background(), portal.accountId, portal.password)
	require.Error(t, err)
}

func TestClientLoginMissingToken(t *testing.T) {
	server := newMaintenancePage(t)
	client, err := NewClient(ClientOptions{BaseUrl: server})
	require.NoError(t, err)

	err = client.Login(context.Background(), "x", "y")
	require.ErrorIs(t, err, ErrTokenNotFound)
}

func TestClientFetchScheduleWithoutLogin(t *testing.T) {
	portal := newFakePortal(t)
	client := newTestClient(t, portal)

	_, err := client.FetchSchedule(context.Background(), 2024, 1)
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestClientFetchScheduleMissingCourseList(t *testing.T) {
	portal := newFakePortal(t)
	portal.scheduleBody = `{"xsxx": {"XH": "20240001"}}`
	client := newTestClient(t, portal)
	ctx := context.Background()

	require.NoError(t, client.Login(ctx, portal.accountId, portal.password))
	_, err := client.FetchSchedule(ctx, 2024, 1)
	require.ErrorIs(t, err, ErrMissingCourseList)
}

func TestClientFetchScheduleNullCourseList(t *testing.T) {
	portal := newFakePortal(t)
	portal.scheduleBody = `{"kbList": null, "xsxx": {"XH": "20240001", "XM": "张三"}}`
	client := newTestClient(t, portal)
	ctx := context.Background()

	require.NoError(t, client.Login(ctx, portal.accountId, portal.password))
	payload, err := client.FetchSchedule(ctx, 2024, 1)
	require.NoError(t, err)
	require.Empty(t, payload.Courses)
}
