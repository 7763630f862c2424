package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlash_RoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	setFlash(rec, flashOK, "Usuário adicionado: a:b")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()

	kind, msg := popFlash(rec, req)
	assert.Equal(t, flashOK, kind)
	assert.Equal(t, "Usuário adicionado: a:b", msg)

	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Less(t, cleared[0].MaxAge, 0)
}

func TestFlash_NoneOrCorrupt(t *testing.T) {
	kind, msg := popFlash(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, kind)
	assert.Empty(t, msg)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: flashCookieName, Value: "%%%"})
	kind, msg = popFlash(httptest.NewRecorder(), req)
	assert.Empty(t, kind)
	assert.Empty(t, msg)
}
