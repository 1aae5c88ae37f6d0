package web

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHistoryPage(t *testing.T) {
	s := newTestServer(t, nil, nil)
	a := upload(t, s, plantA)
	b := upload(t, s, plantB)

	body := get(s, "/").Body.String()
	for _, want := range []string{
		fmt.Sprintf(`href="/history/%d"`, a.FileID),
		fmt.Sprintf(`href="/compare?a=%d&amp;b=%d"`, a.FileID, b.FileID),
		"Show favorites (0)",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("history page missing %q", want)
		}
	}

	rec := serve(s, httptest.NewRequest(http.MethodPost, fmt.Sprintf("/favorites/%d", b.FileID), nil))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("favorite toggle = %d %q", rec.Code, rec.Header().Get("Location"))
	}

	body = get(s, "/?favorites=1").Body.String()
	if strings.Contains(body, fmt.Sprintf(`href="/history/%d"`, a.FileID)) {
		t.Error("favorites view lists an unstarred upload")
	}
	if !strings.Contains(body, "★") {
		t.Error("starred upload not marked")
	}
}

func TestUploadPage_Redirects(t *testing.T) {
	s := newTestServer(t, nil, nil)

	rec := serve(s, multipartRequest(t, "/upload", map[string]string{"file": plantA}))
	if rec.Code != http.StatusSeeOther || !strings.HasPrefix(rec.Header().Get("Location"), "/history/") {
		t.Fatalf("upload = %d %q", rec.Code, rec.Header().Get("Location"))
	}

	bad := serve(s, multipartRequest(t, "/upload", map[string]string{"file": "nope\n"}))
	if bad.Code != http.StatusBadRequest || !strings.Contains(bad.Body.String(), `class="alert"`) {
		t.Errorf("bad upload = %d: %s", bad.Code, bad.Body)
	}
}

func TestReportPage(t *testing.T) {
	s := newTestServer(t, nil, nil)
	ds := upload(t, s, plantA)
	base := fmt.Sprintf("/history/%d", ds.FileID)

	body := get(s, base).Body.String()
	for _, want := range []string{
		"Total equipment: 3",
		base + "/chart.png?metric=types",
		// Toggling a type off from the full selection keeps the other one.
		`href="` + base + `?types=Valve"`,
		`href="` + base + `?hide=type"`,
		`href="` + base + `?types="`,
		">Clear</a>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("report page missing %q", want)
		}
	}

	body = get(s, base+"?types=").Body.String()
	for _, want := range []string{"No records match", ">Select All</a>", `href="` + base + `"`} {
		if !strings.Contains(body, want) {
			t.Errorf("cleared report page missing %q", want)
		}
	}
}

func TestReportPage_NotFound(t *testing.T) {
	s := newTestServer(t, nil, nil)
	rec := get(s, "/history/77")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "HIST001") || !strings.Contains(rec.Body.String(), "<!DOCTYPE html>") {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestComparePage(t *testing.T) {
	s := newTestServer(t, nil, nil)
	a := upload(t, s, plantA)
	b := upload(t, s, plantB)

	body := get(s, fmt.Sprintf("/compare?a=%d&b=%d", a.FileID, b.FileID)).Body.String()
	for _, want := range []string{"Only in A: 2", "Pump-3", `class="delta-up">4.50`} {
		if !strings.Contains(body, want) {
			t.Errorf("compare page missing %q", want)
		}
	}
}
