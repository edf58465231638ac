package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"flowrelay/pkg/logger"
	"flowrelay/pkg/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...logger.Field)    {}
func (nopLogger) Error(string, ...logger.Field)   {}
func (nopLogger) Warning(string, ...logger.Field) {}

func TestAuthorizedCallCarriesBearer(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(models.User{ID: 1})
	}))
	defer srv.Close()

	cli := New(srv.URL, nopLogger{})
	if _, err := cli.Bind(StaticToken("tok")).Auth().CurrentUser(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("Authorization = %q, want Bearer tok", gotAuth)
	}
}

func TestUnauthenticatedEndpointsSendNoBearer(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))
	defer srv.Close()

	cli := New(srv.URL, nopLogger{})
	_, err := cli.Bind(StaticToken("tok")).Auth().Signup(context.Background(), models.SignupRequest{Email: "a@b.c"})
	if err != nil {
		t.Fatal(err)
	}
	if gotAuth != "" {
		t.Fatalf("signup sent Authorization %q, want none", gotAuth)
	}
}

func TestLoginSpeaksPasswordForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("content type = %q", ct)
		}
		if r.FormValue("username") != "a@b.c" || r.FormValue("password") != "pw" {
			t.Errorf("form = %v", r.Form)
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok"})
	}))
	defer srv.Close()

	token, err := New(srv.URL, nopLogger{}).Bind(nil).Auth().Login(context.Background(), "a@b.c", "pw")
	if err != nil {
		t.Fatal(err)
	}
	if token != "tok" {
		t.Fatalf("token = %q", token)
	}
}

func TestDriverStatusTravelsAsQueryParam(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	cli := New(srv.URL, nopLogger{}).Bind(StaticToken("tok"))
	if err := cli.Driver().UpdateStatus(context.Background(), models.AvailabilityAvailable); err != nil {
		t.Fatal(err)
	}
	if gotQuery != "status=available" {
		t.Fatalf("query = %q, want status=available", gotQuery)
	}
}

func TestDecodeErrorReadsDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Driver profile not found"})
	}))
	defer srv.Close()

	_, err := New(srv.URL, nopLogger{}).Bind(StaticToken("tok")).Driver().Profile(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	if !IsNotFound(err) {
		t.Fatalf("IsNotFound(%v) = false, want true", err)
	}
	if err.Error() != "Driver profile not found" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestIsUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
	}))
	defer srv.Close()

	_, err := New(srv.URL, nopLogger{}).Bind(StaticToken("stale")).Auth().CurrentUser(context.Background())
	if !IsUnauthorized(err) {
		t.Fatalf("IsUnauthorized(%v) = false, want true", err)
	}
}

func TestDenialClassification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want DenialReason
	}{
		{"structured code wins", &Error{Status: 403, Code: "account_suspended", Message: "your account is pending review"}, ReasonAccountSuspended},
		{"pending substring", &Error{Status: 403, Message: "Account pending admin approval."}, ReasonPendingApproval},
		{"rejected substring", &Error{Status: 403, Message: "Your account was rejected."}, ReasonAccountRejected},
		{"suspended substring", &Error{Status: 403, Message: "Account suspended by admin."}, ReasonAccountSuspended},
		{"verify substring", &Error{Status: 403, Message: "Please verify your email before logging in."}, ReasonEmailNotVerified},
		{"unrelated", &Error{Status: 500, Message: "oops"}, ReasonUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Denial(tc.err); got != tc.want {
				t.Fatalf("Denial = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDecodeErrorFallsBackToRawBody(t *testing.T) {
	err := decodeError(502, []byte("bad gateway"))
	if err.Error() != "bad gateway" {
		t.Fatalf("message = %q", err.Error())
	}
}
