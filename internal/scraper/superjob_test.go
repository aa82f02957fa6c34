package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/fr4nk3nst1ner/langsalary/internal/config"
)

func newSuperJobForTest(t *testing.T, handler http.HandlerFunc) *SuperJob {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.SecretKey = "v3.r.test-key"
	cfg.SuperJob.BaseURL = srv.URL
	cfg.Timeout = 5 * time.Second
	return NewSuperJob(cfg, nil)
}

func TestSuperJobSearch(t *testing.T) {
	h := newSuperJobForTest(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Api-App-Id"); got != "v3.r.test-key" {
			t.Errorf("X-Api-App-Id = %q", got)
		}
		q := r.URL.Query()
		if q.Get("keyword") != "Программист Kotlin" || q.Get("town") != "Москва" {
			t.Errorf("keyword/town = %q/%q", q.Get("keyword"), q.Get("town"))
		}
		index, _ := strconv.Atoi(q.Get("page"))
		more := index == 0
		fmt.Fprintf(w, `{"objects":[
			{"profession":"Kotlin developer","link":"https://superjob.ru/1","candidat":"Опыт от 3 лет","payment_from":100000,"payment_to":0,"currency":"rub"},
			{"profession":"Android","link":"https://superjob.ru/2","vacancyRichText":"<p>Kotlin</p>","payment_from":0,"payment_to":0,"currency":"rub"}
		],"total":150,"more":%t}`, more)
	})

	result, err := h.Search(context.Background(), "Программист Kotlin")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(result.Listings) != 4 {
		t.Fatalf("listings = %d, want 4", len(result.Listings))
	}
	if !result.Complete || result.PagesFetched != 2 || result.PagesExpected != 2 {
		t.Errorf("result = fetched %d expected %d complete %v", result.PagesFetched, result.PagesExpected, result.Complete)
	}

	first := result.Listings[0]
	if first.SalaryFrom == nil || *first.SalaryFrom != 100000 {
		t.Errorf("SalaryFrom = %v, want 100000", first.SalaryFrom)
	}
	if first.SalaryTo != nil {
		t.Errorf("SalaryTo = %d, want nil for 0", *first.SalaryTo)
	}
	if first.Requirement != "Опыт от 3 лет" {
		t.Errorf("Requirement = %q", first.Requirement)
	}
	if second := result.Listings[1]; second.Requirement != "Kotlin" || second.SalaryFrom != nil {
		t.Errorf("second listing = %+v", second)
	}
}

func TestSuperJobBadRequestEndsResults(t *testing.T) {
	h := newSuperJobForTest(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			http.Error(w, `{"error":{"code":400}}`, http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, `{"objects":[{"profession":"C# developer","payment_from":150000,"payment_to":250000}],"total":1000,"more":true}`)
	})

	result, err := h.Search(context.Background(), "Программист C#")
	if err != nil {
		t.Fatalf("Search() error = %v, want nil for 400", err)
	}
	if !result.Complete || result.PagesFetched != 1 || len(result.Listings) != 1 {
		t.Errorf("result = %+v", result)
	}
}

func TestSuperJobForbiddenIsFatal(t *testing.T) {
	h := newSuperJobForTest(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":403,"message":"Invalid app_key"}}`, http.StatusForbidden)
	})

	_, err := h.Search(context.Background(), "Программист Python")
	if !errors.Is(err, ErrFatalStatus) {
		t.Fatalf("Search() error = %v, want ErrFatalStatus", err)
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusForbidden {
		t.Errorf("Search() error = %v, want StatusError 403", err)
	}
}

func TestSuperJobServerErrorIsFatal(t *testing.T) {
	h := newSuperJobForTest(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"objects":[{"profession":"Ruby developer","payment_from":120000,"payment_to":180000}],"total":300,"more":true}`)
	})

	_, err := h.Search(context.Background(), "Программист Ruby")
	if !errors.Is(err, ErrFatalStatus) {
		t.Fatalf("Search() error = %v, want ErrFatalStatus", err)
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusInternalServerError {
		t.Errorf("Search() error = %v, want StatusError 500", err)
	}
}

func TestSuperJobNetworkErrorIsBestEffort(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	cfg := config.Default()
	cfg.SecretKey = "v3.r.test-key"
	cfg.SuperJob.BaseURL = srv.URL
	cfg.Timeout = time.Second
	h := NewSuperJob(cfg, nil)

	result, err := h.Search(context.Background(), "Программист Ruby")
	if err != nil {
		t.Fatalf("Search() error = %v, want partial result", err)
	}
	if result.Complete || result.PagesFetched != 0 || result.StopReason == "" {
		t.Errorf("result = %+v", result)
	}
}

func TestSuperJobExpectedPages(t *testing.T) {
	s := &SuperJob{cfg: config.SuperJobConfig{PerPage: 100}}
	tests := []struct{ total, want int }{
		{0, 0}, {1, 1}, {100, 1}, {101, 2}, {500, 5},
	}
	for _, tt := range tests {
		if got := s.expectedPages(tt.total); got != tt.want {
			t.Errorf("expectedPages(%d) = %d, want %d", tt.total, got, tt.want)
		}
	}
}
