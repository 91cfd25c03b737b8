package rest_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/catalog"
	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/repository"
	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/service"
	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/transport/rest"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	repo := repository.NewMemoryAssessmentRepo()
	svc := service.NewAssessmentService(repo, catalog.New(), nil)
	srv := httptest.NewServer(rest.NewRouter(&rest.Container{AssessmentService: svc}))
	t.Cleanup(srv.Close)
	return srv
}

func submitBody(email, envName string) []byte {
	body := map[string]interface{}{
		"personalInfo": map[string]string{
			"name":                  "Test User",
			"email":                 email,
			"environmentUniqueName": envName,
		},
		"selectedCategories": []string{"Security Governance"},
		"selectedAreas":      []string{"Security Strategy"},
		"answers":            map[string]string{"sg1": "3", "sg2": "4", "sg3": "2"},
		"totalQuestions":     5,
		"assessmentMetadata": map[string]interface{}{"language": "en"},
	}
	data, _ := json.Marshal(body)
	return data
}

func postAssessment(t *testing.T, srv *httptest.Server, body []byte) map[string]interface{} {
	t.Helper()
	resp, err := http.Post(srv.URL+"/v1/assessments", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	return payload
}

func TestSubmitEndpoint(t *testing.T) {
	srv := newTestServer(t)

	payload := postAssessment(t, srv, submitBody("test@example.com", "env-1"))
	if payload["assessmentId"] == "" {
		t.Fatalf("expected an assessment ID, got %v", payload)
	}

	data := payload["data"].(map[string]interface{})
	if data["score"].(float64) != 9 {
		t.Fatalf("expected score 9, got %v", data["score"])
	}
	if data["completedQuestions"].(float64) != 3 || data["totalQuestions"].(float64) != 5 {
		t.Fatalf("unexpected counts: %v", data)
	}
	if data["selectedCategories"].(float64) != 1 || data["selectedAreas"].(float64) != 1 {
		t.Fatalf("expected selection counts, got %v", data)
	}
}

func TestSubmitEndpointIdempotent(t *testing.T) {
	srv := newTestServer(t)

	first := postAssessment(t, srv, submitBody("dup@example.com", "env-1"))
	second := postAssessment(t, srv, submitBody("dup@example.com", "env-1"))

	if first["assessmentId"] != second["assessmentId"] {
		t.Fatalf("expected both submissions to resolve to one record: %v vs %v",
			first["assessmentId"], second["assessmentId"])
	}
}

func TestSubmitEndpointValidation(t *testing.T) {
	srv := newTestServer(t)

	body := submitBody("", "env-1")
	resp, err := http.Post(srv.URL+"/v1/assessments", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestListEndpoint(t *testing.T) {
	srv := newTestServer(t)

	for i := 0; i < 15; i++ {
		postAssessment(t, srv, submitBody(fmt.Sprintf("user%02d@example.com", i), "env"))
	}

	resp, err := http.Get(srv.URL + "/v1/assessments?limit=10&skip=0&email=example.com")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var payload struct {
		Assessments []json.RawMessage `json:"assessments"`
		Pagination  struct {
			Total   int  `json:"total"`
			Limit   int  `json:"limit"`
			Skip    int  `json:"skip"`
			HasMore bool `json:"hasMore"`
		} `json:"pagination"`
		Statistics struct {
			TotalAssessments int `json:"totalAssessments"`
		} `json:"statistics"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if len(payload.Assessments) != 10 {
		t.Fatalf("expected 10 items, got %d", len(payload.Assessments))
	}
	if payload.Pagination.Total != 15 || !payload.Pagination.HasMore {
		t.Fatalf("unexpected pagination: %+v", payload.Pagination)
	}
	if payload.Statistics.TotalAssessments != 15 {
		t.Fatalf("expected statistics across all records, got %+v", payload.Statistics)
	}
}

func TestDeleteEndpoint(t *testing.T) {
	srv := newTestServer(t)
	client := srv.Client()

	payload := postAssessment(t, srv, submitBody("del@example.com", "env"))
	id := payload["assessmentId"].(string)

	del := func(id string) int {
		req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/v1/assessments/"+id, nil)
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		defer resp.Body.Close()
		return resp.StatusCode
	}

	if status := del("not-a-valid-id"); status != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed ID, got %d", status)
	}
	if status := del("ffffffffffffffffffffffff"); status != http.StatusNotFound {
		t.Fatalf("expected 404 for missing ID, got %d", status)
	}
	if status := del(id); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if status := del(id); status != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", status)
	}
}

func TestReportEndpoint(t *testing.T) {
	srv := newTestServer(t)

	payload := postAssessment(t, srv, submitBody("rep@example.com", "env"))
	id := payload["assessmentId"].(string)

	resp, err := http.Get(srv.URL + "/v1/assessments/" + id + "/report")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var rep struct {
		Band    string `json:"band"`
		Score   int    `json:"score"`
		Summary struct {
			ResponseTypes []struct {
				Label string  `json:"label"`
				Count int     `json:"count"`
				Pct   float64 `json:"percentage"`
			} `json:"responseTypes"`
		} `json:"summary"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rep); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if rep.Score != 9 || rep.Band != "urgent" {
		t.Fatalf("unexpected report: %+v", rep)
	}
	if len(rep.Summary.ResponseTypes) != 9 {
		t.Fatalf("expected 9 response types, got %d", len(rep.Summary.ResponseTypes))
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Request-ID"); got == "" {
		t.Fatalf("expected request ID header")
	}
}
