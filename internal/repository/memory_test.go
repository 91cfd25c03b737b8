package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/model"
)

func submission(email, envName string, score int) *model.Assessment {
	return &model.Assessment{
		PersonalInfo: model.PersonalInfo{
			Name:                  "Test User",
			Email:                 email,
			EnvironmentUniqueName: envName,
		},
		Answers:            map[string]string{"sg1": "3"},
		Score:              score,
		TotalQuestions:     1,
		CompletedQuestions: 1,
	}
}

func TestSubmitIsIdempotentPerIdentity(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAssessmentRepo()

	first, created, err := repo.Submit(ctx, submission("a@example.com", "env-1", 10))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !created {
		t.Fatalf("expected first submission to create a record")
	}
	if first.SubmissionID == "" || first.ID == "" {
		t.Fatalf("expected assigned identifiers, got %+v", first)
	}

	second, created, err := repo.Submit(ctx, submission("a@example.com", "env-1", 99))
	if err != nil {
		t.Fatalf("resubmit failed: %v", err)
	}
	if created {
		t.Fatalf("expected duplicate identity to return the existing record")
	}
	if second.ID != first.ID {
		t.Fatalf("expected same record, got %s and %s", first.ID, second.ID)
	}
	if second.Score != 10 {
		t.Fatalf("duplicate submission must not overwrite the stored record")
	}

	// Different environment for the same email is a distinct identity.
	_, created, err = repo.Submit(ctx, submission("a@example.com", "env-2", 20))
	if err != nil || !created {
		t.Fatalf("expected new identity to create, created=%v err=%v", created, err)
	}
}

func TestSubmitConcurrentSameIdentity(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAssessmentRepo()

	ids := make([]string, 8)
	var g errgroup.Group
	for i := 0; i < len(ids); i++ {
		i := i
		g.Go(func() error {
			stored, _, err := repo.Submit(ctx, submission("race@example.com", "env-1", i))
			if err != nil {
				return err
			}
			ids[i] = stored.ID
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent submit failed: %v", err)
	}

	for _, id := range ids[1:] {
		if id != ids[0] {
			t.Fatalf("expected every caller to see the same record, got %v", ids)
		}
	}

	result, err := repo.List(ctx, Filter{}, Page{Limit: 100})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("expected exactly one persisted record, got %d", result.Total)
	}
}

func TestListPagination(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAssessmentRepo()

	for i := 0; i < 15; i++ {
		email := fmt.Sprintf("user%02d@example.com", i)
		if _, _, err := repo.Submit(ctx, submission(email, "env", i)); err != nil {
			t.Fatalf("submit %d failed: %v", i, err)
		}
	}

	page, err := repo.List(ctx, Filter{}, Page{Limit: 10, Skip: 0})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page.Items) != 10 || page.Total != 15 {
		t.Fatalf("expected 10 of 15, got %d of %d", len(page.Items), page.Total)
	}
	if !page.HasMore {
		t.Fatalf("expected hasMore with 15 records and limit 10")
	}

	// Newest first: the last submission leads the page.
	if page.Items[0].PersonalInfo.Email != "user14@example.com" {
		t.Fatalf("expected newest record first, got %s", page.Items[0].PersonalInfo.Email)
	}

	rest, err := repo.List(ctx, Filter{}, Page{Limit: 10, Skip: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rest.Items) != 5 || rest.HasMore {
		t.Fatalf("expected final page of 5 without hasMore, got %d hasMore=%v", len(rest.Items), rest.HasMore)
	}
}

func TestListHasMoreExactFit(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAssessmentRepo()

	for i := 0; i < 10; i++ {
		email := fmt.Sprintf("user%02d@example.com", i)
		if _, _, err := repo.Submit(ctx, submission(email, "env", i)); err != nil {
			t.Fatalf("submit %d failed: %v", i, err)
		}
	}

	page, err := repo.List(ctx, Filter{}, Page{Limit: 10, Skip: 0})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.HasMore {
		t.Fatalf("expected hasMore false when total equals the page")
	}
}

func TestListFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAssessmentRepo()

	seed := []struct{ email, env string }{
		{"alice@acme.com", "prod-cluster"},
		{"bob@acme.com", "dev-cluster"},
		{"carol@other.org", "prod-site"},
	}
	for _, s := range seed {
		if _, _, err := repo.Submit(ctx, submission(s.email, s.env, 1)); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}

	byEmail, err := repo.List(ctx, Filter{Email: "ACME"}, Page{Limit: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if byEmail.Total != 2 {
		t.Fatalf("expected 2 acme matches, got %d", byEmail.Total)
	}

	byEnv, err := repo.List(ctx, Filter{EnvironmentName: "prod"}, Page{Limit: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if byEnv.Total != 2 {
		t.Fatalf("expected 2 prod matches, got %d", byEnv.Total)
	}

	both, err := repo.List(ctx, Filter{Email: "acme", EnvironmentName: "prod"}, Page{Limit: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if both.Total != 1 || both.Items[0].PersonalInfo.Email != "alice@acme.com" {
		t.Fatalf("expected alice only, got %+v", both.Items)
	}
}

func TestStatistics(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAssessmentRepo()

	empty, err := repo.Statistics(ctx)
	if err != nil {
		t.Fatalf("statistics failed: %v", err)
	}
	if empty.TotalAssessments != 0 || empty.AverageScore != 0 {
		t.Fatalf("expected zeroed stats, got %+v", empty)
	}

	scores := []int{40, 60, 80}
	for i, score := range scores {
		email := fmt.Sprintf("user%d@example.com", i)
		if _, _, err := repo.Submit(ctx, submission(email, "env", score)); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}

	stats, err := repo.Statistics(ctx)
	if err != nil {
		t.Fatalf("statistics failed: %v", err)
	}
	if stats.TotalAssessments != 3 {
		t.Fatalf("expected 3 assessments, got %d", stats.TotalAssessments)
	}
	if stats.AverageScore != 60 || stats.MinScore != 40 || stats.MaxScore != 80 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAssessmentRepo()

	stored, _, err := repo.Submit(ctx, submission("a@example.com", "env", 1))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if _, err := repo.Delete(ctx, "not-a-hex-id"); !errors.Is(err, model.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if _, err := repo.Delete(ctx, "656f1e4b9a1b4c0012345678"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	deleted, err := repo.Delete(ctx, stored.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected deletedCount 1, got %d", deleted)
	}
	if _, err := repo.GetByID(ctx, stored.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected record gone, got %v", err)
	}
}
