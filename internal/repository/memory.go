package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/model"
)

// MemoryAssessmentRepo is an in-memory AssessmentRepository used by tests
// and local development. It enforces the same identity uniqueness the Mongo
// index guarantees, so idempotency behaves identically.
type MemoryAssessmentRepo struct {
	mu    sync.Mutex
	seq   int
	items map[string]*storedAssessment // keyed by ID
}

type storedAssessment struct {
	assessment model.Assessment
	seq        int
}

// NewMemoryAssessmentRepo creates an empty in-memory repository.
func NewMemoryAssessmentRepo() *MemoryAssessmentRepo {
	return &MemoryAssessmentRepo{items: make(map[string]*storedAssessment)}
}

func (r *MemoryAssessmentRepo) Submit(_ context.Context, assessment *model.Assessment) (*model.Assessment, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := assessment.PersonalInfo.Email
	envName := assessment.PersonalInfo.EnvironmentUniqueName
	for _, stored := range r.items {
		if stored.assessment.PersonalInfo.Email == email &&
			stored.assessment.PersonalInfo.EnvironmentUniqueName == envName {
			rec := stored.assessment
			return &rec, false, nil
		}
	}

	now := time.Now().UTC()
	record := *assessment
	record.ID = primitive.NewObjectID().Hex()
	record.SubmissionID = fmt.Sprintf("%s-%s-%s", email, envName, now.Format(time.RFC3339))
	record.CreatedAt = now
	record.UpdatedAt = now

	r.seq++
	r.items[record.ID] = &storedAssessment{assessment: record, seq: r.seq}

	rec := record
	return &rec, true, nil
}

func (r *MemoryAssessmentRepo) GetByID(_ context.Context, id string) (*model.Assessment, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, model.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	rec := stored.assessment
	return &rec, nil
}

func (r *MemoryAssessmentRepo) List(_ context.Context, filter Filter, page Page) (*ListResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*storedAssessment
	for _, stored := range r.items {
		if matches(&stored.assessment, filter) {
			matched = append(matched, stored)
		}
	}

	// Newest first, ties broken by insertion order.
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.assessment.CreatedAt.Equal(b.assessment.CreatedAt) {
			return a.assessment.CreatedAt.After(b.assessment.CreatedAt)
		}
		return a.seq > b.seq
	})

	total := int64(len(matched))
	start := page.Skip
	if start > len(matched) {
		start = len(matched)
	}
	end := start + page.Limit
	if end > len(matched) {
		end = len(matched)
	}

	items := make([]*model.Assessment, 0, end-start)
	for _, stored := range matched[start:end] {
		rec := stored.assessment
		items = append(items, &rec)
	}

	return &ListResult{
		Items:   items,
		Total:   total,
		HasMore: total > int64(page.Skip+page.Limit),
	}, nil
}

func matches(a *model.Assessment, filter Filter) bool {
	if filter.Email != "" &&
		!strings.Contains(strings.ToLower(a.PersonalInfo.Email), strings.ToLower(filter.Email)) {
		return false
	}
	if filter.EnvironmentName != "" &&
		!strings.Contains(strings.ToLower(a.PersonalInfo.EnvironmentUniqueName), strings.ToLower(filter.EnvironmentName)) {
		return false
	}
	if filter.DateFrom != nil && a.CreatedAt.Before(*filter.DateFrom) {
		return false
	}
	if filter.DateTo != nil && a.CreatedAt.After(*filter.DateTo) {
		return false
	}
	return true
}

func (r *MemoryAssessmentRepo) Statistics(_ context.Context) (*Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := &Stats{}
	for _, stored := range r.items {
		score := float64(stored.assessment.Score)
		if stats.TotalAssessments == 0 {
			stats.MinScore = score
			stats.MaxScore = score
		} else {
			if score < stats.MinScore {
				stats.MinScore = score
			}
			if score > stats.MaxScore {
				stats.MaxScore = score
			}
		}
		stats.AverageScore += score
		stats.TotalAssessments++
	}
	if stats.TotalAssessments > 0 {
		stats.AverageScore /= float64(stats.TotalAssessments)
	}
	return stats, nil
}

func (r *MemoryAssessmentRepo) Delete(_ context.Context, id string) (int64, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return 0, model.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return 0, model.ErrNotFound
	}
	delete(r.items, id)
	return 1, nil
}
