package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/cache"
	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/catalog"
	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/model"
	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/report"
	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/repository"
	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/scoring"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// Placeholder text for answers whose question is no longer known.
const (
	unknownQuestionText = "Unknown question"
	unknownAnswerLabel  = "Unknown answer"
	unknownCategory     = "Unknown"
)

// SubmitInput is a completed (or abandoned) assessment as flushed by the
// client, before server-side enrichment.
type SubmitInput struct {
	PersonalInfo       model.PersonalInfo
	SelectedCategories []string
	SelectedAreas      []string
	Answers            map[string]string
	TotalQuestions     int
	Metadata           model.AssessmentMetadata
	QuestionDetails    []model.QuestionDetail
}

// AssessmentService validates submissions, enriches them with the computed
// score and detailed answers, and delegates persistence to the repository.
type AssessmentService struct {
	repo    repository.AssessmentRepository
	catalog *catalog.Catalog
	stats   cache.StatsCache
}

// NewAssessmentService creates a new assessment service.
func NewAssessmentService(repo repository.AssessmentRepository, cat *catalog.Catalog, stats cache.StatsCache) *AssessmentService {
	return &AssessmentService{
		repo:    repo,
		catalog: cat,
		stats:   stats,
	}
}

// Submit validates and persists a submission. The returned bool reports
// whether a new record was created; a duplicate identity returns the stored
// record unchanged.
func (s *AssessmentService) Submit(ctx context.Context, input SubmitInput) (*model.Assessment, bool, error) {
	if err := validate(input); err != nil {
		return nil, false, err
	}

	assessment := &model.Assessment{
		PersonalInfo:       input.PersonalInfo,
		SelectedCategories: input.SelectedCategories,
		SelectedAreas:      input.SelectedAreas,
		Answers:            input.Answers,
		Metadata:           input.Metadata,
		// The score is always recomputed server-side from the answers;
		// any client-supplied value is ignored.
		Score:              scoring.Score(input.Answers),
		CompletedQuestions: len(input.Answers),
		TotalQuestions:     input.TotalQuestions,
		DetailedAnswers:    s.buildDetailedAnswers(input.Answers, input.QuestionDetails),
	}
	if assessment.TotalQuestions == 0 {
		assessment.TotalQuestions = len(input.QuestionDetails)
	}
	if assessment.TotalQuestions < assessment.CompletedQuestions {
		assessment.TotalQuestions = assessment.CompletedQuestions
	}

	stored, created, err := s.repo.Submit(ctx, assessment)
	if err != nil {
		return nil, false, err
	}
	if created && s.stats != nil {
		if err := s.stats.Invalidate(ctx); err != nil {
			log.Printf("failed to invalidate statistics cache: %v", err)
		}
	}
	return stored, created, nil
}

// Get returns a single stored assessment.
func (s *AssessmentService) Get(ctx context.Context, id string) (*model.Assessment, error) {
	return s.repo.GetByID(ctx, id)
}

// ListResult is a page of assessments together with the global statistics.
type ListResult struct {
	Items      []*model.Assessment
	Total      int64
	Limit      int
	Skip       int
	HasMore    bool
	Statistics *repository.Stats
}

// List retrieves a filtered, paginated page of assessments plus the overall
// statistics.
func (s *AssessmentService) List(ctx context.Context, filter repository.Filter, page repository.Page) (*ListResult, error) {
	if page.Limit <= 0 {
		page.Limit = defaultListLimit
	}
	if page.Limit > maxListLimit {
		page.Limit = maxListLimit
	}
	if page.Skip < 0 {
		page.Skip = 0
	}

	result, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}

	stats, err := s.statistics(ctx)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Items:      result.Items,
		Total:      result.Total,
		Limit:      page.Limit,
		Skip:       page.Skip,
		HasMore:    result.HasMore,
		Statistics: stats,
	}, nil
}

func (s *AssessmentService) statistics(ctx context.Context) (*repository.Stats, error) {
	if s.stats == nil {
		return s.repo.Statistics(ctx)
	}
	return s.stats.Get(ctx, s.repo.Statistics)
}

// Delete removes a stored assessment.
func (s *AssessmentService) Delete(ctx context.Context, id string) (int64, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if s.stats != nil {
		if err := s.stats.Invalidate(ctx); err != nil {
			log.Printf("failed to invalidate statistics cache: %v", err)
		}
	}
	return deleted, nil
}

// AssessmentReport is the aggregate view consumed by report renderers.
type AssessmentReport struct {
	Summary report.Summary `json:"summary"`
	Band    scoring.Band   `json:"band"`
	Score   int            `json:"score"`
}

// Report computes the response-type distribution and category breakdown for
// a stored assessment.
func (s *AssessmentService) Report(ctx context.Context, id string) (*AssessmentReport, error) {
	assessment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &AssessmentReport{
		Summary: report.Summarize(assessment.Answers, s.catalog, assessment.SelectedCategories),
		Band:    scoring.BandFor(assessment.Score),
		Score:   assessment.Score,
	}, nil
}

func validate(input SubmitInput) error {
	var missing []string
	if strings.TrimSpace(input.PersonalInfo.Name) == "" {
		missing = append(missing, "personalInfo.name")
	}
	if strings.TrimSpace(input.PersonalInfo.Email) == "" {
		missing = append(missing, "personalInfo.email")
	}
	if strings.TrimSpace(input.PersonalInfo.EnvironmentUniqueName) == "" {
		missing = append(missing, "personalInfo.environmentUniqueName")
	}
	if len(input.Answers) == 0 {
		missing = append(missing, "answers")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", model.ErrValidation, strings.Join(missing, ", "))
	}

	for questionID, value := range input.Answers {
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > 9 {
			return fmt.Errorf("%w: answer %q for question %s is not a valid response value", model.ErrValidation, value, questionID)
		}
	}
	return nil
}

// buildDetailedAnswers resolves every answered question into its stored
// detail row. Questions submitted with the form win over the catalog, and a
// question known to neither degrades to placeholder text.
func (s *AssessmentService) buildDetailedAnswers(answers map[string]string, details []model.QuestionDetail) []model.DetailedAnswer {
	byID := make(map[string]model.Question, len(details))
	order := make([]string, 0, len(answers))
	for _, d := range details {
		if _, answered := answers[d.ID]; !answered {
			continue
		}
		if _, seen := byID[d.ID]; seen {
			continue
		}
		byID[d.ID] = d.Question
		order = append(order, d.ID)
	}

	// Answers without a submitted detail row follow, in stable order.
	var remaining []string
	for questionID := range answers {
		if _, ok := byID[questionID]; !ok {
			remaining = append(remaining, questionID)
		}
	}
	sort.Strings(remaining)
	order = append(order, remaining...)

	out := make([]model.DetailedAnswer, 0, len(order))
	for _, questionID := range order {
		value := answers[questionID]

		question, known := byID[questionID]
		if !known {
			question, known = s.catalog.Lookup(questionID)
		}

		detail := model.DetailedAnswer{
			QuestionID:   questionID,
			QuestionText: unknownQuestionText,
			AnswerValue:  value,
			AnswerLabel:  unknownAnswerLabel,
			Category:     unknownCategory,
		}
		if known {
			detail.QuestionText = question.Text
			detail.Category = question.Category
			detail.Area = question.Area
			detail.Topic = question.Topic
			if opt, ok := question.OptionByValue(value); ok {
				detail.AnswerLabel = opt.Label
			}
		}
		out = append(out, detail)
	}
	return out
}
