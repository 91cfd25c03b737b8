package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/model"
)

// Filter narrows assessment listings. Email and EnvironmentName are
// case-insensitive substring matches; the date bounds are inclusive.
type Filter struct {
	Email           string
	EnvironmentName string
	DateFrom        *time.Time
	DateTo          *time.Time
}

// Page is the skip/limit window applied after sorting by creation time
// descending.
type Page struct {
	Limit int
	Skip  int
}

// ListResult is one page of assessments plus the unpaginated total.
type ListResult struct {
	Items   []*model.Assessment
	Total   int64
	HasMore bool
}

// Stats summarizes the scores of all stored assessments.
type Stats struct {
	TotalAssessments int64   `json:"totalAssessments" bson:"totalAssessments"`
	AverageScore     float64 `json:"averageScore" bson:"averageScore"`
	MinScore         float64 `json:"minScore" bson:"minScore"`
	MaxScore         float64 `json:"maxScore" bson:"maxScore"`
}

// AssessmentRepository persists assessment submissions. Submit is idempotent
// per (email, environmentUniqueName) identity: resubmitting returns the
// stored record with created == false.
type AssessmentRepository interface {
	Submit(ctx context.Context, assessment *model.Assessment) (stored *model.Assessment, created bool, err error)
	GetByID(ctx context.Context, id string) (*model.Assessment, error)
	List(ctx context.Context, filter Filter, page Page) (*ListResult, error)
	Statistics(ctx context.Context) (*Stats, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// assessmentDoc pairs the Mongo _id with the inlined assessment fields.
type assessmentDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	model.Assessment `bson:",inline"`
}

func (d assessmentDoc) toModel() *model.Assessment {
	a := d.Assessment
	a.ID = d.ID.Hex()
	return &a
}

type assessmentRepo struct {
	collection *mongo.Collection
	policy     RetryPolicy
}

// NewAssessmentRepo creates the Mongo-backed assessment repository. Every
// operation is wrapped in the given retry policy.
func NewAssessmentRepo(db *mongo.Database, policy RetryPolicy) AssessmentRepository {
	return &assessmentRepo{
		collection: db.Collection("assessments"),
		policy:     policy,
	}
}

// EnsureIndexes creates the unique identity index that backs duplicate
// prevention. The application-level existence check in Submit is only a fast
// path; this index is the source of truth under concurrent submissions.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	collection := db.Collection("assessments")
	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "personalInfo.email", Value: 1},
				{Key: "personalInfo.environmentUniqueName", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("email_environment_unique"),
		},
		{
			Keys:    bson.D{{Key: "submissionId", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("submissionId_unique"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("createdAt_desc"),
		},
	})
	return err
}

func identityFilter(email, environmentName string) bson.M {
	return bson.M{
		"personalInfo.email":                 email,
		"personalInfo.environmentUniqueName": environmentName,
	}
}

func (r *assessmentRepo) Submit(ctx context.Context, assessment *model.Assessment) (*model.Assessment, bool, error) {
	email := assessment.PersonalInfo.Email
	envName := assessment.PersonalInfo.EnvironmentUniqueName

	// Fast path: identity already submitted.
	existing, err := r.findByIdentity(ctx, email, envName)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	now := time.Now().UTC()
	assessment.SubmissionID = fmt.Sprintf("%s-%s-%s", email, envName, now.Format(time.RFC3339))
	assessment.CreatedAt = now
	assessment.UpdatedAt = now

	var insertedID primitive.ObjectID
	err = r.policy.Do(ctx, func() error {
		result, err := r.collection.InsertOne(ctx, assessmentDoc{Assessment: *assessment})
		if err != nil {
			return err
		}
		if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
			insertedID = oid
		}
		return nil
	})
	if mongo.IsDuplicateKeyError(err) {
		// Lost the check-then-insert race: the unique index rejected our
		// write, so return the winner's record.
		winner, findErr := r.findByIdentity(ctx, email, envName)
		if findErr != nil {
			return nil, false, findErr
		}
		if winner == nil {
			return nil, false, err
		}
		return winner, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	assessment.ID = insertedID.Hex()
	return assessment, true, nil
}

func (r *assessmentRepo) findByIdentity(ctx context.Context, email, envName string) (*model.Assessment, error) {
	var doc assessmentDoc
	err := r.policy.Do(ctx, func() error {
		return r.collection.FindOne(ctx, identityFilter(email, envName)).Decode(&doc)
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (r *assessmentRepo) GetByID(ctx context.Context, id string) (*model.Assessment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrInvalidID
	}

	var doc assessmentDoc
	err = r.policy.Do(ctx, func() error {
		return r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (r *assessmentRepo) List(ctx context.Context, filter Filter, page Page) (*ListResult, error) {
	query := bson.M{}
	if filter.Email != "" {
		query["personalInfo.email"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Email), Options: "i"}
	}
	if filter.EnvironmentName != "" {
		query["personalInfo.environmentUniqueName"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.EnvironmentName), Options: "i"}
	}
	if filter.DateFrom != nil || filter.DateTo != nil {
		created := bson.M{}
		if filter.DateFrom != nil {
			created["$gte"] = *filter.DateFrom
		}
		if filter.DateTo != nil {
			created["$lte"] = *filter.DateTo
		}
		query["createdAt"] = created
	}

	var total int64
	var docs []assessmentDoc
	err := r.policy.Do(ctx, func() error {
		var err error
		total, err = r.collection.CountDocuments(ctx, query)
		if err != nil {
			return err
		}

		opts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetSkip(int64(page.Skip)).
			SetLimit(int64(page.Limit))
		cursor, err := r.collection.Find(ctx, query, opts)
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)

		docs = nil
		return cursor.All(ctx, &docs)
	})
	if err != nil {
		return nil, err
	}

	items := make([]*model.Assessment, 0, len(docs))
	for _, doc := range docs {
		items = append(items, doc.toModel())
	}

	return &ListResult{
		Items:   items,
		Total:   total,
		HasMore: total > int64(page.Skip+page.Limit),
	}, nil
}

// Statistics aggregates across all stored assessments, not the filtered set.
func (r *assessmentRepo) Statistics(ctx context.Context) (*Stats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":              nil,
			"totalAssessments": bson.M{"$sum": 1},
			"averageScore":     bson.M{"$avg": "$score"},
			"minScore":         bson.M{"$min": "$score"},
			"maxScore":         bson.M{"$max": "$score"},
		}}},
	}

	var results []Stats
	err := r.policy.Do(ctx, func() error {
		cursor, err := r.collection.Aggregate(ctx, pipeline)
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)

		results = nil
		return cursor.All(ctx, &results)
	})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &Stats{}, nil
	}
	return &results[0], nil
}

func (r *assessmentRepo) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, model.ErrInvalidID
	}

	var deleted int64
	err = r.policy.Do(ctx, func() error {
		result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
		if err != nil {
			return err
		}
		deleted = result.DeletedCount
		return nil
	})
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, model.ErrNotFound
	}
	return deleted, nil
}
