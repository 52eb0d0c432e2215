// Package store provides the document-store backends for daily records and
// weekly summaries: Firestore in production, an in-memory store for tests
// and fixture runs.
package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/fyrsmithlabs/coachd/internal/checkin"
	"github.com/fyrsmithlabs/coachd/internal/coaching"
)

const dateLayout = "2006-01-02"

// FirestoreConfig holds the collection layout under users/{email}.
type FirestoreConfig struct {
	ProjectID           string
	DailyCollection     string
	SummariesCollection string
}

func (c *FirestoreConfig) applyDefaults() {
	if c.DailyCollection == "" {
		c.DailyCollection = "dailyLogs"
	}
	if c.SummariesCollection == "" {
		c.SummariesCollection = "weeklySummaries"
	}
}

// FirestoreStore implements coaching.Store on Cloud Firestore.
type FirestoreStore struct {
	client *firestore.Client
	cfg    FirestoreConfig
	logger *zap.Logger
}

// NewFirestoreStore connects a Firestore client for the configured project.
// Credentials come from Application Default Credentials.
func NewFirestoreStore(ctx context.Context, cfg FirestoreConfig, logger *zap.Logger) (*FirestoreStore, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("firestore project ID is required")
	}
	cfg.applyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := firestore.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	return &FirestoreStore{client: client, cfg: cfg, logger: logger}, nil
}

// Close releases the underlying client.
func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func (s *FirestoreStore) dailyCollection(email string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(email).Collection(s.cfg.DailyCollection)
}

func (s *FirestoreStore) summaryDoc(email, weekID string) *firestore.DocumentRef {
	return s.client.Collection("users").Doc(email).Collection(s.cfg.SummariesCollection).Doc(weekID)
}

// DailyRecords queries records between start and end inclusive, ordered by
// date ascending. Malformed documents are logged and skipped so one bad
// day cannot block a whole week.
func (s *FirestoreStore) DailyRecords(ctx context.Context, email string, start, end time.Time) ([]checkin.DailyRecord, error) {
	iter := s.dailyCollection(email).
		Where("date", ">=", start.Format(dateLayout)).
		Where("date", "<=", end.Format(dateLayout)).
		OrderBy("date", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var records []checkin.DailyRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("query daily records: %w", err)
		}
		rec, err := checkin.ParseRecord(doc.Data())
		if err != nil {
			s.logger.Warn("skipping malformed daily record",
				zap.String("email", email),
				zap.String("doc", doc.Ref.ID),
				zap.Error(err))
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// SaveWeeklySummary overwrites the week's document. Merge options only
// apply to map data; the summary is the full document for its week, so a
// plain overwrite gives the one-document-per-week semantics directly.
func (s *FirestoreStore) SaveWeeklySummary(ctx context.Context, email string, summary coaching.WeeklySummary) error {
	_, err := s.summaryDoc(email, summary.WeekID).Set(ctx, summary)
	if err != nil {
		return fmt.Errorf("save weekly summary %s: %w", summary.WeekID, err)
	}
	return nil
}

// WeeklySummary fetches a stored summary, or nil when none exists.
func (s *FirestoreStore) WeeklySummary(ctx context.Context, email, weekID string) (*coaching.WeeklySummary, error) {
	doc, err := s.summaryDoc(email, weekID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get weekly summary %s: %w", weekID, err)
	}
	var summary coaching.WeeklySummary
	if err := doc.DataTo(&summary); err != nil {
		return nil, fmt.Errorf("decode weekly summary %s: %w", weekID, err)
	}
	return &summary, nil
}

var _ coaching.Store = (*FirestoreStore)(nil)
