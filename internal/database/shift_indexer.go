package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/olivere/elastic/v7"

	"github.com/worklyapp/workly-backend/internal/domain"
)

const shiftIndex = "shifts"

// ShiftDoc mirrors a completed domain.TimeRecord for the search index.
type ShiftDoc struct {
	RecordID   string    `json:"record_id"`
	EmployeeID string    `json:"employee_id"`
	CompanyID  string    `json:"company_id"`
	Date       time.Time `json:"date"`
	ClockIn    time.Time `json:"clock_in"`
	ClockOut   time.Time `json:"clock_out"`
	TotalHours float64   `json:"total_hours"`
	Pay        float64   `json:"pay"`
}

// ShiftIndexer mirrors completed shifts into Elasticsearch so admin tooling
// can search them. Indexing is best-effort; the primary store is Postgres.
type ShiftIndexer struct {
	client *elastic.Client
}

// NewShiftIndexer connects an indexer to the given Elasticsearch URL.
func NewShiftIndexer(url string) (*ShiftIndexer, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(url),
		elastic.SetSniff(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}
	return &ShiftIndexer{client: client}, nil
}

func docFromRecord(rec domain.TimeRecord) ShiftDoc {
	doc := ShiftDoc{
		RecordID:   rec.ID.String(),
		EmployeeID: rec.EmployeeID.String(),
		CompanyID:  rec.CompanyID.String(),
		Date:       rec.Date,
		ClockIn:    rec.ClockIn,
		TotalHours: rec.HoursOrZero(),
		Pay:        rec.PayOrZero(),
	}
	if rec.ClockOut != nil {
		doc.ClockOut = *rec.ClockOut
	}
	return doc
}

// IndexShift stores one completed shift, keyed by record id so retries
// overwrite rather than duplicate.
func (si *ShiftIndexer) IndexShift(ctx context.Context, rec domain.TimeRecord) error {
	_, err := si.client.Index().
		Index(shiftIndex).
		Id(rec.ID.String()).
		BodyJson(docFromRecord(rec)).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to index shift %s: %w", rec.ID, err)
	}
	return nil
}

// BulkIndexShifts indexes a batch, used by the seeder and backfills.
func (si *ShiftIndexer) BulkIndexShifts(ctx context.Context, records []domain.TimeRecord) error {
	bulk := si.client.Bulk()
	for i := range records {
		if records[i].Status != domain.RecordCompleted {
			continue
		}
		req := elastic.NewBulkIndexRequest().
			Index(shiftIndex).
			Id(records[i].ID.String()).
			Doc(docFromRecord(records[i]))
		bulk = bulk.Add(req)
	}
	if bulk.NumberOfActions() == 0 {
		return nil
	}

	resp, err := bulk.Do(ctx)
	if err != nil {
		return fmt.Errorf("bulk shift index failed: %w", err)
	}
	if resp.Errors {
		for _, item := range resp.Items {
			for _, op := range item {
				if op.Error != nil {
					return fmt.Errorf("bulk shift index item failed: %s", op.Error.Reason)
				}
			}
		}
	}
	return nil
}

// SearchShiftsByEmployee returns indexed shifts for one employee, newest first.
func (si *ShiftIndexer) SearchShiftsByEmployee(ctx context.Context, employeeID string, limit int) ([]ShiftDoc, error) {
	query := elastic.NewTermQuery("employee_id", employeeID)

	result, err := si.client.Search().
		Index(shiftIndex).
		Query(query).
		Sort("date", false).
		Size(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("shift search failed: %w", err)
	}

	docs := make([]ShiftDoc, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		var doc ShiftDoc
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
