package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Sink is the durable append-only store for entries. Storage order is
// implementation-defined; Query returns entries by occurredAt descending.
type Sink interface {
	Insert(ctx context.Context, entry Entry) error
	Select(ctx context.Context, filter Filter, limit, offset int) ([]Entry, error)
}

// Service validates and persists audit entries. There is no update or delete;
// the log only grows.
type Service struct {
	sink Sink
}

// NewService constructs a Service.
func NewService(sink Sink) *Service {
	return &Service{sink: sink}
}

// Append writes one entry. Missing IDs and timestamps are stamped here so
// retried deliveries of the same entry stay identical.
func (s *Service) Append(ctx context.Context, entry Entry) error {
	if s == nil || s.sink == nil {
		return errors.New("audit: sink not configured")
	}
	if entry.Action == "" || entry.ResourceType == "" || entry.ResourceID == "" {
		return errors.New("audit: entry requires action/resource_type/resource_id")
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = time.Now().UTC()
	}
	return s.sink.Insert(ctx, entry)
}

// Query returns entries matching the filter, newest first, with paging.
func (s *Service) Query(ctx context.Context, filter Filter) (Result, error) {
	if s == nil || s.sink == nil {
		return Result{}, errors.New("audit: sink not configured")
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 50 {
		pageSize = 50
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * pageSize

	rows, err := s.sink.Select(ctx, filter, pageSize+1, offset)
	if err != nil {
		return Result{}, err
	}
	hasNext := len(rows) > pageSize
	if hasNext {
		rows = rows[:pageSize]
	}
	paging := PagingInfo{Page: page, PageSize: pageSize, HasNext: hasNext}
	if page > 1 {
		paging.PrevPage = page - 1
	}
	if hasNext {
		paging.NextPage = page + 1
	}
	return Result{Entries: rows, Paging: paging}, nil
}
