package application

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/journalkeeper/api/internal/domain/entity"
	"github.com/journalkeeper/api/internal/domain/repository"
	"github.com/journalkeeper/api/pkg/apperrors"
	"github.com/journalkeeper/api/pkg/timecodec"
)

// EntryService implements the Entry resource manager. Every read and mutation
// is scoped to the owning user; a foreign entry and a missing entry produce
// the same not-found failure.
type EntryService struct {
	Repo           repository.EntryRepository
	Logger         *logrus.Logger
	ES             *elasticsearch.Client
	ESEntriesIndex string
}

func NewEntryService(repo repository.EntryRepository, logger *logrus.Logger, es *elasticsearch.Client, esEntriesIndex string) *EntryService {
	return &EntryService{Repo: repo, Logger: logger, ES: es, ESEntriesIndex: esEntriesIndex}
}

// EntryPayload is the decoded JSON body for create/update.
type EntryPayload struct {
	Timezone  *string `json:"timezone"`
	LocalTime *string `json:"localTime"`
	Content   *string `json:"content"`
}

func requirePresent(p *string, field string) (string, error) {
	if p == nil || *p == "" {
		return "", apperrors.MissingField(field)
	}
	return *p, nil
}

func convertTimestamp(localTime, timezone string) (time.Time, error) {
	ts, err := timecodec.ToUTC(localTime, timezone)
	if err != nil {
		if errors.Is(err, timecodec.ErrBadOffset) {
			return time.Time{}, apperrors.InvalidTimezone()
		}
		return time.Time{}, apperrors.InvalidLocalTime()
	}
	return ts, nil
}

func entryNotFound(id int64) error {
	return apperrors.EntryNotFound(strconv.FormatInt(id, 10))
}

// Create validates timezone, localTime and content (in that order), converts
// the local time to the canonical UTC instant and persists the entry under
// the owner's id.
func (s *EntryService) Create(ctx context.Context, p EntryPayload, owner *entity.User) (*entity.Entry, error) {
	timezone, err := requirePresent(p.Timezone, "timezone")
	if err != nil {
		return nil, err
	}
	localTime, err := requirePresent(p.LocalTime, "localTime")
	if err != nil {
		return nil, err
	}
	content, err := requirePresent(p.Content, "content")
	if err != nil {
		return nil, err
	}

	ts, err := convertTimestamp(localTime, timezone)
	if err != nil {
		return nil, err
	}

	e := &entity.Entry{TimestampUTC: ts, UTCZone: timezone, Content: content, UserID: owner.ID}
	if err := s.Repo.Create(ctx, e); err != nil {
		return nil, err
	}
	s.indexEntry(ctx, e)

	s.Logger.WithFields(logrus.Fields{"entry_id": e.ID, "user_id": owner.ID}).Info("entry created")
	return e, nil
}

func (s *EntryService) List(ctx context.Context, owner *entity.User) ([]*entity.Entry, error) {
	return s.Repo.ListByOwner(ctx, owner.ID)
}

func (s *EntryService) Get(ctx context.Context, id int64, owner *entity.User) (*entity.Entry, error) {
	e, err := s.Repo.GetByIDAndOwner(ctx, id, owner.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, entryNotFound(id)
		}
		return nil, err
	}
	return e, nil
}

// Update merges a subset of {timezone, localTime, content}. Changing the
// timestamp requires both timezone and localTime; supplying only one of them,
// or a blank timezone, names the absent field. userId never changes.
func (s *EntryService) Update(ctx context.Context, id int64, p EntryPayload, owner *entity.User) (*entity.Entry, error) {
	e, err := s.Get(ctx, id, owner)
	if err != nil {
		return nil, err
	}

	if p.Timezone != nil || p.LocalTime != nil {
		timezone, err := requirePresent(p.Timezone, "timezone")
		if err != nil {
			return nil, err
		}
		localTime, err := requirePresent(p.LocalTime, "localTime")
		if err != nil {
			return nil, err
		}
		ts, err := convertTimestamp(localTime, timezone)
		if err != nil {
			return nil, err
		}
		e.TimestampUTC = ts
		e.UTCZone = timezone
	}
	if p.Content != nil && *p.Content != "" {
		e.Content = *p.Content
	}

	if err := s.Repo.Update(ctx, e); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, entryNotFound(id)
		}
		return nil, err
	}
	s.indexEntry(ctx, e)
	return e, nil
}

func (s *EntryService) Delete(ctx context.Context, id int64, owner *entity.User) error {
	if err := s.Repo.DeleteByIDAndOwner(ctx, id, owner.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entryNotFound(id)
		}
		return err
	}
	s.removeEntryIndex(ctx, id)
	s.Logger.WithFields(logrus.Fields{"entry_id": id, "user_id": owner.ID}).Info("entry deleted")
	return nil
}

// indexEntry pushes the entry into Elasticsearch, best effort. Search is an
// auxiliary surface; indexing failures never fail the request.
func (s *EntryService) indexEntry(ctx context.Context, e *entity.Entry) {
	if s.ES == nil || s.ESEntriesIndex == "" {
		return
	}
	doc := map[string]any{
		"id":             e.ID,
		"content":        e.Content,
		"userId":         e.UserID,
		"timestampInUTC": timecodec.FormatUTC(e.TimestampUTC),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESEntriesIndex,
		DocumentID: strconv.FormatInt(e.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("entry_id", e.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("entry_id", e.ID).Warn("es index response error")
	}
}

func (s *EntryService) removeEntryIndex(ctx context.Context, id int64) {
	if s.ES == nil || s.ESEntriesIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESEntriesIndex, DocumentID: strconv.FormatInt(id, 10)}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("entry_id", id).Warn("es delete failed")
		return
	}
	_ = res.Body.Close()
}

// Search runs a content match over the caller's own entries. Matches are
// re-fetched from Postgres through the owner-scoped repository, so a stale
// index can never leak another user's entry.
func (s *EntryService) Search(ctx context.Context, q string, owner *entity.User, size int) ([]*entity.Entry, error) {
	out := make([]*entity.Entry, 0)
	if s.ES == nil || s.ESEntriesIndex == "" {
		return out, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must":   map[string]any{"match": map[string]any{"content": q}},
				"filter": map[string]any{"term": map[string]any{"userId": owner.ID}},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESEntriesIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	for _, h := range parsed.Hits.Hits {
		id, err := strconv.ParseInt(h.ID, 10, 64)
		if err != nil {
			continue
		}
		e, err := s.Repo.GetByIDAndOwner(ctx, id, owner.ID)
		if err != nil {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
