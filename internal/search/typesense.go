package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/typesense/typesense-go/v4/typesense"
	"github.com/typesense/typesense-go/v4/typesense/api"
	"github.com/typesense/typesense-go/v4/typesense/api/pointer"

	"switchyard.app/platform/internal/model"
)

const contactQueryBy = "name,email,company,phone,tags"

// ContactIndex is the full-text index the contact service writes through.
type ContactIndex interface {
	EnsureCollection(ctx context.Context) error
	Upsert(ctx context.Context, c *model.Contact) error
	Delete(ctx context.Context, orgID, contactID int64) error
	// Search returns matching contact ids, best first, and the total hit count.
	Search(ctx context.Context, orgID int64, query string, limit, offset int) ([]int64, int, error)
}

type ContactDocument struct {
	ID             string   `json:"id"`
	OrganizationID int64    `json:"organization_id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	Company        string   `json:"company"`
	Tags           []string `json:"tags"`
	Status         string   `json:"status"`
	CreatedAt      int64    `json:"created_at"`
}

func NewContactDocument(c *model.Contact) ContactDocument {
	doc := ContactDocument{
		ID:             strconv.FormatInt(c.ID, 10),
		OrganizationID: c.OrganizationID,
		Name:           c.FullName(),
		Tags:           c.Tags,
		Status:         string(c.Status),
		CreatedAt:      c.CreatedAt.Unix(),
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}
	if c.Email != nil {
		doc.Email = *c.Email
	}
	if c.Phone != nil {
		doc.Phone = *c.Phone
	}
	if c.Company != nil {
		doc.Company = *c.Company
	}
	return doc
}

type typesenseIndex struct {
	client     *typesense.Client
	collection string
}

func NewTypesenseIndex(url, apiKey, collection string) ContactIndex {
	return &typesenseIndex{
		client:     typesense.NewClient(typesense.WithServer(url), typesense.WithAPIKey(apiKey)),
		collection: collection,
	}
}

func (t *typesenseIndex) EnsureCollection(ctx context.Context) error {
	_, err := t.client.Collection(t.collection).Retrieve(ctx)
	if err == nil {
		return nil
	}
	var httpErr *typesense.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Status != http.StatusNotFound {
		return fmt.Errorf("retrieving collection %s: %w", t.collection, err)
	}

	schema := &api.CollectionSchema{
		Name: t.collection,
		Fields: []api.Field{
			{Name: "organization_id", Type: "int64", Facet: pointer.True()},
			{Name: "name", Type: "string"},
			{Name: "email", Type: "string", Optional: pointer.True()},
			{Name: "phone", Type: "string", Optional: pointer.True()},
			{Name: "company", Type: "string", Optional: pointer.True()},
			{Name: "tags", Type: "string[]", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "status", Type: "string", Facet: pointer.True()},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}
	if _, err := t.client.Collections().Create(ctx, schema); err != nil {
		return fmt.Errorf("creating collection %s: %w", t.collection, err)
	}
	slog.InfoContext(ctx, "created typesense collection", "collection", t.collection)
	return nil
}

func (t *typesenseIndex) Upsert(ctx context.Context, c *model.Contact) error {
	doc := NewContactDocument(c)
	if _, err := t.client.Collection(t.collection).Documents().Upsert(ctx, doc, &api.DocumentIndexParameters{}); err != nil {
		return fmt.Errorf("upserting contact %d: %w", c.ID, err)
	}
	return nil
}

func (t *typesenseIndex) Delete(ctx context.Context, orgID, contactID int64) error {
	_, err := t.client.Collection(t.collection).Document(strconv.FormatInt(contactID, 10)).Delete(ctx)
	var httpErr *typesense.HTTPError
	if err != nil && !(errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound) {
		return fmt.Errorf("deleting contact %d from org %d index: %w", contactID, orgID, err)
	}
	return nil
}

func (t *typesenseIndex) Search(ctx context.Context, orgID int64, query string, limit, offset int) ([]int64, int, error) {
	limit = ClampLimit(limit)
	params := &api.SearchCollectionParams{
		Q:        pointer.String(query),
		QueryBy:  pointer.String(contactQueryBy),
		FilterBy: pointer.String(fmt.Sprintf("organization_id:=%d", orgID)),
		PerPage:  pointer.Int(limit),
		Page:     pointer.Int(offset/limit + 1),
	}
	res, err := t.client.Collection(t.collection).Documents().Search(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("searching contacts: %w", err)
	}

	found := 0
	if res.Found != nil {
		found = *res.Found
	}
	if res.Hits == nil {
		return []int64{}, found, nil
	}
	ids := make([]int64, 0, len(*res.Hits))
	for _, hit := range *res.Hits {
		if hit.Document == nil {
			continue
		}
		raw, ok := (*hit.Document)["id"].(string)
		if !ok {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, found, nil
}
