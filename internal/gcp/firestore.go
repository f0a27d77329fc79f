package gcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Lllllllleong/identityverification/internal/models"
)

// NewFirestoreClient creates and returns a new Firestore client for the given project ID.
// It centralizes client creation for all services.
func NewFirestoreClient(ctx context.Context, projectID string) (*firestore.Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID must be provided to create a firestore client")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	return client, nil
}

// FirestoreDocumentStore persists verification documents in one collection,
// keyed by document id. Plain updates are last-write-wins.
type FirestoreDocumentStore struct {
	client     *firestore.Client
	collection string
	now        func() time.Time
}

func NewFirestoreDocumentStore(client *firestore.Client, collection string) *FirestoreDocumentStore {
	return &FirestoreDocumentStore{
		client:     client,
		collection: collection,
		now:        time.Now,
	}
}

func (s *FirestoreDocumentStore) doc(id string) *firestore.DocumentRef {
	return s.client.Collection(s.collection).Doc(id)
}

// Create inserts doc and fails if the id is already taken.
func (s *FirestoreDocumentStore) Create(ctx context.Context, doc *models.Document) error {
	if doc.ID == "" {
		return fmt.Errorf("document id must be set before create")
	}
	now := s.now()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	if _, err := s.doc(doc.ID).Create(ctx, doc); err != nil {
		return fmt.Errorf("failed to create document %s: %w", doc.ID, err)
	}
	return nil
}

// Load returns the document or models.ErrNotFound.
func (s *FirestoreDocumentStore) Load(ctx context.Context, id string) (*models.Document, error) {
	snap, err := s.doc(id).Get(ctx)
	if err != nil {
		return nil, mapFirestoreError(id, err)
	}
	return decodeDocument(snap)
}

// Update applies a partial write to an existing document.
func (s *FirestoreDocumentStore) Update(ctx context.Context, id string, update models.DocumentUpdate) error {
	updates := s.firestoreUpdates(update)
	if _, err := s.doc(id).Update(ctx, updates); err != nil {
		return mapFirestoreError(id, err)
	}
	return nil
}

// Transition moves a document to status `to` inside a transaction so the
// check against the current status and the write cannot interleave with
// another writer of the same document.
func (s *FirestoreDocumentStore) Transition(ctx context.Context, id string, to models.Status) (*models.Document, error) {
	var result *models.Document
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		ref := s.doc(id)
		snap, err := tx.Get(ref)
		if err != nil {
			return mapFirestoreError(id, err)
		}
		doc, err := decodeDocument(snap)
		if err != nil {
			return err
		}
		if !models.CanTransition(doc.Status, to) {
			return fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, doc.Status, to)
		}
		doc.Status = to
		doc.UpdatedAt = s.now()
		result = doc
		return tx.Update(ref, []firestore.Update{
			{Path: "status", Value: string(to)},
			{Path: "updatedAt", Value: doc.UpdatedAt},
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *FirestoreDocumentStore) firestoreUpdates(u models.DocumentUpdate) []firestore.Update {
	updates := []firestore.Update{{Path: "updatedAt", Value: s.now()}}
	if u.Status != nil {
		updates = append(updates, firestore.Update{Path: "status", Value: string(*u.Status)})
	}
	if u.StatusMessage != nil {
		updates = append(updates, firestore.Update{Path: "statusMessage", Value: *u.StatusMessage})
	}
	if u.Fields != nil {
		updates = append(updates, firestore.Update{Path: "fields", Value: *u.Fields})
	}
	if u.Filename != nil {
		updates = append(updates, firestore.Update{Path: "filename", Value: *u.Filename})
	}
	if u.Mimetype != nil {
		updates = append(updates, firestore.Update{Path: "mimetype", Value: *u.Mimetype})
	}
	return updates
}

func decodeDocument(snap *firestore.DocumentSnapshot) (*models.Document, error) {
	var doc models.Document
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", snap.Ref.ID, err)
	}
	doc.ID = snap.Ref.ID
	return &doc, nil
}

func mapFirestoreError(id string, err error) error {
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("document %s: %w", id, models.ErrNotFound)
	}
	if errors.Is(err, models.ErrNotFound) {
		return err
	}
	return fmt.Errorf("firestore operation on document %s failed: %w", id, err)
}
