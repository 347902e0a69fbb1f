// Package firestore implements the repository interfaces on the hosted
// document store. All errors route through apperror.FromStore; documents
// carry server-assigned createdAt/updatedAt timestamps.
package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/agendou/agendou-api/internal/repository"
	"github.com/agendou/agendou-api/pkg/apperror"
)

// Collection names, shared with the mobile clients.
const (
	colUsers         = "users"
	colServices      = "services"
	colAppointments  = "appointments"
	colCategories    = "categories"
	colReviews       = "reviews"
	colWorkSchedules = "workSchedules"
)

const fieldCreatedAt = "createdAt"

// Store wraps the Firestore client shared by all repositories.
type Store struct {
	client *firestore.Client
}

func NewStore(client *firestore.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Close() error {
	return s.client.Close()
}

// Ping verifies the store connection by listing collection ids.
func (s *Store) Ping(ctx context.Context) error {
	if _, err := s.client.Collections(ctx).Next(); err != nil && err != iterator.Done {
		return apperror.FromStore(err, "store")
	}
	return nil
}

// readDoc fetches one document and decodes it. A missing document or one
// that does not decode into the expected shape is a NotFound.
func readDoc[T any](ctx context.Context, doc *firestore.DocumentRef, resource string, decode func(*firestore.DocumentSnapshot) (*T, error)) (*T, error) {
	snap, err := doc.Get(ctx)
	if err != nil {
		return nil, apperror.FromStore(err, resource)
	}
	return decode(snap)
}

// getAll runs a one-shot query.
func getAll[T any](ctx context.Context, q firestore.Query, resource string, decode func(*firestore.DocumentSnapshot) (*T, error)) ([]*T, error) {
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, apperror.FromStore(err, resource)
	}

	out := make([]*T, 0, len(snaps))
	for _, snap := range snaps {
		v, err := decode(snap)
		if err != nil {
			// Skip documents that no longer match the entity shape rather
			// than failing the whole list.
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// watch opens a snapshot listener on q and republishes each result set
// through a Subscription. The listener is stopped when the pump exits,
// whether the consumer closed the handle or the stream failed.
func watch[T any](ctx context.Context, q firestore.Query, resource string, decode func(*firestore.DocumentSnapshot) (*T, error)) *repository.Subscription[[]*T] {
	return repository.NewSubscription(ctx, func(ctx context.Context, send func([]*T) bool) error {
		it := q.Snapshots(ctx)
		defer it.Stop()

		for {
			qsnap, err := it.Next()
			if err != nil {
				return apperror.FromStore(err, resource)
			}

			out := make([]*T, 0, qsnap.Size)
			docs := qsnap.Documents
			for {
				snap, err := docs.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					return apperror.FromStore(err, resource)
				}
				v, err := decode(snap)
				if err != nil {
					continue
				}
				out = append(out, v)
			}

			if !send(out) {
				return nil
			}
		}
	})
}
