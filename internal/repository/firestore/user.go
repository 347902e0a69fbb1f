package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/agendou/agendou-api/internal/model"
	"github.com/agendou/agendou-api/internal/repository"
	"github.com/agendou/agendou-api/pkg/apperror"
)

type userRepository struct {
	col *firestore.CollectionRef
}

func NewUserRepository(s *Store) repository.UserRepository {
	return &userRepository{col: s.client.Collection(colUsers)}
}

func decodeUser(snap *firestore.DocumentSnapshot) (*model.User, error) {
	var u model.User
	if err := snap.DataTo(&u); err != nil {
		return nil, apperror.NotFound("user")
	}
	u.ID = snap.Ref.ID
	return &u, nil
}

// Create writes the profile document. The id is the identity provider uid
// when set; otherwise the store assigns one.
func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	doc := r.col.NewDoc()
	if user.ID != "" {
		doc = r.col.Doc(user.ID)
	}

	toSave := *user
	toSave.CreatedAt = time.Time{}
	toSave.UpdatedAt = time.Time{}
	if _, err := doc.Set(ctx, &toSave); err != nil {
		return nil, apperror.FromStore(err, "user")
	}
	return readDoc(ctx, doc, "user", decodeUser)
}

func (r *userRepository) Get(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperror.InvalidArgument("user id is required")
	}
	return readDoc(ctx, r.col.Doc(id), "user", decodeUser)
}

func (r *userRepository) Update(ctx context.Context, user *model.User) (*model.User, error) {
	if user.ID == "" {
		return nil, apperror.InvalidArgument("user id is required")
	}

	// email mirrors the identity provider record and is not updated here.
	doc := r.col.Doc(user.ID)
	updates := []firestore.Update{
		{Path: "name", Value: user.Name},
		{Path: "type", Value: user.Type},
		{Path: "phone", Value: user.Phone},
		{Path: "imageUrl", Value: user.ImageURL},
		{Path: "rating", Value: user.Rating},
		{Path: "categoryRef", Value: user.CategoryRef},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}
	if _, err := doc.Update(ctx, updates); err != nil {
		return nil, apperror.FromStore(err, "user")
	}
	return readDoc(ctx, doc, "user", decodeUser)
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperror.InvalidArgument("user id is required")
	}
	if _, err := r.col.Doc(id).Delete(ctx); err != nil {
		return apperror.FromStore(err, "user")
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	return getAll(ctx, r.col.OrderBy(fieldCreatedAt, firestore.Desc), "user", decodeUser)
}

func (r *userRepository) ListByCategory(ctx context.Context, categoryID string) ([]*model.User, error) {
	q := r.col.Where("categoryRef", "==", categoryID).OrderBy(fieldCreatedAt, firestore.Desc)
	return getAll(ctx, q, "user", decodeUser)
}

func (r *userRepository) WatchAll(ctx context.Context) *repository.Subscription[[]*model.User] {
	return watch(ctx, r.col.OrderBy(fieldCreatedAt, firestore.Desc), "user", decodeUser)
}
