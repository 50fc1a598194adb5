package services

import (
	"context"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/HSouheill/coffee_backend/apperrors"
	"github.com/HSouheill/coffee_backend/models"
	"github.com/HSouheill/coffee_backend/query"
	"github.com/HSouheill/coffee_backend/security"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	security.HashCost = bcrypt.MinCost
}

// mockAdminStore keeps accounts in memory
type mockAdminStore struct {
	admins     map[primitive.ObjectID]*models.Admin
	loginSaves int
	err        error
}

func newMockAdminStore(admins ...*models.Admin) *mockAdminStore {
	m := &mockAdminStore{admins: make(map[primitive.ObjectID]*models.Admin)}
	for _, a := range admins {
		if a.ID.IsZero() {
			a.ID = primitive.NewObjectID()
		}
		m.admins[a.ID] = a
	}
	return m
}

func (m *mockAdminStore) FindByLogin(ctx context.Context, identifier string) (*models.Admin, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, a := range m.admins {
		if a.Username == identifier || a.Email == identifier {
			cp := *a
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("Admin")
}

func (m *mockAdminStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	if m.err != nil {
		return nil, m.err
	}
	a, ok := m.admins[id]
	if !ok {
		return nil, apperrors.NotFound("Admin")
	}
	cp := *a
	return &cp, nil
}

func (m *mockAdminStore) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	for _, a := range m.admins {
		if a.Username == username || a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAdminStore) EmailTaken(ctx context.Context, email string, exclude primitive.ObjectID) (bool, error) {
	for id, a := range m.admins {
		if a.Email == email && id != exclude {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAdminStore) List(ctx context.Context) ([]models.Admin, error) {
	out := make([]models.Admin, 0, len(m.admins))
	for _, a := range m.admins {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockAdminStore) Create(ctx context.Context, admin *models.Admin) error {
	if m.err != nil {
		return m.err
	}
	admin.ID = primitive.NewObjectID()
	cp := *admin
	m.admins[admin.ID] = &cp
	return nil
}

func (m *mockAdminStore) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Admin, error) {
	a, ok := m.admins[id]
	if !ok {
		return nil, apperrors.NotFound("Admin")
	}
	for k, v := range set {
		switch k {
		case "firstName":
			a.FirstName = v.(string)
		case "lastName":
			a.LastName = v.(string)
		case "email":
			a.Email = v.(string)
		case "role":
			a.Role = v.(string)
		case "password":
			a.Password = v.(string)
		case "isActive":
			a.IsActive = v.(bool)
		}
	}
	cp := *a
	return &cp, nil
}

func (m *mockAdminStore) SaveLoginState(ctx context.Context, id primitive.ObjectID, attempts int, lockUntil, lastLogin *time.Time) error {
	a, ok := m.admins[id]
	if !ok {
		return apperrors.NotFound("Admin")
	}
	m.loginSaves++
	a.LoginAttempts = attempts
	a.LockUntil = lockUntil
	if lastLogin != nil {
		a.LastLogin = lastLogin
	}
	return nil
}

func (m *mockAdminStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := m.admins[id]; !ok {
		return apperrors.NotFound("Admin")
	}
	delete(m.admins, id)
	return nil
}

// mockContentStore stores documents as bson maps so one fake serves both entities.
// Filters only match on top-level equality; operators and dotted keys are ignored.
type mockContentStore[T any] struct {
	docs    []bson.M
	queries []query.Query
	err     error
}

func (m *mockContentStore[T]) seed(items ...T) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(items))
	for i := range items {
		id, _ := m.Insert(context.Background(), &items[i])
		ids = append(ids, id)
	}
	return ids
}

func (m *mockContentStore[T]) Find(ctx context.Context, q query.Query) ([]T, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.queries = append(m.queries, q)

	matched := m.match(q.Filter)
	if q.Skip > 0 {
		if int(q.Skip) >= len(matched) {
			matched = nil
		} else {
			matched = matched[q.Skip:]
		}
	}
	if q.Limit > 0 && int(q.Limit) < len(matched) {
		matched = matched[:q.Limit]
	}

	out := make([]T, 0, len(matched))
	for _, doc := range matched {
		out = append(out, decodeDoc[T](doc))
	}
	return out, nil
}

func (m *mockContentStore[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	return int64(len(m.match(filter))), m.err
}

func (m *mockContentStore[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	matched := m.match(filter)
	if len(matched) == 0 {
		return nil, apperrors.NotFound("Item")
	}
	item := decodeDoc[T](matched[0])
	return &item, nil
}

func (m *mockContentStore[T]) Insert(ctx context.Context, doc *T) (primitive.ObjectID, error) {
	if m.err != nil {
		return primitive.NilObjectID, m.err
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	stored := bson.M{}
	if err := bson.Unmarshal(raw, &stored); err != nil {
		return primitive.NilObjectID, err
	}
	id := primitive.NewObjectID()
	stored["_id"] = id
	m.docs = append(m.docs, stored)
	return id, nil
}

func (m *mockContentStore[T]) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*T, error) {
	doc := m.byID(id)
	if doc == nil {
		return nil, apperrors.NotFound("Item")
	}
	for k, v := range set {
		doc[k] = v
	}
	item := decodeDoc[T](doc)
	return &item, nil
}

func (m *mockContentStore[T]) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	for i, doc := range m.docs {
		if doc["_id"] == id {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("Item")
}

func (m *mockContentStore[T]) DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	var deleted int64
	for _, id := range ids {
		if m.DeleteByID(ctx, id) == nil {
			deleted++
		}
	}
	return deleted, nil
}

func (m *mockContentStore[T]) UpdateMany(ctx context.Context, ids []primitive.ObjectID, set bson.M) (int64, int64, error) {
	var matched int64
	for _, id := range ids {
		if doc := m.byID(id); doc != nil {
			matched++
			for k, v := range set {
				doc[k] = v
			}
		}
	}
	return matched, matched, nil
}

func (m *mockContentStore[T]) ToggleMany(ctx context.Context, ids []primitive.ObjectID, field string) (int64, int64, error) {
	var matched int64
	for _, id := range ids {
		if doc := m.byID(id); doc != nil {
			matched++
			current, _ := doc[field].(bool)
			doc[field] = !current
		}
	}
	return matched, matched, nil
}

func (m *mockContentStore[T]) Distinct(ctx context.Context, field string, filter bson.M) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, doc := range m.match(filter) {
		if s, ok := lookup(doc, field).(string); ok && s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *mockContentStore[T]) CategoryCounts(ctx context.Context) ([]models.CategoryCount, error) {
	counts := map[string]int64{}
	for _, doc := range m.docs {
		if s, ok := lookup(doc, "category.en").(string); ok {
			counts[s]++
		}
	}
	out := make([]models.CategoryCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, models.CategoryCount{Category: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

func (m *mockContentStore[T]) all() []T {
	out := make([]T, 0, len(m.docs))
	for _, doc := range m.docs {
		out = append(out, decodeDoc[T](doc))
	}
	return out
}

func (m *mockContentStore[T]) byID(id primitive.ObjectID) bson.M {
	for _, doc := range m.docs {
		if doc["_id"] == id {
			return doc
		}
	}
	return nil
}

func (m *mockContentStore[T]) match(filter bson.M) []bson.M {
	var out []bson.M
	for _, doc := range m.docs {
		ok := true
		for k, v := range filter {
			if strings.HasPrefix(k, "$") || strings.Contains(k, ".") {
				continue
			}
			if !reflect.DeepEqual(doc[k], v) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, doc)
		}
	}
	return out
}

type mockMenuStore struct {
	mockContentStore[models.MenuItem]
}

func (m *mockMenuStore) PriceStats(ctx context.Context) (models.PriceStats, error) {
	var stats models.PriceStats
	items := m.all()
	for i, item := range items {
		if i == 0 || item.Price < stats.MinPrice {
			stats.MinPrice = item.Price
		}
		if item.Price > stats.MaxPrice {
			stats.MaxPrice = item.Price
		}
		stats.AvgPrice += item.Price
	}
	if len(items) > 0 {
		stats.AvgPrice /= float64(len(items))
	}
	return stats, nil
}

type mockGalleryStore struct {
	mockContentStore[models.GalleryItem]
}

func (m *mockGalleryStore) Reorder(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	var matched int64
	for i, id := range ids {
		if doc := m.byID(id); doc != nil {
			doc["order"] = i
			matched++
		}
	}
	return matched, nil
}

func decodeDoc[T any](doc bson.M) T {
	var out T
	raw, err := bson.Marshal(doc)
	if err != nil {
		panic(err)
	}
	if err := bson.Unmarshal(raw, &out); err != nil {
		panic(err)
	}
	return out
}

func lookup(doc bson.M, path string) interface{} {
	var cur interface{} = doc
	for _, part := range strings.Split(path, ".") {
		switch v := cur.(type) {
		case bson.M:
			cur = v[part]
		case bson.D:
			cur = v.Map()[part]
		default:
			return nil
		}
	}
	return cur
}
