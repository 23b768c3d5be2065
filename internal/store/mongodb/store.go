// Package mongodb implements the path-addressed document store on MongoDB.
//
// Every pushed or set subtree lives in one document keyed by its full path
// ("users/{uid}/workoutPlans/{planId}"). Reads below a document navigate
// into it; reads above assemble the children. Subscriptions ride on change
// streams, so the backing deployment must be a replica set.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fittrack/fitness-tracker/internal/store"
)

const documentsCollectionName = "documents"

type document struct {
	Path  string      `bson:"_id"`
	Value interface{} `bson:"value"`
}

// Store implements store.Client on a single MongoDB collection.
type Store struct {
	collection *mongo.Collection
}

var _ store.Client = (*Store)(nil)

// New creates a MongoDB-backed store client.
func New(db *mongo.Database) *Store {
	return &Store{collection: db.Collection(documentsCollectionName)}
}

func (s *Store) Get(ctx context.Context, path string) (store.Value, error) {
	if _, err := store.SplitPath(path); err != nil {
		return nil, err
	}

	// Exact document at this path.
	value, found, err := s.findDocAt(ctx, path)
	if err != nil {
		return nil, err
	}
	if found {
		return toStoreValue(value), nil
	}

	// A document at an ancestor path holding this path inside it.
	ancestorPath, ancestorValue, found, err := s.findAncestorDoc(ctx, path)
	if err != nil {
		return nil, err
	}
	if found {
		rel := relativeSegments(ancestorPath, path)
		return navigate(toStoreValue(ancestorValue), rel), nil
	}

	// Child documents below this path, assembled into one tree.
	return s.assembleChildren(ctx, path)
}

func (s *Store) Set(ctx context.Context, path string, value store.Value) error {
	if _, err := store.SplitPath(path); err != nil {
		return err
	}
	models, err := s.writeModels(ctx, path, value)
	if err != nil {
		return err
	}
	_, err = s.collection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true))
	return err
}

func (s *Store) Push(ctx context.Context, path string, value store.Value) (string, error) {
	key := store.PushKey()
	if err := s.Set(ctx, store.JoinPath(path, key), value); err != nil {
		return "", err
	}
	return key, nil
}

// Update applies a multi-path patch through one BulkWrite, so both halves of
// a workout-edit (the workout record and the plan's day slot) land in a
// single store call.
func (s *Store) Update(ctx context.Context, patch map[string]store.Value) error {
	var models []mongo.WriteModel
	for path, value := range patch {
		if _, err := store.SplitPath(path); err != nil {
			return err
		}
		pathModels, err := s.writeModels(ctx, path, value)
		if err != nil {
			return err
		}
		models = append(models, pathModels...)
	}
	if len(models) == 0 {
		return nil
	}
	_, err := s.collection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true))
	return err
}

func (s *Store) Remove(ctx context.Context, path string) error {
	return s.Set(ctx, path, nil)
}

func (s *Store) Subscribe(ctx context.Context, path string) (*store.Subscription, error) {
	if _, err := store.SplitPath(path); err != nil {
		return nil, err
	}

	watchCtx, cancelWatch := context.WithCancel(ctx)
	stream, err := s.collection.Watch(watchCtx, mongo.Pipeline{})
	if err != nil {
		cancelWatch()
		return nil, err
	}

	values := make(chan store.Value, 1)
	errs := make(chan error, 1)

	go func() {
		defer close(values)
		defer close(errs)
		defer stream.Close(context.Background())

		// Initial snapshot before any change events.
		snapshot, err := s.Get(watchCtx, path)
		if err != nil {
			errs <- err
			return
		}
		select {
		case values <- snapshot:
		case <-watchCtx.Done():
			return
		}

		for stream.Next(watchCtx) {
			var event struct {
				DocumentKey struct {
					ID string `bson:"_id"`
				} `bson:"documentKey"`
			}
			if err := stream.Decode(&event); err != nil {
				errs <- err
				return
			}
			changed := event.DocumentKey.ID
			if !store.IsAncestor(path, changed) && !store.IsAncestor(changed, path) {
				continue
			}
			snapshot, err := s.Get(watchCtx, path)
			if err != nil {
				errs <- err
				return
			}
			select {
			case values <- snapshot:
			case <-watchCtx.Done():
				return
			}
		}
		if err := stream.Err(); err != nil && !errors.Is(err, context.Canceled) {
			errs <- err
		}
	}()

	return store.NewSubscription(values, errs, cancelWatch), nil
}

// writeModels builds the bulk-write models for one path write. When the path
// lands inside an existing ancestor document the write becomes a nested
// $set/$unset; otherwise the document at the path is replaced wholesale and
// any stale child documents beneath it are cleared.
func (s *Store) writeModels(ctx context.Context, path string, value store.Value) ([]mongo.WriteModel, error) {
	ancestorPath, _, found, err := s.findAncestorDoc(ctx, path)
	if err != nil {
		return nil, err
	}
	if found {
		field := "value." + strings.Join(relativeSegments(ancestorPath, path), ".")
		var update bson.M
		if value == nil {
			update = bson.M{"$unset": bson.M{field: ""}}
		} else {
			update = bson.M{"$set": bson.M{field: value}}
		}
		model := mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": ancestorPath}).
			SetUpdate(update)
		return []mongo.WriteModel{model}, nil
	}

	childFilter := bson.M{"_id": bson.M{"$regex": "^" + regexp.QuoteMeta(path+"/")}}
	models := []mongo.WriteModel{
		mongo.NewDeleteManyModel().SetFilter(childFilter),
	}
	if value == nil {
		models = append(models,
			mongo.NewDeleteOneModel().SetFilter(bson.M{"_id": path}))
	} else {
		models = append(models,
			mongo.NewReplaceOneModel().
				SetFilter(bson.M{"_id": path}).
				SetReplacement(document{Path: path, Value: value}).
				SetUpsert(true))
	}
	return models, nil
}

func (s *Store) findDocAt(ctx context.Context, path string) (interface{}, bool, error) {
	var doc document
	err := s.collection.FindOne(ctx, bson.M{"_id": path}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return doc.Value, true, nil
}

// findAncestorDoc scans proper path prefixes from longest to shortest for a
// stored document. Path depth is small (at most a handful of segments), so a
// lookup per prefix is fine.
func (s *Store) findAncestorDoc(ctx context.Context, path string) (string, interface{}, bool, error) {
	segments, err := store.SplitPath(path)
	if err != nil {
		return "", nil, false, err
	}
	for i := len(segments) - 1; i > 0; i-- {
		prefix := store.JoinPath(segments[:i]...)
		value, found, err := s.findDocAt(ctx, prefix)
		if err != nil {
			return "", nil, false, err
		}
		if found {
			return prefix, value, true, nil
		}
	}
	return "", nil, false, nil
}

func (s *Store) assembleChildren(ctx context.Context, path string) (store.Value, error) {
	filter := bson.M{"_id": bson.M{"$regex": "^" + regexp.QuoteMeta(path+"/")}}
	cursor, err := s.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tree := make(map[string]store.Value)
	found := false
	for cursor.Next(ctx) {
		var doc document
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		found = true
		rel := relativeSegments(path, doc.Path)
		insertAt(tree, rel, toStoreValue(doc.Value))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return tree, nil
}

func relativeSegments(ancestor, path string) []string {
	return strings.Split(strings.TrimPrefix(path, ancestor+"/"), "/")
}

// insertAt grafts value into the tree at the segment path, creating
// intermediate maps.
func insertAt(tree map[string]store.Value, segments []string, value store.Value) {
	for i := 0; i < len(segments)-1; i++ {
		child, ok := tree[segments[i]].(map[string]store.Value)
		if !ok {
			child = make(map[string]store.Value)
			tree[segments[i]] = child
		}
		tree = child
	}
	tree[segments[len(segments)-1]] = value
}

// navigate walks a decoded value along the given segments; a miss yields nil.
func navigate(node store.Value, segments []string) store.Value {
	for _, seg := range segments {
		switch n := node.(type) {
		case map[string]store.Value:
			node = n[seg]
		case []store.Value:
			idx := -1
			if _, err := fmt.Sscanf(seg, "%d", &idx); err != nil || idx < 0 || idx >= len(n) {
				return nil
			}
			node = n[idx]
		default:
			return nil
		}
	}
	return node
}

// toStoreValue converts a bson-decoded value into the JSON-like shape the
// store API promises (string keys, []any arrays, float64 numbers).
func toStoreValue(v interface{}) store.Value {
	switch n := v.(type) {
	case bson.D:
		out := make(map[string]store.Value, len(n))
		for _, e := range n {
			out[e.Key] = toStoreValue(e.Value)
		}
		return out
	case bson.M:
		out := make(map[string]store.Value, len(n))
		for k, child := range n {
			out[k] = toStoreValue(child)
		}
		return out
	case bson.A:
		out := make([]store.Value, len(n))
		for i, child := range n {
			out[i] = toStoreValue(child)
		}
		return out
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case primitive.DateTime:
		return n.Time().UTC().Format("2006-01-02T15:04:05.000Z")
	default:
		return v
	}
}
