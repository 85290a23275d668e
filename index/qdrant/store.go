// Copyright 2025 Foundrly
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package qdrant implements index.VectorIndex against a Qdrant instance
// over gRPC. Each candidate is stored as one point with two named vectors,
// "dense" and "sparse"; hybrid queries prefetch both and fuse them with
// reciprocal rank fusion server-side. Exclusion sets and hard filters are
// pushed down as Qdrant filter conditions so they never force a client-side
// scan.
package qdrant

import (
	"context"
	"fmt"

	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/foundrly/matchcore/core"
	"github.com/foundrly/matchcore/index"
)

const (
	denseVectorName  = "dense"
	sparseVectorName = "sparse"

	// payloadCandidateId carries the external string ID; Qdrant point IDs
	// are numeric, derived by hashing the candidate ID.
	payloadCandidateId = "candidate_id"

	// prefetchMultiplier widens each prefetch so fusion has enough
	// candidates from both signals before the final cut.
	prefetchMultiplier = 4
)

// Store is the sole owner of all Qdrant operations.
type Store struct {
	conn        *grpc.ClientConn
	points      pb.PointsClient
	collections pb.CollectionsClient
	collection  string
}

// New creates a Store connected to Qdrant at the given gRPC address.
func New(addr string, collection string) (*Store, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("qdrant: dial %s: %w", addr, err)
	}
	return &Store{
		conn:        conn,
		points:      pb.NewPointsClient(conn),
		collections: pb.NewCollectionsClient(conn),
		collection:  collection,
	}, nil
}

// Close closes the underlying gRPC connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// EnsureCollection creates the collection with the named dense and sparse
// vector spaces if it doesn't already exist.
func (s *Store) EnsureCollection(ctx context.Context, dims int) error {
	list, err := s.collections.List(ctx, &pb.ListCollectionsRequest{})
	if err != nil {
		return fmt.Errorf("qdrant: list collections: %w", err)
	}
	for _, c := range list.GetCollections() {
		if c.GetName() == s.collection {
			return nil
		}
	}

	_, err = s.collections.Create(ctx, &pb.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_ParamsMap{
				ParamsMap: &pb.VectorParamsMap{
					Map: map[string]*pb.VectorParams{
						denseVectorName: {
							Size:     uint64(dims),
							Distance: pb.Distance_Cosine,
						},
					},
				},
			},
		},
		SparseVectorsConfig: &pb.SparseVectorConfig{
			Map: map[string]*pb.SparseVectorParams{
				sparseVectorName: {},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("qdrant: create collection %s: %w", s.collection, err)
	}
	return nil
}

// Upsert stores or replaces index records as Qdrant points.
func (s *Store) Upsert(ctx context.Context, records []index.Record) error {
	if len(records) == 0 {
		return nil
	}

	points := make([]*pb.PointStruct, len(records))
	for i, rec := range records {
		payload := encodePayload(rec.Payload)
		payload[payloadCandidateId] = &pb.Value{Kind: &pb.Value_StringValue{StringValue: rec.ID}}

		vectors := map[string]*pb.Vector{
			sparseVectorName: {
				Data:    rec.Sparse.Values,
				Indices: &pb.SparseIndices{Data: rec.Sparse.Indices},
			},
		}
		if rec.Dense != nil {
			vectors[denseVectorName] = &pb.Vector{Data: rec.Dense}
		}

		points[i] = &pb.PointStruct{
			Id: pointId(rec.ID),
			Vectors: &pb.Vectors{
				VectorsOptions: &pb.Vectors_Vectors{
					Vectors: &pb.NamedVectors{Vectors: vectors},
				},
			},
			Payload: payload,
		}
	}

	wait := true
	_, err := s.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: s.collection,
		Wait:           &wait,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("qdrant: upsert %d points: %w", len(records), err)
	}
	return nil
}

// Fetch retrieves stored records by candidate ID; unknown IDs are skipped.
// Vectors are not populated, only payloads.
func (s *Store) Fetch(ctx context.Context, ids ...string) ([]index.Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	pointIds := make([]*pb.PointId, len(ids))
	for i, id := range ids {
		pointIds[i] = pointId(id)
	}

	resp, err := s.points.Get(ctx, &pb.GetPoints{
		CollectionName: s.collection,
		Ids:            pointIds,
		WithPayload:    &pb.WithPayloadSelector{SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true}},
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant: get %d points: %w", len(ids), err)
	}

	records := make([]index.Record, 0, len(resp.GetResult()))
	for _, p := range resp.GetResult() {
		payload := decodePayload(p.GetPayload())
		id, _ := payload[payloadCandidateId].(string)
		delete(payload, payloadCandidateId)
		records = append(records, index.Record{ID: id, Payload: payload})
	}
	return records, nil
}

// Delete removes candidates from the index; unknown IDs are ignored.
func (s *Store) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	pointIds := make([]*pb.PointId, len(ids))
	for i, id := range ids {
		pointIds[i] = pointId(id)
	}

	wait := true
	_, err := s.points.Delete(ctx, &pb.DeletePoints{
		CollectionName: s.collection,
		Wait:           &wait,
		Points: &pb.PointsSelector{
			PointsSelectorOneOf: &pb.PointsSelector_Points{
				Points: &pb.PointsIdsList{Ids: pointIds},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("qdrant: delete %d points: %w", len(ids), err)
	}
	return nil
}

// Search performs a hybrid query: dense and sparse prefetches fused with
// RRF when both signals are present, or a single-signal query otherwise.
func (s *Store) Search(ctx context.Context, query index.Query) ([]index.Hit, error) {
	limit := uint64(query.Limit)
	if limit == 0 {
		limit = 10
	}
	prefetchLimit := limit * prefetchMultiplier
	filter := buildFilter(query)

	req := &pb.QueryPoints{
		CollectionName: s.collection,
		Limit:          &limit,
		Filter:         filter,
		WithPayload:    &pb.WithPayloadSelector{SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true}},
	}

	hasDense := query.Dense != nil
	hasSparse := !query.Sparse.IsZero()
	switch {
	case hasDense && hasSparse:
		dense := denseVectorName
		sparse := sparseVectorName
		req.Prefetch = []*pb.PrefetchQuery{
			{
				Query:  pb.NewQueryDense(query.Dense),
				Using:  &dense,
				Limit:  &prefetchLimit,
				Filter: filter,
			},
			{
				Query:  pb.NewQuerySparse(query.Sparse.Indices, query.Sparse.Values),
				Using:  &sparse,
				Limit:  &prefetchLimit,
				Filter: filter,
			},
		}
		req.Query = pb.NewQueryFusion(pb.Fusion_RRF)
	case hasDense:
		dense := denseVectorName
		req.Query = pb.NewQueryDense(query.Dense)
		req.Using = &dense
	case hasSparse:
		sparse := sparseVectorName
		req.Query = pb.NewQuerySparse(query.Sparse.Indices, query.Sparse.Values)
		req.Using = &sparse
	default:
		return nil, nil
	}

	resp, err := s.points.Query(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("qdrant: query: %w", err)
	}

	hits := make([]index.Hit, 0, len(resp.GetResult()))
	for _, p := range resp.GetResult() {
		id := p.GetPayload()[payloadCandidateId].GetStringValue()
		if id == "" {
			continue
		}
		hits = append(hits, index.Hit{ID: id, Score: p.GetScore()})
	}
	return hits, nil
}

// buildFilter translates the query's exclusion set and hard filters into
// Qdrant conditions. Returns nil when there is nothing to filter on.
func buildFilter(query index.Query) *pb.Filter {
	var must []*pb.Condition
	for _, skill := range query.MustSkills {
		must = append(must, fieldMatch(index.PayloadSkills, skill))
	}
	if query.Location != "" {
		must = append(must, fieldMatch(index.PayloadLocation, query.Location))
	}

	var mustNot []*pb.Condition
	if len(query.Exclude) > 0 {
		ids := make([]*pb.PointId, len(query.Exclude))
		for i, id := range query.Exclude {
			ids[i] = pointId(id)
		}
		mustNot = append(mustNot, &pb.Condition{
			ConditionOneOf: &pb.Condition_HasId{
				HasId: &pb.HasIdCondition{HasId: ids},
			},
		})
	}

	if must == nil && mustNot == nil {
		return nil
	}
	return &pb.Filter{Must: must, MustNot: mustNot}
}

// pointId derives a stable numeric Qdrant point ID from the candidate's
// string ID. Qdrant only accepts numeric or UUID point IDs.
func pointId(id string) *pb.PointId {
	return &pb.PointId{
		PointIdOptions: &pb.PointId_Num{Num: uint64(core.IDFromContent(id))},
	}
}

func fieldMatch(key, value string) *pb.Condition {
	return &pb.Condition{
		ConditionOneOf: &pb.Condition_Field{
			Field: &pb.FieldCondition{
				Key: key,
				Match: &pb.Match{
					MatchValue: &pb.Match_Keyword{Keyword: value},
				},
			},
		},
	}
}

func encodePayload(payload map[string]any) map[string]*pb.Value {
	out := make(map[string]*pb.Value, len(payload))
	for k, val := range payload {
		switch tv := val.(type) {
		case string:
			out[k] = &pb.Value{Kind: &pb.Value_StringValue{StringValue: tv}}
		case int:
			out[k] = &pb.Value{Kind: &pb.Value_IntegerValue{IntegerValue: int64(tv)}}
		case int64:
			out[k] = &pb.Value{Kind: &pb.Value_IntegerValue{IntegerValue: tv}}
		case float64:
			out[k] = &pb.Value{Kind: &pb.Value_DoubleValue{DoubleValue: tv}}
		case bool:
			out[k] = &pb.Value{Kind: &pb.Value_BoolValue{BoolValue: tv}}
		case []string:
			values := make([]*pb.Value, len(tv))
			for i, s := range tv {
				values[i] = &pb.Value{Kind: &pb.Value_StringValue{StringValue: s}}
			}
			out[k] = &pb.Value{Kind: &pb.Value_ListValue{ListValue: &pb.ListValue{Values: values}}}
		default:
			out[k] = &pb.Value{Kind: &pb.Value_StringValue{StringValue: fmt.Sprint(tv)}}
		}
	}
	return out
}

func decodePayload(payload map[string]*pb.Value) map[string]any {
	out := make(map[string]any, len(payload))
	for k, val := range payload {
		switch kind := val.GetKind().(type) {
		case *pb.Value_StringValue:
			out[k] = kind.StringValue
		case *pb.Value_IntegerValue:
			out[k] = kind.IntegerValue
		case *pb.Value_DoubleValue:
			out[k] = kind.DoubleValue
		case *pb.Value_BoolValue:
			out[k] = kind.BoolValue
		case *pb.Value_ListValue:
			items := make([]string, 0, len(kind.ListValue.GetValues()))
			for _, v := range kind.ListValue.GetValues() {
				items = append(items, v.GetStringValue())
			}
			out[k] = items
		}
	}
	return out
}
