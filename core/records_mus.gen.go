// Code generated by musgen-go. DO NOT EDIT.

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

var (
	sliceYcn9ObnPeynB5vT0fgxbngΞΞ = ord.NewSliceSer[string](ord.String)
)

var IDMUS = iDMUS{}

type iDMUS struct{}

func (s iDMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s iDMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	tmp, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v = ID(tmp)
	return
}

func (s iDMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s iDMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

var SwipeActionMUS = swipeActionMUS{}

type swipeActionMUS struct{}

func (s swipeActionMUS) Marshal(v SwipeAction, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s swipeActionMUS) Unmarshal(bs []byte) (v SwipeAction, n int, err error) {
	tmp, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	v = SwipeAction(tmp)
	return
}

func (s swipeActionMUS) Size(v SwipeAction) (size int) {
	return varint.Int.Size(int(v))
}

func (s swipeActionMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

var CandidateProfileMUS = candidateProfileMUS{}

type candidateProfileMUS struct{}

func (s candidateProfileMUS) Marshal(v CandidateProfile, bs []byte) (n int) {
	n = ord.String.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += sliceYcn9ObnPeynB5vT0fgxbngΞΞ.Marshal(v.Skills, bs[n:])
	n += sliceYcn9ObnPeynB5vT0fgxbngΞΞ.Marshal(v.Goals, bs[n:])
	n += sliceYcn9ObnPeynB5vT0fgxbngΞΞ.Marshal(v.Demands, bs[n:])
	n += sliceYcn9ObnPeynB5vT0fgxbngΞΞ.Marshal(v.Resources, bs[n:])
	n += ord.String.Marshal(v.Location, bs[n:])
	n += sliceYcn9ObnPeynB5vT0fgxbngΞΞ.Marshal(v.Institutions, bs[n:])
	n += sliceYcn9ObnPeynB5vT0fgxbngΞΞ.Marshal(v.Projects, bs[n:])
	n += varint.Int.Marshal(v.ResponseRate, bs[n:])
	n += varint.Int.Marshal(v.MutualConnections, bs[n:])
	n += ord.Bool.Marshal(v.Online, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.LastSeen, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.UpdatedAt, bs[n:])
}

func (s candidateProfileMUS) Unmarshal(bs []byte) (v CandidateProfile, n int, err error) {
	v.Id, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Skills, n1, err = sliceYcn9ObnPeynB5vT0fgxbngΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Goals, n1, err = sliceYcn9ObnPeynB5vT0fgxbngΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Demands, n1, err = sliceYcn9ObnPeynB5vT0fgxbngΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Resources, n1, err = sliceYcn9ObnPeynB5vT0fgxbngΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Location, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Institutions, n1, err = sliceYcn9ObnPeynB5vT0fgxbngΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Projects, n1, err = sliceYcn9ObnPeynB5vT0fgxbngΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ResponseRate, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.MutualConnections, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Online, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.LastSeen, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s candidateProfileMUS) Size(v CandidateProfile) (size int) {
	size = ord.String.Size(v.Id)
	size += ord.String.Size(v.Name)
	size += sliceYcn9ObnPeynB5vT0fgxbngΞΞ.Size(v.Skills)
	size += sliceYcn9ObnPeynB5vT0fgxbngΞΞ.Size(v.Goals)
	size += sliceYcn9ObnPeynB5vT0fgxbngΞΞ.Size(v.Demands)
	size += sliceYcn9ObnPeynB5vT0fgxbngΞΞ.Size(v.Resources)
	size += ord.String.Size(v.Location)
	size += sliceYcn9ObnPeynB5vT0fgxbngΞΞ.Size(v.Institutions)
	size += sliceYcn9ObnPeynB5vT0fgxbngΞΞ.Size(v.Projects)
	size += varint.Int.Size(v.ResponseRate)
	size += varint.Int.Size(v.MutualConnections)
	size += ord.Bool.Size(v.Online)
	size += raw.TimeUnixMicro.Size(v.LastSeen)
	return size + raw.TimeUnixMicro.Size(v.UpdatedAt)
}

func (s candidateProfileMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceYcn9ObnPeynB5vT0fgxbngΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceYcn9ObnPeynB5vT0fgxbngΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceYcn9ObnPeynB5vT0fgxbngΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceYcn9ObnPeynB5vT0fgxbngΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceYcn9ObnPeynB5vT0fgxbngΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceYcn9ObnPeynB5vT0fgxbngΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.Bool.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var SwipeRecordMUS = swipeRecordMUS{}

type swipeRecordMUS struct{}

func (s swipeRecordMUS) Marshal(v SwipeRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.CallerId, bs[n:])
	n += ord.String.Marshal(v.TargetId, bs[n:])
	n += SwipeActionMUS.Marshal(v.Action, bs[n:])
	n += ord.String.Marshal(v.SourceQuery, bs[n:])
	n += varint.Int.Marshal(v.SourceTier, bs[n:])
	n += varint.Int.Marshal(v.CardPosition, bs[n:])
	n += ord.String.Marshal(v.IdempotencyKey, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.Timestamp, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
}

func (s swipeRecordMUS) Unmarshal(bs []byte) (v SwipeRecord, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.CallerId, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.TargetId, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Action, n1, err = SwipeActionMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SourceQuery, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SourceTier, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CardPosition, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.IdempotencyKey, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Timestamp, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s swipeRecordMUS) Size(v SwipeRecord) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.CallerId)
	size += ord.String.Size(v.TargetId)
	size += SwipeActionMUS.Size(v.Action)
	size += ord.String.Size(v.SourceQuery)
	size += varint.Int.Size(v.SourceTier)
	size += varint.Int.Size(v.CardPosition)
	size += ord.String.Size(v.IdempotencyKey)
	size += raw.TimeUnixMicro.Size(v.Timestamp)
	return size + raw.TimeUnixMicro.Size(v.InsertedAt)
}

func (s swipeRecordMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = SwipeActionMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var CardSessionMUS = cardSessionMUS{}

type cardSessionMUS struct{}

func (s cardSessionMUS) Marshal(v CardSession, bs []byte) (n int) {
	n = ord.String.Marshal(v.CallerId, bs)
	n += ord.String.Marshal(v.CandidateId, bs[n:])
	n += ord.String.Marshal(v.SourceQuery, bs[n:])
	n += varint.Int.Marshal(v.SourceTier, bs[n:])
	n += varint.Int.Marshal(v.Position, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.UpdatedAt, bs[n:])
}

func (s cardSessionMUS) Unmarshal(bs []byte) (v CardSession, n int, err error) {
	v.CallerId, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.CandidateId, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SourceQuery, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SourceTier, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Position, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s cardSessionMUS) Size(v CardSession) (size int) {
	size = ord.String.Size(v.CallerId)
	size += ord.String.Size(v.CandidateId)
	size += ord.String.Size(v.SourceQuery)
	size += varint.Int.Size(v.SourceTier)
	size += varint.Int.Size(v.Position)
	return size + raw.TimeUnixMicro.Size(v.UpdatedAt)
}

func (s cardSessionMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var CheckpointMUS = checkpointMUS{}

type checkpointMUS struct{}

func (s checkpointMUS) Marshal(v Checkpoint, bs []byte) (n int) {
	n = ord.String.Marshal(v.ProcessorType, bs)
	n += ord.String.Marshal(v.Cursor, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.UpdatedAt, bs[n:])
}

func (s checkpointMUS) Unmarshal(bs []byte) (v Checkpoint, n int, err error) {
	v.ProcessorType, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Cursor, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s checkpointMUS) Size(v Checkpoint) (size int) {
	size = ord.String.Size(v.ProcessorType)
	size += ord.String.Size(v.Cursor)
	return size + raw.TimeUnixMicro.Size(v.UpdatedAt)
}

func (s checkpointMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}
