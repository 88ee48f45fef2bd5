package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// ResultSet is the wire format of the Key and Value fields of a query
// response: one entry per matched model.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

func (m *ResultSet) Reset()         { *m = ResultSet{} }
func (m *ResultSet) String() string { return proto.CompactTextString(m) }
func (*ResultSet) ProtoMessage()    {}

// wireResultSet has no Marshal method, so proto encodes it through
// reflection instead of calling back into ResultSet.
type wireResultSet ResultSet

func (m *wireResultSet) Reset()         { *m = wireResultSet{} }
func (m *wireResultSet) String() string { return proto.CompactTextString(m) }
func (*wireResultSet) ProtoMessage()    {}

func (m *ResultSet) Marshal() ([]byte, error) {
	return proto.Marshal((*wireResultSet)(m))
}

func (m *ResultSet) Unmarshal(raw []byte) error {
	if err := proto.Unmarshal(raw, (*wireResultSet)(m)); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

func ResultsFromKeys(models []barter.Model) *ResultSet {
	return collect(models, func(m barter.Model) []byte { return m.Key })
}

func ResultsFromValues(models []barter.Model) *ResultSet {
	return collect(models, func(m barter.Model) []byte { return m.Value })
}

func collect(models []barter.Model, field func(barter.Model) []byte) *ResultSet {
	res := &ResultSet{Results: make([][]byte, len(models))}
	for i, m := range models {
		res.Results[i] = field(m)
	}
	return res
}

// JoinResults pairs the keys and values of a query response back into
// models.
func JoinResults(keys, values *ResultSet) ([]barter.Model, error) {
	if len(keys.Results) != len(values.Results) {
		return nil, errors.Wrapf(errors.ErrState, "%d keys for %d values", len(keys.Results), len(values.Results))
	}
	models := make([]barter.Model, len(keys.Results))
	for i, k := range keys.Results {
		models[i] = barter.Pair(k, values.Results[i])
	}
	return models, nil
}

// UnmarshalOneResult decodes the first value of a query response into
// dst. An empty response is ErrNotFound.
func UnmarshalOneResult(raw []byte, dst barter.Persistent) error {
	var rs ResultSet
	if err := rs.Unmarshal(raw); err != nil {
		return err
	}
	if len(rs.Results) == 0 {
		return errors.Wrap(errors.ErrNotFound, "no result")
	}
	return dst.Unmarshal(rs.Results[0])
}
