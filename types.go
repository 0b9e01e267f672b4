package objstm

import (
	"cmp"
	"fmt"
	"slices"
)

// Well-known dictionary keys and names used by object streams.
const (
	KeyType        Name = "Type"
	KeyN           Name = "N"
	KeyFirst       Name = "First"
	KeyLength      Name = "Length"
	KeyFilter      Name = "Filter"
	KeyDecodeParms Name = "DecodeParms"

	TypeObjStm  Name = "ObjStm"
	TypeXRef    Name = "XRef"
	TypeCatalog Name = "Catalog"
	TypePages   Name = "Pages"
	TypePage    Name = "Page"

	FilterFlate  Name = "FlateDecode"
	FilterBrotli Name = "BrotliDecode"
)

// ObjectID identifies an indirect object.
type ObjectID struct {
	Number     uint32
	Generation uint16
}

// Compare orders ids by object number, then generation.
func (id ObjectID) Compare(other ObjectID) int {
	if c := cmp.Compare(id.Number, other.Number); c != 0 {
		return c
	}
	return cmp.Compare(id.Generation, other.Generation)
}

func (id ObjectID) String() string {
	return fmt.Sprintf("%d %d", id.Number, id.Generation)
}

type Kind uint8

const (
	KindNull Kind = iota
	KindBoolean
	KindInteger
	KindReal
	KindString
	KindName
	KindArray
	KindDict
	KindStream
	KindReference
)

var kindNames = [...]string{
	KindNull:      "null",
	KindBoolean:   "boolean",
	KindInteger:   "integer",
	KindReal:      "real",
	KindString:    "string",
	KindName:      "name",
	KindArray:     "array",
	KindDict:      "dictionary",
	KindStream:    "stream",
	KindReference: "reference",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Object is one of Null, Boolean, Integer, Real, String, Name, Array, Dict,
// *Stream or Reference. The set is closed.
type Object interface {
	Kind() Kind
	isObject()
}

type (
	Null      struct{}
	Boolean   bool
	Integer   int64
	Real      float64
	String    string
	Name      string
	Array     []Object
	Reference ObjectID
)

func (Null) Kind() Kind      { return KindNull }
func (Boolean) Kind() Kind   { return KindBoolean }
func (Integer) Kind() Kind   { return KindInteger }
func (Real) Kind() Kind      { return KindReal }
func (String) Kind() Kind    { return KindString }
func (Name) Kind() Kind      { return KindName }
func (Array) Kind() Kind     { return KindArray }
func (Dict) Kind() Kind      { return KindDict }
func (*Stream) Kind() Kind   { return KindStream }
func (Reference) Kind() Kind { return KindReference }

func (Null) isObject()      {}
func (Boolean) isObject()   {}
func (Integer) isObject()   {}
func (Real) isObject()      {}
func (String) isObject()    {}
func (Name) isObject()      {}
func (Array) isObject()     {}
func (Dict) isObject()      {}
func (*Stream) isObject()   {}
func (Reference) isObject() {}

// ID returns the referenced object id.
func (r Reference) ID() ObjectID { return ObjectID(r) }

// Ref is shorthand for a generation-0 reference.
func Ref(num uint32) Reference { return Reference{Number: num} }

type DictEntry struct {
	Key   Name
	Value Object
}

// Dict is an ordered dictionary. Keys are unique; Set replaces in place.
type Dict []DictEntry

func (d Dict) Get(key Name) (Object, bool) {
	for _, e := range d {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

func (d Dict) Len() int { return len(d) }

func (d *Dict) Set(key Name, value Object) {
	for i := range *d {
		if (*d)[i].Key == key {
			(*d)[i].Value = value
			return
		}
	}
	*d = append(*d, DictEntry{Key: key, Value: value})
}

func (d *Dict) Delete(key Name) {
	*d = slices.DeleteFunc(*d, func(e DictEntry) bool { return e.Key == key })
}

// Clone returns a shallow copy whose entry slice can be mutated independently.
func (d Dict) Clone() Dict {
	if d == nil {
		return nil
	}
	return slices.Clone(d)
}

// IntegerValue returns the Integer stored under key.
func (d Dict) IntegerValue(key Name) (int64, bool) {
	v, ok := d.Get(key)
	if !ok {
		return 0, false
	}
	i, ok := v.(Integer)
	return int64(i), ok
}

// NameValue returns the Name stored under key.
func (d Dict) NameValue(key Name) (Name, bool) {
	v, ok := d.Get(key)
	if !ok {
		return "", false
	}
	n, ok := v.(Name)
	return n, ok
}

// IDSet is an unordered set of object ids.
type IDSet map[ObjectID]struct{}

func (s IDSet) Has(id ObjectID) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Add(id ObjectID) {
	s[id] = struct{}{}
}

// Sorted returns the members in ascending order.
func (s IDSet) Sorted() []ObjectID {
	ids := make([]ObjectID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, ObjectID.Compare)
	return ids
}
