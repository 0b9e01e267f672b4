package objstm

import "fmt"

// Document is the object graph of a whole file: every indirect object by id
// plus the trailer dictionary.
type Document struct {
	Objects map[ObjectID]Object
	Trailer Dict
}

func NewDocument() *Document {
	return &Document{Objects: make(map[ObjectID]Object)}
}

// Get resolves id, failing with ErrObjectNotFound if it is absent.
func (d *Document) Get(id ObjectID) (Object, error) {
	obj, ok := d.Objects[id]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrObjectNotFound, id)
	}
	return obj, nil
}

func (d *Document) Has(id ObjectID) bool {
	_, ok := d.Objects[id]
	return ok
}

// MaxObjectNumber returns the largest object number in use, or 0.
func (d *Document) MaxObjectNumber() uint32 {
	var n uint32
	for id := range d.Objects {
		if id.Number > n {
			n = id.Number
		}
	}
	return n
}
