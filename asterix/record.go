// asterix/record.go
package asterix

import (
	"bytes"
	"fmt"
	"io"
)

// Record represents a single ASTERIX record
type Record struct {
	category Category
	fspec    *FSPEC
	items    map[string]DataItem
	uap      UAP
}

// NewRecord creates a new record for a specific category
func NewRecord(cat Category, uap UAP) (*Record, error) {
	if !cat.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCategory, cat)
	}
	if uap == nil {
		return nil, fmt.Errorf("%w: UAP cannot be nil", ErrInvalidMessage)
	}
	if uap.Category() != cat {
		return nil, fmt.Errorf("%w: UAP category %d does not match record category %d",
			ErrInvalidMessage, uap.Category(), cat)
	}

	return &Record{
		category: cat,
		fspec:    NewFSPEC(),
		items:    make(map[string]DataItem),
		uap:      uap,
	}, nil
}

// SetDataItem adds or updates a data item
func (r *Record) SetDataItem(id string, item DataItem) error {
	if item == nil {
		return fmt.Errorf("%w: data item cannot be nil", ErrInvalidMessage)
	}

	// Find FRN for this item
	var frn uint8
	for _, field := range r.uap.Fields() {
		if field.DataItem == id {
			frn = field.FRN
			break
		}
	}

	if frn == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownDataItem, id)
	}

	if err := item.Validate(); err != nil {
		return fmt.Errorf("validating %s: %w", id, err)
	}

	r.items[id] = item
	return r.fspec.SetFRN(frn)
}

// GetDataItem retrieves a data item by its ID
func (r *Record) GetDataItem(id string) (DataItem, bool) {
	item, exists := r.items[id]
	return item, exists
}

// HasDataItem reports whether the record carries the given item
func (r *Record) HasDataItem(id string) bool {
	_, exists := r.items[id]
	return exists
}

// Items returns the record's data items keyed by item ID. The map is
// shared with the record and must not be modified.
func (r *Record) Items() map[string]DataItem {
	return r.items
}

// ItemCount returns the number of data items in the record
func (r *Record) ItemCount() int {
	return len(r.items)
}

// Category returns the record's ASTERIX category
func (r *Record) Category() Category {
	return r.category
}

// UAP returns the User Application Profile the record was built with
func (r *Record) UAP() UAP {
	return r.uap
}

// FSPEC returns the record's field specification
func (r *Record) FSPEC() *FSPEC {
	return r.fspec
}

// Reset clears all items so the record can be reused
func (r *Record) Reset() {
	r.items = make(map[string]DataItem)
	r.fspec = NewFSPEC()
}

// Validate checks the record against the UAP's category rules
func (r *Record) Validate() error {
	return r.uap.Validate(r.items)
}

// EstimateSize estimates the encoded size of the record in bytes. An
// empty record estimates to zero.
func (r *Record) EstimateSize() int {
	if len(r.items) == 0 {
		return 0
	}

	size := r.fspec.Size()
	for _, field := range r.uap.Fields() {
		if _, exists := r.items[field.DataItem]; !exists {
			continue
		}
		// Fixed items are exact; variable items contribute at least
		// their minimum length
		if field.Length > 0 {
			size += int(field.Length)
		} else {
			size++
		}
	}
	return size
}

// Clone creates a copy of the record sharing the item values but with
// an independent item map and FSPEC
func (r *Record) Clone() (*Record, error) {
	clone, err := NewRecord(r.category, r.uap)
	if err != nil {
		return nil, err
	}

	for id, item := range r.items {
		if err := clone.SetDataItem(id, item); err != nil {
			return nil, fmt.Errorf("cloning %s: %w", id, err)
		}
	}

	return clone, nil
}

// Encode writes the record to a buffer
func (r *Record) Encode(buf *bytes.Buffer) (int, error) {
	if err := r.uap.Validate(r.items); err != nil {
		return 0, err
	}

	bytesWritten := 0

	// Write FSPEC
	n, err := r.fspec.Encode(buf)
	if err != nil {
		return bytesWritten, fmt.Errorf("encoding FSPEC: %w", err)
	}
	bytesWritten += n

	// Write items in FRN order
	for _, field := range r.uap.Fields() {
		if !r.fspec.GetFRN(field.FRN) {
			continue
		}

		item, exists := r.items[field.DataItem]
		if !exists {
			return bytesWritten, NewEncodingError(r.category, field.DataItem,
				"marked in FSPEC but not present", ErrInvalidMessage).WithPosition(bytesWritten)
		}

		n, err := item.Encode(buf)
		if err != nil {
			return bytesWritten, NewEncodingError(r.category, field.DataItem,
				"encoding item", err).WithPosition(bytesWritten)
		}
		bytesWritten += n
	}

	return bytesWritten, nil
}

// Decode reads a record from a buffer
func (r *Record) Decode(buf *bytes.Buffer) (int, error) {
	if buf.Len() == 0 {
		return 0, io.EOF
	}

	bytesRead := 0

	// Read FSPEC
	n, err := r.fspec.Decode(buf)
	if err != nil {
		return bytesRead, NewDecodeError(r.category, "FSPEC", "decoding FSPEC", err)
	}
	bytesRead += n

	// Clear existing items
	r.items = make(map[string]DataItem)

	// Read items based on FSPEC
	for _, field := range r.uap.Fields() {
		if !r.fspec.GetFRN(field.FRN) {
			continue
		}

		// Check if we have enough bytes for fixed-length items
		if field.Type == Fixed && buf.Len() < int(field.Length) {
			return bytesRead, NewDecodeError(r.category, field.DataItem,
				fmt.Sprintf("need %d bytes, have %d", field.Length, buf.Len()),
				ErrBufferTooShort)
		}

		item, err := r.uap.CreateDataItem(field.DataItem)
		if err != nil {
			return bytesRead, NewDecodeError(r.category, field.DataItem, "creating item", err)
		}

		n, err := item.Decode(buf)
		if err != nil {
			return bytesRead, NewDecodeError(r.category, field.DataItem, "decoding item", err)
		}
		bytesRead += n

		r.items[field.DataItem] = item
	}

	return bytesRead, r.uap.Validate(r.items)
}
