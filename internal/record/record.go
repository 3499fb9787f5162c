package record

import (
	"encoding/binary"
	"errors"
	"math"
	"unicode/utf8"
)

// Timestamp (4) + KeySize (4) + ValueSize (4), little-endian.
const HeaderSize = 12

var (
	// ErrMalformedHeader indicates a header buffer shorter than HeaderSize.
	ErrMalformedHeader = errors.New("record: malformed header")

	// ErrInvalidEncoding indicates a record whose payload length does not
	// match the sizes claimed by its header, or whose key/value bytes are
	// not valid UTF-8 text.
	ErrInvalidEncoding = errors.New("record: invalid encoding")
)

// Record is one (timestamp, key, value) entry as stored on disk.
//
// The on-disk layout is header || key || value with no separators; the
// header carries the payload lengths, so records can be read back-to-back.
type Record struct {
	Timestamp uint32 // Unix timestamp in seconds at write time
	Key       string
	Value     string
}

// EncodeHeader packs the three header fields into a 12-byte slice.
func EncodeHeader(timestamp, keySize, valueSize uint32) []byte {
	header := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(header[0:4], timestamp)
	binary.LittleEndian.PutUint32(header[4:8], keySize)
	binary.LittleEndian.PutUint32(header[8:12], valueSize)
	return header
}

// DecodeHeader unpacks a 12-byte header into its three fields.
func DecodeHeader(header []byte) (timestamp, keySize, valueSize uint32, err error) {
	if len(header) < HeaderSize {
		return 0, 0, 0, ErrMalformedHeader
	}

	timestamp = binary.LittleEndian.Uint32(header[0:4])
	keySize = binary.LittleEndian.Uint32(header[4:8])
	valueSize = binary.LittleEndian.Uint32(header[8:12])
	return timestamp, keySize, valueSize, nil
}

// Encode serialises one record and returns its total on-disk size along
// with the header-prefixed bytes, so callers can compute offsets without
// re-scanning what they just wrote.
func Encode(timestamp uint32, key, value string) (uint32, []byte, error) {
	if uint64(HeaderSize)+uint64(len(key))+uint64(len(value)) > math.MaxUint32 {
		return 0, nil, ErrInvalidEncoding
	}
	if !utf8.ValidString(key) || !utf8.ValidString(value) {
		return 0, nil, ErrInvalidEncoding
	}

	total := uint32(HeaderSize + len(key) + len(value))

	data := make([]byte, total)
	binary.LittleEndian.PutUint32(data[0:4], timestamp)
	binary.LittleEndian.PutUint32(data[4:8], uint32(len(key)))
	binary.LittleEndian.PutUint32(data[8:12], uint32(len(value)))
	copy(data[HeaderSize:], key)
	copy(data[HeaderSize+len(key):], value)

	return total, data, nil
}

// Decode deserialises a buffer holding exactly one record.
//
// The buffer must span the full record: header plus key_size+value_size
// payload bytes, as claimed by the header itself.
func Decode(data []byte) (*Record, error) {
	timestamp, keySize, valueSize, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}

	if uint64(len(data)-HeaderSize) != uint64(keySize)+uint64(valueSize) {
		return nil, ErrInvalidEncoding
	}

	key := data[HeaderSize : HeaderSize+keySize]
	value := data[HeaderSize+keySize:]

	if !utf8.Valid(key) || !utf8.Valid(value) {
		return nil, ErrInvalidEncoding
	}

	return &Record{
		Timestamp: timestamp,
		Key:       string(key),
		Value:     string(value),
	}, nil
}
