package persistence

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type goodRegion struct {
	Header
	A, B, C int32
	_       [4]byte
	Count   uint64
	Buffer  [32]byte
}

type noHeader struct {
	A uint64
	Header
}

type implicitPadding struct {
	Header
	A int32
	B uint64
}

type variableSize struct {
	Header
	N int
}

type oddSize struct {
	Header
	A int32
}

type nested struct {
	X, Y float32
}

type nestedRegion struct {
	Header
	Points [2]nested
	Flag   bool
	_      [7]byte
}

type hiddenField struct {
	Header
	count uint64
}

type hiddenPoint struct {
	x, y float32
}

type hiddenNested struct {
	Header
	Points [2]hiddenPoint
}

type complexRegion struct {
	Header
	A float32
	Z complex64
	B float32
}

func TestLayoutOf(t *testing.T) {
	l, err := LayoutOf[goodRegion]()
	require.NoError(t, err)

	assert.Equal(t, int(unsafe.Sizeof(goodRegion{})), l.Size)
	assert.Equal(t, 72, l.Size)
	require.Len(t, l.Fields, 7)
	assert.Equal(t, "Header", l.Fields[0].Name)
	assert.Equal(t, 0, l.Fields[0].Offset)
	assert.Equal(t, "A", l.Fields[1].Name)
	assert.Equal(t, HeaderSize, l.Fields[1].Offset)
	assert.Equal(t, "Count", l.Fields[5].Name)
	assert.Equal(t, 32, l.Fields[5].Offset)

	assert.Contains(t, l.String(), "Count")
}

func TestLayoutOf_Nested(t *testing.T) {
	l, err := LayoutOf[nestedRegion]()
	require.NoError(t, err)
	assert.Equal(t, 40, l.Size)
}

func TestLayoutOf_NaturalAlignment(t *testing.T) {
	l, err := LayoutOf[complexRegion]()
	require.NoError(t, err)
	assert.Equal(t, 32, l.Size)
	assert.Equal(t, 20, l.Fields[2].Offset)

	var r complexRegion
	r.Header = NewHeader(1)
	r.Z = complex(1.5, -2)
	buf := make([]byte, l.Size)
	_, err = Encode(&r, buf)
	require.NoError(t, err)

	var got complexRegion
	_, err = Decode(buf, &got)
	require.NoError(t, err)
	assert.Equal(t, r, got)
}

func TestLayoutOf_Invalid(t *testing.T) {
	tests := []struct {
		name string
		fn   func() (Layout, error)
	}{
		{"not a struct", LayoutOf[uint64]},
		{"header not first", LayoutOf[noHeader]},
		{"implicit padding", LayoutOf[implicitPadding]},
		{"variable size", LayoutOf[variableSize]},
		{"size not multiple of 8", LayoutOf[oddSize]},
		{"unexported field", LayoutOf[hiddenField]},
		{"unexported nested field", LayoutOf[hiddenNested]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fn()
			assert.ErrorIs(t, err, ErrInvalidLayout)
		})
	}

	l, err := LayoutOf[Header]()
	assert.ErrorIs(t, err, ErrInvalidLayout)
	assert.Zero(t, l.Size)
}

func TestEncodeDecode(t *testing.T) {
	in := goodRegion{Header: NewHeader(2), A: -1, B: 2, C: 3, Count: 1 << 40}
	copy(in.Buffer[:], "hello")

	buf := make([]byte, unsafe.Sizeof(in))
	n, err := Encode(&in, buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)

	// Header sits at offset 0 in native order.
	h, err := DecodeHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, in.Header, h)

	var out goodRegion
	_, err = Decode(buf, &out)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = Decode(buf[:10], &out)
	assert.ErrorIs(t, err, ErrShortBuffer)
	_, err = Encode(&in, buf[:10])
	assert.ErrorIs(t, err, ErrShortBuffer)
}

func TestEncode_MatchesMemoryImage(t *testing.T) {
	in := goodRegion{Header: NewHeader(9), A: 1, B: 2, C: 3, Count: 4}
	buf := make([]byte, unsafe.Sizeof(in))
	_, err := Encode(&in, buf)
	require.NoError(t, err)

	mem := unsafe.Slice((*byte)(unsafe.Pointer(&in)), unsafe.Sizeof(in))
	assert.Equal(t, mem, buf)
}

func TestPlatformInfo(t *testing.T) {
	assert.Contains(t, PlatformInfo(), ByteOrderName())
	assert.NotNil(t, NativeByteOrder())
}
