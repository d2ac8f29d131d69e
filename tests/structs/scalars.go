package structs

// Scalars exercises a wide range of primitive field types against
// adapter's reflection-based ToValue/FromValue conversion.
type Scalars struct {
	S      string         `vv:"s"`
	B      bool           `vv:"b"`
	I      int            `vv:"i"`
	I8     int8           `vv:"i8"`
	I16    int16          `vv:"i16"`
	I32    int32          `vv:"i32"`
	I64    int64          `vv:"i64"`
	U      uint           `vv:"u"`
	U8     uint8          `vv:"u8"`
	U16    uint16         `vv:"u16"`
	U32    uint32         `vv:"u32"`
	U64    uint64         `vv:"u64"`
	F32    float32        `vv:"f32"`
	F64    float64        `vv:"f64"`
	Data   []byte         `vv:"data"`
	Ints   []int          `vv:"ints"`
	Names  []string       `vv:"names"`
	Scores map[string]int `vv:"scores"`
}

// Nested exercises nested struct and pointer fields.
type Nested struct {
	ID   string   `vv:"id"`
	Base Scalars  `vv:"base"`
	Ptr  *Scalars `vv:"ptr,omitempty"`
}
