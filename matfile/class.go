package matfile

import "fmt"

// Class is the MATLAB array class stored in the low byte of the flags word.
type Class uint8

// Array classes of the level-5 format.
const (
	ClassCell   Class = 1
	ClassStruct Class = 2
	ClassObject Class = 3
	ClassChar   Class = 4
	ClassSparse Class = 5
	ClassDouble Class = 6
	ClassSingle Class = 7
	ClassInt8   Class = 8
	ClassUint8  Class = 9
	ClassInt16  Class = 10
	ClassUint16 Class = 11
	ClassInt32  Class = 12
	ClassUint32 Class = 13
	ClassInt64  Class = 14
	ClassUint64 Class = 15
)

var classNames = map[Class]string{
	ClassCell:   "cell",
	ClassStruct: "struct",
	ClassObject: "object",
	ClassChar:   "char",
	ClassSparse: "sparse",
	ClassDouble: "double",
	ClassSingle: "single",
	ClassInt8:   "int8",
	ClassUint8:  "uint8",
	ClassInt16:  "int16",
	ClassUint16: "uint16",
	ClassInt32:  "int32",
	ClassUint32: "uint32",
	ClassInt64:  "int64",
	ClassUint64: "uint64",
}

func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return fmt.Sprintf("class(%d)", uint8(c))
}

// IsNumeric reports whether c is one of the ten numeric classes.
func (c Class) IsNumeric() bool {
	return c >= ClassDouble && c <= ClassUint64
}

// Flags is the array flags word: class in bits 0-7, attribute bits above.
type Flags uint32

// Attribute bits of the flags word.
const (
	FlagLogical Flags = 0x0200
	FlagGlobal  Flags = 0x0400
	FlagComplex Flags = 0x0800

	classMask = 0xff
	attrMask  = FlagLogical | FlagGlobal | FlagComplex
)

// Class returns the class encoded in the flags word.
func (f Flags) Class() Class { return Class(f & classMask) }

// IsComplex reports whether the complex bit is set.
func (f Flags) IsComplex() bool { return f&FlagComplex != 0 }

// IsGlobal reports whether the global bit is set.
func (f Flags) IsGlobal() bool { return f&FlagGlobal != 0 }

// IsLogical reports whether the logical bit is set.
func (f Flags) IsLogical() bool { return f&FlagLogical != 0 }

func makeFlags(class Class, attrs Flags) Flags {
	return Flags(class) | attrs&attrMask
}
