package ir

// The Runtime* values name classes of the Scala Native runtime that
// decoded types and values may refer to without those classes themselves
// being defined anywhere in a NIR file.

var (
	RuntimeObject          = NewReferenceType(TopSymbol{ID: "java.lang.Object"})
	RuntimeClass            = NewReferenceType(TopSymbol{ID: "java.lang.Class"})
	RuntimeString           = NewReferenceType(TopSymbol{ID: "java.lang.String"})
	RuntimePackage          = NewReferenceType(TopSymbol{ID: "scala.scalanative.runtime.package$"})
	RuntimeNothing          = NewReferenceType(TopSymbol{ID: "scala.runtime.Nothing$"})
	RuntimeNull             = NewReferenceType(TopSymbol{ID: "scala.runtime.Null$"})
	RuntimeBoxedPointer     = NewReferenceType(TopSymbol{ID: "scala.scalanative.unsafe.Ptr"})
	RuntimeBoxedNull        = NewReferenceType(TopSymbol{ID: "scala.runtime.Null$"})
	RuntimeBoxedUnit        = NewReferenceType(TopSymbol{ID: "scala.runtime.BoxedUnit"})
	RuntimeBoxedUnitModule  = NewReferenceType(TopSymbol{ID: "scala.scalanative.runtime.BoxedUnit$"})

	RuntimeBooleanArray = NewReferenceType(TopSymbol{ID: "scala.scalanative.runtime.BooleanArray"})
	RuntimeCharArray    = NewReferenceType(TopSymbol{ID: "scala.scalanative.runtime.CharArray"})
	RuntimeByteArray    = NewReferenceType(TopSymbol{ID: "scala.scalanative.runtime.ByteArray"})
	RuntimeShortArray   = NewReferenceType(TopSymbol{ID: "scala.scalanative.runtime.ShortArray"})
	RuntimeIntArray     = NewReferenceType(TopSymbol{ID: "scala.scalanative.runtime.IntArray"})
	RuntimeLongArray    = NewReferenceType(TopSymbol{ID: "scala.scalanative.runtime.LongArray"})
	RuntimeFloatArray   = NewReferenceType(TopSymbol{ID: "scala.scalanative.runtime.FloatArray"})
	RuntimeDoubleArray  = NewReferenceType(TopSymbol{ID: "scala.scalanative.runtime.DoubleArray"})
	RuntimeObjectArray  = NewReferenceType(TopSymbol{ID: "scala.scalanative.runtime.ObjectArray"})
)
